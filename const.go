package main

import "seresa/node"

const (
	appName       = "seresa"
	configFile    = "config.yaml"
	debugEnv      = "DEBUG"
	stdioPath     = "-"
	timestampForm = "15:04:05.000"
)

const defaultCacheMB = node.DefaultCacheLimit / node.MB
