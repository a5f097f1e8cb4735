package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"seresa/node"
	"seresa/resource"
)

// Config is the content of the seresa config file.
type Config struct {
	// DataDir holds the node store.
	DataDir    string `yaml:"datadir"`
	Threshold  int    `yaml:"threshold"`
	CacheMB    int64  `yaml:"cache_mb"`
	SyncWrites bool   `yaml:"sync_writes"`
}

func defaultConfig() Config {
	cfg := Config{
		Threshold:  resource.DefaultThreshold,
		CacheMB:    defaultCacheMB,
		SyncWrites: true,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DataDir = filepath.Join(home, ".local", "share", appName)
	}
	return cfg
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, configFile)
}

// loadConfig reads path over the defaults. A missing file is only an
// error when it was asked for explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %q", path)
	}
	return cfg, nil
}

func (c Config) nodeOptions() node.Options {
	return node.Options{
		Dir:        c.DataDir,
		CacheLimit: c.CacheMB * node.MB,
		SyncWrites: c.SyncWrites,
	}
}

func (c Config) gate() resource.Gate {
	return resource.Gate{Threshold: c.Threshold}
}
