package node

import (
	"runtime"

	"github.com/pkg/errors"
)

const (
	B  int64 = 1
	KB       = B << 10
	MB       = KB << 10
	GB       = MB << 10
)

const DefaultCacheLimit = 256 * MB

var MaxThreadCount = 2 * runtime.NumCPU()

const (
	ChainNamespace    = "chain:"
	PostNamespace     = "post:"
	MetaNamespace     = "meta:"
	SequenceNamespace = "seq:"
	KeySeperator      = "|"
)

var (
	ErrUnknownChain = errors.New("unknown chain")
	ErrChainExists  = errors.New("chain already joined")
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidChain = errors.New("invalid chain name")
	ErrUnsigned     = errors.New("operation requires a signature")
)
