package node

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
)

// Options configure the badger database behind a Store.
type Options struct {
	// Dir is the database directory. It is ignored in memory.
	Dir        string
	InMemory   bool
	CacheLimit int64
	SyncWrites bool
}

func connect(o Options) (*badger.DB, error) {
	opts := badger.DefaultOptions(o.Dir)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	cache := o.CacheLimit
	if cache <= 0 {
		cache = DefaultCacheLimit
	}
	opts.IndexCacheSize = cache
	opts.BlockCacheSize = cache
	opts.SyncWrites = o.SyncWrites
	opts.NumGoroutines = MaxThreadCount
	opts.Logger = badgerLogger{log.WithField("component", "badger")}
	return badger.Open(opts)
}

// badgerLogger demotes badger's informational output, table and
// compaction stats, to debug.
type badgerLogger struct {
	*log.Entry
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Entry.Debugf(format, args...)
}

func chainKey(chain string) []byte {
	return []byte(ChainNamespace + chain)
}

func postKey(chain, hash string) []byte {
	return []byte(PostNamespace + chain + KeySeperator + hash)
}

func metaKey(chain, hash string) []byte {
	return []byte(MetaNamespace + chain + KeySeperator + hash)
}

func sequencePrefix(chain string) []byte {
	return []byte(SequenceNamespace + chain + KeySeperator)
}

func sequenceKey(chain string, height int64) []byte {
	return []byte(fmt.Sprintf("%s%s%s%020d", SequenceNamespace, chain, KeySeperator, height))
}

func getJSON(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func getChainNode(txn *badger.Txn, chain string) (ChainNode, error) {
	var cnode ChainNode
	err := getJSON(txn, chainKey(chain), &cnode)
	if err == badger.ErrKeyNotFound {
		return cnode, ErrUnknownChain
	}
	return cnode, err
}

func getPostMeta(txn *badger.Txn, chain, hash string) (PostMeta, error) {
	var meta PostMeta
	err := getJSON(txn, metaKey(chain, hash), &meta)
	if err == badger.ErrKeyNotFound {
		return meta, ErrPostNotFound
	}
	return meta, err
}

func getPayload(txn *badger.Txn, chain, hash string) ([]byte, error) {
	item, err := txn.Get(postKey(chain, hash))
	if err == badger.ErrKeyNotFound {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
