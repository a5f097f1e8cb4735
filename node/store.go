package node

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"

	"seresa/resource"
)

// Store is a local append-only post network kept in a badger database.
// Posts are grouped in chains and addressed by "<height>_<hash>", where
// hash is the SHA3-256 of the chain name, the height and the payload.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens or creates the store described by o.
func Open(o Options) (*Store, error) {
	db, err := connect(o)
	if err != nil {
		return nil, errors.Wrapf(err, "opening node store %q", o.Dir)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Join creates chain on the node.
func (s *Store) Join(chain string) error {
	if !resource.ValidChain(chain) {
		return errors.Wrapf(ErrInvalidChain, "%q", chain)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := getChainNode(txn, chain)
		if err == nil {
			return ErrChainExists
		}
		if err != ErrUnknownChain {
			return err
		}
		return setJSON(txn, chainKey(chain), ChainNode{Name: chain, Joined: s.now().UTC()})
	})
	if err != nil {
		return errors.Wrapf(err, "joining chain %q", chain)
	}
	log.WithField("chain", chain).Info("joined chain")
	return nil
}

// Chains lists the joined chains in name order.
func (s *Store) Chains() ([]string, error) {
	var chains []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(ChainNamespace)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			chains = append(chains, string(bytes.TrimPrefix(key, []byte(ChainNamespace))))
		}
		return nil
	})
	return chains, err
}

// Post appends payload to chain and returns the new post's hash.
func (s *Store) Post(chain, sign string, private bool, payload []byte) (string, error) {
	var hash string
	err := s.db.Update(func(txn *badger.Txn) error {
		cnode, err := getChainNode(txn, chain)
		if err != nil {
			return err
		}

		cnode.Height++
		hash = postHash(chain, cnode.Height, payload)
		meta := PostMeta{
			Hash:    hash,
			Height:  cnode.Height,
			Sign:    sign,
			Private: private,
			Posted:  s.now().UTC(),
		}

		if err := txn.Set(postKey(chain, hash), payload); err != nil {
			return err
		}
		if err := setJSON(txn, metaKey(chain, hash), meta); err != nil {
			return err
		}
		if err := txn.Set(sequenceKey(chain, cnode.Height), []byte(hash)); err != nil {
			return err
		}
		return setJSON(txn, chainKey(chain), cnode)
	})
	if err != nil {
		return "", errors.Wrapf(err, "posting to chain %q", chain)
	}
	return hash, nil
}

// Payload returns the payload of a post.
func (s *Store) Payload(chain, hash string) ([]byte, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := getChainNode(txn, chain); err != nil {
			return err
		}
		var err error
		payload, err = getPayload(txn, chain, hash)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "post %q on chain %q", hash, chain)
	}
	return payload, nil
}

// Meta returns the stored metadata of a post.
func (s *Store) Meta(chain, hash string) (PostMeta, error) {
	var meta PostMeta
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		meta, err = getPostMeta(txn, chain, hash)
		return err
	})
	if err != nil {
		return meta, errors.Wrapf(err, "post %q on chain %q", hash, chain)
	}
	return meta, nil
}

// Reputation returns the reputation score of a post.
func (s *Store) Reputation(chain, hash string) (int, error) {
	meta, err := s.Meta(chain, hash)
	return meta.Reputation, err
}

// Like raises the reputation of a post by one.
func (s *Store) Like(chain, hash, sign string) (int, error) {
	return s.rate(chain, hash, sign, 1)
}

// Dislike lowers the reputation of a post by one.
func (s *Store) Dislike(chain, hash, sign string) (int, error) {
	return s.rate(chain, hash, sign, -1)
}

func (s *Store) rate(chain, hash, sign string, delta int) (int, error) {
	if sign == "" {
		return 0, ErrUnsigned
	}
	var score int
	err := s.db.Update(func(txn *badger.Txn) error {
		meta, err := getPostMeta(txn, chain, hash)
		if err != nil {
			return err
		}
		meta.Reputation += delta
		score = meta.Reputation
		return setJSON(txn, metaKey(chain, hash), meta)
	})
	if err != nil {
		return 0, errors.Wrapf(err, "rating post %q on chain %q", hash, chain)
	}
	log.WithFields(log.Fields{
		"chain":      chain,
		"hash":       hash,
		"reputation": score,
	}).Debug("rated post")
	return score, nil
}

// Consensus lists the hashes of all posts on chain in posting order.
func (s *Store) Consensus(chain string) ([]string, error) {
	var hashes []string
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := getChainNode(txn, chain); err != nil {
			return err
		}
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         sequencePrefix(chain),
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			hash, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			hashes = append(hashes, string(hash))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "consensus of chain %q", chain)
	}
	return hashes, nil
}

func postHash(chain string, height int64, payload []byte) string {
	hasher := sha3.New256()
	io.WriteString(hasher, chain)
	io.WriteString(hasher, KeySeperator)
	binary.Write(hasher, binary.BigEndian, height)
	io.Copy(hasher, bytes.NewReader(payload))
	return fmt.Sprintf("%d_%X", height, hasher.Sum(nil))
}
