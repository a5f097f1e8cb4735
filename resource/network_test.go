package resource

import (
	"fmt"

	"github.com/pkg/errors"
)

var errNoPost = errors.New("no such post")

type post struct {
	payload []byte
	rep     int
}

// fakeNetwork keeps posts in memory and records every call made to it.
type fakeNetwork struct {
	chains   []string
	posts    map[string]*post
	height   int
	calls    []string
	fetched  map[string]int
	postErr  error
	failPost int
}

func newFakeNetwork(chains ...string) *fakeNetwork {
	return &fakeNetwork{
		chains:  chains,
		posts:   map[string]*post{},
		fetched: map[string]int{},
	}
}

func key(chain, hash string) string {
	return chain + "|" + hash
}

func (f *fakeNetwork) Chains() ([]string, error) {
	f.calls = append(f.calls, "chains")
	return f.chains, nil
}

func (f *fakeNetwork) Reputation(chain, hash string) (int, error) {
	f.calls = append(f.calls, "reputation "+hash)
	p, ok := f.posts[key(chain, hash)]
	if !ok {
		return 0, errNoPost
	}
	return p.rep, nil
}

func (f *fakeNetwork) Payload(chain, hash string) ([]byte, error) {
	f.calls = append(f.calls, "payload "+hash)
	p, ok := f.posts[key(chain, hash)]
	if !ok {
		return nil, errNoPost
	}
	f.fetched[hash]++
	return p.payload, nil
}

func (f *fakeNetwork) Post(chain, sign string, private bool, payload []byte) (string, error) {
	f.calls = append(f.calls, "post")
	if f.postErr != nil && f.height == f.failPost {
		return "", f.postErr
	}
	f.height++
	hash := fmt.Sprintf("%d_H%d", f.height, f.height)
	f.posts[key(chain, hash)] = &post{payload: append([]byte(nil), payload...)}
	return hash, nil
}

// put stores a raw payload under an explicit hash.
func (f *fakeNetwork) put(chain, hash string, payload []byte) {
	f.posts[key(chain, hash)] = &post{payload: payload}
}

func (f *fakeNetwork) chunk(chain, hash string) Chunk {
	c, err := DecodeChunk(f.posts[key(chain, hash)].payload)
	if err != nil {
		panic(err)
	}
	return c
}
