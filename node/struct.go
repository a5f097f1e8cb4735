package node

import "time"

// ChainNode is the stored state of a joined chain.
type ChainNode struct {
	Name   string    `json:"name"`
	Height int64     `json:"height"`
	Joined time.Time `json:"joined"`
}

// PostMeta is everything stored about a post besides its payload.
type PostMeta struct {
	Hash       string    `json:"hash"`
	Height     int64     `json:"height"`
	Sign       string    `json:"sign,omitempty"`
	Private    bool      `json:"private"`
	Reputation int       `json:"reputation"`
	Posted     time.Time `json:"posted"`
}
