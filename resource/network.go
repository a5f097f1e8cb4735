package resource

// Network is the append-only post network chunks are stored on. Posts are
// addressed by the hash returned from Post, inside a named chain.
type Network interface {
	// Chains lists the chains known to the network.
	Chains() ([]string, error)

	// Reputation returns the reputation score of a post.
	Reputation(chain, hash string) (int, error)

	// Payload returns the raw payload of a post.
	Payload(chain, hash string) ([]byte, error)

	// Post appends payload to chain and returns its hash. An empty sign
	// posts anonymously.
	Post(chain, sign string, private bool, payload []byte) (string, error)
}

func hasChain(n Network, chain string) (bool, error) {
	chains, err := n.Chains()
	if err != nil {
		return false, err
	}
	for _, c := range chains {
		if c == chain {
			return true, nil
		}
	}
	return false, nil
}
