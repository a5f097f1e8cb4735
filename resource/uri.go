package resource

import "strings"

// Address identifies one chunk on the network. An empty Chain means the
// chain was omitted and has to be carried over from the referencing chunk.
type Address struct {
	Chain string
	Hash  string
}

// ParseURI parses an fchs URI of the form "fchs:<hash>",
// "fchs:<chain>:<hash>" or "fchs:<chain>:...:<hash>". Only the first
// segment after the scheme is taken as the chain and only the last as the
// hash; anything in between is ignored.
func ParseURI(uri string) (Address, error) {
	scheme, rest, ok := cut(uri, schemeSeparator)
	if !ok {
		return Address{}, inputErrorf("no scheme specified on URI %q", uri)
	}
	if scheme != Scheme {
		return Address{}, inputErrorf("invalid URI scheme %q, expected %q", scheme, Scheme)
	}

	i := strings.LastIndex(rest, schemeSeparator)
	if i < 0 {
		if rest == "" {
			return Address{}, inputErrorf("invalid '%s' URI format, missing post hash", Scheme)
		}
		return Address{Hash: rest}, nil
	}

	prefix, hash := rest[:i], rest[i+1:]
	chain, _, _ := cut(prefix, schemeSeparator)
	if chain == "" {
		return Address{}, inputErrorf("invalid '%s' URI format, missing chain name", Scheme)
	}
	if hash == "" {
		return Address{}, inputErrorf("invalid '%s' URI format, missing post hash", Scheme)
	}
	return Address{Chain: chain, Hash: hash}, nil
}

// String renders the address as an fchs URI, leaving the chain out when
// it is empty.
func (a Address) String() string {
	if a.Chain == "" {
		return Scheme + schemeSeparator + a.Hash
	}
	return Scheme + schemeSeparator + a.Chain + schemeSeparator + a.Hash
}

// Resolve returns the address with an omitted chain replaced by current,
// the chain of the chunk holding the link.
func (a Address) Resolve(current string) Address {
	if a.Chain == "" {
		a.Chain = current
	}
	return a
}

// linkURI renders the prev link stored inside a chunk. The chain is left
// out so that downloads carry over the chain of the referencing chunk.
func linkURI(hash string) string {
	return Address{Hash: hash}.String()
}

func cut(s, sep string) (before, after string, found bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
