package resource

import (
	"strings"
	"unicode"
)

const (
	identityKeyLen = 64

	// '|' separates chain names from hashes in node store keys.
	chainForbidden = "|"
)

// ValidChain reports whether name is a well formed chain id: "#name" for
// public forums, "$name" for private chains, and "@<key>" or "@!<key>"
// for identity chains, where key is a 64 digit hex public key. Names never
// contain whitespace, ':' or '|'.
func ValidChain(name string) bool {
	if strings.ContainsAny(name, schemeSeparator+chainForbidden) || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return false
	}
	switch {
	case strings.HasPrefix(name, "#"), strings.HasPrefix(name, "$"):
		return len(name) > 1
	case strings.HasPrefix(name, "@!"):
		return isHexKey(name[2:])
	case strings.HasPrefix(name, "@"):
		return isHexKey(name[1:])
	}
	return false
}

func isHexKey(s string) bool {
	if len(s) != identityKeyLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
