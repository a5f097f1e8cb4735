package resource

import "fmt"

// InputError reports malformed user input: a bad URI, an unknown chain or
// a missing required value. It is never retried.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Msg
}

func inputErrorf(format string, args ...interface{}) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidContentError reports a chunk whose content field is not valid
// base64.
type InvalidContentError struct {
	Chain string
	Hash  string
}

func (e *InvalidContentError) Error() string {
	return fmt.Sprintf("invalid content on chain %q, post %q", e.Chain, e.Hash)
}

// LowReputationError reports a chunk rejected by the reputation gate
// before its content was fetched.
type LowReputationError struct {
	Chain string
	Hash  string
	Score int
}

func (e *LowReputationError) Error() string {
	return fmt.Sprintf("low reputation content on chain %q, post %q (score %d)", e.Chain, e.Hash, e.Score)
}
