// Package share posts research article references to a chain and searches
// them back.
package share

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"seresa/resource"
)

// ErrMissingField is returned when an article lacks its title or URI.
var ErrMissingField = errors.New("article field missing")

// Article is the JSON document posted for a shared article.
type Article struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Tags    []string `json:"tags"`
	URI     string   `json:"uri"`
}

// Lister lists the hashes of every post on a chain in order.
type Lister interface {
	Consensus(chain string) ([]string, error)
}

// Searcher is a network that can also list its posts.
type Searcher interface {
	resource.Network
	Lister
}

// Post shares a on chain and writes the post hash to w.
func Post(w io.Writer, n resource.Network, chain, sign string, a Article) (string, error) {
	if a.Title == "" {
		return "", errors.Wrap(ErrMissingField, "title")
	}
	if a.URI == "" {
		return "", errors.Wrap(ErrMissingField, "uri")
	}
	if a.Authors == nil {
		a.Authors = []string{}
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return "", errors.Wrap(err, "encoding article")
	}
	hash, err := n.Post(chain, sign, false, payload)
	if err != nil {
		return "", errors.Wrapf(err, "sharing article on chain %q", chain)
	}
	_, err = fmt.Fprintln(w, hash)
	return hash, err
}

// Search writes the hash of every article on chain whose title, authors
// or tags contain one of terms, ignoring case. Posts that are not
// articles are skipped.
func Search(w io.Writer, n Searcher, chain string, terms []string) ([]string, error) {
	hashes, err := n.Consensus(chain)
	if err != nil {
		return nil, err
	}

	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}

	var found []string
	for _, hash := range hashes {
		payload, err := n.Payload(chain, hash)
		if err != nil {
			return found, errors.Wrapf(err, "searching chain %q", chain)
		}
		a, err := decodeArticle(payload)
		if err != nil {
			log.WithFields(log.Fields{"chain": chain, "hash": hash}).Debug("skipping non article post")
			continue
		}
		if !a.matches(lowered) {
			continue
		}
		found = append(found, hash)
		if _, err := fmt.Fprintln(w, hash); err != nil {
			return found, err
		}
	}
	return found, nil
}

// Get returns the article posted under hash.
func Get(n resource.Network, chain, hash string) (Article, error) {
	var a Article
	payload, err := n.Payload(chain, hash)
	if err != nil {
		return a, err
	}
	a, err = decodeArticle(payload)
	if err != nil {
		return a, errors.Wrapf(err, "post %q is not an article", hash)
	}
	return a, nil
}

// decodeArticle rejects JSON posts without a URI, such as resource
// chunks, which would otherwise decode into an empty article.
func decodeArticle(payload []byte) (Article, error) {
	var a Article
	if err := json.Unmarshal(payload, &a); err != nil {
		return a, err
	}
	if a.URI == "" {
		return a, errors.Wrap(ErrMissingField, "uri")
	}
	return a, nil
}

// URI writes the URI of the article posted under hash.
func URI(w io.Writer, n resource.Network, chain, hash string) error {
	a, err := Get(n, chain, hash)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, a.URI)
	return err
}

// Title writes the title of the article posted under hash.
func Title(w io.Writer, n resource.Network, chain, hash string) error {
	a, err := Get(n, chain, hash)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, a.Title)
	return err
}

func (a Article) matches(terms []string) bool {
	for _, t := range terms {
		if strings.Contains(strings.ToLower(a.Title), t) ||
			containsFold(a.Authors, t) ||
			containsFold(a.Tags, t) {
			return true
		}
	}
	return false
}

func containsFold(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
