package resource

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Upload splits r into ChunkSize chunks and posts them to chain in order,
// each one linked to the chunk posted before it. Every returned hash is
// written to w on its own line as soon as it is known; the hashes are also
// returned in posting order, the last one addressing the whole resource.
//
// An empty reader still produces one empty chunk. A reader whose length is
// a multiple of ChunkSize does not get a trailing empty chunk.
//
// Chunks posted before an error stay on the network.
func Upload(w io.Writer, r io.Reader, n Network, chain, sign, title string) ([]string, error) {
	if title == "" {
		return nil, inputErrorf("resource title must not be empty")
	}
	if !ValidChain(chain) {
		return nil, inputErrorf("invalid chain name %q", chain)
	}

	var hashes []string
	var prev string
	buf := make([]byte, ChunkSize)

	for index := 0; ; index++ {
		nread, err := io.ReadFull(r, buf)
		end := false
		switch {
		case err == io.EOF:
			if index > 0 {
				return hashes, nil
			}
			end = true
		case err == io.ErrUnexpectedEOF:
			end = true
		case err != nil:
			return hashes, errors.Wrapf(err, "reading chunk %d", index)
		}

		hash, err := postChunk(n, chain, sign, NewChunk(title, buf[:nread], prev))
		if err != nil {
			return hashes, err
		}
		log.WithFields(log.Fields{
			"chain": chain,
			"hash":  hash,
			"index": index,
			"bytes": nread,
		}).Debug("posted chunk")

		hashes = append(hashes, hash)
		if _, err := fmt.Fprint(w, hash, lineEnding); err != nil {
			return hashes, errors.Wrap(err, "reporting chunk hash")
		}

		if end {
			return hashes, nil
		}
		prev = linkURI(hash)
	}
}

func postChunk(n Network, chain, sign string, c Chunk) (string, error) {
	payload, err := c.Encode()
	if err != nil {
		return "", errors.Wrap(err, "encoding chunk")
	}
	hash, err := n.Post(chain, sign, false, payload)
	if err != nil {
		return "", errors.Wrapf(err, "posting chunk to chain %q", chain)
	}
	return hash, nil
}
