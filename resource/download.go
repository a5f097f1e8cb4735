package resource

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Observer is told about the progress of a download.
type Observer interface {
	// Discovered is called once the whole chain of chunks is known,
	// with the addresses in resource order.
	Discovered(addrs []Address)

	// Emitted is called after the content of a chunk was written.
	Emitted(addr Address, n int)
}

// Downloader rebuilds resources from their chunk chains.
type Downloader struct {
	Network  Network
	Gate     Gate
	Observer Observer
}

// Download writes the resource ending at uri to w using the default
// reputation gate.
func Download(w io.Writer, n Network, uri string) error {
	d := &Downloader{Network: n, Gate: DefaultGate}
	return d.Download(w, uri)
}

// Download walks the prev links back from the chunk at uri to the first
// chunk of the resource, checking the reputation of every chunk on the
// way, and then writes the chunk contents to w from first to last.
//
// Nothing is written unless every chunk passed the gate. Content already
// written stays written if a later chunk fails to decode.
func (d *Downloader) Download(w io.Writer, uri string) error {
	addr, err := ParseURI(uri)
	if err != nil {
		return err
	}
	if addr.Chain == "" {
		return inputErrorf("missing chain name on URI %q", uri)
	}

	addrs, err := d.discover(addr)
	if err != nil {
		return err
	}
	reverse(addrs)
	if d.Observer != nil {
		d.Observer.Discovered(addrs)
	}

	for _, a := range addrs {
		c, err := d.fetch(a)
		if err != nil {
			return err
		}
		content, err := c.Decode()
		if err != nil {
			return &InvalidContentError{Chain: a.Chain, Hash: a.Hash}
		}
		if _, err := w.Write(content); err != nil {
			return errors.Wrapf(err, "writing content of %s", a)
		}
		log.WithFields(log.Fields{
			"chain": a.Chain,
			"hash":  a.Hash,
			"bytes": len(content),
		}).Debug("emitted chunk")
		if d.Observer != nil {
			d.Observer.Emitted(a, len(content))
		}
	}
	return nil
}

// discover returns the addresses of the chain ending at addr, latest
// first.
func (d *Downloader) discover(addr Address) ([]Address, error) {
	var addrs []Address
	for {
		if !ValidChain(addr.Chain) {
			return nil, inputErrorf("invalid '%s' URI format, invalid chain name %q", Scheme, addr.Chain)
		}
		known, err := hasChain(d.Network, addr.Chain)
		if err != nil {
			return nil, errors.Wrap(err, "listing chains")
		}
		if !known {
			return nil, inputErrorf("invalid '%s' URI, chain %q not on node", Scheme, addr.Chain)
		}

		score, err := d.Network.Reputation(addr.Chain, addr.Hash)
		if err != nil {
			return nil, errors.Wrapf(err, "reputation of %s", addr)
		}
		if !d.Gate.Passes(score) {
			return nil, &LowReputationError{Chain: addr.Chain, Hash: addr.Hash, Score: score}
		}

		addrs = append(addrs, addr)
		log.WithFields(log.Fields{
			"chain":      addr.Chain,
			"hash":       addr.Hash,
			"reputation": score,
		}).Debug("discovered chunk")

		c, err := d.fetch(addr)
		if err != nil {
			return nil, err
		}
		prev, ok, err := c.PrevAddress()
		if err != nil {
			return nil, errors.Wrapf(err, "prev link of %s", addr)
		}
		if !ok {
			return addrs, nil
		}
		addr = prev.Resolve(addr.Chain)
	}
}

func (d *Downloader) fetch(addr Address) (Chunk, error) {
	payload, err := d.Network.Payload(addr.Chain, addr.Hash)
	if err != nil {
		return Chunk{}, errors.Wrapf(err, "payload of %s", addr)
	}
	c, err := DecodeChunk(payload)
	if err != nil {
		return Chunk{}, errors.Wrapf(err, "decoding chunk %s", addr)
	}
	return c, nil
}

func reverse(addrs []Address) {
	for i, j := 0, len(addrs)-1; i < j; i, j = i+1, j-1 {
		addrs[i], addrs[j] = addrs[j], addrs[i]
	}
}
