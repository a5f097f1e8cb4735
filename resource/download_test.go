package resource

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(t *testing.T, n *fakeNetwork, chain string, data []byte) []string {
	hashes, err := Upload(io.Discard, bytes.NewReader(data), n, chain, "", "title")
	require.NoError(t, err)
	return hashes
}

func putChunk(t *testing.T, n *fakeNetwork, chain, hash string, c Chunk) {
	payload, err := c.Encode()
	require.NoError(t, err)
	n.put(chain, hash, payload)
}

func TestRoundTrip(t *testing.T) {
	for _, size := range []int64{0, 1, ChunkSize - 1, ChunkSize, ChunkSize + 1, 3 * ChunkSize, 200 * KB} {
		n := newFakeNetwork("#res")
		data := mkdata(size)
		hashes := upload(t, n, "#res", data)

		var out bytes.Buffer
		err := Download(&out, n, Address{Chain: "#res", Hash: hashes[len(hashes)-1]}.String())
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, len(data), out.Len(), "size %d", size)
		assert.True(t, bytes.Equal(data, out.Bytes()), "size %d", size)
	}
}

type recorder struct {
	discovered []Address
	emitted    []Address
	bytes      int
}

func (r *recorder) Discovered(addrs []Address) {
	r.discovered = append([]Address(nil), addrs...)
}

func (r *recorder) Emitted(addr Address, n int) {
	r.emitted = append(r.emitted, addr)
	r.bytes += n
}

func TestDownloadOrder(t *testing.T) {
	n := newFakeNetwork("#res")
	data := mkdata(200 * KB)
	hashes := upload(t, n, "#res", data)
	require.Len(t, hashes, 3)
	n.calls = nil

	rec := &recorder{}
	d := &Downloader{Network: n, Gate: DefaultGate, Observer: rec}
	var out bytes.Buffer
	require.NoError(t, d.Download(&out, "fchs:#res:"+hashes[2]))
	assert.Equal(t, data, out.Bytes())

	want := []Address{{"#res", hashes[0]}, {"#res", hashes[1]}, {"#res", hashes[2]}}
	assert.Equal(t, want, rec.discovered)
	assert.Equal(t, want, rec.emitted)
	assert.Equal(t, len(data), rec.bytes)

	// discovery walks latest first, one reputation check and one fetch
	// per chunk, then the replay refetches in resource order
	assert.Equal(t, []string{
		"chains", "reputation " + hashes[2], "payload " + hashes[2],
		"chains", "reputation " + hashes[1], "payload " + hashes[1],
		"chains", "reputation " + hashes[0], "payload " + hashes[0],
		"payload " + hashes[0], "payload " + hashes[1], "payload " + hashes[2],
	}, n.calls)
}

func TestDownloadCarryOver(t *testing.T) {
	n := newFakeNetwork("#a", "#b")
	putChunk(t, n, "#a", "A1", NewChunk("t", []byte("one "), ""))
	putChunk(t, n, "#b", "A1", NewChunk("t", []byte("wrong "), ""))
	putChunk(t, n, "#a", "A2", NewChunk("t", []byte("two "), "fchs:A1"))
	putChunk(t, n, "#b", "B3", NewChunk("t", []byte("three"), "fchs:#a:A2"))

	var out bytes.Buffer
	require.NoError(t, Download(&out, n, "fchs:#b:B3"))
	assert.Equal(t, "one two three", out.String())
}

func TestDownloadLowReputation(t *testing.T) {
	n := newFakeNetwork("#res")
	hashes := upload(t, n, "#res", mkdata(200*KB))
	n.posts[key("#res", hashes[1])].rep = -4

	var out bytes.Buffer
	err := Download(&out, n, "fchs:#res:"+hashes[2])
	var lowRep *LowReputationError
	require.ErrorAs(t, err, &lowRep)
	assert.Equal(t, "#res", lowRep.Chain)
	assert.Equal(t, hashes[1], lowRep.Hash)
	assert.Equal(t, -4, lowRep.Score)

	assert.Zero(t, out.Len())
	assert.Zero(t, n.fetched[hashes[1]])
	assert.Zero(t, n.fetched[hashes[0]])
	assert.NotContains(t, n.calls, "reputation "+hashes[0])
}

func TestDownloadLowReputationTerminal(t *testing.T) {
	n := newFakeNetwork("#res")
	hashes := upload(t, n, "#res", []byte("x"))
	n.posts[key("#res", hashes[0])].rep = -4

	var out bytes.Buffer
	err := Download(&out, n, "fchs:#res:"+hashes[0])
	assert.IsType(t, &LowReputationError{}, err)
	assert.Empty(t, n.fetched)

	// -3 is still trusted
	n.posts[key("#res", hashes[0])].rep = -3
	require.NoError(t, Download(&out, n, "fchs:#res:"+hashes[0]))
	assert.Equal(t, "x", out.String())
}

func TestDownloadThreshold(t *testing.T) {
	n := newFakeNetwork("#res")
	hashes := upload(t, n, "#res", []byte("x"))

	d := &Downloader{Network: n, Gate: Gate{Threshold: 1}}
	err := d.Download(io.Discard, "fchs:#res:"+hashes[0])
	assert.IsType(t, &LowReputationError{}, err)
}

func TestDownloadMalformedURI(t *testing.T) {
	for _, uri := range []string{"fchs", "http:#res:1_A", "fchs::1_A", "fchs:1_A"} {
		n := newFakeNetwork("#res")
		var out bytes.Buffer
		err := Download(&out, n, uri)
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr, uri)
		assert.Empty(t, n.calls, uri)
		assert.Zero(t, out.Len())
	}
}

func TestDownloadUnknownChain(t *testing.T) {
	n := newFakeNetwork("#res")
	hashes := upload(t, n, "#res", []byte("x"))

	var inputErr *InputError
	err := Download(io.Discard, n, "fchs:#other:"+hashes[0])
	assert.ErrorAs(t, err, &inputErr)

	err = Download(io.Discard, n, "fchs:res:"+hashes[0])
	assert.ErrorAs(t, err, &inputErr)
	assert.NotContains(t, n.calls, "reputation "+hashes[0])
}

func TestDownloadCorruptContent(t *testing.T) {
	n := newFakeNetwork("#res")
	putChunk(t, n, "#res", "H1", NewChunk("t", []byte("abc"), ""))
	putChunk(t, n, "#res", "H2", Chunk{Title: "t", Content: "%%not base64%%", Prev: strptr("fchs:H1")})
	putChunk(t, n, "#res", "H3", NewChunk("t", []byte("def"), "fchs:H2"))

	var out bytes.Buffer
	err := Download(&out, n, "fchs:#res:H3")
	var invalid *InvalidContentError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, &InvalidContentError{Chain: "#res", Hash: "H2"}, invalid)
	assert.Equal(t, "abc", out.String())
}

func TestDownloadNotAChunk(t *testing.T) {
	n := newFakeNetwork("#res")
	n.put("#res", "H1", []byte("plain text post"))

	err := Download(io.Discard, n, "fchs:#res:H1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "H1")
}

func TestDownloadMissingPost(t *testing.T) {
	n := newFakeNetwork("#res")
	err := Download(io.Discard, n, "fchs:#res:H9")
	assert.Equal(t, errNoPost, errors.Cause(err))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, io.ErrShortWrite
}

func TestDownloadWriteError(t *testing.T) {
	n := newFakeNetwork("#res")
	hashes := upload(t, n, "#res", []byte("x"))
	err := Download(failWriter{}, n, "fchs:#res:"+hashes[0])
	assert.Equal(t, io.ErrShortWrite, errors.Cause(err))
}

func strptr(s string) *string {
	return &s
}
