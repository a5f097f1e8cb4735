package resource

const KB int64 = 1 << 10

// ChunkSize is the number of raw resource bytes carried by every chunk
// except possibly the last one.
const ChunkSize = 80 * KB

// Scheme is the URI scheme tag of chunk addresses.
const Scheme = "fchs"

const (
	schemeSeparator = ":"
	lineEnding      = "\n"
)
