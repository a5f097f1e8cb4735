package main

import (
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"
	progressbar "github.com/schollz/progressbar/v3"

	"seresa/resource"
)

// newUploadBar returns a byte progress bar writing to w, or nil when
// progress is off.
func newUploadBar(w io.Writer, size int64, progress bool) *progressbar.ProgressBar {
	if !progress {
		return nil
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("uploading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(w, "\n")
		}),
	)
}

// chunkProgress shows download progress in chunks once the chain of a
// resource has been discovered.
type chunkProgress struct {
	w   io.Writer
	bar *pb.ProgressBar
}

func (p *chunkProgress) Discovered(addrs []resource.Address) {
	p.bar = pb.Full.New(len(addrs)).SetWriter(p.w).Start()
}

func (p *chunkProgress) Emitted(addr resource.Address, n int) {
	p.bar.Increment()
}

func (p *chunkProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
