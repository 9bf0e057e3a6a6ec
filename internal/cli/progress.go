package cli

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// scanBar wraps the progress bar shown during multi-file scans. It writes
// to stderr so the record stream on stdout stays clean, and it stays
// silent for single files or when --quiet is set.
type scanBar struct {
	bar *progressbar.ProgressBar
}

func newScanBar(total int, quiet bool) *scanBar {
	if quiet || total <= 1 {
		return &scanBar{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Scanning packages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &scanBar{bar: bar}
}

func (s *scanBar) advance() {
	if s.bar != nil {
		s.bar.Add(1)
	}
}

func (s *scanBar) finish() {
	if s.bar != nil {
		s.bar.Finish()
	}
}
