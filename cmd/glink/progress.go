package main

import (
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"glink/internal/domain"
)

// newProgressBar returns a progress callback drawing a byte progress bar on
// stderr. The bar is created on the first report, once the total is known.
// With -v the file being copied is shown next to the description.
func newProgressBar(description string) domain.ProgressFunc {
	var bar *progressbar.ProgressBar
	shown := description

	return func(p domain.TransferProgress) {
		if p.Total <= 0 {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions64(p.Total,
				progressbar.OptionSetWriter(stderr),
				progressbar.OptionSetDescription(description),
				progressbar.OptionShowBytes(true),
				progressbar.OptionSetWidth(30),
				progressbar.OptionThrottle(100*time.Millisecond),
				progressbar.OptionEnableColorCodes(colorEnabled()),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionOnCompletion(func() { _, _ = stderr.Write([]byte("\n")) }),
			)
		}

		if d := progressDescription(description, p, verbosity); d != shown {
			bar.Describe(d)
			shown = d
		}
		_ = bar.Set64(p.Transferred)
		if p.Transferred >= p.Total {
			_ = bar.Finish()
		}
	}
}

// progressDescription is the bar label: the game, plus the current file when verbose
func progressDescription(description string, p domain.TransferProgress, verbosity int) string {
	if verbosity < 1 || p.CurrentFile == "" {
		return description
	}
	return description + " " + filepath.Base(p.CurrentFile)
}
