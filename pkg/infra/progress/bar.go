package progress

import (
	"io"
	"os"
	"time"

	"github.com/dsfetch/dsfetch/pkg/domain/interfaces"
	"github.com/schollz/progressbar/v3"
)

// Style is the theme used to draw progress bars
var Style = progressbar.ThemeUnicode

// Factory creates terminal progress bars
type Factory struct {
	w io.Writer
}

// Option is a functional option for Factory configuration
type Option func(*Factory)

// WithWriter sets the output of the progress bars. Default: os.Stderr
func WithWriter(w io.Writer) Option {
	return func(f *Factory) {
		f.w = w
	}
}

// NewFactory creates a ProgressFactory rendering with progressbar
func NewFactory(opts ...Option) *Factory {
	f := &Factory{w: os.Stderr}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Bytes returns a bar counting transferred bytes. An unknown total renders as a spinner.
func (f *Factory) Bytes(description string, total int64) interfaces.Progress {
	if total <= 0 {
		total = -1
	}
	return &bar{bar: progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(f.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(Style),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(f.w, "\n") }),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)}
}

// Count returns a bar counting processed items such as archive entries
func (f *Factory) Count(description string, total int64) interfaces.Progress {
	if total <= 0 {
		total = -1
	}
	return &bar{bar: progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(f.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("file"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(Style),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(f.w, "\n") }),
		progressbar.OptionFullWidth(),
	)}
}

type bar struct {
	bar *progressbar.ProgressBar
}

func (x *bar) Add(n int64) {
	_ = x.bar.Add64(n)
}

func (x *bar) Close() {
	_ = x.bar.Finish()
}
