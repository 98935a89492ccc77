package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// TeeWriter copies every write to all of its sinks, e.g. stderr and the
// rotated log file. A failing sink is skipped and its error reported once
// the remaining sinks were written.
type TeeWriter struct {
	sinks []io.Writer
}

// NewTeeWriter ignores nil sinks.
func NewTeeWriter(sinks ...io.Writer) *TeeWriter {
	tw := &TeeWriter{}
	for _, s := range sinks {
		if s != nil {
			tw.sinks = append(tw.sinks, s)
		}
	}
	return tw
}

func (tw *TeeWriter) Sinks() int {
	return len(tw.sinks)
}

// Write reports len(p) when at least one sink took the whole line.
func (tw *TeeWriter) Write(p []byte) (int, error) {
	var errs error
	delivered := false
	for _, s := range tw.sinks {
		n, err := s.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		delivered = true
	}
	if !delivered {
		return 0, errs
	}
	return len(p), errs
}
