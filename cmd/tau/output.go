package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/banshee-data/tau.report/internal/gesture/pipeline"
)

// printer writes frame results either as JSON Lines or as a one-line text
// summary per frame.
type printer struct {
	w         io.Writer
	json      bool
	skipGated bool
	enc       *json.Encoder
}

func newPrinter(w io.Writer, asJSON, skipGated bool) *printer {
	return &printer{w: w, json: asJSON, skipGated: skipGated, enc: json.NewEncoder(w)}
}

func (p *printer) print(res pipeline.FrameResult) error {
	if res.Gated && p.skipGated {
		return nil
	}
	if p.json {
		return p.enc.Encode(res)
	}
	if res.Gated {
		_, err := fmt.Fprintf(p.w, "frame %5d t=%8.3fs gated\n", res.Frame, res.Elapsed)
		return err
	}
	s := res.Stats
	_, err := fmt.Fprintf(p.w,
		"frame %5d t=%8.3fs tracked=%d degenerate=%d tau=%d growing=%d/%d tau(mean=%.3f median=%.3f min=%.3f max=%.3f) euler=%.4f\n",
		res.Frame, res.Elapsed, s.Tracked, s.Degenerate, s.WithTau, s.Growing, s.FullGestureGrowing,
		s.MeanTau, s.MedianTau, s.MinTau, s.MaxTau, s.MeanEuler)
	return err
}
