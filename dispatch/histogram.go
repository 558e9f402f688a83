/*
NAME
  histogram.go

DESCRIPTION
  The HISTOGRAM job kind: scope/waveform rendering for a decoded row,
  either as an amplitude histogram (gonum/plot) or, in frequency-domain
  scope mode, an FFT magnitude plot (github.com/mjibson/go-dsp/fft).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package dispatch

import (
	"fmt"
	"io"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/colorcore/wp13"
)

// HistogramMode selects between an amplitude histogram of a row's channel 0
// samples and a frequency-domain scope of the same data.
type HistogramMode int

const (
	HistogramAmplitude HistogramMode = iota
	HistogramFrequency
)

// RenderHistogram builds a histogram or frequency scope plot for one row's
// channel 0 (luma for a YUV row, red for an RGB row) and writes it as a PNG
// to w.
func RenderHistogram(row wp13.Row, mode HistogramMode, w io.Writer) error {
	luma := row.PlanarChannel(0)
	p := plot.New()

	switch mode {
	case HistogramFrequency:
		samples := make([]float64, len(luma))
		for i, v := range luma {
			samples[i] = float64(v) / float64(wp13.Unity)
		}
		spectrum := fft.FFTReal(samples)
		mags := make(plotter.Values, len(spectrum)/2)
		for i := range mags {
			mags[i] = cmplx.Abs(spectrum[i])
		}
		line, err := plotter.NewLine(magsToXYs(mags))
		if err != nil {
			return fmt.Errorf("dispatch: build frequency scope: %w", err)
		}
		p.Add(line)
		p.Title.Text = "frequency scope"
	default:
		vals := make(plotter.Values, len(luma))
		for i, v := range luma {
			vals[i] = float64(v)
		}
		hist, err := plotter.NewHist(vals, 64)
		if err != nil {
			return fmt.Errorf("dispatch: build amplitude histogram: %w", err)
		}
		p.Add(hist)
		p.Title.Text = "amplitude histogram"
	}

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("dispatch: render histogram: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("dispatch: write histogram: %w", err)
	}
	return nil
}

func magsToXYs(mags plotter.Values) plotter.XYs {
	pts := make(plotter.XYs, len(mags))
	for i, m := range mags {
		pts[i].X = float64(i)
		pts[i].Y = m
	}
	return pts
}
