package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/cwbudde/algo-heaviside/internal/report"
	"github.com/cwbudde/algo-heaviside/internal/texture"
	"github.com/cwbudde/algo-heaviside/measure/histogram"
)

func histogramFlags(fs *flag.FlagSet, o *options) {
	fs.IntVar(&o.bins, "bins", histogram.DefaultBins, "bins per axis")
}

// runHistogram tabulates the raw texture values; no remapping is applied.
func runHistogram(_ context.Context, o *options, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: want <file> <space>, got %d argument(s)", errUsage, len(args))
	}
	in, err := loadInput(args[0], args[1])
	if err != nil {
		return err
	}

	res, err := histogram.Compute(in.img, in.space.Channels(), o.cfg.Histo.Bins)
	if err != nil {
		return err
	}

	man := report.New("histogram", in.path)
	man.Space = in.space.Kind().String()
	man.Width, man.Height = in.img.Width, in.img.Height
	man.Channels, man.HDR = in.img.Channels(), in.img.HDR
	for _, h := range res.Channels {
		man.SetSummary(fmt.Sprintf("outside_c%d", h.Channel), float64(h.Outside))
	}

	out := texture.OutputPath(in.path, "_histogram.csv")
	if err := texture.WriteTable(out, res.WriteCSV); err != nil {
		return err
	}
	man.AddOutput(out)

	for i := range res.Pairs {
		p := &res.Pairs[i]
		out := texture.OutputPath(in.path, fmt.Sprintf("_histogram2d_%d%d.csv", p.I, p.J))
		if err := texture.WriteTable(out, func(w io.Writer) error { return p.WriteCSV(w) }); err != nil {
			return err
		}
		man.AddOutput(out)
	}

	return finish(man, in.path)
}
