package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-heaviside/dsp/filter/spatial"
	"github.com/cwbudde/algo-heaviside/internal/report"
	"github.com/cwbudde/algo-heaviside/internal/texture"
	"github.com/cwbudde/algo-heaviside/measure/temporal"
)

func temporalFlags(fs *flag.FlagSet, o *options) {
	fs.BoolVar(&o.partitionPerFrame, "partition-per-frame", false, "draw a new partition for every frame")
}

func runTemporal(ctx context.Context, o *options, args []string) error {
	if len(args) != 2 && len(args) != 5 {
		return fmt.Errorf("%w: want <file> <space> [filter param alpha], got %d argument(s)", errUsage, len(args))
	}

	tc := o.cfg.Temporal
	if len(args) == 5 {
		tc.Filter = args[2]
		var err error
		if tc.Param, err = parseFloatArg("filter param", args[3]); err != nil {
			return err
		}
		if tc.Alpha, err = parseFloatArg("alpha", args[4]); err != nil {
			return err
		}
	}
	sf, err := spatial.Parse(tc.Filter, tc.Param)
	if err != nil {
		return err
	}
	if _, err := temporal.NewFilter(tc.Alpha); err != nil {
		return err
	}

	in, err := loadInput(args[0], args[1])
	if err != nil {
		return err
	}
	vol, err := in.volume()
	if err != nil {
		return err
	}

	cfg := o.cfg
	man := report.New("temporal", in.path)
	man.Space = in.space.Kind().String()
	man.Trials = cfg.Trials.Count
	man.Seed = cfg.Trials.Seed
	man.Workers = cfg.Trials.Workers
	man.Width, man.Height = in.img.Width, in.img.Height
	man.Frames, man.Channels, man.HDR = vol.Frames(), in.img.Channels(), in.img.HDR
	man.Filter, man.FilterParam = sf.Kind().String(), sf.Param()
	man.Alpha, man.PartitionPerFrame = tc.Alpha, tc.PartitionPerFrame

	series, err := temporal.Estimate(ctx, vol, in.space, sf,
		temporal.WithTrials(cfg.Trials.Count),
		temporal.WithSeed(cfg.Trials.Seed),
		temporal.WithWorkers(cfg.Trials.Workers),
		temporal.WithAlpha(tc.Alpha),
		temporal.WithPartitionPerFrame(tc.PartitionPerFrame),
		temporal.WithProgress(progressLogger("temporal")),
	)
	if err != nil {
		return err
	}

	sum := series.Summary()
	man.SetSummary("first", sum.First)
	man.SetSummary("aggregate", sum.Aggregate)
	man.SetSummary("last", sum.Last)
	man.SetSummary("mean", sum.Mean)
	man.SetSummary("peak", sum.Peak)
	man.SetSummary("peak_frame", float64(sum.PeakFrame))
	log.Infof("temporal: first=%.6g aggregate=%.6g last=%.6g peak=%.6g@%d",
		sum.First, sum.Aggregate, sum.Last, sum.Peak, sum.PeakFrame)

	out := texture.OutputPath(in.path, "_temporal.csv")
	if err := texture.WriteTable(out, func(w io.Writer) error {
		_, err := series.WriteTo(w)
		return err
	}); err != nil {
		return err
	}
	man.AddOutput(out)

	return finish(man, in.path)
}
