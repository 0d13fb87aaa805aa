package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-heaviside/internal/report"
	"github.com/cwbudde/algo-heaviside/internal/texture"
	"github.com/cwbudde/algo-heaviside/measure/spectral"
	spectralstats "github.com/cwbudde/algo-heaviside/stats/spectral"
)

func spectrumFlags(fs *flag.FlagSet, o *options) {
	fs.BoolVar(&o.pfm, "pfm", false, "also write the spectrum as a float PFM")
	fs.BoolVar(&o.radial, "radial", true, "write the radially averaged power profile")
}

func runSpectrum(ctx context.Context, o *options, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: want <file> <space>, got %d argument(s)", errUsage, len(args))
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
	man := report.New("spectrum", in.path)
	man.Space = in.space.Kind().String()
	man.Trials = cfg.Trials.Count
	man.Seed = cfg.Trials.Seed
	man.Workers = cfg.Trials.Workers
	man.Width, man.Height = in.img.Width, in.img.Height
	man.Frames, man.Channels, man.HDR = vol.Frames(), in.img.Channels(), in.img.HDR

	res, err := spectral.Estimate(ctx, vol, in.space,
		spectral.WithTrials(cfg.Trials.Count),
		spectral.WithSeed(cfg.Trials.Seed),
		spectral.WithWorkers(cfg.Trials.Workers),
		spectral.WithProgress(progressLogger("spectrum")),
	)
	if err != nil {
		return err
	}

	stats, err := spectralstats.Calculate(res.Values, res.Width, res.Frames)
	if err != nil {
		return err
	}
	man.SetSummary("max", stats.Max)
	man.SetSummary("mean", stats.Mean)
	man.SetSummary("flatness", stats.Flatness)
	log.Infof("spectrum: max=%.6g mean=%.6g flatness=%.4f", stats.Max, stats.Mean, stats.Flatness)

	out := texture.OutputPath(in.path, "_spectrum.png")
	if err := texture.WriteSpectrumPNG(out, res.Values, res.Width, res.Height); err != nil {
		return err
	}
	man.AddOutput(out)

	if cfg.Spectrum.WritePFM {
		out := texture.OutputPath(in.path, "_spectrum.pfm")
		if err := texture.WritePFM(out, res.Values, res.Width, res.Height); err != nil {
			return err
		}
		man.AddOutput(out)
	}

	if cfg.Spectrum.WriteRadial {
		prof, err := spectralstats.Radial(res.Values, res.Width, res.Frames)
		if err != nil {
			return err
		}
		out := texture.OutputPath(in.path, "_radial.csv")
		if err := texture.WriteTable(out, func(w io.Writer) error { return prof.WriteCSV(w) }); err != nil {
			return err
		}
		man.AddOutput(out)
	}

	return finish(man, in.path)
}

// finish writes the run manifest and logs the artifacts.
func finish(man *report.Manifest, input string) error {
	man.Finish()
	path := texture.OutputPath(input, "_"+man.Command+"_run.yaml")
	if err := man.Save(path); err != nil {
		return err
	}
	for _, out := range man.Outputs {
		log.Infof("wrote %s", out)
	}
	log.Debugf("run %s took %s, manifest %s", man.ID, man.Duration, path)
	return nil
}
