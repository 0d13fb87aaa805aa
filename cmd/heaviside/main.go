// Command heaviside estimates the spectral and temporal quality of sampling
// textures by Monte-Carlo integration over random Heaviside partitions.
//
// Usage:
//
//	heaviside spectrum  [flags] <file> <space>
//	heaviside temporal  [flags] <file> <space> [filter param alpha]
//	heaviside histogram [flags] <file> <space>
//
// space is one of real, circle, sphere, vector2, vector3, vector4. filter
// is box, binomial or gauss with its size, pass count or sigma as param.
// Artifacts are written next to the input file, named after it.
//
// Examples:
//
//	heaviside spectrum noise.png vector2
//	heaviside temporal -trials 512 noise.png real gauss 1.5 0.1
//	heaviside histogram -bins 64 noise.hdr vector3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-heaviside/dsp/filter/spatial"
	"github.com/cwbudde/algo-heaviside/dsp/samplespace"
	"github.com/cwbudde/algo-heaviside/dsp/volume"
	"github.com/cwbudde/algo-heaviside/internal/config"
	"github.com/cwbudde/algo-heaviside/internal/texture"
	"github.com/cwbudde/algo-heaviside/internal/trials"
	"github.com/cwbudde/algo-heaviside/measure/temporal"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage reports a malformed command line.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// command is one subcommand.
type command struct {
	name  string
	args  string
	about string
	flags func(fs *flag.FlagSet, o *options)
	exec  func(ctx context.Context, o *options, args []string) error
}

var commands = []command{
	{
		name:  "spectrum",
		args:  "<file> <space>",
		about: "estimate the RMS power spectrum of the texture",
		flags: spectrumFlags,
		exec:  runSpectrum,
	},
	{
		name:  "temporal",
		args:  "<file> <space> [filter param alpha]",
		about: "estimate the per-frame error of exponentially accumulated masks",
		flags: temporalFlags,
		exec:  runTemporal,
	},
	{
		name:  "histogram",
		args:  "<file> <space>",
		about: "tabulate per-channel and pairwise value histograms",
		flags: histogramFlags,
		exec:  runHistogram,
	},
}

// options collects the flags shared by all subcommands plus the resolved
// configuration.
type options struct {
	configPath string
	trials     int
	seed       uint64
	workers    int
	verbose    bool
	profile    string

	pfm               bool
	radial            bool
	partitionPerFrame bool
	bins              int

	set map[string]bool
	cfg *config.Config
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: heaviside <command> [flags] <file> <space> ...\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.about)
	}
	fmt.Fprintf(w, "\nSpaces: real, circle, sphere, vector2, vector3, vector4\n")
	fmt.Fprintf(w, "Filters: box <size>, binomial <passes>, gauss <sigma>\n")
	fmt.Fprintf(w, "\nRun 'heaviside <command> -h' for command flags.\n")
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, argv []string, stderr io.Writer) int {
	log.SetOutput(stderr)
	log.SetLevel(log.InfoLevel)

	if len(argv) == 0 {
		usage(stderr)
		return exitUsage
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == argv[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		if argv[0] != "-h" && argv[0] != "-help" && argv[0] != "help" {
			fmt.Fprintf(stderr, "unknown command %q\n\n", argv[0])
		}
		usage(stderr)
		return exitUsage
	}

	o := &options{}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML run configuration")
	fs.IntVar(&o.trials, "trials", trials.DefaultTrials, "number of random partitions")
	fs.Uint64Var(&o.seed, "seed", trials.DefaultSeed, "run seed")
	fs.IntVar(&o.workers, "workers", 0, "parallel workers (0 = one per CPU)")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.StringVar(&o.profile, "profile", "", "write a cpu or mem profile to the working directory")
	cmd.flags(fs, o)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: heaviside %s [flags] %s\n\n%s.\n\nFlags:\n", cmd.name, cmd.args, cmd.about)
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		log.Errorf("config: %v", err)
		return exitUsage
	}
	o.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Errorf("config: %v", err)
		return exitUsage
	}
	o.cfg = cfg

	switch o.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Errorf("unknown profile mode %q (want cpu|mem)", o.profile)
		return exitUsage
	}

	if err := cmd.exec(ctx, o, fs.Args()); err != nil {
		if isUsageError(err) {
			log.Errorf("%s: %v", cmd.name, err)
			fs.Usage()
			return exitUsage
		}
		log.Errorf("%s: %v", cmd.name, err)
		return exitError
	}
	return exitOK
}

// applyFlags lets explicitly set flags override file values.
func (o *options) applyFlags(cfg *config.Config) {
	if o.set["trials"] {
		cfg.Trials.Count = o.trials
	}
	if o.set["seed"] {
		cfg.Trials.Seed = o.seed
	}
	if o.set["workers"] {
		cfg.Trials.Workers = o.workers
	}
	if o.set["pfm"] {
		cfg.Spectrum.WritePFM = o.pfm
	}
	if o.set["radial"] {
		cfg.Spectrum.WriteRadial = o.radial
	}
	if o.set["partition-per-frame"] {
		cfg.Temporal.PartitionPerFrame = o.partitionPerFrame
	}
	if o.set["bins"] {
		cfg.Histo.Bins = o.bins
	}
}

// isUsageError reports errors caused by the command line rather than by
// the data or the machine.
func isUsageError(err error) bool {
	for _, target := range []error{
		errUsage,
		samplespace.ErrUnknownSpace,
		spatial.ErrUnsupportedKind,
		spatial.ErrParam,
		temporal.ErrAlpha,
		trials.ErrTrials,
		config.ErrInvalid,
		volume.ErrNotSquareStack,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// input is a loaded texture and its parsed sample space.
type input struct {
	path  string
	img   *volume.Image
	space samplespace.Space
}

// loadInput parses the space before touching the file so that argument
// mistakes surface first.
func loadInput(path, tag string) (*input, error) {
	space, err := samplespace.Parse(tag)
	if err != nil {
		return nil, err
	}
	img, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s: %dx%d, %d channels, hdr=%v", path, img.Width, img.Height, img.Channels(), img.HDR)
	return &input{path: path, img: img, space: space}, nil
}

// volume remaps and decomposes the input for estimation.
func (in *input) volume() (*volume.Volume, error) {
	if err := samplespace.Validate(in.space, in.img.Channels()); err != nil {
		return nil, err
	}
	vol, err := volume.Decompose(in.img.Remapped())
	if err != nil {
		return nil, err
	}
	log.Debugf("%d frame(s) of %dx%d", vol.Frames(), vol.Size(), vol.Size())
	return vol, nil
}

// progressLogger logs roughly every tenth of the trials at debug level.
func progressLogger(name string) func(done, total int) {
	return func(done, total int) {
		step := max(1, total/10)
		if done%step == 0 || done == total {
			log.Debugf("%s: %d/%d trials", name, done, total)
		}
	}
}

func parseFloatArg(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", errUsage, name, s)
	}
	return v, nil
}
