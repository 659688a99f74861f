package main

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/dunamismax/pixlens/internal/codec"
	"github.com/dunamismax/pixlens/internal/config"
	"github.com/dunamismax/pixlens/internal/domain"
	"github.com/dunamismax/pixlens/internal/filter"
	"github.com/dunamismax/pixlens/internal/pipeline"
	"github.com/dunamismax/pixlens/internal/raster"
	"github.com/dunamismax/pixlens/internal/telemetry"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type rootOptions struct {
	input    string
	output   string
	threads  string
	channels string
	quality  int
	quiet    bool
	trace    bool
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pixlens",
		Short:         "Apply pixel filters to an image file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.input, "input", "i", "", "input image path")
	flags.StringVarP(&opts.output, "output", "o", "", "output image path; the extension selects the format")
	flags.StringVar(&opts.threads, "threads", config.Load().Worker.Threads.String(), `worker threads, "auto" or a positive number`)
	flags.StringVar(&opts.channels, "channels", "", "channels to filter, any of R, G, B, A (default RGB)")
	flags.IntVar(&opts.quality, "quality", codec.DefaultJPEGQuality, "JPEG quality 1..100")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress timing output")
	flags.BoolVar(&opts.trace, "trace", false, "print OpenTelemetry spans to stderr")
	_ = root.MarkPersistentFlagRequired("input")
	_ = root.MarkPersistentFlagRequired("output")

	root.AddCommand(
		simpleCommand(opts, domain.ActionGrayscale, "Convert to luminance"),
		simpleCommand(opts, domain.ActionSepia, "Apply a sepia tone"),
		simpleCommand(opts, domain.ActionNegative, "Invert channel values"),
		gammaCommand(opts),
		blurCommand(opts),
		kuwaharaCommand(opts),
		cannyCommand(opts),
		cropCommand(opts),
		resizeCommand(opts),
	)

	return root
}

func simpleCommand(opts *rootOptions, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, domain.PipelineStep{Action: action})
		},
	}
}

func gammaCommand(opts *rootOptions) *cobra.Command {
	var gamma float64
	cmd := &cobra.Command{
		Use:   "gamma",
		Short: "Apply gamma correction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, domain.PipelineStep{Action: domain.ActionGamma, Gamma: gamma})
		},
	}
	cmd.Flags().Float64VarP(&gamma, "gamma", "g", 2.2, "gamma exponent, must be positive")
	return cmd
}

func blurCommand(opts *rootOptions) *cobra.Command {
	var (
		radius int
		sigma  float64
	)
	cmd := &cobra.Command{
		Use:       "blur mean|gaussian",
		Short:     "Blur with a mean or gaussian kernel",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"mean", "gaussian"},
		RunE: func(cmd *cobra.Command, args []string) error {
			step := domain.PipelineStep{Action: domain.ActionBlurMean, Radius: &radius}
			if args[0] == "gaussian" {
				step.Action = domain.ActionBlurGaussian
				step.Sigma = sigma
			}
			return opts.run(cmd, step)
		},
	}
	cmd.Flags().IntVarP(&radius, "radius", "r", domain.DefaultBlurRadius, "kernel radius")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "gaussian standard deviation")
	return cmd
}

func kuwaharaCommand(opts *rootOptions) *cobra.Command {
	var radius int
	cmd := &cobra.Command{
		Use:   "kuwahara",
		Short: "Edge-preserving Kuwahara smoothing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, domain.PipelineStep{Action: domain.ActionKuwahara, Radius: &radius})
		},
	}
	cmd.Flags().IntVarP(&radius, "radius", "r", filter.DefaultKuwaharaRadius, "window radius")
	return cmd
}

func cannyCommand(opts *rootOptions) *cobra.Command {
	var (
		radius    int
		sigma     float64
		low, high float64
	)
	cmd := &cobra.Command{
		Use:   "canny",
		Short: "Canny edge detection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, domain.PipelineStep{
				Action: domain.ActionCanny,
				Radius: &radius,
				Sigma:  sigma,
				Low:    low,
				High:   high,
			})
		},
	}
	defaults := filter.DefaultCannyOptions()
	cmd.Flags().IntVarP(&radius, "radius", "r", defaults.Radius, "gaussian pre-blur radius")
	cmd.Flags().Float64Var(&sigma, "sigma", defaults.Sigma, "gaussian pre-blur standard deviation")
	cmd.Flags().Float64Var(&low, "low", defaults.Low, "weak edge threshold")
	cmd.Flags().Float64Var(&high, "high", defaults.High, "strong edge threshold")
	return cmd
}

func cropCommand(opts *rootOptions) *cobra.Command {
	var geometry string
	cmd := &cobra.Command{
		Use:   "crop",
		Short: "Cut a rectangle out of the image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crop, err := parseCropGeometry(geometry)
			if err != nil {
				return err
			}
			return opts.run(cmd, domain.PipelineStep{
				Action:  domain.ActionCrop,
				Width:   crop.Width,
				Height:  crop.Height,
				OffsetX: crop.OffsetX,
				OffsetY: crop.OffsetY,
			})
		},
	}
	cmd.Flags().StringVarP(&geometry, "size", "s", "", "crop geometry WxH+XxY")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func resizeCommand(opts *rootOptions) *cobra.Command {
	var size string
	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Nearest-neighbor resize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, h, err := parseSize(size)
			if err != nil {
				return err
			}
			return opts.run(cmd, domain.PipelineStep{Action: domain.ActionResize, Width: w, Height: h})
		},
	}
	cmd.Flags().StringVarP(&size, "size", "s", "", "target size WxH")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

// run decodes the input, applies step and writes the output, logging the
// duration of each stage unless quiet is set.
func (o *rootOptions) run(cmd *cobra.Command, step domain.PipelineStep) error {
	stderr := cmd.ErrOrStderr()
	logOut := stderr
	if o.quiet {
		logOut = io.Discard
	}
	logger := log.New(logOut, "[pixlens] ", log.LstdFlags|log.Lmsgprefix)

	threads, err := raster.ParseThreads(o.threads)
	if err != nil {
		return err
	}
	step.ID = step.Action
	step.Channels = strings.TrimSpace(o.channels)
	step.Quality = o.quality
	if err := step.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.trace {
		shutdown, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
			ServiceName: "pixlens-cli",
			Exporter:    telemetry.ExporterStdout,
			Writer:      stderr,
		}, nil)
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()
	}
	tracer := otel.Tracer("pixlens/cli")

	ctx, span := tracer.Start(ctx, "cli."+step.Action)
	span.SetAttributes(attribute.String("threads", threads.String()))
	defer span.End()

	started := time.Now()
	_, decodeSpan := tracer.Start(ctx, "pipeline.decode")
	src, format, err := codec.ReadFile(o.input)
	decodeSpan.End()
	if err != nil {
		return err
	}
	logger.Printf("decoded path=%s format=%s size=%dx%d elapsed=%s", o.input, format, src.Width(), src.Height(), time.Since(started).Round(time.Microsecond))

	started = time.Now()
	filterCtx, filterSpan := tracer.Start(ctx, "pipeline.filter")
	out, err := pipeline.FilterTransformer{Threads: threads}.Transform(filterCtx, src, step)
	filterSpan.End()
	if err != nil {
		return err
	}
	logger.Printf("filtered action=%s threads=%s size=%dx%d elapsed=%s", step.Action, threads, out.Width(), out.Height(), time.Since(started).Round(time.Microsecond))

	started = time.Now()
	_, encodeSpan := tracer.Start(ctx, "pipeline.encode")
	err = codec.WriteFile(o.output, out, o.quality)
	encodeSpan.End()
	if err != nil {
		return err
	}
	logger.Printf("encoded path=%s elapsed=%s", o.output, time.Since(started).Round(time.Microsecond))
	return nil
}
