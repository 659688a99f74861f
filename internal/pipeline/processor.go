package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/pixlens/internal/codec"
	"github.com/dunamismax/pixlens/internal/domain"
	"github.com/dunamismax/pixlens/internal/raster"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const SourceTypeLocalFile = domain.SourceTypeLocalFile

var (
	ErrUnsupportedSourceType = errors.New("unsupported source_type")
	ErrInvalidStepAction     = domain.ErrUnknownAction
)

type Request struct {
	JobID      string
	SourceType string
	ObjectKey  string
	Pipeline   []domain.PipelineStep
}

type Output struct {
	StepID  string `json:"step_id"`
	Action  string `json:"action"`
	Format  string `json:"format"`
	Path    string `json:"path"`
	Bytes   int    `json:"bytes"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Success bool   `json:"success"`
}

type Result struct {
	SourceBytes  int
	SourceWidth  int
	SourceHeight int
	Outputs      []Output
}

type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

type Emitter interface {
	Emit(ctx context.Context, req Request, step domain.PipelineStep, data []byte, format string, width, height int) (Output, error)
}

// Processor fetches and decodes a source once, then runs every step against
// the decoded image and emits one encoded output per step.
type Processor struct {
	fetcher     Fetcher
	transformer Transformer
	emitter     Emitter
	tracer      trace.Tracer
}

func NewProcessor(fetcher Fetcher, transformer Transformer, emitter Emitter) (*Processor, error) {
	if fetcher == nil || transformer == nil || emitter == nil {
		return nil, errors.New("fetcher, transformer and emitter are required")
	}
	return &Processor{
		fetcher:     fetcher,
		transformer: transformer,
		emitter:     emitter,
		tracer:      otel.Tracer("pixlens/pipeline"),
	}, nil
}

func NewLocalProcessor(outputDir string, threads raster.Threads) (*Processor, error) {
	return NewProcessor(LocalFileFetcher{}, FilterTransformer{Threads: threads}, LocalFileEmitter{OutputDir: outputDir})
}

func (p *Processor) Process(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.JobID) == "" {
		return Result{}, errors.New("job_id is required")
	}
	if len(req.Pipeline) == 0 {
		return Result{}, errors.New("pipeline must contain at least one step")
	}

	sourceBytes, err := p.fetcher.Fetch(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch stage: %w", err)
	}

	src, srcFormat, err := p.decode(ctx, sourceBytes)
	if err != nil {
		return Result{}, fmt.Errorf("decode stage: %w", err)
	}

	out := Result{
		SourceBytes:  len(sourceBytes),
		SourceWidth:  src.Width(),
		SourceHeight: src.Height(),
		Outputs:      make([]Output, 0, len(req.Pipeline)),
	}
	for _, step := range req.Pipeline {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		written, err := p.runStep(ctx, req, src, srcFormat, step)
		if err != nil {
			return Result{}, err
		}
		out.Outputs = append(out.Outputs, written)
	}

	return out, nil
}

func (p *Processor) decode(ctx context.Context, data []byte) (*raster.Image, string, error) {
	_, span := p.tracer.Start(ctx, "pipeline.decode")
	defer span.End()

	img, format, err := codec.Decode(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, "", err
	}
	span.SetAttributes(
		attribute.String("image.format", format),
		attribute.Int("image.width", img.Width()),
		attribute.Int("image.height", img.Height()),
	)
	return img, format, nil
}

func (p *Processor) runStep(ctx context.Context, req Request, src *raster.Image, srcFormat string, step domain.PipelineStep) (Output, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.step")
	span.SetAttributes(
		attribute.String("step.id", step.ID),
		attribute.String("step.action", step.NormalizedAction()),
	)
	defer span.End()

	fail := func(stage string, err error) (Output, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, stage+" failed")
		return Output{}, fmt.Errorf("%s stage step=%s action=%s: %w", stage, step.ID, step.Action, err)
	}

	_, filterSpan := p.tracer.Start(ctx, "pipeline.filter")
	result, err := p.transformer.Transform(ctx, src, step)
	if err == nil {
		filterSpan.SetAttributes(attribute.Int("image.pixels", result.Area()))
	}
	filterSpan.End()
	if err != nil {
		return fail("transform", err)
	}

	format, err := outputFormat(step.Format, srcFormat)
	if err != nil {
		return fail("encode", err)
	}

	_, encodeSpan := p.tracer.Start(ctx, "pipeline.encode")
	encoded, err := codec.Encode(result, format, step.Quality)
	if err == nil {
		encodeSpan.SetAttributes(attribute.Int("output.bytes", len(encoded)))
	}
	encodeSpan.End()
	if err != nil {
		return fail("encode", err)
	}

	written, err := p.emitter.Emit(ctx, req, step, encoded, format, result.Width(), result.Height())
	if err != nil {
		return fail("emit", err)
	}
	return written, nil
}

// outputFormat prefers the step's format, then the source format when it can
// be written back, then PNG.
func outputFormat(stepFormat, srcFormat string) (string, error) {
	if strings.TrimSpace(stepFormat) != "" {
		return codec.NormalizeFormat(stepFormat)
	}
	if format, err := codec.NormalizeFormat(srcFormat); err == nil && format != codec.FormatWebP {
		return format, nil
	}
	return codec.FormatPNG, nil
}

type LocalFileFetcher struct{}

func (LocalFileFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if !strings.EqualFold(req.SourceType, SourceTypeLocalFile) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSourceType, req.SourceType)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(req.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("read input file %s: %w", req.ObjectKey, err)
	}
	return data, nil
}

type LocalFileEmitter struct {
	OutputDir string
}

func (e LocalFileEmitter) Emit(_ context.Context, req Request, step domain.PipelineStep, data []byte, format string, width, height int) (Output, error) {
	if strings.TrimSpace(e.OutputDir) == "" {
		return Output{}, errors.New("output directory is required")
	}
	if strings.TrimSpace(step.ID) == "" {
		return Output{}, errors.New("pipeline step id is required")
	}

	jobDir := filepath.Join(e.OutputDir, sanitizePathToken(req.JobID))
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return Output{}, fmt.Errorf("create output dir: %w", err)
	}

	fullPath := filepath.Join(jobDir, outputName(step.ID, format))
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return Output{}, fmt.Errorf("write output file: %w", err)
	}

	return Output{
		StepID:  step.ID,
		Action:  step.NormalizedAction(),
		Format:  format,
		Path:    fullPath,
		Bytes:   len(data),
		Width:   width,
		Height:  height,
		Success: true,
	}, nil
}

func outputName(stepID, format string) string {
	return fmt.Sprintf("%s.%s", sanitizePathToken(stepID), format)
}

func sanitizePathToken(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return "unknown"
	}

	var b strings.Builder
	b.Grow(len(in))
	for _, r := range in {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
