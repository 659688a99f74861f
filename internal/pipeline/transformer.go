package pipeline

import (
	"context"
	"fmt"

	"github.com/dunamismax/pixlens/internal/domain"
	"github.com/dunamismax/pixlens/internal/filter"
	"github.com/dunamismax/pixlens/internal/raster"
)

type Transformer interface {
	Transform(ctx context.Context, src *raster.Image, step domain.PipelineStep) (*raster.Image, error)
}

// FilterTransformer runs a step's filter over the decoded source with the
// configured parallelism.
type FilterTransformer struct {
	Threads raster.Threads
}

func (t FilterTransformer) Transform(ctx context.Context, src *raster.Image, step domain.PipelineStep) (*raster.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	ch, err := step.ChannelSet()
	if err != nil {
		return nil, err
	}

	switch step.NormalizedAction() {
	case domain.ActionGrayscale:
		return filter.Grayscale(src, ch, t.Threads), nil
	case domain.ActionSepia:
		return filter.Sepia(src, ch, t.Threads), nil
	case domain.ActionNegative:
		return filter.Negative(src, ch, t.Threads), nil
	case domain.ActionGamma:
		return filter.Gamma(src, step.Gamma, ch, t.Threads)
	case domain.ActionBlurMean:
		return filter.MeanBlur(src, step.RadiusOr(domain.DefaultBlurRadius), ch, t.Threads)
	case domain.ActionBlurGaussian:
		return filter.GaussianBlur(src, step.RadiusOr(domain.DefaultBlurRadius), step.Sigma, ch, t.Threads)
	case domain.ActionKuwahara:
		return filter.Kuwahara(src, step.RadiusOr(filter.DefaultKuwaharaRadius), t.Threads)
	case domain.ActionCanny:
		return filter.Canny(src, step.CannyOptions(), t.Threads)
	case domain.ActionCrop:
		return filter.Crop(src, step.CropOptions(), t.Threads)
	case domain.ActionResize:
		return filter.Resize(src, step.Width, step.Height, t.Threads)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStepAction, step.Action)
	}
}
