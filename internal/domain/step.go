package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dunamismax/pixlens/internal/codec"
	"github.com/dunamismax/pixlens/internal/filter"
	"github.com/dunamismax/pixlens/internal/raster"
)

const (
	ActionGrayscale    = "grayscale"
	ActionSepia        = "sepia"
	ActionNegative     = "negative"
	ActionGamma        = "gamma"
	ActionBlurMean     = "blur_mean"
	ActionBlurGaussian = "blur_gaussian"
	ActionKuwahara     = "kuwahara"
	ActionCanny        = "canny"
	ActionCrop         = "crop"
	ActionResize       = "resize"

	DefaultBlurRadius = 1
)

var ErrUnknownAction = errors.New("unknown pipeline action")

// PipelineStep is one filter applied to the job's source image. Every step
// reads the decoded source and yields its own output.
type PipelineStep struct {
	ID       string  `json:"id"`
	Action   string  `json:"action"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	OffsetX  int     `json:"offset_x,omitempty"`
	OffsetY  int     `json:"offset_y,omitempty"`
	Radius   *int    `json:"radius,omitempty"`
	Sigma    float64 `json:"sigma,omitempty"`
	Gamma    float64 `json:"gamma,omitempty"`
	Low      float64 `json:"low,omitempty"`
	High     float64 `json:"high,omitempty"`
	Channels string  `json:"channels,omitempty"`
	Format   string  `json:"format,omitempty"`
	Quality  int     `json:"quality,omitempty"`
}

func (s PipelineStep) NormalizedAction() string {
	return strings.ToLower(strings.TrimSpace(s.Action))
}

// RadiusOr returns the explicit radius or fallback when none was given.
func (s PipelineStep) RadiusOr(fallback int) int {
	if s.Radius == nil {
		return fallback
	}
	return *s.Radius
}

func (s PipelineStep) ChannelSet() (filter.Channels, error) {
	return filter.ParseChannels(s.Channels)
}

// CannyOptions fills unset fields from filter.DefaultCannyOptions. Thresholds
// are taken together: both zero selects the defaults.
func (s PipelineStep) CannyOptions() filter.CannyOptions {
	opts := filter.DefaultCannyOptions()
	opts.Radius = s.RadiusOr(opts.Radius)
	if s.Sigma != 0 {
		opts.Sigma = s.Sigma
	}
	if s.Low != 0 || s.High != 0 {
		opts.Low, opts.High = s.Low, s.High
	}
	return opts
}

func (s PipelineStep) CropOptions() filter.CropOptions {
	return filter.CropOptions{Width: s.Width, Height: s.Height, OffsetX: s.OffsetX, OffsetY: s.OffsetY}
}

// Validate checks everything that does not depend on the source image.
// Crop bounds are checked again once the source size is known.
func (s PipelineStep) Validate() error {
	if strings.TrimSpace(s.Action) == "" {
		return errors.New("action is required")
	}
	if _, err := s.ChannelSet(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Format) != "" {
		if _, err := codec.NormalizeFormat(s.Format); err != nil {
			return err
		}
	}
	if s.Quality < 0 || s.Quality > 100 {
		return fmt.Errorf("%w: quality %d must be within 0..100", raster.ErrInvalidParameter, s.Quality)
	}

	switch s.NormalizedAction() {
	case ActionGrayscale, ActionSepia, ActionNegative:
		return nil
	case ActionGamma:
		if s.Gamma <= 0 {
			return fmt.Errorf("%w: gamma %v must be positive", raster.ErrInvalidParameter, s.Gamma)
		}
	case ActionBlurMean:
		return checkRadius(s.RadiusOr(DefaultBlurRadius))
	case ActionBlurGaussian:
		if err := checkRadius(s.RadiusOr(DefaultBlurRadius)); err != nil {
			return err
		}
		if s.Sigma <= 0 {
			return fmt.Errorf("%w: sigma %v must be positive", raster.ErrInvalidParameter, s.Sigma)
		}
	case ActionKuwahara:
		return checkRadius(s.RadiusOr(filter.DefaultKuwaharaRadius))
	case ActionCanny:
		return s.CannyOptions().Validate()
	case ActionCrop:
		if s.Width <= 0 || s.Height <= 0 || s.OffsetX < 0 || s.OffsetY < 0 {
			return fmt.Errorf("%w: crop %dx%d+%d+%d needs a positive size and non-negative offset",
				raster.ErrInvalidParameter, s.Width, s.Height, s.OffsetX, s.OffsetY)
		}
	case ActionResize:
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: resize target %dx%d must be positive", raster.ErrInvalidParameter, s.Width, s.Height)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, s.Action)
	}
	return nil
}

func checkRadius(r int) error {
	if r < 0 {
		return fmt.Errorf("%w: radius %d must not be negative", raster.ErrInvalidParameter, r)
	}
	return nil
}
