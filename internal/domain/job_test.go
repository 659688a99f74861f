package domain

import (
	"errors"
	"testing"

	"github.com/dunamismax/pixlens/internal/raster"
)

func intPtr(v int) *int { return &v }

func TestCreateJobRequestValidate(t *testing.T) {
	valid := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Pipeline: []PipelineStep{
			{ID: "gray", Action: ActionGrayscale},
			{ID: "soft", Action: ActionBlurGaussian, Radius: intPtr(3), Sigma: 1.5},
			{ID: "edges", Action: ActionCanny},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got error: %v", err)
	}

	invalid := CreateJobRequest{}
	if err := invalid.Validate(); err == nil {
		t.Fatal("expected validation error for empty request")
	}

	missingObjectKey := CreateJobRequest{
		SourceType: SourceTypeLocalFile,
		Pipeline:   []PipelineStep{{ID: "gray", Action: ActionGrayscale}},
	}
	if err := missingObjectKey.Validate(); err == nil {
		t.Fatal("expected validation error for local_file object_key")
	}

	unsupportedSourceType := CreateJobRequest{
		SourceType: "http_url",
		Pipeline:   []PipelineStep{{ID: "gray", Action: ActionGrayscale}},
	}
	if err := unsupportedSourceType.Validate(); err == nil {
		t.Fatal("expected validation error for unsupported source_type")
	}

	duplicateIDs := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Pipeline: []PipelineStep{
			{ID: "a", Action: ActionSepia},
			{ID: "a", Action: ActionNegative},
		},
	}
	if err := duplicateIDs.Validate(); err == nil {
		t.Fatal("expected validation error for duplicate step ids")
	}
}

func TestPipelineStepValidateRejectsBadParameters(t *testing.T) {
	cases := map[string]PipelineStep{
		"negative radius":   {ID: "s", Action: ActionBlurMean, Radius: intPtr(-1)},
		"zero sigma":        {ID: "s", Action: ActionBlurGaussian, Radius: intPtr(2)},
		"zero gamma":        {ID: "s", Action: ActionGamma},
		"kuwahara radius":   {ID: "s", Action: ActionKuwahara, Radius: intPtr(-3)},
		"canny thresholds":  {ID: "s", Action: ActionCanny, Low: 40, High: 20},
		"crop size":         {ID: "s", Action: ActionCrop, Width: 0, Height: 4},
		"crop offset":       {ID: "s", Action: ActionCrop, Width: 2, Height: 2, OffsetX: -1},
		"resize target":     {ID: "s", Action: ActionResize, Width: 10},
		"duplicate channel": {ID: "s", Action: ActionSepia, Channels: "RR"},
		"quality":           {ID: "s", Action: ActionSepia, Quality: 101},
	}
	for name, step := range cases {
		if err := step.Validate(); !errors.Is(err, raster.ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", name, err)
		}
	}

	if err := (PipelineStep{ID: "s", Action: "watermark"}).Validate(); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestPipelineStepDefaults(t *testing.T) {
	step := PipelineStep{Action: " Canny ", Sigma: 1.4}
	if step.NormalizedAction() != ActionCanny {
		t.Fatalf("unexpected normalized action %q", step.NormalizedAction())
	}

	opts := step.CannyOptions()
	if opts.Radius != 2 || opts.Sigma != 1.4 || opts.Low != 10 || opts.High != 20 {
		t.Fatalf("unexpected canny options %+v", opts)
	}

	if got := (PipelineStep{}).RadiusOr(5); got != 5 {
		t.Fatalf("expected fallback radius 5, got %d", got)
	}
	if got := (PipelineStep{Radius: intPtr(0)}).RadiusOr(5); got != 0 {
		t.Fatalf("expected explicit radius 0, got %d", got)
	}
}
