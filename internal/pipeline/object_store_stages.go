package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dunamismax/pixlens/internal/codec"
	"github.com/dunamismax/pixlens/internal/domain"
	"github.com/dunamismax/pixlens/internal/raster"
	"github.com/dunamismax/pixlens/internal/storage"
)

const DefaultOutputPrefix = "outputs"

// ObjectStore is the subset of storage.Client the object-store stages use.
type ObjectStore interface {
	ReadObject(ctx context.Context, objectKey string) ([]byte, error)
	WriteObject(ctx context.Context, objectKey string, data []byte, contentType string) error
}

func NewObjectStoreProcessor(objects ObjectStore, outputPrefix string, threads raster.Threads) (*Processor, error) {
	if objects == nil {
		return nil, errors.New("object store is required")
	}
	return NewProcessor(
		ObjectStoreFetcher{Storage: objects},
		FilterTransformer{Threads: threads},
		ObjectStoreEmitter{Storage: objects, OutputPrefix: outputPrefix},
	)
}

type ObjectStoreFetcher struct {
	Storage ObjectStore
}

func (f ObjectStoreFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if f.Storage == nil {
		return nil, errors.New("storage client is required")
	}
	if !strings.EqualFold(req.SourceType, domain.SourceTypeS3Presigned) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSourceType, req.SourceType)
	}
	return f.Storage.ReadObject(ctx, req.ObjectKey)
}

type ObjectStoreEmitter struct {
	Storage      ObjectStore
	OutputPrefix string
}

func (e ObjectStoreEmitter) Emit(ctx context.Context, req Request, step domain.PipelineStep, data []byte, format string, width, height int) (Output, error) {
	if e.Storage == nil {
		return Output{}, errors.New("storage client is required")
	}
	if strings.TrimSpace(step.ID) == "" {
		return Output{}, errors.New("pipeline step id is required")
	}

	prefix := strings.TrimSpace(e.OutputPrefix)
	if prefix == "" {
		prefix = DefaultOutputPrefix
	}
	objectKey := storage.OutputKey(prefix, sanitizePathToken(req.JobID), outputName(step.ID, format))

	if err := e.Storage.WriteObject(ctx, objectKey, data, codec.ContentType(format)); err != nil {
		return Output{}, err
	}

	return Output{
		StepID:  step.ID,
		Action:  step.NormalizedAction(),
		Format:  format,
		Path:    objectKey,
		Bytes:   len(data),
		Width:   width,
		Height:  height,
		Success: true,
	}, nil
}
