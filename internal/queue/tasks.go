package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dunamismax/pixlens/internal/domain"
	"github.com/hibiken/asynq"
)

const TypeFilterImage = "image:filter"

type FilterImagePayload struct {
	JobID       string                `json:"job_id"`
	UserID      string                `json:"user_id,omitempty"`
	SourceType  string                `json:"source_type"`
	WebhookURL  string                `json:"webhook_url,omitempty"`
	ObjectKey   string                `json:"object_key"`
	Pipeline    []domain.PipelineStep `json:"pipeline"`
	RequestedAt time.Time             `json:"requested_at"`
}

func NewFilterImageTask(payload FilterImagePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal filter payload: %w", err)
	}
	return asynq.NewTask(TypeFilterImage, body), nil
}

func ParseFilterImagePayload(task *asynq.Task) (FilterImagePayload, error) {
	var payload FilterImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FilterImagePayload{}, fmt.Errorf("unmarshal filter payload: %w", err)
	}
	if payload.JobID == "" {
		return FilterImagePayload{}, fmt.Errorf("filter payload has no job_id")
	}
	return payload, nil
}
