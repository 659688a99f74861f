package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
)

const (
	DefaultMaxRetry = 5
	DefaultTimeout  = 3 * time.Minute
)

type Client struct {
	client  *asynq.Client
	queue   string
	timeout time.Duration
}

// NewClient enqueues onto queueName. Jobs that exceed timeout are cancelled
// by the worker; a non-positive timeout selects DefaultTimeout.
func NewClient(redisOpt asynq.RedisClientOpt, queueName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client:  asynq.NewClient(redisOpt),
		queue:   queueName,
		timeout: timeout,
	}
}

func (c *Client) EnqueueFilterImage(ctx context.Context, payload FilterImagePayload) (*asynq.TaskInfo, error) {
	task, err := NewFilterImageTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(
		ctx,
		task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(DefaultMaxRetry),
		asynq.Timeout(c.timeout),
		asynq.TaskID(payload.JobID),
	)
}

func (c *Client) Close() error {
	return c.client.Close()
}
