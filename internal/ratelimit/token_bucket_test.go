package ratelimit

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisTokenBucketValidates(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	if _, err := NewRedisTokenBucket(nil, 10, time.Minute, ""); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewRedisTokenBucket(client, 0, time.Minute, ""); err == nil {
		t.Fatal("expected error for zero capacity")
	}
	if _, err := NewRedisTokenBucket(client, 10, 0, ""); err == nil {
		t.Fatal("expected error for zero window")
	}

	l, err := NewRedisTokenBucket(client, 60, time.Minute, "")
	if err != nil {
		t.Fatalf("new bucket: %v", err)
	}
	if got := l.key("user-1"); got != DefaultKeyPrefix+":user-1" {
		t.Fatalf("unexpected key %q", got)
	}
	if l.refillPerMS != 0.001 {
		t.Fatalf("expected refill of 0.001 tokens/ms, got %v", l.refillPerMS)
	}
}

func TestParseDecision(t *testing.T) {
	d, err := parseDecision([]any{int64(0), "4", int64(1500)})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Allowed || d.Remaining != 4 || d.RetryAfter != 1500*time.Millisecond {
		t.Fatalf("unexpected decision %+v", d)
	}

	if _, err := parseDecision([]any{int64(1)}); err == nil {
		t.Fatal("expected error for short response")
	}
	if _, err := parseDecision([]any{int64(1), true, int64(0)}); err == nil {
		t.Fatal("expected error for non-numeric field")
	}
}
