package ctxmeta

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	got, ok := RequestIDFromContext(ctx)
	if !ok || got != "req-1" {
		t.Fatalf("want req-1, got %q ok=%v", got, ok)
	}
}

func TestRequestID_EmptyIsNoop(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Fatalf("empty request_id must not be stored")
	}
}

func TestConnID_RoundTrip(t *testing.T) {
	ctx := WithConnID(context.Background(), "conn-abc")

	got, ok := ConnIDFromContext(ctx)
	if !ok || got != "conn-abc" {
		t.Fatalf("want conn-abc, got %q ok=%v", got, ok)
	}
}

func TestConnID_MissingByDefault(t *testing.T) {
	if _, ok := ConnIDFromContext(context.Background()); ok {
		t.Fatalf("conn_id must be absent in a fresh context")
	}
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithConnID(ctx, "conn-1")

	if got, _ := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("request_id clobbered: %q", got)
	}
	if got, _ := ConnIDFromContext(ctx); got != "conn-1" {
		t.Fatalf("conn_id clobbered: %q", got)
	}
}
