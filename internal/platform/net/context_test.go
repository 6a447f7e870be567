package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()
	if RequestID(context.Background()) != "" {
		t.Fatalf("empty context should have no id")
	}
	ctx := WithRequestID(context.Background(), "abc")
	if RequestID(ctx) != "abc" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	if WithRequestID(ctx, "") != ctx {
		t.Fatalf("empty id should not wrap")
	}
}
