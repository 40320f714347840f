package context

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeoutOrCancel(t *testing.T) {
	ctx, cancel := WithTimeoutOrCancel(context.Background(), 10*time.Millisecond)
	defer cancel()

	if IsCanceled(ctx) {
		t.Error("fresh context should not be canceled")
	}

	<-ctx.Done()

	if !IsCanceled(ctx) {
		t.Error("expired context should report canceled")
	}
	if !IsTimedOut(ctx) {
		t.Error("expired context should report timed out")
	}
}

func TestWithDeadlineOrCancel(t *testing.T) {
	ctx, cancel := WithDeadlineOrCancel(context.Background(), time.Now().Add(time.Hour))
	if IsTimedOut(ctx) {
		t.Error("context with a future deadline should not report timed out")
	}

	cancel()

	if !IsCanceled(ctx) {
		t.Error("canceled context should report canceled")
	}
	if IsTimedOut(ctx) {
		t.Error("explicit cancellation is not a timeout")
	}
}
