package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockAuthorizeAndCapture(t *testing.T) {
	gw := NewMock()
	ctx := context.Background()

	auth, err := gw.Authorize(ctx, 1499.0, "card")
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if !strings.HasPrefix(auth.OrderRef, "order_") {
		t.Fatalf("unexpected order ref %q", auth.OrderRef)
	}
	if auth.Amount != 1499.0 || auth.Method != "card" {
		t.Fatalf("authorization did not echo inputs: %+v", auth)
	}

	receipt, err := gw.Capture(ctx, auth.OrderRef)
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if !strings.HasPrefix(receipt.PaymentID, "pay_") || receipt.OrderRef != auth.OrderRef {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	// an authorization can only be captured once
	if _, err := gw.Capture(ctx, auth.OrderRef); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined on second capture, got %v", err)
	}
}

func TestMockAuthorizeInvalidAmount(t *testing.T) {
	gw := NewMock()
	for _, amount := range []float64{0, -50} {
		if _, err := gw.Authorize(context.Background(), amount, "card"); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Authorize(%v) = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestMockCaptureUnknownRef(t *testing.T) {
	gw := NewMock()
	if _, err := gw.Capture(context.Background(), "order_nonexistent"); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined for unknown ref, got %v", err)
	}
}

func TestMockFailNext(t *testing.T) {
	gw := NewMock()
	ctx := context.Background()

	auth, err := gw.Authorize(ctx, 200, "upi")
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}

	gw.FailNext()
	if _, err := gw.Capture(ctx, auth.OrderRef); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected queued decline, got %v", err)
	}

	// the decline is one-shot and consumed the authorization
	auth2, err := gw.Authorize(ctx, 200, "upi")
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if _, err := gw.Capture(ctx, auth2.OrderRef); err != nil {
		t.Fatalf("capture after consumed decline should succeed, got %v", err)
	}
}
