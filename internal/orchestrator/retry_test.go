package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func testRetryer(attempts uint) *Retryer {
	return &Retryer{
		Attempts:  attempts,
		BaseDelay: time.Millisecond,
		Logger:    slog.Default(),
	}
}

func TestRetryerDo(t *testing.T) {
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), testRetryer(3), "op", func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})
		if err != nil {
			t.Fatalf("Do() error: %v", err)
		}
		if got != "ok" || calls != 1 {
			t.Errorf("got %q after %d calls, want ok after 1", got, calls)
		}
	})

	t.Run("recovers after two failures", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), testRetryer(3), "op", func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}
			return 42, nil
		})
		if err != nil {
			t.Fatalf("Do() error: %v", err)
		}
		if got != 42 {
			t.Errorf("got %d, want 42", got)
		}
		if calls != 3 {
			t.Errorf("op called %d times, want 3", calls)
		}
	})

	t.Run("exhausts attempts and returns last error", func(t *testing.T) {
		wantErr := errors.New("persistent")
		calls := 0
		_, err := Do(context.Background(), testRetryer(2), "op", func(ctx context.Context) (int, error) {
			calls++
			return 0, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("error = %v, want %v", err, wantErr)
		}
		if calls != 2 {
			t.Errorf("op called %d times, want 2", calls)
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := Do(ctx, &Retryer{Attempts: 5, BaseDelay: 50 * time.Millisecond}, "op",
			func(ctx context.Context) (int, error) {
				calls++
				cancel()
				return 0, errors.New("transient")
			})
		if err == nil {
			t.Fatal("Do() should fail after cancellation")
		}
		if calls >= 5 {
			t.Errorf("op called %d times, expected early stop", calls)
		}
	})
}
