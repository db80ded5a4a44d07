package domain

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestEmbeddingUsage_Concurrent(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			UsageFromContext(ctx).Add(3)
		}()
	}
	wg.Wait()

	if u.Tokens() != 150 || u.Calls() != 50 {
		t.Fatalf("got %d tokens / %d calls", u.Tokens(), u.Calls())
	}
}

func TestEmbeddingUsage_NilSafe(t *testing.T) {
	u := UsageFromContext(context.Background())
	if u != nil {
		t.Fatal("expected nil collector without install")
	}
	u.Add(10)
	if u.Tokens() != 0 || u.Calls() != 0 {
		t.Fatal("nil collector must report zero")
	}
}

func TestEmbeddingUsage_LoadFailureKeepsFirst(t *testing.T) {
	_, u := NewContextWithUsage(context.Background())
	if u.LoadFailure() != nil {
		t.Fatal("fresh collector has no failure")
	}

	first := errors.New("connection refused")
	u.RecordLoadFailure(first)
	u.RecordLoadFailure(errors.New("timeout"))
	if !errors.Is(u.LoadFailure(), first) {
		t.Errorf("LoadFailure = %v, want the first error", u.LoadFailure())
	}

	var none *EmbeddingUsage
	none.RecordLoadFailure(first)
	if none.LoadFailure() != nil {
		t.Error("nil collector must report no failure")
	}
}
