package token

import (
	"testing"
	"time"

	"github.com/triply/triply-go/internal/models"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	if _, ok := store.Get(); ok {
		t.Fatal("fresh store should be empty")
	}

	if err := store.Set("tok-1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, ok := store.Get()
	if !ok || got != "tok-1" {
		t.Errorf("Get = (%q, %v), want (tok-1, true)", got, ok)
	}

	// Last writer wins.
	if err := store.Set("tok-2"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, _ = store.Get()
	if got != "tok-2" {
		t.Errorf("Get = %q, want tok-2", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("store should be empty after Clear")
	}

	// Clear is idempotent.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestMemoryStoreNotifiesSynchronously(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	calls := 0
	cancel := store.Subscribe(func() { calls++ })

	_ = store.Set("tok")
	if calls != 1 {
		t.Errorf("after Set: %d notifications, want 1", calls)
	}

	_ = store.Clear()
	if calls != 2 {
		t.Errorf("after Clear: %d notifications, want 2", calls)
	}

	cancel()
	_ = store.Set("tok-2")
	if calls != 2 {
		t.Errorf("after cancel: %d notifications, want 2", calls)
	}
}

func TestScratchCache(t *testing.T) {
	t.Parallel()

	scratch := NewScratch(time.Hour)
	trip := &models.Trip{Advice: "cached"}

	key := scratch.Put(trip)
	if key == "" {
		t.Fatal("Put returned an empty key")
	}

	got, ok := scratch.Get(key)
	if !ok || got.Advice != "cached" {
		t.Errorf("Get = (%v, %v), want the cached trip", got, ok)
	}

	if _, ok := scratch.Get("missing"); ok {
		t.Error("unknown key should miss")
	}

	// Two puts get distinct keys.
	if other := scratch.Put(trip); other == key {
		t.Error("Put reused a key")
	}
}

func TestScratchExpiry(t *testing.T) {
	t.Parallel()

	scratch := NewScratch(time.Minute)
	base := time.Now()
	scratch.now = func() time.Time { return base }

	key := scratch.Put(&models.Trip{})

	scratch.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := scratch.Get(key); ok {
		t.Error("expired entry should miss")
	}
}
