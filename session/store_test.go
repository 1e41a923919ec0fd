package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStoreTest(t *testing.T) (*Store, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(rdb, "sg")
	return store, mr, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func TestSaveGetDeleteEntry(t *testing.T) {
	store, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	entry := &Entry{
		Token:     "tok-1",
		UserID:    "u-1",
		Role:      "member",
		CreatedAt: time.Now().Unix(),
	}

	if err := store.SaveEntry(ctx, entry, time.Hour); err != nil {
		t.Fatalf("save entry: %v", err)
	}

	got, err := store.GetEntry(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if got.Token != "tok-1" || got.UserID != "u-1" || got.Role != "member" {
		t.Fatalf("unexpected entry: %+v", got)
	}

	if err := store.DeleteEntry(ctx, "tok-1"); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if _, err := store.GetEntry(ctx, "tok-1"); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}

	// Second delete is a no-op, not an error.
	if err := store.DeleteEntry(ctx, "tok-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestEntryExpiresPassively(t *testing.T) {
	store, mr, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	entry := &Entry{Token: "tok-1", UserID: "u-1", Role: "member"}
	if err := store.SaveEntry(ctx, entry, time.Minute); err != nil {
		t.Fatalf("save entry: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.GetEntry(ctx, "tok-1"); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after TTL expiry, got %v", err)
	}
}

func TestPushSessionEvictsOldestOnOverflow(t *testing.T) {
	store, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		length, evicted, err := store.PushSession(ctx, "u-1", fmt.Sprintf("t%d", i), 3)
		if err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
		if evicted != "" {
			t.Fatalf("push %d evicted %q below cap", i, evicted)
		}
		if length != i {
			t.Fatalf("push %d: length %d", i, length)
		}
	}

	length, evicted, err := store.PushSession(ctx, "u-1", "t4", 3)
	if err != nil {
		t.Fatalf("push overflow: %v", err)
	}
	if evicted != "t1" {
		t.Fatalf("expected oldest token t1 evicted, got %q", evicted)
	}
	if length != 3 {
		t.Fatalf("expected settled length 3, got %d", length)
	}

	tokens, err := store.SessionTokens(ctx, "u-1")
	if err != nil {
		t.Fatalf("session tokens: %v", err)
	}
	want := []string{"t2", "t3", "t4"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tokens)
		}
	}
}

func TestPushSessionConcurrentRespectsCap(t *testing.T) {
	store, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	const logins = 20
	var wg sync.WaitGroup
	errs := make(chan error, logins)

	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := store.PushSession(ctx, "u-1", fmt.Sprintf("t%d", i), 3)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent push: %v", err)
		}
	}

	count, err := store.SessionCount(ctx, "u-1")
	if err != nil {
		t.Fatalf("session count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected settled count 3 after %d concurrent pushes, got %d", logins, count)
	}
}

func TestRemoveSessionByValue(t *testing.T) {
	store, _, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	for _, tok := range []string{"t1", "t2", "t3"} {
		if _, _, err := store.PushSession(ctx, "u-1", tok, 5); err != nil {
			t.Fatalf("push %s: %v", tok, err)
		}
	}

	// Middle of the list: removal is by value, not position.
	if err := store.RemoveSession(ctx, "u-1", "t2"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	tokens, err := store.SessionTokens(ctx, "u-1")
	if err != nil {
		t.Fatalf("session tokens: %v", err)
	}
	if len(tokens) != 2 || tokens[0] != "t1" || tokens[1] != "t3" {
		t.Fatalf("expected [t1 t3], got %v", tokens)
	}

	// Absent value is a no-op.
	if err := store.RemoveSession(ctx, "u-1", "t2"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestStoreWrapsTransportFailures(t *testing.T) {
	store, mr, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	mr.SetError("cache down")

	if err := store.SaveEntry(ctx, &Entry{Token: "t", UserID: "u"}, time.Hour); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable from save, got %v", err)
	}
	if _, err := store.GetEntry(ctx, "t"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable from get, got %v", err)
	}
	if _, _, err := store.PushSession(ctx, "u", "t", 3); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable from push, got %v", err)
	}
}
