package index

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/starford/codevault/internal/models"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatcher_StoreChangesReachIndex(t *testing.T) {
	db := testDB(t)
	st := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	syncer := NewSyncer(db, st, quietLogger())
	syncer.OnChange(func(kind string, id uint32) {
		mu.Lock()
		events = append(events, fmt.Sprintf("%s:%d", kind, id))
		mu.Unlock()
	})

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, syncer, st.Path(), quietLogger())
	}()
	// Let the watcher register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := st.Append(snippet(1, "watched", "code")); err != nil {
		t.Fatal(err)
	}
	eventually(t, 3*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum(1)
		return cs != ""
	}, "snippet 1 was not indexed")

	if err := st.ReplaceAll([]models.Snippet{}); err != nil {
		t.Fatal(err)
	}
	eventually(t, 3*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum(1)
		return cs == ""
	}, "snippet 1 was not removed")

	mu.Lock()
	got := append([]string(nil), events...)
	mu.Unlock()
	if len(got) < 2 || got[0] != "created:1" || got[len(got)-1] != "deleted:1" {
		t.Errorf("events = %v", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop")
	}
}

func TestWatcher_ExplicitSyncStillPublishes(t *testing.T) {
	db := testDB(t)
	st := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string
	syncer := NewSyncer(db, st, quietLogger())
	syncer.OnChange(func(kind string, id uint32) {
		mu.Lock()
		events = append(events, fmt.Sprintf("%s:%d", kind, id))
		mu.Unlock()
	})

	go func() { _ = Watch(ctx, syncer, st.Path(), quietLogger()) }()
	time.Sleep(100 * time.Millisecond)

	if err := st.Append(snippet(1, "raced", "code")); err != nil {
		t.Fatal(err)
	}
	// A search arriving before the debounce fires indexes the change first.
	if _, err := syncer.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	// Outlast the debounced watcher pass.
	time.Sleep(3 * debounce)
	mu.Lock()
	got := append([]string(nil), events...)
	mu.Unlock()
	if len(got) != 1 || got[0] != "created:1" {
		t.Errorf("events = %v, want exactly [created:1]", got)
	}
}

func TestSyncer_ConcurrentPassesReportOnce(t *testing.T) {
	db := testDB(t)
	st := testStore(t)
	for i := uint32(1); i <= 5; i++ {
		if err := st.Append(snippet(i, fmt.Sprintf("s%d", i), "code")); err != nil {
			t.Fatal(err)
		}
	}

	var mu sync.Mutex
	counts := map[string]int{}
	syncer := NewSyncer(db, st, quietLogger())
	syncer.OnChange(func(kind string, id uint32) {
		mu.Lock()
		counts[fmt.Sprintf("%s:%d", kind, id)]++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := syncer.Sync(); err != nil {
				t.Errorf("Sync: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(counts) != 5 {
		t.Fatalf("events = %v, want one created event per snippet", counts)
	}
	for k, n := range counts {
		if n != 1 {
			t.Errorf("%s reported %d times", k, n)
		}
	}
}
