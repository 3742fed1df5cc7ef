package selection

import (
	"sync"
	"testing"
)

func TestSessionCachePutGet(t *testing.T) {
	c := NewSessionCache()
	s := testSession("s1", 0, 9)
	c.Put(s)

	got, ok := c.Get("s1")
	if !ok {
		t.Fatalf("expected s1 in cache")
	}
	if got.ID != "s1" || !got.Start.Equal(s.Start) {
		t.Fatalf("cached session does not match input")
	}
	if !c.Has("s1") || c.Has("s2") {
		t.Fatalf("Has gave wrong answers")
	}
}

func TestSessionCacheUpsertKeepsOrder(t *testing.T) {
	c := NewSessionCache()
	c.Put(testSession("s1", 0, 9))
	c.Put(testSession("s2", 1, 9))

	// Re-putting s1 with fresh data overwrites the record but keeps its
	// first-seen position.
	updated := testSession("s1", 0, 9)
	updated.SeatsAvailable = 1
	c.Put(updated)

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(all))
	}
	if all[0].ID != "s1" || all[1].ID != "s2" {
		t.Fatalf("iteration order changed: %s, %s", all[0].ID, all[1].ID)
	}
	if all[0].SeatsAvailable != 1 {
		t.Fatalf("upsert did not overwrite record")
	}
}

func TestSessionCacheMissing(t *testing.T) {
	c := NewSessionCache()
	c.Put(testSession("s2", 1, 9))

	missing := c.Missing([]string{"s1", "s2", "s3"})
	if len(missing) != 2 || missing[0] != "s1" || missing[1] != "s3" {
		t.Fatalf("unexpected missing set: %v", missing)
	}
}

func TestSessionCacheConcurrentPut(t *testing.T) {
	c := NewSessionCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// Interleaved duplicate writes must collapse to one entry each.
			c.Put(testSession("a", 0, 9))
			c.Put(testSession("b", n%10, 9))
		}(i)
	}
	wg.Wait()

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries after concurrent puts, got %d", c.Len())
	}
}
