package leaderboard

import "time"

// snapshotCache holds one computed top-N snapshot for a fixed freshness
// window. It is invalidated synchronously whenever any high score changes, so
// a fresh snapshot is always consistent with the table. Not safe for
// concurrent use on its own; the Service mutex guards it.
type snapshotCache struct {
	ttl        time.Duration
	now        func() time.Time // injectable for tests
	entries    []Entry
	capturedAt time.Time
	valid      bool
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached snapshot if it is valid and within the freshness
// window.
func (c *snapshotCache) Get() ([]Entry, bool) {
	if !c.valid {
		return nil, false
	}
	if c.now().Sub(c.capturedAt) > c.ttl {
		return nil, false
	}
	return c.entries, true
}

// Put stores a freshly computed snapshot.
func (c *snapshotCache) Put(entries []Entry) {
	c.entries = entries
	c.capturedAt = c.now()
	c.valid = true
}

// Invalidate discards the snapshot immediately.
func (c *snapshotCache) Invalidate() {
	c.entries = nil
	c.valid = false
}
