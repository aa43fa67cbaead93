package cache

import (
	"log/slog"
	"time"
)

// Cleaner is implemented by caches that support expiry sweeps.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically sweeps expired entries from registered caches.
type Manager struct {
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a cache to the manager. Not safe to call after
// StartCleanup.
func (m *Manager) Register(cache Cleaner) {
	m.caches = append(m.caches, cache)
}

// StartCleanup begins periodic cleanup of all registered caches.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.cleanup(interval)
}

// StopCleanup stops the cleanup loop and waits for it to exit.
func (m *Manager) StopCleanup() {
	close(m.stopCleanup)
	<-m.cleanupDone
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			total := 0
			for _, c := range m.caches {
				total += c.CleanExpired()
			}
			if total > 0 {
				slog.Debug("Cleaned expired cache entries", "count", total)
			}
		case <-m.stopCleanup:
			return
		}
	}
}
