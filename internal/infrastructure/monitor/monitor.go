// Package monitor periodically checks the durable key-value store backing
// the identity subsystem and feeds the health endpoint.
package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eduverse/backend/internal/infrastructure/kvstore"
)

// Status is the last observed health of the storage layer.
type Status struct {
	Store     bool      `json:"store"`
	KeyCount  int       `json:"key_count"`
	LastCheck time.Time `json:"last_check"`
}

// Sizer is the slice of the store the monitor needs beyond Get/Put/Delete.
type Sizer interface {
	Size() (int, error)
}

type Monitor struct {
	store kvstore.Store

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(store kvstore.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	ok, keys := m.checkStore()
	status := Status{
		Store:     ok,
		KeyCount:  keys,
		LastCheck: time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkStore() (bool, int) {
	if m.store == nil {
		return false, 0
	}
	sizer, ok := m.store.(Sizer)
	if !ok {
		// A store without Size is still reachable if a probe read works.
		_, err := m.store.Get("monitor.probe")
		return err == nil, 0
	}
	size, err := sizer.Size()
	if err != nil {
		m.logger.Warn("store size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
