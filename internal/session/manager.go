package session

import (
	"errors"
	"sync"
	"time"

	"github.com/2beens/ironai/internal/fitness"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var ErrSessionInProgress = errors.New("user already has an active session")

const (
	DefaultIdleTimeout     = 3 * time.Hour
	DefaultCleanupInterval = time.Minute
)

type ManagerParams struct {
	Clock           clock.Clock
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
	// ActiveSessions is optional.
	ActiveSessions prometheus.Gauge
}

// Manager owns the live runners, at most one per user.
type Manager struct {
	mu      sync.Mutex
	runners map[string]*Runner
	byUser  map[string]string

	clock           clock.Clock
	idleTimeout     time.Duration
	cleanupInterval time.Duration
	activeSessions  prometheus.Gauge

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewManager(params ManagerParams) *Manager {
	clk := params.Clock
	if clk == nil {
		clk = clock.WallClock
	}
	idleTimeout := params.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	cleanupInterval := params.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	m := &Manager{
		runners:         make(map[string]*Runner),
		byUser:          make(map[string]string),
		clock:           clk,
		idleTimeout:     idleTimeout,
		cleanupInterval: cleanupInterval,
		activeSessions:  params.ActiveSessions,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
	go m.cleanupLoop()

	return m
}

func (m *Manager) Start(userID string, plan fitness.WorkoutPlan) (*Runner, error) {
	userID = fitness.NormalizeUserID(userID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byUser[userID]; ok {
		return nil, ErrSessionInProgress
	}

	runner, err := NewRunner(uuid.NewString(), userID, plan, m.clock)
	if err != nil {
		return nil, err
	}

	m.runners[runner.ID()] = runner
	m.byUser[userID] = runner.ID()
	m.updateGauge()

	log.Debugf("session: started [%s] for user [%s], plan [%s]", runner.ID(), userID, plan.ID)

	return runner, nil
}

func (m *Manager) Get(id string) (*Runner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runner, ok := m.runners[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return runner, nil
}

// Release forgets a finished session once its record is durably stored.
func (m *Manager) Release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
}

func (m *Manager) Abandon(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	runner, ok := m.runners[id]
	if !ok {
		return ErrSessionNotFound
	}
	if err := runner.Abandon(); err != nil {
		return err
	}
	m.remove(id)

	log.Debugf("session: abandoned [%s]", id)

	return nil
}

func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runners)
}

// Stop ends the cleanup loop and abandons all live sessions.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		<-m.done

		m.mu.Lock()
		runners := make([]*Runner, 0, len(m.runners))
		for id, runner := range m.runners {
			_ = runner.Abandon()
			runners = append(runners, runner)
			m.remove(id)
		}
		m.mu.Unlock()

		for _, runner := range runners {
			runner.Wait()
		}
		log.Debugf("session manager stopped, %d sessions abandoned", len(runners))
	})
}

func (m *Manager) cleanupLoop() {
	defer close(m.done)
	for {
		select {
		case <-m.stop:
			return
		case <-m.clock.After(m.cleanupInterval):
			if n := m.abandonIdle(); n > 0 {
				log.Infof("session: abandoned %d idle sessions", n)
			}
		}
	}
}

func (m *Manager) abandonIdle() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	abandoned := 0
	for id, runner := range m.runners {
		if now.Sub(runner.lastTouched()) < m.idleTimeout {
			continue
		}
		_ = runner.Abandon()
		m.remove(id)
		abandoned++
	}
	return abandoned
}

// remove must be called with mu held.
func (m *Manager) remove(id string) {
	runner, ok := m.runners[id]
	if !ok {
		return
	}
	delete(m.runners, id)
	if m.byUser[runner.UserID()] == id {
		delete(m.byUser, runner.UserID())
	}
	m.updateGauge()
}

func (m *Manager) updateGauge() {
	if m.activeSessions != nil {
		m.activeSessions.Set(float64(len(m.runners)))
	}
}
