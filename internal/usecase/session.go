package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pantryscan/backend/internal/domain"
)

// SessionState is the lifecycle state of one scanning session
type SessionState string

const (
	// SessionScanning means the session is consuming decode frames
	SessionScanning SessionState = "scanning"
	// SessionConfirmed means a code was confirmed; further frames are ignored
	SessionConfirmed SessionState = "confirmed"
	// SessionStopped means the session was torn down without resolving
	SessionStopped SessionState = "stopped"
)

// SessionStatus is the externally visible snapshot of a scan session
type SessionStatus struct {
	ID            string       `json:"id"`
	State         SessionState `json:"state"`
	ConfirmedCode string       `json:"confirmedCode,omitempty"`
	SuggestedName string       `json:"suggestedName,omitempty"`
	Log           []string     `json:"log"`
}

// scanSession holds the transient state of one scanning session. The mutex
// serializes frames so decode events are processed strictly in arrival
// order, one at a time.
type scanSession struct {
	mu            sync.Mutex
	id            string
	state         SessionState
	confirmer     *ScanConfirmer
	confirmedCode string
	suggestedName string
	log           []string
	lastActive    time.Time
}

func (s *scanSession) statusLocked() SessionStatus {
	logCopy := make([]string, len(s.log))
	copy(logCopy, s.log)
	return SessionStatus{
		ID:            s.id,
		State:         s.state,
		ConfirmedCode: s.confirmedCode,
		SuggestedName: s.suggestedName,
		Log:           logCopy,
	}
}

func (s *scanSession) appendLogLocked(line string) {
	s.log = append(s.log, line)
}

// ScanManager orchestrates scan sessions: it owns the active-session flag,
// feeds raw frames to each session's confirmer, triggers product resolution
// on confirmation, and discards resolutions that finish after the session
// was stopped. The external decoder lives client side; clients submit its
// raw decode events as frames.
type ScanManager struct {
	mu       sync.Mutex
	sessions map[string]*scanSession
	activeID string

	resolver *ProductResolver
	ttl      time.Duration
	now      func() time.Time
}

// NewScanManager creates a scan manager. Idle sessions are evicted after ttl.
func NewScanManager(resolver *ProductResolver, ttl time.Duration) *ScanManager {
	m := &ScanManager{
		sessions: make(map[string]*scanSession),
		resolver: resolver,
		ttl:      ttl,
		now:      time.Now,
	}

	// Sweep expired sessions so abandoned scans don't accumulate
	go m.sweepExpired()

	return m
}

// Start begins a scanning session. While a session is already actively
// scanning, Start is a no-op that returns that session unchanged.
func (m *ScanManager) Start(ctx context.Context) SessionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if active, ok := m.sessions[m.activeID]; ok {
		active.mu.Lock()
		if active.state == SessionScanning && !m.expiredLocked(active) {
			st := active.statusLocked()
			active.mu.Unlock()
			return st
		}
		active.mu.Unlock()
	}

	sess := &scanSession{
		id:         uuid.NewString(),
		state:      SessionScanning,
		confirmer:  NewScanConfirmer(),
		lastActive: m.now(),
	}
	sess.appendLogLocked("scanner started")
	m.sessions[sess.id] = sess
	m.activeID = sess.id
	return sess.statusLocked()
}

// SubmitFrame feeds one raw decode event into a session. On the read that
// completes the repeat-consensus, the code is resolved against the product
// search API and the outcome recorded in the session status. A resolution
// that completes after Stop was called is discarded, never applied.
func (m *ScanManager) SubmitFrame(ctx context.Context, id, code string) (SessionStatus, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return SessionStatus{}, err
	}

	sess.mu.Lock()
	sess.lastActive = m.now()

	if sess.state != SessionScanning {
		st := sess.statusLocked()
		sess.mu.Unlock()
		return st, nil
	}

	confirmed, ok := sess.confirmer.Observe(code)
	if !ok {
		st := sess.statusLocked()
		sess.mu.Unlock()
		return st, nil
	}

	sess.state = SessionConfirmed
	sess.confirmedCode = confirmed
	sess.appendLogLocked(fmt.Sprintf("barcode confirmed: %s", confirmed))
	sess.mu.Unlock()

	// The confirmed session no longer scans; release the active flag so a
	// new session can start while resolution is in flight.
	m.clearActive(id)

	name, resolveErr := m.resolver.Resolve(ctx, confirmed)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != SessionConfirmed {
		// Stopped while the search was in flight; drop the stale result
		return sess.statusLocked(), nil
	}

	switch {
	case resolveErr == nil:
		sess.suggestedName = name
		sess.appendLogLocked(fmt.Sprintf("product name: %s", name))
	case errors.Is(resolveErr, domain.ErrProductNotFound):
		sess.appendLogLocked("no product found for this barcode")
	default:
		sess.appendLogLocked(fmt.Sprintf("product search failed: %v", resolveErr))
	}

	return sess.statusLocked(), nil
}

// Status returns the current snapshot of a session
func (m *ScanManager) Status(id string) (SessionStatus, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return SessionStatus{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.statusLocked(), nil
}

// Stop tears a session down, discarding its scan state. Any product
// resolution still in flight for it will be discarded on completion.
func (m *ScanManager) Stop(ctx context.Context, id string) (SessionStatus, error) {
	sess, err := m.lookup(id)
	if err != nil {
		return SessionStatus{}, err
	}

	sess.mu.Lock()
	sess.lastActive = m.now()
	if sess.state != SessionStopped {
		sess.state = SessionStopped
		sess.appendLogLocked("scanner stopped")
	}
	st := sess.statusLocked()
	sess.mu.Unlock()

	m.clearActive(id)
	return st, nil
}

// lookup finds a live session by id, evicting it instead when expired
func (m *ScanManager) lookup(id string) (*scanSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	expired := m.expiredLocked(sess)
	sess.mu.Unlock()
	if expired {
		delete(m.sessions, id)
		if m.activeID == id {
			m.activeID = ""
		}
		return nil, domain.ErrSessionNotFound
	}

	return sess, nil
}

// clearActive releases the active-session flag if id holds it
func (m *ScanManager) clearActive(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeID == id {
		m.activeID = ""
	}
}

// expiredLocked reports whether a session has been idle past the TTL.
// Callers must hold the session mutex.
func (m *ScanManager) expiredLocked(sess *scanSession) bool {
	return m.now().Sub(sess.lastActive) > m.ttl
}

// sweepExpired removes idle sessions periodically
func (m *ScanManager) sweepExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for id, sess := range m.sessions {
			sess.mu.Lock()
			expired := m.expiredLocked(sess)
			sess.mu.Unlock()
			if expired {
				delete(m.sessions, id)
				if m.activeID == id {
					m.activeID = ""
				}
			}
		}
		m.mu.Unlock()
	}
}
