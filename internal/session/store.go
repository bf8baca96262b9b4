// Package session holds in-progress typing-session state. Character
// counters live here only for the lifetime of the session: they are keyed
// by an explicit session id, expire after a TTL, and are evicted either
// explicitly when the test completes or by the scheduled sweep.
package session

import (
	"sync"
	"time"

	"github.com/dmello/typetrack/internal/models"
)

// Keystroke is one character event reported by the capture layer.
type Keystroke struct {
	Character  string  `json:"character"`
	Correct    bool    `json:"correct"`
	Speed      float64 `json:"speed"`
	Difficulty float64 `json:"difficulty,omitempty"`
}

type entry struct {
	order    []string
	stats    map[string]*models.CharacterStat
	lastSeen time.Time
}

// Store keeps per-session character counters with a TTL.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry
	now      func() time.Time
}

// NewStore creates a Store whose sessions expire ttl after their last event.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Record applies one keystroke to the session, creating the session and the
// character's counters on first sight.
func (s *Store) Record(sessionID string, k Keystroke) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{stats: make(map[string]*models.CharacterStat)}
		s.sessions[sessionID] = e
	}
	e.lastSeen = s.now()

	stat, ok := e.stats[k.Character]
	if !ok {
		stat = &models.CharacterStat{Character: k.Character}
		e.stats[k.Character] = stat
		e.order = append(e.order, k.Character)
	}

	stat.TotalTyped++
	if k.Correct {
		stat.CorrectTyped++
	} else {
		stat.IncorrectTyped++
	}
	if k.Speed > 0 {
		stat.Speeds = append(stat.Speeds, k.Speed)
	}
	if k.Difficulty > 0 {
		stat.DifficultyScore = k.Difficulty
	}
}

// Snapshot returns the session's character counters in first-seen order.
// The returned stats are copies; mutating them does not touch the store.
func (s *Store) Snapshot(sessionID string) ([]models.CharacterStat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}

	out := make([]models.CharacterStat, 0, len(e.order))
	for _, ch := range e.order {
		stat := *e.stats[ch]
		stat.Speeds = append([]float64(nil), stat.Speeds...)
		out = append(out, stat)
	}
	return out, true
}

// Evict removes the session. It reports whether the session existed.
func (s *Store) Evict(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}

// Sweep removes every session idle past the TTL and returns how many were
// evicted. It is called on a schedule; see jobs.Scheduler.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
