package engine

import "time"

// SessionStatus is the per-day completion state of one routine.
type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionNotStarted, SessionInProgress, SessionCompleted:
		return true
	default:
		return false
	}
}

// DayKey renders a timestamp at calendar-day granularity, the key sessions
// are scoped by.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// RoutineSession tracks which items of one routine are completed on one
// calendar day. It does not own the routine definition.
type RoutineSession struct {
	RoutineID      string
	Date           string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	Status         SessionStatus
	CompletedItems map[string]bool
	XPEarned       map[Category]int
}

func NewRoutineSession(routineID, date string) *RoutineSession {
	return &RoutineSession{
		RoutineID:      routineID,
		Date:           date,
		Status:         SessionNotStarted,
		CompletedItems: map[string]bool{},
		XPEarned:       map[Category]int{},
	}
}

// CompleteItem marks an item done and accumulates its rewards into the
// session's XP ledger. Idempotent: a second call with the same id changes
// nothing and returns false. The first completed item moves the session to
// in_progress.
func (s *RoutineSession) CompleteItem(itemID string, rewards map[Category]int) bool {
	if s.CompletedItems[itemID] {
		return false
	}
	s.CompletedItems[itemID] = true
	for c, xp := range rewards {
		if xp <= 0 {
			continue
		}
		s.XPEarned[c] += xp
	}
	if s.Status == SessionNotStarted {
		s.Status = SessionInProgress
		now := timeNow()
		s.StartedAt = &now
	}
	return true
}

// UncompleteItem reverses CompleteItem's checklist and ledger bookkeeping.
// Entries that would drop to zero or below are removed, never stored.
// Routine-level status is deliberately not regressed: unchecking an item is
// an item-level correction only.
func (s *RoutineSession) UncompleteItem(itemID string, rewards map[Category]int) bool {
	if !s.CompletedItems[itemID] {
		return false
	}
	delete(s.CompletedItems, itemID)
	for c, xp := range rewards {
		if xp <= 0 {
			continue
		}
		rest := s.XPEarned[c] - xp
		if rest <= 0 {
			delete(s.XPEarned, c)
		} else {
			s.XPEarned[c] = rest
		}
	}
	return true
}

// IsComplete reports whether every item of the routine is checked off. It is
// recomputed from the item set; the session never promotes itself to
// completed, callers invoke Complete when this turns true.
func (s *RoutineSession) IsComplete(r *Routine) bool {
	return len(s.CompletedItems) == r.TotalItemCount()
}

// Complete stamps the terminal state. Safe to call once; repeated calls keep
// the original timestamp.
func (s *RoutineSession) Complete() {
	if s.Status == SessionCompleted {
		return
	}
	now := timeNow()
	if s.StartedAt == nil {
		s.StartedAt = &now
	}
	s.CompletedAt = &now
	s.Status = SessionCompleted
}

// Reset returns the session to not_started and clears all completion state.
func (s *RoutineSession) Reset() {
	s.Status = SessionNotStarted
	s.StartedAt = nil
	s.CompletedAt = nil
	s.CompletedItems = map[string]bool{}
	s.XPEarned = map[Category]int{}
}

// Progress is a plain completion summary for presentation layers.
type Progress struct {
	Completed  int
	Total      int
	Percentage int
}

func (s *RoutineSession) GetProgress(r *Routine) Progress {
	total := r.TotalItemCount()
	completed := len(s.CompletedItems)
	pct := 0
	if total > 0 {
		pct = completed * 100 / total
	}
	return Progress{Completed: completed, Total: total, Percentage: pct}
}

// Duration returns the minutes between start and completion, or start and
// now while in progress. Zero if the session never started.
func (s *RoutineSession) Duration() int {
	if s.StartedAt == nil {
		return 0
	}
	end := timeNow()
	if s.CompletedAt != nil {
		end = *s.CompletedAt
	}
	return int(end.Sub(*s.StartedAt).Minutes())
}
