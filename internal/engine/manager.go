package engine

import (
	"context"

	"go.uber.org/zap"
)

// Storage is the persistence collaborator. Saves are fire-and-forget from the
// engine's perspective: a failed save is reported and logged, and the
// in-memory state stays authoritative.
type Storage interface {
	LoadUserSnapshot(ctx context.Context) (*UserSnapshot, error)
	SaveUserSnapshot(ctx context.Context, snap *UserSnapshot) error
	LoadSessionSnapshot(ctx context.Context, routineID, date string) (*SessionSnapshot, error)
	SaveSessionSnapshot(ctx context.Context, snap *SessionSnapshot) error
}

// RoutineSource supplies parsed routine definitions by id.
type RoutineSource interface {
	Routine(id string) (*Routine, bool)
	Routines() []*Routine
}

// RoutineManager orchestrates item completion: it mutates the day's session,
// awards XP to the user's skills, advances lifetime stats and persists the
// session. One logical session exists per (routine, day); repeated lookups
// return the same instance.
type RoutineManager struct {
	source   RoutineSource
	store    Storage
	log      *zap.Logger
	sessions map[string]*RoutineSession
}

func NewRoutineManager(source RoutineSource, store Storage, log *zap.Logger) *RoutineManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoutineManager{
		source:   source,
		store:    store,
		log:      log,
		sessions: map[string]*RoutineSession{},
	}
}

func sessionKey(routineID, date string) string {
	return routineID + "|" + date
}

// GetSession returns today's session for the routine: cached instance first,
// then a reconstruction from the persisted snapshot, then a fresh
// not_started session. A storage load failure is logged and treated as
// absent so a broken disk never blocks the day.
func (m *RoutineManager) GetSession(ctx context.Context, routineID string) (*RoutineSession, error) {
	if _, ok := m.source.Routine(routineID); !ok {
		return nil, NotFoundError{Kind: "routine", ID: routineID}
	}

	date := DayKey(timeNow())
	key := sessionKey(routineID, date)
	if sess, ok := m.sessions[key]; ok {
		return sess, nil
	}

	snap, err := m.store.LoadSessionSnapshot(ctx, routineID, date)
	if err != nil {
		m.log.Warn("session load failed, starting fresh",
			zap.String("routine", routineID), zap.String("date", date), zap.Error(err))
		snap = nil
	}

	sess := SessionFromSnapshot(snap)
	if sess == nil {
		sess = NewRoutineSession(routineID, date)
	}
	m.sessions[key] = sess
	return sess, nil
}

// CompleteItemResult is the composite record the achievement-check and
// presentation layers consume after an item completion.
type CompleteItemResult struct {
	Item             *RoutineItem
	Results          []AddXPResult
	Session          *RoutineSession
	Changed          bool
	RoutineCompleted bool
	SaveConfirmed    bool
}

// CompleteItem marks one item of a routine complete for today. Both the
// routine and the item are resolved before anything mutates, so an unknown
// reference leaves all state untouched. Rewards, the task counter and the
// routine completion (including the streak) apply only when the item was
// newly completed; re-completing is a no-op.
func (m *RoutineManager) CompleteItem(ctx context.Context, routineID, itemID string, user *User) (*CompleteItemResult, error) {
	routine, ok := m.source.Routine(routineID)
	if !ok {
		return nil, NotFoundError{Kind: "routine", ID: routineID}
	}
	item := routine.FindItem(itemID)
	if item == nil {
		return nil, NotFoundError{Kind: "item", ID: itemID}
	}

	sess, err := m.GetSession(ctx, routineID)
	if err != nil {
		return nil, err
	}

	var results []AddXPResult
	routineCompleted := false
	changed := sess.CompleteItem(item.ID, item.SkillRewards)
	if changed {
		results = user.AddRoutineRewards(item.SkillRewards)
		user.CompleteTask()
		if sess.IsComplete(routine) {
			sess.Complete()
			user.CompleteRoutine()
			routineCompleted = true
		}
	}

	return &CompleteItemResult{
		Item:             item,
		Results:          results,
		Session:          sess,
		Changed:          changed,
		RoutineCompleted: routineCompleted,
		SaveConfirmed:    m.saveSession(ctx, sess),
	}, nil
}

// UncompleteItemResult mirrors CompleteItemResult for the reverse operation.
type UncompleteItemResult struct {
	Item          *RoutineItem
	Session       *RoutineSession
	Changed       bool
	SaveConfirmed bool
}

// UncompleteItem reverses the checklist and session-ledger bookkeeping for an
// item. Deliberately asymmetric with CompleteItem: skill XP, levels, lifetime
// stats and the streak are never clawed back once granted.
func (m *RoutineManager) UncompleteItem(ctx context.Context, routineID, itemID string) (*UncompleteItemResult, error) {
	routine, ok := m.source.Routine(routineID)
	if !ok {
		return nil, NotFoundError{Kind: "routine", ID: routineID}
	}
	item := routine.FindItem(itemID)
	if item == nil {
		return nil, NotFoundError{Kind: "item", ID: itemID}
	}

	sess, err := m.GetSession(ctx, routineID)
	if err != nil {
		return nil, err
	}

	changed := sess.UncompleteItem(item.ID, item.SkillRewards)
	return &UncompleteItemResult{
		Item:          item,
		Session:       sess,
		Changed:       changed,
		SaveConfirmed: m.saveSession(ctx, sess),
	}, nil
}

// ResetSession clears today's session for the routine back to not_started.
func (m *RoutineManager) ResetSession(ctx context.Context, routineID string) (*RoutineSession, error) {
	sess, err := m.GetSession(ctx, routineID)
	if err != nil {
		return nil, err
	}
	sess.Reset()
	m.saveSession(ctx, sess)
	return sess, nil
}

// RoutineProgress pairs a routine with its session state for one day.
type RoutineProgress struct {
	Routine  *Routine
	Session  *RoutineSession
	Progress Progress
}

// Today returns the progress of every known routine for the current day, in
// source order.
func (m *RoutineManager) Today(ctx context.Context) ([]RoutineProgress, error) {
	routines := m.source.Routines()
	out := make([]RoutineProgress, 0, len(routines))
	for _, r := range routines {
		sess, err := m.GetSession(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, RoutineProgress{Routine: r, Session: sess, Progress: sess.GetProgress(r)})
	}
	return out, nil
}

func (m *RoutineManager) saveSession(ctx context.Context, sess *RoutineSession) bool {
	if err := m.store.SaveSessionSnapshot(ctx, sess.Snapshot()); err != nil {
		m.log.Warn("session save unconfirmed",
			zap.String("routine", sess.RoutineID), zap.String("date", sess.Date), zap.Error(err))
		return false
	}
	return true
}
