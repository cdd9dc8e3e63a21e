package engine

import (
	"testing"
	"time"
)

func testRoutine() *Routine {
	return &Routine{
		ID:   "morning",
		Name: "Morning Routine",
		Sections: []RoutineSection{
			{
				ID:   "wake",
				Name: "Wake Up",
				Items: []RoutineItem{
					{ID: "water", Description: "Drink water", SkillRewards: map[Category]int{CategoryDiscipline: 5}},
					{ID: "stretch", Description: "Stretch", SkillRewards: map[Category]int{CategoryFitness: 10}},
				},
			},
			{
				ID:   "focus",
				Name: "Focus",
				Items: []RoutineItem{
					{ID: "plan", Description: "Plan the day", SkillRewards: map[Category]int{CategoryLogic: 10, CategoryDiscipline: 5}},
				},
			},
		},
	}
}

func TestCompleteItemIdempotent(t *testing.T) {
	sess := NewRoutineSession("morning", "2025-03-01")
	rewards := map[Category]int{CategoryFitness: 10}

	if !sess.CompleteItem("stretch", rewards) {
		t.Fatalf("first completion should report a change")
	}
	if sess.CompleteItem("stretch", rewards) {
		t.Fatalf("second completion should be a no-op")
	}
	if len(sess.CompletedItems) != 1 {
		t.Fatalf("completedItems=%v, want exactly one", sess.CompletedItems)
	}
	if sess.XPEarned[CategoryFitness] != 10 {
		t.Fatalf("xpEarned=%v, want fitness:10 once", sess.XPEarned)
	}
}

func TestCompleteItemStartsSession(t *testing.T) {
	sess := NewRoutineSession("morning", "2025-03-01")
	if sess.Status != SessionNotStarted {
		t.Fatalf("status=%s, want not_started", sess.Status)
	}

	sess.CompleteItem("water", nil)
	if sess.Status != SessionInProgress {
		t.Fatalf("status=%s, want in_progress", sess.Status)
	}
	if sess.StartedAt == nil {
		t.Fatalf("startedAt not stamped")
	}
}

func TestUncompleteItemRoundTrip(t *testing.T) {
	sess := NewRoutineSession("morning", "2025-03-01")
	rewards := map[Category]int{CategoryLogic: 10, CategoryDiscipline: 5}

	sess.CompleteItem("water", map[Category]int{CategoryDiscipline: 5})
	sess.CompleteItem("plan", rewards)

	if !sess.UncompleteItem("plan", rewards) {
		t.Fatalf("expected uncomplete to report a change")
	}
	if sess.UncompleteItem("plan", rewards) {
		t.Fatalf("second uncomplete should be a no-op")
	}

	// Ledger back to the pre-completion state; zero entries removed.
	if got := sess.XPEarned[CategoryDiscipline]; got != 5 {
		t.Fatalf("discipline=%d, want 5", got)
	}
	if _, ok := sess.XPEarned[CategoryLogic]; ok {
		t.Fatalf("logic entry should be removed, got %v", sess.XPEarned)
	}

	// Status is not regressed by item-level corrections.
	if sess.Status != SessionInProgress {
		t.Fatalf("status=%s, want in_progress", sess.Status)
	}
}

func TestIsCompleteAndProgress(t *testing.T) {
	r := testRoutine()
	sess := NewRoutineSession(r.ID, "2025-03-01")

	sess.CompleteItem("water", nil)
	sess.CompleteItem("stretch", nil)
	if sess.IsComplete(r) {
		t.Fatalf("complete with 2/3 items")
	}
	p := sess.GetProgress(r)
	if p.Completed != 2 || p.Total != 3 || p.Percentage != 66 {
		t.Fatalf("progress=%+v, want 2/3 66%%", p)
	}

	sess.CompleteItem("plan", nil)
	if !sess.IsComplete(r) {
		t.Fatalf("expected complete with 3/3 items")
	}
	p = sess.GetProgress(r)
	if p.Completed != 3 || p.Total != 3 || p.Percentage != 100 {
		t.Fatalf("progress=%+v, want 3/3 100%%", p)
	}

	// IsComplete is a recomputed check; the session does not self-promote.
	if sess.Status == SessionCompleted {
		t.Fatalf("session promoted itself to completed")
	}
	sess.Complete()
	if sess.Status != SessionCompleted || sess.CompletedAt == nil {
		t.Fatalf("Complete() did not stamp terminal state")
	}
}

func TestProgressEmptyRoutine(t *testing.T) {
	r := &Routine{ID: "empty"}
	sess := NewRoutineSession("empty", "2025-03-01")
	p := sess.GetProgress(r)
	if p.Percentage != 0 {
		t.Fatalf("percentage=%d, want 0 for empty routine", p.Percentage)
	}
}

func TestReset(t *testing.T) {
	sess := NewRoutineSession("morning", "2025-03-01")
	sess.CompleteItem("water", map[Category]int{CategoryDiscipline: 5})
	sess.Complete()

	sess.Reset()
	if sess.Status != SessionNotStarted {
		t.Fatalf("status=%s, want not_started", sess.Status)
	}
	if len(sess.CompletedItems) != 0 || len(sess.XPEarned) != 0 {
		t.Fatalf("completion state not cleared: %v %v", sess.CompletedItems, sess.XPEarned)
	}
	if sess.StartedAt != nil || sess.CompletedAt != nil {
		t.Fatalf("timestamps not cleared")
	}
}

func TestDuration(t *testing.T) {
	base := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
	sess := NewRoutineSession("morning", "2025-03-01")
	if sess.Duration() != 0 {
		t.Fatalf("duration of never-started session should be 0")
	}

	setNow(t, base)
	sess.CompleteItem("water", nil)
	setNow(t, base.Add(25*time.Minute))
	sess.Complete()
	if got := sess.Duration(); got != 25 {
		t.Fatalf("duration=%d, want 25", got)
	}
}
