package engine

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserSnapshotRoundTrip(t *testing.T) {
	setNow(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	u := NewUser("andrej", nil)
	u.Skills[CategoryLogic].Level = 12
	u.Skills[CategoryLogic].CurrentXP = 40
	u.Skills[CategoryLogic].TotalXP = 5000
	u.Skills[CategoryLogic].Prestige = 1
	u.UpdateStreak()
	u.Stats.TotalRoutinesCompleted = 3
	u.Stats.TotalTasksCompleted = 17
	u.Stats.TotalXPEarned = 5000
	u.UnlockAchievement("routine_1")

	restored := UserFromSnapshot(u.Snapshot(), nil)

	if restored.Username != "andrej" {
		t.Fatalf("username=%q", restored.Username)
	}
	s := restored.Skills[CategoryLogic]
	if s.Level != 12 || s.CurrentXP != 40 || s.TotalXP != 5000 || s.Prestige != 1 {
		t.Fatalf("skill not restored: %+v", s)
	}
	if restored.Streak.Current != 1 || restored.Streak.LastCompleted == nil {
		t.Fatalf("streak not restored: %+v", restored.Streak)
	}
	if restored.Stats.TotalTasksCompleted != 17 || !restored.HasAchievement("routine_1") {
		t.Fatalf("stats not restored: %+v", restored.Stats)
	}
}

// The JSON keys are the persisted schema and must not drift.
func TestUserSnapshotSchemaKeys(t *testing.T) {
	u := NewUser("andrej", nil)
	raw, err := json.Marshal(u.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{
		`"username"`, `"createdAt"`, `"lastActive"`, `"skills"`,
		`"name"`, `"icon"`, `"type"`, `"level"`, `"currentXP"`, `"totalXP"`, `"prestige"`,
		`"streak"`, `"current"`, `"longest"`, `"lastCompleted"`,
		`"stats"`, `"totalRoutinesCompleted"`, `"totalTasksCompleted"`, `"totalXPEarned"`, `"achievements"`,
	} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("snapshot missing key %s:\n%s", key, raw)
		}
	}
}

func TestUserFromSnapshotTolerantDefaults(t *testing.T) {
	if u := UserFromSnapshot(nil, nil); u == nil || len(u.Skills) != len(Categories) {
		t.Fatalf("nil snapshot should produce a default user")
	}

	snap := &UserSnapshot{
		Username: "andrej",
		Skills: map[string]SkillSnapshot{
			// Out-of-range values from a corrupt save.
			"logic": {Type: "logic", Level: 500, CurrentXP: -20, TotalXP: -1},
		},
		Streak: StreakSnapshot{Current: 9, Longest: 2},
	}
	u := UserFromSnapshot(snap, nil)

	// Missing skills fall back to fresh level-1 defaults.
	if u.Skills[CategoryFitness] == nil || u.Skills[CategoryFitness].Level != 1 {
		t.Fatalf("missing skill not defaulted: %+v", u.Skills[CategoryFitness])
	}
	s := u.Skills[CategoryLogic]
	if s.Level != MaxLevel || s.CurrentXP != 0 || s.TotalXP != 0 {
		t.Fatalf("corrupt skill fields not clamped: %+v", s)
	}
	// longest >= current is re-established.
	if u.Streak.Longest != 9 {
		t.Fatalf("longest=%d, want 9", u.Streak.Longest)
	}
}

func TestSessionSnapshotRoundTrip(t *testing.T) {
	sess := NewRoutineSession("morning", "2025-03-01")
	sess.CompleteItem("water", map[Category]int{CategoryDiscipline: 5})
	sess.CompleteItem("stretch", map[Category]int{CategoryFitness: 10})

	snap := sess.Snapshot()
	if snap.CompletedItems[0] != "stretch" || snap.CompletedItems[1] != "water" {
		t.Fatalf("completedItems not sorted: %v", snap.CompletedItems)
	}

	restored := SessionFromSnapshot(snap)
	if restored.Status != SessionInProgress {
		t.Fatalf("status=%s, want in_progress", restored.Status)
	}
	if !restored.CompletedItems["water"] || !restored.CompletedItems["stretch"] {
		t.Fatalf("items not restored: %v", restored.CompletedItems)
	}
	if restored.XPEarned[CategoryFitness] != 10 {
		t.Fatalf("ledger not restored: %v", restored.XPEarned)
	}
}

func TestSessionFromSnapshotDerivesStatus(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	completed := SessionFromSnapshot(&SessionSnapshot{
		RoutineID: "morning", Date: "2025-03-01",
		Status: "bogus", CompletedAt: &now,
	})
	if completed.Status != SessionCompleted {
		t.Fatalf("status=%s, want completed", completed.Status)
	}

	inProgress := SessionFromSnapshot(&SessionSnapshot{
		RoutineID: "morning", Date: "2025-03-01",
		CompletedItems: []string{"water"},
	})
	if inProgress.Status != SessionInProgress {
		t.Fatalf("status=%s, want in_progress", inProgress.Status)
	}

	fresh := SessionFromSnapshot(&SessionSnapshot{RoutineID: "morning", Date: "2025-03-01"})
	if fresh.Status != SessionNotStarted {
		t.Fatalf("status=%s, want not_started", fresh.Status)
	}
}
