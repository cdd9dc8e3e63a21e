package engine

import "time"

// ConditionKind tags the rule an achievement is evaluated by. Conditions are
// plain data (kind + threshold) dispatched by Met, which keeps the catalog
// serializable and the rules pure functions of user state.
type ConditionKind string

const (
	ConditionStreak        ConditionKind = "streak"
	ConditionRoutineCount  ConditionKind = "routine_count"
	ConditionTaskCount     ConditionKind = "task_count"
	ConditionTotalXP       ConditionKind = "total_xp"
	ConditionSkillLevelAny ConditionKind = "skill_level_any"
	ConditionSkillLevelAll ConditionKind = "skill_level_all"
	ConditionPrestige      ConditionKind = "prestige"
)

type Condition struct {
	Kind      ConditionKind
	Threshold int
}

// Met evaluates the condition against a user snapshot. All tracked stats are
// monotonic, so a condition that holds once keeps holding.
func (c Condition) Met(u *User) bool {
	switch c.Kind {
	case ConditionStreak:
		return u.Streak.Current >= c.Threshold
	case ConditionRoutineCount:
		return u.Stats.TotalRoutinesCompleted >= c.Threshold
	case ConditionTaskCount:
		return u.Stats.TotalTasksCompleted >= c.Threshold
	case ConditionTotalXP:
		return u.Stats.TotalXPEarned >= c.Threshold
	case ConditionSkillLevelAny:
		for _, s := range u.Skills {
			if s.Level >= c.Threshold {
				return true
			}
		}
		return false
	case ConditionSkillLevelAll:
		if len(u.Skills) == 0 {
			return false
		}
		for _, s := range u.Skills {
			if s.Level < c.Threshold {
				return false
			}
		}
		return true
	case ConditionPrestige:
		for _, s := range u.Skills {
			if s.Prestige >= c.Threshold {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Achievement is one catalog entry. UnlockedAt is a one-shot gate: once set
// it is never cleared and the condition is never evaluated again.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   Condition
	UnlockedAt  *time.Time
}

func (a *Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}

// AchievementManager holds the static catalog and its unlock timestamps.
type AchievementManager struct {
	catalog []*Achievement
}

func NewAchievementManager() *AchievementManager {
	return &AchievementManager{catalog: defaultCatalog()}
}

func defaultCatalog() []*Achievement {
	return []*Achievement{
		// Streaks
		{ID: "streak_3", Name: "Warming Up", Description: "3-day streak", Icon: "🔥", Condition: Condition{ConditionStreak, 3}},
		{ID: "streak_7", Name: "One Week Strong", Description: "7-day streak", Icon: "🔥", Condition: Condition{ConditionStreak, 7}},
		{ID: "streak_30", Name: "Habitual", Description: "30-day streak", Icon: "🌋", Condition: Condition{ConditionStreak, 30}},
		{ID: "streak_100", Name: "Unstoppable", Description: "100-day streak", Icon: "☄️", Condition: Condition{ConditionStreak, 100}},

		// Routine milestones
		{ID: "routine_1", Name: "First Routine", Description: "Complete 1 routine", Icon: "✅", Condition: Condition{ConditionRoutineCount, 1}},
		{ID: "routine_10", Name: "Regular", Description: "Complete 10 routines", Icon: "📋", Condition: Condition{ConditionRoutineCount, 10}},
		{ID: "routine_50", Name: "Devoted", Description: "Complete 50 routines", Icon: "🏅", Condition: Condition{ConditionRoutineCount, 50}},
		{ID: "routine_100", Name: "Centurion", Description: "Complete 100 routines", Icon: "🏆", Condition: Condition{ConditionRoutineCount, 100}},
		{ID: "routine_500", Name: "Legend", Description: "Complete 500 routines", Icon: "👑", Condition: Condition{ConditionRoutineCount, 500}},

		// Task milestones
		{ID: "task_10", Name: "Checklist Rookie", Description: "Complete 10 tasks", Icon: "☑️", Condition: Condition{ConditionTaskCount, 10}},
		{ID: "task_100", Name: "Task Machine", Description: "Complete 100 tasks", Icon: "⚙️", Condition: Condition{ConditionTaskCount, 100}},
		{ID: "task_1000", Name: "Grinder", Description: "Complete 1000 tasks", Icon: "🛠️", Condition: Condition{ConditionTaskCount, 1000}},

		// Lifetime XP
		{ID: "xp_1000", Name: "Spark", Description: "Earn 1,000 XP", Icon: "⚡", Condition: Condition{ConditionTotalXP, 1000}},
		{ID: "xp_10000", Name: "Charged", Description: "Earn 10,000 XP", Icon: "🔋", Condition: Condition{ConditionTotalXP, 10000}},
		{ID: "xp_100000", Name: "Overclocked", Description: "Earn 100,000 XP", Icon: "💥", Condition: Condition{ConditionTotalXP, 100000}},

		// Skill levels
		{ID: "skill_10", Name: "Specialist", Description: "Any skill at level 10", Icon: "🎯", Condition: Condition{ConditionSkillLevelAny, 10}},
		{ID: "skill_25", Name: "Adept", Description: "Any skill at level 25", Icon: "🥉", Condition: Condition{ConditionSkillLevelAny, 25}},
		{ID: "skill_50", Name: "Virtuoso", Description: "Any skill at level 50", Icon: "🥈", Condition: Condition{ConditionSkillLevelAny, 50}},
		{ID: "skill_100", Name: "Grandmaster", Description: "Any skill at level 100", Icon: "🥇", Condition: Condition{ConditionSkillLevelAny, 100}},
		{ID: "allround_10", Name: "Well Rounded", Description: "Every skill at level 10", Icon: "⚖️", Condition: Condition{ConditionSkillLevelAll, 10}},
		{ID: "allround_25", Name: "Renaissance", Description: "Every skill at level 25", Icon: "🎓", Condition: Condition{ConditionSkillLevelAll, 25}},

		// Prestige
		{ID: "prestige_1", Name: "Reborn", Description: "Prestige a skill", Icon: "🌟", Condition: Condition{ConditionPrestige, 1}},
		{ID: "prestige_5", Name: "Eternal", Description: "Prestige a skill five times", Icon: "💫", Condition: Condition{ConditionPrestige, 5}},
	}
}

// Check evaluates every not-yet-unlocked achievement against the user. Each
// newly satisfied one is unlocked exactly once: its timestamp is stamped and
// its id added to the user's set. Returns the newly unlocked achievements in
// catalog order.
func (m *AchievementManager) Check(u *User) []*Achievement {
	var newly []*Achievement
	for _, a := range m.catalog {
		if a.Unlocked() {
			continue
		}
		if !a.Condition.Met(u) {
			continue
		}
		now := timeNow()
		a.UnlockedAt = &now
		u.UnlockAchievement(a.ID)
		newly = append(newly, a)
	}
	return newly
}

// RestoreUnlocked re-marks achievements as unlocked when reloading a
// persisted user. Original unlock times are not preserved by the snapshot,
// so the timestamps are fresh.
func (m *AchievementManager) RestoreUnlocked(ids []string) {
	known := make(map[string]*Achievement, len(m.catalog))
	for _, a := range m.catalog {
		known[a.ID] = a
	}
	for _, id := range ids {
		a, ok := known[id]
		if !ok || a.Unlocked() {
			continue
		}
		now := timeNow()
		a.UnlockedAt = &now
	}
}

// All returns the catalog in its fixed order.
func (m *AchievementManager) All() []*Achievement {
	return m.catalog
}

// CountUnlocked returns how many achievements are unlocked.
func (m *AchievementManager) CountUnlocked() int {
	count := 0
	for _, a := range m.catalog {
		if a.Unlocked() {
			count++
		}
	}
	return count
}

// CountTotal returns the catalog size.
func (m *AchievementManager) CountTotal() int {
	return len(m.catalog)
}
