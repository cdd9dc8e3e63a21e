package engine

import (
	"time"

	"go.uber.org/zap"
)

// Streak tracks consecutive days with at least one completed routine.
type Streak struct {
	Current       int
	Longest       int
	LastCompleted *time.Time
}

// Stats are lifetime counters. They only grow; uncompleting an item never
// decrements them.
type Stats struct {
	TotalRoutinesCompleted int
	TotalTasksCompleted    int
	TotalXPEarned          int
	Achievements           []string
}

// User aggregates the six skills, the streak record and lifetime stats.
type User struct {
	Username   string
	CreatedAt  time.Time
	LastActive time.Time
	Skills     map[Category]*Skill
	Streak     Streak
	Stats      Stats

	log *zap.Logger
}

// NewUser creates a fresh user with one level-1 skill per category.
func NewUser(username string, log *zap.Logger) *User {
	if log == nil {
		log = zap.NewNop()
	}
	now := timeNow()
	skills := make(map[Category]*Skill, len(Categories))
	for _, c := range Categories {
		skills[c] = NewSkill(c)
	}
	return &User{
		Username:   username,
		CreatedAt:  now,
		LastActive: now,
		Skills:     skills,
		log:        log,
	}
}

// streakBonusTiers maps streak day thresholds to XP bonus fractions,
// ascending. The highest satisfied threshold wins.
var streakBonusTiers = []struct {
	Days  int
	Bonus float64
}{
	{5, 0.05},
	{7, 0.10},
	{15, 0.15},
	{25, 0.20},
	{50, 0.30},
	{100, 0.50},
}

// StreakBonus returns the XP bonus fraction earned by the current streak.
func (u *User) StreakBonus() float64 {
	bonus := 0.0
	for _, t := range streakBonusTiers {
		if u.Streak.Current >= t.Days {
			bonus = t.Bonus
		}
	}
	return bonus
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// UpdateStreak advances the streak for a full-routine completion. Called
// exactly once per completed routine. Completing a second routine on the same
// calendar day leaves the count unchanged; a gap of two or more days resets
// it to 1.
func (u *User) UpdateStreak() int {
	now := timeNow()
	switch {
	case u.Streak.LastCompleted == nil:
		u.Streak.Current = 1
	case sameDay(*u.Streak.LastCompleted, now):
		// Already counted today.
	case sameDay(*u.Streak.LastCompleted, now.AddDate(0, 0, -1)):
		u.Streak.Current++
	default:
		u.Streak.Current = 1
	}

	stamp := now
	u.Streak.LastCompleted = &stamp
	if u.Streak.Current > u.Streak.Longest {
		u.Streak.Longest = u.Streak.Current
	}
	return u.Streak.Current
}

// AddSkillXP awards raw XP to one skill, applying the streak bonus, and
// accumulates the adjusted amount into lifetime stats. An unknown category is
// a caller-contract violation: it is logged and nil is returned, with no
// state changed. Non-positive awards are dropped the same way; totalXP and
// currentXP only ever grow.
func (u *User) AddSkillXP(category Category, rawXP int) *AddXPResult {
	skill, ok := u.Skills[category]
	if !ok {
		u.log.Warn("unknown skill category", zap.String("category", string(category)))
		return nil
	}
	if rawXP <= 0 {
		u.log.Warn("non-positive xp award dropped",
			zap.String("category", string(category)), zap.Int("xp", rawXP))
		return nil
	}
	res := skill.AddXP(rawXP, u.StreakBonus())
	u.Stats.TotalXPEarned += res.XPGained
	u.LastActive = timeNow()
	return &res
}

// AddRoutineRewards applies AddSkillXP for every entry of an item's reward
// map. Categories are independent, so application order does not affect the
// final state; results are returned in the fixed category order for
// deterministic reporting.
func (u *User) AddRoutineRewards(rewards map[Category]int) []AddXPResult {
	results := make([]AddXPResult, 0, len(rewards))
	for _, c := range Categories {
		xp, ok := rewards[c]
		if !ok {
			continue
		}
		if res := u.AddSkillXP(c, xp); res != nil {
			results = append(results, *res)
		}
	}
	// Unknown categories still go through AddSkillXP so the violation is logged.
	for c, xp := range rewards {
		if c.IsValid() {
			continue
		}
		if res := u.AddSkillXP(c, xp); res != nil {
			results = append(results, *res)
		}
	}
	return results
}

// CompleteTask bumps the lifetime task counter.
func (u *User) CompleteTask() {
	u.Stats.TotalTasksCompleted++
	u.LastActive = timeNow()
}

// CompleteRoutine bumps the lifetime routine counter and advances the streak.
func (u *User) CompleteRoutine() int {
	u.Stats.TotalRoutinesCompleted++
	u.LastActive = timeNow()
	return u.UpdateStreak()
}

// UnlockAchievement records an achievement id. Returns false when the id was
// already present; re-adding is a no-op.
func (u *User) UnlockAchievement(id string) bool {
	if u.HasAchievement(id) {
		return false
	}
	u.Stats.Achievements = append(u.Stats.Achievements, id)
	return true
}

func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Stats.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// TotalLevel is the sum of all skill levels.
func (u *User) TotalLevel() int {
	total := 0
	for _, s := range u.Skills {
		total += s.Level
	}
	return total
}

// AverageLevel is the floored mean skill level.
func (u *User) AverageLevel() int {
	if len(u.Skills) == 0 {
		return 0
	}
	return u.TotalLevel() / len(u.Skills)
}
