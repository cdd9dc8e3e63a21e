package engine

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Snapshot shapes are the de facto persisted schema. Field names must
// round-trip exactly for compatibility with existing saved data; do not
// rename the JSON keys.

type SkillSnapshot struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Type      string `json:"type"`
	Level     int    `json:"level"`
	CurrentXP int    `json:"currentXP"`
	TotalXP   int    `json:"totalXP"`
	Prestige  int    `json:"prestige"`
}

type StreakSnapshot struct {
	Current       int        `json:"current"`
	Longest       int        `json:"longest"`
	LastCompleted *time.Time `json:"lastCompleted"`
}

type StatsSnapshot struct {
	TotalRoutinesCompleted int      `json:"totalRoutinesCompleted"`
	TotalTasksCompleted    int      `json:"totalTasksCompleted"`
	TotalXPEarned          int      `json:"totalXPEarned"`
	Achievements           []string `json:"achievements"`
}

type UserSnapshot struct {
	Username   string                   `json:"username"`
	CreatedAt  time.Time                `json:"createdAt"`
	LastActive time.Time                `json:"lastActive"`
	Skills     map[string]SkillSnapshot `json:"skills"`
	Streak     StreakSnapshot           `json:"streak"`
	Stats      StatsSnapshot            `json:"stats"`
}

type SessionSnapshot struct {
	RoutineID      string         `json:"routineId"`
	Date           string         `json:"date"`
	StartedAt      *time.Time     `json:"startedAt"`
	CompletedAt    *time.Time     `json:"completedAt"`
	Status         string         `json:"status"`
	CompletedItems []string       `json:"completedItems"`
	XPEarned       map[string]int `json:"xpEarned"`
}

// Snapshot renders the user as plain persistable data.
func (u *User) Snapshot() *UserSnapshot {
	skills := make(map[string]SkillSnapshot, len(u.Skills))
	for c, s := range u.Skills {
		skills[string(c)] = SkillSnapshot{
			Name:      s.Name,
			Icon:      s.Icon,
			Type:      string(s.Category),
			Level:     s.Level,
			CurrentXP: s.CurrentXP,
			TotalXP:   s.TotalXP,
			Prestige:  s.Prestige,
		}
	}
	achievements := make([]string, len(u.Stats.Achievements))
	copy(achievements, u.Stats.Achievements)
	return &UserSnapshot{
		Username:   u.Username,
		CreatedAt:  u.CreatedAt,
		LastActive: u.LastActive,
		Skills:     skills,
		Streak:     StreakSnapshot(u.Streak),
		Stats: StatsSnapshot{
			TotalRoutinesCompleted: u.Stats.TotalRoutinesCompleted,
			TotalTasksCompleted:    u.Stats.TotalTasksCompleted,
			TotalXPEarned:          u.Stats.TotalXPEarned,
			Achievements:           achievements,
		},
	}
}

// UserFromSnapshot rebuilds a user, tolerating malformed snapshots: a missing
// or corrupt field falls back to its documented default instead of failing
// the whole load. Every category is guaranteed a skill afterwards.
func UserFromSnapshot(snap *UserSnapshot, log *zap.Logger) *User {
	if log == nil {
		log = zap.NewNop()
	}
	if snap == nil {
		return NewUser("", log)
	}

	u := NewUser(snap.Username, log)
	if !snap.CreatedAt.IsZero() {
		u.CreatedAt = snap.CreatedAt
	}
	if !snap.LastActive.IsZero() {
		u.LastActive = snap.LastActive
	}

	for _, c := range Categories {
		ss, ok := snap.Skills[string(c)]
		if !ok {
			log.Warn("snapshot missing skill, using defaults", zap.String("category", string(c)))
			continue
		}
		s := u.Skills[c]
		if ss.Name != "" {
			s.Name = ss.Name
		}
		if ss.Icon != "" {
			s.Icon = ss.Icon
		}
		s.Level = clamp(ss.Level, 1, MaxLevel)
		s.CurrentXP = maxInt(ss.CurrentXP, 0)
		s.TotalXP = maxInt(ss.TotalXP, 0)
		s.Prestige = maxInt(ss.Prestige, 0)
	}

	u.Streak = Streak{
		Current:       maxInt(snap.Streak.Current, 0),
		Longest:       maxInt(snap.Streak.Longest, 0),
		LastCompleted: snap.Streak.LastCompleted,
	}
	if u.Streak.Longest < u.Streak.Current {
		u.Streak.Longest = u.Streak.Current
	}

	u.Stats = Stats{
		TotalRoutinesCompleted: maxInt(snap.Stats.TotalRoutinesCompleted, 0),
		TotalTasksCompleted:    maxInt(snap.Stats.TotalTasksCompleted, 0),
		TotalXPEarned:          maxInt(snap.Stats.TotalXPEarned, 0),
	}
	for _, id := range snap.Stats.Achievements {
		u.UnlockAchievement(id)
	}
	return u
}

// Snapshot renders the session as plain persistable data. Completed item ids
// are sorted so repeated saves of the same state are byte-identical.
func (s *RoutineSession) Snapshot() *SessionSnapshot {
	items := make([]string, 0, len(s.CompletedItems))
	for id := range s.CompletedItems {
		items = append(items, id)
	}
	sort.Strings(items)

	xp := make(map[string]int, len(s.XPEarned))
	for c, v := range s.XPEarned {
		xp[string(c)] = v
	}
	return &SessionSnapshot{
		RoutineID:      s.RoutineID,
		Date:           s.Date,
		StartedAt:      s.StartedAt,
		CompletedAt:    s.CompletedAt,
		Status:         string(s.Status),
		CompletedItems: items,
		XPEarned:       xp,
	}
}

// SessionFromSnapshot rebuilds a session, deriving a sane status when the
// stored one is missing or unknown.
func SessionFromSnapshot(snap *SessionSnapshot) *RoutineSession {
	if snap == nil {
		return nil
	}
	sess := NewRoutineSession(snap.RoutineID, snap.Date)
	sess.StartedAt = snap.StartedAt
	sess.CompletedAt = snap.CompletedAt
	for _, id := range snap.CompletedItems {
		sess.CompletedItems[id] = true
	}
	for c, v := range snap.XPEarned {
		if v > 0 {
			sess.XPEarned[Category(c)] = v
		}
	}

	status := SessionStatus(snap.Status)
	switch {
	case status.IsValid():
		sess.Status = status
	case snap.CompletedAt != nil:
		sess.Status = SessionCompleted
	case len(sess.CompletedItems) > 0:
		sess.Status = SessionInProgress
	default:
		sess.Status = SessionNotStarted
	}
	return sess
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
