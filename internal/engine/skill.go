package engine

import "math"

const (
	// MaxLevel caps every skill; further XP parks in CurrentXP until a prestige reset.
	MaxLevel = 100

	// LevelXPCoef is the curve constant: XP_next = floor(100 * level^1.5).
	LevelXPCoef = 100.0

	// PrestigeBonusRate is the permanent XP bonus per prestige reset (5%).
	PrestigeBonusRate = 0.05
)

// Tier is a coarse label derived from a skill's level.
type Tier string

const (
	TierBeginner     Tier = "Beginner"
	TierNovice       Tier = "Novice"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
	TierExpert       Tier = "Expert"
	TierMaster       Tier = "Master"
)

// TierForLevel maps a level to its tier via fixed inclusive ranges.
func TierForLevel(level int) Tier {
	switch {
	case level >= MaxLevel:
		return TierMaster
	case level >= 76:
		return TierExpert
	case level >= 51:
		return TierAdvanced
	case level >= 26:
		return TierIntermediate
	case level >= 11:
		return TierNovice
	case level >= 1:
		return TierBeginner
	default:
		return TierBeginner
	}
}

// Skill is a single progression track owned by a User.
type Skill struct {
	Name      string
	Icon      string
	Category  Category
	Level     int
	CurrentXP int
	TotalXP   int
	Prestige  int
}

// NewSkill creates a level-1 skill with the category's default name and icon.
func NewSkill(category Category) *Skill {
	return &Skill{
		Name:     categoryNames[category],
		Icon:     categoryIcons[category],
		Category: category,
		Level:    1,
	}
}

// XPRequiredForNextLevel returns the XP needed to advance past the given level.
// At MaxLevel there is no next level and the requirement is 0.
func XPRequiredForNextLevel(level int) int {
	if level >= MaxLevel {
		return 0
	}
	return int(math.Floor(LevelXPCoef * math.Pow(float64(level), 1.5)))
}

// PrestigeMultiplier returns the permanent multiplier earned through prestige resets.
func (s *Skill) PrestigeMultiplier() float64 {
	return 1 + PrestigeBonusRate*float64(s.Prestige)
}

func (s *Skill) Tier() Tier {
	return TierForLevel(s.Level)
}

// AddXPResult reports the outcome of a single XP award.
type AddXPResult struct {
	Category    Category
	Skill       *Skill
	XPGained    int
	LeveledUp   bool
	NewLevel    int
	StreakBonus float64
}

// AddXP awards raw XP scaled by the prestige multiplier and the streak bonus
// fraction, then resolves level-ups. A single large award can cross several
// thresholds in one call.
func (s *Skill) AddXP(rawXP int, streakBonus float64) AddXPResult {
	mult := s.PrestigeMultiplier() * (1 + streakBonus)
	adjusted := int(math.Floor(float64(rawXP) * mult))

	s.CurrentXP += adjusted
	s.TotalXP += adjusted

	leveledUp := false
	for s.Level < MaxLevel {
		req := XPRequiredForNextLevel(s.Level)
		if s.CurrentXP < req {
			break
		}
		s.CurrentXP -= req
		s.Level++
		leveledUp = true
	}

	return AddXPResult{
		Category:    s.Category,
		Skill:       s,
		XPGained:    adjusted,
		LeveledUp:   leveledUp,
		NewLevel:    s.Level,
		StreakBonus: streakBonus,
	}
}

// PrestigeResult reports the state after a prestige reset.
type PrestigeResult struct {
	Prestige   int
	Multiplier float64
}

// PrestigeReset drops the skill back to level 1 in exchange for a permanent
// XP multiplier. Only allowed at MaxLevel. TotalXP is a lifetime counter and
// is not reset.
func (s *Skill) PrestigeReset() (*PrestigeResult, error) {
	if s.Level != MaxLevel {
		return nil, PrestigeError{Level: s.Level}
	}
	s.Level = 1
	s.CurrentXP = 0
	s.Prestige++
	return &PrestigeResult{Prestige: s.Prestige, Multiplier: s.PrestigeMultiplier()}, nil
}
