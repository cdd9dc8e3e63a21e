package engine

import "time"

// Category identifies one of the fixed skill tracks every user owns.
type Category string

const (
	CategoryLogic      Category = "logic"
	CategoryCreativity Category = "creativity"
	CategoryDiscipline Category = "discipline"
	CategoryFitness    Category = "fitness"
	CategoryKnowledge  Category = "knowledge"
	CategorySocial     Category = "social"
)

// Categories is the fixed set of skill categories, in display order.
// A user owns exactly one Skill per entry.
var Categories = []Category{
	CategoryLogic,
	CategoryCreativity,
	CategoryDiscipline,
	CategoryFitness,
	CategoryKnowledge,
	CategorySocial,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryLogic, CategoryCreativity, CategoryDiscipline,
		CategoryFitness, CategoryKnowledge, CategorySocial:
		return true
	default:
		return false
	}
}

var categoryNames = map[Category]string{
	CategoryLogic:      "Logic",
	CategoryCreativity: "Creativity",
	CategoryDiscipline: "Discipline",
	CategoryFitness:    "Fitness",
	CategoryKnowledge:  "Knowledge",
	CategorySocial:     "Social",
}

var categoryIcons = map[Category]string{
	CategoryLogic:      "🧩",
	CategoryCreativity: "🎨",
	CategoryDiscipline: "⏰",
	CategoryFitness:    "💪",
	CategoryKnowledge:  "📚",
	CategorySocial:     "💬",
}

// timeNow is swapped out in tests that exercise streak and timestamp rules.
var timeNow = time.Now
