package engine

import "fmt"

// NotFoundError indicates a reference to an unknown routine, item or category.
// Nothing is mutated before it is returned.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// PrestigeError is returned when a prestige reset is attempted below max level.
type PrestigeError struct {
	Level int
}

func (e PrestigeError) Error() string {
	return fmt.Sprintf("prestige requires level %d (currently %d)", MaxLevel, e.Level)
}
