package engine

// Routine is the immutable definition of a repeatable checklist. The engine
// only reads it; parsing and validation live in the loader.
type Routine struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Icon          string
	StartTime     string
	TotalDuration int
	// SkillRewards at routine level is informational; awards come from items.
	SkillRewards map[Category]int
	Sections     []RoutineSection
}

// RoutineSection is an ordered group of items within a routine.
type RoutineSection struct {
	ID        string
	Name      string
	TimeRange string
	Items     []RoutineItem
}

// RoutineItem is a single checklist entry, optionally carrying per-skill rewards.
type RoutineItem struct {
	ID           string
	Description  string
	Duration     int
	SkillRewards map[Category]int
	Notes        string
}

// TotalItemCount returns the number of items across all sections.
func (r *Routine) TotalItemCount() int {
	count := 0
	for _, sec := range r.Sections {
		count += len(sec.Items)
	}
	return count
}

// FindItem returns the item with the given id, or nil if the routine has none.
func (r *Routine) FindItem(itemID string) *RoutineItem {
	for si := range r.Sections {
		items := r.Sections[si].Items
		for ii := range items {
			if items[ii].ID == itemID {
				return &items[ii]
			}
		}
	}
	return nil
}

// AllItems returns the items of every section in definition order.
func (r *Routine) AllItems() []RoutineItem {
	out := make([]RoutineItem, 0, r.TotalItemCount())
	for _, sec := range r.Sections {
		out = append(out, sec.Items...)
	}
	return out
}
