package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
	"github.com/AndrejKiraly/RoutineGamification/internal/storage"
	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

type rowKind int

const (
	rowRoutine rowKind = iota
	rowSection
	rowItem
)

// row is one rendered line of the board: a routine header, a section header
// or a checklist item.
type row struct {
	kind    rowKind
	routine *engine.Routine
	section *engine.RoutineSection
	item    *engine.RoutineItem
}

type boardModel struct {
	ctx          context.Context
	user         *engine.User
	manager      *engine.RoutineManager
	achievements *engine.AchievementManager
	store        *storage.Store

	width  int
	height int

	progress []engine.RoutineProgress
	expanded map[string]bool
	rows     []row
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	progress []engine.RoutineProgress
	err      error
}

type toggledMsg struct {
	completed   *engine.CompleteItemResult
	uncompleted *engine.UncompleteItemResult
	newly       []*engine.Achievement
	err         error
}

func newBoardModel(ctx context.Context, user *engine.User, manager *engine.RoutineManager, achievements *engine.AchievementManager, store *storage.Store) boardModel {
	return boardModel{
		ctx:          ctx,
		user:         user,
		manager:      manager,
		achievements: achievements,
		store:        store,
		expanded:     map[string]bool{},
		loading:      true,
		lastLog:      "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		progress, err := m.manager.Today(m.ctx)
		return loadedMsg{progress: progress, err: err}
	}
}

func (m boardModel) toggleCmd(routineID, itemID string, completed bool) tea.Cmd {
	return func() tea.Msg {
		if completed {
			res, err := m.manager.UncompleteItem(m.ctx, routineID, itemID)
			return toggledMsg{uncompleted: res, err: err}
		}
		res, err := m.manager.CompleteItem(m.ctx, routineID, itemID, m.user)
		if err != nil {
			return toggledMsg{err: err}
		}
		newly := m.achievements.Check(m.user)
		if err := m.store.SaveUserSnapshot(m.ctx, m.user.Snapshot()); err != nil {
			// Session state is already saved by the manager; an unconfirmed
			// user save only costs the XP bookkeeping since the last save.
			return toggledMsg{completed: res, newly: newly, err: nil}
		}
		return toggledMsg{completed: res, newly: newly}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.progress = msg.progress
		// Default-expand routines that are in progress.
		for _, rp := range m.progress {
			if rp.Session.Status == engine.SessionInProgress {
				m.expanded[rp.Routine.ID] = true
			}
		}
		m.rows = buildRows(m.progress, m.expanded)
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		switch {
		case msg.completed != nil:
			m.lastLog = completionLog(msg.completed, msg.newly)
		case msg.uncompleted != nil && msg.uncompleted.Changed:
			m.lastLog = fmt.Sprintf("Unchecked %s.", msg.uncompleted.Item.Description)
		default:
			m.lastLog = "No change."
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			return m.activateSelected()
		}
	}
	return m, nil
}

func (m boardModel) activateSelected() (tea.Model, tea.Cmd) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return m, nil
	}
	r := m.rows[m.selected]
	switch r.kind {
	case rowRoutine:
		m.expanded[r.routine.ID] = !m.expanded[r.routine.ID]
		m.rows = buildRows(m.progress, m.expanded)
		m.clampSelection()
		return m, nil
	case rowItem:
		sess := m.sessionFor(r.routine.ID)
		if sess == nil {
			return m, nil
		}
		completed := sess.CompletedItems[r.item.ID]
		return m, m.toggleCmd(r.routine.ID, r.item.ID, completed)
	}
	return m, nil
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) sessionFor(routineID string) *engine.RoutineSession {
	for _, rp := range m.progress {
		if rp.Routine.ID == routineID {
			return rp.Session
		}
	}
	return nil
}

func buildRows(progress []engine.RoutineProgress, expanded map[string]bool) []row {
	var rows []row
	for i := range progress {
		rp := &progress[i]
		rows = append(rows, row{kind: rowRoutine, routine: rp.Routine})
		if !expanded[rp.Routine.ID] {
			continue
		}
		for si := range rp.Routine.Sections {
			sec := &rp.Routine.Sections[si]
			rows = append(rows, row{kind: rowSection, routine: rp.Routine, section: sec})
			for ii := range sec.Items {
				rows = append(rows, row{kind: rowItem, routine: rp.Routine, section: sec, item: &sec.Items[ii]})
			}
		}
	}
	return rows
}

func completionLog(res *engine.CompleteItemResult, newly []*engine.Achievement) string {
	var parts []string
	for _, xp := range res.Results {
		part := fmt.Sprintf("+%d %s", xp.XPGained, xp.Category)
		if xp.LeveledUp {
			part += fmt.Sprintf(" (lvl %d!)", xp.NewLevel)
		}
		parts = append(parts, part)
	}
	line := "Done."
	if len(parts) > 0 {
		line = strings.Join(parts, ", ")
	}
	if res.RoutineCompleted {
		line += " " + ui.IconTrophy + " Routine complete!"
	}
	for _, a := range newly {
		line += fmt.Sprintf(" %s %s unlocked!", a.Icon, a.Name)
	}
	return line
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…"))
		b.WriteString("\n")
	} else if m.err != nil {
		b.WriteString(ui.Bad.Render(ui.IconError + " " + m.err.Error()))
		b.WriteString("\n")
	} else if len(m.rows) == 0 {
		b.WriteString(ui.Muted.Render("No routines found. Add YAML files to the routines directory."))
		b.WriteString("\n")
	} else {
		for i, r := range m.rows {
			b.WriteString(m.rowView(i, r))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("↑/↓ move · enter/space toggle · r refresh · q quit"))
	return b.String()
}

func (m boardModel) headerView() string {
	streak := fmt.Sprintf("%s %d", ui.IconStreak, m.user.Streak.Current)
	if bonus := m.user.StreakBonus(); bonus > 0 {
		streak += fmt.Sprintf(" (+%d%% XP)", int(bonus*100))
	}
	header := fmt.Sprintf("%s  %s  %s",
		ui.Heading(ui.IconRoutine, "Today"),
		ui.LabelValue("Avg level", m.user.AverageLevel()),
		ui.LabelValue("Streak", streak),
	)
	return header
}

func (m boardModel) rowView(i int, r row) string {
	var line string
	switch r.kind {
	case rowRoutine:
		marker := "▸"
		if m.expanded[r.routine.ID] {
			marker = "▾"
		}
		sess := m.sessionFor(r.routine.ID)
		prog := ""
		if sess != nil {
			p := sess.GetProgress(r.routine)
			prog = fmt.Sprintf("  %s  %s", ui.ProgressBar(p.Completed, p.Total, 10), ui.SessionStatusText(string(sess.Status)))
		}
		line = fmt.Sprintf("%s %s %s%s", marker, r.routine.Icon, ui.H2.Render(r.routine.Name), prog)
	case rowSection:
		line = "  " + ui.Key.Render(r.section.Name)
		if r.section.TimeRange != "" {
			line += " " + ui.Muted.Render(r.section.TimeRange)
		}
	case rowItem:
		check := "☐"
		sess := m.sessionFor(r.routine.ID)
		if sess != nil && sess.CompletedItems[r.item.ID] {
			check = ui.Good.Render("☑")
		}
		line = fmt.Sprintf("    %s %s", check, r.item.Description)
		if len(r.item.SkillRewards) > 0 {
			line += " " + ui.Muted.Render(rewardsText(r.item.SkillRewards))
		}
	}
	if i == m.selected {
		return ui.SelectedRow.Render(line)
	}
	return line
}

func rewardsText(rewards map[engine.Category]int) string {
	var parts []string
	for _, c := range engine.Categories {
		if xp, ok := rewards[c]; ok {
			parts = append(parts, fmt.Sprintf("+%d %s", xp, c))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
