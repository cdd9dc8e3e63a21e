package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
	"github.com/AndrejKiraly/RoutineGamification/internal/storage"
)

// RunBoard opens the interactive checklist for today's routines.
func RunBoard(ctx context.Context, user *engine.User, manager *engine.RoutineManager, achievements *engine.AchievementManager, store *storage.Store, out io.Writer) error {
	m := newBoardModel(ctx, user, manager, achievements, store)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
