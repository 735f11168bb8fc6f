// Package model contains the Bubble Tea models behind interactive commands.
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/themesync/internal/cli/styles"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/ui/theme"
)

// tickInterval is how often the picker drives the theme loop.
const tickInterval = 100 * time.Millisecond

// ThemeController is the part of theme.Manager the picker needs.
type ThemeController interface {
	State() entity.ThemeState
	SetPreference(ctx context.Context, p entity.Preference, origin *entity.Point) error
}

// LoopDriver runs queued loop work.
type LoopDriver interface {
	RunPending() int
}

type tickMsg time.Time

// PickerModel lets the user choose the declared preference. The model's
// Update goroutine is the theme loop: it runs queued work on every tick.
type PickerModel struct {
	ctx     context.Context
	manager ThemeController
	loop    LoopDriver

	theme    *styles.Theme
	keys     styles.PickerKeyMap
	help     help.Model
	choices  []entity.Preference
	cursor   int
	status   string
	err      error
	quitting bool
}

// NewPickerModel creates a picker positioned on the declared preference.
func NewPickerModel(ctx context.Context, manager ThemeController, loop LoopDriver) PickerModel {
	st := manager.State()
	th := styles.NewTheme(st.Resolved)
	m := PickerModel{
		ctx:     ctx,
		manager: manager,
		loop:    loop,
		theme:   th,
		keys:    styles.DefaultPickerKeyMap(),
		help:    styles.NewStyledHelp(th),
		choices: st.Available,
	}
	for i, p := range m.choices {
		if p == st.Declared {
			m.cursor = i
		}
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.drain()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Select):
			m.apply()
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *PickerModel) apply() {
	if len(m.choices) == 0 {
		return
	}
	choice := m.choices[m.cursor]
	m.err = m.manager.SetPreference(m.ctx, choice, nil)
	switch {
	case errors.Is(m.err, theme.ErrLocked):
		m.status = ""
	case m.err == nil:
		m.status = fmt.Sprintf("preference set to %s", choice)
	}
	m.drain()
}

// drain runs loop work and restyles the picker when the scheme changed.
func (m *PickerModel) drain() {
	if m.loop != nil {
		m.loop.RunPending()
	}
	if resolved := m.manager.State().Resolved; resolved != m.theme.Scheme && resolved.Valid() {
		m.theme = styles.NewTheme(resolved)
		m.help = styles.NewStyledHelp(m.theme)
	}
}

// Cursor returns the highlighted choice index.
func (m PickerModel) Cursor() int { return m.cursor }

// Err returns the last error from applying a choice.
func (m PickerModel) Err() error { return m.err }

// Theme returns the active terminal theme.
func (m PickerModel) Theme() *styles.Theme { return m.theme }

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}
	t := m.theme
	st := m.manager.State()

	var b strings.Builder
	b.WriteString(t.Title.Render("Theme preference"))
	b.WriteString("\n\n")

	for i, p := range m.choices {
		label := string(p)
		if p == st.Declared {
			label += " ●"
		}
		if i == m.cursor {
			b.WriteString(t.ListItemSelected.Render("› " + label))
		} else {
			b.WriteString(t.ListItem.Render("  " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.NewStateRenderer(t).RenderChange(st))
	b.WriteString("\n")

	switch {
	case errors.Is(m.err, theme.ErrLocked):
		b.WriteString(t.WarningStyle.Render(fmt.Sprintf("locked: forced to %s by configuration", st.Forced)))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(t.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(t.SuccessStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
