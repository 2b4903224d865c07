// Package tui is the interactive terminal front end: a category screen and
// an item screen with add dialogs and a search bar.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/todo"
)

type screen int

const (
	screenCategories screen = iota
	screenItems
)

type mode int

const (
	modeBrowse mode = iota
	modeAdding
	modeSearching
)

// releaseFocusMsg blurs the search bar. It is delivered one turn after the
// keystroke that emptied the bar.
type releaseFocusMsg struct{}

func releaseFocus() tea.Msg { return releaseFocusMsg{} }

// Model is the bubbletea model for the whole app.
type Model struct {
	ctx        context.Context
	categories *todo.CategoryStore
	items      *todo.ItemStore
	log        *zap.Logger

	screen screen
	mode   mode
	cursor int

	cats []*model.Category
	list []*model.Item

	input  textinput.Model
	search textinput.Model
	help   help.Model
	keys   keyMap

	status string
	err    string
}

// New builds the model and loads the category list.
func New(ctx context.Context, categories *todo.CategoryStore, items *todo.ItemStore, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = model.MaxTextLength

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search items..."
	search.CharLimit = model.MaxTextLength

	m := Model{
		ctx:        ctx,
		categories: categories,
		items:      items,
		log:        log,
		input:      input,
		search:     search,
		help:       help.New(),
		keys:       defaultKeyMap(),
	}

	cats, err := categories.LoadAll(ctx)
	m.cats = cats
	m.setErr(err)
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, categories *todo.CategoryStore, items *todo.ItemStore, log *zap.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, categories, items, log), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(releaseFocusMsg); ok {
		m.search.Blur()
		if m.mode == modeSearching {
			m.mode = modeBrowse
		}
		return m, nil
	}

	switch m.mode {
	case modeAdding:
		return m.updateAdding(msg)
	case modeSearching:
		return m.updateSearching(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.screen == screenItems {
		return m.updateItems(keyMsg)
	}
	return m.updateCategories(keyMsg)
}

func (m Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(m.cats))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(m.cats))
	case key.Matches(msg, m.keys.Add):
		return m.openAddDialog("New category name...")
	case key.Matches(msg, m.keys.Open):
		cat := m.selectedCategory()
		if cat == nil {
			return m, nil
		}
		list, err := m.items.LoadForCategory(m.ctx, cat, "")
		if m.setErr(err) {
			return m, nil
		}
		m.list = list
		m.screen = screenItems
		m.cursor = 0
		m.search.SetValue("")
	case key.Matches(msg, m.keys.Delete):
		cat := m.selectedCategory()
		if cat == nil {
			return m, nil
		}
		m.categories.Delete(cat)
		cats, err := m.categories.Commit(m.ctx)
		m.cats = cats
		if !m.setErr(err) {
			m.status = fmt.Sprintf("Deleted %s", cat.Name)
		}
		m.clampCursor(len(m.cats))
	}
	return m, nil
}

func (m Model) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenCategories
		m.list = nil
		m.search.SetValue("")
		m.clampCursor(len(m.cats))
		cats, err := m.categories.LoadAll(m.ctx)
		m.cats = cats
		m.setErr(err)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(m.list))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(m.list))
	case key.Matches(msg, m.keys.Add):
		return m.openAddDialog("New item title...")
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearching
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Toggle):
		item := m.selectedItem()
		if item == nil {
			return m, nil
		}
		m.items.ToggleDone(item)
		list, err := m.items.Commit(m.ctx)
		m.list = list
		m.setErr(err)
	case key.Matches(msg, m.keys.Delete):
		item := m.selectedItem()
		if item == nil {
			return m, nil
		}
		m.items.Delete(item)
		list, err := m.items.Commit(m.ctx)
		m.list = list
		m.setErr(err)
		m.clampCursor(len(m.list))
	}
	return m, nil
}

func (m Model) openAddDialog(placeholder string) (tea.Model, tea.Cmd) {
	m.mode = modeAdding
	m.err = ""
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m Model) closeAddDialog() Model {
	m.mode = modeBrowse
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			return m.closeAddDialog(), nil
		case key.Matches(keyMsg, m.keys.Submit):
			return m.submitAdd()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitAdd creates the entity named in the dialog. Blank input keeps the
// dialog open with an error.
func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		if m.screen == screenItems {
			m.err = "Title cannot be empty"
		} else {
			m.err = "Name cannot be empty"
		}
		return m, nil
	}

	if m.screen == screenItems {
		cat := m.items.Category()
		if _, err := m.items.Create(text, cat); m.setErr(err) {
			return m, nil
		}
		list, err := m.items.Commit(m.ctx)
		m.list = list
		m.setErr(err)
		return m.closeAddDialog(), nil
	}

	if _, err := m.categories.Create(text); m.setErr(err) {
		return m, nil
	}
	if _, err := m.categories.Commit(m.ctx); m.setErr(err) {
		m.cats = m.categories.Categories()
		return m.closeAddDialog(), nil
	}
	cats, err := m.categories.LoadAll(m.ctx)
	m.cats = cats
	m.setErr(err)
	return m.closeAddDialog(), nil
}

func (m Model) updateSearching(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Submit):
			list, err := m.items.Search(m.ctx, m.search.Value())
			m.list = list
			m.setErr(err)
			m.cursor = 0
			m.mode = modeBrowse
			m.search.Blur()
			return m, nil
		case key.Matches(keyMsg, m.keys.Cancel):
			m.search.SetValue("")
			list, err := m.items.Search(m.ctx, "")
			m.list = list
			m.setErr(err)
			m.mode = modeBrowse
			m.search.Blur()
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if before != "" && m.search.Value() == "" {
		list, err := m.items.Search(m.ctx, "")
		m.list = list
		m.setErr(err)
		m.clampCursor(len(m.list))
		return m, releaseFocus
	}
	return m, cmd
}

// setErr records err for display and reports whether it was non-nil.
func (m *Model) setErr(err error) bool {
	if err == nil {
		m.err = ""
		return false
	}
	m.err = err.Error()
	var me *model.Error
	if errors.As(err, &me) && me.Code == model.ErrCodeValidation {
		m.err = me.Message
	}
	return true
}

func (m *Model) moveCursor(delta, n int) {
	m.cursor += delta
	m.clampCursor(n)
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedCategory() *model.Category {
	if m.cursor < 0 || m.cursor >= len(m.cats) {
		return nil
	}
	return m.cats[m.cursor]
}

func (m Model) selectedItem() *model.Item {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return nil
	}
	return m.list[m.cursor]
}
