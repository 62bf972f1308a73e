package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/orientation"
)

type PickerItem struct {
	ID    string
	Label string
	Desc  string
}

func (i PickerItem) Title() string       { return i.Label }
func (i PickerItem) Description() string { return i.Desc }
func (i PickerItem) FilterValue() string { return i.Label + " " + i.Desc }

// PickerScreen is a filterable list. Typing narrows the items; enter
// selects, esc closes.
type PickerScreen struct {
	title      string
	scope      string
	keys       *core.KeyRegistry
	input      textinput.Model
	list       list.Model
	allItems   []PickerItem
	onSelected func(PickerItem) tea.Msg
}

func NewPickerScreen(title, scope string, keys *core.KeyRegistry, items []PickerItem, onSelected func(PickerItem) tea.Msg) *PickerScreen {
	inp := textinput.New()
	inp.Placeholder = "filter"
	inp.Focus()
	inp.Prompt = "> "
	litems := make([]list.Item, 0, len(items))
	for _, it := range items {
		litems = append(litems, it)
	}
	lst := list.New(litems, list.NewDefaultDelegate(), 40, 12)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.KeyMap.Quit.SetEnabled(false)
	return &PickerScreen{title: title, scope: scope, keys: keys, input: inp, list: lst, allItems: items, onSelected: onSelected}
}

// NewRoutePicker lists every view by route. Picking one navigates there and
// pins it against orientation changes.
func NewRoutePicker(m *core.Model) *PickerScreen {
	current, mounted := m.State()
	items := make([]PickerItem, 0, len(orientation.AllViews))
	for _, v := range orientation.AllViews {
		desc := v.Route() + "  " + string(v.OrientationType())
		if mounted && v == current {
			desc += "  (current)"
		}
		items = append(items, PickerItem{ID: v.Route(), Label: v.Title(), Desc: desc})
	}
	return NewPickerScreen("Go to view", "screen:picker", m.Keys(), items, func(it PickerItem) tea.Msg {
		return core.NavigateMsg{Path: it.ID, Pin: true}
	})
}

func (s *PickerScreen) Title() string { return s.title }
func (s *PickerScreen) Scope() string { return s.scope }

// Selected is the highlighted item, if any survive the filter.
func (s *PickerScreen) Selected() (PickerItem, bool) {
	it, ok := s.list.SelectedItem().(PickerItem)
	return it, ok
}

func (s *PickerScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		action, _ := s.keys.ActionFor(km, s.scope)
		switch action {
		case "close":
			return s, nil, true
		case "select":
			if it, ok := s.Selected(); ok && s.onSelected != nil {
				return s, func() tea.Msg { return s.onSelected(it) }, true
			}
			return s, nil, true
		}
	}
	var cmd1 tea.Cmd
	s.input, cmd1 = s.input.Update(msg)
	s.refreshFiltered()
	var cmd2 tea.Cmd
	s.list, cmd2 = s.list.Update(msg)
	return s, tea.Batch(cmd1, cmd2), false
}

func (s *PickerScreen) refreshFiltered() {
	q := strings.ToLower(strings.TrimSpace(s.input.Value()))
	items := make([]list.Item, 0, len(s.allItems))
	for _, it := range s.allItems {
		h := strings.ToLower(it.ID + " " + it.Label + " " + it.Desc)
		if q == "" || strings.Contains(h, q) {
			items = append(items, it)
		}
	}
	_ = s.list.SetItems(items)
}

func (s *PickerScreen) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-2))
	return s.input.View() + "\n" + s.list.View()
}
