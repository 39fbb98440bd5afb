// Package table renders a bounded window of rows with client-side search
// and pagination, independent of where the rows came from. It is a
// bubbletea component: screens feed it a page of records fetched through a
// resource and react to the commands its row actions return.
//
// Search matches a case-insensitive substring against the string form of
// every field of a row, not only the displayed columns. The row set is one
// already-fetched page, so the unindexed scan stays bounded.
package table

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PageSize is the fixed number of rows per table page.
const PageSize = 10

// Column describes one rendered column. Render, when set, wins; otherwise
// Value is called; otherwise Field is looked up directly on map-shaped
// rows.
type Column[T any] struct {
	Header string
	Field  string
	Value  func(T) any
	Render func(T) string
}

// Action is a row action bound to a key. Its command is returned from
// Update in place of any row-click, never in addition to it.
type Action[T any] struct {
	Label string
	Key   string
	Do    func(T) tea.Cmd
}

// Option configures a [Model].
type Option[T any] func(*Model[T])

func WithActions[T any](actions ...Action[T]) Option[T] {
	return func(m *Model[T]) { m.actions = actions }
}

// WithRowClick sets the command fired when the user activates the selected
// row with enter.
func WithRowClick[T any](fn func(T) tea.Cmd) Option[T] {
	return func(m *Model[T]) { m.onRowClick = fn }
}

func WithoutSearch[T any]() Option[T] {
	return func(m *Model[T]) { m.searchable = false }
}

func WithoutPagination[T any]() Option[T] {
	return func(m *Model[T]) { m.paginated = false }
}

func WithStyles[T any](s Styles) Option[T] {
	return func(m *Model[T]) { m.styles = s }
}

// Model is the table state: the rows of the current fetch, the search
// query and the page cursor. All state is local to the instance.
type Model[T any] struct {
	rows       []T
	columns    []Column[T]
	actions    []Action[T]
	onRowClick func(T) tea.Cmd

	searchable bool
	paginated  bool
	loading    bool

	search textinput.Model
	spin   spinner.Model
	page   int
	cursor int
	styles Styles
}

func New[T any](columns []Column[T], opts ...Option[T]) Model[T] {
	search := textinput.New()
	search.Placeholder = "Buscar..."
	search.Prompt = "/ "

	m := Model[T]{
		columns:    columns,
		searchable: true,
		paginated:  true,
		search:     search,
		spin:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		page:       1,
		styles:     DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// SetRows replaces the row set, keeping page and cursor clamped.
func (m *Model[T]) SetRows(rows []T) {
	m.rows = rows
	m.clamp()
}

// SetLoading switches the loading state. While loading the body is fully
// replaced by a spinner and no controls are shown.
func (m *Model[T]) SetLoading(v bool) {
	m.loading = v
}

func (m Model[T]) Loading() bool { return m.loading }

// SetQuery sets the search query programmatically, resetting to page 1
// exactly like typing would.
func (m *Model[T]) SetQuery(q string) {
	m.search.SetValue(q)
	m.page = 1
	m.cursor = 0
	m.clamp()
}

func (m Model[T]) Query() string { return m.search.Value() }

// Searching reports whether keystrokes are currently captured by the
// search input.
func (m Model[T]) Searching() bool { return m.search.Focused() }

func (m Model[T]) Page() int { return m.page }

// TotalPages is never below 1, even with zero matches.
func (m Model[T]) TotalPages() int {
	if !m.paginated {
		return 1
	}
	n := len(m.matches())
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (m Model[T]) MatchCount() int { return len(m.matches()) }

// VisibleRows is the slice of matches shown on the current page.
func (m Model[T]) VisibleRows() []T {
	matched := m.matches()
	if !m.paginated {
		return matched
	}
	from := (m.page - 1) * PageSize
	if from >= len(matched) {
		return nil
	}
	to := from + PageSize
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to]
}

// Selected returns the row under the cursor, if any.
func (m Model[T]) Selected() (T, bool) {
	var zero T
	visible := m.VisibleRows()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return zero, false
	}
	return visible[m.cursor], true
}

func (m Model[T]) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model[T]) updateSearch(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.page = 1
		m.cursor = 0
	}
	return m, cmd
}

func (m Model[T]) updateBrowse(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	key := msg.String()

	switch key {
	case "/":
		if m.searchable {
			return m, m.search.Focus()
		}
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.VisibleRows())-1 {
			m.cursor++
		}
		return m, nil
	case "left", "pgup", "h":
		if m.paginated && m.page > 1 {
			m.page--
			m.cursor = 0
		}
		return m, nil
	case "right", "pgdown", "l":
		if m.paginated && m.page < m.TotalPages() {
			m.page++
			m.cursor = 0
		}
		return m, nil
	case "enter":
		if row, ok := m.Selected(); ok && m.onRowClick != nil {
			return m, m.onRowClick(row)
		}
		return m, nil
	}

	// A matching action key consumes the press entirely, so the row-click
	// handler can never fire for the same event.
	for _, action := range m.actions {
		if key != action.Key {
			continue
		}
		if row, ok := m.Selected(); ok && action.Do != nil {
			return m, action.Do(row)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model[T]) clamp() {
	if m.page < 1 {
		m.page = 1
	}
	if total := m.TotalPages(); m.page > total {
		m.page = total
	}
	if visible := len(m.VisibleRows()); m.cursor >= visible {
		m.cursor = visible - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model[T]) matches() []T {
	query := strings.ToLower(m.search.Value())
	if !m.searchable || query == "" {
		return m.rows
	}

	matched := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		if rowMatches(row, query) {
			matched = append(matched, row)
		}
	}
	return matched
}

// rowMatches scans every field value of the row, not only displayed
// columns. Map-shaped rows are walked value by value; anything else is
// matched against its printed form.
func rowMatches(row any, query string) bool {
	v := reflect.ValueOf(row)
	if v.Kind() == reflect.Map {
		iter := v.MapRange()
		for iter.Next() {
			value := iter.Value().Interface()
			if value == nil {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprint(value)), query) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(fmt.Sprintf("%+v", row)), query)
}

func (m Model[T]) cell(row T, col Column[T]) string {
	switch {
	case col.Render != nil:
		return col.Render(row)
	case col.Value != nil:
		return stringify(col.Value(row))
	case col.Field != "":
		v := reflect.ValueOf(row)
		if v.Kind() == reflect.Map {
			f := v.MapIndex(reflect.ValueOf(col.Field))
			if f.IsValid() {
				return stringify(f.Interface())
			}
		}
		return ""
	}
	return ""
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
