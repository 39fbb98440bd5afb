package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	balcao "github.com/balcao-erp/balcao.go"
	"github.com/balcao-erp/balcao.go/pkg/table"
)

var browseCmd = &cobra.Command{
	Use:   "browse <colecao>",
	Short: "Navega os registros de uma coleção",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		store, err := newStore(log)
		if err != nil {
			return err
		}

		notices := make(chan balcao.Notification, 8)
		client := newClient(store, chanNotifier{ch: notices}, log)

		m := newBrowseModel(client.Resource(args[0]), notices)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// chanNotifier forwards notifications into the UI loop. Notify never
// blocks: when the UI is behind, older notices are simply dropped.
type chanNotifier struct {
	ch chan balcao.Notification
}

func (n chanNotifier) Notify(notice balcao.Notification) {
	select {
	case n.ch <- notice:
	default:
	}
}

type pageMsg *balcao.PageResult

type refetchMsg struct{}

type detailMsg balcao.Record

type noticeMsg balcao.Notification

type browseModel struct {
	res     *balcao.Resource
	notices chan balcao.Notification

	tbl    table.Model[balcao.Record]
	ready  bool
	detail balcao.Record
	notice string
	total  int64
}

func newBrowseModel(res *balcao.Resource, notices chan balcao.Notification) browseModel {
	return browseModel{res: res, notices: notices}
}

func (m browseModel) fetch() tea.Cmd {
	return func() tea.Msg {
		page, _ := m.res.List(context.Background(), nil)
		return pageMsg(page)
	}
}

func (m browseModel) listen() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.notices)
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.listen())
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
		case "q":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
			if m.ready && !m.tbl.Searching() {
				return m, tea.Quit
			}
		case "r":
			if m.ready && !m.tbl.Searching() && m.detail == nil {
				m.tbl.SetLoading(true)
				return m, tea.Batch(m.fetch(), m.tbl.Init())
			}
		}

	case pageMsg:
		page := (*balcao.PageResult)(msg)
		if !m.ready {
			m.tbl = m.buildTable(page.Rows)
			m.ready = true
		}
		m.tbl.SetRows(page.Rows)
		m.tbl.SetLoading(false)
		m.total = page.TotalCount
		if page.FromFallback {
			m.notice = "Coleção ainda não provisionada — exibindo modo degradado."
		}
		return m, nil

	case refetchMsg:
		m.tbl.SetLoading(true)
		return m, tea.Batch(m.fetch(), m.tbl.Init())

	case detailMsg:
		m.detail = balcao.Record(msg)
		return m, nil

	case noticeMsg:
		n := balcao.Notification(msg)
		m.notice = n.Title
		if n.Description != "" {
			m.notice += " — " + n.Description
		}
		return m, m.listen()
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	noticeStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	errStyle    = lipgloss.NewStyle().Bold(true)
)

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.res.Collection()))
	b.WriteString("\n\n")

	switch {
	case m.detail != nil:
		b.WriteString(renderDetail(m.detail))
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render("[esc] voltar"))
		b.WriteString("\n")
	case !m.ready:
		b.WriteString("Carregando...\n")
	default:
		b.WriteString(m.tbl.View())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if lastErr := m.res.LastError(); lastErr != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(lastErr))
		b.WriteString("\n")
	}

	return b.String()
}

func (m browseModel) buildTable(rows []balcao.Record) table.Model[balcao.Record] {
	columns := columnsFor(rows)

	remove := table.Action[balcao.Record]{
		Label: "excluir",
		Key:   "d",
		Do: func(row balcao.Record) tea.Cmd {
			res := m.res
			return func() tea.Msg {
				res.Remove(context.Background(), row.ID()) //nolint:errcheck // surfaced via notifier
				return refetchMsg{}
			}
		},
	}

	return table.New(columns,
		table.WithActions(remove),
		table.WithRowClick(func(row balcao.Record) tea.Cmd {
			return func() tea.Msg { return detailMsg(row) }
		}),
	)
}

// columnsFor derives the column set from the fields of the fetched rows:
// id first, store timestamps last, everything else alphabetical.
func columnsFor(rows []balcao.Record) []table.Column[balcao.Record] {
	seen := map[string]bool{}
	for _, row := range rows {
		for field := range row {
			seen[field] = true
		}
	}
	if len(seen) == 0 {
		seen[balcao.FieldID] = true
	}

	rank := func(field string) int {
		switch field {
		case balcao.FieldID:
			return 0
		case balcao.FieldCreatedAt, balcao.FieldUpdatedAt:
			return 2
		default:
			return 1
		}
	}

	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		if rank(fields[i]) != rank(fields[j]) {
			return rank(fields[i]) < rank(fields[j])
		}
		return fields[i] < fields[j]
	})

	columns := make([]table.Column[balcao.Record], 0, len(fields))
	for _, field := range fields {
		columns = append(columns, table.Column[balcao.Record]{
			Header: field,
			Field:  field,
		})
	}
	return columns
}

func renderDetail(rec balcao.Record) string {
	fields := make([]string, 0, len(rec))
	for field := range rec {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for _, field := range fields {
		fmt.Fprintf(&b, "%-24s %s\n", field+":", rec.Field(field))
	}
	return b.String()
}
