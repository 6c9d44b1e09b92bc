// Package tui is a read-only terminal browser for the account: a domain
// list screen that drills into the host records of the selected domain.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nctl-dev/nctl/namecheap"
)

type screen int

const (
	screenDomains screen = iota
	screenRecords
)

type domainsMsg []namecheap.Domain

type recordsMsg struct {
	domain  string
	records []namecheap.Record
}

type errMsg struct{ err error }

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

// Model is the bubbletea model. Fetchers are fields so tests can feed the
// update loop without a live client.
type Model struct {
	screen  screen
	domains table.Model
	records table.Model
	spin    spinner.Model

	loading bool
	errText string
	current string

	loadDomains func() tea.Msg
	loadRecords func(domain string) tea.Msg
}

// New builds the model against a live client.
func New(c *namecheap.Client) Model {
	m := newModel()
	m.loadDomains = func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		domains, err := c.Domains.List(ctx, 1, 100)
		if err != nil {
			return errMsg{err}
		}
		return domainsMsg(domains)
	}
	m.loadRecords = func(domain string) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		records, err := c.DNS.GetHosts(ctx, domain)
		if err != nil {
			return errMsg{err}
		}
		return recordsMsg{domain: domain, records: records}
	}
	return m
}

func newModel() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	domains := table.New(
		table.WithColumns([]table.Column{
			{Title: "DOMAIN", Width: 32},
			{Title: "EXPIRES", Width: 12},
			{Title: "LOCKED", Width: 8},
			{Title: "PRIVACY", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	records := table.New(
		table.WithColumns([]table.Column{
			{Title: "TYPE", Width: 8},
			{Title: "NAME", Width: 24},
			{Title: "ADDRESS", Width: 40},
			{Title: "TTL", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return Model{
		screen:  screenDomains,
		domains: domains,
		records: records,
		spin:    sp,
		loading: true,
	}
}

// Run starts the program in the alternate screen.
func Run(c *namecheap.Client) error {
	_, err := tea.NewProgram(New(c), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg { return m.loadDomains() })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.screen == screenRecords && msg.String() == "q" {
				m.screen = screenDomains
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if m.screen == screenRecords {
				m.screen = screenDomains
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if m.screen == screenDomains && !m.loading {
				row := m.domains.SelectedRow()
				if len(row) > 0 && row[0] != "" {
					domain := row[0]
					m.loading = true
					m.errText = ""
					return m, tea.Batch(m.spin.Tick, func() tea.Msg { return m.loadRecords(domain) })
				}
			}
		case "r":
			m.loading = true
			m.errText = ""
			if m.screen == screenRecords {
				domain := m.current
				return m, tea.Batch(m.spin.Tick, func() tea.Msg { return m.loadRecords(domain) })
			}
			return m, tea.Batch(m.spin.Tick, func() tea.Msg { return m.loadDomains() })
		}

	case domainsMsg:
		m.loading = false
		rows := make([]table.Row, 0, len(msg))
		for _, d := range msg {
			expires := ""
			if !d.Expires.IsZero() {
				expires = d.Expires.Format("2006-01-02")
			}
			locked := "no"
			if d.IsLocked.Value() {
				locked = "yes"
			}
			rows = append(rows, table.Row{d.Name, expires, locked, d.WhoisGuard})
		}
		m.domains.SetRows(rows)
		return m, nil

	case recordsMsg:
		m.loading = false
		m.current = msg.domain
		m.screen = screenRecords
		rows := make([]table.Row, 0, len(msg.records))
		for _, r := range msg.records {
			rows = append(rows, table.Row{string(r.Type), r.Name, r.Address, strconv.Itoa(r.TTL)})
		}
		m.records.SetRows(rows)
		return m, nil

	case errMsg:
		m.loading = false
		m.errText = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.screen == screenRecords {
		m.records, cmd = m.records.Update(msg)
	} else {
		m.domains, cmd = m.domains.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	title := "domains"
	body := m.domains.View()
	if m.screen == screenRecords {
		title = "records: " + m.current
		body = m.records.View()
	}

	status := "enter: open  r: refresh  q: back/quit"
	if m.loading {
		status = m.spin.View() + " loading..."
	}

	view := titleStyle.Render(title) + "\n" + body + "\n"
	if m.errText != "" {
		view += errorStyle.Render(m.errText) + "\n"
	}
	return view + statusStyle.Render(status)
}
