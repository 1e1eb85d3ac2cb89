// Package tui is an interactive browser over a scan result: a findings
// table with a detail pane, severity filtering and clipboard copy.
package tui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scanlens/scanlens/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	sevCritStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fixStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// row pairs an issue with the file it was found in, flattened for the
// findings table.
type row struct {
	path  string
	lang  types.Language
	issue types.Issue
}

// severityText returns plain text for severity (ANSI codes break table
// truncation).
func severityText(s types.Severity) string {
	return strings.ToUpper(string(s))
}

// Model is the bubbletea state for the result browser.
type Model struct {
	table    table.Model
	viewport viewport.Model

	result *types.ScanResult
	rows   []row // all issues in display order
	shown  []row // after severity filter

	severityFilter types.Severity // "" = no filter
	showHelp       bool
	quitting       bool
	ready          bool
	width          int
	height         int
	statusMessage  string
}

// NewModel builds the browser over a finished scan result.
func NewModel(res *types.ScanResult) Model {
	var rows []row
	for _, path := range res.Paths() {
		fr := res.Files[path]
		for _, iss := range fr.Issues {
			rows = append(rows, row{path: path, lang: fr.Language, issue: iss})
		}
	}

	columns := []table.Column{
		{Title: "Sev", Width: 10},
		{Title: "Rule", Width: 24},
		{Title: "Location", Width: 36},
		{Title: "Message", Width: 40},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	m := Model{table: t, result: res, rows: rows}
	m.applyFilter()
	return m
}

func (m *Model) applyFilter() {
	if m.severityFilter == "" {
		m.shown = m.rows
	} else {
		m.shown = nil
		for _, r := range m.rows {
			if r.issue.Severity == m.severityFilter {
				m.shown = append(m.shown, r)
			}
		}
	}
	trows := make([]table.Row, len(m.shown))
	for i, r := range m.shown {
		trows[i] = table.Row{
			severityText(r.issue.Severity),
			r.issue.RuleID,
			fmt.Sprintf("%s:%d", r.path, r.issue.Line),
			r.issue.Message,
		}
	}
	m.table.SetRows(trows)
	m.table.SetCursor(0)
}

func (m Model) selectedRow() *row {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.shown) {
		return nil
	}
	return &m.shown[i]
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "a":
			m.severityFilter = ""
			m.applyFilter()
		case "1", "2", "3", "4", "5":
			n, _ := strconv.Atoi(msg.String())
			m.severityFilter = types.Severities()[n-1]
			m.applyFilter()
		case "c":
			return m, m.copyLocation()
		case "y":
			return m, m.copyIssue()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(msg.Height/2 - 3)
		m.viewport = viewport.New(msg.Width-4, msg.Height-m.table.Height()-7)
		m.ready = true
	case statusMsg:
		m.statusMessage = string(msg)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	m.updateDetail()
	return m, cmd
}

type statusMsg string

func (m Model) copyLocation() tea.Cmd {
	r := m.selectedRow()
	if r == nil {
		return nil
	}
	loc := fmt.Sprintf("%s:%d", r.path, r.issue.Line)
	if err := clipboard.WriteAll(loc); err != nil {
		return func() tea.Msg { return statusMsg("clipboard unavailable") }
	}
	return func() tea.Msg { return statusMsg("Copied " + loc) }
}

func (m Model) copyIssue() tea.Cmd {
	r := m.selectedRow()
	if r == nil {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d %s [%s/%s]\n%s\n", r.path, r.issue.Line,
		r.issue.RuleID, r.issue.Severity, r.issue.Category, r.issue.Message)
	if r.issue.CodeSnippet != "" {
		sb.WriteString(r.issue.CodeSnippet + "\n")
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		return func() tea.Msg { return statusMsg("clipboard unavailable") }
	}
	return func() tea.Msg { return statusMsg("Copied issue details") }
}

func (m *Model) updateDetail() {
	if !m.ready {
		return
	}
	r := m.selectedRow()
	if r == nil {
		m.viewport.SetContent("")
		return
	}
	var sb strings.Builder
	sb.WriteString(severityStyle(r.issue.Severity).Render(severityText(r.issue.Severity)))
	fmt.Fprintf(&sb, "  %s  (%s)\n\n", r.issue.RuleID, r.issue.Category)
	fmt.Fprintf(&sb, "%s:%d\n%s\n", r.path, r.issue.Line, r.issue.Message)
	if r.issue.CodeSnippet != "" {
		sb.WriteString("\n" + highlightCode(r.issue.CodeSnippet, r.path) + "\n")
	}
	if r.issue.FixSuggestion != "" {
		sb.WriteString("\n" + fixStyle.Render("Fix: "+r.issue.FixSuggestion) + "\n")
	}
	m.viewport.SetContent(sb.String())
}

func severityStyle(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevCritical:
		return sevCritStyle
	case types.SevHigh:
		return sevHighStyle
	case types.SevMedium:
		return sevMedStyle
	default:
		return sevLowStyle
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.helpView()
	}

	title := titleStyle.Render(fmt.Sprintf("scanlens — %s", m.result.Root))

	var body string
	if len(m.rows) == 0 {
		body = emptyTextStyle.Width(m.width).Render("\n[OK] No issues found\n")
	} else {
		body = tableBorderStyle.Render(m.table.View()) + "\n" +
			detailBorderStyle.Render(m.viewport.View())
	}

	status := m.statusLine()
	return lipgloss.JoinVertical(lipgloss.Left, title, body, status)
}

func (m Model) statusLine() string {
	s := m.result.Summary
	left := fmt.Sprintf(" %d issues in %d files", s.TotalIssues, s.TotalFiles)
	if m.severityFilter != "" {
		left += fmt.Sprintf("  [FILTER: %s]", severityText(m.severityFilter))
	}
	if m.statusMessage != "" {
		left += "  " + m.statusMessage
	}
	right := "1-5 filter · a all · c copy loc · y copy issue · ? help · q quit "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) helpView() string {
	help := `scanlens result browser

  up/down, j/k   move selection
  1..5           filter by severity (info..critical)
  a              clear severity filter
  c              copy file:line to clipboard
  y              copy full issue details
  ?              toggle this help
  q, esc         quit

press any key to close`
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 4).
			Render(help))
}

// highlightCode runs chroma's terminal formatter over a snippet. Any
// failure returns the input untouched.
func highlightCode(code, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
