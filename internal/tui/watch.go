// Package tui implements the terminal monitor for a running feedgate
// instance. It polls the read API and renders recently ingested articles.
package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feedgate/feedgate/internal/api"
)

// --- Styles ---

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Padding(0, 1)

	healthOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	healthBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	footerNote = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

const pollInterval = 2 * time.Second

// --- Types ---

type Model struct {
	apiURL string
	apiKey string

	width  int
	height int

	articleTable table.Model
	health       api.HealthResponse
	healthy      bool
	lastErr      error
}

type articlesMsg api.ArticleListResponse
type healthMsg api.HealthResponse
type tickMsg time.Time
type errMsg error

// --- Init ---

func NewWatch(apiURL, apiKey string) *Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Ingested", Width: 19},
			{Title: "Source", Width: 14},
			{Title: "Title", Width: 40},
			{Title: "External ID", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return &Model{
		apiURL:       apiURL,
		apiKey:       apiKey,
		articleTable: t,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchHealth, m.fetchArticles, tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// --- Update ---

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.fetchHealth, m.fetchArticles, tick())

	case healthMsg:
		m.health = api.HealthResponse(msg)
		m.healthy = m.health.Status == "ok"
		m.lastErr = nil

	case articlesMsg:
		rows := make([]table.Row, 0, len(msg.Articles))
		for _, a := range msg.Articles {
			rows = append(rows, table.Row{
				a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				a.SourceID,
				a.Title,
				a.ExternalID,
			})
		}
		m.articleTable.SetRows(rows)

	case errMsg:
		m.healthy = false
		m.lastErr = msg
	}

	var cmd tea.Cmd
	m.articleTable, cmd = m.articleTable.Update(msg)
	return m, cmd
}

// --- View ---

func (m *Model) View() string {
	title := titleStyle.Render("feedgate watch")

	var health string
	switch {
	case m.lastErr != nil:
		health = healthBad.Render(fmt.Sprintf("unreachable: %v", m.lastErr))
	case m.healthy:
		health = healthOK.Render(fmt.Sprintf("healthy, up %ds", m.health.UptimeSeconds))
	default:
		health = healthBad.Render("unhealthy")
	}

	footer := footerNote.Render("q: quit")

	return docStyle.Render(title + "  " + health + "\n\n" + m.articleTable.View() + "\n" + footer)
}

// --- API polling ---

func (m *Model) fetchHealth() tea.Msg {
	var out api.HealthResponse
	if err := m.getJSON("/healthz", &out); err != nil {
		return errMsg(err)
	}
	return healthMsg(out)
}

func (m *Model) fetchArticles() tea.Msg {
	var out api.ArticleListResponse
	if err := m.getJSON("/api/v1/articles?limit=50", &out); err != nil {
		return errMsg(err)
	}
	return articlesMsg(out)
}

func (m *Model) getJSON(path string, out any) error {
	req, err := http.NewRequest("GET", m.apiURL+path, nil)
	if err != nil {
		return err
	}
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
