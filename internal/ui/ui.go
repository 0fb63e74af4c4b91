package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tunetype/tunetype/internal/formatter"
	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/resolver"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	ReportView
	TrackListView
	UnavailableView
	AuthMissingView
)

const traitBarWidth = 24

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	resolver   *resolver.Resolver
	credential string
	resultID   string
	sharedView bool
	shareBase  string

	view      ViewState
	outcome   resolver.Outcome
	trackList list.Model
	width     int
	height    int
	err       error
	help      help.Model
	keys      keyMap
}

type resolveDoneMsg struct {
	outcome resolver.Outcome
}

// trackItem wraps [models.TrackView] to implement list.Item.
type trackItem struct {
	track models.TrackView
}

func (i trackItem) FilterValue() string { return i.track.TrackName }
func (i trackItem) Title() string       { return i.track.TrackName }
func (i trackItem) Description() string {
	desc := strings.Join(i.track.ArtistNames, ", ")
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return fmt.Sprintf("%s • %s", desc, i.track.DurationFormatted)
}

// NewModel creates a new TUI model with the provided dependencies.
//
// resultID selects the shared path when non-empty; credential may be empty.
func NewModel(ctx context.Context, r *resolver.Resolver, credential, resultID, shareBase string) *Model {
	return &Model{
		ctx:        ctx,
		resolver:   r,
		credential: credential,
		resultID:   resultID,
		sharedView: resultID != "",
		shareBase:  shareBase,
		view:       LoadingView,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the first resolution run.
func (m *Model) Init() tea.Cmd {
	return m.resolve()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ReportView:
			return m.handleReportKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case UnavailableView, AuthMissingView:
			return m.handleTerminalKeys(msg)
		}
		return m, nil

	case resolveDoneMsg:
		m.outcome = msg.outcome
		switch msg.outcome.State {
		case resolver.StateRendered:
			m.buildTrackList()
			m.view = ReportView
		case resolver.StateAuthMissing:
			m.view = AuthMissingView
		default:
			m.view = UnavailableView
		}
		return m, nil
	}

	if m.view == TrackListView {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case ReportView:
		return m.renderReport()
	case TrackListView:
		return m.renderTrackList()
	case UnavailableView:
		return m.renderUnavailable()
	case AuthMissingView:
		return m.renderAuthMissing()
	default:
		return ""
	}
}

func (m *Model) handleReportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t":
		if len(m.outcome.Report.Tracks) > 0 {
			m.view = TrackListView
		}
		return m, nil
	case "r":
		// A shared view is immutable; refresh only applies to the
		// personal report.
		if !m.sharedView {
			m.view = LoadingView
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ReportView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleTerminalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		if m.view == UnavailableView {
			m.view = LoadingView
			return m, m.resolve()
		}
	}
	return m, nil
}

func (m *Model) resolve() tea.Cmd {
	return func() tea.Msg {
		outcome := m.resolver.Resolve(m.ctx, m.resultID, m.sharedView, m.credential)
		return resolveDoneMsg{outcome: outcome}
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		outcome := m.resolver.Refresh(m.ctx, m.credential)
		return resolveDoneMsg{outcome: outcome}
	}
}

func (m *Model) buildTrackList() {
	report := m.outcome.Report
	items := make([]list.Item, len(report.Tracks))
	for i, track := range report.Tracks {
		items[i] = trackItem{track: track}
	}
	m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.trackList.Title = "Tracks Used"
	m.trackList.SetSize(m.width-4, m.height-8)
}

func (m *Model) renderLoading() string {
	return styles.help.Render("Resolving your result...")
}

// traitBar renders one breakdown dimension as a filled bar. Values are
// clamped to [0, 100].
func traitBar(trait string, score models.TraitScore) string {
	value := score.Value
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	filled := int(value / 100 * traitBarWidth)
	bar := styles.barFill.Render(strings.Repeat("█", filled)) +
		styles.bar.Render(strings.Repeat("░", traitBarWidth-filled))

	line := fmt.Sprintf("%-8s %s %s (%.1f)", trait, bar, score.Direction, score.Value)
	if score.Reason != "" {
		line += "\n         " + styles.help.Render(score.Reason)
	}
	return line
}

func (m *Model) renderReport() string {
	report := m.outcome.Report

	title := report.MBTI
	if report.User != "" {
		title = fmt.Sprintf("%s · %s", report.User, report.MBTI)
	}

	summary := report.Summary
	if m.sharedView && !m.outcome.Owned {
		summary = formatter.SharedVoice(summary)
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n")

	traits := make([]string, 0, len(report.Breakdown.Logic))
	for trait := range report.Breakdown.Logic {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	for _, trait := range traits {
		b.WriteString(traitBar(trait, report.Breakdown.Logic[trait]))
		b.WriteString("\n")
	}

	if len(report.Breakdown.TopGenres) > 0 {
		b.WriteString("\nTop genres: " + strings.Join(report.Breakdown.TopGenres, ", ") + "\n")
	}

	if !m.sharedView && report.ResultID != "" && m.shareBase != "" {
		b.WriteString("\nShare: " + styles.ok.Render(formatter.ShareLink(m.shareBase, report.ResultID)) + "\n")
	}

	helpKeys := []key.Binding{m.keys.tracks, m.keys.quit}
	if !m.sharedView {
		helpKeys = append([]key.Binding{m.keys.refresh}, helpKeys...)
	}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))

	return b.String()
}

func (m *Model) renderTrackList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}

func (m *Model) renderUnavailable() string {
	var detail string
	switch m.outcome.Reason {
	case resolver.ReasonSharedNotFound:
		detail = "This shared result does not exist or has expired."
	case resolver.ReasonIdentityUnresolvable:
		detail = "Could not verify who is logged in. Try logging in again."
	default:
		detail = "The service is unavailable right now."
	}

	title := styles.err.Render("Result unavailable")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, detail, helpView)
}

func (m *Model) renderAuthMissing() string {
	title := styles.warn.Render("Not logged in")
	detail := "Run 'tunetype auth login' to connect your Spotify account."
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, detail, helpView)
}
