package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lakshaymaurya-felt/wclean/internal/clean"
)

// FinalHold is how long the final status stays on screen before the
// progress display exits.
const FinalHold = 1500 * time.Millisecond

// ─── Messages ────────────────────────────────────────────────────────────────

type statusMsg string

type percentMsg float64

type doneMsg clean.RunResult

type quitMsg struct{}

// ─── Model ───────────────────────────────────────────────────────────────────

// ProgressModel is the bubbletea Model shown while a cleanup runs.
type ProgressModel struct {
	title    string
	spinner  spinner.Model
	bar      progress.Model
	status   string
	percent  float64
	hold     time.Duration
	cancel   context.CancelFunc
	result   *clean.RunResult
	stopping bool
}

// NewProgressModel creates the model. cancel is called when the user asks
// to stop; it may be nil.
func NewProgressModel(title string, hold time.Duration, cancel context.CancelFunc) ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	return ProgressModel{
		title:   title,
		spinner: sp,
		bar:     bar,
		status:  "Starting…",
		hold:    hold,
		cancel:  cancel,
	}
}

// Status returns the most recent status text.
func (m ProgressModel) Status() string { return m.status }

// Percent returns the last overall percentage received.
func (m ProgressModel) Percent() float64 { return m.percent }

// Done reports whether the run has delivered its result.
func (m ProgressModel) Done() bool { return m.result != nil }

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		w := msg.Width - 6
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.result != nil {
				return m, tea.Quit
			}
			// The run notices cancellation between deletions and then
			// delivers its result as usual.
			if !m.stopping && m.cancel != nil {
				m.stopping = true
				m.status = "Stopping…"
				m.cancel()
			}
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case percentMsg:
		if p := float64(msg); p > m.percent {
			m.percent = p
		}
		return m, nil

	case doneMsg:
		res := clean.RunResult(msg)
		m.result = &res
		return m, tea.Tick(m.hold, func(time.Time) tea.Msg { return quitMsg{} })

	case quitMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		if m.result != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ProgressModel) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle().Render("  " + IconDiamond + " " + m.title))
	s.WriteString("\n\n  ")
	s.WriteString(m.bar.ViewAs(m.percent / 100))
	s.WriteString("\n\n  ")

	switch {
	case m.result == nil:
		s.WriteString(m.spinner.View())
		s.WriteString(" ")
		s.WriteString(m.status)
	case m.result.Err != nil:
		s.WriteString(ErrorStyle().Render(IconCross + " " + m.status))
	default:
		s.WriteString(SuccessStyle().Render(IconCheck + " " + m.status))
	}
	s.WriteString("\n")

	if m.result == nil && !m.stopping {
		s.WriteString(MutedStyle().Render("\n  q to stop"))
		s.WriteString("\n")
	}
	return s.String()
}

// ─── Sink ────────────────────────────────────────────────────────────────────

// ProgramSink forwards engine progress into a running bubbletea program.
// Messages sent after the program has exited are dropped.
type ProgramSink struct {
	p *tea.Program
}

func (s ProgramSink) OnStatus(text string)    { s.p.Send(statusMsg(text)) }
func (s ProgramSink) OnPercent(value float64) { s.p.Send(percentMsg(value)) }

// StartFunc begins a run reporting to sink.
type StartFunc func(ctx context.Context, sink clean.ProgressSink) (<-chan clean.RunResult, error)

// RunWithProgress starts a run under the progress display and returns its
// result once the display has closed.
func RunWithProgress(ctx context.Context, title string, start StartFunc, opts ...tea.ProgramOption) (clean.RunResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(title, FinalHold, cancel), opts...)

	results, err := start(ctx, ProgramSink{p: p})
	if err != nil {
		return clean.RunResult{}, err
	}

	done := make(chan clean.RunResult, 1)
	go func() {
		res := <-results
		done <- res
		p.Send(doneMsg(res))
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		res := <-done
		return res, fmt.Errorf("progress display: %w", err)
	}
	return <-done, nil
}
