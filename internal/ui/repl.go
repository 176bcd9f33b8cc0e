// Package ui implements the interactive checker and the shared terminal
// styles.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gibberlab/gibber"
)

// historyLimit bounds the scrollback kept in memory.
const historyLimit = 200

// checkTimeout bounds one classification, including the optional
// second-stage model call.
const checkTimeout = 30 * time.Second

type verdict struct {
	text string
	sens gibber.Sensitivity
	res  gibber.Result
	took time.Duration
}

type verdictMsg verdict

// Model is the interactive checker. Construct with New.
type Model struct {
	detector *gibber.Detector
	sens     gibber.Sensitivity
	input    textinput.Model
	history  []verdict
	checking bool
	width    int
	height   int
}

// New creates the checker model around a configured detector.
func New(d *gibber.Detector, s gibber.Sensitivity) Model {
	ti := textinput.New()
	ti.Placeholder = "Type text to check..."
	ti.Focus()

	return Model{detector: d, sens: s, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case verdictMsg:
		m.checking = false
		m.history = append(m.history, verdict(msg))
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.sens = nextSensitivity(m.sens)
			return m, nil
		case "ctrl+l":
			m.history = nil
			return m, nil
		case "enter":
			text := m.input.Value()
			if strings.TrimSpace(text) == "" || m.checking {
				return m, nil
			}
			m.input.SetValue("")
			m.checking = true
			return m, check(m.detector, text, m.sens)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// check classifies off the update loop so a slow second-stage model never
// blocks typing.
func check(d *gibber.Detector, text string, s gibber.Sensitivity) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		start := time.Now()
		res := d.ClassifyContext(ctx, text, s)
		return verdictMsg{text: text, sens: s, res: res, took: time.Since(start)}
	}
}

func nextSensitivity(s gibber.Sensitivity) gibber.Sensitivity {
	switch s {
	case gibber.Low:
		return gibber.Medium
	case gibber.Medium:
		return gibber.High
	default:
		return gibber.Low
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	status := fmt.Sprintf("sensitivity %s", m.sens)
	if m.detector.HasEnhancedDetection() {
		status += "   enhanced"
	}
	header := Header.Width(m.width).Render(
		Title.Render("gibber") + "  " + Detail.Render(status))

	hint := func(key, desc string) string {
		return Body.Bold(true).Render(key) + " " + Detail.Render(desc)
	}
	footer := Footer.Width(m.width).Render(strings.Join([]string{
		hint("Enter", "Check"),
		hint("Tab", "Sensitivity"),
		hint("Ctrl+L", "Clear"),
		hint("Ctrl+C", "Quit"),
	}, "   "))

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	var b strings.Builder
	for _, h := range visible(m.history, contentHeight-3) {
		b.WriteString(renderVerdict(h, m.width))
	}
	if m.checking {
		b.WriteString(Hint.Render("checking..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(b.String())

	v.SetContent(header + "\n" + content + "\n" + footer)
	return v
}

// visible trims history to what fits, newest last. Each verdict renders as
// two lines.
func visible(hist []verdict, lines int) []verdict {
	keep := lines / 2
	if keep < 1 {
		keep = 1
	}
	if len(hist) <= keep {
		return hist
	}
	return hist[len(hist)-keep:]
}

func renderVerdict(h verdict, width int) string {
	label, style := "english", Clean
	if h.res.Gibberish {
		label, style = "gibberish", Gibberish
	}

	text := h.text
	if maxw := width - 12; maxw > 3 && utf8.RuneCountInString(text) > maxw {
		text = string([]rune(text)[:maxw-3]) + "..."
	}

	detail := string(h.res.Reason)
	if h.res.Reason == gibber.ReasonComposite {
		detail = fmt.Sprintf("%s %.2f vs %.2f", detail, h.res.Composite, h.res.Threshold)
	}
	if h.res.Enhanced {
		detail += "   model checked"
	}
	detail += fmt.Sprintf("   %s   %s", h.sens, h.took.Round(time.Microsecond))

	return fmt.Sprintf("%s  %s\n%s\n",
		style.Render(fmt.Sprintf("%-9s", label)),
		Body.Render(text),
		Detail.Render("           "+detail))
}

// Run starts the interactive checker and blocks until the user quits.
func Run(d *gibber.Detector, s gibber.Sensitivity) error {
	_, err := tea.NewProgram(New(d, s)).Run()
	return err
}
