// Package tui provides an interactive chat screen over the assistant,
// with a tab-cycled Arcadia phase filter and context source display.
package tui

import (
	"fmt"
	"strings"

	"arcrag/internal/arcadia"
	"arcrag/internal/rag"
	"arcrag/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type chatState int

const (
	chatIdle chatState = iota
	chatWorking
)

// Model is the top-level Bubble Tea model.
type Model struct {
	viewport    viewport.Model
	input       textinput.Model
	spinner     spinner.Model
	renderer    *glamour.TermRenderer
	messages    []chatMessage
	assistant   *rag.Assistant
	phases      []arcadia.Phase
	phaseIdx    int // 0 means no filter; 1..len(phases) selects phases[phaseIdx-1]
	k           int
	state       chatState
	width       int
	height      int
	initialized bool
}

type chatMessage struct {
	role    string
	content string
	sources []string
}

// answerMsg is sent when a query completes.
type answerMsg struct {
	answer  string
	context []store.RetrievedRecord
	err     error
}

// New creates the chat model over an assistant.
func New(assistant *rag.Assistant, k int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = phaseStyle

	ti := textinput.New()
	ti.Placeholder = "Ask about your system model..."
	ti.CharLimit = 2000
	ti.Focus()

	var phases []arcadia.Phase
	for _, info := range assistant.Taxonomy().Phases() {
		phases = append(phases, info.Phase)
	}

	return Model{
		spinner:   sp,
		input:     ti,
		assistant: assistant,
		phases:    phases,
		k:         k,
		state:     chatIdle,
	}
}

func (m *Model) initViewport(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - 3
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.viewport = viewport.New(width, vpHeight)
	m.viewport.SetContent(dimStyle.Render("Ask a question about your Arcadia/Capella models.\n\nTab cycles the phase filter. Commands: /clear, /exit"))

	m.input.Width = width - 4

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err == nil {
		m.renderer = r
	}

	m.initialized = true
}

func (m Model) currentPhase() arcadia.Phase {
	if m.phaseIdx == 0 {
		return ""
	}
	return m.phases[m.phaseIdx-1]
}

func askQuestion(assistant *rag.Assistant, question string, k int, phase arcadia.Phase) tea.Cmd {
	return func() tea.Msg {
		answer, context, err := assistant.Answer(question, k, phase)
		if err != nil {
			return answerMsg{err: err}
		}
		return answerMsg{answer: answer, context: context}
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.initViewport(msg.Width, msg.Height)
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case answerMsg:
		m.state = chatIdle
		if msg.err != nil {
			m.messages = append(m.messages, chatMessage{role: "error", content: msg.err.Error()})
		} else {
			var sources []string
			seen := make(map[string]bool)
			for _, rec := range msg.context {
				if rec.Meta.Source != "" && !seen[rec.Meta.Source] {
					seen[rec.Meta.Source] = true
					sources = append(sources, rec.Meta.Source)
				}
			}
			m.messages = append(m.messages, chatMessage{role: "assistant", content: msg.answer, sources: sources})
		}
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.state != chatIdle {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.viewport.SetContent(m.renderMessages())
			m.viewport.GotoBottom()
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.state != chatIdle {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab:
			m.phaseIdx = (m.phaseIdx + 1) % (len(m.phases) + 1)
			return m, nil
		case tea.KeyEnter:
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()

			switch question {
			case "/exit", "/quit":
				return m, tea.Quit
			case "/clear":
				m.messages = nil
				m.viewport.SetContent(dimStyle.Render("Conversation cleared."))
				return m, nil
			}

			m.messages = append(m.messages, chatMessage{role: "user", content: question})
			m.state = chatWorking
			m.viewport.SetContent(m.renderMessages())
			m.viewport.GotoBottom()

			return m, tea.Batch(
				m.spinner.Tick,
				askQuestion(m.assistant, question, m.k, m.currentPhase()),
			)
		}
	}

	if m.state == chatIdle {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return assistantMsgStyle.Render(content)
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return assistantMsgStyle.Render(content)
	}
	return strings.TrimRight(rendered, "\n")
}

func (m Model) renderMessages() string {
	var sb strings.Builder
	for _, msg := range m.messages {
		switch msg.role {
		case "user":
			sb.WriteString(userMsgStyle.Render("You: ") + msg.content + "\n\n")
		case "assistant":
			sb.WriteString(m.renderMarkdown(msg.content) + "\n")
			if len(msg.sources) > 0 {
				sb.WriteString(sourceStyle.Render("Sources: "+strings.Join(msg.sources, ", ")) + "\n")
			}
			sb.WriteString("\n")
		case "error":
			sb.WriteString(errorStyle.Render("Error: "+msg.content) + "\n\n")
		}
	}

	if m.state != chatIdle {
		sb.WriteString(m.spinner.View() + " " + dimStyle.Render("Thinking...") + "\n")
	}

	return sb.String()
}

func (m Model) View() string {
	if !m.initialized {
		return ""
	}

	phaseLabel := "all phases"
	if p := m.currentPhase(); p != "" {
		phaseLabel = string(p)
	}
	statusBar := statusBarStyle.
		Width(m.width).
		Render(fmt.Sprintf(" arcrag chat • phase: %s (tab to change)", phaseLabel))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		statusBar,
		m.input.View(),
	)
}

// Run starts the chat TUI.
func Run(assistant *rag.Assistant, k int) error {
	p := tea.NewProgram(New(assistant, k), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
