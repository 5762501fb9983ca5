package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/handoff/pact"
	"github.com/mgomes/handoff/scenario"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
	side   bool
}

type playModel struct {
	textInput textinput.Model

	catalog   *pact.Catalog
	contract  pact.Contract
	operation string
	name      string
	castDefs  []scenario.CastMember

	members  []*scenario.Member
	byName   map[string]*scenario.Member
	host     *pact.Host[*scenario.Member]
	assigned string
	sideBuf  *bytes.Buffer

	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showCast    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle cast"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func playCommand(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	sc := scenario.Demo()
	if remaining := fs.Args(); len(remaining) > 0 {
		loaded, err := scenario.Load(remaining[0])
		if err != nil {
			return err
		}
		sc = loaded
	}

	m, err := newPlayModel(sc)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newPlayModel readies the playground around a scenario's contract and
// cast. The scenario's steps are ignored; the user drives the host.
func newPlayModel(sc *scenario.Scenario) (playModel, error) {
	if err := sc.Validate(); err != nil {
		return playModel{}, err
	}
	cat := scenario.Builtin()
	contract, err := scenario.ResolveContract(cat, sc)
	if err != nil {
		return playModel{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "type :help for commands..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "handoff> "

	m := playModel{
		textInput:  ti,
		catalog:    cat,
		contract:   contract,
		operation:  sc.Meta.Operation,
		name:       sc.Meta.Name,
		castDefs:   sc.Cast,
		sideBuf:    new(bytes.Buffer),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
	if err := m.rebuild(); err != nil {
		return playModel{}, err
	}
	return m, nil
}

// rebuild assembles a fresh cast and an empty-slot host. Used at startup
// and by :reset.
func (m *playModel) rebuild() error {
	m.sideBuf.Reset()
	members, err := scenario.Assemble(m.catalog, m.contract, m.operation, m.castDefs, m.sideBuf)
	if err != nil {
		return err
	}
	byName := make(map[string]*scenario.Member, len(members))
	for _, member := range members {
		byName[member.Name] = member
	}
	host, err := pact.NewHost(pact.HostConfig[*scenario.Member]{
		Name: m.name,
		Dispatch: func(ctx context.Context, member *scenario.Member) (bool, error) {
			return member.Invoke(ctx)
		},
	})
	if err != nil {
		return err
	}
	m.members = members
	m.byName = byName
	m.host = host
	m.assigned = ""
	return nil
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showCast = !m.showCast
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1

			if strings.HasPrefix(input, ":") {
				return m.handleCommand(input)
			}
			m = m.pushErr(input, "commands start with ':' (try :help)")
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m playModel) handleCommand(input string) (playModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":cast", ":v":
		m.showCast = !m.showCast
	case ":acquire", ":a":
		if len(parts) != 2 {
			m = m.pushErr(input, "usage: :acquire <member>")
			break
		}
		member, ok := m.byName[parts[1]]
		if !ok {
			m = m.pushErr(input, fmt.Sprintf("unknown cast member: %s", parts[1]))
			break
		}
		m.host.Acquire(member)
		m.assigned = member.Name
		m = m.push(input, fmt.Sprintf("acquired %s (%s)", member.Name, member.Kind))
	case ":trigger", ":t":
		outcome, err := m.host.Trigger(context.Background())
		echo := input
		for _, line := range m.takeSideLines() {
			m.history = append(m.history, historyEntry{input: echo, output: line, side: true})
			echo = ""
		}
		if err != nil {
			m = m.pushErr(echo, err.Error())
			break
		}
		m = m.push(echo, outcome.String())
	case ":clear":
		had := m.host.Clear()
		m.assigned = ""
		if had {
			m = m.push(input, "slot cleared")
		} else {
			m = m.push(input, "slot was already empty")
		}
	case ":reset", ":r":
		if err := m.rebuild(); err != nil {
			m = m.pushErr(input, err.Error())
			break
		}
		m = m.push(input, "cast rebuilt; slot empty")
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m = m.pushErr(input, fmt.Sprintf("Unknown command: %s", cmd))
	}
	return m, nil
}

func (m playModel) push(input, output string) playModel {
	m.history = append(m.history, historyEntry{input: input, output: output})
	return m
}

func (m playModel) pushErr(input, output string) playModel {
	m.history = append(m.history, historyEntry{input: input, output: output, isErr: true})
	return m
}

// takeSideLines drains the output the conformer wrote while handling the
// dispatch, one history line per written line.
func (m *playModel) takeSideLines() []string {
	if m.sideBuf.Len() == 0 {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(m.sideBuf.String(), "\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	m.sideBuf.Reset()
	return lines
}

func (m playModel) handleAutocomplete() playModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	var completions []string

	commands := []string{":acquire", ":trigger", ":clear", ":cast", ":reset", ":help", ":quit"}
	for _, c := range commands {
		if strings.HasPrefix(c, lastWord) {
			completions = append(completions, c)
		}
	}

	for _, member := range m.members {
		if strings.HasPrefix(member.Name, lastWord) {
			completions = append(completions, member.Name)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

func (m playModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Handoff Playground")
	sub := mutedStyle.Render(m.contract.Name + "." + m.operation)
	b.WriteString(header + " " + sub + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8 // header, input, footer, etc.
	if m.showHelp {
		reservedLines += 12
	}
	if m.showCast {
		reservedLines += len(m.members) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		switch {
		case entry.side:
			b.WriteString("  " + mutedStyle.Render("· "+entry.output) + "\n")
			continue
		case entry.isErr:
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		default:
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showCast {
		b.WriteString(m.renderCastPanel())
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderPlayHelp())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" cast  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func (m playModel) renderCastPanel() string {
	if len(m.members) == 0 {
		return borderStyle.Render(mutedStyle.Render("No cast members"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Cast"))
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, member := range m.members {
		line := fmt.Sprintf("  %s %s (%T)", nameStyle.Render(member.Name), member.Kind, member.Conformer)
		if member.Name == m.assigned {
			line += " " + resultStyle.Render("← assigned")
		}
		lines = append(lines, line)
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderPlayHelp() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate command history"},
		{"Tab", "Autocomplete"},
		{":acquire <m>", "Hire a cast member into the slot"},
		{":trigger", "Dispatch the designated operation"},
		{":clear", "Empty the slot"},
		{":cast", "Toggle cast panel"},
		{":reset", "Rebuild the cast"},
		{":help", "Toggle this help"},
		{":quit", "Exit playground"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-12s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
