// Package repl implements the interactive template playground.
//
// Each line is rendered as a template against the registry. Lines starting
// with ':' are commands. Function names complete after '[', variable names
// after '{' and commands after ':'.
package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/splice/lang"
	"github.com/ardnew/splice/log"
)

const prompt = "➜ "

const helpMessage = `Type a template to render it. Commands:

  :set NAME VALUE   set a variable (VALUE is rendered first)
  :vars             list variables
  :funcs            list functions and their arity
  :tree TEMPLATE    print the parse tree
  :tokens TEMPLATE  print the token stream
  :help             print this help
  :quit             exit

Tab / Shift-Tab cycle completions, Up / Down walk the history,
Ctrl+C clears the line (or exits when empty), Ctrl+D exits.`

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

type options struct {
	logger log.Logger
	lang   []lang.Option
	in     io.Reader
	out    io.Writer
}

// Option configures the REPL.
type Option func(*options)

// WithLogger sets the logger for REPL and evaluation trace records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOptions sets the options passed to every parse and evaluation.
func WithOptions(opts ...lang.Option) Option {
	return func(o *options) { o.lang = opts }
}

// WithStreams sets the terminal input and output.
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(o *options) { o.in, o.out = in, out }
}

// Run starts the REPL and blocks until the user exits or ctx is done.
// Variables set in the session are stored in reg.
func Run(ctx context.Context, reg *lang.Registry, opts ...Option) error {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	o.logger.TraceContext(ctx, "repl start",
		slog.Int("functions", len(reg.FunctionNames())),
		slog.Int("variables", len(reg.VariableNames())),
	)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}

	if o.in != nil {
		progOpts = append(progOpts, tea.WithInput(o.in))
	}

	if o.out != nil {
		progOpts = append(progOpts, tea.WithOutput(o.out))
	}

	_, err := tea.NewProgram(newModel(ctx, reg, o), progOpts...).Run()

	return err
}

const defaultWidth = 80

// model is the Bubble Tea model of the REPL.
type model struct {
	ctx       context.Context
	reg       *lang.Registry
	opts      options
	input     textinput.Model
	history   *History
	histIdx   int
	matches   fuzzy.Matches
	kind      completion
	wordStart int
	wordEnd   int
	suggIdx   int
	tabActive bool
	width     int
	quitting  bool
}

func newModel(ctx context.Context, reg *lang.Registry, o options) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctx:     ctx,
		reg:     reg,
		opts:    o,
		input:   ti,
		history: NewHistory(0),
		suggIdx: -1,
		width:   defaultWidth,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var hint string

	switch {
	case m.histIdx < m.history.Len():
		hint = hintStyle.Render(fmt.Sprintf("history %d/%d", m.histIdx+1, m.history.Len()))

	case strings.TrimSpace(m.input.Value()) == "":
		hint = hintStyle.Render("Type a template, or :help")

	case len(m.matches) > 0:
		hint = renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
	}

	return m.input.View() + "\n" + hint + "\n"
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.histIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive {
			m.accept()

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		m.cycle(1)

		return m, nil

	case tea.KeyShiftTab:
		m.cycle(-1)

		return m, nil

	case tea.KeyUp:
		m.recall(-1)

		return m, nil

	case tea.KeyDown:
		m.recall(1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.tabActive = false
	m.refresh()

	return m, cmd
}

// refresh recomputes completion matches for the word under the cursor.
func (m *model) refresh() {
	input := m.input.Value()

	word, start, end := wordBounds(input, m.input.Position())

	m.kind = completionAt(input, start)
	m.wordStart, m.wordEnd = start, end
	m.matches = match(word, candidates(m.reg, m.kind))

	if !m.tabActive {
		m.suggIdx = -1
	}
}

// cycle moves the tab selection by step and previews the candidate in the
// input. A single candidate is accepted immediately.
func (m *model) cycle(step int) {
	if len(m.matches) == 0 {
		return
	}

	if len(m.matches) == 1 {
		m.suggIdx = 0
		m.accept()

		return
	}

	if !m.tabActive {
		m.tabActive = true

		if step < 0 {
			m.suggIdx = 0
		} else {
			m.suggIdx = -1
		}
	}

	m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	m.replaceWord(m.matches[m.suggIdx].Str, "")
}

// accept completes the selected candidate with its closing suffix.
func (m *model) accept() {
	if m.suggIdx < 0 || m.suggIdx >= len(m.matches) {
		m.tabActive = false

		return
	}

	name := m.matches[m.suggIdx].Str
	m.replaceWord(name, suffix(m.kind, m.input.Value()[m.wordEnd:]))

	m.tabActive = false
	m.matches = nil
	m.suggIdx = -1
}

func (m *model) replaceWord(name, tail string) {
	input := m.input.Value()
	text := input[:m.wordStart] + name + tail + input[m.wordEnd:]

	m.input.SetValue(text)
	m.input.SetCursor(m.wordStart + len(name) + len(tail))
	m.wordEnd = m.wordStart + len(name)
}

// recall replaces the input with a history entry, stepping by dir.
func (m *model) recall(dir int) {
	idx := m.histIdx + dir
	if idx < 0 || idx > m.history.Len() {
		return
	}

	m.histIdx = idx

	line, err := m.history.At(idx)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.CursorEnd()
	m.tabActive = false
	m.matches = nil
}

func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.history.Add(line)
	m.histIdx = m.history.Len()
	m.input.SetValue("")
	m.matches = nil

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(line))

	if line == ":q" || line == ":quit" {
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)
	}

	out, err := m.execute(line)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(out))
}

// execute runs one line and returns its styled output.
func (m model) execute(line string) (string, error) {
	m.opts.logger.TraceContext(m.ctx, "repl line", slog.String("input", line))

	if name, ok := strings.CutPrefix(line, ":"); ok {
		return m.command(name)
	}

	res, err := m.evaluate(line)
	if err != nil {
		return "", err
	}

	out := resultStyle.Render(res.String())

	if res.Halts() {
		out += " " + hintStyle.Render("("+res.Signal.String()+")")
	}

	return out, nil
}

func (m model) evaluate(text string) (lang.Result, error) {
	root, err := lang.Parse(m.ctx, text, m.opts.lang...)
	if err != nil {
		return lang.Result{}, err
	}

	return m.reg.Evaluate(m.ctx, root, m.opts.lang...)
}

func (m model) command(line string) (string, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var b strings.Builder

	switch name {
	case "h", "help":
		return hintStyle.Render(helpMessage), nil

	case "funcs":
		for _, fn := range m.reg.FunctionNames() {
			f, _ := m.reg.Function(fn)
			fmt.Fprintf(&b, "%s %s\n", suggestionStyle.Render(fn), hintStyle.Render(f.ArgRange().String()))
		}

	case "vars":
		snap := m.reg.CreateContext(m.ctx)

		for _, v := range snap.VariableNames() {
			val, _ := snap.Lookup(v)
			fmt.Fprintf(&b, "%s = %s\n", suggestionStyle.Render(v), resultStyle.Render(val.String()))
		}

	case "set":
		key, text, _ := strings.Cut(arg, " ")
		if key == "" {
			return "", ErrCommandArgument
		}

		res, err := m.evaluate(strings.TrimSpace(text))
		if err != nil {
			return "", err
		}

		m.reg.SetVariable(key, res.Value)

		return hintStyle.Render(key + " = " + res.String()), nil

	case "tree":
		root, err := lang.Parse(m.ctx, arg, m.opts.lang...)
		if err != nil {
			return "", err
		}

		if err := root.FormatTree(m.ctx, &b, 2, lang.TreeStyle{
			Kind:     styled(suggestionStyle),
			Position: styled(hintStyle),
		}); err != nil {
			return "", err
		}

	case "tokens":
		for _, tok := range lang.Tokenize(arg) {
			fmt.Fprintf(&b, "%s %s %q\n", hintStyle.Render(tok.Pos.String()), suggestionStyle.Render(tok.Kind.String()), tok.Raw)
		}

	default:
		return "", ErrUnknownCommand
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

// styled adapts a lipgloss style to a [lang.TreeStyle] field.
func styled(s lipgloss.Style) func(a ...any) string {
	return func(a ...any) string { return s.Render(fmt.Sprint(a...)) }
}
