// Package repl implements the interactive read-check loop. Each submission
// runs through the full Lexer -> Parser -> TypeChecker pipeline against a
// persistent checker, so definitions from earlier lines stay visible.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aljojoby9/Axiom/internal/diag"
	"github.com/aljojoby9/Axiom/internal/lexer"
	"github.com/aljojoby9/Axiom/internal/parser"
	"github.com/aljojoby9/Axiom/internal/types"
)

// Config controls the REPL's behavior.
type Config struct {
	Prompt         string
	ContinuePrompt string
	Multiline      bool
	ShowTokens     bool
	In             io.Reader
	Out            io.Writer
	Err            io.Writer
}

// DefaultConfig returns the standard interactive configuration.
func DefaultConfig(in io.Reader, out, errw io.Writer) Config {
	return Config{
		Prompt:         ">>> ",
		ContinuePrompt: "... ",
		Multiline:      true,
		In:             in,
		Out:            out,
		Err:            errw,
	}
}

// Repl is the interactive session state.
type Repl struct {
	cfg     Config
	checker *types.Checker
	scanner *bufio.Scanner
}

// New creates a REPL with a fresh checker.
func New(cfg Config) *Repl {
	return &Repl{
		cfg:     cfg,
		checker: types.NewChecker(),
		scanner: bufio.NewScanner(cfg.In),
	}
}

// Run reads input until EOF or :quit.
func (r *Repl) Run() {
	fmt.Fprintln(r.cfg.Out, "Axiom REPL. Type :help for commands.")

	for {
		fmt.Fprint(r.cfg.Out, r.cfg.Prompt)
		if !r.scanner.Scan() {
			fmt.Fprintln(r.cfg.Out)
			return
		}
		line := r.scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if !r.handleCommand(strings.TrimSpace(line)) {
				return
			}
			continue
		}

		if r.cfg.Multiline && needsMoreInput(line) {
			line = r.readMultiline(line)
		}

		r.Execute(line)
	}
}

// handleCommand runs a :-prefixed REPL command; false means quit.
func (r *Repl) handleCommand(cmd string) bool {
	switch cmd {
	case ":quit", ":q", ":exit":
		return false
	case ":help", ":h":
		fmt.Fprintln(r.cfg.Out, "Commands:")
		fmt.Fprintln(r.cfg.Out, "  :help     show this help")
		fmt.Fprintln(r.cfg.Out, "  :tokens   toggle token dump")
		fmt.Fprintln(r.cfg.Out, "  :reset    discard all definitions")
		fmt.Fprintln(r.cfg.Out, "  :quit     leave the REPL")
	case ":tokens":
		r.cfg.ShowTokens = !r.cfg.ShowTokens
		fmt.Fprintf(r.cfg.Out, "token dump %v\n", r.cfg.ShowTokens)
	case ":reset":
		r.checker = types.NewChecker()
		fmt.Fprintln(r.cfg.Out, "definitions cleared")
	default:
		fmt.Fprintf(r.cfg.Out, "unknown command %s\n", cmd)
	}
	return true
}

// needsMoreInput reports whether the line opens a block or leaves brackets
// unbalanced, so the REPL should keep reading.
func needsMoreInput(code string) bool {
	trimmed := strings.TrimRight(code, " \t\r")
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, ":") {
		return true
	}
	depth := 0
	for _, ch := range code {
		switch ch {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth > 0
}

// readMultiline collects continuation lines until a blank line.
func (r *Repl) readMultiline(first string) string {
	var b strings.Builder
	b.WriteString(first)
	for {
		fmt.Fprint(r.cfg.Out, r.cfg.ContinuePrompt)
		if !r.scanner.Scan() {
			break
		}
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	b.WriteString("\n")
	return b.String()
}

// Execute runs one submission through the pipeline, printing diagnostics.
// It reports whether the submission was clean.
func (r *Repl) Execute(code string) bool {
	lx := lexer.New(code, "<repl>")

	if r.cfg.ShowTokens {
		dump := lexer.New(code, "<repl>")
		for _, tok := range dump.TokenizeAll() {
			fmt.Fprintf(r.cfg.Out, "%-12s %q\n", tok.Type, tok.Lexeme)
		}
	}

	p := parser.New(lx)
	file := p.Parse()

	formatter := diag.NewFormatter(r.cfg.Err)
	if lx.HasErrors() || p.HasErrors() {
		formatter.FormatAll(append(lx.Diagnostics(), p.Diagnostics()...))
		return false
	}

	before := len(r.checker.Errors)
	r.checker.Check(file)
	if fresh := r.checker.Errors[before:]; len(fresh) > 0 {
		formatter.FormatAll(fresh)
		return false
	}

	fmt.Fprintln(r.cfg.Out, "ok")
	return true
}
