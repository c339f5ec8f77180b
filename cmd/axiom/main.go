package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eaburns/pretty"
	"github.com/pkg/errors"

	"github.com/aljojoby9/Axiom/internal/ast"
	"github.com/aljojoby9/Axiom/internal/diag"
	"github.com/aljojoby9/Axiom/internal/lexer"
	"github.com/aljojoby9/Axiom/internal/parser"
	"github.com/aljojoby9/Axiom/internal/repl"
	"github.com/aljojoby9/Axiom/internal/types"
)

var verbose = flag.Bool("v", false, "dump the parse tree in parse mode")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: axiom [options] <command> [file]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  lex <file>      Tokenize a source file and dump the tokens\n")
		fmt.Fprintf(os.Stderr, "  parse <file>    Parse a source file and report its declarations\n")
		fmt.Fprintf(os.Stderr, "  check <file>    Parse and type-check a source file\n")
		fmt.Fprintf(os.Stderr, "  repl            Start the interactive shell (default)\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		runRepl()
		return
	}

	command := flag.Arg(0)
	switch command {
	case "repl":
		runRepl()
	case "lex":
		os.Exit(runLex(requireFile(command)))
	case "parse":
		os.Exit(runParse(requireFile(command)))
	case "check":
		os.Exit(runCheck(requireFile(command)))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func requireFile(command string) string {
	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Usage: axiom %s <file>\n", command)
		os.Exit(1)
	}
	return flag.Arg(1)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading source")
	}
	return string(data), nil
}

func runRepl() {
	repl.New(repl.DefaultConfig(os.Stdin, os.Stdout, os.Stderr)).Run()
}

func runLex(path string) int {
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	lx := lexer.New(source, path)
	for _, tok := range lx.TokenizeAll() {
		fmt.Printf("%s:%d:%d  %-12s %q\n",
			path, tok.Span.Line, tok.Span.Column, tok.Type, tok.Lexeme)
	}

	if lx.HasErrors() {
		diag.NewFormatter(os.Stderr).FormatAll(lx.Diagnostics())
		return 1
	}
	return 0
}

func runParse(path string) int {
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	lx := lexer.New(source, path)
	p := parser.New(lx)
	file := p.Parse()

	counts := map[string]int{}
	for _, decl := range file.Decls {
		counts[declKind(decl)]++
	}
	for _, kind := range []string{"fn", "struct", "class", "trait", "impl", "enum", "type", "import"} {
		if counts[kind] > 0 {
			fmt.Printf("%-8s %d\n", kind, counts[kind])
		}
	}

	if *verbose {
		pretty.Indent = "    "
		pretty.Print(file)
		fmt.Println()
	}

	if lx.HasErrors() || p.HasErrors() {
		diag.NewFormatter(os.Stderr).FormatAll(append(lx.Diagnostics(), p.Diagnostics()...))
		return 1
	}
	return 0
}

func runCheck(path string) int {
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	lx := lexer.New(source, path)
	p := parser.New(lx)
	file := p.Parse()

	checker := types.NewChecker()
	checker.Check(file)

	all := append(lx.Diagnostics(), p.Diagnostics()...)
	all = append(all, checker.Diagnostics()...)
	if len(all) > 0 {
		diag.NewFormatter(os.Stderr).FormatAll(all)
		return 1
	}
	return 0
}

func declKind(decl ast.Decl) string {
	switch decl.(type) {
	case *ast.FnDecl:
		return "fn"
	case *ast.StructDecl:
		return "struct"
	case *ast.ClassDecl:
		return "class"
	case *ast.TraitDecl:
		return "trait"
	case *ast.ImplDecl:
		return "impl"
	case *ast.EnumDecl:
		return "enum"
	case *ast.TypeAliasDecl:
		return "type"
	case *ast.ImportDecl:
		return "import"
	default:
		return "decl"
	}
}
