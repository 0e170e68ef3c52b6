// Command packrat-demo runs one of the library's worked example grammars
// against an input string and prints the result.
//
// It is an external collaborator of the packrat core (spec.md §1: "the
// example grammars, command-line driver... the host program's string I/O"
// are out of scope), kept minimal and flag-based in the same style as the
// teacher's own command-line tool (32bitkid-pigeon/main.go): no config
// file, no environment variables, just flags.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/enklht/packrat"
	"github.com/enklht/packrat/examples/arithmetic"
	"github.com/enklht/packrat/examples/leftrecursion"
)

func main() {
	var (
		grammarFlag = flag.String("grammar", "arithmetic", "grammar to run: arithmetic or leftrecursion")
		debugFlag   = flag.Bool("debug", false, "log trace/debug/info events to stderr")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		argError(1, "expected exactly one INPUT argument")
	}
	input := flag.Arg(0)

	var opts []packrat.Option
	if *debugFlag {
		opts = append(opts, packrat.WithLogger(packrat.NewZerologLogger(os.Stderr)))
	}

	switch *grammarFlag {
	case "arithmetic":
		runArithmetic(input, opts)
	case "leftrecursion":
		runLeftRecursion(input, opts)
	default:
		argError(2, "unknown grammar %q", *grammarFlag)
	}
}

func runArithmetic(input string, opts []packrat.Option) {
	expr := arithmetic.Grammar().End()
	ast, err := expr.Run(input, opts...)
	if err != nil {
		printParseError(err)
		os.Exit(3)
	}
	fmt.Printf("%s = %d\n", ast.String(), ast.Eval())
}

func runLeftRecursion(input string, opts []packrat.Option) {
	s := leftrecursion.Grammar()
	val, err := s.Run(input, opts...)
	if err != nil {
		printParseError(err)
		os.Exit(3)
	}
	fmt.Println(val)
}

func printParseError(err error) {
	if pe, ok := err.(*packrat.ParseError); ok {
		fmt.Fprintln(os.Stderr, pe.Render())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

var usagePage = `usage: %s [options] INPUT

packrat-demo runs one of the library's worked example grammars against
INPUT and prints the result.

	-grammar NAME
		which grammar to run: arithmetic (default) or leftrecursion.
	-debug
		log trace/debug/info events to stderr while parsing.
`

func usage() {
	fmt.Printf(usagePage, os.Args[0])
}

func argError(exit int, msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg, args...)
	fmt.Fprintln(os.Stderr)
	flag.Usage()
	os.Exit(exit)
}
