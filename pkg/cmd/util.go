package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-dfsched/pkg/dfg"
	"golang.org/x/term"
)

// Parse a data-flow graph description file, reporting syntax errors with the
// offending line before exiting.
func readGraphFile(filename string) (*dfg.Dfg, dfg.Catalogue) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	graph, catalogue, err := dfg.Parse(string(bytes))
	if err != nil {
		if e, ok := err.(*dfg.SyntaxError); ok {
			printSyntaxError(filename, e, string(bytes))
		} else {
			fmt.Println(err)
		}
		//
		os.Exit(2)
	}
	//
	return graph, catalogue
}

// Print a syntax error along with the line it arose on.
func printSyntaxError(filename string, err *dfg.SyntaxError, text string) {
	fmt.Printf("%s:%d: %s\n", filename, err.Line(), err.Message())
	// Print line
	lines := strings.Split(text, "\n")
	if n := err.Line() - 1; n < len(lines) {
		fmt.Println(lines[n])
	}
}

// Render the per-statement schedule as a table on stdout, sized against the
// enclosing terminal (when there is one).
func printScheduleTable(graph *dfg.Dfg) {
	width := 80
	// Probe terminal width
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	// Leave room for index, cycle columns and separators.
	namewidth := max(width-32, 8)
	//
	fmt.Printf("%4s %-*s %-8s %6s %6s\n", "", namewidth, "stmt", "op", "start", "done")
	//
	for _, stmt := range graph.Stmts {
		done := stmt.StartCycle + max(stmt.Op.Latency-1, 0)
		name := stmt.Name
		//
		if len(name) > namewidth {
			name = name[:namewidth-2] + ".."
		}
		//
		fmt.Printf("%4d %-*s %-8s %6d %6d\n", stmt.Idx, namewidth, name, stmt.Op.Name,
			stmt.StartCycle, done)
	}
}
