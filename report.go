package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/strager/sjavac/parser"
	"github.com/strager/sjavac/semantic"
	"github.com/strager/sjavac/symbols"
)

// reporter renders diagnostics on stderr and listings on stdout.
type reporter struct {
	stdout io.Writer
	stderr io.Writer

	headline *color.Color
	label    *color.Color
	code     *color.Color
}

func newReporter(stdout, stderr io.Writer, colored bool) *reporter {
	r := &reporter{
		stdout:   stdout,
		stderr:   stderr,
		headline: color.New(color.FgRed, color.Bold),
		label:    color.New(color.Bold),
		code:     color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.headline, r.label, r.code} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// sentence ends s with a period unless it already ends a sentence.
func sentence(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	return s + "."
}

// diagnostic prints a verification failure and returns the exit status.
func (r *reporter) diagnostic(err error) int {
	var syntaxErr *parser.SyntaxError
	var semanticErr semantic.Error
	switch {
	case errors.As(err, &syntaxErr):
		r.headline.Fprintf(r.stderr, "A syntax error has been found on line: %d.\n", syntaxErr.Line)
		r.label.Fprint(r.stderr, "Error Reason: ")
		fmt.Fprintln(r.stderr, sentence(syntaxErr.Reason))
		r.label.Fprint(r.stderr, "Line Contents: ")
		r.code.Fprintln(r.stderr, syntaxErr.Text)
	case errors.As(err, &semanticErr):
		r.headline.Fprintln(r.stderr, "A semantic error has been found while processing this request.")
		r.label.Fprint(r.stderr, "Failure Reason: ")
		fmt.Fprintln(r.stderr, sentence(semanticErr.Error()))
	default:
		return r.ioError(err)
	}
	return statusInvalid
}

func (r *reporter) ioError(err error) int {
	r.headline.Fprintln(r.stderr, "An I/O error occurred during the process.")
	r.label.Fprint(r.stderr, "Message: ")
	fmt.Fprintln(r.stderr, err)
	return statusIOError
}

func (r *reporter) usageError() int {
	r.headline.Fprintln(r.stderr, "The number of argument supplied is invalid.")
	return statusIOError
}

// symbols prints the global variables and functions as two tables.
func (r *reporter) symbols(g *semantic.Globals) {
	vars := tablewriter.NewWriter(r.stdout)
	vars.SetHeader([]string{"Variable", "Type", "Final", "Initialized", "Line"})
	for _, v := range g.Variables {
		vars.Append([]string{
			v.Name,
			v.Type.Name(),
			strconv.FormatBool(v.Final),
			strconv.FormatBool(v.HasValue),
			strconv.Itoa(v.Line),
		})
	}
	vars.Render()

	funcs := tablewriter.NewWriter(r.stdout)
	funcs.SetHeader([]string{"Function", "Arguments", "Line"})
	for _, fn := range g.Functions {
		funcs.Append([]string{fn.Name, formatArguments(fn.Arguments), strconv.Itoa(fn.Line)})
	}
	funcs.Render()
}

func formatArguments(args []symbols.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type.Name() + " " + a.Name
		if a.Final {
			parts[i] = "final " + parts[i]
		}
	}
	return strings.Join(parts, ", ")
}
