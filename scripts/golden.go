// Command golden refreshes the expected outcomes in the markdown test corpus.
//
//	go run ./scripts [-check] [file.md ...]
//
// Every outcome fence is rewritten with the current verification result.
// Empty ast fences are filled with the parsed tree; non-empty ast fences are
// patterns and are left alone. With -check nothing is written and the
// command fails if any file is out of date.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/urfave/cli.v1"

	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/internal/log"
	"github.com/strager/sjavac/parser"
	"github.com/strager/sjavac/sexy"
	"github.com/strager/sjavac/types"
	"github.com/strager/sjavac/verifier"
)

const defaultPattern = "test/*_test.md"

var checkFlag = cli.BoolFlag{
	Name:  "check",
	Usage: "Report stale fences without rewriting any file",
}

// edit replaces source[start:end].
type edit struct {
	start, end int
	text       string
	test       string
	line       int
}

type Updater struct {
	verifier *verifier.Verifier
	parser   *parser.Parser
	log      log.Logger
}

func NewUpdater() *Updater {
	return &Updater{
		verifier: verifier.New(types.Builtin()),
		parser:   parser.New(types.Builtin()),
		log:      log.New("tool", "golden"),
	}
}

// edits computes the fence rewrites for one markdown document.
func (u *Updater) edits(content string) ([]edit, error) {
	testCases, err := sexy.ExtractTestCases(content)
	if err != nil {
		return nil, err
	}

	var edits []edit
	for _, tc := range testCases {
		for _, a := range tc.Assertions {
			var want string
			switch a.Type {
			case sexy.AssertionTypeOutcome:
				_, err := u.verifier.Verify(tc.Input)
				want = verifier.Outcome(err).String()
			case sexy.AssertionTypeAST:
				if a.ParsedSexy != nil {
					continue
				}
				program, err := u.parser.Parse(tc.Input)
				if err != nil {
					u.log.Warn("Cannot fill ast fence of unparsable input", "test", tc.Name, "err", err)
					continue
				}
				want = ast.ToSExpr(program)
			}
			if a.Content == want {
				continue
			}
			edits = append(edits, edit{start: a.Start, end: a.End, text: want + "\n", test: tc.Name, line: a.Line})
		}
	}
	return edits, nil
}

func apply(content string, edits []edit) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	for _, e := range edits {
		content = content[:e.start] + e.text + content[e.end:]
	}
	return content
}

// updateFile returns the number of stale fences in file.
func (u *Updater) updateFile(file string, check bool) (int, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return 0, err
	}
	edits, err := u.edits(string(src))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", file, err)
	}
	for _, e := range edits {
		fmt.Printf("%s:%d: %s: %s", file, e.line, e.test, e.text)
	}
	if check || len(edits) == 0 {
		return len(edits), nil
	}
	return len(edits), os.WriteFile(file, []byte(apply(string(src), edits)), 0644)
}

func run(ctx *cli.Context) error {
	files := []string(ctx.Args())
	if len(files) == 0 {
		matches, err := filepath.Glob(defaultPattern)
		if err != nil {
			return err
		}
		files = matches
	}

	check := ctx.Bool(checkFlag.Name)
	u := NewUpdater()
	stale := 0
	for _, file := range files {
		n, err := u.updateFile(file, check)
		if err != nil {
			return err
		}
		stale += n
	}
	u.log.Info("Done", "files", len(files), "stale", stale)

	if check && stale > 0 {
		return cli.NewExitError(fmt.Sprintf("%d stale fence(s); run without -check to update", stale), 1)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "golden"
	app.Usage = "refresh expected outcomes in the markdown test corpus"
	app.HideVersion = true
	app.Flags = []cli.Flag{checkFlag}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
