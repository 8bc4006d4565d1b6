package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/strager/sjavac/ast"
	"github.com/strager/sjavac/config"
	"github.com/strager/sjavac/internal/log"
	"github.com/strager/sjavac/types"
	"github.com/strager/sjavac/verifier"
)

// Exit statuses.
const (
	statusValid   = 0
	statusInvalid = 1
	statusIOError = 2
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: `Colorize diagnostics: "auto", "always" or "never"`,
	}
	astFlag = cli.BoolFlag{
		Name:  "ast",
		Usage: "Print the syntax tree of a valid program",
	}
	symbolsFlag = cli.BoolFlag{
		Name:  "symbols",
		Usage: "Print the global variables and functions of a valid program",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: config.Defaults.Log.Verbosity,
	}
	dumpConfigFlag = cli.BoolFlag{
		Name:  "dumpconfig",
		Usage: "Print the effective configuration as TOML and exit",
	}
)

// session is one invocation of the command.
type session struct {
	stdout io.Writer
	stderr io.Writer
	// tty decides the "auto" color mode. It is the file behind stderr,
	// which may itself be wrapped for color translation.
	tty    io.Writer
	status int
	// quiet suppresses the trailing status line.
	quiet bool
}

func newApp(s *session) *cli.App {
	app := cli.NewApp()
	app.Name = "sjavac"
	app.Usage = "check a source file for syntax and semantic errors"
	app.ArgsUsage = "<file>"
	app.HideVersion = true
	app.Writer = s.stdout
	app.ErrWriter = s.stderr
	app.Flags = []cli.Flag{
		configFileFlag,
		colorFlag,
		astFlag,
		symbolsFlag,
		verbosityFlag,
		dumpConfigFlag,
	}
	app.Action = s.check
	return app
}

// run executes the command line args and returns the exit status. The
// status is also printed on its own line on stdout.
func run(args []string, stdout, stderr io.Writer) int {
	s := &session{stdout: stdout, stderr: stderr, tty: stderr}
	return s.run(args)
}

func (s *session) run(args []string) int {
	log.SetOutput(s.stderr)

	if err := newApp(s).Run(args); err != nil {
		fmt.Fprintln(s.stderr, err)
		s.status = statusIOError
	}
	if !s.quiet {
		fmt.Fprintln(s.stdout, s.status)
	}
	return s.status
}

// loadConfig applies defaults, then the config file, then flags.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Defaults
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := config.Load(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(colorFlag.Name) {
		cfg.Output.Color = ctx.String(colorFlag.Name)
	}
	if ctx.IsSet(astFlag.Name) {
		cfg.Output.AST = ctx.Bool(astFlag.Name)
	}
	if ctx.IsSet(symbolsFlag.Name) {
		cfg.Output.Symbols = ctx.Bool(symbolsFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	return cfg, cfg.Validate()
}

func (s *session) check(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	rep := newReporter(s.stdout, s.stderr, useColor(cfg.Output.Color, s.tty))
	if err != nil {
		s.status = rep.ioError(err)
		return nil
	}
	log.Verbosity(log.Lvl(cfg.Log.Verbosity))

	if ctx.Bool(dumpConfigFlag.Name) {
		s.quiet = true
		return config.Dump(s.stdout, &cfg)
	}

	if ctx.NArg() != 1 {
		s.status = rep.usageError()
		return nil
	}
	file := ctx.Args().First()
	src, err := os.ReadFile(file)
	if err != nil {
		s.status = rep.ioError(err)
		return nil
	}

	res, err := verifier.New(types.Builtin()).Verify(string(src))
	if err != nil {
		log.Debug("Verification failed", "file", file, "err", err)
		s.status = rep.diagnostic(err)
		return nil
	}

	if cfg.Output.AST {
		fmt.Fprintln(s.stdout, ast.ToSExpr(res.Program))
	}
	if cfg.Output.Symbols {
		rep.symbols(res.Globals)
	}
	s.status = statusValid
	return nil
}

// useColor resolves the color mode for output written to w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	s := &session{
		stdout: os.Stdout,
		stderr: colorable.NewColorableStderr(),
		tty:    os.Stderr,
	}
	os.Exit(s.run(os.Args))
}
