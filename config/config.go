// Package config holds the settings of the sjavac command, read from an
// optional TOML file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Output struct {
	// Color is one of "auto", "always" or "never".
	Color string
	// AST prints the syntax tree of a valid program.
	AST bool
	// Symbols prints the global symbol tables of a valid program.
	Symbols bool
}

type Log struct {
	// Verbosity ranges from 0 (critical) to 5 (trace).
	Verbosity int
}

type Config struct {
	Output Output
	Log    Log
}

var Defaults = Config{
	Output: Output{Color: ColorAuto},
	Log:    Log{Verbosity: 2},
}

// TOML keys use the same names as the Go struct fields. Unknown keys are
// errors.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Load reads file over the values already in cfg.
func Load(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = Decode(f, cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func Decode(r io.Reader, cfg *Config) error {
	if err := tomlSettings.NewDecoder(bufio.NewReader(r)).Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Dump writes cfg as TOML.
func Dump(w io.Writer, cfg *Config) error {
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q, want %q, %q or %q",
			c.Output.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 5 {
		return fmt.Errorf("verbosity %d out of range 0-5", c.Log.Verbosity)
	}
	return nil
}
