package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/u8ctl/internal/repl"
	"github.com/jessevdk/go-flags"
)

type cliOptions struct {
	ConfigFile  string `short:"c" long:"config" env:"U8CTL_CONFIG" description:"TOML config file"`
	Format      string `short:"f" long:"format" description:"Result format" choice:"debug" choice:"plain" choice:"json"`
	Color       bool   `long:"color" description:"Colour debug output"`
	NoBlankLine bool   `long:"no-blank-line" description:"Do not write an empty line after each result"`
	Prompt      string `long:"prompt" description:"Text written before each read"`
	Metrics     bool   `long:"metrics" description:"Dump parser metrics to stderr on exit"`
}

type fileConfig struct {
	Format    string `toml:"format"`
	Color     bool   `toml:"color"`
	BlankLine bool   `toml:"blank_line"`
	Prompt    string `toml:"prompt"`
	Metrics   bool   `toml:"metrics"`
}

func newParser(cli *cliOptions) *flags.Parser {
	parser := flags.NewParser(cli, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "u8ctl"
	parser.Usage = "[OPTIONS] < tokens"
	return parser
}

// loadOptions resolves defaults, then the config file, then flags.
func loadOptions(args []string) (repl.Options, error) {
	var cli cliOptions
	parser := newParser(&cli)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return repl.Options{}, err
	}
	if len(rest) > 0 {
		return repl.Options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	opts := repl.DefaultOptions()
	if path := strings.TrimSpace(cli.ConfigFile); path != "" {
		opts, err = loadFileConfig(path, opts)
		if err != nil {
			return repl.Options{}, err
		}
	}

	if isSet(parser, "format") {
		f, err := repl.ParseFormat(cli.Format)
		if err != nil {
			return repl.Options{}, fmt.Errorf("parse format flag: %w", err)
		}
		opts.Format = f
	}
	if isSet(parser, "color") {
		opts.Color = cli.Color
	}
	if isSet(parser, "no-blank-line") {
		opts.BlankLine = !cli.NoBlankLine
	}
	if isSet(parser, "prompt") {
		opts.Prompt = cli.Prompt
	}
	if isSet(parser, "metrics") {
		opts.Metrics = cli.Metrics
	}
	return opts, nil
}

func isSet(parser *flags.Parser, long string) bool {
	opt := parser.FindOptionByLongName(long)
	return opt != nil && opt.IsSet()
}

func loadFileConfig(path string, cfg repl.Options) (repl.Options, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return repl.Options{}, fmt.Errorf("load u8ctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return repl.Options{}, fmt.Errorf("load u8ctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		f, err := repl.ParseFormat(raw.Format)
		if err != nil {
			return repl.Options{}, fmt.Errorf("parse format: %w", err)
		}
		cfg.Format = f
	}

	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}

	if meta.IsDefined("blank_line") {
		cfg.BlankLine = raw.BlankLine
	}

	if meta.IsDefined("prompt") {
		cfg.Prompt = raw.Prompt
	}

	if meta.IsDefined("metrics") {
		cfg.Metrics = raw.Metrics
	}

	return cfg, nil
}
