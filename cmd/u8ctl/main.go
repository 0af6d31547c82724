package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/u8ctl/internal/logging"
	"github.com/danmuck/u8ctl/internal/observability"
	"github.com/danmuck/u8ctl/internal/repl"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := loadOptions(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintf(stderr, "u8ctl: %v\n", err)
		return 1
	}

	loop, err := repl.NewLoop(opts, log.Logger)
	if err != nil {
		fmt.Fprintf(stderr, "u8ctl: %v\n", err)
		return 1
	}

	err = loop.Run(context.Background(), stdin, stdout)
	stats := loop.Stats()
	log.Info().
		Int("lines", stats.Lines).
		Int("accepted", stats.Accepted).
		Int("rejected", stats.Rejected).
		Msg("session done")

	if opts.Metrics {
		if merr := observability.WriteText(stderr); merr != nil {
			log.Error().Err(merr).Msg("dump metrics")
		}
	}

	if errors.Is(err, repl.ErrReadInput) {
		log.Error().Err(err).Msg("failed to read line")
		fmt.Fprintf(stderr, "u8ctl: %v\n", err)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "u8ctl: %v\n", err)
		return 1
	}
	return 0
}
