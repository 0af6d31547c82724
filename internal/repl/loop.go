package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/u8ctl/internal/decbyte"
	"github.com/danmuck/u8ctl/internal/observability"
	"github.com/rs/zerolog"
)

// Options configures one Loop.
type Options struct {
	Format Format
	Color  bool
	// BlankLine writes an empty line after every result.
	BlankLine bool
	// Prompt is written before each read when non-empty.
	Prompt  string
	Metrics bool
}

func DefaultOptions() Options {
	return Options{
		Format:    FormatDebug,
		BlankLine: true,
	}
}

// Stats counts the lines one Run has handled.
type Stats struct {
	Lines    int
	Accepted int
	Rejected int
}

type Loop struct {
	opts     Options
	renderer *Renderer
	logger   zerolog.Logger
	stats    Stats
}

func NewLoop(opts Options, logger zerolog.Logger) (*Loop, error) {
	renderer, err := NewRenderer(opts.Format, opts.Color)
	if err != nil {
		return nil, err
	}
	return &Loop{opts: opts, renderer: renderer, logger: logger}, nil
}

func (l *Loop) Stats() Stats {
	return l.stats
}

// Run handles lines from in until EOF, ctx cancellation, or a read or write
// failure. EOF returns nil.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.opts.Prompt != "" {
			if _, err := io.WriteString(out, l.opts.Prompt); err != nil {
				return fmt.Errorf("%w: %v", ErrWriteOutput, err)
			}
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			if l.opts.Metrics {
				observability.RecordReadError()
			}
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		if err != nil && line == "" {
			l.logger.Debug().Int("lines", l.stats.Lines).Msg("input exhausted")
			return nil
		}

		if herr := l.handle(out, line); herr != nil {
			return herr
		}
		if err != nil {
			l.logger.Debug().Int("lines", l.stats.Lines).Msg("input exhausted")
			return nil
		}
	}
}

func (l *Loop) handle(out io.Writer, line string) error {
	token := strings.TrimSpace(line)
	v, ok := decbyte.Parse(token)

	l.stats.Lines++
	if ok {
		l.stats.Accepted++
	} else {
		l.stats.Rejected++
	}
	if l.opts.Metrics {
		observability.RecordToken(len(token), ok)
	}
	l.logger.Debug().
		Int("line", l.stats.Lines).
		Int("len", len(token)).
		Bool("ok", ok).
		Msg("token")

	if err := l.renderer.Render(out, NewResult(token, v, ok)); err != nil {
		return err
	}
	if l.opts.BlankLine {
		if _, err := io.WriteString(out, "\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	return nil
}
