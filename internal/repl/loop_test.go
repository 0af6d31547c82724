package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/danmuck/u8ctl/internal/testutil/testlog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func newTestLoop(t *testing.T, opts Options) *Loop {
	t.Helper()
	testlog.Start(t)
	l, err := NewLoop(opts, log.Logger)
	require.NoError(t, err)
	return l
}

func TestRunDebugMatchesLineByLine(t *testing.T) {
	l := newTestLoop(t, DefaultOptions())

	var out bytes.Buffer
	in := strings.NewReader("0\n255\n256\n 042 \r\n\n1000\n9a")
	require.NoError(t, l.Run(context.Background(), in, &out))

	want := "Some(0)\n\nSome(255)\n\nNone\n\nSome(42)\n\nNone\n\nNone\n\nNone\n\n"
	require.Equal(t, want, out.String())
	require.Equal(t, Stats{Lines: 7, Accepted: 3, Rejected: 4}, l.Stats())
}

func TestRunPlainWithoutBlankLines(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatPlain
	opts.BlankLine = false
	l := newTestLoop(t, opts)

	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), strings.NewReader("7\nx\n"), &out))
	require.Equal(t, "7\ninvalid\n", out.String())
}

func TestRunWritesPrompt(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatPlain
	opts.BlankLine = false
	opts.Prompt = "> "
	l := newTestLoop(t, opts)

	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), strings.NewReader("12\n"), &out))
	require.Equal(t, "> 12\n> ", out.String())
}

func TestRunEmptyInput(t *testing.T) {
	l := newTestLoop(t, DefaultOptions())

	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), strings.NewReader(""), &out))
	require.Empty(t, out.String())
	require.Equal(t, Stats{}, l.Stats())
}

func TestRunReadFailureIsFatal(t *testing.T) {
	opts := DefaultOptions()
	opts.Metrics = true
	l := newTestLoop(t, opts)

	boom := errors.New("boom")
	err := l.Run(context.Background(), iotest.ErrReader(boom), &bytes.Buffer{})
	require.True(t, errors.Is(err, ErrReadInput))
	require.True(t, errors.Is(err, boom))
}

func TestRunWriteFailure(t *testing.T) {
	l := newTestLoop(t, DefaultOptions())

	err := l.Run(context.Background(), strings.NewReader("1\n"), failingWriter{})
	require.True(t, errors.Is(err, ErrWriteOutput))
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	l := newTestLoop(t, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := l.Run(ctx, strings.NewReader("1\n2\n"), &out)
	require.True(t, errors.Is(err, context.Canceled))
	require.Empty(t, out.String())
}

func TestRunJSONKeepsRawBytes(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.BlankLine = false
	l, err := NewLoop(opts, zerolog.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), strings.NewReader("\xca\n128\n"), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"ok":false`)
	require.Equal(t, `{"input":"128","value":128,"ok":true}`, lines[1])
}

func TestNewLoopRejectsUnknownFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = "toml"
	_, err := NewLoop(opts, zerolog.Nop())
	require.True(t, errors.Is(err, ErrUnknownFormat))
}
