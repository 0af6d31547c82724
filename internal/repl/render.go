package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
)

type Format string

const (
	// FormatDebug renders Some(n) or None.
	FormatDebug Format = "debug"
	FormatPlain Format = "plain"
	// FormatJSON renders one object per line.
	FormatJSON Format = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatDebug, FormatPlain, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Result is one parsed line.
type Result struct {
	Input string `json:"input"`
	Value *uint8 `json:"value"`
	OK    bool   `json:"ok"`
}

func NewResult(input string, v uint8, ok bool) Result {
	r := Result{Input: input, OK: ok}
	if ok {
		r.Value = &v
	}
	return r
}

// Renderer writes results in one format.
type Renderer struct {
	format Format
	some   *color.Color
	none   *color.Color
}

func NewRenderer(format Format, colored bool) (*Renderer, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	r := &Renderer{
		format: format,
		some:   color.New(color.FgGreen),
		none:   color.New(color.FgRed),
	}
	if colored {
		r.some.EnableColor()
		r.none.EnableColor()
	} else {
		r.some.DisableColor()
		r.none.DisableColor()
	}
	return r, nil
}

func (r *Renderer) Format() Format {
	return r.format
}

// Render writes res followed by a newline.
func (r *Renderer) Render(w io.Writer, res Result) error {
	var line string
	switch r.format {
	case FormatJSON:
		b, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		line = string(b)
	case FormatPlain:
		if res.OK {
			line = strconv.Itoa(int(*res.Value))
		} else {
			line = "invalid"
		}
	default:
		if res.OK {
			line = r.some.Sprintf("Some(%d)", *res.Value)
		} else {
			line = r.none.Sprint("None")
		}
	}
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
