package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour is a parsed CSS colour in sRGB.
type Colour struct {
	colorful.Color

	// Alpha is the 0-255 alpha byte; only meaningful when HasAlpha is set.
	Alpha    uint8
	HasAlpha bool
}

// ColourError reports a colour value that could not be parsed.
type ColourError struct {
	Value  string
	Reason string
}

func (e *ColourError) Error() string {
	return fmt.Sprintf("unrecognised colour %q: %s", e.Value, e.Reason)
}

// String returns the colour as lowercase #rrggbb, or #rrggbbaa when the
// source carried an alpha channel.
func (c Colour) String() string {
	if c.HasAlpha {
		return fmt.Sprintf("%s%02x", c.Hex(), c.Alpha)
	}
	return c.Hex()
}

// Opacity returns the alpha channel in [0, 1].
func (c Colour) Opacity() float64 {
	if !c.HasAlpha {
		return 1
	}
	return float64(c.Alpha) / 255
}

// ParseColour parses a hex (#rgb, #rgba, #rrggbb, #rrggbbaa) or functional
// (rgb(), rgba()) colour value.
func ParseColour(value string) (Colour, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))

	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(value, v[1:])
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return parseFunctional(value, v)
	default:
		return Colour{}, &ColourError{Value: value, Reason: "not a hex or rgb() colour"}
	}
}

func parseHex(raw, digits string) (Colour, error) {
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return Colour{}, &ColourError{Value: raw, Reason: "invalid hex digit"}
		}
	}

	// Short forms double each digit
	if len(digits) == 3 || len(digits) == 4 {
		var sb strings.Builder
		for _, r := range digits {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		digits = sb.String()
	}

	if len(digits) != 6 && len(digits) != 8 {
		return Colour{}, &ColourError{Value: raw, Reason: fmt.Sprintf("%d hex digits", len(digits))}
	}

	base, err := colorful.Hex("#" + digits[:6])
	if err != nil {
		return Colour{}, &ColourError{Value: raw, Reason: err.Error()}
	}

	c := Colour{Color: base}
	if len(digits) == 8 {
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return Colour{}, &ColourError{Value: raw, Reason: err.Error()}
		}
		c.Alpha = uint8(a)
		c.HasAlpha = true
	}
	return c, nil
}

func parseFunctional(raw, v string) (Colour, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") {
		return Colour{}, &ColourError{Value: raw, Reason: "missing closing parenthesis"}
	}
	args := v[open+1 : len(v)-1]

	// rgb(1, 2, 3, 0.5), rgb(1 2 3 / 50%)
	args = strings.ReplaceAll(args, "/", " ")
	args = strings.ReplaceAll(args, ",", " ")
	fields := strings.Fields(args)
	if len(fields) != 3 && len(fields) != 4 {
		return Colour{}, &ColourError{Value: raw, Reason: fmt.Sprintf("%d components", len(fields))}
	}

	var channels [3]float64
	for i := 0; i < 3; i++ {
		ch, err := parseChannel(fields[i])
		if err != nil {
			return Colour{}, &ColourError{Value: raw, Reason: err.Error()}
		}
		channels[i] = ch
	}

	c := Colour{Color: colorful.Color{R: channels[0], G: channels[1], B: channels[2]}}
	// Snap to bytes so the value survives a round trip through #rrggbb.
	c.Color, _ = colorful.Hex(c.Hex())

	if len(fields) == 4 {
		a, err := parseAlpha(fields[3])
		if err != nil {
			return Colour{}, &ColourError{Value: raw, Reason: err.Error()}
		}
		if a < 255 {
			c.Alpha = a
			c.HasAlpha = true
		}
	}
	return c, nil
}

// parseChannel parses 0-255 or 0%-100% into [0, 1].
func parseChannel(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil || !isFinite(f) || f < 0 || f > 100 {
			return 0, fmt.Errorf("channel %q out of range", s)
		}
		return f / 100, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) || f < 0 || f > 255 {
		return 0, fmt.Errorf("channel %q out of range", s)
	}
	return f / 255, nil
}

// parseAlpha parses 0-1 or 0%-100% into an alpha byte.
func parseAlpha(s string) (uint8, error) {
	var f float64
	var err error
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err = strconv.ParseFloat(pct, 64)
		f /= 100
	} else {
		f, err = strconv.ParseFloat(s, 64)
	}
	if err != nil || !isFinite(f) || f < 0 || f > 1 {
		return 0, fmt.Errorf("alpha %q out of range", s)
	}
	return uint8(math.Round(f * 255)), nil
}

// isFinite rejects the NaN and Inf spellings strconv accepts.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
