package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NumberKind selects how a number is rendered.
type NumberKind int

const (
	Decimal NumberKind = iota
	Integer
	Percent
	Currency
)

// NumberStyle describes a number format.
//
// MaxFractionDigits of zero keeps the locale default; Integer rounds to whole
// numbers. Scale multiplies the value before formatting (zero means 1).
type NumberStyle struct {
	Currency          string
	Kind              NumberKind
	MinFractionDigits int
	MaxFractionDigits int
	Scale             float64
	NoGrouping        bool
}

// DateStyle describes a date or time format. A non-empty Layout (Go time
// layout) wins over Length.
type DateStyle struct {
	Layout string
	Length Length
}

// Config holds the named styles messages may reference, e.g.
// {amount, number, money} resolves "money" through Number.
type Config struct {
	Number   map[string]NumberStyle
	Date     map[string]DateStyle
	Time     map[string]DateStyle
	Location *time.Location
}

// location returns the configured zone, UTC when unset.
func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

var builtinNumberStyles = map[string]NumberStyle{
	"integer":  {Kind: Integer},
	"percent":  {Kind: Percent},
	"currency": {Kind: Currency, Currency: "USD"},
}

// resolveNumberStyle resolves a style string: named style in c, built-in
// ICU name, number skeleton, then plain decimal.
func (c Config) resolveNumberStyle(style string) NumberStyle {
	if style == "" {
		return NumberStyle{}
	}
	if s, ok := c.Number[style]; ok {
		return s
	}
	if s, ok := builtinNumberStyles[style]; ok {
		return s
	}
	if s, ok := parseNumberSkeleton(style); ok {
		return s
	}
	return NumberStyle{}
}

// resolveDateStyle resolves a date or time style string: named style in
// named, ICU width name, date skeleton, then the medium width.
func resolveDateStyle(named map[string]DateStyle, style string) DateStyle {
	if style == "" {
		return DateStyle{Length: Medium}
	}
	if s, ok := named[style]; ok {
		return s
	}
	if l, ok := ParseLength(style); ok {
		return DateStyle{Length: l}
	}
	if layout, ok := parseDateSkeleton(style); ok {
		return DateStyle{Layout: layout}
	}
	return DateStyle{Length: Medium}
}

// parseNumberSkeleton understands the subset of ICU number skeleton tokens
// the message compiler passes through: percent, currency/XXX, integer,
// precision-integer, .00/.##/.0# fraction precision, scale/N, group-off.
func parseNumberSkeleton(skeleton string) (NumberStyle, bool) {
	skeleton = strings.TrimSpace(strings.TrimPrefix(skeleton, "::"))
	if skeleton == "" {
		return NumberStyle{}, false
	}

	var style NumberStyle
	for _, token := range strings.Fields(skeleton) {
		switch {
		case token == "percent" || token == "%":
			style.Kind = Percent
		case token == "integer" || token == "precision-integer":
			style.Kind = Integer
		case token == "group-off" || token == ",_":
			style.NoGrouping = true
		case strings.HasPrefix(token, "currency/"):
			code := strings.ToUpper(strings.TrimPrefix(token, "currency/"))
			if len(code) != 3 {
				return NumberStyle{}, false
			}
			style.Kind = Currency
			style.Currency = code
		case strings.HasPrefix(token, "scale/"):
			scale, err := strconv.ParseFloat(strings.TrimPrefix(token, "scale/"), 64)
			if err != nil {
				return NumberStyle{}, false
			}
			style.Scale = scale
		case strings.HasPrefix(token, "."):
			minDigits, maxDigits, ok := parseFractionPrecision(token[1:])
			if !ok {
				return NumberStyle{}, false
			}
			style.MinFractionDigits = minDigits
			style.MaxFractionDigits = maxDigits
		default:
			return NumberStyle{}, false
		}
	}
	return style, true
}

// parseFractionPrecision reads "00", "##" or "0#" style fraction stems.
func parseFractionPrecision(stem string) (minDigits, maxDigits int, ok bool) {
	if stem == "" {
		return 0, 0, false
	}
	seenHash := false
	for _, r := range stem {
		switch r {
		case '0':
			if seenHash {
				return 0, 0, false
			}
			minDigits++
		case '#':
			seenHash = true
		default:
			return 0, 0, false
		}
	}
	return minDigits, len(stem), true
}

// parseDateSkeleton converts an ICU date pattern such as "yyyy-MM-dd" or
// "::EEEE, MMMM d" into a Go time layout. Quoted text is copied verbatim.
func parseDateSkeleton(skeleton string) (string, bool) {
	skeleton = strings.TrimPrefix(skeleton, "::")
	if skeleton == "" {
		return "", false
	}

	var b strings.Builder
	sawField := false
	for i := 0; i < len(skeleton); {
		c := skeleton[i]

		if c == '\'' {
			end := strings.IndexByte(skeleton[i+1:], '\'')
			if end < 0 {
				return "", false
			}
			literal := skeleton[i+1 : i+1+end]
			if strings.ContainsAny(literal, "0123456789") {
				return "", false
			}
			b.WriteString(literal)
			i += end + 2
			continue
		}

		j := i
		for j < len(skeleton) && skeleton[j] == c {
			j++
		}
		n := j - i
		i = j

		field, isField, ok := dateField(c, n)
		if !ok {
			return "", false
		}
		if isField {
			sawField = true
			b.WriteString(field)
			continue
		}
		b.WriteString(strings.Repeat(string(c), n))
	}

	if !sawField {
		return "", false
	}
	return b.String(), true
}

// dateField maps a run of n pattern letters c to a Go layout fragment.
// Non-letter runs are passed through; digits and unsupported letters fail.
func dateField(c byte, n int) (field string, isField, ok bool) {
	switch c {
	case 'y':
		if n == 2 {
			return "06", true, true
		}
		return "2006", true, true
	case 'M', 'L':
		switch n {
		case 1:
			return "1", true, true
		case 2:
			return "01", true, true
		case 3:
			return "Jan", true, true
		default:
			return "January", true, true
		}
	case 'd':
		if n == 1 {
			return "2", true, true
		}
		return "02", true, true
	case 'E':
		if n <= 3 {
			return "Mon", true, true
		}
		return "Monday", true, true
	case 'H':
		return "15", true, true
	case 'h':
		if n == 1 {
			return "3", true, true
		}
		return "03", true, true
	case 'm':
		if n == 1 {
			return "4", true, true
		}
		return "04", true, true
	case 's':
		if n == 1 {
			return "5", true, true
		}
		return "05", true, true
	case 'a':
		return "PM", true, true
	case 'z':
		return "MST", true, true
	}

	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return "", false, false
	}
	return "", false, true
}

func (s NumberStyle) cacheKey() string {
	return fmt.Sprintf("%d|%s|%d|%d|%g|%t", s.Kind, s.Currency, s.MinFractionDigits, s.MaxFractionDigits, s.Scale, s.NoGrouping)
}

// DefaultConfig returns a Config holding the ICU named styles.
func DefaultConfig() Config {
	cfg := Config{
		Number: make(map[string]NumberStyle, len(builtinNumberStyles)),
		Date:   make(map[string]DateStyle, 4),
		Time:   make(map[string]DateStyle, 4),
	}
	for name, style := range builtinNumberStyles {
		cfg.Number[name] = style
	}
	for _, name := range []string{"short", "medium", "long", "full"} {
		l, _ := ParseLength(name)
		cfg.Date[name] = DateStyle{Length: l}
		cfg.Time[name] = DateStyle{Length: l}
	}
	return cfg
}
