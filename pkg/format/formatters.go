package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type numberFormatter func(v float64) string

type dateFormatter func(t time.Time) string

// Formatters caches locale-aware number and date formatters keyed by
// (locale, kind, resolved style). It is safe for concurrent use and meant to
// be shared across all messages of a process.
type Formatters struct {
	numbers *lru[numberFormatter]
	dates   *lru[dateFormatter]
	formats map[string]*LocaleFormat
}

// FormattersOption configures Formatters.
type FormattersOption func(*formattersOptions)

type formattersOptions struct {
	formats    map[string]*LocaleFormat
	maxEntries int
}

// WithMaxEntries bounds each formatter cache. Zero means unlimited.
// Default: 512.
func WithMaxEntries(n int) FormattersOption {
	return func(o *formattersOptions) {
		o.maxEntries = n
	}
}

// WithLocaleFormat overrides the date layouts and currency placement used for locale.
func WithLocaleFormat(locale string, lf *LocaleFormat) FormattersOption {
	return func(o *formattersOptions) {
		if lf != nil {
			o.formats[normalizeLocale(locale)] = lf
		}
	}
}

// NewFormatters creates an empty formatter cache.
func NewFormatters(opts ...FormattersOption) *Formatters {
	o := &formattersOptions{
		maxEntries: 512,
		formats:    make(map[string]*LocaleFormat),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Formatters{
		numbers: newLRU[numberFormatter](o.maxEntries),
		dates:   newLRU[dateFormatter](o.maxEntries),
		formats: o.formats,
	}
}

var defaultFormatters = NewFormatters()

// DefaultFormatters returns the process-wide formatter cache used when Bind
// is given nil.
func DefaultFormatters() *Formatters {
	return defaultFormatters
}

// Len returns the number of cached formatters.
func (f *Formatters) Len() int {
	return f.numbers.len() + f.dates.len()
}

// Clear drops every cached formatter.
func (f *Formatters) Clear() {
	f.numbers.clear()
	f.dates.clear()
}

// LocaleFormat returns the conventions used for locale: an exact override,
// an exact predefined format, an override for the base language, then
// LocaleFormatFor.
func (f *Formatters) LocaleFormat(locale string) *LocaleFormat {
	key := normalizeLocale(locale)
	if lf, ok := f.formats[key]; ok {
		return lf
	}
	if lf, ok := predefinedFormats[key]; ok {
		return lf
	}
	if i := strings.IndexByte(key, '-'); i > 0 {
		if lf, ok := f.formats[key[:i]]; ok {
			return lf
		}
	}
	return LocaleFormatFor(locale)
}

// FormatNumber formats v for locale using style.
func (f *Formatters) FormatNumber(locale string, style NumberStyle, v float64) (string, error) {
	key := normalizeLocale(locale) + "|" + style.cacheKey()
	fn, err := f.numbers.getOrCreate(key, func() (numberFormatter, error) {
		return f.newNumberFormatter(locale, style)
	})
	if err != nil {
		return "", err
	}
	return fn(v), nil
}

// FormatDate formats the date part of t for locale.
func (f *Formatters) FormatDate(locale string, style DateStyle, loc *time.Location, t time.Time) string {
	layout := style.Layout
	if layout == "" {
		layout = f.LocaleFormat(locale).DateLayout(style.Length)
	}
	return f.formatTime(locale, "date", layout, loc, t)
}

// FormatTime formats the time-of-day part of t for locale.
func (f *Formatters) FormatTime(locale string, style DateStyle, loc *time.Location, t time.Time) string {
	layout := style.Layout
	if layout == "" {
		layout = f.LocaleFormat(locale).TimeLayout(style.Length)
	}
	return f.formatTime(locale, "time", layout, loc, t)
}

func (f *Formatters) formatTime(locale, kind, layout string, loc *time.Location, t time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	key := normalizeLocale(locale) + "|" + kind + "|" + layout + "|" + loc.String()
	fn, _ := f.dates.getOrCreate(key, func() (dateFormatter, error) {
		return func(t time.Time) string {
			return t.In(loc).Format(layout)
		}, nil
	})
	return fn(t)
}

func (f *Formatters) newNumberFormatter(locale string, style NumberStyle) (numberFormatter, error) {
	p := message.NewPrinter(language.Make(locale))

	scale := style.Scale
	if scale == 0 {
		scale = 1
	}

	var opts []number.Option
	if style.NoGrouping {
		opts = append(opts, number.NoSeparator())
	}
	if style.Kind == Integer {
		opts = append(opts, number.MaxFractionDigits(0))
	} else {
		if style.MinFractionDigits > 0 {
			opts = append(opts, number.MinFractionDigits(style.MinFractionDigits))
		}
		if style.MaxFractionDigits > 0 {
			opts = append(opts, number.MaxFractionDigits(style.MaxFractionDigits))
		}
	}

	switch style.Kind {
	case Percent:
		return func(v float64) string {
			return p.Sprint(number.Percent(v*scale, opts...))
		}, nil
	case Currency:
		unit, err := currency.ParseISO(style.Currency)
		if err != nil {
			return nil, fmt.Errorf("%w: currency %q: %v", ErrInvalidFormatStyle, style.Currency, err)
		}
		if style.MinFractionDigits == 0 && style.MaxFractionDigits == 0 {
			digits, _ := currency.Standard.Rounding(unit)
			opts = append(opts, number.MinFractionDigits(digits), number.MaxFractionDigits(digits))
		}
		symbol := p.Sprint(currency.Symbol(unit))
		lf := f.LocaleFormat(locale)
		return func(v float64) string {
			v *= scale
			amount := p.Sprint(number.Decimal(math.Abs(v), opts...))
			return lf.placeCurrency(symbol, amount, v < 0)
		}, nil
	default:
		return func(v float64) string {
			return p.Sprint(number.Decimal(v*scale, opts...))
		}, nil
	}
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
}
