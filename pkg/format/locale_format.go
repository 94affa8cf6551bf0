package format

import (
	"strings"
	"unicode/utf8"
)

// Length selects one of the four CLDR date/time widths.
type Length int

const (
	Short Length = iota
	Medium
	Long
	Full
)

// ParseLength maps an ICU style name to a Length.
func ParseLength(s string) (Length, bool) {
	switch s {
	case "short":
		return Short, true
	case "medium":
		return Medium, true
	case "long":
		return Long, true
	case "full":
		return Full, true
	default:
		return Medium, false
	}
}

// LocaleFormat holds the locale conventions the number and date formatters
// cannot derive from CLDR data alone: Go time layouts per width and the
// placement of currency symbols.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	dateLayouts      [4]string
	timeLayouts      [4]string
	currencyPosition string // "before" or "after"
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a new LocaleFormat with the given options.
// If no options are provided, it defaults to US English conventions.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		dateLayouts:      [4]string{"1/2/06", "Jan 2, 2006", "January 2, 2006", "Monday, January 2, 2006"},
		timeLayouts:      [4]string{"3:04 PM", "3:04:05 PM", "3:04:05 PM MST", "3:04:05 PM MST"},
		currencyPosition: "before",
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithDateLayouts sets the Go time layouts for short, medium, long and full dates.
func WithDateLayouts(short, medium, long, full string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateLayouts = [4]string{short, medium, long, full}
	}
}

// WithTimeLayouts sets the Go time layouts for short, medium, long and full times.
func WithTimeLayouts(short, medium, long, full string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeLayouts = [4]string{short, medium, long, full}
	}
}

// WithCurrencyPosition sets the currency position ("before" or "after").
func WithCurrencyPosition(pos string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		if pos == "before" || pos == "after" {
			lf.currencyPosition = pos
		}
	}
}

// DateLayout returns the date layout for the given width.
func (lf *LocaleFormat) DateLayout(l Length) string {
	return lf.dateLayouts[clampLength(l)]
}

// TimeLayout returns the time layout for the given width.
func (lf *LocaleFormat) TimeLayout(l Length) string {
	return lf.timeLayouts[clampLength(l)]
}

// placeCurrency attaches symbol to an already formatted amount.
func (lf *LocaleFormat) placeCurrency(symbol, amount string, negative bool) string {
	var result string
	if lf.currencyPosition == "before" {
		if tightSymbol(symbol) {
			result = symbol + amount
		} else {
			result = symbol + " " + amount
		}
	} else {
		result = amount + " " + symbol
	}

	if negative {
		result = "-" + result
	}
	return result
}

// tightSymbol reports whether symbol is written without a space before the amount.
func tightSymbol(symbol string) bool {
	return utf8.RuneCountInString(symbol) == 1 || strings.HasSuffix(symbol, "$")
}

func clampLength(l Length) Length {
	if l < Short || l > Full {
		return Medium
	}
	return l
}

var predefinedFormats = map[string]*LocaleFormat{
	"en-us": NewLocaleFormat(),
	"en-gb": NewLocaleFormat(
		WithDateLayouts("02/01/2006", "2 Jan 2006", "2 January 2006", "Monday, 2 January 2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
	),
	"de-de": NewLocaleFormat(
		WithDateLayouts("02.01.06", "02.01.2006", "2.1.2006", "2.1.2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition("after"),
	),
	"fr-fr": NewLocaleFormat(
		WithDateLayouts("02/01/2006", "02/01/2006", "2/1/2006", "2/1/2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition("after"),
	),
	"es-es": NewLocaleFormat(
		WithDateLayouts("2/1/06", "02/01/2006", "2/1/2006", "2/1/2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition("after"),
	),
	"pt-br": NewLocaleFormat(
		WithDateLayouts("02/01/2006", "02/01/2006", "2/1/2006", "2/1/2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
	),
	"ja-jp": NewLocaleFormat(
		WithDateLayouts("2006/01/02", "2006/01/02", "2006/1/2", "2006/1/2"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
	),
	"zh-cn": NewLocaleFormat(
		WithDateLayouts("2006/1/2", "2006-01-02", "2006-01-02", "2006-01-02"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
	),
	"ko-kr": NewLocaleFormat(
		WithDateLayouts("06. 1. 2.", "2006. 1. 2.", "2006. 1. 2.", "2006. 1. 2."),
		WithTimeLayouts("PM 3:04", "PM 3:04:05", "PM 3:04:05 MST", "PM 3:04:05 MST"),
	),
	"pl-pl": NewLocaleFormat(
		WithDateLayouts("02.01.2006", "02.01.2006", "2.01.2006", "2.01.2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition("after"),
	),
	"ru-ru": NewLocaleFormat(
		WithDateLayouts("02.01.2006", "02.01.2006", "2.01.2006", "2.01.2006"),
		WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST"),
		WithCurrencyPosition("after"),
	),
	"ar-sa": NewLocaleFormat(
		WithDateLayouts("2/1/2006", "02/01/2006", "02/01/2006", "02/01/2006"),
		WithCurrencyPosition("after"),
	),
}

// base language -> predefined region
var defaultRegions = map[string]string{
	"en": "en-us",
	"de": "de-de",
	"fr": "fr-fr",
	"es": "es-es",
	"pt": "pt-br",
	"ja": "ja-jp",
	"zh": "zh-cn",
	"ko": "ko-kr",
	"pl": "pl-pl",
	"ru": "ru-ru",
	"ar": "ar-sa",
}

// LocaleFormatFor returns the predefined format for locale, falling back to
// the base language's default region and finally to US English.
func LocaleFormatFor(locale string) *LocaleFormat {
	key := strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
	if lf, ok := predefinedFormats[key]; ok {
		return lf
	}

	base := key
	if i := strings.IndexByte(key, '-'); i > 0 {
		base = key[:i]
	}
	if region, ok := defaultRegions[base]; ok {
		return predefinedFormats[region]
	}

	return predefinedFormats["en-us"]
}
