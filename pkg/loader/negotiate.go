package loader

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength bounds the header length that is parsed.
const maxAcceptLanguageLength = 4096

type weightedTag struct {
	tag     string
	quality float64
}

// Negotiate picks the supported locale that best matches an Accept-Language
// header such as "en-US,en;q=0.9,pl;q=0.8". Higher quality wins; within one
// quality an exact match beats a base-language match ("en" and "en-GB").
// It returns the default locale when nothing matches.
func (l *Loader) Negotiate(acceptLanguage string) string {
	if match, ok := Match(acceptLanguage, l.Locales()); ok {
		return match
	}
	return l.defaultLocale
}

// Match returns the entry of available that best matches acceptLanguage.
func Match(acceptLanguage string, available []string) (string, bool) {
	var (
		best        string
		bestQuality = -1.0
		bestExact   bool
	)

	for _, tag := range parseAcceptLanguage(acceptLanguage) {
		if tag.quality <= 0 || tag.quality < bestQuality {
			continue
		}
		for _, avail := range available {
			norm := normalizeTag(avail)
			exact := norm == tag.tag
			if !exact && baseLanguage(norm) != baseLanguage(tag.tag) {
				continue
			}
			if tag.quality > bestQuality || (exact && !bestExact) {
				best, bestQuality, bestExact = avail, tag.quality, exact
			}
			if exact {
				break
			}
		}
	}
	return best, best != ""
}

// parseAcceptLanguage returns the tags of the header ordered by quality.
// Wildcards are ignored.
func parseAcceptLanguage(header string) []weightedTag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []weightedTag
	for part := range strings.SplitSeq(header, ",") {
		lang, params, hasParams := strings.Cut(strings.TrimSpace(part), ";")
		lang = strings.TrimSpace(lang)
		if lang == "" || lang == "*" {
			continue
		}

		quality := 1.0
		if hasParams {
			params = strings.TrimSpace(params)
			if q, ok := strings.CutPrefix(params, "q="); ok {
				if v, err := strconv.ParseFloat(q, 64); err == nil && v >= 0 && v <= 1 {
					quality = v
				}
			}
		}
		tags = append(tags, weightedTag{tag: normalizeTag(lang), quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})
	return tags
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}

func baseLanguage(tag string) string {
	base, _, _ := strings.Cut(tag, "-")
	return base
}
