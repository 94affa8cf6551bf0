// Package middlewares provides net/http middleware for localized handlers.
//
// Locale resolves the request locale from a chain of sources and stores it
// in the request context, where logger.LocaleExtractor picks it up:
//
//	r := chi.NewRouter()
//	r.Use(middlewares.Locale(messages,
//	    middlewares.WithLocaleWait(200*time.Millisecond),
//	))
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//	    locale := middlewares.LocaleFromContext(r.Context())
//	    s, err := i18n.Translate(r.Context(), "home.title", locale, nil)
//	    ...
//	})
//
// The default chain reads the "lang" query parameter, then the "lang"
// cookie, then Accept-Language. Values are matched against the loader's
// locales, so "de-AT" resolves to "de" when only "de" is available.
package middlewares
