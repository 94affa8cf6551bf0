// Package health reports whether message loaders are ready to serve.
//
// A loader is ready once its default locale is loaded; until then every
// lookup degrades to the registry's fallback message. Mount the readiness
// handler next to your other probes:
//
//	mux.Handle("/ready", health.ReadinessHandler(loader.Default,
//	    health.WithTimeout(2*time.Second),
//	))
//
// Check and CheckFunc run the same check without HTTP.
package health
