package health

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/intl/pkg/loader"
)

// ReadinessHandler reports 200 once every default locale in reg is loaded
// and 503 otherwise. Clients asking for JSON get the full Report.
func ReadinessHandler(reg *loader.Registry, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		report, _ := check(r.Context(), reg, cfg)

		status := http.StatusOK
		if report.Status != StatusReady {
			status = http.StatusServiceUnavailable
		}

		if wantsJSON(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(report)
			return
		}

		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte("OK"))
		} else {
			_, _ = w.Write([]byte("Service Unavailable"))
		}
	}
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
