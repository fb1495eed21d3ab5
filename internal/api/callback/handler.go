package callback

import (
	"net/http"

	"hermes/pkg/logger"
)

// Result is one captured OAuth redirect.
type Result struct {
	Code  string
	State string
	Err   string
}

// Handler captures the OAuth consent redirect at /callback and hands the
// raw result to whichever consent flow is currently waiting. Only one
// consent flow runs at a time in this process, so a single buffered
// channel suffices.
type Handler struct {
	results chan Result
	log     *logger.Logger
}

// New creates a callback handler.
func New(log *logger.Logger) *Handler {
	return &Handler{
		results: make(chan Result, 1),
		log:     log.With("component", "oauth_callback"),
	}
}

// Results exposes captured redirects to the waiting consent flow.
func (h *Handler) Results() <-chan Result {
	return h.results
}

// ServeHTTP handles GET /callback.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	result := Result{
		Code:  query.Get("code"),
		State: query.Get("state"),
		Err:   query.Get("error"),
	}

	select {
	case h.results <- result:
		h.log.Info("OAuth redirect captured")
	default:
		// No flow is waiting; the user probably reloaded the page.
		h.log.Warn("OAuth redirect received but no consent flow is waiting")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if result.Err != "" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Authorization was denied. You can close this tab and return to the terminal.\n"))
		return
	}
	w.Write([]byte("Authorization received. You can close this tab and return to the terminal.\n"))
}
