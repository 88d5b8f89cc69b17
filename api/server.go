package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/matt-g-everett/ledtween/stream"
)

// StatusSource reports what is being played.
type StatusSource interface {
	Status() stream.Status
}

// API serves the web client and the playback status.
type API struct {
	listen string
	static string
	status StatusSource
}

// NewAPI creates an instance of an API.
func NewAPI(config stream.APIConfig, status StatusSource) *API {
	a := new(API)
	a.listen = config.Listen
	a.static = config.Static
	a.status = status
	return a
}

// Handler returns the routes of the API.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", a.handleStatus)
	mux.Handle("/", http.FileServer(http.Dir(a.static)))
	return mux
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.status.Status()); err != nil {
		log.Printf("Failed to write status: %v", err)
	}
}

// Serve listens on the configured address until the server fails.
func (a *API) Serve() error {
	log.Printf("Listening on %s...", a.listen)
	return http.ListenAndServe(a.listen, a.Handler())
}
