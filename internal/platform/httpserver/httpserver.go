package httpserver

import (
	"net/http"
	"time"
)

// New builds the service HTTP server. Write timeout is generous because a
// synchronous validation run can take several seconds against slow
// collaborators.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
