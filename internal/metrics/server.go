package metrics

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServer exposes /metrics on a dedicated port.
type HTTPServer struct {
	srv *http.Server
}

// Shutdown stops the metrics server.
func (s *HTTPServer) Shutdown() error {
	return s.srv.Shutdown(context.Background())
}

// NewHTTPServer starts the metrics server at addr in a background goroutine.
func NewHTTPServer(addr string) (*HTTPServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}
	log.Println("Starting metrics server at", srv.Addr)
	go srv.Serve(ln)

	return &HTTPServer{srv: srv}, nil
}
