package http

import (
	"net"
	"os"

	"github.com/go-chi/chi/v5"
)

func (h *HTTP) ServeListener(listener net.Listener, stop <-chan os.Signal) error {
	h.setup()

	return h.serve(listener, stop)
}

func (h *HTTP) Mux() *chi.Mux {
	h.setup()

	return h.mux
}
