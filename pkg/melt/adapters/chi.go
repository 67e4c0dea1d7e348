package adapters

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/melt-go/melt/pkg/melt"
)

// ChiAdapter serves a Dispatcher from a chi router
type ChiAdapter struct {
	router chi.Router
	server httpServer
}

// NewChiAdapter creates a new chi adapter
func NewChiAdapter(r chi.Router) *ChiAdapter {
	return &ChiAdapter{router: r}
}

// NewDefaultChiAdapter creates a chi adapter with request id and recoverer middleware
func NewDefaultChiAdapter() *ChiAdapter {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	return &ChiAdapter{router: r}
}

// Mount forwards every request to d
func (ca *ChiAdapter) Mount(d *melt.Dispatcher) {
	MountChi(ca.router, d)
}

// Start starts the chi server
func (ca *ChiAdapter) Start(addr string) error {
	return ca.server.start(addr, ca.router)
}

// Stop stops the chi server
func (ca *ChiAdapter) Stop(ctx context.Context) error {
	return ca.server.stop(ctx)
}

// Name returns the adapter name
func (ca *ChiAdapter) Name() string {
	return "Chi"
}

// Handler returns the chi router
func (ca *ChiAdapter) Handler() http.Handler {
	return ca.router
}

// MountChi forwards every path on r to d
func MountChi(r chi.Router, d *melt.Dispatcher) {
	r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		melt.WriteResult(w, dispatchHTTP(d, req, req.URL.Query()))
	}))
}
