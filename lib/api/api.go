package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/fosdem/glcontext/lib/config"
	"github.com/fosdem/glcontext/lib/metrics"
)

// ContextReport is what the api shows about one created context.
type ContextReport struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Requested string `json:"requested"`
	Granted   string `json:"granted"`
	Compat    bool   `json:"compatibility_profile"`
}

type Api struct {
	srv http.Server
	mux *http.ServeMux
	cfg *config.ApiCfg

	mu      sync.Mutex
	reports []ContextReport
}

func New(cfg *config.ApiCfg) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux

	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.HandleFunc("/api/contexts", a.getContexts)
	return a
}

// Publish replaces the reported contexts.
func (a *Api) Publish(reports []ContextReport) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append([]ContextReport(nil), reports...)
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func ServeInBackground(cfg *config.ApiCfg) *Api {
	a := New(cfg)
	go func() {
		slog.Info(fmt.Sprintf("serving api on %s", cfg.Bind), slog.String("module", "api"))
		err := a.Serve()
		if err != nil && err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("api server stopped: %s", err), slog.String("module", "api"))
		}
	}()
	return a
}

func (a *Api) getContexts(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "Invalid method, only GET supported", http.StatusMethodNotAllowed)
		return
	}
	a.mu.Lock()
	reports := append([]ContextReport{}, a.reports...)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(reports)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode contexts: %s", err), http.StatusInternalServerError)
		return
	}
}
