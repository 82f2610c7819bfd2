package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// UpstreamProbe checks reachability of one external collaborator.
type UpstreamProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler reports process health, cache size and upstream
// reachability.
type HealthHandler struct {
	CacheSize func() int
	Probes    []UpstreamProbe
	Logger    *zap.Logger
}

const probeTimeout = 2 * time.Second

// Check handles GET /health. Probes run concurrently so a slow upstream
// cannot stall the endpoint beyond the probe deadline.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	statuses := make(map[string]string, len(h.Probes))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, probe := range h.Probes {
		wg.Add(1)
		go func(p UpstreamProbe) {
			defer wg.Done()

			status := "operacional"
			if err := p.Check(ctx); err != nil {
				h.Logger.Warn("upstream probe failed",
					zap.String("upstream", p.Name), zap.Error(err))
				status = "inacessivel"
			}

			mu.Lock()
			statuses[p.Name] = status
			mu.Unlock()
		}(probe)
	}
	wg.Wait()

	writeJSON(w, h.Logger, http.StatusOK, map[string]any{
		"status":     "online",
		"timestamp":  time.Now().Format(time.RFC3339),
		"cache_size": h.CacheSize(),
		"servicos":   statuses,
	})
}
