package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cosmocast/internal/config"
)

// HandleRoot serves the main service information page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>Cosmic Weather Service</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #0b0e1a; color: #e0e0e0; }
        .container { max-width: 800px; margin: 0 auto; background: #161a2e; padding: 30px; border-radius: 10px; }
        h1 { color: #8ab4ff; text-align: center; }
        .endpoints { background: #1e2440; padding: 20px; border-radius: 5px; margin: 20px 0; }
        .endpoint { margin: 10px 0; }
        a { color: #8ab4ff; text-decoration: none; }
        a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#127756; Cosmic Weather Service</h1>
        <p>Aggregated solar event, aurora and radiation status from NASA DONKI and NOAA SWPC.</p>
        <div class="endpoints">
            <h3>Available Endpoints:</h3>
            <div class="endpoint"><strong>GET <a href="/api/weather">/api/weather</a></strong> - Unified space weather aggregate</div>
            <div class="endpoint"><strong>GET <a href="/api/bulletins">/api/bulletins</a></strong> - Recent SWPC news bulletins</div>
            <div class="endpoint"><strong>GET <a href="/charts/activity.png">/charts/activity.png</a></strong> - Current activity chart</div>
            <div class="endpoint"><strong>GET <a href="/health">/health</a></strong> - Service health check</div>
            <div class="endpoint"><strong>GET <a href="/metrics">/metrics</a></strong> - Prometheus metrics</div>
        </div>
        <p style="text-align: center; color: #777; margin-top: 30px;">
            Data refreshes every %s | version %s
        </p>
    </div>
</body>
</html>`, s.Config.CacheTTL, config.GetVersion())
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleWeather serves the assembled space weather aggregate. The aggregator
// always produces a renderable result, so this handler has no failure path
// beyond the method check.
func (s *Server) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := s.Aggregator.GetUnifiedData(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// HandleBulletins serves recent SWPC news items
func (s *Server) HandleBulletins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bulletins, err := s.News.FetchBulletins(r.Context(), 10)
	if err != nil {
		s.log.Error("Bulletin fetch failed", err)
		http.Error(w, "Bulletin feed unavailable", http.StatusBadGateway)
		return
	}

	response := map[string]interface{}{
		"bulletins": bulletins,
		"count":     len(bulletins),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleActivityChart renders the current aggregate as a PNG chart
func (s *Server) HandleActivityChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := s.Aggregator.GetUnifiedData(r.Context())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=60")
	if err := s.Charts.RenderActivity(w, data); err != nil {
		s.log.Error("Chart rendering failed", err)
	}
}
