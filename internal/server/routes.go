package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Report generation and history
	mux.HandleFunc("/api/report", s.app.ReportHandler.Generate)
	mux.HandleFunc("/api/reports", s.app.ReportHandler.History)
	mux.HandleFunc("/api/report/reset", s.app.ReportHandler.Reset)
	mux.HandleFunc("/api/feedback", s.app.ReportHandler.Feedback)

	// News summarization
	mux.HandleFunc("POST /api/news", s.app.NewsHandler.Submit)
	mux.HandleFunc("GET /api/news", s.app.NewsHandler.Recent)

	// Natural-language queries
	mux.HandleFunc("/api/query", s.app.QueryHandler.Submit)
	mux.HandleFunc("/api/queries", s.app.QueryHandler.History)

	// Advisor chat
	mux.HandleFunc("POST /api/chat", s.app.ChatHandler.Submit)
	mux.HandleFunc("GET /api/chat", s.app.ChatHandler.Transcript)
	mux.HandleFunc("/api/chat/reset", s.app.ChatHandler.Reset)

	// Market snapshot side panel
	mux.HandleFunc("/api/market/snapshot", s.app.MarketHandler.Snapshot)
	mux.HandleFunc("/api/market/latest", s.app.MarketHandler.Latest)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// Dev-only remote shutdown, used by local tooling
	if s.app.Config.IsDevMode() {
		mux.HandleFunc("POST /api/shutdown", s.handleShutdown)
	}

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}

// handleShutdown signals the registered shutdown channel and acknowledges
// the request before the server begins draining.
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"shutting down"}`))

	if s.shutdownChan != nil {
		go func() { s.shutdownChan <- struct{}{} }()
	}
}
