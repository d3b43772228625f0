// Package mcp exposes the portal's operations as MCP tools so assistant
// clients can generate reports, ask the advisor, and read market data
// over a single streamable HTTP endpoint.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bamcapital/bam-portal/internal/chat"
	"github.com/bamcapital/bam-portal/internal/client"
	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/config"
	"github.com/bamcapital/bam-portal/internal/market"
	"github.com/bamcapital/bam-portal/internal/report"
)

// Services are the portal components the tool handlers call. They are
// the same services behind the JSON API handlers.
type Services struct {
	Reports  *report.Service
	Advisory *client.AdvisoryClient
	Chat     *chat.Store
	Market   *market.Fetcher
}

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates the MCP handler with the portal's static tool set.
func NewHandler(svc Services, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"bam-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	count := registerTools(mcpSrv, svc)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().Int("tools", count).Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
