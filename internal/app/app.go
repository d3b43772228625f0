// Package app assembles the portal's components and dependencies.
package app

import (
	"net/http"

	"github.com/bamcapital/bam-portal/internal/cache"
	"github.com/bamcapital/bam-portal/internal/chat"
	"github.com/bamcapital/bam-portal/internal/client"
	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/config"
	"github.com/bamcapital/bam-portal/internal/handlers"
	"github.com/bamcapital/bam-portal/internal/market"
	"github.com/bamcapital/bam-portal/internal/mcp"
	"github.com/bamcapital/bam-portal/internal/models"
	"github.com/bamcapital/bam-portal/internal/report"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Advisory      *client.AdvisoryClient
	ChatClient    *client.ChatClient
	MarketClient  *client.MarketClient
	ReportService *report.Service
	ChatStore     *chat.Store
	Fetcher       *market.Fetcher
	Cache         *cache.ResponseCache

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	ReportHandler  *handlers.ReportHandler
	NewsHandler    *handlers.NewsHandler
	QueryHandler   *handlers.QueryHandler
	ChatHandler    *handlers.ChatHandler
	MarketHandler  *handlers.MarketHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE")
	}

	a.initClients()
	a.initServices()
	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initClients creates the three remote API clients.
func (a *App) initClients() {
	a.Advisory = client.NewAdvisoryClient(a.Config.Advisory.BaseURL, a.Config.Advisory.GetTimeout(), a.Logger)
	a.ChatClient = client.NewChatClient(a.Config.Chat.BaseURL, a.Config.Chat.GetTimeout())
	a.MarketClient = client.NewMarketClient(a.Config.Market.BaseURL, a.Config.Market.GetTimeout())
}

// initServices creates the session-level services over the clients.
func (a *App) initServices() {
	a.Cache = cache.New(a.Config.Cache.GetTTL(), a.Config.Cache.MaxEntries)
	a.ReportService = report.NewService(a.Advisory, a.Logger)
	a.ChatStore = chat.NewStore(a.ChatClient, a.Logger)
	a.Fetcher = market.NewFetcher(a.MarketClient, a.Config.Market.Indices, a.Config.Market.Watchlist, a.Logger)
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	history := func(r *http.Request, userID int) []*models.InvestmentReport {
		return a.Advisory.GetUserReports(r.Context(), userID)
	}
	a.ReportHandler = handlers.NewReportHandler(a.Logger, a.ReportService, history, a.Cache)
	a.NewsHandler = handlers.NewNewsHandler(a.Logger, a.Advisory, a.Cache)
	a.QueryHandler = handlers.NewQueryHandler(a.Logger, a.Advisory, a.Cache)
	a.ChatHandler = handlers.NewChatHandler(a.Logger, a.ChatStore)
	a.MarketHandler = handlers.NewMarketHandler(a.Logger, a.Fetcher)

	a.MCPHandler = mcp.NewHandler(mcp.Services{
		Reports:  a.ReportService,
		Advisory: a.Advisory,
		Chat:     a.ChatStore,
		Market:   a.Fetcher,
	}, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
