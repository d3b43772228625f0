package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4311,
			Host: "localhost",
		},
		Advisory: ClientConfig{
			BaseURL: "https://x8ki-letl-twmt.n7.xano.io/api:4gDp-rI4",
			Timeout: "15s",
		},
		Chat: ClientConfig{
			BaseURL: "http://localhost:8000/api/chat",
			Timeout: "60s",
		},
		Market: MarketConfig{
			BaseURL: "https://query1.finance.yahoo.com/v7/finance/quote",
			Timeout: "10s",
			Indices: []string{"^NSEI", "^BSESN"},
			Watchlist: []string{
				"RELIANCE.NS",
				"HDFCBANK.NS",
				"INFY.NS",
				"TCS.NS",
				"ICICIBANK.NS",
			},
		},
		Cache: CacheConfig{
			TTL:        "5m",
			MaxEntries: 256,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
	}
}
