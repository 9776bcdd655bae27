package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Hunter     HunterConfig     `yaml:"hunter" mapstructure:"hunter"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Discovery  DiscoveryConfig  `yaml:"discovery" mapstructure:"discovery"`
	Contacts   ContactsConfig   `yaml:"contacts" mapstructure:"contacts"`
	Scrape     ScrapeConfig     `yaml:"scrape" mapstructure:"scrape"`
	Worker     WorkerConfig     `yaml:"worker" mapstructure:"worker"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// SearchConfig holds web-search collaborator settings.
type SearchConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	SearchBaseURL string  `yaml:"search_base_url" mapstructure:"search_base_url"`
	RateLimit     float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	PerQueryLimit int     `yaml:"per_query_limit" mapstructure:"per_query_limit"`
	MaxQueries    int     `yaml:"max_queries" mapstructure:"max_queries"`
}

// HunterConfig holds contact-intelligence collaborator settings.
type HunterConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds text-generation collaborator settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// DiscoveryConfig configures the company discovery and scoring engine.
type DiscoveryConfig struct {
	DefaultTargetCount int      `yaml:"default_target_count" mapstructure:"default_target_count"`
	DiagnosticsCap     int      `yaml:"diagnostics_cap" mapstructure:"diagnostics_cap"`
	ExtraBlocklist     []string `yaml:"extra_blocklist" mapstructure:"extra_blocklist"`
}

// ContactsConfig configures team-page scraping and filtering.
type ContactsConfig struct {
	MaxTeamPages    int `yaml:"max_team_pages" mapstructure:"max_team_pages"`
	MinSiteContacts int `yaml:"min_site_contacts" mapstructure:"min_site_contacts"`
}

// ScrapeConfig configures raw page fetching.
type ScrapeConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBytes    int64  `yaml:"max_bytes" mapstructure:"max_bytes"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// WorkerConfig configures concurrent job processing.
type WorkerConfig struct {
	MaxConcurrentJobs int `yaml:"max_concurrent_jobs" mapstructure:"max_concurrent_jobs"`
}

// ExportConfig configures lead export targets.
type ExportConfig struct {
	WebhookURL string           `yaml:"webhook_url" mapstructure:"webhook_url"`
	FTP        FTPConfig        `yaml:"ftp" mapstructure:"ftp"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
}

// FTPConfig holds FTP drop settings.
type FTPConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Dir      string `yaml:"dir" mapstructure:"dir"`
}

// NotionConfig holds Notion API credentials and the lead database ID.
type NotionConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	LeadDB string `yaml:"lead_db" mapstructure:"lead_db"`
}

// SalesforceConfig holds Salesforce JWT auth settings.
type SalesforceConfig struct {
	ClientID string `yaml:"client_id" mapstructure:"client_id"`
	Username string `yaml:"username" mapstructure:"username"`
	KeyPath  string `yaml:"key_path" mapstructure:"key_path"`
	LoginURL string `yaml:"login_url" mapstructure:"login_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int    `yaml:"port" mapstructure:"port"`
	PendingCron string `yaml:"pending_cron" mapstructure:"pending_cron"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.sqlite_path", "leadgen.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.pending_cron", "@every 1m")
	v.SetDefault("search.base_url", "https://r.jina.ai")
	v.SetDefault("search.search_base_url", "https://s.jina.ai")
	v.SetDefault("search.rate_limit", 1.0)
	v.SetDefault("search.per_query_limit", 10)
	v.SetDefault("search.max_queries", 10)
	v.SetDefault("hunter.base_url", "https://api.hunter.io/v2")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("discovery.default_target_count", 10)
	v.SetDefault("discovery.diagnostics_cap", 50)
	v.SetDefault("contacts.max_team_pages", 3)
	v.SetDefault("contacts.min_site_contacts", 5)
	v.SetDefault("scrape.timeout_secs", 15)
	v.SetDefault("scrape.max_bytes", 512*1024)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; LeadGenBot/1.0)")
	v.SetDefault("worker.max_concurrent_jobs", 3)
	v.SetDefault("export.salesforce.login_url", "https://login.salesforce.com")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
