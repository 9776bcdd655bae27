package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/contacts"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/discovery"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/orchestrator"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/research"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/scrape"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/store"
	anthropicpkg "github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/anthropic"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/hunter"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/jina"
)

// pipelineEnv holds the initialized store, clients, and orchestrator shared
// by the run/jobs/serve commands.
type pipelineEnv struct {
	Store        store.Store
	Orchestrator *orchestrator.Orchestrator
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initStore opens the configured backend: Postgres by default, SQLite when
// selected for local runs.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres", "":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store: LEADGEN_STORE_DATABASE_URL is required for the postgres driver")
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}

// initPipeline sets up the store, API clients, and stage components, and
// builds the orchestrator. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	jinaOpts := []jina.Option{jina.WithBaseURL(cfg.Search.BaseURL)}
	if cfg.Search.SearchBaseURL != "" {
		jinaOpts = append(jinaOpts, jina.WithSearchBaseURL(cfg.Search.SearchBaseURL))
	}
	jinaClient := jina.NewClient(cfg.Search.Key, jinaOpts...)

	engine := discovery.NewEngine(discovery.NewJinaSearcher(jinaClient), cfg.Search, cfg.Discovery)

	// Fetch chain: direct HTTP first, reader proxy when a site blocks us.
	fetcher := scrape.NewChain(
		scrape.NewLocalFetcher(cfg.Scrape),
		scrape.NewJinaFetcher(jinaClient),
	)

	var intel contacts.Intel
	if cfg.Hunter.Key != "" {
		hunterClient := hunter.NewClient(cfg.Hunter.Key, hunter.WithBaseURL(cfg.Hunter.BaseURL))
		intel = contacts.NewHunterIntel(hunterClient, 25)
	} else {
		zap.L().Debug("LEADGEN_HUNTER_KEY not set, contact-intelligence fallback disabled")
	}
	finder := contacts.NewFinder(fetcher, intel, cfg.Contacts)

	var (
		profiler orchestrator.Profiler
		outreach orchestrator.OutreachGenerator
		reviewer orchestrator.Reviewer
	)
	if cfg.Anthropic.Key != "" {
		llm := anthropicpkg.NewClient(cfg.Anthropic.Key)
		profiler = research.NewProfiler(llm, fetcher, cfg.Anthropic.Model)
		outreach = research.NewGenerator(llm, cfg.Anthropic.Model)
		reviewer = research.NewReviewer(llm, cfg.Anthropic.Model)
	} else {
		zap.L().Warn("LEADGEN_ANTHROPIC_KEY not set, research and outreach stages disabled")
	}

	orch := orchestrator.New(st, engine, finder, profiler, outreach, reviewer, cfg.Worker)

	return &pipelineEnv{Store: st, Orchestrator: orch}, nil
}
