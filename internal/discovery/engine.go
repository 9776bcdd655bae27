package discovery

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/config"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

const defaultDiagnosticsCap = 50

// Result holds the engine output: the accepted, score-sorted company list
// and the diagnostics list of every evaluated candidate.
type Result struct {
	Companies   []model.Company
	Diagnostics []Candidate
}

// Engine discovers companies for a job by expanding criteria into search
// queries, scoring every hit, and deduplicating by domain.
type Engine struct {
	search        Searcher
	limiter       *rate.Limiter
	cfg           config.DiscoveryConfig
	perQueryLimit int
	maxQueries    int
}

// NewEngine creates an Engine. The rate limiter paces calls to the search
// collaborator; limits below 1 rps are honored.
func NewEngine(search Searcher, searchCfg config.SearchConfig, cfg config.DiscoveryConfig) *Engine {
	rps := searchCfg.RateLimit
	if rps <= 0 {
		rps = 1
	}
	perQuery := searchCfg.PerQueryLimit
	if perQuery <= 0 {
		perQuery = 10
	}
	maxQueries := searchCfg.MaxQueries
	if maxQueries <= 0 {
		maxQueries = defaultMaxQueries
	}
	return &Engine{
		search:        search,
		limiter:       rate.NewLimiter(rate.Limit(rps), 1),
		cfg:           cfg,
		perQueryLimit: perQuery,
		maxQueries:    maxQueries,
	}
}

// Discover runs query expansion, scoring, and dedup for a job. Search
// collaborator failures are recovered as zero results per query; the
// engine never returns an error for an empty outcome. Queries stop early
// once the number of accepted unique-by-domain candidates reaches
// targetCount.
func (e *Engine) Discover(ctx context.Context, jobID string, criteria model.TargetingCriteria, targetCount int) *Result {
	log := zap.L().With(zap.String("stage", "discovery"), zap.String("job_id", jobID))

	if targetCount <= 0 {
		targetCount = e.cfg.DefaultTargetCount
		if targetCount <= 0 {
			targetCount = 10
		}
	}

	queries := ExpandQueries(criteria, e.maxQueries)
	log.Info("expanded queries", zap.Int("count", len(queries)))

	best := make(map[string]Candidate)
	var diagnostics []Candidate
	accepted := 0

	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}
		if accepted >= targetCount {
			break
		}

		// Pacing between calls doubles as the inter-query delay.
		if err := e.limiter.Wait(ctx); err != nil {
			break
		}

		hits, err := e.search.Search(ctx, query, e.perQueryLimit)
		if err != nil {
			log.Warn("search query failed", zap.String("query", query), zap.Error(err))
			continue
		}

		for _, hit := range hits {
			cand, ok := e.evaluate(query, hit, criteria)
			if !ok {
				continue
			}
			diagnostics = append(diagnostics, cand)

			key := dedupKey(cand)
			prev, exists := best[key]
			if exists && prev.Score >= cand.Score {
				continue
			}
			if !exists && cand.Accepted {
				accepted++
			} else if exists && !prev.Accepted && cand.Accepted {
				accepted++
			}
			best[key] = cand
		}
	}

	result := &Result{
		Companies:   e.rank(jobID, best, targetCount),
		Diagnostics: capDiagnostics(diagnostics, e.diagnosticsCap()),
	}

	log.Info("discovery complete",
		zap.Int("evaluated", len(diagnostics)),
		zap.Int("accepted", len(result.Companies)),
	)
	return result
}

// evaluate normalizes and scores a single hit. Hits lacking a resolvable
// domain are discarded entirely.
func (e *Engine) evaluate(query string, hit Hit, criteria model.TargetingCriteria) (Candidate, bool) {
	domain := DomainFromURL(hit.URL)
	if domain == "" {
		return Candidate{}, false
	}

	name := CleanTitle(hit.Title)
	if name == "" {
		name = domain
	}

	if e.excluded(name, hit.Snippet, criteria.ExclusionKeywords) {
		return Candidate{}, false
	}

	score, reasons, accepted := ScoreCandidate(name, hit.Snippet, domain, e.cfg.ExtraBlocklist)
	return Candidate{
		Name:     name,
		Website:  hit.URL,
		Domain:   domain,
		Snippet:  hit.Snippet,
		Query:    query,
		Score:    score,
		Reasons:  reasons,
		Accepted: accepted,
	}, true
}

func (e *Engine) excluded(name, snippet string, exclusions []string) bool {
	if len(exclusions) == 0 {
		return false
	}
	text := strings.ToLower(name + " " + snippet)
	for _, term := range exclusions {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// rank sorts accepted candidates by score descending and converts the first
// max(targetCount, 10) into Company records.
func (e *Engine) rank(jobID string, best map[string]Candidate, targetCount int) []model.Company {
	var winners []Candidate
	for _, c := range best {
		if c.Accepted {
			winners = append(winners, c)
		}
	}
	sort.SliceStable(winners, func(i, j int) bool {
		if winners[i].Score != winners[j].Score {
			return winners[i].Score > winners[j].Score
		}
		return winners[i].Domain < winners[j].Domain
	})

	limit := targetCount
	if limit < 10 {
		limit = 10
	}
	if len(winners) > limit {
		winners = winners[:limit]
	}

	companies := make([]model.Company, 0, len(winners))
	for _, w := range winners {
		companies = append(companies, model.Company{
			JobID:               jobID,
			Name:                w.Name,
			Website:             w.Website,
			Domain:              w.Domain,
			FitScore:            w.Score,
			DiscoveryReasons:    append([]string(nil), w.Reasons...),
			DiscoveryConfidence: confidence(w.Score),
		})
	}
	return companies
}

func (e *Engine) diagnosticsCap() int {
	if e.cfg.DiagnosticsCap > 0 {
		return e.cfg.DiagnosticsCap
	}
	return defaultDiagnosticsCap
}

// dedupKey dedups by domain, falling back to website, then name.
func dedupKey(c Candidate) string {
	if c.Domain != "" {
		return "d:" + c.Domain
	}
	if c.Website != "" {
		return "w:" + strings.ToLower(c.Website)
	}
	return "n:" + strings.ToLower(c.Name)
}

func capDiagnostics(diags []Candidate, limit int) []Candidate {
	if len(diags) > limit {
		return diags[:limit]
	}
	return diags
}

// confidence maps a rubric score onto [0, 1].
func confidence(score float64) float64 {
	c := score / 12.0
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}
