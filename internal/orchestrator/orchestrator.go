// Package orchestrator owns the job state machine and coordinates the
// pipeline stages: discovery, contact identification, research, outreach,
// and QA. Stage failures are recovered per stage; only an unexpected error
// escaping every guard fails a job.
package orchestrator

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/config"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/criteria"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/discovery"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/store"
)

// Discoverer runs company discovery for a job.
type Discoverer interface {
	Discover(ctx context.Context, jobID string, c model.TargetingCriteria, targetCount int) *discovery.Result
}

// ContactFinder identifies contacts for one company.
type ContactFinder interface {
	Find(ctx context.Context, company model.Company, c model.TargetingCriteria) []model.Contact
}

// Profiler researches one company.
type Profiler interface {
	Profile(ctx context.Context, company model.Company) (*model.CompanyProfile, error)
}

// OutreachGenerator drafts outreach for a company's contacts.
type OutreachGenerator interface {
	Generate(ctx context.Context, company model.Company, profile *model.CompanyProfile, contacts []model.Contact) []model.OutreachContent
}

// Reviewer runs the QA pass over drafts in place.
type Reviewer interface {
	Review(ctx context.Context, drafts []model.OutreachContent)
}

// Orchestrator coordinates jobs end to end. All collaborators are injected;
// nil research, outreach, and reviewer stages are skipped.
type Orchestrator struct {
	store     store.Store
	discovery Discoverer
	contacts  ContactFinder
	profiler  Profiler
	outreach  OutreachGenerator
	reviewer  Reviewer
	cfg       config.WorkerConfig
}

// New creates an Orchestrator.
func New(st store.Store, d Discoverer, cf ContactFinder, p Profiler, g OutreachGenerator, r Reviewer, cfg config.WorkerConfig) *Orchestrator {
	return &Orchestrator{
		store:     st,
		discovery: d,
		contacts:  cf,
		profiler:  p,
		outreach:  g,
		reviewer:  r,
		cfg:       cfg,
	}
}

// CreateJob normalizes a free-text brief into criteria and persists a
// pending job.
func (o *Orchestrator) CreateJob(ctx context.Context, prompt string, overrides criteria.Overrides, targetCount int, qualityThreshold float64) (*model.Job, error) {
	if prompt == "" {
		return nil, eris.New("orchestrator: prompt is required")
	}

	job := &model.Job{
		Prompt:           prompt,
		Criteria:         criteria.Build(prompt, overrides),
		Status:           model.JobStatusPending,
		TargetCount:      targetCount,
		QualityThreshold: qualityThreshold,
	}
	if err := o.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	zap.L().Info("job created",
		zap.String("job_id", job.ID),
		zap.Int("target_count", job.TargetCount),
	)
	return job, nil
}

// GetJob returns a job by id, or an error when it does not exist.
func (o *Orchestrator) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := o.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, eris.Errorf("orchestrator: job not found: %s", jobID)
	}
	return job, nil
}

// ListJobs lists jobs matching the filter.
func (o *Orchestrator) ListJobs(ctx context.Context, filter store.JobFilter) ([]model.Job, error) {
	return o.store.ListJobs(ctx, filter)
}

// Cancel flips a pending or running job to cancelled. Cancellation is
// cooperative: an in-flight Process run observes the flipped status before
// starting its next company.
func (o *Orchestrator) Cancel(ctx context.Context, jobID string) error {
	job, err := o.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if !job.Status.Cancellable() {
		return eris.Errorf("orchestrator: job %s is %s and cannot be cancelled", jobID, job.Status)
	}
	return o.store.UpdateJobStatus(ctx, jobID, model.JobStatusCancelled, "")
}

// Process runs one job to a terminal state. A job that discovers nothing
// still completes; only an unexpected error marks it failed.
func (o *Orchestrator) Process(ctx context.Context, jobID string) error {
	log := zap.L().With(zap.String("job_id", jobID))

	job, err := o.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status.IsTerminal() {
		return eris.Errorf("orchestrator: job %s is %s and cannot be processed", jobID, job.Status)
	}

	if err := o.store.UpdateJobStatus(ctx, jobID, model.JobStatusRunning, ""); err != nil {
		return err
	}

	if err := o.run(ctx, log, job); err != nil {
		log.Error("job failed", zap.Error(err))
		if uerr := o.store.UpdateJobStatus(ctx, jobID, model.JobStatusFailed, err.Error()); uerr != nil {
			log.Error("failed to persist job failure", zap.Error(uerr))
		}
		return err
	}

	// Cancellation during the run leaves the cancelled status in place.
	current, err := o.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if current.Status == model.JobStatusCancelled {
		log.Info("job cancelled during processing")
		return nil
	}

	if err := o.store.UpdateJobStatus(ctx, jobID, model.JobStatusCompleted, ""); err != nil {
		return err
	}
	log.Info("job completed")
	return nil
}

// run executes the per-job pipeline: discovery once, then the per-company
// sub-pipeline sequentially so one company's writes are never interleaved
// with themselves.
func (o *Orchestrator) run(ctx context.Context, log *zap.Logger, job *model.Job) error {
	result := o.discovery.Discover(ctx, job.ID, job.Criteria, job.TargetCount)
	log.Info("discovery returned", zap.Int("companies", len(result.Companies)))

	for i := range result.Companies {
		company := &result.Companies[i]
		if err := o.store.UpsertCompany(ctx, company); err != nil {
			return err
		}
	}

	for _, company := range result.Companies {
		cancelled, err := o.cancelled(ctx, job.ID)
		if err != nil {
			return err
		}
		if cancelled {
			log.Info("cancellation observed, skipping remaining companies")
			return nil
		}
		if err := o.processCompany(ctx, log, job, company); err != nil {
			return err
		}
	}
	return nil
}

// processCompany runs contacts, research, outreach, and QA for one company.
func (o *Orchestrator) processCompany(ctx context.Context, log *zap.Logger, job *model.Job, company model.Company) error {
	clog := log.With(zap.String("company", company.Name), zap.String("domain", company.Domain))

	contacts := o.contacts.Find(ctx, company, job.Criteria)
	for i := range contacts {
		if err := o.store.UpsertContact(ctx, &contacts[i]); err != nil {
			return err
		}
	}

	var profile *model.CompanyProfile
	if o.profiler != nil {
		p, err := o.profiler.Profile(ctx, company)
		if err != nil {
			// Research failures degrade to an unprofiled company.
			clog.Warn("research failed", zap.Error(err))
		} else {
			profile = p
			if err := o.store.UpsertProfile(ctx, profile); err != nil {
				return err
			}
		}
	}

	if o.outreach == nil || len(contacts) == 0 {
		return nil
	}

	drafts := o.outreach.Generate(ctx, company, profile, contacts)
	if o.reviewer != nil {
		o.reviewer.Review(ctx, drafts)
	}
	for i := range drafts {
		if err := o.store.InsertOutreach(ctx, &drafts[i]); err != nil {
			return err
		}
	}

	clog.Info("company processed",
		zap.Int("contacts", len(contacts)),
		zap.Int("drafts", len(drafts)),
	)
	return nil
}

// cancelled re-reads job status, implementing the cooperative cancel check
// between companies.
func (o *Orchestrator) cancelled(ctx context.Context, jobID string) (bool, error) {
	job, err := o.GetJob(ctx, jobID)
	if err != nil {
		return false, err
	}
	return job.Status == model.JobStatusCancelled, nil
}

// ProcessPending runs every pending job, at most MaxConcurrentJobs at a
// time. Individual job failures are recorded on the job and do not stop the
// batch.
func (o *Orchestrator) ProcessPending(ctx context.Context) error {
	jobs, err := o.store.ListJobs(ctx, store.JobFilter{Status: model.JobStatusPending})
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	limit := o.cfg.MaxConcurrentJobs
	if limit <= 0 {
		limit = 3
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, job := range jobs {
		g.Go(func() error {
			if err := o.Process(ctx, job.ID); err != nil {
				zap.L().Error("job processing failed",
					zap.String("job_id", job.ID), zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}
