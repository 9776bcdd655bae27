// Package model defines the core record types shared across the pipeline.
// Collaborator responses are mapped into these types at the API boundary and
// never threaded through stages as untyped maps.
package model

import "time"

// Company is a discovered lead candidate, unique per (job, domain).
type Company struct {
	ID                  string         `json:"id" db:"id"`
	JobID               string         `json:"job_id" db:"job_id"`
	Name                string         `json:"name" db:"name"`
	Website             string         `json:"website" db:"website"`
	Domain              string         `json:"domain" db:"domain"`
	City                string         `json:"city,omitempty" db:"city"`
	State               string         `json:"state,omitempty" db:"state"`
	Location            string         `json:"location,omitempty" db:"location"`
	Attributes          map[string]any `json:"attributes,omitempty" db:"attributes"`
	DiscoveryConfidence float64        `json:"discovery_confidence" db:"discovery_confidence"`
	FitScore            float64        `json:"fit_score" db:"fit_score"`
	DiscoveryReasons    []string       `json:"discovery_reasons" db:"discovery_reasons"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}

// CompanyProfile holds qualitative research for a company, one-to-one.
// Re-research updates the row in place.
type CompanyProfile struct {
	ID             string    `json:"id" db:"id"`
	CompanyID      string    `json:"company_id" db:"company_id"`
	Summary        string    `json:"summary" db:"summary"`
	PainPoints     string    `json:"pain_points" db:"pain_points"`
	GrowthSignals  string    `json:"growth_signals" db:"growth_signals"`
	TechStack      string    `json:"tech_stack" db:"tech_stack"`
	BuyingTriggers string    `json:"buying_triggers" db:"buying_triggers"`
	Sources        []string  `json:"sources,omitempty" db:"sources"`
	Confidence     float64   `json:"confidence" db:"confidence"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
