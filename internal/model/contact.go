package model

import (
	"strings"
	"time"
)

// Seniority is the coarse classification of a contact's organizational rank.
type Seniority string

const (
	SeniorityCLevel     Seniority = "c_level"
	SeniorityVP         Seniority = "vp"
	SeniorityDirector   Seniority = "director"
	SeniorityManager    Seniority = "manager"
	SeniorityIndividual Seniority = "individual"
)

// Contact is a person identified at a company. Unique within a company by
// the composite key returned from Key.
type Contact struct {
	ID              string    `json:"id" db:"id"`
	CompanyID       string    `json:"company_id" db:"company_id"`
	FirstName       string    `json:"first_name" db:"first_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	Title           string    `json:"title" db:"title"`
	Seniority       Seniority `json:"seniority" db:"seniority"`
	Email           string    `json:"email,omitempty" db:"email"`
	Phone           string    `json:"phone,omitempty" db:"phone"`
	ProfileURL      string    `json:"profile_url,omitempty" db:"profile_url"`
	FitScore        float64   `json:"fit_score" db:"fit_score"`
	EmailConfidence float64   `json:"email_confidence" db:"email_confidence"`
	Verification    string    `json:"verification,omitempty" db:"verification"`
	Source          string    `json:"source" db:"source"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Key returns the composite dedup key (normalized name, normalized title,
// profile link, email). Two scraped entries with equal keys are the same
// person.
func (c Contact) Key() string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(c.FullName())),
		strings.ToLower(strings.TrimSpace(c.Title)),
		strings.ToLower(strings.TrimSpace(c.ProfileURL)),
		strings.ToLower(strings.TrimSpace(c.Email)),
	}
	return strings.Join(parts, "|")
}
