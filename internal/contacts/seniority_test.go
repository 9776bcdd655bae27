package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

func TestInferSeniority(t *testing.T) {
	tests := []struct {
		title string
		want  model.Seniority
	}{
		{"Chief Executive Officer", model.SeniorityCLevel},
		{"CEO", model.SeniorityCLevel},
		{"Co-Founder", model.SeniorityCLevel},
		{"President of Acquisitions", model.SeniorityCLevel},
		{"VP of Capital Markets", model.SeniorityVP},
		{"Senior Vice President", model.SeniorityVP},
		{"Executive Assistant", model.SeniorityVP},
		{"Managing Partner", model.SeniorityVP},
		{"Managing Director", model.SeniorityDirector},
		{"Director of Development", model.SeniorityDirector},
		{"Asset Manager", model.SeniorityManager},
		{"Senior Analyst", model.SeniorityIndividual},
		{"", model.SeniorityIndividual},
		{"  ", model.SeniorityIndividual},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferSeniority(tt.title), tt.title)
	}
}
