package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

func sampleReport() *Report {
	return &Report{
		Job: model.Job{ID: "job-1", Status: model.JobStatusCompleted},
		Leads: []Lead{
			{
				Company: model.Company{
					Name:             "Sunstone Capital",
					Domain:           "sunstonecp.com",
					Website:          "https://sunstonecp.com",
					FitScore:         9,
					DiscoveryReasons: []string{"capital-partner language", "target-geography presence"},
				},
				Contacts: []model.Contact{
					{FirstName: "Jane", LastName: "Smith", Title: "Partner",
						Seniority: model.SeniorityVP, Email: "jane@sunstonecp.com",
						EmailConfidence: 0.92, Verification: "valid", Source: "site_scrape"},
					{FirstName: "Bob", LastName: "Jones", Title: "Director",
						Seniority: model.SeniorityDirector, ProfileURL: "https://linkedin.com/in/bobjones"},
				},
			},
			{
				Company: model.Company{Name: "Quiet Holdings", Domain: "quiet.example.com", FitScore: 6},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header + two contact rows + one contactless company row.
	require.Len(t, records, 4)
	assert.Equal(t, csvHeader, records[0])

	jane := records[1]
	assert.Equal(t, "Sunstone Capital", jane[0])
	assert.Equal(t, "sunstonecp.com", jane[1])
	assert.Equal(t, "9.0", jane[3])
	assert.Equal(t, "capital-partner language; target-geography presence", jane[4])
	assert.Equal(t, "Jane", jane[5])
	assert.Equal(t, "vp", jane[8])
	assert.Equal(t, "0.92", jane[12])

	// Company without contacts keeps its row with empty contact columns.
	quiet := records[3]
	assert.Equal(t, "Quiet Holdings", quiet[0])
	for _, col := range quiet[5:] {
		assert.Empty(t, col)
	}
}

func TestCSVRows_EmptyReport(t *testing.T) {
	rows := csvRows(&Report{Job: model.Job{ID: "job-1"}})
	assert.Empty(t, rows)
}
