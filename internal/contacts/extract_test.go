package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamPageHTML = `<html><body>
<div class="grid">
  <div class="team-member">
    <h3>Jane Smith</h3>
    <p class="job-title">Managing Partner</p>
    <a href="https://www.linkedin.com/in/janesmith">LinkedIn</a>
    <a href="mailto:jane.smith@acme.com?subject=Hello">Email</a>
  </div>
  <div class="team-member">
    <span class="member-name">Bob Jones</span>
    <span class="role">Director of Development</span>
  </div>
  <div class="team-member">
    <a href="mailto:ann.lee@acme.com">Contact</a>
  </div>
</div>
</body></html>`

func TestExtractPeople(t *testing.T) {
	got := ExtractPeople(teamPageHTML, "https://acme.com/team")

	require.Len(t, got, 3)

	assert.Equal(t, "Jane", got[0].FirstName)
	assert.Equal(t, "Smith", got[0].LastName)
	assert.Equal(t, "Managing Partner", got[0].Title)
	assert.Equal(t, "https://www.linkedin.com/in/janesmith", got[0].ProfileURL)
	assert.Equal(t, "jane.smith@acme.com", got[0].Email)
	assert.Equal(t, "site_scrape", got[0].Source)

	assert.Equal(t, "Bob", got[1].FirstName)
	assert.Equal(t, "Jones", got[1].LastName)
	assert.Equal(t, "Director of Development", got[1].Title)

	// Name recovered from the mailto local part.
	assert.Equal(t, "Ann", got[2].FirstName)
	assert.Equal(t, "Lee", got[2].LastName)
}

func TestExtractPeople_NestedContainersNotDoubleCounted(t *testing.T) {
	page := `<div class="leadership">
		<div class="person-card"><h3>Jane Smith</h3></div>
	</div>`

	got := ExtractPeople(page, "https://acme.com/team")
	assert.Len(t, got, 1)
}

func TestExtractPeople_EmptyPage(t *testing.T) {
	assert.Empty(t, ExtractPeople("<html><body><p>hello</p></body></html>", ""))
	assert.Empty(t, ExtractPeople("", ""))
}

func TestExtractByProfileLinks(t *testing.T) {
	page := `<html><body>
	<ul>
	  <li><h4>Jane Smith</h4><span class="title">Partner</span>
	      <a href="https://linkedin.com/in/janesmith">profile</a></li>
	  <li><a href="https://linkedin.com/company/acme">company page</a></li>
	</ul>
	</body></html>`

	got := ExtractByProfileLinks(page, "https://acme.com")

	require.Len(t, got, 1)
	assert.Equal(t, "Jane", got[0].FirstName)
	assert.Equal(t, "Smith", got[0].LastName)
	assert.Equal(t, "Partner", got[0].Title)
	assert.Equal(t, "https://linkedin.com/in/janesmith", got[0].ProfileURL)
}

func TestNameFromEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"jane.smith@acme.com", "Jane Smith"},
		{"bob_jones@acme.com", "Bob Jones"},
		{"info2024@acme.com", ""},
		{"not-an-email", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nameFromEmail(tt.in), tt.in)
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("J. Robert O'Brien")
	assert.Equal(t, "J.", first)
	assert.Equal(t, "Robert O'Brien", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}
