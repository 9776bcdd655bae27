package contacts

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

// nameTokenRe matches one plausible name token: letters plus apostrophes,
// hyphens, and trailing periods (initials like "J.").
var nameTokenRe = regexp.MustCompile(`^[A-Za-z][A-Za-z'\-]*\.?$`)

// organizationalWords disqualify a "name" that is really a page section or
// department label.
var organizationalWords = map[string]bool{
	"team": true, "teams": true, "about": true, "our": true,
	"directory": true, "leadership": true, "management": true,
	"technology": true, "marketing": true, "sales": true, "editor": true,
	"editorial": true, "contact": true, "careers": true, "investors": true,
	"investment": true, "company": true, "group": true, "partners": true,
	"services": true, "solutions": true, "board": true, "advisory": true,
	"department": true, "office": true, "staff": true, "people": true,
}

// Filter reduces raw extracted candidates to the deduplicated contact list:
// person-like names only, at least one actionable channel (email or profile
// link), and a title matching a token of targetRoles when any are given.
// Duplicates collapse on the composite contact key; the first occurrence
// wins, with later duplicates backfilling missing email/phone/profile.
func Filter(raw []model.Contact, targetRoles []string) []model.Contact {
	roles := normalizeRoles(targetRoles)

	var out []model.Contact
	index := make(map[string]int)

	for _, c := range raw {
		if !isPersonLike(c.FullName()) {
			continue
		}
		if c.Email == "" && c.ProfileURL == "" {
			continue
		}
		if len(roles) > 0 && !matchesRole(c.Title, roles) {
			continue
		}

		c.Phone = normalizePhone(c.Phone)
		c.Email = strings.ToLower(strings.TrimSpace(c.Email))

		key := c.Key()
		if i, ok := index[key]; ok {
			merge(&out[i], c)
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

// isPersonLike accepts names of at least two plausible tokens that do not
// read as organizational labels or shouted headings.
func isPersonLike(name string) bool {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) < 2 || len(fields) > 5 {
		return false
	}
	for _, f := range fields {
		if !nameTokenRe.MatchString(f) {
			return false
		}
		if organizationalWords[strings.ToLower(f)] {
			return false
		}
	}
	joined := strings.Join(fields, " ")
	if joined == strings.ToUpper(joined) || joined == strings.ToLower(joined) {
		return false
	}
	return true
}

// normalizeRoles lowercases the target roles and splits each into its
// whitespace tokens, so a phrase like "Vice President" matches titles that
// carry either word.
func normalizeRoles(roles []string) []string {
	var out []string
	for _, r := range roles {
		out = append(out, strings.Fields(strings.ToLower(r))...)
	}
	return out
}

func matchesRole(title string, roleTokens []string) bool {
	t := strings.ToLower(title)
	for _, tok := range roleTokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

// normalizePhone formats a raw phone string to E.164, defaulting to a US
// region for national-format numbers. Unparseable input is dropped.
func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// merge backfills missing channel fields on the kept contact from a
// duplicate sighting.
func merge(dst *model.Contact, src model.Contact) {
	if dst.Email == "" {
		dst.Email = src.Email
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if dst.ProfileURL == "" {
		dst.ProfileURL = src.ProfileURL
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.EmailConfidence == 0 && src.EmailConfidence > 0 {
		dst.EmailConfidence = src.EmailConfidence
		dst.Verification = src.Verification
	}
}
