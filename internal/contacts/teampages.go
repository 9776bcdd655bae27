package contacts

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// teamPageKeywords score a link as likely pointing at a team or leadership
// page when its path or anchor text contains them.
var teamPageKeywords = []string{
	"team", "leadership", "about-us", "about", "people", "management",
	"executives", "board", "investment-team", "our-team", "staff",
	"who-we-are", "partners", "principals",
}

// fallbackPaths are tried when no homepage link matches.
var fallbackPaths = []string{
	"/team", "/leadership", "/about-us", "/about", "/people", "/management",
}

const maxTeamPageCandidates = 5

// FindTeamPages parses homepage hyperlinks and returns up to five candidate
// team-page URLs ranked by keyword score, falling back to common URL
// patterns when nothing matches.
func FindTeamPages(homepageHTML, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	type scoredLink struct {
		url   string
		score int
	}

	var links []scoredLink
	seen := make(map[string]bool)

	for _, a := range parseAnchors(homepageHTML) {
		resolved := resolveURL(base, a.href)
		if resolved == "" || seen[resolved] {
			continue
		}
		// Only same-site links are candidates.
		ru, err := url.Parse(resolved)
		if err != nil || !sameHost(ru.Hostname(), base.Hostname()) {
			continue
		}

		score := scoreTeamLink(ru.Path, a.text)
		if score == 0 {
			continue
		}
		seen[resolved] = true
		links = append(links, scoredLink{url: resolved, score: score})
	}

	sort.SliceStable(links, func(i, j int) bool { return links[i].score > links[j].score })

	var out []string
	for _, l := range links {
		if len(out) >= maxTeamPageCandidates {
			break
		}
		out = append(out, l.url)
	}

	if len(out) == 0 {
		for _, p := range fallbackPaths {
			out = append(out, base.Scheme+"://"+base.Host+p)
		}
		out = out[:maxTeamPageCandidates]
	}

	return out
}

func scoreTeamLink(path, anchorText string) int {
	path = strings.ToLower(path)
	text := strings.ToLower(anchorText)

	score := 0
	for _, kw := range teamPageKeywords {
		if strings.Contains(path, kw) {
			score += 2
		}
		if strings.Contains(text, kw) {
			score++
		}
	}
	return score
}

type anchor struct {
	href string
	text string
}

// parseAnchors extracts every hyperlink and its anchor text from HTML.
// Parse errors yield whatever was parsed before the error.
func parseAnchors(rawHTML string) []anchor {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var anchors []anchor
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attrValue(n, "href"); href != "" {
				anchors = append(anchors, anchor{href: href, text: nodeText(n)})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return anchors
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// nodeText returns the concatenated, whitespace-collapsed text content of a
// node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func sameHost(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	return a == b
}
