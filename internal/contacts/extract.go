package contacts

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

// personContainerRe matches class attributes of DOM containers that usually
// wrap a single person on team pages.
var personContainerRe = regexp.MustCompile(`(?i)\b(team|member|person|staff|executive|leadership|employee|profile)`)

// titleClassRe matches class attributes that usually carry a job title.
var titleClassRe = regexp.MustCompile(`(?i)\b(title|role|position)`)

// nameClassRe matches class attributes that usually carry a person's name.
var nameClassRe = regexp.MustCompile(`(?i)\bname`)

// profileLinkRe matches hrefs pointing at a professional-network profile.
var profileLinkRe = regexp.MustCompile(`(?i)(linkedin\.com/in/|linkedin\.com/pub/)`)

var nameCaser = cases.Title(language.AmericanEnglish)

// ExtractPeople locates person-like DOM containers in a team page and pulls
// a contact candidate out of each: name, title, professional-network link,
// and mailto email. Unparseable HTML yields zero contacts.
func ExtractPeople(rawHTML, pageURL string) []model.Contact {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var contacts []model.Contact
	var walk func(n *html.Node, insideContainer bool)
	walk = func(n *html.Node, insideContainer bool) {
		isContainer := false
		if !insideContainer && n.Type == html.ElementNode {
			if cls := attrValue(n, "class"); cls != "" && personContainerRe.MatchString(cls) {
				isContainer = true
				if c, ok := contactFromContainer(n); ok {
					c.Source = "site_scrape"
					contacts = append(contacts, c)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, insideContainer || isContainer)
		}
	}
	walk(doc, false)
	return contacts
}

// contactFromContainer extracts name/title/link/email from one container.
// Containers without a recognizable name are skipped; a name derived from a
// mailto local part is used as a last resort.
func contactFromContainer(n *html.Node) (model.Contact, bool) {
	name := findName(n)
	title := findClassText(n, titleClassRe)
	profile := findProfileLink(n)
	email := findMailto(n)

	if name == "" && email != "" {
		name = nameFromEmail(email)
	}
	if name == "" {
		return model.Contact{}, false
	}

	first, last := splitName(name)
	return model.Contact{
		FirstName:  first,
		LastName:   last,
		Title:      title,
		ProfileURL: profile,
		Email:      email,
	}, true
}

// findName returns the first heading-like element's text, falling back to
// the first name-classed element.
func findName(n *html.Node) string {
	var heading, classed string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if heading != "" {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3", "h4":
				if t := nodeText(n); t != "" {
					heading = t
					return
				}
			}
			if classed == "" {
				if cls := attrValue(n, "class"); cls != "" && nameClassRe.MatchString(cls) {
					classed = nodeText(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	if heading != "" {
		return heading
	}
	return classed
}

func findClassText(n *html.Node, re *regexp.Regexp) string {
	var found string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode {
			if cls := attrValue(n, "class"); cls != "" && re.MatchString(cls) {
				found = nodeText(n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func findProfileLink(n *html.Node) string {
	var found string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attrValue(n, "href"); profileLinkRe.MatchString(href) {
				found = href
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func findMailto(n *html.Node) string {
	var found string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			if strings.HasPrefix(strings.ToLower(href), "mailto:") {
				found = strings.TrimPrefix(href, "mailto:")
				if i := strings.IndexByte(found, '?'); i >= 0 {
					found = found[:i]
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// ExtractByProfileLinks is the secondary strategy: scan the whole page for
// professional-network links and search each link's ancestor containers for
// a name/title pair near it.
func ExtractByProfileLinks(rawHTML, pageURL string) []model.Contact {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var contacts []model.Contact
	var walk func(n *html.Node, ancestors []*html.Node)
	walk = func(n *html.Node, ancestors []*html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attrValue(n, "href"); profileLinkRe.MatchString(href) {
				// Climb up to three ancestor containers looking for a name.
				depth := len(ancestors)
				for i := depth - 1; i >= 0 && i >= depth-3; i-- {
					name := findName(ancestors[i])
					if name == "" {
						continue
					}
					first, last := splitName(name)
					contacts = append(contacts, model.Contact{
						FirstName:  first,
						LastName:   last,
						Title:      findClassText(ancestors[i], titleClassRe),
						ProfileURL: href,
						Email:      findMailto(ancestors[i]),
						Source:     "site_scrape",
					})
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, append(ancestors, n))
		}
	}
	walk(doc, nil)
	return contacts
}

// splitName splits a display name into first and last parts.
func splitName(name string) (first, last string) {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// nameFromEmail derives a display-name guess from a mailto local part like
// "jane.smith@example.com". The guess still has to pass the person-likeness
// filter downstream.
func nameFromEmail(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return ""
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	if strings.ContainsAny(local, "0123456789") {
		return ""
	}
	return nameCaser.String(strings.ToLower(strings.TrimSpace(local)))
}
