// Package goquery cleans scraped HTML and extracts titles using CSS
// selectors.
package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/natmusissunny/legalrights"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements legalrights.Cleaner at compile time.
var _ legalrights.Cleaner = (*Cleaner)(nil)

// noiseTags never hold article text.
var noiseTags = []string{
	"script", "style", "meta", "link", "noscript",
	"iframe", "object", "embed", "applet",
	"nav", "header", "footer", "aside",
	"form", "input", "button", "select", "textarea",
}

// noiseClasses and noiseIDs mark page furniture. A class or id matches
// when it, or one of its '-' or '_' separated parts, equals an entry.
var (
	noiseClasses = []string{
		"ad", "advertisement", "banner", "sidebar",
		"menu", "navigation", "nav", "footer", "header",
		"comment", "social", "share", "related",
	}
	noiseIDs = []string{
		"ad", "ads", "advertisement", "sidebar",
		"menu", "navigation", "footer", "header",
		"comment", "comments",
	}
)

// voidTags are kept even though they have no text.
var voidTags = []string{"br", "hr", "img", "html", "head", "body"}

// Cleaner strips scripts, navigation, advertisements and empty elements.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns html without comments, noise elements and empty elements.
func (c *Cleaner) Clean(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return "", legalrights.Errorf(legalrights.EINVALID, "failed to parse HTML: %v", err)
	}

	removeComments(doc.Nodes[0])
	doc.Find(strings.Join(noiseTags, ", ")).Remove()
	doc.Find("[class], [id]").FilterFunction(isNoise).Remove()
	removeEmpty(doc)

	return doc.Html()
}

func removeComments(n *html.Node) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			n.RemoveChild(child)
		} else {
			removeComments(child)
		}
		child = next
	}
}

func isNoise(_ int, sel *goquery.Selection) bool {
	if class, ok := sel.Attr("class"); ok {
		for _, name := range strings.Fields(class) {
			if matchesAny(name, noiseClasses) {
				return true
			}
		}
	}
	if id, ok := sel.Attr("id"); ok && matchesAny(id, noiseIDs) {
		return true
	}
	return false
}

func matchesAny(name string, words []string) bool {
	name = strings.ToLower(name)
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for _, w := range words {
		if name == w || slices.Contains(parts, w) {
			return true
		}
	}
	return false
}

// removeEmpty removes elements without text or element children until none
// remain, so wrappers emptied by a removal are removed too.
func removeEmpty(doc *goquery.Document) {
	for {
		empty := doc.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			if slices.Contains(voidTags, goquery.NodeName(sel)) {
				return false
			}
			return sel.Children().Length() == 0 && strings.TrimSpace(sel.Text()) == ""
		})
		if empty.Length() == 0 {
			return
		}
		empty.Remove()
	}
}

// Title returns the first non-empty of the h1 text, the title element
// and the og:title meta property, or "" if none is present.
func (c *Cleaner) Title(source string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return ""
	}

	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		return strings.TrimSpace(t)
	}
	return ""
}
