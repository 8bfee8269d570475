package legalrights

import (
	"regexp"
	"strings"
	"time"
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)(?:\s+#+)?\s*$`)
	fenceRe   = regexp.MustCompile("^\\s*(```|~~~)")
)

// ParseMarkdown structures a markdown page into a Document.
//
// Headings H1 through H6 open sections nested by level: a heading becomes a
// child of the nearest preceding heading with a lower level. Other lines
// form the content of the current section, with paragraphs joined by a
// blank line. Headings inside fenced code blocks are treated as content.
// Text before the first heading goes to a leading 正文 section, and a page
// without any heading becomes a single 正文 section.
func ParseMarkdown(url, title, markdown string, scrapedAt time.Time) *Document {
	doc := &Document{
		URL:       url,
		Title:     strings.TrimSpace(title),
		ScrapedAt: scrapedAt,
		Sections:  NewSectionTree(),
	}

	type open struct {
		id    SectionID
		level int
	}

	var (
		stack   []open
		current = NoSection
		para    []string
		content = make(map[SectionID][]string)
		inFence bool
		intro   []string
	)

	flush := func() {
		if len(para) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(para, "\n"))
		para = para[:0]
		if text == "" {
			return
		}
		if current == NoSection {
			intro = append(intro, text)
			return
		}
		content[current] = append(content[current], text)
	}

	for _, line := range strings.Split(markdown, "\n") {
		if fenceRe.MatchString(line) {
			inFence = !inFence
			para = append(para, line)
			continue
		}
		if !inFence {
			if m := headingRe.FindStringSubmatch(line); m != nil {
				heading := strings.TrimSpace(m[2])
				if heading == "" {
					continue
				}
				flush()
				level := len(m[1])
				for len(stack) > 0 && stack[len(stack)-1].level >= level {
					stack = stack[:len(stack)-1]
				}
				parent := NoSection
				if len(stack) > 0 {
					parent = stack[len(stack)-1].id
				}
				current = doc.Sections.Add(parent, heading, level, "")
				stack = append(stack, open{id: current, level: level})
				continue
			}
			if strings.TrimSpace(line) == "" {
				flush()
				continue
			}
		}
		para = append(para, line)
	}
	flush()

	for id, parts := range content {
		doc.Sections.Nodes[id].Content = strings.Join(parts, "\n\n")
	}

	if len(intro) > 0 {
		body := strings.Join(intro, "\n\n")
		if doc.Sections.Len() == 0 {
			doc.Sections.Add(NoSection, BodySectionTitle, 1, body)
		} else {
			id := doc.Sections.Add(NoSection, BodySectionTitle, 1, body)
			// Move the intro section in front of the existing roots.
			roots := doc.Sections.Roots[:len(doc.Sections.Roots)-1]
			doc.Sections.Roots = append([]SectionID{id}, roots...)
		}
	}

	if doc.Title == "" {
		doc.Title = firstHeading(doc.Sections)
	}

	return doc
}

// firstHeading returns the title of the first H1 section, if any.
func firstHeading(tree *SectionTree) string {
	for _, node := range tree.Nodes {
		if node.Level == 1 && node.Title != BodySectionTitle {
			return node.Title
		}
	}
	return ""
}
