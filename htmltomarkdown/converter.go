// Package htmltomarkdown converts extracted law pages to Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/natmusissunny/legalrights"
)

// Ensure Converter implements legalrights.Converter at compile time.
var _ legalrights.Converter = (*Converter)(nil)

// blankLines matches runs of three or more newlines.
var blankLines = regexp.MustCompile(`\n{3,}`)

// Converter wraps html-to-markdown. The commonmark plugin writes ATX
// headings, which the section parser relies on.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
//
// Chinese pages indent paragraphs with ideographic or non-breaking spaces.
// That indentation is stripped outside fenced code blocks; plain space
// indentation, which nests lists, is kept.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", legalrights.Errorf(legalrights.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	lines := strings.Split(md, "\n")
	var fenced bool
	for i, line := range lines {
		if isFence(line) {
			fenced = !fenced
			continue
		}
		if !fenced {
			lines[i] = stripIndent(line)
		}
	}
	md = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(md), nil
}

// isFence reports whether line opens or closes a fenced code block.
func isFence(line string) bool {
	line = strings.TrimLeft(line, " ")
	return strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~")
}

// wideSpace matches the paragraph indentation of Chinese pages.
const wideSpace = "\u3000\u00a0"

// stripIndent removes a leading indentation run that contains ideographic
// or non-breaking spaces, keeping the ASCII spaces before it, and trims
// trailing whitespace.
func stripIndent(line string) string {
	line = strings.TrimRight(line, " \t"+wideSpace)
	rest := strings.TrimLeft(line, " "+wideSpace)
	lead := line[:len(line)-len(rest)]
	if !strings.ContainsAny(lead, wideSpace) {
		return line
	}
	return lead[:len(lead)-len(strings.TrimLeft(lead, " "))] + rest
}
