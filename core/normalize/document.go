package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/rfpdraft/core"
)

var (
	lineBreakPattern   = regexp.MustCompile(`(?i)<br\s*/?>|\n`)
	projectNamePattern = regexp.MustCompile(`(?i)Project Name[:\s]*(.*)`)
)

// SectionID derives a stable section identifier from its position.
func SectionID(index int) string {
	return fmt.Sprintf("section-%d", index)
}

// BuildDocument normalizes every raw section into a Document. Missing project
// names are detected from the section text; a zero GeneratedAt is set to now.
func BuildDocument(raws []core.RawSection, meta core.DocumentMeta, style core.DocumentStyle) *core.Document {
	doc := &core.Document{
		Meta:     meta,
		Style:    style.WithDefaults(),
		Sections: make([]core.NormalizedSection, 0, len(raws)),
	}

	for i, raw := range raws {
		title := raw.Title
		if strings.TrimSpace(title) == "" {
			title = core.DefaultSectionTitle
		}
		doc.Sections = append(doc.Sections, core.NormalizedSection{
			ID:     SectionID(i),
			Title:  title,
			Blocks: Normalize(raw.Content),
		})
	}

	if doc.Meta.ProjectName == "" {
		doc.Meta.ProjectName = DetectProjectName(doc.Sections)
	}
	if doc.Meta.GeneratedAt.IsZero() {
		doc.Meta.GeneratedAt = time.Now().UTC()
	}
	return doc
}

// DetectProjectName looks for a "Project Name: ..." line in paragraph text.
func DetectProjectName(sections []core.NormalizedSection) string {
	for _, sec := range sections {
		for _, b := range sec.Blocks {
			if b.Kind != core.BlockParagraph {
				continue
			}
			for _, line := range lineBreakPattern.Split(b.Text, -1) {
				m := projectNamePattern.FindStringSubmatch(PlainText(line))
				if m == nil {
					continue
				}
				if name := strings.TrimSpace(m[1]); name != "" {
					return name
				}
			}
		}
	}
	return ""
}

// PlainText strips tags from an inline HTML fragment and decodes entities.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Text()
}
