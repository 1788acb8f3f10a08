package seo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/seo-insight/internal/model"
)

const ldJSONType = "application/ld+json"

// ExtractSignals pulls the on-page SEO signals out of doc. Links are resolved
// against pageURL and classified by scheme and host.
func ExtractSignals(doc *Document, pageURL *url.URL) model.SignalSet {
	internal, external := classifyLinks(doc, pageURL)

	return model.SignalSet{
		Title:           extractTitle(doc),
		MetaDescription: metaContent(doc, "description"),
		RobotsContent:   metaContent(doc, "robots"),
		Headings:        countHeadings(doc),
		MobileFriendly:  hasMeta(doc, "viewport"),
		StructuredData:  extractStructuredData(doc),
		InternalLinks:   internal,
		ExternalLinks:   external,
	}
}

// extractTitle returns the text of the first <title> as written, whitespace
// included. The title length rule is measured on this raw value.
func extractTitle(doc *Document) *string {
	sel := doc.FindAll("title").First()
	if sel.Length() == 0 {
		return nil
	}
	title := sel.Text()
	return &title
}

// metaContent returns the content attribute of <meta name=...>. A tag
// without a content attribute counts as absent.
func metaContent(doc *Document, name string) *string {
	sel, ok := doc.FindFirst("meta", "name", name)
	if !ok {
		return nil
	}
	content, ok := sel.Attr("content")
	if !ok {
		return nil
	}
	return &content
}

func hasMeta(doc *Document, name string) bool {
	_, ok := doc.FindFirst("meta", "name", name)
	return ok
}

func countHeadings(doc *Document) map[string]int {
	headings := make(map[string]int, 6)
	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		headings[tag] = doc.FindAll(tag).Length()
	}
	return headings
}

// extractStructuredData decodes every JSON-LD block in document order.
// Blocks that are empty or not valid JSON are skipped.
func extractStructuredData(doc *Document) []any {
	blocks := make([]any, 0)
	doc.FindAllByType("script", ldJSONType).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return
		}
		blocks = append(blocks, v)
	})
	return blocks
}

// classifyLinks resolves every <a href> against pageURL. Order and
// duplicates are kept. Hrefs that do not parse as URLs are skipped.
func classifyLinks(doc *Document, pageURL *url.URL) (internal, external []string) {
	internal = make([]string, 0)
	external = make([]string, 0)

	doc.FindAll("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		resolved := pageURL.ResolveReference(ref)
		if sameOrigin(resolved, pageURL) {
			internal = append(internal, resolved.String())
		} else {
			external = append(external, resolved.String())
		}
	})

	return internal, external
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}
