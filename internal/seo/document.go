package seo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/Bahjat/seo-insight/internal/platform/errs"
)

// Document is a parsed page. It belongs to a single analysis run.
type Document struct {
	doc     *goquery.Document
	text    string
	charset string
}

// ParseDocument decodes body using the charset declared in contentType, a
// byte-order mark or a <meta charset> tag (UTF-8 otherwise) and parses the
// result with the HTML5 algorithm. Malformed markup is recovered, not rejected.
func ParseDocument(body []byte, contentType string) (*Document, error) {
	enc, name, _ := charset.DetermineEncoding(body, contentType)

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Parse,
			Message: "Failed to decode the page content as " + name + ".",
			Cause:   err,
		}
	}

	text := string(decoded)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Parse,
			Message: "Failed to parse the HTML content.",
			Cause:   err,
		}
	}

	return &Document{doc: doc, text: text, charset: name}, nil
}

// Text returns the decoded page source, markup included.
func (d *Document) Text() string { return d.text }

// Charset returns the name of the encoding the page was decoded from.
func (d *Document) Charset() string { return d.charset }

// FindFirst returns the first tag element whose attr equals value, ignoring case.
func (d *Document) FindFirst(tag, attr, value string) (*goquery.Selection, bool) {
	sel := d.findByAttr(tag, attr, value).First()
	return sel, sel.Length() > 0
}

// FindAll returns every tag element in document order.
func (d *Document) FindAll(tag string) *goquery.Selection {
	return d.doc.Find(tag)
}

// FindAllByType returns every tag element whose type attribute equals typ.
func (d *Document) FindAllByType(tag, typ string) *goquery.Selection {
	return d.findByAttr(tag, "type", typ)
}

func (d *Document) findByAttr(tag, attr, value string) *goquery.Selection {
	return d.doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && strings.EqualFold(strings.TrimSpace(v), value)
	})
}
