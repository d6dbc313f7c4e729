// Package parse extracts structured records from static HTML documents
// using selector-driven schemas.
package parse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseError indicates the input could not be interpreted as HTML.
// Callers should treat it as "zero records for this page", not as fatal.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse html: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extract selects all container elements matching the schema in document
// order and applies every field rule to each, producing one Record per
// container. A document with zero matching containers yields an empty,
// non-error result; that is the page-exhaustion signal for pagination.
//
// A missing sub-element yields an empty-string field rather than failing
// the whole page. Scraped markup is not guaranteed uniform.
func Extract(html []byte, schema Schema) ([]Record, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var records []Record
	doc.Find(schema.Container).Each(func(_ int, container *goquery.Selection) {
		record := make(Record, 0, len(schema.Fields))
		for _, rule := range schema.Fields {
			record = append(record, Field{
				Name:  rule.Name,
				Value: extractField(container, rule),
			})
		}
		records = append(records, record)
	})

	return records, nil
}

// extractField applies a single field rule inside a container selection.
func extractField(container *goquery.Selection, rule FieldRule) string {
	sel := container
	if rule.Selector != "" {
		sel = container.Find(rule.Selector)
	}
	if sel.Length() == 0 {
		return ""
	}

	if rule.All {
		join := rule.Join
		if join == "" {
			join = ", "
		}
		var values []string
		sel.Each(func(_ int, s *goquery.Selection) {
			if v := fieldValue(s, rule); v != "" {
				values = append(values, v)
			}
		})
		return strings.Join(values, join)
	}

	return fieldValue(sel.First(), rule)
}

// fieldValue resolves one element to its text or attribute value.
func fieldValue(sel *goquery.Selection, rule FieldRule) string {
	var value string
	if rule.Attr != "" {
		value = sel.AttrOr(rule.Attr, "")
	} else if len(sel.Nodes) > 0 {
		value = nodeText(sel.Nodes[0])
	}
	value = cleanText(value)
	if rule.TrimPrefix != "" {
		value = strings.TrimPrefix(value, rule.TrimPrefix)
	}
	return value
}
