// Package adapters binds storefront-specific markup knowledge (selectors,
// extraction strategy order, color activation style) to the brand-agnostic
// inventory pipeline. One Profile per storefront family replaces the
// per-brand copy-paste the scraping scripts grew out of.
package adapters

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"golfwear-extractor/internal/types"
)

// ParseHTML parses an HTML snapshot into a goquery document.
func ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractText extracts trimmed text from the first element matching the
// selector.
func ExtractText(doc *goquery.Document, selector string) (string, error) {
	element := doc.Find(selector)
	if element.Length() == 0 {
		return "", fmt.Errorf("element not found with selector: %s", selector)
	}
	return strings.TrimSpace(element.First().Text()), nil
}

// ExtractTextList extracts trimmed text from every element matching the
// selector.
func ExtractTextList(doc *goquery.Document, selector string) []string {
	var texts []string
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

// ExtractAttribute extracts an attribute value from the first element
// matching the selector.
func ExtractAttribute(doc *goquery.Document, selector string, attribute string) (string, error) {
	element := doc.Find(selector)
	if element.Length() == 0 {
		return "", fmt.Errorf("element not found with selector: %s", selector)
	}
	value, exists := element.First().Attr(attribute)
	if !exists {
		return "", fmt.Errorf("attribute %s not found on element %s", attribute, selector)
	}
	return value, nil
}

// ExtractAttributeList collects an attribute from every element matching the
// selector, skipping elements without it.
func ExtractAttributeList(doc *goquery.Document, selector string, attribute string) []string {
	var values []string
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		if v, ok := s.Attr(attribute); ok && strings.TrimSpace(v) != "" {
			values = append(values, strings.TrimSpace(v))
		}
	})
	return values
}

// ExtractSizeChart extracts a size-chart table from the document. It supports
// the header layouts these storefronts use: thead rows or a first row of
// th/td cells.
func ExtractSizeChart(doc *goquery.Document, tableSelector string) (*types.SizeChart, error) {
	table := doc.Find(tableSelector)
	if table.Length() == 0 {
		return nil, fmt.Errorf("size chart not found with selector: %s", tableSelector)
	}

	var headers []string
	table.Find("thead tr th, tr:first-child th, tr:first-child td").Each(func(i int, s *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(s.Text()))
	})
	if len(headers) == 0 {
		return nil, fmt.Errorf("no headers found in size chart")
	}

	var rows []map[string]string
	table.Find("tbody tr, tr:not(:first-child)").Each(func(i int, s *goquery.Selection) {
		row := make(map[string]string)
		s.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(cell.Text())
			}
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows found in size chart")
	}

	return &types.SizeChart{Headers: headers, Rows: rows}, nil
}

// ChartText flattens a size chart into free text for the fallback size-token
// scan.
func ChartText(chart *types.SizeChart) string {
	if chart == nil {
		return ""
	}
	var sb strings.Builder
	for _, h := range chart.Headers {
		sb.WriteString(h)
		sb.WriteByte(' ')
	}
	for _, row := range chart.Rows {
		for _, h := range chart.Headers {
			sb.WriteString(row[h])
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// RemoveDuplicateURLs removes duplicate URLs while preserving order.
func RemoveDuplicateURLs(urls []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}
	return unique
}

// AbsoluteURL resolves href values against the storefront base URL.
func AbsoluteURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(baseURL, "/") + href
	default:
		return strings.TrimSuffix(baseURL, "/") + "/" + href
	}
}
