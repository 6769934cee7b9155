package router

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	boxerrors "github.com/alvmarrod/boxmon/internal/errors"
)

var (
	preMatcher   = cascadia.MustCompile("pre")
	tbodyMatcher = cascadia.MustCompile("tbody")
	rowMatcher   = cascadia.MustCompile("tr")
	cellMatcher  = cascadia.MustCompile("td")
)

// Document is a parsed status page. Parsing never fails on broken markup;
// the accessors are strict and return a PARSE_ERROR naming the page and the
// element that is missing.
type Document struct {
	Page string
	doc  *goquery.Document
}

// ParseDocument builds a best-effort tree from body. page is only used in
// error messages.
func ParseDocument(page string, body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, boxerrors.NewParseError(page, "document", err)
	}
	return &Document{Page: page, doc: doc}, nil
}

// Table returns the table element whose id attribute is id
func (d *Document) Table(id string) (*goquery.Selection, error) {
	m, err := cascadia.Compile(fmt.Sprintf("table[id=%q]", id))
	if err != nil {
		return nil, boxerrors.NewParseError(d.Page, "table "+id, err)
	}

	table := d.doc.FindMatcher(m).First()
	if table.Length() == 0 {
		return nil, boxerrors.NewParseError(d.Page, "table "+id, fmt.Errorf("no such table"))
	}
	return table, nil
}

// Rows returns the rows of the table's first tbody. HTML parsing moves bare
// rows into an implicit tbody, so header rows in thead are excluded either way.
func (d *Document) Rows(id string) (*goquery.Selection, error) {
	table, err := d.Table(id)
	if err != nil {
		return nil, err
	}
	return table.ChildrenMatcher(tbodyMatcher).First().ChildrenMatcher(rowMatcher), nil
}

// Row returns the index-th body row of table id
func (d *Document) Row(id string, index int) (*goquery.Selection, error) {
	rows, err := d.Rows(id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= rows.Length() {
		return nil, boxerrors.NewParseError(d.Page, fmt.Sprintf("table %s row %d", id, index),
			fmt.Errorf("table has %d rows", rows.Length()))
	}
	return rows.Eq(index), nil
}

// Cell returns the text of the index-th data cell of row, with <br> rendered
// as a newline. field names the value in error messages.
func (d *Document) Cell(row *goquery.Selection, index int, field string) (string, error) {
	cells := row.ChildrenMatcher(cellMatcher)
	if index < 0 || index >= cells.Length() {
		return "", boxerrors.NewParseError(d.Page, field,
			fmt.Errorf("row has %d cells, want cell %d", cells.Length(), index))
	}
	return CellText(cells.Eq(index)), nil
}

// Pre returns the text of every <pre> block in document order
func (d *Document) Pre() []string {
	var blocks []string
	d.doc.FindMatcher(preMatcher).Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, s.Text())
	})
	return blocks
}

// CellText renders the text content of sel, turning <br> into newlines so
// multi-line cells keep their line structure
func CellText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}
