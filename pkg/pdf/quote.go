// Package pdf renders quote documents with maroto.
package pdf

import (
	"errors"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ErrEmptyDocument is returned when a quote has no number to print.
var ErrEmptyDocument = errors.New("pdf: quote number is required")

// Company is the issuer block printed at the top of a quote.
type Company struct {
	Name        string
	Slogan      string
	Description string
	Address     string
	City        string
	Country     string
	Phone       string
	Email       string
	Website     string
	TaxID       string
}

// Party is the client a quote is addressed to.
type Party struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Address string
}

// Line is one already formatted line item.
type Line struct {
	Service     string
	Description string
	Hours       string
	Rate        string
	Subtotal    string
}

// QuoteDocument is the formatted content of one quote. All amounts arrive as
// display strings; the renderer does no arithmetic.
type QuoteDocument struct {
	// Company is optional. A nil Company prints the quote without issuer details.
	Company     *Company
	Number      string
	IssueDate   string
	DueDate     string
	Status      string
	PaymentMode string
	Client      Party
	Lines       []Line

	Subtotal       string
	DiscountLabel  string
	DiscountAmount string
	TaxLabel       string
	TaxAmount      string
	Total          string

	Notes string
	Terms string
}

var (
	gray      = &props.Color{Red: 110, Green: 110, Blue: 110}
	small     = props.Text{Size: 8, Color: gray}
	cell      = props.Text{Size: 9}
	cellRight = props.Text{Size: 9, Align: align.Right}
	head      = props.Text{Size: 9, Style: fontstyle.Bold}
	headRight = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
)

// RenderQuote returns the quote as PDF bytes.
func RenderQuote(doc QuoteDocument) ([]byte, error) {
	if doc.Number == "" {
		return nil, ErrEmptyDocument
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	if doc.Company != nil {
		addCompany(m, doc.Company)
	}
	addHeader(m, doc)
	addClient(m, doc.Client)
	addLines(m, doc.Lines)
	addTotals(m, doc)
	addParagraph(m, "Notes", doc.Notes)
	addParagraph(m, "Terms and conditions", doc.Terms)

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}

func addCompany(m core.Maroto, c *Company) {
	m.AddRow(10,
		text.NewCol(8, c.Name, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(4, c.TaxID, props.Text{Size: 9, Align: align.Right, Top: 2}),
	)
	if c.Slogan != "" {
		m.AddRow(5, text.NewCol(12, c.Slogan, props.Text{Size: 9, Style: fontstyle.Italic, Color: gray}))
	}
	if c.Description != "" {
		m.AddRow(rowsFor(c.Description, 110)*4, text.NewCol(12, c.Description, small))
	}

	address := joinNonEmpty(", ", c.Address, c.City, c.Country)
	contact := joinNonEmpty("  |  ", c.Phone, c.Email, c.Website)
	m.AddRow(10,
		col.New(12).Add(
			text.New(address, small),
			text.New(contact, props.Text{Size: 8, Color: gray, Top: 4}),
		),
	)
	m.AddRow(3, line.NewCol(12))
}

func addHeader(m core.Maroto, doc QuoteDocument) {
	m.AddRow(14,
		text.NewCol(6, "Quote", props.Text{Size: 20, Style: fontstyle.Bold, Top: 3}),
		text.NewCol(6, doc.Number, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Top: 5}),
	)
	m.AddRow(18,
		col.New(6).Add(
			text.New("Issued: "+doc.IssueDate, cell),
			text.New("Valid until: "+doc.DueDate, props.Text{Size: 9, Top: 5}),
		),
		col.New(6).Add(
			text.New("Status: "+doc.Status, cellRight),
			text.New("Payment: "+doc.PaymentMode, props.Text{Size: 9, Align: align.Right, Top: 5}),
		),
	)
}

func addClient(m core.Maroto, p Party) {
	m.AddRow(7, text.NewCol(12, "Prepared for", props.Text{Size: 10, Style: fontstyle.Bold}))

	name := p.Name
	if p.Company != "" {
		name = p.Company + " (" + p.Name + ")"
	}
	m.AddRow(22,
		col.New(12).Add(
			text.New(name, cell),
			text.New(joinNonEmpty("  |  ", p.Email, p.Phone), props.Text{Size: 9, Top: 5}),
			text.New(p.Address, props.Text{Size: 9, Top: 10}),
		),
	)
}

func addLines(m core.Maroto, lines []Line) {
	m.AddRow(8,
		text.NewCol(3, "Service", head),
		text.NewCol(4, "Description", head),
		text.NewCol(1, "Hours", headRight),
		text.NewCol(2, "Rate", headRight),
		text.NewCol(2, "Subtotal", headRight),
	)
	m.AddRow(2, line.NewCol(12))

	if len(lines) == 0 {
		m.AddRow(8, text.NewCol(12, "No line items.", props.Text{Size: 9, Style: fontstyle.Italic, Color: gray}))
		return
	}

	for _, l := range lines {
		h := rowsFor(l.Description, 40) * 5
		m.AddRow(h,
			text.NewCol(3, l.Service, cell),
			text.NewCol(4, l.Description, cell),
			text.NewCol(1, l.Hours, cellRight),
			text.NewCol(2, l.Rate, cellRight),
			text.NewCol(2, l.Subtotal, cellRight),
		)
	}
	m.AddRow(2, line.NewCol(12))
}

func addTotals(m core.Maroto, doc QuoteDocument) {
	total := func(label, value string, bold bool) {
		l, v := cell, cellRight
		if bold {
			l, v = head, headRight
		}
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, label, l),
			text.NewCol(2, value, v),
		)
	}

	total("Subtotal", doc.Subtotal, false)
	if doc.DiscountAmount != "" {
		total(doc.DiscountLabel, "-"+doc.DiscountAmount, false)
	}
	total(doc.TaxLabel, doc.TaxAmount, false)
	total("Total", doc.Total, true)
}

func addParagraph(m core.Maroto, title, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	m.AddRow(10, text.NewCol(12, title, props.Text{Size: 10, Style: fontstyle.Bold, Top: 4}))
	m.AddRow(rowsFor(body, 110)*4+2, text.NewCol(12, body, props.Text{Size: 8}))
}

// rowsFor estimates how many printed lines s needs at width characters per line.
func rowsFor(s string, width int) float64 {
	n := 0
	for _, para := range strings.Split(s, "\n") {
		n += len(para)/width + 1
	}
	return float64(n)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
