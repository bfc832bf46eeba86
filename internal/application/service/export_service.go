package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/pkg/metrics"
	"github.com/sangkips/quotation-api/pkg/money"
	"github.com/sangkips/quotation-api/pkg/pdf"
	"github.com/sangkips/quotation-api/pkg/spreadsheet"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ExportFile is a rendered document ready to be sent to a client
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Content types of exported files.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportService renders quotes as PDF documents and spreadsheets
type ExportService struct {
	quotes  *QuoteService
	company pdf.Company
	format  money.Format
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(quotes *QuoteService, company pdf.Company, format money.Format, m *metrics.Metrics, log *zap.Logger) *ExportService {
	return &ExportService{
		quotes:  quotes,
		company: company,
		format:  format,
		metrics: m,
		log:     log.Named("export"),
	}
}

// QuotePDF renders one quote. withCompany controls whether the issuer
// block is printed.
func (s *ExportService) QuotePDF(ctx context.Context, id uuid.UUID, withCompany bool) (*ExportFile, error) {
	quote, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := s.quoteDocument(quote)
	if withCompany {
		company := s.company
		doc.Company = &company
	}

	data, err := pdf.RenderQuote(doc)
	if err != nil {
		s.log.Error("render quote pdf failed", zap.String("number", quote.Number), zap.Error(err))
		return nil, err
	}

	s.metrics.ExportRendered(metrics.ExportPDF)
	return &ExportFile{
		Filename:    fmt.Sprintf("quote_%s.pdf", quote.Number),
		ContentType: ContentTypePDF,
		Data:        data,
	}, nil
}

// QuotesXLSX renders every quote matching filter as a spreadsheet
func (s *ExportService) QuotesXLSX(ctx context.Context, filter repository.QuoteFilter) (*ExportFile, error) {
	quotes, err := s.quotes.ListAllQuotes(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]spreadsheet.QuoteRow, 0, len(quotes))
	for i := range quotes {
		q := &quotes[i]
		client := ""
		if q.Client != nil {
			client = q.Client.DisplayName()
		}
		rows = append(rows, spreadsheet.QuoteRow{
			Number:         q.Number,
			Client:         client,
			IssueDate:      q.CreatedAt.Format(dateLayout),
			DueDate:        q.DueDate.Format(dateLayout),
			Status:         q.Status.Label(),
			PaymentMode:    q.PaymentMode.Label(),
			Subtotal:       q.Subtotal,
			DiscountAmount: q.DiscountAmount,
			TaxAmount:      q.TaxAmount,
			Total:          q.Total,
		})
	}

	data, err := spreadsheet.WriteQuotes(rows)
	if err != nil {
		s.log.Error("render quotes xlsx failed", zap.Error(err))
		return nil, err
	}

	s.metrics.ExportRendered(metrics.ExportXLSX)
	return &ExportFile{
		Filename:    "quotes.xlsx",
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (s *ExportService) quoteDocument(q *entity.Quote) pdf.QuoteDocument {
	doc := pdf.QuoteDocument{
		Number:      q.Number,
		IssueDate:   q.CreatedAt.Format(dateLayout),
		DueDate:     q.DueDate.Format(dateLayout),
		Status:      q.Status.Label(),
		PaymentMode: q.PaymentMode.Label(),
		Subtotal:    s.format.Amount(q.Subtotal),
		TaxLabel:    "Tax (" + s.format.Percent(q.TaxPct) + ")",
		TaxAmount:   s.format.Amount(q.TaxAmount),
		Total:       s.format.Amount(q.Total),
		Notes:       q.Notes,
		Terms:       q.Terms,
	}
	if !q.DiscountPct.IsZero() {
		doc.DiscountLabel = "Discount (" + s.format.Percent(q.DiscountPct) + ")"
		doc.DiscountAmount = s.format.Amount(q.DiscountAmount)
	}
	if q.Client != nil {
		doc.Client = pdf.Party{
			Name:    q.Client.Name,
			Company: q.Client.Company,
			Email:   q.Client.Email,
			Phone:   q.Client.Phone,
			Address: q.Client.Address,
		}
	}

	doc.Lines = make([]pdf.Line, 0, len(q.Items))
	for _, item := range q.Items {
		service := ""
		if item.Service != nil {
			service = item.Service.Name
		}
		doc.Lines = append(doc.Lines, pdf.Line{
			Service:     service,
			Description: item.Description,
			Hours:       s.format.Number(item.Hours),
			Rate:        s.format.Amount(item.HourlyRate),
			Subtotal:    s.format.Amount(item.Subtotal),
		})
	}
	return doc
}
