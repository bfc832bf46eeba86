package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/pkg/money"
	"github.com/shopspring/decimal"
)

// dateLayout renders due dates without a time part.
const dateLayout = "2006-01-02"

// ClientSummary is the client block embedded in quotes.
type ClientSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Company string    `json:"company,omitempty"`
	Email   string    `json:"email"`
	Active  bool      `json:"active"`
}

// LineItemResponse is a line item with display strings.
type LineItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ServiceID         uuid.UUID       `json:"service_id"`
	ServiceName       string          `json:"service_name,omitempty"`
	Description       string          `json:"description"`
	Hours             decimal.Decimal `json:"hours"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	HourlyRateDisplay string          `json:"hourly_rate_display"`
	SubtotalDisplay   string          `json:"subtotal_display"`
}

// QuoteResponse is a quote with its items and formatted amounts.
type QuoteResponse struct {
	ID                    uuid.UUID          `json:"id"`
	Number                string             `json:"number"`
	ClientID              uuid.UUID          `json:"client_id"`
	Client                *ClientSummary     `json:"client,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
	DueDate               string             `json:"due_date"`
	PaymentMode           enum.PaymentMode   `json:"payment_mode"`
	PaymentModeLabel      string             `json:"payment_mode_label"`
	Status                enum.QuoteStatus   `json:"status"`
	StatusLabel           string             `json:"status_label"`
	DiscountPct           decimal.Decimal    `json:"discount_pct"`
	TaxPct                decimal.Decimal    `json:"tax_pct"`
	Subtotal              decimal.Decimal    `json:"subtotal"`
	DiscountAmount        decimal.Decimal    `json:"discount_amount"`
	TaxAmount             decimal.Decimal    `json:"tax_amount"`
	Total                 decimal.Decimal    `json:"total"`
	SubtotalDisplay       string             `json:"subtotal_display"`
	DiscountAmountDisplay string             `json:"discount_amount_display"`
	TaxAmountDisplay      string             `json:"tax_amount_display"`
	TotalDisplay          string             `json:"total_display"`
	Notes                 string             `json:"notes"`
	Terms                 string             `json:"terms"`
	Items                 []LineItemResponse `json:"items"`
}

// NewQuoteResponse maps a quote onto its API representation.
func NewQuoteResponse(q *entity.Quote, f money.Format) QuoteResponse {
	resp := QuoteResponse{
		ID:                    q.ID,
		Number:                q.Number,
		ClientID:              q.ClientID,
		CreatedAt:             q.CreatedAt,
		UpdatedAt:             q.UpdatedAt,
		DueDate:               q.DueDate.Format(dateLayout),
		PaymentMode:           q.PaymentMode,
		PaymentModeLabel:      q.PaymentMode.Label(),
		Status:                q.Status,
		StatusLabel:           q.Status.Label(),
		DiscountPct:           q.DiscountPct,
		TaxPct:                q.TaxPct,
		Subtotal:              q.Subtotal,
		DiscountAmount:        q.DiscountAmount,
		TaxAmount:             q.TaxAmount,
		Total:                 q.Total,
		SubtotalDisplay:       f.Amount(q.Subtotal),
		DiscountAmountDisplay: f.Amount(q.DiscountAmount),
		TaxAmountDisplay:      f.Amount(q.TaxAmount),
		TotalDisplay:          f.Amount(q.Total),
		Notes:                 q.Notes,
		Terms:                 q.Terms,
		Items:                 make([]LineItemResponse, 0, len(q.Items)),
	}
	if q.Client != nil {
		resp.Client = &ClientSummary{
			ID:      q.Client.ID,
			Name:    q.Client.Name,
			Company: q.Client.Company,
			Email:   q.Client.Email,
			Active:  q.Client.Active,
		}
	}
	for _, item := range q.Items {
		li := LineItemResponse{
			ID:                item.ID,
			ServiceID:         item.ServiceID,
			Description:       item.Description,
			Hours:             item.Hours,
			HourlyRate:        item.HourlyRate,
			Subtotal:          item.Subtotal,
			HourlyRateDisplay: f.Amount(item.HourlyRate),
			SubtotalDisplay:   f.Amount(item.Subtotal),
		}
		if item.Service != nil {
			li.ServiceName = item.Service.Name
		}
		resp.Items = append(resp.Items, li)
	}
	return resp
}

// ServiceResponse is a catalog service with its display rate.
type ServiceResponse struct {
	*entity.Service
	CategoryLabel     string `json:"category_label"`
	HourlyRateDisplay string `json:"hourly_rate_display"`
}

// NewServiceResponse maps a catalog service onto its API representation.
func NewServiceResponse(s *entity.Service, f money.Format) ServiceResponse {
	return ServiceResponse{
		Service:           s,
		CategoryLabel:     s.Category.Label(),
		HourlyRateDisplay: f.Amount(s.HourlyRate),
	}
}

// RateResponse answers a rate lookup for a service.
type RateResponse struct {
	ServiceID  uuid.UUID       `json:"service_id"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Display    string          `json:"display"`
}

// UserResponse is an operator without credentials.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Active      bool      `json:"active"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
}

// NewUserResponse maps an operator onto its API representation.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Active:      u.Active,
		Roles:       u.RoleNames(),
		Permissions: u.GetPermissions(),
	}
}
