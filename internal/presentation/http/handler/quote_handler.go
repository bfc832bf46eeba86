package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotation-api/pkg/apperror"
	"github.com/sangkips/quotation-api/pkg/money"
	"github.com/sangkips/quotation-api/pkg/pagination"
)

// QuoteHandler handles quotes, their line items and exports
type QuoteHandler struct {
	quoteService  *service.QuoteService
	exportService *service.ExportService
	format        money.Format
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, exportService *service.ExportService, format money.Format) *QuoteHandler {
	return &QuoteHandler{
		quoteService:  quoteService,
		exportService: exportService,
		format:        format,
	}
}

// List handles listing quotes with search, status and client filters
func (h *QuoteHandler) List(c *gin.Context) {
	filter, err := quoteFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), &service.ListQuotesInput{
		Params:   pageParams(c),
		Search:   filter.Search,
		Status:   filter.Status,
		ClientID: filter.ClientID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully",
		pagination.Map(result, func(q entity.Quote) response.QuoteResponse {
			return response.NewQuoteResponse(&q, h.format)
		}))
}

// Create handles creating a quote, optionally with its items
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		UserID:      GetUserID(c),
		ClientID:    req.ClientID,
		DueDate:     dueDate,
		PaymentMode: enum.PaymentMode(req.PaymentMode),
		Status:      enum.QuoteStatus(req.Status),
		DiscountPct: req.DiscountPct,
		TaxPct:      req.TaxPct,
		Notes:       req.Notes,
		Terms:       req.Terms,
		Items:       lineItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", response.NewQuoteResponse(quote, h.format))
}

// Get handles getting a quote with its items
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", response.NewQuoteResponse(quote, h.format))
}

// Update handles editing the quote header
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.UpdateQuoteInput{
		ID:          id,
		ClientID:    req.ClientID,
		DueDate:     dueDate,
		DiscountPct: req.DiscountPct,
		TaxPct:      req.TaxPct,
		Notes:       req.Notes,
		Terms:       req.Terms,
	}
	if req.PaymentMode != nil {
		mode := enum.PaymentMode(*req.PaymentMode)
		input.PaymentMode = &mode
	}
	if req.Status != nil {
		status := enum.QuoteStatus(*req.Status)
		input.Status = &status
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", response.NewQuoteResponse(quote, h.format))
}

// UpdateStatus sets the quote status
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateStatus(c.Request.Context(), id, enum.QuoteStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", response.NewQuoteResponse(quote, h.format))
}

// Delete removes a quote and its items
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote deleted successfully", nil)
}

// Recalculate recomputes the totals from the current items
func (h *QuoteHandler) Recalculate(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.RecalculateTotals(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote totals recalculated", response.NewQuoteResponse(quote, h.format))
}

// AddItem appends a line item
func (h *QuoteHandler) AddItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.AddLineItem(c.Request.Context(), id, lineItemInputs([]request.LineItemRequest{req})[0])
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line item added successfully", response.NewQuoteResponse(quote, h.format))
}

// ReplaceItems replaces the full item set. Items with an id are updated,
// items without one are created and missing ones are removed.
func (h *QuoteHandler) ReplaceItems(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.ReplaceLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.ReplaceLineItems(c.Request.Context(), id, lineItemInputs(req.Items))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line items saved successfully", response.NewQuoteResponse(quote, h.format))
}

// UpdateItem edits one line item
func (h *QuoteHandler) UpdateItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}
	itemID, ok := paramUUID(c, "item_id")
	if !ok {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	var req request.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateLineItem(c.Request.Context(), &service.UpdateLineItemInput{
		QuoteID:     id,
		ItemID:      itemID,
		ServiceID:   req.ServiceID,
		Description: req.Description,
		Hours:       req.Hours,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item updated successfully", response.NewQuoteResponse(quote, h.format))
}

// RemoveItem deletes one line item
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}
	itemID, ok := paramUUID(c, "item_id")
	if !ok {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	quote, err := h.quoteService.RemoveLineItem(c.Request.Context(), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item removed successfully", response.NewQuoteResponse(quote, h.format))
}

// PDF renders the quote as a PDF attachment. company_info=false leaves out
// the issuer block.
func (h *QuoteHandler) PDF(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	withCompany := true
	if raw := c.Query("company_info"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "company_info must be true or false")
			return
		}
		withCompany = parsed
	}

	file, err := h.exportService.QuotePDF(c.Request.Context(), id, withCompany)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendFile(c, file)
}

// Export renders the filtered quote list as a spreadsheet
func (h *QuoteHandler) Export(c *gin.Context) {
	filter, err := quoteFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exportService.QuotesXLSX(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendFile(c, file)
}

func quoteFilter(c *gin.Context) (repository.QuoteFilter, error) {
	filter := repository.QuoteFilter{Search: c.Query("search")}

	if raw := c.Query("status"); raw != "" {
		status, err := enum.ParseQuoteStatus(raw)
		if err != nil {
			return filter, apperror.NewFieldError("status", enum.ErrInvalidValue)
		}
		filter.Status = &status
	}
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			return filter, apperror.NewBadRequestError("Invalid client ID")
		}
		filter.ClientID = &clientID
	}
	return filter, nil
}

func sendFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(200, file.ContentType, file.Data)
}
