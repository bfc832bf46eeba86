package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotation-api/pkg/apperror"
	"github.com/sangkips/quotation-api/pkg/pagination"
)

var errInvalidDate = errors.New("must be a date formatted as YYYY-MM-DD")

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// paramUUID parses a path parameter, reporting whether it was a valid id
func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and per_page from the query string
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()
	return params
}

// parseDate reads an optional YYYY-MM-DD field
func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(request.DateLayout, *raw)
	if err != nil {
		return nil, apperror.NewFieldError(field, errInvalidDate)
	}
	return &t, nil
}

// lineItemInputs converts request items into service inputs
func lineItemInputs(items []request.LineItemRequest) []service.LineItemInput {
	inputs := make([]service.LineItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.LineItemInput{
			ID:          item.ID,
			ServiceID:   item.ServiceID,
			Description: item.Description,
			Hours:       item.Hours,
			HourlyRate:  item.HourlyRate,
		})
	}
	return inputs
}
