package entity

import (
	"testing"

	"github.com/sangkips/quotation-api/internal/domain/quoting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineItem_RecalculateSnapshotsServiceRate(t *testing.T) {
	item := &LineItem{Hours: decimal.NewFromInt(10)}

	item.Recalculate(nil, decimal.RequireFromString("50.00"))

	assert.Equal(t, "50.00", item.HourlyRate.StringFixed(2))
	assert.Equal(t, "500.00", item.Subtotal.StringFixed(2))
}

func TestLineItem_RecalculateKeepsExplicitRate(t *testing.T) {
	item := &LineItem{Hours: decimal.RequireFromString("2.5")}
	rate := decimal.RequireFromString("80")

	item.Recalculate(&rate, decimal.RequireFromString("50.00"))

	assert.True(t, item.HourlyRate.Equal(rate))
	assert.Equal(t, "200.00", item.Subtotal.StringFixed(2))
}

func TestQuote_ApplyTotalsRoundsToCents(t *testing.T) {
	q := &Quote{}
	totals := quoting.CalculateTotals(decimal.Zero, decimal.NewFromInt(16), []decimal.Decimal{decimal.RequireFromString("10.01")})

	q.ApplyTotals(totals)

	assert.Equal(t, "10.01", q.Subtotal.String())
	assert.Equal(t, "1.6", q.TaxAmount.String())
	assert.Equal(t, "11.61", q.Total.String())
	assert.True(t, q.Totals().Total.Equal(q.Total))
}

func TestUser_GetPermissionsDeduplicates(t *testing.T) {
	u := &User{Roles: []Role{
		{Name: RoleAdmin, Permissions: []Permission{{Name: PermissionManageQuotes}, {Name: PermissionExportQuotes}}},
		{Name: RoleStaff, Permissions: []Permission{{Name: PermissionManageQuotes}}},
	}}

	assert.ElementsMatch(t, []string{PermissionManageQuotes, PermissionExportQuotes}, u.GetPermissions())
	assert.True(t, u.HasRole(RoleStaff))
	assert.Equal(t, []string{RoleAdmin, RoleStaff}, u.RoleNames())
}
