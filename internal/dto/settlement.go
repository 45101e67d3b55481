package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSettlementRequest records a manual payment payer -> payee.
type CreateSettlementRequest struct {
	PayerID string          `json:"payerId" binding:"required"`
	PayeeID string          `json:"payeeId" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Date    time.Time       `json:"date" binding:"required"`
	Note    string          `json:"note"`
}

// ReorderCategoriesRequest carries the new display order for a group's
// categories. The list must be a permutation of the group's category ids.
type ReorderCategoriesRequest struct {
	OrderedCategoryIDs []string `json:"orderedCategoryIds" binding:"required"`
}
