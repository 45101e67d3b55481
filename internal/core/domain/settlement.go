package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement records a manual payment between two persons that reduces the
// running balance in the direction payer -> payee.
type Settlement struct {
	SettlementID string          `json:"settlementID"` // Primary Key (UUID)
	GroupID      string          `json:"groupID"`      // FK -> Group.groupID (Not Null)
	PayerID      string          `json:"payerID"`      // FK -> Person.personID (Not Null)
	PayeeID      string          `json:"payeeID"`      // FK -> Person.personID (Not Null)
	Amount       decimal.Decimal `json:"amount"`       // Positive value
	Date         time.Time       `json:"date"`
	Note         string          `json:"note"` // Nullable
	AuditFields
}
