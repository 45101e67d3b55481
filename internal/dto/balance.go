package dto

import "github.com/danghm/famledger/internal/core/domain"

// PairBalanceResponse wraps a single pairwise balance. Settled means the
// rounded net was exactly zero and Balance is nil.
type PairBalanceResponse struct {
	Balance *domain.PairBalance `json:"balance,omitempty"`
	Settled bool                `json:"settled"`
}

// BalancesResponse wraps every non-zero pairwise balance in a scope.
type BalancesResponse struct {
	Balances []domain.DebtRecord `json:"balances"`
}
