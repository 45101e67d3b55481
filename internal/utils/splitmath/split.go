// Package splitmath holds the pure percentage-split arithmetic shared by the
// balance and breakdown services. All amounts are decimal; nothing here
// rounds, so callers can defer rounding to their final step.
package splitmath

import (
	"fmt"

	"github.com/danghm/famledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ErrSplitSum indicates a non-empty split ratio whose percentages do not sum to 100.
var ErrSplitSum = fmt.Errorf("split ratio percentages must sum to exactly 100")

// Validate checks the split-ratio invariant: an empty ratio is allowed, a
// non-empty one must have unique non-empty member ids, each percentage in
// 0..100, and percentages summing to exactly 100.
func Validate(ratio []domain.SplitItem) error {
	if len(ratio) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ratio))
	var sum int64
	for _, item := range ratio {
		if item.MemberID == "" {
			return fmt.Errorf("split ratio item has empty member id")
		}
		if _, dup := seen[item.MemberID]; dup {
			return fmt.Errorf("split ratio has duplicate member id %s", item.MemberID)
		}
		seen[item.MemberID] = struct{}{}
		if item.Percentage < 0 || item.Percentage > 100 {
			return fmt.Errorf("split ratio percentage %d for member %s is out of range", item.Percentage, item.MemberID)
		}
		sum += item.Percentage
	}
	if sum != 100 {
		return fmt.Errorf("%w: got %d", ErrSplitSum, sum)
	}
	return nil
}

// Share returns amount scaled by a whole percentage: amount * pct / 100.
func Share(amount decimal.Decimal, pct int64) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(pct)).Div(oneHundred)
}

// Attribute computes what each non-payer member owes the payer for a shared
// transaction: owed = amount * percentage / 100. The payer's own share is not
// owed to anyone. An empty ratio yields an empty map (no debt created).
func Attribute(amount decimal.Decimal, payerMembershipID string, ratio []domain.SplitItem) map[string]decimal.Decimal {
	owed := make(map[string]decimal.Decimal, len(ratio))
	for _, item := range ratio {
		if item.MemberID == payerMembershipID {
			continue
		}
		owed[item.MemberID] = Share(amount, item.Percentage)
	}
	return owed
}

// RestrictToSubset computes the portion of a shared amount attributable to
// exactly the selected members. It returns ok=false when any selected member
// does not participate in the split, or when the selected members' combined
// share is zero; both cases exclude the transaction under strict filtering.
// The subset amount is amount * (sum of selected percentages) / 100, never
// renormalized a second time.
func RestrictToSubset(amount decimal.Decimal, ratio []domain.SplitItem, selectedIDs map[string]struct{}) (decimal.Decimal, map[string]decimal.Decimal, bool) {
	if len(selectedIDs) == 0 {
		return decimal.Zero, nil, false
	}
	byMember := make(map[string]int64, len(ratio))
	for _, item := range ratio {
		byMember[item.MemberID] = item.Percentage
	}

	var subsetPct int64
	shares := make(map[string]decimal.Decimal, len(selectedIDs))
	for id := range selectedIDs {
		pct, participates := byMember[id]
		if !participates {
			return decimal.Zero, nil, false
		}
		subsetPct += pct
		shares[id] = Share(amount, pct)
	}
	if subsetPct == 0 {
		return decimal.Zero, nil, false
	}
	return Share(amount, subsetPct), shares, true
}
