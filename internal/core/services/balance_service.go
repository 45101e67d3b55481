package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/utils/splitmath"
	"github.com/shopspring/decimal"
)

var (
	ErrSamePerson     = fmt.Errorf("%w: person ids must differ", apperrors.ErrValidation)
	ErrPersonRequired = fmt.Errorf("%w: both person ids are required", apperrors.ErrValidation)
	ErrNoSharedGroup  = fmt.Errorf("%w: persons share no group in this scope", apperrors.ErrForbidden)

	// ErrMembershipOutOfScope means a transaction inside an explicitly
	// declared scope references a payer membership the scope does not contain.
	ErrMembershipOutOfScope = fmt.Errorf("%w: transaction references a membership outside the declared scope", apperrors.ErrForbidden)
)

// balanceService nets owed amounts between persons across a scope. All
// computation is pure over the fetched snapshot; nothing is cached between
// calls.
type balanceService struct {
	BaseService
	scope          portssvc.ScopeResolverSvc
	members        portssvc.MembershipIndexSvc
	txnRepo        portsrepo.TransactionRepository
	settlementRepo portsrepo.SettlementRepository
}

// NewBalanceService creates a new balance engine.
func NewBalanceService(
	scope portssvc.ScopeResolverSvc,
	members portssvc.MembershipIndexSvc,
	txnRepo portsrepo.TransactionRepository,
	settlementRepo portsrepo.SettlementRepository,
) portssvc.BalanceSvc {
	return &balanceService{
		scope:          scope,
		members:        members,
		txnRepo:        txnRepo,
		settlementRepo: settlementRepo,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// cutoffEnd returns the exclusive upper bound of a cumulative balance query:
// the first instant after the requested month. Everything dated up to and
// including the end of that month qualifies.
func cutoffEnd(year int, month time.Month) (time.Time, error) {
	if year <= 0 || month < time.January || month > time.December {
		return time.Time{}, fmt.Errorf("%w: invalid cutoff year/month", apperrors.ErrValidation)
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0), nil
}

// CalculatePairBalance computes the cumulative signed net debt between two
// persons as of the end of the given month. Positive means personOne owes
// personTwo. Rounding to two decimal places happens once, on the final net.
func (s *balanceService) CalculatePairBalance(ctx context.Context, scopeGroupID *string, personOneID, personTwoID string, asOfYear int, asOfMonth time.Month) (*domain.PairBalance, error) {
	if personOneID == "" || personTwoID == "" {
		return nil, ErrPersonRequired
	}
	if personOneID == personTwoID {
		return nil, ErrSamePerson
	}
	cutoff, err := cutoffEnd(asOfYear, asOfMonth)
	if err != nil {
		return nil, err
	}

	scopeIDs, err := s.resolveScope(ctx, scopeGroupID, personOneID, personTwoID)
	if err != nil {
		return nil, err
	}

	// Both persons need an active membership somewhere in scope; the index
	// refuses otherwise.
	byPerson, err := s.members.MembershipsOfPersonsInGroups(ctx, []string{personOneID, personTwoID}, scopeIDs)
	if err != nil {
		return nil, err
	}

	// A group contributes to the pair only when both persons hold an active
	// membership there. Groups with just one of them are silently skipped.
	presence := make(map[string]map[string]string) // groupID -> personID -> membershipID
	pairMembership := make(map[string]string)      // membershipID -> personID
	for personID, memberships := range byPerson {
		for _, m := range memberships {
			if presence[m.GroupID] == nil {
				presence[m.GroupID] = make(map[string]string, 2)
			}
			presence[m.GroupID][personID] = m.MembershipID
			pairMembership[m.MembershipID] = personID
		}
	}
	qualifying := make([]string, 0, len(presence))
	for groupID, persons := range presence {
		if len(persons) == 2 {
			qualifying = append(qualifying, groupID)
		}
	}
	if len(qualifying) == 0 {
		return nil, ErrNoSharedGroup
	}
	sort.Strings(qualifying)

	// Full active-member index of the qualifying groups, to tell a third
	// household member apart from a membership that violates the scope.
	index, err := s.membershipIndex(ctx, qualifying)
	if err != nil {
		return nil, err
	}

	owesOneToTwo, owesTwoToOne, err := s.accumulatePairDebts(ctx, scopeGroupID != nil, qualifying, cutoff, index, pairMembership, personOneID, personTwoID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.settlementRepo.ListSettlementsThrough(ctx, qualifying, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	for _, st := range settlements {
		switch {
		case st.PayerID == personOneID && st.PayeeID == personTwoID:
			owesOneToTwo = owesOneToTwo.Sub(st.Amount)
		case st.PayerID == personTwoID && st.PayeeID == personOneID:
			owesTwoToOne = owesTwoToOne.Sub(st.Amount)
		}
	}

	net := owesOneToTwo.Sub(owesTwoToOne).Round(2)

	s.LogDebug(ctx, "Pair balance computed",
		slog.String("person_one", personOneID),
		slog.String("person_two", personTwoID),
		slog.Int("qualifying_groups", len(qualifying)),
		slog.String("net", net.String()))

	if net.IsZero() {
		return nil, nil
	}
	return &domain.PairBalance{
		PersonOneID:   personOneID,
		PersonOneName: personName(byPerson[personOneID]),
		PersonTwoID:   personTwoID,
		PersonTwoName: personName(byPerson[personTwoID]),
		Net:           net,
	}, nil
}

// CalculateAllBalances computes every non-zero pairwise balance among the
// scope's active members, oriented debtor -> creditor with positive amounts.
// Settled pairs are omitted.
func (s *balanceService) CalculateAllBalances(ctx context.Context, scopeGroupID *string, personID string, asOfYear int, asOfMonth time.Month) ([]domain.DebtRecord, error) {
	if personID == "" {
		return nil, fmt.Errorf("%w: person id is required", apperrors.ErrValidation)
	}
	cutoff, err := cutoffEnd(asOfYear, asOfMonth)
	if err != nil {
		return nil, err
	}

	var scopeIDs []string
	if scopeGroupID != nil {
		scopeIDs, err = s.scope.AncestorChain(ctx, *scopeGroupID)
	} else {
		scopeIDs, err = s.scope.AllAccessibleGroupIDs(ctx, personID)
	}
	if err != nil {
		return nil, err
	}
	if len(scopeIDs) == 0 {
		return nil, fmt.Errorf("%w: person %s has no accessible group", apperrors.ErrForbidden, personID)
	}

	index, err := s.membershipIndex(ctx, scopeIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(index))
	for _, m := range index {
		names[m.PersonID] = m.PersonName
	}

	// owes[debtor][creditor] accumulates the directional totals, exactly as
	// in the pair variant but across every member pair at once.
	owes := make(map[string]map[string]decimal.Decimal)
	addOwed := func(debtor, creditor string, amount decimal.Decimal) {
		if owes[debtor] == nil {
			owes[debtor] = make(map[string]decimal.Decimal)
		}
		owes[debtor][creditor] = owes[debtor][creditor].Add(amount)
	}

	txns, err := s.txnRepo.ListTransactionsThrough(ctx, scopeIDs, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	for _, txn := range txns {
		if !txn.IsShared || len(txn.SplitRatio) == 0 || txn.PayerID == nil {
			continue
		}
		payer, known := index[*txn.PayerID]
		if !known {
			if scopeGroupID != nil {
				return nil, ErrMembershipOutOfScope
			}
			continue
		}
		for memberID, amount := range splitmath.Attribute(txn.Amount, *txn.PayerID, txn.SplitRatio) {
			member, ok := index[memberID]
			if !ok || member.PersonID == payer.PersonID {
				continue
			}
			addOwed(member.PersonID, payer.PersonID, amount)
		}
	}

	settlements, err := s.settlementRepo.ListSettlementsThrough(ctx, scopeIDs, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	for _, st := range settlements {
		// Only settlements between the scope's active members fold in; a
		// person outside the index has no pair here to reduce.
		if _, ok := names[st.PayerID]; !ok {
			continue
		}
		if _, ok := names[st.PayeeID]; !ok {
			continue
		}
		addOwed(st.PayerID, st.PayeeID, st.Amount.Neg())
	}

	records := make([]domain.DebtRecord, 0)
	done := make(map[string]struct{})
	for a, creditors := range owes {
		for b := range creditors {
			key := pairKey(a, b)
			if _, seen := done[key]; seen {
				continue
			}
			done[key] = struct{}{}

			net := owes[a][b].Sub(owedAmount(owes, b, a)).Round(2)
			debtor, creditor := a, b
			if net.IsNegative() {
				debtor, creditor = b, a
				net = net.Neg()
			}
			if net.IsZero() {
				continue
			}
			records = append(records, domain.DebtRecord{
				DebtorID:     debtor,
				DebtorName:   names[debtor],
				CreditorID:   creditor,
				CreditorName: names[creditor],
				Amount:       net,
			})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].DebtorID != records[j].DebtorID {
			return records[i].DebtorID < records[j].DebtorID
		}
		return records[i].CreditorID < records[j].CreditorID
	})

	s.LogInfo(ctx, "All balances computed",
		slog.String("person_id", personID),
		slog.Int("scope_groups", len(scopeIDs)),
		slog.Int("open_pairs", len(records)))
	return records, nil
}

// resolveScope picks the group set for a pair computation: the declared
// group's ancestor chain, or the union of both persons' accessible groups.
func (s *balanceService) resolveScope(ctx context.Context, scopeGroupID *string, personOneID, personTwoID string) ([]string, error) {
	if scopeGroupID != nil {
		return s.scope.AncestorChain(ctx, *scopeGroupID)
	}

	oneIDs, err := s.scope.AllAccessibleGroupIDs(ctx, personOneID)
	if err != nil {
		return nil, err
	}
	twoIDs, err := s.scope.AllAccessibleGroupIDs(ctx, personTwoID)
	if err != nil {
		return nil, err
	}

	merged := make([]string, 0, len(oneIDs)+len(twoIDs))
	seen := make(map[string]struct{}, len(oneIDs)+len(twoIDs))
	for _, id := range append(oneIDs, twoIDs...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged, nil
}

// accumulatePairDebts folds every qualifying shared transaction into the two
// directional totals of the pair. Transactions paid by a third member create
// no debt between the pair and are skipped; an unresolvable payer membership
// is only legal in global mode.
func (s *balanceService) accumulatePairDebts(
	ctx context.Context,
	scopeDeclared bool,
	groupIDs []string,
	cutoff time.Time,
	index map[string]domain.Membership,
	pairMembership map[string]string,
	personOneID, personTwoID string,
) (owesOneToTwo, owesTwoToOne decimal.Decimal, err error) {
	txns, err := s.txnRepo.ListTransactionsThrough(ctx, groupIDs, cutoff)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to list transactions: %w", err)
	}

	for _, txn := range txns {
		if !txn.IsShared || len(txn.SplitRatio) == 0 || txn.PayerID == nil {
			// The payer absorbs the whole amount; no debt.
			continue
		}
		if _, known := index[*txn.PayerID]; !known {
			if scopeDeclared {
				s.LogError(ctx, ErrMembershipOutOfScope, "Transaction payer not in declared scope",
					slog.String("transaction_id", txn.TransactionID),
					slog.String("payer_membership_id", *txn.PayerID))
				return decimal.Zero, decimal.Zero, ErrMembershipOutOfScope
			}
			continue
		}

		payerPerson, payerInPair := pairMembership[*txn.PayerID]
		if !payerInPair {
			continue
		}
		for memberID, amount := range splitmath.Attribute(txn.Amount, *txn.PayerID, txn.SplitRatio) {
			memberPerson, inPair := pairMembership[memberID]
			if !inPair || memberPerson == payerPerson {
				continue
			}
			if memberPerson == personOneID && payerPerson == personTwoID {
				owesOneToTwo = owesOneToTwo.Add(amount)
			} else if memberPerson == personTwoID && payerPerson == personOneID {
				owesTwoToOne = owesTwoToOne.Add(amount)
			}
		}
	}
	return owesOneToTwo, owesTwoToOne, nil
}

// membershipIndex fetches the active members of the given groups keyed by
// membership id.
func (s *balanceService) membershipIndex(ctx context.Context, groupIDs []string) (map[string]domain.Membership, error) {
	members, err := s.members.ActiveMembers(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	index := make(map[string]domain.Membership, len(members))
	for _, m := range members {
		index[m.MembershipID] = m
	}
	return index, nil
}

func personName(memberships []domain.Membership) string {
	if len(memberships) == 0 {
		return ""
	}
	return memberships[0].PersonName
}

func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

func owedAmount(owes map[string]map[string]decimal.Decimal, debtor, creditor string) decimal.Decimal {
	if owes[debtor] == nil {
		return decimal.Zero
	}
	return owes[debtor][creditor]
}
