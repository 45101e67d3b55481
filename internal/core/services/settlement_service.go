package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	ErrSettlementSelf      = fmt.Errorf("%w: payer and payee must differ", apperrors.ErrValidation)
	ErrSettlementNotPlus   = fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	ErrSettlementOutsiders = fmt.Errorf("%w: both persons must be active members of the group", apperrors.ErrForbidden)
)

// settlementService records and lists manual settlements. Creation is a
// single insert; the balance engine only ever sees fully persisted rows.
type settlementService struct {
	BaseService
	scope          portssvc.ScopeResolverSvc
	members        portssvc.MembershipIndexSvc
	settlementRepo portsrepo.SettlementRepository
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(
	scope portssvc.ScopeResolverSvc,
	members portssvc.MembershipIndexSvc,
	settlementRepo portsrepo.SettlementRepository,
) portssvc.SettlementSvc {
	return &settlementService{
		scope:          scope,
		members:        members,
		settlementRepo: settlementRepo,
	}
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

// CreateSettlement validates and persists one settlement payer -> payee.
func (s *settlementService) CreateSettlement(ctx context.Context, groupID string, req dto.CreateSettlementRequest, creatorPersonID string) (*domain.Settlement, error) {
	if groupID == "" || req.PayerID == "" || req.PayeeID == "" {
		return nil, fmt.Errorf("%w: group, payer and payee ids are required", apperrors.ErrValidation)
	}
	if req.PayerID == req.PayeeID {
		return nil, ErrSettlementSelf
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrSettlementNotPlus
	}

	// Both persons must be able to act in the group; the index returns
	// ErrForbidden when either has no active membership there. Anything else
	// is an infrastructure failure and keeps its own identity.
	if _, err := s.members.MembershipsOfPersonsInGroups(ctx, []string{req.PayerID, req.PayeeID}, []string{groupID}); err != nil {
		if !errors.Is(err, apperrors.ErrForbidden) {
			return nil, fmt.Errorf("failed to check group memberships: %w", err)
		}
		s.LogError(ctx, err, "Settlement refused: person outside group",
			slog.String("group_id", groupID),
			slog.String("payer_id", req.PayerID),
			slog.String("payee_id", req.PayeeID))
		return nil, ErrSettlementOutsiders
	}

	now := time.Now()
	settlement := domain.Settlement{
		SettlementID: uuid.NewString(),
		GroupID:      groupID,
		PayerID:      req.PayerID,
		PayeeID:      req.PayeeID,
		Amount:       req.Amount,
		Date:         req.Date,
		Note:         req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorPersonID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorPersonID,
		},
	}
	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to save settlement: %w", err)
	}

	s.LogInfo(ctx, "Settlement recorded",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("group_id", groupID),
		slog.String("amount", settlement.Amount.String()))
	return &settlement, nil
}

// ListSettlements returns the settlements of the group and its immediate
// parent with from <= date < until.
func (s *settlementService) ListSettlements(ctx context.Context, groupID string, from, until time.Time) ([]domain.Settlement, error) {
	chain, err := s.scope.AncestorChain(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(chain) > visibleChainLen {
		chain = chain[:visibleChainLen]
	}
	settlements, err := s.settlementRepo.ListSettlementsInRange(ctx, chain, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}
