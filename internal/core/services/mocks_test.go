package services_test

import (
	"context"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

var _ portsrepo.GroupRepository = (*MockGroupRepository)(nil)

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListChildGroups(ctx context.Context, parentIDs []string) ([]domain.Group, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

// --- Mock MembershipRepository ---
type MockMembershipRepository struct {
	mock.Mock
}

var _ portsrepo.MembershipRepository = (*MockMembershipRepository)(nil)

func (m *MockMembershipRepository) ListActiveMemberships(ctx context.Context, groupIDs []string) ([]domain.Membership, error) {
	args := m.Called(ctx, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListMembershipsOfPersons(ctx context.Context, personIDs []string, groupIDs []string) ([]domain.Membership, error) {
	args := m.Called(ctx, personIDs, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListGroupIDsForPerson(ctx context.Context, personID string) ([]string, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) ListTransactionsThrough(ctx context.Context, groupIDs []string, until time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, groupIDs, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsInRange(ctx context.Context, groupIDs []string, from, until time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, groupIDs, from, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock SettlementRepository ---
type MockSettlementRepository struct {
	mock.Mock
}

var _ portsrepo.SettlementRepository = (*MockSettlementRepository)(nil)

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockSettlementRepository) ListSettlementsThrough(ctx context.Context, groupIDs []string, until time.Time) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupIDs, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsInRange(ctx context.Context, groupIDs []string, from, until time.Time) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupIDs, from, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) ListCategoriesWithBudget(ctx context.Context, groupIDs []string) ([]domain.Category, error) {
	args := m.Called(ctx, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategoryOrders(ctx context.Context, groupID string, orders map[string]int, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, groupID, orders, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Shared fixture helpers ---

func rootGroup(id string) *domain.Group {
	return &domain.Group{GroupID: id, Name: id}
}

func childGroup(id, parentID string) *domain.Group {
	return &domain.Group{GroupID: id, Name: id, ParentID: &parentID}
}

func activeMembership(membershipID, personID, groupID, personName string) domain.Membership {
	return domain.Membership{
		MembershipID: membershipID,
		PersonID:     personID,
		GroupID:      groupID,
		PersonName:   personName,
		IsActive:     true,
	}
}

func strptr(s string) *string { return &s }

func intptr(i int) *int { return &i }
