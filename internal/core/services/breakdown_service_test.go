package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/core/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BreakdownServiceTestSuite struct {
	suite.Suite
	mockGroupRepo      *MockGroupRepository
	mockMembershipRepo *MockMembershipRepository
	mockTxnRepo        *MockTransactionRepository
	mockCategoryRepo   *MockCategoryRepository
	service            portssvc.BreakdownSvc
}

func (suite *BreakdownServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockMembershipRepo = new(MockMembershipRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)

	scope := services.NewScopeResolverService(suite.mockGroupRepo, suite.mockMembershipRepo)
	members := services.NewMembershipIndexService(suite.mockMembershipRepo)
	suite.service = services.NewBreakdownService(scope, members, suite.mockTxnRepo, suite.mockCategoryRepo)
}

func monthly(year, month int) dto.PeriodSpec {
	return dto.PeriodSpec{Type: domain.PeriodMonthly, Year: year, Month: intptr(month)}
}

// expectScope wires the mocks for a single-root scope with the given
// transactions, categories and members, over the July 2025 window.
func (suite *BreakdownServiceTestSuite) expectScope(ctx context.Context, txns []domain.Transaction, categories []domain.Category, members []domain.Membership) {
	start := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(rootGroup("g1"), nil)
	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, []string{"g1"}, start, end).Return(txns, nil)
	suite.mockCategoryRepo.On("ListCategoriesWithBudget", ctx, []string{"g1"}).Return(categories, nil)
	suite.mockMembershipRepo.On("ListActiveMemberships", ctx, []string{"g1"}).Return(members, nil)
}

func expenseTxn(id, categoryID string, amount int64, payerMembershipID string, split ...domain.SplitItem) domain.Transaction {
	shared := len(split) > 0
	return domain.Transaction{
		TransactionID: id,
		GroupID:       "g1",
		CategoryID:    categoryID,
		Amount:        decimal.NewFromInt(amount),
		Date:          time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
		Type:          domain.Expense,
		PayerID:       strptr(payerMembershipID),
		IsShared:      shared,
		SplitRatio:    split,
	}
}

func (suite *BreakdownServiceTestSuite) TestBreakdown_PeriodValidation() {
	ctx := context.Background()
	cases := []dto.PeriodSpec{
		{Type: domain.PeriodYearly, Year: 2025, Month: intptr(3)},
		{Type: domain.PeriodYearly, Year: 2025, Quarter: intptr(1)},
		{Type: domain.PeriodMonthly, Year: 2025},
		{Type: domain.PeriodMonthly, Year: 2025, Month: intptr(13)},
		{Type: domain.PeriodQuarterly, Year: 2025},
		{Type: domain.PeriodQuarterly, Year: 2025, Quarter: intptr(5)},
		{Type: domain.PeriodType("WEEKLY"), Year: 2025},
		{Type: domain.PeriodMonthly, Month: intptr(7)},
	}
	for _, period := range cases {
		_, err := suite.service.Breakdown(ctx, "g1", dto.BreakdownRequest{
			Dimension: domain.ByCategory,
			Period:    period,
		})
		suite.Require().ErrorIs(err, apperrors.ErrValidation, "period %+v", period)
	}
}

func (suite *BreakdownServiceTestSuite) TestBreakdown_UnknownDimension() {
	_, err := suite.service.Breakdown(context.Background(), "g1", dto.BreakdownRequest{
		Dimension: domain.BreakdownDimension("BY_WEATHER"),
		Period:    monthly(2025, 7),
	})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BreakdownServiceTestSuite) TestBreakdown_ByCategory() {
	ctx := context.Background()
	budget := decimal.NewFromInt(500)
	suite.expectScope(ctx,
		[]domain.Transaction{
			expenseTxn("t1", "cat-food", 120, "m1",
				domain.SplitItem{MemberID: "m1", Percentage: 50},
				domain.SplitItem{MemberID: "m2", Percentage: 50}),
			expenseTxn("t2", "cat-food", 80, "m2"),
			{
				TransactionID: "t3",
				GroupID:       "g1",
				CategoryID:    "cat-salary",
				Amount:        decimal.NewFromInt(1000),
				Date:          time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
				Type:          domain.Income,
				PayerID:       strptr("m1"),
			},
		},
		[]domain.Category{
			{CategoryID: "cat-food", GroupID: "g1", Name: "Food", BudgetLimit: &budget},
			{CategoryID: "cat-salary", GroupID: "g1", Name: "Salary"},
		},
		[]domain.Membership{
			activeMembership("m1", "p1", "g1", "One"),
			activeMembership("m2", "p2", "g1", "Two"),
		},
	)

	rows, err := suite.service.Breakdown(ctx, "g1", dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    monthly(2025, 7),
	})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	// Sorted by key: cat-food before cat-salary.
	suite.Equal("cat-food", rows[0].Key)
	suite.Equal("Food", rows[0].Name)
	suite.True(rows[0].Expense.Equal(decimal.NewFromInt(200)), "got %s", rows[0].Expense)
	suite.True(rows[0].Net.Equal(decimal.NewFromInt(-200)))
	suite.Require().NotNil(rows[0].BudgetLimit)
	suite.True(rows[0].BudgetLimit.Equal(budget))
	suite.Equal("cat-salary", rows[1].Key)
	suite.True(rows[1].Income.Equal(decimal.NewFromInt(1000)))
	suite.True(rows[1].Net.Equal(decimal.NewFromInt(1000)))
}

func (suite *BreakdownServiceTestSuite) TestBreakdown_ByCategoryAllowList() {
	ctx := context.Background()
	suite.expectScope(ctx,
		[]domain.Transaction{
			expenseTxn("t1", "cat-food", 120, "m1"),
			expenseTxn("t2", "cat-rent", 900, "m1"),
		},
		[]domain.Category{
			{CategoryID: "cat-food", GroupID: "g1", Name: "Food"},
			{CategoryID: "cat-rent", GroupID: "g1", Name: "Rent"},
		},
		[]domain.Membership{activeMembership("m1", "p1", "g1", "One")},
	)

	rows, err := suite.service.Breakdown(ctx, "g1", dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    monthly(2025, 7),
		FilterIDs: []string{"cat-rent"},
	})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("cat-rent", rows[0].Key)
}

func (suite *BreakdownServiceTestSuite) TestBreakdown_ByMember() {
	ctx := context.Background()
	suite.expectScope(ctx,
		[]domain.Transaction{
			expenseTxn("t1", "cat-food", 100, "m1",
				domain.SplitItem{MemberID: "m1", Percentage: 60},
				domain.SplitItem{MemberID: "m2", Percentage: 40}),
		},
		[]domain.Category{{CategoryID: "cat-food", GroupID: "g1", Name: "Food"}},
		[]domain.Membership{
			activeMembership("m1", "p1", "g1", "One"),
			activeMembership("m2", "p2", "g1", "Two"),
		},
	)

	rows, err := suite.service.Breakdown(ctx, "g1", dto.BreakdownRequest{
		Dimension: domain.ByMember,
		Period:    monthly(2025, 7),
	})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("m1", rows[0].Key)
	suite.Equal("One", rows[0].Name)
	suite.True(rows[0].Expense.Equal(decimal.NewFromInt(60)), "got %s", rows[0].Expense)
	suite.Equal("m2", rows[1].Key)
	suite.True(rows[1].Expense.Equal(decimal.NewFromInt(40)), "got %s", rows[1].Expense)
}

// Non-strict selection rescales shared amounts to the selected members' share
// and keeps non-shared transactions only when a selected member paid them.
func (suite *BreakdownServiceTestSuite) TestBreakdown_NonStrictMemberFilter() {
	ctx := context.Background()
	suite.expectScope(ctx,
		[]domain.Transaction{
			expenseTxn("t1", "cat-food", 100, "m1",
				domain.SplitItem{MemberID: "m1", Percentage: 60},
				domain.SplitItem{MemberID: "m2", Percentage: 40}),
			expenseTxn("t2", "cat-food", 50, "m2"), // not shared, payer unselected
		},
		[]domain.Category{{CategoryID: "cat-food", GroupID: "g1", Name: "Food"}},
		[]domain.Membership{
			activeMembership("m1", "p1", "g1", "One"),
			activeMembership("m2", "p2", "g1", "Two"),
		},
	)

	rows, err := suite.service.Breakdown(ctx, "g1", dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    monthly(2025, 7),
		MemberIDs: []string{"m1"},
	})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.True(rows[0].Expense.Equal(decimal.NewFromInt(60)), "only m1's share of t1 counts, got %s", rows[0].Expense)
}

// Strict selection admits only shared transactions in which every selected
// member participates, so its totals never exceed the non-strict ones.
func (suite *BreakdownServiceTestSuite) TestBreakdown_StrictMemberFilter() {
	ctx := context.Background()
	suite.expectScope(ctx,
		[]domain.Transaction{
			expenseTxn("t1", "cat-food", 100, "m1",
				domain.SplitItem{MemberID: "m1", Percentage: 60},
				domain.SplitItem{MemberID: "m2", Percentage: 40}),
			expenseTxn("t2", "cat-food", 200, "m1",
				domain.SplitItem{MemberID: "m1", Percentage: 100}), // m2 absent
			expenseTxn("t3", "cat-food", 50, "m1"), // not shared
		},
		[]domain.Category{{CategoryID: "cat-food", GroupID: "g1", Name: "Food"}},
		[]domain.Membership{
			activeMembership("m1", "p1", "g1", "One"),
			activeMembership("m2", "p2", "g1", "Two"),
		},
	)

	rows, err := suite.service.Breakdown(ctx, "g1", dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    monthly(2025, 7),
		MemberIDs: []string{"m1", "m2"},
		Strict:    true,
	})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	// Only t1 qualifies, at the pair's combined 100%.
	suite.True(rows[0].Expense.Equal(decimal.NewFromInt(100)), "got %s", rows[0].Expense)

	// The same selection without strict admits t2 and t3 as well; strict never
	// attributes more than the proportional mode.
	loose, err := suite.service.Breakdown(ctx, "g1", dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    monthly(2025, 7),
		MemberIDs: []string{"m1", "m2"},
	})
	suite.Require().NoError(err)
	suite.Require().Len(loose, 1)
	suite.True(loose[0].Expense.Equal(decimal.NewFromInt(350)), "got %s", loose[0].Expense)
	suite.True(rows[0].Expense.LessThanOrEqual(loose[0].Expense))
}

func (suite *BreakdownServiceTestSuite) TestBreakdown_StrictWithNoMembersIsEmpty() {
	rows, err := suite.service.Breakdown(context.Background(), "g1", dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    monthly(2025, 7),
		Strict:    true,
	})

	suite.Require().NoError(err)
	suite.Empty(rows)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsInRange")
}

// A deep ancestor chain is cut to the group and its immediate parent before
// any data is fetched.
func (suite *BreakdownServiceTestSuite) TestBreakdown_ScopeStopsAtParent() {
	ctx := context.Background()
	start := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g2").Return(childGroup("g2", "g1"), nil)
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(childGroup("g1", "g0"), nil)
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g0").Return(rootGroup("g0"), nil)
	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, []string{"g2", "g1"}, start, end).Return([]domain.Transaction{}, nil)
	suite.mockCategoryRepo.On("ListCategoriesWithBudget", ctx, []string{"g2", "g1"}).Return([]domain.Category{}, nil)
	suite.mockMembershipRepo.On("ListActiveMemberships", ctx, []string{"g2", "g1"}).Return([]domain.Membership{}, nil)

	rows, err := suite.service.Breakdown(ctx, "g2", dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    monthly(2025, 7),
	})

	suite.Require().NoError(err)
	suite.Empty(rows)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestBreakdownServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BreakdownServiceTestSuite))
}
