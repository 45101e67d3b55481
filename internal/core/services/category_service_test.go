package services_test

import (
	"context"
	"testing"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/core/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockGroupRepo      *MockGroupRepository
	mockMembershipRepo *MockMembershipRepository
	mockCategoryRepo   *MockCategoryRepository
	service            portssvc.CategorySvc
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockMembershipRepo = new(MockMembershipRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)

	scope := services.NewScopeResolverService(suite.mockGroupRepo, suite.mockMembershipRepo)
	suite.service = services.NewCategoryService(scope, suite.mockCategoryRepo)
}

func (suite *CategoryServiceTestSuite) TestListCategoriesWithBudget_IncludesParentScope() {
	ctx := context.Background()
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g2").Return(childGroup("g2", "g1"), nil)
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(rootGroup("g1"), nil)
	suite.mockCategoryRepo.On("ListCategoriesWithBudget", ctx, []string{"g2", "g1"}).Return([]domain.Category{
		{CategoryID: "cat-own", GroupID: "g2", Name: "Own"},
		{CategoryID: "cat-parent", GroupID: "g1", Name: "Shared"},
	}, nil)

	categories, err := suite.service.ListCategoriesWithBudget(ctx, "g2")

	suite.Require().NoError(err)
	suite.Len(categories, 2)
}

func (suite *CategoryServiceTestSuite) TestReorderCategories() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("ListCategoriesWithBudget", ctx, []string{"g1"}).Return([]domain.Category{
		{CategoryID: "cat-a", GroupID: "g1", Name: "A"},
		{CategoryID: "cat-b", GroupID: "g1", Name: "B"},
		{CategoryID: "cat-c", GroupID: "g1", Name: "C"},
	}, nil)
	suite.mockCategoryRepo.On("UpdateCategoryOrders", ctx, "g1",
		map[string]int{"cat-c": 0, "cat-a": 1, "cat-b": 2}, "p1", mock.Anything).Return(nil)

	err := suite.service.ReorderCategories(ctx, "g1", dto.ReorderCategoriesRequest{
		OrderedCategoryIDs: []string{"cat-c", "cat-a", "cat-b"},
	}, "p1")

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestReorderCategories_RejectsNonPermutations() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("ListCategoriesWithBudget", ctx, []string{"g1"}).Return([]domain.Category{
		{CategoryID: "cat-a", GroupID: "g1", Name: "A"},
		{CategoryID: "cat-b", GroupID: "g1", Name: "B"},
	}, nil)

	cases := [][]string{
		{"cat-a"},                   // missing one
		{"cat-a", "cat-b", "cat-x"}, // extra
		{"cat-a", "cat-x"},          // foreign id
		{"cat-a", "cat-a"},          // duplicate
	}
	for _, ordered := range cases {
		err := suite.service.ReorderCategories(ctx, "g1", dto.ReorderCategoriesRequest{
			OrderedCategoryIDs: ordered,
		}, "p1")
		suite.Require().ErrorIs(err, apperrors.ErrValidation, "ordered %v", ordered)
	}
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateCategoryOrders")
}

func (suite *CategoryServiceTestSuite) TestReorderCategories_Validation() {
	ctx := context.Background()

	err := suite.service.ReorderCategories(ctx, "", dto.ReorderCategoriesRequest{
		OrderedCategoryIDs: []string{"cat-a"},
	}, "p1")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	err = suite.service.ReorderCategories(ctx, "g1", dto.ReorderCategoriesRequest{}, "p1")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
