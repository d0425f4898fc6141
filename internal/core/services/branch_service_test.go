package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/core/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// MockBranchRepository is a mock type for the BranchRepositoryFacade interface
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListChildBranches(ctx context.Context, parentBranchID string) ([]domain.Branch, error) {
	args := m.Called(ctx, parentBranchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateBranches(ctx context.Context, branches []domain.Branch) error {
	args := m.Called(ctx, branches)
	return args.Error(0)
}

type BranchServiceTestSuite struct {
	suite.Suite
	mockBranchRepo *MockBranchRepository
	mockUserRepo   *MockUserReader
	service        portssvc.BranchSvcFacade
}

func (suite *BranchServiceTestSuite) SetupTest() {
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.service = services.NewBranchService(suite.mockBranchRepo, suite.mockUserRepo)
}

func (suite *BranchServiceTestSuite) TestCreateBranch_RootBranch() {
	ctx := context.Background()

	suite.mockBranchRepo.On("SaveBranch", ctx, mock.AnythingOfType("domain.Branch")).Return(nil).Once()

	branch, err := suite.service.CreateBranch(ctx, dto.CreateBranchRequest{Name: "Main Campus"}, "user-admin")

	suite.Require().NoError(err)
	suite.NotEmpty(branch.BranchID)
	suite.Equal("Main Campus", branch.Name)
	suite.Empty(branch.ParentBranchID)
	suite.Equal([]string{}, branch.Ancestors)
	suite.Equal(0, branch.Depth)
	suite.Equal("/"+branch.BranchID, branch.NodePath)
	suite.True(branch.IsActive)
	suite.True(branch.IsChurch)
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func (suite *BranchServiceTestSuite) TestCreateBranch_ChildInheritsHierarchy() {
	ctx := context.Background()
	parent := &domain.Branch{
		BranchID:  "branch-root",
		Name:      "Main Campus",
		Ancestors: []string{},
		Depth:     0,
		NodePath:  "/branch-root",
		IsActive:  true,
	}

	suite.mockBranchRepo.On("FindBranchByID", ctx, "branch-root").Return(parent, nil).Once()
	suite.mockUserRepo.On("UserExists", ctx, "manager-1").Return(true, nil).Once()
	suite.mockBranchRepo.On("SaveBranch", ctx, mock.AnythingOfType("domain.Branch")).Return(nil).Once()

	branch, err := suite.service.CreateBranch(ctx, dto.CreateBranchRequest{
		Name:           "North Annex",
		ParentBranchID: "branch-root",
		ManagerUserID:  "manager-1",
	}, "user-admin")

	suite.Require().NoError(err)
	suite.Equal("branch-root", branch.ParentBranchID)
	suite.Equal([]string{"branch-root"}, branch.Ancestors)
	suite.Equal(1, branch.Depth)
	suite.Equal("/branch-root/"+branch.BranchID, branch.NodePath)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *BranchServiceTestSuite) TestCreateBranch_UnknownParent() {
	ctx := context.Background()

	suite.mockBranchRepo.On("FindBranchByID", ctx, "branch-missing").Return(nil, apperrors.ErrNotFound).Once()

	branch, err := suite.service.CreateBranch(ctx, dto.CreateBranchRequest{
		Name:           "Orphan",
		ParentBranchID: "branch-missing",
	}, "user-admin")

	suite.Require().Error(err)
	suite.Nil(branch)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "SaveBranch", mock.Anything, mock.Anything)
}

func (suite *BranchServiceTestSuite) TestUpdateBranch_RejectsSelfParent() {
	ctx := context.Background()
	branch := &domain.Branch{
		BranchID: "branch-1",
		Name:     "North Annex",
		IsActive: true,
	}
	selfID := "branch-1"

	suite.mockBranchRepo.On("FindBranchByID", ctx, "branch-1").Return(branch, nil).Once()

	updated, err := suite.service.UpdateBranch(ctx, "branch-1", dto.UpdateBranchRequest{ParentBranchID: &selfID}, "user-admin")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "UpdateBranches", mock.Anything, mock.Anything)
}

func (suite *BranchServiceTestSuite) TestUpdateBranch_RejectsCycle() {
	ctx := context.Background()
	branch := &domain.Branch{
		BranchID:  "branch-1",
		Name:      "North Annex",
		Ancestors: []string{},
		NodePath:  "/branch-1",
		IsActive:  true,
	}
	grandchild := &domain.Branch{
		BranchID:  "branch-3",
		Name:      "Small Group Room",
		Ancestors: []string{"branch-1", "branch-2"},
		Depth:     2,
		NodePath:  "/branch-1/branch-2/branch-3",
		IsActive:  true,
	}
	newParentID := "branch-3"

	suite.mockBranchRepo.On("FindBranchByID", ctx, "branch-1").Return(branch, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, "branch-3").Return(grandchild, nil).Once()

	updated, err := suite.service.UpdateBranch(ctx, "branch-1", dto.UpdateBranchRequest{ParentBranchID: &newParentID}, "user-admin")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "UpdateBranches", mock.Anything, mock.Anything)
}

func (suite *BranchServiceTestSuite) TestUpdateBranch_ReparentRefreshesDescendants() {
	ctx := context.Background()
	branch := &domain.Branch{
		BranchID:       "branch-2",
		Name:           "North Annex",
		ParentBranchID: "branch-1",
		Ancestors:      []string{"branch-1"},
		Depth:          1,
		NodePath:       "/branch-1/branch-2",
		IsActive:       true,
	}
	newParent := &domain.Branch{
		BranchID:  "branch-9",
		Name:      "East Campus",
		Ancestors: []string{},
		Depth:     0,
		NodePath:  "/branch-9",
		IsActive:  true,
	}
	child := domain.Branch{
		BranchID:       "branch-3",
		Name:           "Youth Hall",
		ParentBranchID: "branch-2",
		Ancestors:      []string{"branch-1", "branch-2"},
		Depth:          2,
		NodePath:       "/branch-1/branch-2/branch-3",
		IsActive:       true,
	}
	newParentID := "branch-9"

	suite.mockBranchRepo.On("FindBranchByID", ctx, "branch-2").Return(branch, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, "branch-9").Return(newParent, nil).Once()
	suite.mockBranchRepo.On("ListChildBranches", ctx, "branch-2").Return([]domain.Branch{child}, nil).Once()
	suite.mockBranchRepo.On("ListChildBranches", ctx, "branch-3").Return([]domain.Branch{}, nil).Once()
	suite.mockBranchRepo.On("UpdateBranches", ctx, mock.MatchedBy(func(branches []domain.Branch) bool {
		if len(branches) != 2 {
			return false
		}
		root, descendant := branches[0], branches[1]
		return root.BranchID == "branch-2" && root.NodePath == "/branch-9/branch-2" && root.Depth == 1 &&
			descendant.BranchID == "branch-3" && descendant.NodePath == "/branch-9/branch-2/branch-3" && descendant.Depth == 2
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBranch(ctx, "branch-2", dto.UpdateBranchRequest{ParentBranchID: &newParentID}, "user-admin")

	suite.Require().NoError(err)
	suite.Equal([]string{"branch-9"}, updated.Ancestors)
	suite.Equal("/branch-9/branch-2", updated.NodePath)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "UpdateBranch", mock.Anything, mock.Anything)
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func TestBranchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BranchServiceTestSuite))
}
