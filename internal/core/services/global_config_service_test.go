package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/core/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// MockGlobalConfigRepository is a mock type for the GlobalConfigRepositoryFacade interface
type MockGlobalConfigRepository struct {
	mock.Mock
}

func (m *MockGlobalConfigRepository) FindConfig(ctx context.Context) (*domain.GlobalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalConfig), args.Error(1)
}

func (m *MockGlobalConfigRepository) SaveConfig(ctx context.Context, config domain.GlobalConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockGlobalConfigRepository) UpdateConfig(ctx context.Context, config domain.GlobalConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

type GlobalConfigServiceTestSuite struct {
	suite.Suite
	mockConfigRepo *MockGlobalConfigRepository
	service        portssvc.GlobalConfigSvcFacade

	admin domain.Identity
}

func (suite *GlobalConfigServiceTestSuite) SetupTest() {
	suite.mockConfigRepo = new(MockGlobalConfigRepository)
	suite.service = services.NewGlobalConfigService(suite.mockConfigRepo)
	suite.admin = domain.Identity{
		UserID: "user-admin",
		Roles:  []domain.RoleKind{domain.RoleAdmin},
	}
}

func (suite *GlobalConfigServiceTestSuite) TestGetConfig_ReturnsExistingRow() {
	ctx := context.Background()
	existing := domain.DefaultGlobalConfig()
	existing.ConfigID = "config-1"
	existing.MaxAmountLeadApproval = decimal.NewFromInt(750)

	suite.mockConfigRepo.On("FindConfig", ctx).Return(&existing, nil).Once()

	config, err := suite.service.GetConfig(ctx)

	suite.Require().NoError(err)
	suite.Equal("config-1", config.ConfigID)
	suite.True(config.MaxAmountLeadApproval.Equal(decimal.NewFromInt(750)))
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "SaveConfig", mock.Anything, mock.Anything)
}

func (suite *GlobalConfigServiceTestSuite) TestGetConfig_SeedsDefaultsOnFirstRead() {
	ctx := context.Background()

	suite.mockConfigRepo.On("FindConfig", ctx).Return(nil, fmt.Errorf("%w: no config row", apperrors.ErrNotFound)).Once()
	suite.mockConfigRepo.On("SaveConfig", ctx, mock.AnythingOfType("domain.GlobalConfig")).Return(nil).Once()

	config, err := suite.service.GetConfig(ctx)

	suite.Require().NoError(err)
	suite.NotEmpty(config.ConfigID)
	suite.True(config.MaxAmountLeadApproval.Equal(decimal.NewFromInt(500)))
	suite.Equal(domain.CurrencyPEN, config.DefaultCurrency)
	suite.Equal("system", config.CreatedBy)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *GlobalConfigServiceTestSuite) TestGetConfig_SeedRaceFallsBackToReRead() {
	ctx := context.Background()
	winner := domain.DefaultGlobalConfig()
	winner.ConfigID = "config-winner"

	suite.mockConfigRepo.On("FindConfig", ctx).Return(nil, fmt.Errorf("%w: no config row", apperrors.ErrNotFound)).Once()
	suite.mockConfigRepo.On("SaveConfig", ctx, mock.AnythingOfType("domain.GlobalConfig")).Return(fmt.Errorf("%w: config already exists", apperrors.ErrDuplicate)).Once()
	suite.mockConfigRepo.On("FindConfig", ctx).Return(&winner, nil).Once()

	config, err := suite.service.GetConfig(ctx)

	suite.Require().NoError(err)
	suite.Equal("config-winner", config.ConfigID)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *GlobalConfigServiceTestSuite) TestUpdateConfig_RequiresAdmin() {
	ctx := context.Background()
	pastor := domain.Identity{
		UserID: "user-lead",
		Roles:  []domain.RoleKind{domain.RoleLeadPastor},
	}
	threshold := decimal.NewFromInt(900)

	config, err := suite.service.UpdateConfig(ctx, dto.UpdateGlobalConfigRequest{MaxAmountLeadApproval: &threshold}, pastor)

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "UpdateConfig", mock.Anything, mock.Anything)
}

func (suite *GlobalConfigServiceTestSuite) TestUpdateConfig_AppliesPartialChanges() {
	ctx := context.Background()
	existing := domain.DefaultGlobalConfig()
	existing.ConfigID = "config-1"

	threshold := decimal.NewFromInt(1200)
	currency := "usd"

	suite.mockConfigRepo.On("FindConfig", ctx).Return(&existing, nil).Once()
	suite.mockConfigRepo.On("UpdateConfig", ctx, mock.AnythingOfType("domain.GlobalConfig")).Return(nil).Once()

	config, err := suite.service.UpdateConfig(ctx, dto.UpdateGlobalConfigRequest{
		MaxAmountLeadApproval: &threshold,
		DefaultCurrency:       &currency,
		RemainderTarget: &dto.RemainderTargetPayload{
			AccountName:   "Church Treasury",
			BankName:      "BCP",
			AccountNumber: "191-999000",
		},
	}, suite.admin)

	suite.Require().NoError(err)
	suite.True(config.MaxAmountLeadApproval.Equal(threshold))
	suite.Equal(domain.CurrencyUSD, config.DefaultCurrency)
	suite.Equal("Church Treasury", config.RemainderTarget.AccountName)
	suite.Equal(suite.admin.UserID, config.LastUpdatedBy)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *GlobalConfigServiceTestSuite) TestUpdateConfig_RejectsNegativeThreshold() {
	ctx := context.Background()
	existing := domain.DefaultGlobalConfig()
	existing.ConfigID = "config-1"

	threshold := decimal.NewFromInt(-1)

	suite.mockConfigRepo.On("FindConfig", ctx).Return(&existing, nil).Once()

	config, err := suite.service.UpdateConfig(ctx, dto.UpdateGlobalConfigRequest{MaxAmountLeadApproval: &threshold}, suite.admin)

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConfigRepo.AssertNotCalled(suite.T(), "UpdateConfig", mock.Anything, mock.Anything)
}

func (suite *GlobalConfigServiceTestSuite) TestUpdateConfig_AcceptsZeroThreshold() {
	ctx := context.Background()
	existing := domain.DefaultGlobalConfig()
	existing.ConfigID = "config-1"

	threshold := decimal.Zero

	suite.mockConfigRepo.On("FindConfig", ctx).Return(&existing, nil).Once()
	suite.mockConfigRepo.On("UpdateConfig", ctx, mock.AnythingOfType("domain.GlobalConfig")).Return(nil).Once()

	config, err := suite.service.UpdateConfig(ctx, dto.UpdateGlobalConfigRequest{MaxAmountLeadApproval: &threshold}, suite.admin)

	suite.Require().NoError(err)
	suite.True(config.MaxAmountLeadApproval.IsZero())
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func TestGlobalConfigServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GlobalConfigServiceTestSuite))
}
