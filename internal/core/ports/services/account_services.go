package services

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// AccountReaderSvc defines read operations for the account registry.
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccountsByPerson(ctx context.Context, personID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the account registry.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
