package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
	portsrepo "github.com/vidanueva/church_admin_app/internal/core/ports/repositories"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service with the provided dependencies
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccountsByPerson retrieves all accounts registered to a person.
func (s *accountService) ListAccountsByPerson(ctx context.Context, personID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByPerson(ctx, personID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for person",
			slog.String("person_id", personID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// CreateAccount registers a new bank account for a person.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	bankName := strings.TrimSpace(req.BankName)
	accountNumber := strings.TrimSpace(req.AccountNumber)
	if req.PersonID == "" || bankName == "" || accountNumber == "" {
		return nil, fmt.Errorf("%w: personId, bankName and accountNumber are required", apperrors.ErrValidation)
	}
	accountNumberCCI := strings.TrimSpace(req.AccountNumberCCI)
	if len(accountNumberCCI) > maxAccountNumberCCI {
		return nil, fmt.Errorf("%w: accountNumberCci exceeds %d characters", apperrors.ErrValidation, maxAccountNumberCCI)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		PersonID:         req.PersonID,
		Alias:            strings.TrimSpace(req.Alias),
		BankName:         bankName,
		AccountNumber:    accountNumber,
		AccountNumberCCI: accountNumberCCI,
		DocType:          req.DocType,
		DocNumber:        req.DocNumber,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("person_id", account.PersonID))
	return &account, nil
}

// DeactivateAccount marks an account as inactive. Requests already pointing
// at it keep their snapshot of the deposit data.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrStateConflict) {
			s.LogError(ctx, err, "Failed to deactivate account",
				slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deactivated",
		slog.String("account_id", accountID),
		slog.String("deactivated_by", userID))
	return nil
}
