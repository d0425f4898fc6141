package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
	portsrepo "github.com/vidanueva/church_admin_app/internal/core/ports/repositories"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

const (
	minDescriptionLength     = 10
	maxDescriptionLength     = 500
	minItemDescriptionLength = 3
	maxItemDescriptionLength = 200
	maxRejectionReasonLength = 300
	maxAccountNumberCCI      = 20
)

// financialRequestService implements the FinancialRequestSvcFacade interface.
// It owns the approval workflow: creation, edits while still in the initial
// state, and guarded transitions along the status graph.
type financialRequestService struct {
	BaseService
	requestRepo portsrepo.FinancialRequestRepositoryFacade
	branchRepo  portsrepo.BranchReader
	accountRepo portsrepo.AccountReader
	userRepo    portsrepo.UserReader
	configSvc   portssvc.GlobalConfigSvcFacade
}

// NewFinancialRequestService creates a new financial request service with the provided dependencies
func NewFinancialRequestService(
	requestRepo portsrepo.FinancialRequestRepositoryFacade,
	branchRepo portsrepo.BranchReader,
	accountRepo portsrepo.AccountReader,
	userRepo portsrepo.UserReader,
	configSvc portssvc.GlobalConfigSvcFacade,
) portssvc.FinancialRequestSvcFacade {
	return &financialRequestService{
		requestRepo: requestRepo,
		branchRepo:  branchRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		configSvc:   configSvc,
	}
}

var _ portssvc.FinancialRequestSvcFacade = (*financialRequestService)(nil)

// requesterRef identifies the person a request is raised for. It is the actor
// unless an admin creates the request on someone else's behalf.
type requesterRef struct {
	UserID   string
	PersonID string
	BranchID string
}

func (s *financialRequestService) resolveRequester(ctx context.Context, req dto.CreateFinancialRequestRequest, actor domain.Identity) (requesterRef, error) {
	if req.RequesterUserID == "" || req.RequesterUserID == actor.UserID {
		return requesterRef{UserID: actor.UserID, PersonID: actor.PersonID, BranchID: actor.BranchID}, nil
	}
	if !actor.IsAdmin() {
		return requesterRef{}, fmt.Errorf("%w: only an admin may create a request on behalf of another user", apperrors.ErrForbidden)
	}
	user, err := s.userRepo.FindUserByID(ctx, req.RequesterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return requesterRef{}, fmt.Errorf("%w: requester user %s", apperrors.ErrNotFound, req.RequesterUserID)
		}
		return requesterRef{}, err
	}
	if !user.IsActive {
		return requesterRef{}, fmt.Errorf("%w: requester user %s is inactive", apperrors.ErrValidation, req.RequesterUserID)
	}
	return requesterRef{UserID: user.UserID, PersonID: user.PersonID, BranchID: user.BranchID}, nil
}

func toDomainItems(inputs []dto.RequestItemInput) ([]domain.RequestItem, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	items := make([]domain.RequestItem, 0, len(inputs))
	for i, in := range inputs {
		description := strings.TrimSpace(in.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: item %d is missing a description", apperrors.ErrValidation, i+1)
		}
		if len(description) < minItemDescriptionLength || len(description) > maxItemDescriptionLength {
			return nil, fmt.Errorf("%w: item %d description must be between %d and %d characters", apperrors.ErrValidation, i+1, minItemDescriptionLength, maxItemDescriptionLength)
		}
		if !in.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: item %d must have a positive amount", apperrors.ErrValidation, i+1)
		}
		items = append(items, domain.RequestItem{Description: description, Amount: in.Amount})
	}
	return items, nil
}

// validateDeposit checks the disbursement destination against its type. For
// own-account deposits the referenced account must be active and belong to
// the requester's person.
func (s *financialRequestService) validateDeposit(ctx context.Context, r *domain.FinancialRequest, requesterPersonID string) error {
	if !domain.ValidDepositType(r.DepositType) {
		return fmt.Errorf("%w: unknown deposit type %q", apperrors.ErrValidation, r.DepositType)
	}
	if len(r.AccountNumberCCI) > maxAccountNumberCCI {
		return fmt.Errorf("%w: accountNumberCci exceeds %d characters", apperrors.ErrValidation, maxAccountNumberCCI)
	}
	switch r.DepositType {
	case domain.DepositOwnAccount:
		if r.OwnAccountID == "" {
			return fmt.Errorf("%w: ownAccountId is required for own-account deposits", apperrors.ErrValidation)
		}
		account, err := s.accountRepo.FindAccountByID(ctx, r.OwnAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, r.OwnAccountID)
			}
			return err
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, r.OwnAccountID)
		}
		if requesterPersonID == "" || account.PersonID != requesterPersonID {
			return fmt.Errorf("%w: account %s does not belong to the requester", apperrors.ErrValidation, r.OwnAccountID)
		}
	case domain.DepositExternal:
		if strings.TrimSpace(r.BankName) == "" || strings.TrimSpace(r.AccountNumber) == "" {
			return fmt.Errorf("%w: bankName and accountNumber are required for external deposits", apperrors.ErrValidation)
		}
	}
	return nil
}

// CreateRequest validates and persists a new request in its initial state
// with the seed audit entry.
func (s *financialRequestService) CreateRequest(ctx context.Context, req dto.CreateFinancialRequestRequest, actor domain.Identity) (*domain.FinancialRequest, error) {
	if len(actor.Roles) == 0 {
		return nil, fmt.Errorf("%w: the actor has no recognized role", apperrors.ErrForbidden)
	}

	requester, err := s.resolveRequester(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	branchID := req.BranchID
	if branchID == "" {
		branchID = requester.BranchID
	}
	if branchID == "" {
		return nil, fmt.Errorf("%w: branchId is required when the requester has no assigned branch", apperrors.ErrValidation)
	}
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return nil, err
	}
	if !branch.IsActive {
		return nil, fmt.Errorf("%w: branch %s is inactive", apperrors.ErrValidation, branchID)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if len(description) < minDescriptionLength || len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be between %d and %d characters", apperrors.ErrValidation, minDescriptionLength, maxDescriptionLength)
	}

	items, err := toDomainItems(req.Items)
	if err != nil {
		return nil, err
	}

	// The configuration is re-read on every use-case so threshold changes
	// apply to requests created afterwards.
	config, err := s.configSvc.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	currency := domain.Currency(strings.ToUpper(strings.TrimSpace(req.Currency)))
	if currency == "" {
		currency = config.DefaultCurrency
	}
	if !domain.ValidCurrency(currency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, req.Currency)
	}

	supervisorUserID := req.SupervisorUserID
	if supervisorUserID == "" {
		supervisorUserID = branch.ManagerUserID
	} else {
		exists, err := s.userRepo.UserExists(ctx, supervisorUserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: supervisor user %s not found", apperrors.ErrValidation, supervisorUserID)
		}
	}

	now := time.Now()
	request := domain.FinancialRequest{
		RequestID:        uuid.NewString(),
		BranchID:         branch.BranchID,
		SupervisorUserID: supervisorUserID,
		RequesterUserID:  requester.UserID,
		Description:      description,
		Currency:         currency,
		CostCenterID:     req.CostCenterID,
		Items:            items,
		DepositType:      domain.DepositType(strings.ToUpper(strings.TrimSpace(req.DepositType))),
		OwnAccountID:     req.OwnAccountID,
		BankName:         strings.TrimSpace(req.BankName),
		AccountNumber:    strings.TrimSpace(req.AccountNumber),
		AccountNumberCCI: strings.TrimSpace(req.AccountNumberCCI),
		DocType:          req.DocType,
		DocNumber:        req.DocNumber,
		RemainderAmount:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.validateDeposit(ctx, &request, requester.PersonID); err != nil {
		return nil, err
	}

	request.RecalculateDerived(config.MaxAmountLeadApproval)
	if !request.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	request.AppendStatus(domain.StatusHistoryEntry{
		Status:    domain.StatusCreated,
		ChangedAt: now,
		ChangedBy: actor.UserID,
		Approved:  true,
	})

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save financial request",
			slog.String("request_id", request.RequestID))
		return nil, err
	}

	s.LogInfo(ctx, "Financial request created",
		slog.String("request_id", request.RequestID),
		slog.String("branch_id", request.BranchID),
		slog.String("requester_user_id", request.RequesterUserID),
		slog.String("total_amount", request.TotalAmount.String()))
	return &request, nil
}

// UpdateRequest edits a request that has not yet entered the approval
// pipeline. Every supplied field is re-validated and the derived fields are
// recomputed against the live threshold.
func (s *financialRequestService) UpdateRequest(ctx context.Context, requestID string, req dto.UpdateFinancialRequestRequest, actor domain.Identity) (*domain.FinancialRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.CurrentStatus != domain.StatusCreated {
		return nil, fmt.Errorf("%w: request %s is in status %s and can no longer be edited", apperrors.ErrStateConflict, requestID, request.CurrentStatus)
	}
	if request.RequesterUserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the requester or an admin may edit this request", apperrors.ErrForbidden)
	}

	// Moving the request re-defaults the supervisor to the new branch's
	// manager unless the payload names one explicitly.
	if req.BranchID != nil && *req.BranchID != request.BranchID {
		branch, err := s.branchRepo.FindBranchByID(ctx, *req.BranchID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, *req.BranchID)
			}
			return nil, err
		}
		if !branch.IsActive {
			return nil, fmt.Errorf("%w: branch %s is inactive", apperrors.ErrValidation, *req.BranchID)
		}
		request.BranchID = branch.BranchID
		if req.SupervisorUserID == nil {
			request.SupervisorUserID = branch.ManagerUserID
		}
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description cannot be emptied", apperrors.ErrValidation)
		}
		if len(description) < minDescriptionLength || len(description) > maxDescriptionLength {
			return nil, fmt.Errorf("%w: description must be between %d and %d characters", apperrors.ErrValidation, minDescriptionLength, maxDescriptionLength)
		}
		request.Description = description
	}
	if req.Currency != nil {
		currency := domain.Currency(strings.ToUpper(strings.TrimSpace(*req.Currency)))
		if !domain.ValidCurrency(currency) {
			return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, *req.Currency)
		}
		request.Currency = currency
	}
	if req.CostCenterID != nil {
		request.CostCenterID = *req.CostCenterID
	}
	if req.Items != nil {
		items, err := toDomainItems(req.Items)
		if err != nil {
			return nil, err
		}
		request.Items = items
	}
	if req.DepositType != nil {
		request.DepositType = domain.DepositType(strings.ToUpper(strings.TrimSpace(*req.DepositType)))
	}
	if req.OwnAccountID != nil {
		request.OwnAccountID = *req.OwnAccountID
	}
	if req.BankName != nil {
		request.BankName = strings.TrimSpace(*req.BankName)
	}
	if req.AccountNumber != nil {
		request.AccountNumber = strings.TrimSpace(*req.AccountNumber)
	}
	if req.AccountNumberCCI != nil {
		request.AccountNumberCCI = strings.TrimSpace(*req.AccountNumberCCI)
	}
	if req.DocType != nil {
		request.DocType = *req.DocType
	}
	if req.DocNumber != nil {
		request.DocNumber = *req.DocNumber
	}
	if req.SupervisorUserID != nil {
		if *req.SupervisorUserID != "" {
			exists, err := s.userRepo.UserExists(ctx, *req.SupervisorUserID)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, fmt.Errorf("%w: supervisor user %s not found", apperrors.ErrValidation, *req.SupervisorUserID)
			}
		}
		request.SupervisorUserID = *req.SupervisorUserID
	}

	// The deposit destination must be coherent in its final form, not just
	// per changed field.
	requesterPersonID := actor.PersonID
	if request.RequesterUserID != actor.UserID {
		requesterUser, err := s.userRepo.FindUserByID(ctx, request.RequesterUserID)
		if err != nil {
			return nil, err
		}
		requesterPersonID = requesterUser.PersonID
	}
	if err := s.validateDeposit(ctx, request, requesterPersonID); err != nil {
		return nil, err
	}

	config, err := s.configSvc.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	request.RecalculateDerived(config.MaxAmountLeadApproval)
	if !request.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	request.LastUpdatedAt = time.Now()
	request.LastUpdatedBy = actor.UserID

	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "Failed to update financial request",
			slog.String("request_id", requestID))
		return nil, err
	}

	s.LogInfo(ctx, "Financial request updated",
		slog.String("request_id", requestID),
		slog.String("total_amount", request.TotalAmount.String()))
	return request, nil
}

// ChangeRequestStatus performs one workflow transition: graph check first,
// then the role guard, then payload validation, and finally a single atomic
// write of the whole aggregate with the new audit entry appended.
func (s *financialRequestService) ChangeRequestStatus(ctx context.Context, requestID string, req dto.ChangeRequestStatusRequest, actor domain.Identity) (*domain.FinancialRequest, error) {
	target := domain.RequestStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !domain.ValidRequestStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}
	if target == domain.StatusCreated {
		return nil, fmt.Errorf("%w: a request cannot transition back to %s", apperrors.ErrValidation, domain.StatusCreated)
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is already in terminal status %s", apperrors.ErrStateConflict, requestID, request.CurrentStatus)
	}

	config, err := s.configSvc.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	request.RecalculateDerived(config.MaxAmountLeadApproval)

	if !request.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", apperrors.ErrStateConflict, request.CurrentStatus, target)
	}
	if err := domain.AuthorizeTransition(request, target, actor); err != nil {
		return nil, err
	}

	entry := domain.StatusHistoryEntry{
		Status:    target,
		ChangedAt: time.Now(),
		ChangedBy: actor.UserID,
		Approved:  target != domain.StatusRejected,
		Metadata:  req.Metadata,
	}

	if target == domain.StatusRejected {
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
		}
		if len(reason) > maxRejectionReasonLength {
			return nil, fmt.Errorf("%w: rejection reason exceeds %d characters", apperrors.ErrValidation, maxRejectionReasonLength)
		}
		entry.RejectionReason = reason
	}

	evidence := make([]string, 0, len(req.EvidenceURLs))
	for _, url := range req.EvidenceURLs {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			evidence = append(evidence, trimmed)
		}
	}
	if target.RequiresEvidence() && len(evidence) == 0 {
		return nil, fmt.Errorf("%w: status %s requires at least one evidence URL", apperrors.ErrValidation, target)
	}
	entry.EvidenceURLs = evidence

	// The remainder amount is set exactly once, on the refund transition.
	if target == domain.StatusRemainderRefunded {
		if req.RemainderAmount == nil {
			return nil, fmt.Errorf("%w: a remainder amount is required for %s", apperrors.ErrValidation, domain.StatusRemainderRefunded)
		}
		if req.RemainderAmount.IsNegative() {
			return nil, fmt.Errorf("%w: remainder amount cannot be negative", apperrors.ErrValidation)
		}
		request.RemainderAmount = *req.RemainderAmount
		if entry.Metadata == nil {
			entry.Metadata = map[string]any{}
		}
		entry.Metadata["remainderAmount"] = req.RemainderAmount.String()
	} else if req.RemainderAmount != nil {
		return nil, fmt.Errorf("%w: remainderAmount is only accepted when transitioning to %s", apperrors.ErrValidation, domain.StatusRemainderRefunded)
	}

	request.AppendStatus(entry)
	request.LastUpdatedAt = entry.ChangedAt
	request.LastUpdatedBy = actor.UserID

	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "Failed to persist status transition",
			slog.String("request_id", requestID),
			slog.String("target_status", string(target)))
		return nil, err
	}

	s.LogInfo(ctx, "Financial request status changed",
		slog.String("request_id", requestID),
		slog.String("status", string(target)),
		slog.String("changed_by", actor.UserID))
	return request, nil
}

// canView reports whether the actor may read the given request.
func canView(request *domain.FinancialRequest, actor domain.Identity) bool {
	if actor.IsAdmin() || actor.HasRole(domain.RoleLeadPastor) {
		return true
	}
	if actor.HasRole(domain.RoleNetworkPastor) && actor.BranchID == request.BranchID {
		return true
	}
	return request.RequesterUserID == actor.UserID || request.SupervisorUserID == actor.UserID
}

// GetRequestByID retrieves a single request the actor is allowed to see.
func (s *financialRequestService) GetRequestByID(ctx context.Context, requestID string, actor domain.Identity) (*domain.FinancialRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find financial request",
				slog.String("request_id", requestID))
		}
		return nil, err
	}
	if !canView(request, actor) {
		return nil, fmt.Errorf("%w: you may not view this request", apperrors.ErrForbidden)
	}
	return request, nil
}

// ListRequests retrieves requests visible to the actor, newest first.
// Admins and lead pastors see everything; network pastors are scoped to
// their branch; everyone else sees only their own requests.
func (s *financialRequestService) ListRequests(ctx context.Context, params dto.ListFinancialRequestsParams, actor domain.Identity) ([]domain.FinancialRequest, error) {
	filter := portsrepo.FinancialRequestFilter{
		BranchID:        params.BranchID,
		RequesterUserID: params.RequesterUserID,
	}
	if params.Status != "" {
		status := domain.RequestStatus(strings.ToUpper(strings.TrimSpace(params.Status)))
		if !domain.ValidRequestStatus(status) {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = status
	}

	privileged := actor.IsAdmin() || actor.HasRole(domain.RoleLeadPastor)
	if !privileged {
		if actor.HasRole(domain.RoleNetworkPastor) {
			filter.BranchID = actor.BranchID
		} else {
			filter.RequesterUserID = actor.UserID
		}
	}

	requests, err := s.requestRepo.ListRequests(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial requests")
		return nil, err
	}
	if requests == nil {
		return []domain.FinancialRequest{}, nil
	}
	return requests, nil
}
