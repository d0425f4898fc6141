package services

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// FinancialRequestReaderSvc defines read operations for financial requests.
type FinancialRequestReaderSvc interface {
	// GetRequestByID retrieves a single request aggregate.
	GetRequestByID(ctx context.Context, requestID string, actor domain.Identity) (*domain.FinancialRequest, error)

	// ListRequests retrieves requests visible to the actor, newest first.
	// Non-privileged actors are implicitly scoped to their own branch.
	ListRequests(ctx context.Context, params dto.ListFinancialRequestsParams, actor domain.Identity) ([]domain.FinancialRequest, error)
}

// FinancialRequestWriterSvc defines the mutating workflow use-cases.
type FinancialRequestWriterSvc interface {
	// CreateRequest validates and persists a new request in CREATED state
	// with its seed history entry.
	CreateRequest(ctx context.Context, req dto.CreateFinancialRequestRequest, actor domain.Identity) (*domain.FinancialRequest, error)

	// UpdateRequest edits a request still in CREATED state, re-validating
	// every supplied field and recomputing derived values.
	UpdateRequest(ctx context.Context, requestID string, req dto.UpdateFinancialRequestRequest, actor domain.Identity) (*domain.FinancialRequest, error)

	// ChangeRequestStatus performs a workflow transition after the graph and
	// guard checks pass, appending one audit entry atomically.
	ChangeRequestStatus(ctx context.Context, requestID string, req dto.ChangeRequestStatusRequest, actor domain.Identity) (*domain.FinancialRequest, error)
}

// FinancialRequestSvcFacade combines all financial-request service interfaces.
type FinancialRequestSvcFacade interface {
	FinancialRequestReaderSvc
	FinancialRequestWriterSvc
}
