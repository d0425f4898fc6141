package repositories

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// FinancialRequestFilter narrows list results. Zero values mean "no filter".
type FinancialRequestFilter struct {
	Status          domain.RequestStatus
	BranchID        string
	RequesterUserID string
}

// FinancialRequestReader defines read operations for financial requests.
type FinancialRequestReader interface {
	// FindRequestByID retrieves a request aggregate by its unique identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.FinancialRequest, error)

	// ListRequests retrieves requests matching the filter, newest first.
	ListRequests(ctx context.Context, filter FinancialRequestFilter) ([]domain.FinancialRequest, error)
}

// FinancialRequestWriter defines write operations for financial requests.
// SaveRequest and UpdateRequest write the whole aggregate (including items
// and status history) as one atomic row.
type FinancialRequestWriter interface {
	SaveRequest(ctx context.Context, request domain.FinancialRequest) error
	UpdateRequest(ctx context.Context, request domain.FinancialRequest) error
}

// FinancialRequestRepositoryFacade combines all financial-request repository interfaces.
type FinancialRequestRepositoryFacade interface {
	FinancialRequestReader
	FinancialRequestWriter
}
