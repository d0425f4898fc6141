package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/vidanueva/church_admin_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FinancialRequestRepo: newPgxFinancialRequestRepository(dbPool),
		BranchRepo:           newPgxBranchRepository(dbPool),
		AccountRepo:          newPgxAccountRepository(dbPool),
		UserRepo:             newPgxUserRepository(dbPool),
		GlobalConfigRepo:     newPgxGlobalConfigRepository(dbPool),
	}
}
