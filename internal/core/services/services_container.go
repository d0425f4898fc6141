package services

import (
	portsrepo "github.com/vidanueva/church_admin_app/internal/core/ports/repositories"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
)

// NewServiceContainer wires every service to its repositories and returns the
// container used by the handlers.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	globalConfigSvc := NewGlobalConfigService(repos.GlobalConfigRepo)

	return &portssvc.ServiceContainer{
		FinancialRequest: NewFinancialRequestService(
			repos.FinancialRequestRepo,
			repos.BranchRepo,
			repos.AccountRepo,
			repos.UserRepo,
			globalConfigSvc,
		),
		Branch:       NewBranchService(repos.BranchRepo, repos.UserRepo),
		Account:      NewAccountService(repos.AccountRepo),
		User:         NewUserService(repos.UserRepo),
		GlobalConfig: globalConfigSvc,
	}
}
