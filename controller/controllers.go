// controller/controllers.go
package controller

import (
	"context"

	"github.com/dev-mohitbeniwal/fabdash/audit"
	"github.com/dev-mohitbeniwal/fabdash/guard"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/selection"
	"github.com/dev-mohitbeniwal/fabdash/service"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

// Navigator resolves a navigation into proceed or redirect.
type Navigator interface {
	Resolve(ctx context.Context, nav guard.Navigation, committer guard.Committer) guard.Outcome
}

// SessionRegistry hands out the selection state of a session.
type SessionRegistry interface {
	Get(ctx context.Context, sessionID string) *selection.State
}

// DirectoryService is the facility directory loader.
type DirectoryService interface {
	Snapshot() model.DirectorySnapshot
	Refresh(ctx context.Context) (model.FacilityDirectory, error)
}

type Controllers struct {
	Navigation *NavigationController
	Selection  *SelectionController
	Directory  *DirectoryController
	Resource   *ResourceController
	Audit      *AuditController
}

// InitializeControllers wires every controller. auditService may be nil, in
// which case the audit routes are not served.
func InitializeControllers(
	services *service.Services,
	navigator Navigator,
	sessions SessionRegistry,
	directory DirectoryService,
	fallback model.Fallback,
	validationUtil *util.ValidationUtil,
	auditService audit.Service,
) *Controllers {
	controllers := &Controllers{
		Navigation: NewNavigationController(navigator, sessions),
		Selection:  NewSelectionController(sessions, validationUtil),
		Directory:  NewDirectoryController(directory, fallback),
		Resource: NewResourceController(
			services.Equipment,
			services.Recipe,
			services.DeviceStatistics,
			services.Health,
			services.Fabrication,
			directory,
			fallback,
		),
	}
	if auditService != nil {
		controllers.Audit = NewAuditController(auditService)
	}
	return controllers
}
