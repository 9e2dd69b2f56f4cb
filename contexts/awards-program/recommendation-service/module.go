package recommendationservice

import (
	"log/slog"

	configadapter "chancery/contexts/awards-program/recommendation-service/adapters/config"
	httpadapter "chancery/contexts/awards-program/recommendation-service/adapters/http"
	"chancery/contexts/awards-program/recommendation-service/adapters/memory"
	"chancery/contexts/awards-program/recommendation-service/application/commands"
	"chancery/contexts/awards-program/recommendation-service/application/queries"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

type Module struct {
	Handler       httpadapter.Handler
	Store         *memory.Store
	Authorization *memory.Gateway
}

type Dependencies struct {
	Repository    ports.Repository
	Authorization ports.AuthorizationGateway
	Taxonomy      entities.Taxonomy
	Views         configadapter.ViewConfig
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submit := commands.SubmitRecommendationUseCase{
		Repository:    deps.Repository,
		Authorization: deps.Authorization,
		Taxonomy:      deps.Taxonomy,
		Clock:         deps.Clock,
		IDGen:         deps.IDGenerator,
		Logger:        deps.Logger,
	}
	edit := commands.EditRecommendationUseCase{
		Repository:    deps.Repository,
		Authorization: deps.Authorization,
		Taxonomy:      deps.Taxonomy,
		Clock:         deps.Clock,
		IDGen:         deps.IDGenerator,
		Logger:        deps.Logger,
	}
	bulk := commands.BulkTransitionUseCase{
		Repository:    deps.Repository,
		Authorization: deps.Authorization,
		Taxonomy:      deps.Taxonomy,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	reposition := commands.RepositionUseCase{
		Repository:    deps.Repository,
		Authorization: deps.Authorization,
		Taxonomy:      deps.Taxonomy,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	remove := commands.DeleteRecommendationUseCase{
		Repository:    deps.Repository,
		Authorization: deps.Authorization,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	query := queries.QueryUseCase{
		Repository:    deps.Repository,
		Authorization: deps.Authorization,
		Taxonomy:      deps.Taxonomy,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Submit:               submit,
			Edit:                 edit,
			Bulk:                 bulk,
			Reposition:           reposition,
			Delete:               remove,
			Queries:              query,
			TableFilter:          queries.ParseFilterSpec(deps.Views.Table.Filter),
			ExportColumns:        deps.Views.Table.Export,
			ExportEnabled:        deps.Views.Table.EnableExport,
			BoardStates:          deps.Views.Board.States,
			BoardHiddenByDefault: deps.Views.Board.HiddenByDefault.States,
			BoardLookbackDays:    deps.Views.Board.HiddenByDefault.LookbackDays,
			Logger:               deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory repository and a
// permissive authorization gateway, with the default taxonomy and views.
// Unit tests and local runs use it; production wiring lives in bootstrap.
func NewInMemoryModule(seed []entities.Recommendation, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	gateway := memory.NewGateway()
	module := NewModule(Dependencies{
		Repository:    store,
		Authorization: gateway,
		Taxonomy:      entities.DefaultTaxonomy(),
		Views:         configadapter.DefaultViewConfig(),
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	module.Authorization = gateway
	return module
}
