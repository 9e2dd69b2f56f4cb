package queries

import (
	"context"
	"log/slog"
	"strings"

	application "chancery/contexts/awards-program/recommendation-service/application"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

type QueryUseCase struct {
	Repository    ports.Repository
	Authorization ports.AuthorizationGateway
	Taxonomy      entities.Taxonomy
	Clock         ports.Clock
	Logger        *slog.Logger
}

// ListRecommendationsQuery feeds the table view. Filter holds the view's
// declarative spec; Params supplies values for its deferred references.
// The ad-hoc fields are additive, each optional.
type ListRecommendationsQuery struct {
	ActorID string
	Filter  FilterSpec
	Params  ports.ParamSource

	AwardID           string
	BranchID          string
	DomainID          string
	State             string
	ForContains       string
	RequesterName     string
	CallIntoCourt     string
	CourtAvailability string

	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

func (uc QueryUseCase) ListRecommendations(ctx context.Context, query ListRecommendationsQuery) ([]entities.Recommendation, error) {
	filter, err := uc.scopedFilter(ctx, query.ActorID, query.Filter, query.Params)
	if err != nil {
		return nil, err
	}
	filter.AwardID = strings.TrimSpace(query.AwardID)
	filter.BranchID = strings.TrimSpace(query.BranchID)
	filter.DomainID = strings.TrimSpace(query.DomainID)
	filter.State = entities.State(strings.TrimSpace(query.State))
	filter.ForContains = strings.TrimSpace(query.ForContains)
	filter.RequesterName = strings.TrimSpace(query.RequesterName)
	filter.CallIntoCourt = strings.TrimSpace(query.CallIntoCourt)
	filter.CourtAvailability = strings.TrimSpace(query.CourtAvailability)
	if query.SortBy != "" {
		filter.Sort = []ports.SortKey{{Column: query.SortBy, Descending: query.SortDesc}}
	}
	filter.Limit = query.Limit
	filter.Offset = query.Offset

	return uc.Repository.ListRecommendations(ctx, filter)
}

// GetRecommendation loads one record for the detail view. Hidden states and
// out-of-scope branches read as not-found rather than forbidden so the
// response does not leak existence.
func (uc QueryUseCase) GetRecommendation(ctx context.Context, actorID string, recommendationID string) (entities.Recommendation, error) {
	if err := uc.Authorization.Authorize(ctx, actorID, ports.ActionView); err != nil {
		return entities.Recommendation{}, err
	}
	rec, err := uc.Repository.GetRecommendation(ctx, strings.TrimSpace(recommendationID))
	if err != nil {
		return entities.Recommendation{}, err
	}

	if uc.Taxonomy.IsHidden(rec.State) {
		canView, err := uc.Authorization.CanViewHidden(ctx, actorID)
		if err != nil {
			return entities.Recommendation{}, err
		}
		if !canView {
			return entities.Recommendation{}, domainerrors.ErrRecommendationNotFound
		}
	}

	scope, err := uc.Authorization.Scope(ctx, actorID)
	if err != nil {
		return entities.Recommendation{}, err
	}
	if !scope.Covers(rec) {
		return entities.Recommendation{}, domainerrors.ErrRecommendationNotFound
	}
	return rec, nil
}

// BoardQuery feeds the kanban view. States is the column list in display
// order; HiddenByDefault columns are loaded only when ShowHidden is set,
// and then only cards whose state_date falls within LookbackDays.
type BoardQuery struct {
	ActorID         string
	States          []string
	HiddenByDefault []string
	ShowHidden      bool
	LookbackDays    int
}

// BoardView groups scoped recommendations by state, ordered by stack rank
// within each column. Every requested (and permitted) state is present in
// the result, empty columns included.
func (uc QueryUseCase) BoardView(ctx context.Context, query BoardQuery) (map[entities.State][]entities.Recommendation, error) {
	filter, err := uc.scopedFilter(ctx, query.ActorID, nil, nil)
	if err != nil {
		return nil, err
	}

	excluded := make(map[entities.State]struct{}, len(filter.ExcludeStates))
	for _, state := range filter.ExcludeStates {
		excluded[state] = struct{}{}
	}

	hiddenByDefault := make(map[entities.State]struct{}, len(query.HiddenByDefault))
	for _, state := range query.HiddenByDefault {
		hiddenByDefault[entities.State(state)] = struct{}{}
	}

	columns := make([]entities.State, 0, len(query.States))
	var load, recent []entities.State
	for _, raw := range query.States {
		state := entities.State(raw)
		if _, gone := excluded[state]; gone {
			continue
		}
		columns = append(columns, state)
		if _, deferred := hiddenByDefault[state]; deferred {
			if query.ShowHidden {
				recent = append(recent, state)
			}
			continue
		}
		load = append(load, state)
	}

	board := make(map[entities.State][]entities.Recommendation, len(columns))
	for _, state := range columns {
		board[state] = []entities.Recommendation{}
	}
	// With every column deferred and hidden cards collapsed there is nothing
	// to load; an unconstrained States filter would return the whole table.
	if len(load) == 0 && len(recent) == 0 {
		return board, nil
	}

	filter.States = load
	if len(recent) > 0 {
		lookback := query.LookbackDays
		if lookback <= 0 {
			lookback = 30
		}
		filter.RecentStates = recent
		filter.RecentCutoff = uc.Clock.Now().UTC().AddDate(0, 0, -lookback)
	}
	filter.RankOrder = true

	items, err := uc.Repository.ListRecommendations(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		board[item.State] = append(board[item.State], item)
	}
	return board, nil
}

// scopedFilter resolves the declarative filter and applies authorization:
// the branch scope predicate plus hidden-state exclusion for actors without
// the view-hidden capability. Used by every read path so visibility rules
// can never be bypassed by a particular view.
func (uc QueryUseCase) scopedFilter(ctx context.Context, actorID string, spec FilterSpec, params ports.ParamSource) (ports.RecommendationFilter, error) {
	if err := uc.Authorization.Authorize(ctx, actorID, ports.ActionView); err != nil {
		return ports.RecommendationFilter{}, err
	}
	scope, err := uc.Authorization.Scope(ctx, actorID)
	if err != nil {
		return ports.RecommendationFilter{}, err
	}
	canViewHidden, err := uc.Authorization.CanViewHidden(ctx, actorID)
	if err != nil {
		return ports.RecommendationFilter{}, err
	}

	filter := ports.RecommendationFilter{
		Conditions: ResolveFilter(spec, params),
		Scope:      scope,
	}
	if !canViewHidden {
		filter.ExcludeStates = uc.Taxonomy.HiddenStates()
	}
	return filter, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	return application.ResolveLogger(logger)
}
