package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "chancery/contexts/awards-program/recommendation-service/application"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

type BulkTransitionCommand struct {
	ActorID     string
	IDs         []string
	NewState    string
	EventID     *string
	Given       *time.Time
	CloseReason *string
	Note        string
}

type BulkTransitionResult struct {
	Updated int64
}

type BulkTransitionUseCase struct {
	Repository    ports.Repository
	Authorization ports.AuthorizationGateway
	Taxonomy      entities.Taxonomy
	Clock         ports.Clock
	Logger        *slog.Logger
}

// Execute moves every id to the target state in one transaction. Input
// problems (empty id set, missing or unknown target state) are rejected
// before any transaction opens; a mid-transaction failure rolls back every
// row and note so the batch is never partially applied.
func (uc BulkTransitionUseCase) Execute(ctx context.Context, cmd BulkTransitionCommand) (BulkTransitionResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	ids := sanitizeIDs(cmd.IDs)
	if len(ids) == 0 || strings.TrimSpace(cmd.NewState) == "" {
		return BulkTransitionResult{}, domainerrors.ErrInvalidRecommendationInput
	}
	newState := entities.State(strings.TrimSpace(cmd.NewState))
	newStatus, err := uc.Taxonomy.StatusOf(newState)
	if err != nil {
		return BulkTransitionResult{}, err
	}

	if err := uc.Authorization.Authorize(ctx, cmd.ActorID, ports.ActionEdit); err != nil {
		return BulkTransitionResult{}, err
	}
	scope, err := uc.Authorization.Scope(ctx, cmd.ActorID)
	if err != nil {
		return BulkTransitionResult{}, err
	}

	now := uc.Clock.Now().UTC()
	update := ports.BulkStateUpdate{
		IDs:         ids,
		Status:      newStatus,
		State:       newState,
		StateDate:   now,
		EventID:     cmd.EventID,
		Given:       cmd.Given,
		CloseReason: cmd.CloseReason,
		ModifiedBy:  strings.TrimSpace(cmd.ActorID),
		Scope:       scope,
	}

	var note *ports.NoteInput
	if strings.TrimSpace(cmd.Note) != "" {
		note = &ports.NoteInput{
			Subject:  NoteSubjectBulk,
			Body:     strings.TrimSpace(cmd.Note),
			AuthorID: strings.TrimSpace(cmd.ActorID),
		}
	}

	updated, err := uc.Repository.BulkUpdateState(ctx, update, note)
	if err != nil {
		logger.Error("recommendation bulk transition failed",
			"event", "recommendation_bulk_transition_failed",
			"module", "awards-program/recommendation-service",
			"layer", "application",
			"target_state", string(newState),
			"requested", len(ids),
			"error", err.Error(),
		)
		return BulkTransitionResult{}, err
	}

	logger.Info("recommendation bulk transition completed",
		"event", "recommendation_bulk_transition_completed",
		"module", "awards-program/recommendation-service",
		"layer", "application",
		"target_state", string(newState),
		"requested", len(ids),
		"updated", updated,
	)
	return BulkTransitionResult{Updated: updated}, nil
}

func sanitizeIDs(ids []string) []string {
	items := make([]string, 0, len(ids))
	for _, item := range ids {
		if v := strings.TrimSpace(item); v != "" {
			items = append(items, v)
		}
	}
	return items
}
