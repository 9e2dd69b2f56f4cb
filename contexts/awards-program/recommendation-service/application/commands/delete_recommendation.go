package commands

import (
	"context"
	"log/slog"
	"strings"

	application "chancery/contexts/awards-program/recommendation-service/application"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

type DeleteRecommendationCommand struct {
	ActorID          string
	RecommendationID string
}

type DeleteRecommendationUseCase struct {
	Repository    ports.Repository
	Authorization ports.AuthorizationGateway
	Clock         ports.Clock
	Logger        *slog.Logger
}

// Execute soft-deletes a recommendation. The row is tombstoned, never
// purged, so notes and event links keep their referential integrity.
func (uc DeleteRecommendationUseCase) Execute(ctx context.Context, cmd DeleteRecommendationCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Authorization.Authorize(ctx, cmd.ActorID, ports.ActionDelete); err != nil {
		return err
	}

	id := strings.TrimSpace(cmd.RecommendationID)
	rec, err := uc.Repository.GetRecommendation(ctx, id)
	if err != nil {
		return err
	}
	if err := guardScope(ctx, uc.Authorization, cmd.ActorID, rec); err != nil {
		return err
	}

	if err := uc.Repository.DeleteRecommendation(ctx, id, strings.TrimSpace(cmd.ActorID), uc.Clock.Now().UTC()); err != nil {
		return err
	}

	logger.Info("recommendation deleted",
		"event", "recommendation_deleted",
		"module", "awards-program/recommendation-service",
		"layer", "application",
		"recommendation_id", id,
	)
	return nil
}
