package commands

import (
	"context"
	"log/slog"
	"strings"

	application "chancery/contexts/awards-program/recommendation-service/application"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

// RepositionCommand moves a board card. BeforeID/AfterID are optional: nil
// means no positioning was requested, which is distinct from any real id.
// NewState is set when the card was dragged into a different column; the
// state change and the rank shuffle commit or roll back together.
type RepositionCommand struct {
	ActorID          string
	RecommendationID string
	BeforeID         *string
	AfterID          *string
	NewState         *string
}

type RepositionUseCase struct {
	Repository    ports.Repository
	Authorization ports.AuthorizationGateway
	Taxonomy      entities.Taxonomy
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (uc RepositionUseCase) Execute(ctx context.Context, cmd RepositionCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Authorization.Authorize(ctx, cmd.ActorID, ports.ActionEdit); err != nil {
		return err
	}

	rec, err := uc.Repository.GetRecommendation(ctx, strings.TrimSpace(cmd.RecommendationID))
	if err != nil {
		return err
	}
	if err := guardScope(ctx, uc.Authorization, cmd.ActorID, rec); err != nil {
		return err
	}

	input := ports.RepositionInput{
		RecommendationID: rec.RecommendationID,
		BeforeID:         cmd.BeforeID,
		AfterID:          cmd.AfterID,
		StateDate:        uc.Clock.Now().UTC(),
		ModifiedBy:       strings.TrimSpace(cmd.ActorID),
	}
	if cmd.NewState != nil {
		newState := entities.State(strings.TrimSpace(*cmd.NewState))
		newStatus, err := uc.Taxonomy.StatusOf(newState)
		if err != nil {
			return err
		}
		input.NewState = &newState
		input.NewStatus = &newStatus
	}

	if err := uc.Repository.Reposition(ctx, input); err != nil {
		logger.Error("recommendation reposition failed",
			"event", "recommendation_reposition_failed",
			"module", "awards-program/recommendation-service",
			"layer", "application",
			"recommendation_id", input.RecommendationID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("recommendation repositioned",
		"event", "recommendation_repositioned",
		"module", "awards-program/recommendation-service",
		"layer", "application",
		"recommendation_id", input.RecommendationID,
	)
	return nil
}
