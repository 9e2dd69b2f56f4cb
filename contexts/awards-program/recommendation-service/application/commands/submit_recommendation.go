package commands

import (
	"context"
	"log/slog"
	"strings"

	application "chancery/contexts/awards-program/recommendation-service/application"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

type SubmitRecommendationCommand struct {
	ActorID           string
	RequesterID       string
	RequesterName     string
	ContactEmail      string
	ContactNumber     string
	MemberID          string
	MemberName        string
	MemberNotFound    bool
	BranchID          string
	AwardID           string
	Specialty         string
	Reason            string
	CallIntoCourt     string
	CourtAvailability string
	PersonToNotify    string
}

type SubmitRecommendationUseCase struct {
	Repository    ports.Repository
	Authorization ports.AuthorizationGateway
	Taxonomy      entities.Taxonomy
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

// Execute creates a recommendation in the taxonomy's initial status/state.
// Submissions from non-members are supported: when the recommended member
// could not be matched, only the free-text name is stored.
func (uc SubmitRecommendationUseCase) Execute(ctx context.Context, cmd SubmitRecommendationCommand) (entities.Recommendation, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Authorization.Authorize(ctx, cmd.ActorID, ports.ActionSubmit); err != nil {
		return entities.Recommendation{}, err
	}

	recommendationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Recommendation{}, err
	}
	now := uc.Clock.Now().UTC()
	status, state := uc.Taxonomy.InitialStatusState()

	memberID := strings.TrimSpace(cmd.MemberID)
	if cmd.MemberNotFound {
		memberID = ""
	}

	rec := entities.Recommendation{
		RecommendationID:  recommendationID,
		RequesterID:       strings.TrimSpace(cmd.RequesterID),
		RequesterName:     strings.TrimSpace(cmd.RequesterName),
		ContactEmail:      strings.TrimSpace(cmd.ContactEmail),
		ContactNumber:     strings.TrimSpace(cmd.ContactNumber),
		MemberID:          memberID,
		MemberName:        strings.TrimSpace(cmd.MemberName),
		MemberNotFound:    cmd.MemberNotFound,
		BranchID:          strings.TrimSpace(cmd.BranchID),
		AwardID:           strings.TrimSpace(cmd.AwardID),
		Specialty:         strings.TrimSpace(cmd.Specialty),
		Reason:            strings.TrimSpace(cmd.Reason),
		CallIntoCourt:     strings.TrimSpace(cmd.CallIntoCourt),
		CourtAvailability: strings.TrimSpace(cmd.CourtAvailability),
		PersonToNotify:    strings.TrimSpace(cmd.PersonToNotify),
		Status:            status,
		State:             state,
		StateDate:         now,
		CreatedBy:         strings.TrimSpace(cmd.ActorID),
		ModifiedBy:        strings.TrimSpace(cmd.ActorID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if !rec.ValidateSubmit() {
		return entities.Recommendation{}, domainerrors.ErrInvalidRecommendationInput
	}

	logID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Recommendation{}, err
	}
	log := entities.StateLog{
		LogID:            logID,
		RecommendationID: recommendationID,
		FromStatus:       entities.StateLogInitial,
		FromState:        entities.StateLogInitial,
		ToStatus:         status,
		ToState:          state,
		CreatedBy:        rec.CreatedBy,
		CreatedAt:        now,
	}
	rec, err = uc.Repository.CreateRecommendation(ctx, rec, log)
	if err != nil {
		return entities.Recommendation{}, err
	}

	logger.Info("recommendation submitted",
		"event", "recommendation_submitted",
		"module", "awards-program/recommendation-service",
		"layer", "application",
		"recommendation_id", rec.RecommendationID,
		"award_id", rec.AwardID,
		"state", string(rec.State),
	)
	return rec, nil
}
