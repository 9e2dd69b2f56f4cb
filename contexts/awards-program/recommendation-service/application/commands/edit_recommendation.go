package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "chancery/contexts/awards-program/recommendation-service/application"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

// NoteSubjectEdit marks notes attached by a single edit; bulk transitions
// use NoteSubjectBulk so the two paths stay distinguishable in the audit
// trail.
const (
	NoteSubjectEdit = "Recommendation Updated"
	NoteSubjectBulk = "Recommendation Bulk Updated"
)

// EditRecommendationCommand carries the updatable fields. Nil pointers mean
// "leave unchanged"; a non-nil empty string clears the field.
type EditRecommendationCommand struct {
	ActorID          string
	RecommendationID string

	MemberID          *string
	MemberName        *string
	BranchID          *string
	AwardID           *string
	Specialty         *string
	Reason            *string
	CallIntoCourt     *string
	CourtAvailability *string
	PersonToNotify    *string

	NewState    *string
	EventID     *string
	Given       *time.Time
	CloseReason *string

	Note string
}

type EditRecommendationUseCase struct {
	Repository    ports.Repository
	Authorization ports.AuthorizationGateway
	Taxonomy      entities.Taxonomy
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

// Execute applies a single edit. When the caller supplies a new state the
// owning status is resolved through the taxonomy (fatal if unknown) and
// state_date is reset. The primary update, the optional audit note, and the
// state log share one transaction.
func (uc EditRecommendationUseCase) Execute(ctx context.Context, cmd EditRecommendationCommand) (entities.Recommendation, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Authorization.Authorize(ctx, cmd.ActorID, ports.ActionEdit); err != nil {
		return entities.Recommendation{}, err
	}

	rec, err := uc.Repository.GetRecommendation(ctx, strings.TrimSpace(cmd.RecommendationID))
	if err != nil {
		return entities.Recommendation{}, err
	}
	if err := guardScope(ctx, uc.Authorization, cmd.ActorID, rec); err != nil {
		return entities.Recommendation{}, err
	}

	applyString(&rec.MemberID, cmd.MemberID)
	applyString(&rec.MemberName, cmd.MemberName)
	applyString(&rec.BranchID, cmd.BranchID)
	applyString(&rec.AwardID, cmd.AwardID)
	applyString(&rec.Specialty, cmd.Specialty)
	applyString(&rec.Reason, cmd.Reason)
	applyString(&rec.CallIntoCourt, cmd.CallIntoCourt)
	applyString(&rec.CourtAvailability, cmd.CourtAvailability)
	applyString(&rec.PersonToNotify, cmd.PersonToNotify)
	applyString(&rec.EventID, cmd.EventID)
	if cmd.Given != nil {
		given := cmd.Given.UTC()
		rec.Given = &given
	}
	if cmd.CloseReason != nil {
		rec.CloseReason = strings.TrimSpace(*cmd.CloseReason)
	}
	rec.MemberNotFound = strings.TrimSpace(rec.MemberID) == ""

	now := uc.Clock.Now().UTC()
	var log *entities.StateLog
	if newState := stateFrom(cmd.NewState); newState != "" && newState != rec.State {
		newStatus, err := uc.Taxonomy.StatusOf(newState)
		if err != nil {
			return entities.Recommendation{}, err
		}
		logID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Recommendation{}, err
		}
		log = &entities.StateLog{
			LogID:            logID,
			RecommendationID: rec.RecommendationID,
			FromStatus:       rec.Status,
			FromState:        rec.State,
			ToStatus:         newStatus,
			ToState:          newState,
			CreatedBy:        strings.TrimSpace(cmd.ActorID),
			CreatedAt:        now,
		}
		rec.State = newState
		rec.Status = newStatus
		rec.StateDate = now
	}
	rec.ModifiedBy = strings.TrimSpace(cmd.ActorID)
	rec.UpdatedAt = now

	var note *ports.NoteInput
	if strings.TrimSpace(cmd.Note) != "" {
		note = &ports.NoteInput{
			Subject:  NoteSubjectEdit,
			Body:     strings.TrimSpace(cmd.Note),
			AuthorID: strings.TrimSpace(cmd.ActorID),
		}
	}

	if err := uc.Repository.UpdateRecommendation(ctx, rec, note, log); err != nil {
		return entities.Recommendation{}, err
	}

	logger.Info("recommendation updated",
		"event", "recommendation_updated",
		"module", "awards-program/recommendation-service",
		"layer", "application",
		"recommendation_id", rec.RecommendationID,
		"state", string(rec.State),
	)
	return rec, nil
}

func applyString(field *string, value *string) {
	if value != nil {
		*field = strings.TrimSpace(*value)
	}
}

// stateFrom trims before anything compares or resolves the requested state,
// so a padded value neither fabricates a transition nor resets state_date.
func stateFrom(value *string) entities.State {
	if value == nil {
		return ""
	}
	return entities.State(strings.TrimSpace(*value))
}
