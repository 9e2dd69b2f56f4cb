package httpadapter

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"chancery/contexts/awards-program/recommendation-service/application/commands"
	"chancery/contexts/awards-program/recommendation-service/application/queries"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	httptransport "chancery/contexts/awards-program/recommendation-service/transport/http"
)

const dateLayout = "2006-01-02"

// Handler adapts transport DTOs to the application layer. View configuration
// (table filter, export columns, board columns) is bound once at wiring time.
type Handler struct {
	Submit     commands.SubmitRecommendationUseCase
	Edit       commands.EditRecommendationUseCase
	Bulk       commands.BulkTransitionUseCase
	Reposition commands.RepositionUseCase
	Delete     commands.DeleteRecommendationUseCase
	Queries    queries.QueryUseCase

	TableFilter          queries.FilterSpec
	ExportColumns        []string
	ExportEnabled        bool
	BoardStates          []string
	BoardHiddenByDefault []string
	BoardLookbackDays    int

	Logger *slog.Logger
}

func (h Handler) SubmitRecommendationHandler(
	ctx context.Context,
	userID string,
	req httptransport.SubmitRecommendationRequest,
) (httptransport.SubmitRecommendationResponse, error) {
	rec, err := h.Submit.Execute(ctx, commands.SubmitRecommendationCommand{
		ActorID:           userID,
		RequesterID:       req.RequesterID,
		RequesterName:     req.RequesterName,
		ContactEmail:      req.ContactEmail,
		ContactNumber:     req.ContactNumber,
		MemberID:          req.MemberID,
		MemberName:        req.MemberName,
		MemberNotFound:    req.MemberNotFound,
		BranchID:          req.BranchID,
		AwardID:           req.AwardID,
		Specialty:         req.Specialty,
		Reason:            req.Reason,
		CallIntoCourt:     req.CallIntoCourt,
		CourtAvailability: req.CourtAvailability,
		PersonToNotify:    req.PersonToNotify,
	})
	if err != nil {
		return httptransport.SubmitRecommendationResponse{}, err
	}
	return httptransport.SubmitRecommendationResponse{Recommendation: mapRecommendation(rec)}, nil
}

// ListRecommendationsHandler serves the table view. The request query map
// doubles as the parameter source for deferred filter references and carries
// the ad-hoc column filters.
func (h Handler) ListRecommendationsHandler(
	ctx context.Context,
	userID string,
	params queries.MapParams,
) (httptransport.ListRecommendationsResponse, error) {
	query := queries.ListRecommendationsQuery{
		ActorID:           userID,
		Filter:            h.TableFilter,
		Params:            params,
		AwardID:           params["award_id"],
		BranchID:          params["branch_id"],
		DomainID:          params["domain_id"],
		State:             params["state"],
		ForContains:       params["for"],
		RequesterName:     params["requester"],
		CallIntoCourt:     params["call_into_court"],
		CourtAvailability: params["court_availability"],
		SortBy:            params["sort"],
		SortDesc:          strings.EqualFold(params["direction"], "desc"),
	}
	query.Limit, query.Offset = parsePage(params)

	items, err := h.Queries.ListRecommendations(ctx, query)
	if err != nil {
		return httptransport.ListRecommendationsResponse{}, err
	}
	result := make([]httptransport.RecommendationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapRecommendation(item))
	}
	return httptransport.ListRecommendationsResponse{Items: result}, nil
}

func (h Handler) GetRecommendationHandler(
	ctx context.Context,
	userID string,
	recommendationID string,
) (httptransport.GetRecommendationResponse, error) {
	item, err := h.Queries.GetRecommendation(ctx, userID, recommendationID)
	if err != nil {
		return httptransport.GetRecommendationResponse{}, err
	}
	return httptransport.GetRecommendationResponse{Recommendation: mapRecommendation(item)}, nil
}

func (h Handler) UpdateRecommendationHandler(
	ctx context.Context,
	userID string,
	recommendationID string,
	req httptransport.UpdateRecommendationRequest,
) (httptransport.UpdateRecommendationResponse, error) {
	given, err := parseOptionalDate(req.Given)
	if err != nil {
		return httptransport.UpdateRecommendationResponse{}, domainerrors.ErrInvalidRecommendationInput
	}
	rec, err := h.Edit.Execute(ctx, commands.EditRecommendationCommand{
		ActorID:           userID,
		RecommendationID:  recommendationID,
		MemberID:          req.MemberID,
		MemberName:        req.MemberName,
		BranchID:          req.BranchID,
		AwardID:           req.AwardID,
		Specialty:         req.Specialty,
		Reason:            req.Reason,
		CallIntoCourt:     req.CallIntoCourt,
		CourtAvailability: req.CourtAvailability,
		PersonToNotify:    req.PersonToNotify,
		NewState:          req.State,
		EventID:           req.EventID,
		Given:             given,
		CloseReason:       req.CloseReason,
		Note:              req.Note,
	})
	if err != nil {
		return httptransport.UpdateRecommendationResponse{}, err
	}
	return httptransport.UpdateRecommendationResponse{Recommendation: mapRecommendation(rec)}, nil
}

func (h Handler) BulkUpdateStatesHandler(
	ctx context.Context,
	userID string,
	req httptransport.BulkUpdateStatesRequest,
) (httptransport.BulkUpdateStatesResponse, error) {
	given, err := parseOptionalDate(req.Given)
	if err != nil {
		return httptransport.BulkUpdateStatesResponse{}, domainerrors.ErrInvalidRecommendationInput
	}
	result, err := h.Bulk.Execute(ctx, commands.BulkTransitionCommand{
		ActorID:     userID,
		IDs:         req.IDs,
		NewState:    req.NewState,
		EventID:     req.EventID,
		Given:       given,
		CloseReason: req.CloseReason,
		Note:        req.Note,
	})
	if err != nil {
		return httptransport.BulkUpdateStatesResponse{}, err
	}
	return httptransport.BulkUpdateStatesResponse{Updated: result.Updated}, nil
}

func (h Handler) KanbanHandler(
	ctx context.Context,
	userID string,
	recommendationID string,
	req httptransport.KanbanRequest,
) error {
	return h.Reposition.Execute(ctx, commands.RepositionCommand{
		ActorID:          userID,
		RecommendationID: recommendationID,
		BeforeID:         req.PlaceBefore,
		AfterID:          req.PlaceAfter,
		NewState:         req.NewState,
	})
}

func (h Handler) DeleteRecommendationHandler(ctx context.Context, userID string, recommendationID string) error {
	return h.Delete.Execute(ctx, commands.DeleteRecommendationCommand{
		ActorID:          userID,
		RecommendationID: recommendationID,
	})
}

// BoardHandler serves the kanban view. Column order follows the configured
// state list; columns the viewer may not see are dropped entirely.
func (h Handler) BoardHandler(
	ctx context.Context,
	userID string,
	showHidden bool,
) (httptransport.BoardResponse, error) {
	board, err := h.Queries.BoardView(ctx, queries.BoardQuery{
		ActorID:         userID,
		States:          h.BoardStates,
		HiddenByDefault: h.BoardHiddenByDefault,
		ShowHidden:      showHidden,
		LookbackDays:    h.BoardLookbackDays,
	})
	if err != nil {
		return httptransport.BoardResponse{}, err
	}

	columns := make([]httptransport.BoardColumnDTO, 0, len(board))
	for _, state := range h.BoardStates {
		cards, exists := board[entities.State(state)]
		if !exists {
			continue
		}
		column := httptransport.BoardColumnDTO{
			State: state,
			Cards: make([]httptransport.RecommendationDTO, 0, len(cards)),
		}
		for _, card := range cards {
			column.Cards = append(column.Cards, mapRecommendation(card))
		}
		columns = append(columns, column)
	}
	return httptransport.BoardResponse{Columns: columns}, nil
}

func (h Handler) ExportHandler(
	ctx context.Context,
	userID string,
	params queries.MapParams,
) (httptransport.ExportResponse, error) {
	if !h.ExportEnabled {
		return httptransport.ExportResponse{}, domainerrors.ErrForbidden
	}
	rows, err := h.Queries.ExportRows(ctx, queries.ExportQuery{
		ActorID: userID,
		Filter:  h.TableFilter,
		Params:  params,
		Columns: h.ExportColumns,
	})
	if err != nil {
		return httptransport.ExportResponse{}, err
	}
	return httptransport.ExportResponse{
		Columns: rows[0],
		Rows:    rows[1:],
	}, nil
}

func parsePage(params queries.MapParams) (limit int, offset int) {
	if raw, exists := params["limit"]; exists {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			limit = value
		}
	}
	if raw, exists := params["offset"]; exists {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			offset = value
		}
	}
	return limit, offset
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func mapRecommendation(item entities.Recommendation) httptransport.RecommendationDTO {
	dto := httptransport.RecommendationDTO{
		RecommendationID:  item.RecommendationID,
		RequesterID:       item.RequesterID,
		RequesterName:     item.RequesterName,
		ContactEmail:      item.ContactEmail,
		ContactNumber:     item.ContactNumber,
		MemberID:          item.MemberID,
		MemberName:        item.MemberName,
		MemberNotFound:    item.MemberNotFound,
		BranchID:          item.BranchID,
		AwardID:           item.AwardID,
		Specialty:         item.Specialty,
		Reason:            item.Reason,
		CallIntoCourt:     item.CallIntoCourt,
		CourtAvailability: item.CourtAvailability,
		PersonToNotify:    item.PersonToNotify,
		Status:            string(item.Status),
		State:             string(item.State),
		StateDate:         item.StateDate.Format(dateLayout),
		StackRank:         item.StackRank,
		EventID:           item.EventID,
		CloseReason:       item.CloseReason,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         item.UpdatedAt.Format(time.RFC3339),
	}
	if item.Given != nil {
		dto.Given = item.Given.Format(dateLayout)
	}
	if item.Member != nil {
		dto.Member = &httptransport.MemberDTO{
			MemberID:      item.Member.MemberID,
			Name:          item.Member.Name,
			Title:         item.Member.Title,
			Pronouns:      item.Member.Pronouns,
			Pronunciation: item.Member.Pronunciation,
		}
	}
	if item.Branch != nil {
		dto.Branch = &httptransport.BranchDTO{
			BranchID: item.Branch.BranchID,
			Name:     item.Branch.Name,
		}
	}
	if item.Award != nil {
		dto.Award = &httptransport.AwardDTO{
			AwardID:      item.Award.AwardID,
			Abbreviation: item.Award.Abbreviation,
			BranchID:     item.Award.BranchID,
			DomainName:   item.Award.Domain.Name,
			LevelName:    item.Award.Level.Name,
		}
	}
	if item.AssignedEvent != nil {
		event := mapEvent(*item.AssignedEvent)
		dto.AssignedEvent = &event
	}
	for _, event := range item.Events {
		dto.Events = append(dto.Events, mapEvent(event))
	}
	for _, note := range item.Notes {
		dto.Notes = append(dto.Notes, httptransport.NoteDTO{
			NoteID:    note.NoteID,
			Subject:   note.Subject,
			Body:      note.Body,
			AuthorID:  note.AuthorID,
			CreatedAt: note.CreatedAt.Format(time.RFC3339),
		})
	}
	return dto
}

func mapEvent(event entities.EventRef) httptransport.EventDTO {
	dto := httptransport.EventDTO{
		EventID: event.EventID,
		Name:    event.Name,
	}
	if event.StartDate != nil {
		dto.StartDate = event.StartDate.Format(dateLayout)
	}
	if event.EndDate != nil {
		dto.EndDate = event.EndDate.Format(dateLayout)
	}
	return dto
}
