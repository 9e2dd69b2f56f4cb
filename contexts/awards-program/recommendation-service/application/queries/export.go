package queries

import (
	"context"
	"strings"
	"time"

	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

const (
	exportDateLayout     = "2006-01-02"
	exportDateTimeLayout = "2006-01-02 15:04:05"
)

// ExportQuery selects rows with the same filter machinery as the table view
// and formats the requested columns. Columns come from per-view export
// configuration, so unknown names are tolerated rather than rejected.
type ExportQuery struct {
	ActorID string
	Filter  FilterSpec
	Params  ports.ParamSource
	Columns []string
}

// ExportRows returns a header row followed by one formatted row per
// recommendation, ready for a CSV sink.
func (uc QueryUseCase) ExportRows(ctx context.Context, query ExportQuery) ([][]string, error) {
	logger := resolveLogger(uc.Logger)
	if err := uc.Authorization.Authorize(ctx, query.ActorID, ports.ActionExport); err != nil {
		return nil, err
	}

	filter, err := uc.scopedFilter(ctx, query.ActorID, query.Filter, query.Params)
	if err != nil {
		return nil, err
	}
	items, err := uc.Repository.ListRecommendations(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, append([]string(nil), query.Columns...))
	for _, item := range items {
		row := make([]string, 0, len(query.Columns))
		for _, column := range query.Columns {
			row = append(row, FormatColumn(item, column))
		}
		rows = append(rows, row)
	}

	logger.Info("recommendation export generated",
		"event", "recommendation_export_generated",
		"module", "awards-program/recommendation-service",
		"layer", "application",
		"rows", len(items),
		"columns", len(query.Columns),
	)
	return rows, nil
}

// FormatColumn maps a logical column name to a derived display string.
// Absent optional associations render as empty strings; unknown column
// names do too, so export configuration can drift ahead of the code.
func FormatColumn(rec entities.Recommendation, columnName string) string {
	switch columnName {
	case "Submitted":
		return formatDate(rec.CreatedAt)
	case "For":
		return rec.MemberName
	case "Title":
		if rec.Member != nil {
			return rec.Member.Title
		}
		return ""
	case "Pronouns":
		if rec.Member != nil {
			return rec.Member.Pronouns
		}
		return ""
	case "Pronunciation":
		if rec.Member != nil {
			return rec.Member.Pronunciation
		}
		return ""
	case "Branch":
		if rec.Branch != nil {
			return rec.Branch.Name
		}
		return ""
	case "Call Into Court":
		return rec.CallIntoCourt
	case "Court Avail":
		return rec.CourtAvailability
	case "Person to Notify":
		return rec.PersonToNotify
	case "Submitted By":
		return rec.RequesterName
	case "Contact Email":
		return rec.ContactEmail
	case "Contact Phone":
		return rec.ContactNumber
	case "Domain":
		if rec.Award != nil {
			return rec.Award.Domain.Name
		}
		return ""
	case "Award":
		var award string
		if rec.Award != nil {
			award = rec.Award.Abbreviation
		}
		if rec.Specialty != "" {
			award += " (" + rec.Specialty + ")"
		}
		return award
	case "Specialty":
		return rec.Specialty
	case "Reason":
		return rec.Reason
	case "Events":
		var events strings.Builder
		for _, event := range rec.Events {
			events.WriteString(event.Name)
			events.WriteString(" : ")
			events.WriteString(formatOptionalDate(event.StartDate))
			events.WriteString(" - ")
			events.WriteString(formatOptionalDate(event.EndDate))
			events.WriteString("\n\n")
		}
		return events.String()
	case "Notes":
		var notes strings.Builder
		for _, note := range rec.Notes {
			notes.WriteString(note.CreatedAt.Format(exportDateTimeLayout))
			notes.WriteString(" : ")
			notes.WriteString(note.Body)
			notes.WriteString("\n\n")
		}
		return notes.String()
	case "Status":
		return string(rec.Status)
	case "State":
		return string(rec.State)
	case "Close Reason":
		return rec.CloseReason
	case "Event":
		if rec.AssignedEvent != nil {
			return rec.AssignedEvent.Name
		}
		return ""
	case "State Date":
		return formatDate(rec.StateDate)
	case "Given Date":
		return formatOptionalDate(rec.Given)
	default:
		return ""
	}
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(exportDateLayout)
}

func formatOptionalDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(exportDateLayout)
}
