package queries

import (
	"testing"
	"time"

	"chancery/contexts/awards-program/recommendation-service/domain/entities"
)

func exportFixture() entities.Recommendation {
	start := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	given := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	return entities.Recommendation{
		RecommendationID:  "rec-1",
		RequesterName:     "Aldred of the Lake",
		MemberName:        "Wulfric the Bold",
		ContactEmail:      "aldred@example.org",
		ContactNumber:     "555-0100",
		Specialty:         "archery",
		Reason:            "Years of service on the range",
		CallIntoCourt:     "Yes",
		CourtAvailability: "Evening",
		PersonToNotify:    "Herald of the East",
		Status:            "Closed",
		State:             "Given",
		StateDate:         time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC),
		Given:             &given,
		CloseReason:       "Award delivered in court",
		CreatedAt:         time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC),
		Member: &entities.MemberRef{
			MemberID:      "member-1",
			Name:          "Wulfric the Bold",
			Title:         "Lord",
			Pronouns:      "he/him",
			Pronunciation: "WOOL-frick",
		},
		Branch: &entities.BranchRef{BranchID: "branch-1", Name: "Barony of the Bridge"},
		Award: &entities.AwardRef{
			AwardID:      "award-1",
			Abbreviation: "AoA",
			Domain:       entities.DomainRef{DomainID: "domain-1", Name: "Service"},
			Level:        entities.LevelRef{LevelID: "level-1", Name: "Armigerous"},
		},
		AssignedEvent: &entities.EventRef{EventID: "event-1", Name: "Spring Crown", StartDate: &start, EndDate: &end},
		Events: []entities.EventRef{
			{EventID: "event-1", Name: "Spring Crown", StartDate: &start, EndDate: &end},
		},
		Notes: []entities.Note{
			{NoteID: "note-1", Body: "first pass review", CreatedAt: time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)},
			{NoteID: "note-2", Body: "approved by crown", CreatedAt: time.Date(2024, 4, 20, 16, 45, 0, 0, time.UTC)},
		},
	}
}

func TestFormatColumnBasicFields(t *testing.T) {
	rec := exportFixture()

	cases := map[string]string{
		"Submitted":        "2024-04-01",
		"For":              "Wulfric the Bold",
		"Title":            "Lord",
		"Pronouns":         "he/him",
		"Pronunciation":    "WOOL-frick",
		"Branch":           "Barony of the Bridge",
		"Call Into Court":  "Yes",
		"Court Avail":      "Evening",
		"Person to Notify": "Herald of the East",
		"Submitted By":     "Aldred of the Lake",
		"Contact Email":    "aldred@example.org",
		"Contact Phone":    "555-0100",
		"Domain":           "Service",
		"Award":            "AoA (archery)",
		"Specialty":        "archery",
		"Reason":           "Years of service on the range",
		"Status":           "Closed",
		"State":            "Given",
		"Close Reason":     "Award delivered in court",
		"Event":            "Spring Crown",
		"State Date":       "2024-05-05",
		"Given Date":       "2024-05-05",
	}
	for column, want := range cases {
		if got := FormatColumn(rec, column); got != want {
			t.Fatalf("column %q: expected %q, got %q", column, want, got)
		}
	}
}

func TestFormatColumnEvents(t *testing.T) {
	rec := exportFixture()

	want := "Spring Crown : 2024-05-04 - 2024-05-06\n\n"
	if got := FormatColumn(rec, "Events"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatColumnNotesChronological(t *testing.T) {
	rec := exportFixture()

	want := "2024-04-02 10:00:00 : first pass review\n\n" +
		"2024-04-20 16:45:00 : approved by crown\n\n"
	if got := FormatColumn(rec, "Notes"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatColumnMissingAssociationsAreEmpty(t *testing.T) {
	rec := entities.Recommendation{MemberName: "Unmatched Name"}

	for _, column := range []string{"Title", "Pronouns", "Branch", "Domain", "Event", "Given Date", "Events", "Notes"} {
		if got := FormatColumn(rec, column); got != "" {
			t.Fatalf("column %q: expected empty string, got %q", column, got)
		}
	}
	if got := FormatColumn(rec, "Award"); got != "" {
		t.Fatalf("expected empty award, got %q", got)
	}
}

func TestFormatColumnUnknownColumn(t *testing.T) {
	if got := FormatColumn(exportFixture(), "Shoe Size"); got != "" {
		t.Fatalf("expected empty string for unknown column, got %q", got)
	}
}

func TestFormatColumnAwardWithoutSpecialty(t *testing.T) {
	rec := exportFixture()
	rec.Specialty = ""
	if got := FormatColumn(rec, "Award"); got != "AoA" {
		t.Fatalf("expected bare abbreviation, got %q", got)
	}
}
