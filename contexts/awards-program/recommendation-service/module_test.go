package recommendationservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	recommendationservice "chancery/contexts/awards-program/recommendation-service"
	"chancery/contexts/awards-program/recommendation-service/application/commands"
	"chancery/contexts/awards-program/recommendation-service/application/queries"
	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	httptransport "chancery/contexts/awards-program/recommendation-service/transport/http"
)

func submitFixture(name string) httptransport.SubmitRecommendationRequest {
	return httptransport.SubmitRecommendationRequest{
		RequesterName: "Aldred of the Lake",
		ContactEmail:  "aldred@example.org",
		MemberName:    name,
		BranchID:      "branch-1",
		AwardID:       "award-1",
		Reason:        "Tireless work at every event",
	}
}

func mustSubmit(t *testing.T, module recommendationservice.Module, actorID string, req httptransport.SubmitRecommendationRequest) httptransport.RecommendationDTO {
	t.Helper()
	resp, err := module.Handler.SubmitRecommendationHandler(context.Background(), actorID, req)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return resp.Recommendation
}

func strptr(value string) *string {
	return &value
}

func TestSubmitStartsInInitialState(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)

	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	if rec.Status != "In Progress" || rec.State != "Submitted" {
		t.Fatalf("expected In Progress/Submitted, got %s/%s", rec.Status, rec.State)
	}
	if rec.StackRank != 1 {
		t.Fatalf("expected first submission at rank 1, got %d", rec.StackRank)
	}

	logs := module.Store.StateLogs()
	if len(logs) != 1 {
		t.Fatalf("expected one state log, got %d", len(logs))
	}
	if logs[0].FromState != "New" || logs[0].ToState != "Submitted" {
		t.Fatalf("unexpected state log: %+v", logs[0])
	}
}

func TestSubmitRejectsIncompleteForm(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)

	req := submitFixture("Wulfric the Bold")
	req.Reason = ""
	_, err := module.Handler.SubmitRecommendationHandler(context.Background(), "herald-1", req)
	if !errors.Is(err, domainerrors.ErrInvalidRecommendationInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUpdateStateResolvesStatusAndLogsTransition(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))

	resp, err := module.Handler.UpdateRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID,
		httptransport.UpdateRecommendationRequest{
			State: strptr("Need to Schedule"),
			Note:  "crown approved at council",
		})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if resp.Recommendation.Status != "Scheduling" || resp.Recommendation.State != "Need to Schedule" {
		t.Fatalf("expected Scheduling/Need to Schedule, got %s/%s", resp.Recommendation.Status, resp.Recommendation.State)
	}

	logs := module.Store.StateLogs()
	if len(logs) != 2 {
		t.Fatalf("expected submit + transition logs, got %d", len(logs))
	}
	last := logs[len(logs)-1]
	if last.FromState != "Submitted" || last.ToState != "Need to Schedule" {
		t.Fatalf("unexpected transition log: %+v", last)
	}

	notes := module.Store.NotesFor(rec.RecommendationID)
	if len(notes) != 1 || notes[0].Subject != commands.NoteSubjectEdit {
		t.Fatalf("expected one edit note, got %+v", notes)
	}
}

func TestUpdateUnknownStateIsFatal(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))

	_, err := module.Handler.UpdateRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID,
		httptransport.UpdateRecommendationRequest{State: strptr("Banished")})
	if !errors.Is(err, domainerrors.ErrUnknownState) {
		t.Fatalf("expected unknown state, got %v", err)
	}

	got, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Recommendation.State != "Submitted" {
		t.Fatalf("expected state untouched, got %s", got.Recommendation.State)
	}
}

func TestBulkUpdateRejectsEmptySelection(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))

	_, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{IDs: []string{" ", ""}, NewState: "Given"})
	if !errors.Is(err, domainerrors.ErrInvalidRecommendationInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	got, _ := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID)
	if got.Recommendation.State != "Submitted" {
		t.Fatalf("expected no writes on rejected batch, state is %s", got.Recommendation.State)
	}
}

func TestBulkUpdateUnknownStateIsFatalForBatch(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))

	_, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{IDs: []string{rec.RecommendationID}, NewState: "Banished"})
	if !errors.Is(err, domainerrors.ErrUnknownState) {
		t.Fatalf("expected unknown state, got %v", err)
	}
}

func TestBulkUpdateMovesEveryRowAndAttachesNotes(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	first := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	second := mustSubmit(t, module, "herald-1", submitFixture("Eadgyth the Wise"))
	logsBefore := len(module.Store.StateLogs())

	resp, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{
			IDs:      []string{first.RecommendationID, second.RecommendationID},
			NewState: "Need to Schedule",
			Note:     "batch approved after court",
		})
	if err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	if resp.Updated != 2 {
		t.Fatalf("expected 2 rows updated, got %d", resp.Updated)
	}

	for _, id := range []string{first.RecommendationID, second.RecommendationID} {
		got, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Recommendation.Status != "Scheduling" || got.Recommendation.State != "Need to Schedule" {
			t.Fatalf("row %s not transitioned: %s/%s", id, got.Recommendation.Status, got.Recommendation.State)
		}
		notes := module.Store.NotesFor(id)
		if len(notes) != 1 || notes[0].Subject != commands.NoteSubjectBulk {
			t.Fatalf("row %s: expected one bulk note, got %+v", id, notes)
		}
	}

	// The set-oriented write does not produce per-row transition logs.
	if got := len(module.Store.StateLogs()); got != logsBefore {
		t.Fatalf("expected no new state logs from bulk update, got %d extra", got-logsBefore)
	}
}

func TestBulkUpdateRollsBackWhenNoteWriteFails(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	first := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	second := mustSubmit(t, module, "herald-1", submitFixture("Eadgyth the Wise"))

	module.Store.FailNotesFor(second.RecommendationID)

	_, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{
			IDs:      []string{first.RecommendationID, second.RecommendationID},
			NewState: "Need to Schedule",
			Note:     "batch approved after court",
		})
	if !errors.Is(err, domainerrors.ErrUpdateAborted) {
		t.Fatalf("expected aborted batch, got %v", err)
	}

	for _, id := range []string{first.RecommendationID, second.RecommendationID} {
		got, getErr := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", id)
		if getErr != nil {
			t.Fatalf("get failed: %v", getErr)
		}
		if got.Recommendation.State != "Submitted" {
			t.Fatalf("row %s changed despite rollback: %s", id, got.Recommendation.State)
		}
		if notes := module.Store.NotesFor(id); len(notes) != 0 {
			t.Fatalf("row %s has notes despite rollback: %+v", id, notes)
		}
	}
}

func TestHiddenStatesAreInvisibleWithoutCapability(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	visible := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	hidden := mustSubmit(t, module, "herald-1", submitFixture("Eadgyth the Wise"))

	if _, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{IDs: []string{hidden.RecommendationID}, NewState: "No Action"}); err != nil {
		t.Fatalf("transition to hidden state failed: %v", err)
	}

	list, err := module.Handler.ListRecommendationsHandler(context.Background(), "herald-1", nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].RecommendationID != visible.RecommendationID {
		t.Fatalf("expected only the visible row, got %+v", list.Items)
	}

	if _, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", hidden.RecommendationID); !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected hidden row to read as not found, got %v", err)
	}

	module.Authorization.AllowHidden("crown-1", true)
	list, err = module.Handler.ListRecommendationsHandler(context.Background(), "crown-1", nil)
	if err != nil {
		t.Fatalf("privileged list failed: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected privileged viewer to see both rows, got %d", len(list.Items))
	}
	if _, err := module.Handler.GetRecommendationHandler(context.Background(), "crown-1", hidden.RecommendationID); err != nil {
		t.Fatalf("privileged get failed: %v", err)
	}
}

func TestBranchScopeRestrictsReads(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	mine := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	other := submitFixture("Eadgyth the Wise")
	other.BranchID = "branch-2"
	theirs := mustSubmit(t, module, "herald-1", other)

	module.Authorization.RestrictToBranches("baron-1", "branch-1")

	list, err := module.Handler.ListRecommendationsHandler(context.Background(), "baron-1", nil)
	if err != nil {
		t.Fatalf("scoped list failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].RecommendationID != mine.RecommendationID {
		t.Fatalf("expected only branch-1 rows, got %+v", list.Items)
	}

	if _, err := module.Handler.GetRecommendationHandler(context.Background(), "baron-1", theirs.RecommendationID); !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected out-of-scope row to read as not found, got %v", err)
	}
}

func TestBoardGroupsByStateWithEmptyColumns(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	first := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	mustSubmit(t, module, "herald-1", submitFixture("Eadgyth the Wise"))

	if _, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{IDs: []string{first.RecommendationID}, NewState: "Need to Schedule"}); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	board, err := module.Handler.BoardHandler(context.Background(), "herald-1", false)
	if err != nil {
		t.Fatalf("board failed: %v", err)
	}

	columns := make(map[string]int, len(board.Columns))
	for _, column := range board.Columns {
		columns[column.State] = len(column.Cards)
	}
	if columns["Submitted"] != 1 || columns["Need to Schedule"] != 1 {
		t.Fatalf("unexpected column sizes: %v", columns)
	}
	if cards, exists := columns["Scheduled"]; !exists || cards != 0 {
		t.Fatalf("expected empty Scheduled column, got %v (present=%v)", cards, exists)
	}
	// No Action is hidden outright for this viewer; Given is collapsed by
	// default and stays empty without show_hidden.
	if _, exists := columns["No Action"]; exists {
		t.Fatalf("expected hidden column to be dropped: %v", columns)
	}
	if columns["Given"] != 0 {
		t.Fatalf("expected collapsed Given column to be empty, got %d", columns["Given"])
	}
}

func TestBoardShowHiddenAppliesLookback(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	module.Store.FreezeNow(now.AddDate(0, 0, -40))
	stale := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	if _, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{IDs: []string{stale.RecommendationID}, NewState: "Given"}); err != nil {
		t.Fatalf("stale transition failed: %v", err)
	}

	module.Store.FreezeNow(now.AddDate(0, 0, -5))
	fresh := mustSubmit(t, module, "herald-1", submitFixture("Eadgyth the Wise"))
	if _, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{IDs: []string{fresh.RecommendationID}, NewState: "Given"}); err != nil {
		t.Fatalf("fresh transition failed: %v", err)
	}

	module.Store.FreezeNow(now)
	board, err := module.Handler.BoardHandler(context.Background(), "herald-1", true)
	if err != nil {
		t.Fatalf("board failed: %v", err)
	}
	for _, column := range board.Columns {
		if column.State != "Given" {
			continue
		}
		if len(column.Cards) != 1 || column.Cards[0].RecommendationID != fresh.RecommendationID {
			t.Fatalf("expected only the recent Given card, got %+v", column.Cards)
		}
		return
	}
	t.Fatalf("Given column missing from board")
}

func TestKanbanMoveBeforeAndIdempotence(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	a := mustSubmit(t, module, "herald-1", submitFixture("Alditha"))
	b := mustSubmit(t, module, "herald-1", submitFixture("Beorn"))
	c := mustSubmit(t, module, "herald-1", submitFixture("Ceolwulf"))

	move := httptransport.KanbanRequest{PlaceBefore: &a.RecommendationID}
	for i := 0; i < 2; i++ {
		if err := module.Handler.KanbanHandler(context.Background(), "herald-1", c.RecommendationID, move); err != nil {
			t.Fatalf("kanban move %d failed: %v", i+1, err)
		}
		assertRanks(t, module, map[string]int{
			c.RecommendationID: 1,
			a.RecommendationID: 2,
			b.RecommendationID: 3,
		})
	}
}

func TestKanbanMoveAfter(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	a := mustSubmit(t, module, "herald-1", submitFixture("Alditha"))
	b := mustSubmit(t, module, "herald-1", submitFixture("Beorn"))
	c := mustSubmit(t, module, "herald-1", submitFixture("Ceolwulf"))

	if err := module.Handler.KanbanHandler(context.Background(), "herald-1", a.RecommendationID,
		httptransport.KanbanRequest{PlaceAfter: &c.RecommendationID}); err != nil {
		t.Fatalf("kanban move failed: %v", err)
	}
	assertRanks(t, module, map[string]int{
		b.RecommendationID: 1,
		c.RecommendationID: 2,
		a.RecommendationID: 3,
	})
}

func TestKanbanColumnChangeLogsTransition(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	logsBefore := len(module.Store.StateLogs())

	if err := module.Handler.KanbanHandler(context.Background(), "herald-1", rec.RecommendationID,
		httptransport.KanbanRequest{NewState: strptr("In Consideration")}); err != nil {
		t.Fatalf("kanban column change failed: %v", err)
	}

	got, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Recommendation.State != "In Consideration" || got.Recommendation.Status != "In Progress" {
		t.Fatalf("unexpected card state: %s/%s", got.Recommendation.State, got.Recommendation.Status)
	}
	if len(module.Store.StateLogs()) != logsBefore+1 {
		t.Fatalf("expected a transition log for the column change")
	}

	if err := module.Handler.KanbanHandler(context.Background(), "herald-1", rec.RecommendationID,
		httptransport.KanbanRequest{NewState: strptr("Banished")}); !errors.Is(err, domainerrors.ErrUnknownState) {
		t.Fatalf("expected unknown state for bad column, got %v", err)
	}
}

func TestDeleteIsSoftAndReadsAsNotFound(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))

	if err := module.Handler.DeleteRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID); !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected deleted row to read as not found, got %v", err)
	}
	if err := module.Handler.DeleteRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID); !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected second delete to report not found, got %v", err)
	}
}

func TestForbiddenActionsAreRejected(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))

	module.Authorization.Deny("clerk-1", "delete")
	if err := module.Handler.DeleteRecommendationHandler(context.Background(), "clerk-1", rec.RecommendationID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if _, err := module.Handler.ListRecommendationsHandler(context.Background(), "", nil); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected anonymous list to be forbidden, got %v", err)
	}
}

func TestKanbanFailedMoveLeavesColumnUnchanged(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	logsBefore := len(module.Store.StateLogs())

	err := module.Handler.KanbanHandler(context.Background(), "herald-1", rec.RecommendationID,
		httptransport.KanbanRequest{
			NewState:    strptr("In Consideration"),
			PlaceBefore: strptr("no-such-card"),
		})
	if !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected not found for missing target, got %v", err)
	}

	got, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Recommendation.State != "Submitted" {
		t.Fatalf("column change survived failed move: %s", got.Recommendation.State)
	}
	if len(module.Store.StateLogs()) != logsBefore {
		t.Fatalf("transition logged despite failed move")
	}
}

func TestBulkUpdateSkipsUnknownRows(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	first := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	second := mustSubmit(t, module, "herald-1", submitFixture("Eadgyth the Wise"))

	resp, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "herald-1",
		httptransport.BulkUpdateStatesRequest{
			IDs:      []string{first.RecommendationID, "no-such-card", second.RecommendationID},
			NewState: "Need to Schedule",
			Note:     "batch approved after court",
		})
	if err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	if resp.Updated != 2 {
		t.Fatalf("expected 2 rows updated, got %d", resp.Updated)
	}

	for _, id := range []string{first.RecommendationID, second.RecommendationID} {
		if notes := module.Store.NotesFor(id); len(notes) != 1 {
			t.Fatalf("row %s: expected one bulk note, got %+v", id, notes)
		}
	}
	if notes := module.Store.NotesFor("no-such-card"); len(notes) != 0 {
		t.Fatalf("unknown id received an orphan note: %+v", notes)
	}
}

func TestBranchScopeRestrictsWrites(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	mine := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	other := submitFixture("Eadgyth the Wise")
	other.BranchID = "branch-2"
	theirs := mustSubmit(t, module, "herald-1", other)

	module.Authorization.RestrictToBranches("baron-1", "branch-1")

	if _, err := module.Handler.UpdateRecommendationHandler(context.Background(), "baron-1", theirs.RecommendationID,
		httptransport.UpdateRecommendationRequest{Reason: strptr("rewritten")}); !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected out-of-scope edit to read as not found, got %v", err)
	}
	if err := module.Handler.DeleteRecommendationHandler(context.Background(), "baron-1", theirs.RecommendationID); !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected out-of-scope delete to read as not found, got %v", err)
	}
	if err := module.Handler.KanbanHandler(context.Background(), "baron-1", theirs.RecommendationID,
		httptransport.KanbanRequest{NewState: strptr("In Consideration")}); !errors.Is(err, domainerrors.ErrRecommendationNotFound) {
		t.Fatalf("expected out-of-scope move to read as not found, got %v", err)
	}

	resp, err := module.Handler.BulkUpdateStatesHandler(context.Background(), "baron-1",
		httptransport.BulkUpdateStatesRequest{
			IDs:      []string{mine.RecommendationID, theirs.RecommendationID},
			NewState: "Need to Schedule",
			Note:     "batch approved after court",
		})
	if err != nil {
		t.Fatalf("scoped bulk update failed: %v", err)
	}
	if resp.Updated != 1 {
		t.Fatalf("expected only the in-scope row to update, got %d", resp.Updated)
	}

	got, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", theirs.RecommendationID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Recommendation.State != "Submitted" {
		t.Fatalf("out-of-scope row was mutated: %s", got.Recommendation.State)
	}
	if notes := module.Store.NotesFor(theirs.RecommendationID); len(notes) != 0 {
		t.Fatalf("out-of-scope row received a note: %+v", notes)
	}
}

func TestUpdateIgnoresPaddedIdenticalState(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	submitted := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	module.Store.FreezeNow(submitted)
	rec := mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))
	logsBefore := len(module.Store.StateLogs())

	module.Store.FreezeNow(submitted.AddDate(0, 0, 3))
	resp, err := module.Handler.UpdateRecommendationHandler(context.Background(), "herald-1", rec.RecommendationID,
		httptransport.UpdateRecommendationRequest{State: strptr("  Submitted  ")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if resp.Recommendation.StateDate != rec.StateDate {
		t.Fatalf("state_date reset by no-op transition: %s -> %s", rec.StateDate, resp.Recommendation.StateDate)
	}
	if len(module.Store.StateLogs()) != logsBefore {
		t.Fatalf("no-op transition produced a state log")
	}
}

func TestBoardWithOnlyCollapsedColumnsLoadsNothing(t *testing.T) {
	module := recommendationservice.NewInMemoryModule(nil, nil)
	mustSubmit(t, module, "herald-1", submitFixture("Wulfric the Bold"))

	uc := queries.QueryUseCase{
		Repository:    module.Store,
		Authorization: module.Authorization,
		Taxonomy:      entities.DefaultTaxonomy(),
		Clock:         module.Store,
	}
	board, err := uc.BoardView(context.Background(), queries.BoardQuery{
		ActorID:         "herald-1",
		States:          []string{"Given"},
		HiddenByDefault: []string{"Given"},
	})
	if err != nil {
		t.Fatalf("board failed: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("expected only the requested column, got %v", board)
	}
	if cards, exists := board[entities.State("Given")]; !exists || len(cards) != 0 {
		t.Fatalf("expected an empty Given column, got %v (present=%v)", cards, exists)
	}
}

func assertRanks(t *testing.T, module recommendationservice.Module, want map[string]int) {
	t.Helper()
	for id, rank := range want {
		got, err := module.Handler.GetRecommendationHandler(context.Background(), "herald-1", id)
		if err != nil {
			t.Fatalf("get %s failed: %v", id, err)
		}
		if got.Recommendation.StackRank != rank {
			t.Fatalf("row %s: expected rank %d, got %d", id, rank, got.Recommendation.StackRank)
		}
	}
}
