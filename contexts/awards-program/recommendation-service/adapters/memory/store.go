package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	"chancery/contexts/awards-program/recommendation-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory repository used by unit tests and local runs. It
// mirrors the transactional behavior of the postgres adapter: every mutating
// method stages its writes and applies them only when all of them succeed.
type Store struct {
	mu sync.RWMutex

	recommendations map[string]entities.Recommendation
	notes           map[string][]entities.Note
	stateLogs       []entities.StateLog

	noteFailures map[string]struct{}
	frozenNow    *time.Time
}

func NewStore(seed []entities.Recommendation) *Store {
	recommendations := make(map[string]entities.Recommendation, len(seed))
	maxRank := 0
	for _, item := range seed {
		if item.StackRank > maxRank {
			maxRank = item.StackRank
		}
	}
	for _, item := range seed {
		if item.StackRank == 0 {
			maxRank++
			item.StackRank = maxRank
		}
		recommendations[item.RecommendationID] = item
	}
	return &Store{
		recommendations: recommendations,
		notes:           make(map[string][]entities.Note),
		stateLogs:       make([]entities.StateLog, 0),
		noteFailures:    make(map[string]struct{}),
	}
}

// Now implements ports.Clock. FreezeNow pins it for deterministic tests.
func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.frozenNow != nil {
		return *s.frozenNow
	}
	return time.Now().UTC()
}

func (s *Store) FreezeNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	frozen := now.UTC()
	s.frozenNow = &frozen
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// FailNotesFor makes note creation fail for the given recommendation id.
// Tests use it to verify that a failed write rolls back the whole batch.
func (s *Store) FailNotesFor(recommendationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteFailures[recommendationID] = struct{}{}
}

// StateLogs returns a copy of every transition recorded so far.
func (s *Store) StateLogs() []entities.StateLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.StateLog(nil), s.stateLogs...)
}

// NotesFor returns the notes attached to one recommendation, oldest first.
func (s *Store) NotesFor(recommendationID string) []entities.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := append([]entities.Note(nil), s.notes[strings.TrimSpace(recommendationID)]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

func (s *Store) CreateRecommendation(_ context.Context, rec entities.Recommendation, log entities.StateLog) (entities.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recommendations[rec.RecommendationID]; exists {
		return entities.Recommendation{}, domainerrors.ErrInvalidRecommendationInput
	}
	maxRank := 0
	for _, item := range s.recommendations {
		if item.DeletedAt == nil && item.StackRank > maxRank {
			maxRank = item.StackRank
		}
	}
	rec.StackRank = maxRank + 1
	s.recommendations[rec.RecommendationID] = rec
	s.stateLogs = append(s.stateLogs, log)
	return rec, nil
}

func (s *Store) GetRecommendation(_ context.Context, recommendationID string) (entities.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.recommendations[strings.TrimSpace(recommendationID)]
	if !exists || item.DeletedAt != nil {
		return entities.Recommendation{}, domainerrors.ErrRecommendationNotFound
	}
	return s.withNotes(item), nil
}

func (s *Store) ListRecommendations(_ context.Context, filter ports.RecommendationFilter) ([]entities.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Recommendation, 0, len(s.recommendations))
	for _, item := range s.recommendations {
		if item.DeletedAt != nil {
			continue
		}
		match, err := matchesFilter(item, filter)
		if err != nil {
			return nil, err
		}
		if match {
			items = append(items, s.withNotes(item))
		}
	}
	sortItems(items, filter)

	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []entities.Recommendation{}, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) UpdateRecommendation(_ context.Context, rec entities.Recommendation, note *ports.NoteInput, log *entities.StateLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.recommendations[rec.RecommendationID]
	if !exists || existing.DeletedAt != nil {
		return domainerrors.ErrRecommendationNotFound
	}

	var staged *entities.Note
	if note != nil {
		created, err := s.stageNote(rec.RecommendationID, *note, rec.UpdatedAt)
		if err != nil {
			return err
		}
		staged = &created
	}

	rec.StackRank = existing.StackRank
	rec.CreatedAt = existing.CreatedAt
	rec.CreatedBy = existing.CreatedBy
	s.recommendations[rec.RecommendationID] = rec
	if staged != nil {
		s.notes[rec.RecommendationID] = append(s.notes[rec.RecommendationID], *staged)
	}
	if log != nil {
		s.stateLogs = append(s.stateLogs, *log)
	}
	return nil
}

func (s *Store) BulkUpdateState(_ context.Context, update ports.BulkStateUpdate, note *ports.NoteInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := make(map[string]entities.Recommendation, len(update.IDs))
	stagedNotes := make(map[string]entities.Note, len(update.IDs))
	for _, id := range update.IDs {
		item, exists := s.recommendations[id]
		if !exists || item.DeletedAt != nil || !update.Scope.Covers(item) {
			continue
		}
		item.Status = update.Status
		item.State = update.State
		item.StateDate = update.StateDate.UTC()
		item.ModifiedBy = update.ModifiedBy
		item.UpdatedAt = update.StateDate.UTC()
		if update.EventID != nil {
			item.EventID = strings.TrimSpace(*update.EventID)
		}
		if update.Given != nil {
			given := update.Given.UTC()
			item.Given = &given
		}
		if update.CloseReason != nil {
			item.CloseReason = strings.TrimSpace(*update.CloseReason)
		}
		changed[id] = item

		if note != nil {
			created, err := s.stageNote(id, *note, update.StateDate)
			if err != nil {
				return 0, err
			}
			stagedNotes[id] = created
		}
	}
	if len(changed) == 0 {
		return 0, domainerrors.ErrRecommendationNotFound
	}

	for id, item := range changed {
		s.recommendations[id] = item
	}
	for id, created := range stagedNotes {
		s.notes[id] = append(s.notes[id], created)
	}
	return int64(len(changed)), nil
}

// Reposition stages the state change on a local copy and applies nothing
// until the positioning target (when given) has resolved, so a bad target
// leaves the card in its original column and slot.
func (s *Store) Reposition(_ context.Context, input ports.RepositionInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.recommendations[strings.TrimSpace(input.RecommendationID)]
	if !exists || item.DeletedAt != nil {
		return domainerrors.ErrRecommendationNotFound
	}

	var log *entities.StateLog
	if input.NewState != nil && *input.NewState != item.State {
		log = &entities.StateLog{
			LogID:            uuid.NewString(),
			RecommendationID: item.RecommendationID,
			FromStatus:       item.Status,
			ToStatus:         *input.NewStatus,
			FromState:        item.State,
			ToState:          *input.NewState,
			CreatedBy:        input.ModifiedBy,
			CreatedAt:        input.StateDate.UTC(),
		}
		item.Status = *input.NewStatus
		item.State = *input.NewState
		item.StateDate = input.StateDate.UTC()
		item.ModifiedBy = input.ModifiedBy
		item.UpdatedAt = input.StateDate.UTC()
	}

	targetID := ""
	before := false
	if input.BeforeID != nil {
		targetID = strings.TrimSpace(*input.BeforeID)
		before = true
	} else if input.AfterID != nil {
		targetID = strings.TrimSpace(*input.AfterID)
	}

	if targetID != "" {
		target, exists := s.recommendations[targetID]
		if !exists || target.DeletedAt != nil {
			return domainerrors.ErrRecommendationNotFound
		}

		current := item.StackRank
		if newRank := destinationRank(current, target.StackRank, before); newRank != current {
			for id, other := range s.recommendations {
				if id == item.RecommendationID {
					continue
				}
				switch {
				case current < newRank && other.StackRank > current && other.StackRank <= newRank:
					other.StackRank--
				case current > newRank && other.StackRank >= newRank && other.StackRank < current:
					other.StackRank++
				default:
					continue
				}
				s.recommendations[id] = other
			}
			item.StackRank = newRank
			item.ModifiedBy = input.ModifiedBy
			item.UpdatedAt = input.StateDate.UTC()
		}
	}

	s.recommendations[item.RecommendationID] = item
	if log != nil {
		s.stateLogs = append(s.stateLogs, *log)
	}
	return nil
}

func (s *Store) DeleteRecommendation(_ context.Context, recommendationID string, deletedBy string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.recommendations[strings.TrimSpace(recommendationID)]
	if !exists || item.DeletedAt != nil {
		return domainerrors.ErrRecommendationNotFound
	}
	deletedAt := at.UTC()
	item.DeletedAt = &deletedAt
	item.ModifiedBy = strings.TrimSpace(deletedBy)
	item.UpdatedAt = deletedAt
	s.recommendations[item.RecommendationID] = item
	return nil
}

func (s *Store) stageNote(recommendationID string, note ports.NoteInput, at time.Time) (entities.Note, error) {
	if _, fail := s.noteFailures[recommendationID]; fail {
		return entities.Note{}, fmt.Errorf("%w: note store unavailable for %s", domainerrors.ErrUpdateAborted, recommendationID)
	}
	return entities.Note{
		NoteID:    uuid.NewString(),
		Subject:   strings.TrimSpace(note.Subject),
		Body:      note.Body,
		AuthorID:  strings.TrimSpace(note.AuthorID),
		CreatedAt: at.UTC(),
	}, nil
}

func (s *Store) withNotes(item entities.Recommendation) entities.Recommendation {
	notes := append([]entities.Note(nil), s.notes[item.RecommendationID]...)
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
	item.Notes = notes
	return item
}

// destinationRank mirrors the rank math of the postgres adapter so board
// behavior is identical across both repositories.
func destinationRank(current, target int, before bool) int {
	if before {
		if current < target {
			return target - 1
		}
		return target
	}
	if current > target {
		return target + 1
	}
	return target
}

func matchesFilter(item entities.Recommendation, filter ports.RecommendationFilter) (bool, error) {
	for _, condition := range filter.Conditions {
		value, err := conditionField(item, condition.Path)
		if err != nil {
			return false, err
		}
		if value != fmt.Sprintf("%v", condition.Value) {
			return false, nil
		}
	}
	if value := strings.TrimSpace(filter.AwardID); value != "" && item.AwardID != value {
		return false, nil
	}
	if value := strings.TrimSpace(filter.BranchID); value != "" && item.BranchID != value {
		return false, nil
	}
	if value := strings.TrimSpace(filter.DomainID); value != "" {
		if item.Award == nil || item.Award.Domain.DomainID != value {
			return false, nil
		}
	}
	if filter.State != "" && item.State != filter.State {
		return false, nil
	}
	if value := strings.TrimSpace(filter.ForContains); value != "" {
		if !strings.Contains(strings.ToLower(item.MemberName), strings.ToLower(value)) {
			return false, nil
		}
	}
	if value := strings.TrimSpace(filter.RequesterName); value != "" && item.RequesterName != value {
		return false, nil
	}
	if value := strings.TrimSpace(filter.CallIntoCourt); value != "" && item.CallIntoCourt != value {
		return false, nil
	}
	if value := strings.TrimSpace(filter.CourtAvailability); value != "" && item.CourtAvailability != value {
		return false, nil
	}

	if len(filter.States) > 0 || len(filter.RecentStates) > 0 {
		included := containsState(filter.States, item.State)
		if !included && containsState(filter.RecentStates, item.State) {
			included = !item.StateDate.Before(filter.RecentCutoff)
		}
		if !included {
			return false, nil
		}
	}
	if containsState(filter.ExcludeStates, item.State) {
		return false, nil
	}
	if filter.Scope.Restricted {
		branchID := item.BranchID
		if item.Award != nil && item.Award.BranchID != "" {
			branchID = item.Award.BranchID
		}
		allowed := false
		for _, id := range filter.Scope.BranchIDs {
			if id == branchID {
				allowed = true
				break
			}
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

func conditionField(item entities.Recommendation, path string) (string, error) {
	switch path {
	case "status":
		return string(item.Status), nil
	case "state":
		return string(item.State), nil
	case "branch_id":
		return item.BranchID, nil
	case "member_id":
		return item.MemberID, nil
	case "requester_id":
		return item.RequesterID, nil
	case "event_id":
		return item.EventID, nil
	case "award_id":
		return item.AwardID, nil
	case "award.branch_id":
		if item.Award == nil {
			return "", nil
		}
		return item.Award.BranchID, nil
	case "award.domain_id":
		if item.Award == nil {
			return "", nil
		}
		return item.Award.Domain.DomainID, nil
	case "award.level_id":
		if item.Award == nil {
			return "", nil
		}
		return item.Award.Level.LevelID, nil
	default:
		return "", domainerrors.ErrInvalidRecommendationInput
	}
}

func containsState(states []entities.State, state entities.State) bool {
	for _, candidate := range states {
		if candidate == state {
			return true
		}
	}
	return false
}

func sortItems(items []entities.Recommendation, filter ports.RecommendationFilter) {
	if filter.RankOrder {
		sort.Slice(items, func(i, j int) bool {
			if items[i].State != items[j].State {
				return items[i].State < items[j].State
			}
			if items[i].StackRank != items[j].StackRank {
				return items[i].StackRank < items[j].StackRank
			}
			return items[i].RecommendationID < items[j].RecommendationID
		})
		return
	}
	if len(filter.Sort) > 0 {
		keys := filter.Sort
		sort.Slice(items, func(i, j int) bool {
			for _, key := range keys {
				left, right := sortField(items[i], key.Column), sortField(items[j], key.Column)
				if left == right {
					continue
				}
				if key.Descending {
					return left > right
				}
				return left < right
			}
			return items[i].RecommendationID < items[j].RecommendationID
		})
		return
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func sortField(item entities.Recommendation, column string) string {
	switch strings.ToLower(strings.TrimSpace(column)) {
	case "created_at":
		return item.CreatedAt.Format(time.RFC3339Nano)
	case "state_date":
		return item.StateDate.Format(time.RFC3339Nano)
	case "member_name":
		return item.MemberName
	case "requester_name":
		return item.RequesterName
	case "status":
		return string(item.Status)
	case "state":
		return string(item.State)
	case "stack_rank":
		return fmt.Sprintf("%012d", item.StackRank)
	default:
		return ""
	}
}
