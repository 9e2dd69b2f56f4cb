package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	"chancery/contexts/awards-program/recommendation-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// noteEntityType scopes rows in the shared notes table to this module.
const noteEntityType = "Awards.Recommendations"

// conditionColumns whitelists the dotted filter paths the view configuration
// may reference. Anything else is a configuration error, not a SQL error.
var conditionColumns = map[string]string{
	"status":          "awards_recommendations.status",
	"state":           "awards_recommendations.state",
	"branch_id":       "awards_recommendations.branch_id",
	"member_id":       "awards_recommendations.member_id",
	"requester_id":    "awards_recommendations.requester_id",
	"event_id":        "awards_recommendations.event_id",
	"award_id":        "awards_recommendations.award_id",
	"award.branch_id": "awards_awards.branch_id",
	"award.domain_id": "awards_awards.domain_id",
	"award.level_id":  "awards_awards.level_id",
}

var sortColumns = map[string]string{
	"created_at":     "awards_recommendations.created_at",
	"state_date":     "awards_recommendations.state_date",
	"member_name":    "awards_recommendations.member_name",
	"requester_name": "awards_recommendations.requester_name",
	"status":         "awards_recommendations.status",
	"state":          "awards_recommendations.state",
	"stack_rank":     "awards_recommendations.stack_rank",
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateRecommendation(ctx context.Context, rec entities.Recommendation, log entities.StateLog) (entities.Recommendation, error) {
	row := recommendationModelFromEntity(rec)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxRank int
		if err := tx.Model(&recommendationModel{}).
			Select("COALESCE(MAX(stack_rank), 0)").
			Scan(&maxRank).
			Error; err != nil {
			return err
		}
		row.StackRank = maxRank + 1

		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidRecommendationInput
			}
			return err
		}
		return tx.Create(stateLogModelFromEntity(log)).Error
	})
	if err != nil {
		return entities.Recommendation{}, err
	}
	rec.StackRank = row.StackRank
	return rec, nil
}

func (r *Repository) GetRecommendation(ctx context.Context, recommendationID string) (entities.Recommendation, error) {
	var row recommendationModel
	err := withAssociations(r.db.WithContext(ctx)).
		Where("awards_recommendations.recommendation_id = ?", strings.TrimSpace(recommendationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Recommendation{}, domainerrors.ErrRecommendationNotFound
		}
		return entities.Recommendation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRecommendations(ctx context.Context, filter ports.RecommendationFilter) ([]entities.Recommendation, error) {
	tx := withAssociations(r.db.WithContext(ctx)).
		Joins("LEFT JOIN awards_awards ON awards_awards.award_id = awards_recommendations.award_id")

	for _, condition := range filter.Conditions {
		column, ok := conditionColumns[condition.Path]
		if !ok {
			return nil, domainerrors.ErrInvalidRecommendationInput
		}
		tx = tx.Where(column+" = ?", condition.Value)
	}

	if value := strings.TrimSpace(filter.AwardID); value != "" {
		tx = tx.Where("awards_recommendations.award_id = ?", value)
	}
	if value := strings.TrimSpace(filter.BranchID); value != "" {
		tx = tx.Where("awards_recommendations.branch_id = ?", value)
	}
	if value := strings.TrimSpace(filter.DomainID); value != "" {
		tx = tx.Where("awards_awards.domain_id = ?", value)
	}
	if filter.State != "" {
		tx = tx.Where("awards_recommendations.state = ?", string(filter.State))
	}
	if value := strings.TrimSpace(filter.ForContains); value != "" {
		tx = tx.Where("awards_recommendations.member_name ILIKE ?", "%"+value+"%")
	}
	if value := strings.TrimSpace(filter.RequesterName); value != "" {
		tx = tx.Where("awards_recommendations.requester_name = ?", value)
	}
	if value := strings.TrimSpace(filter.CallIntoCourt); value != "" {
		tx = tx.Where("awards_recommendations.call_into_court = ?", value)
	}
	if value := strings.TrimSpace(filter.CourtAvailability); value != "" {
		tx = tx.Where("awards_recommendations.court_availability = ?", value)
	}

	switch {
	case len(filter.States) > 0 && len(filter.RecentStates) > 0:
		tx = tx.Where(
			"(awards_recommendations.state IN ? OR (awards_recommendations.state IN ? AND awards_recommendations.state_date >= ?))",
			stateStrings(filter.States), stateStrings(filter.RecentStates), filter.RecentCutoff.UTC(),
		)
	case len(filter.States) > 0:
		tx = tx.Where("awards_recommendations.state IN ?", stateStrings(filter.States))
	case len(filter.RecentStates) > 0:
		tx = tx.Where(
			"(awards_recommendations.state IN ? AND awards_recommendations.state_date >= ?)",
			stateStrings(filter.RecentStates), filter.RecentCutoff.UTC(),
		)
	}

	if len(filter.ExcludeStates) > 0 {
		tx = tx.Where("awards_recommendations.state NOT IN ?", stateStrings(filter.ExcludeStates))
	}
	if filter.Scope.Restricted {
		branchIDs := filter.Scope.BranchIDs
		if len(branchIDs) == 0 {
			branchIDs = []string{""}
		}
		tx = tx.Where(
			"COALESCE(NULLIF(awards_awards.branch_id, ''), awards_recommendations.branch_id) IN ?",
			branchIDs,
		)
	}

	if filter.RankOrder {
		tx = tx.Order("awards_recommendations.state ASC").
			Order("awards_recommendations.stack_rank ASC").
			Order("awards_recommendations.recommendation_id ASC")
	} else if len(filter.Sort) > 0 {
		for _, key := range filter.Sort {
			column, ok := sortColumns[strings.ToLower(strings.TrimSpace(key.Column))]
			if !ok {
				continue
			}
			direction := " ASC"
			if key.Descending {
				direction = " DESC"
			}
			tx = tx.Order(column + direction)
		}
	} else {
		tx = tx.Order("awards_recommendations.created_at DESC")
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	var rows []recommendationModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Recommendation, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateRecommendation(ctx context.Context, rec entities.Recommendation, note *ports.NoteInput, log *entities.StateLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&recommendationModel{}).
			Where("recommendation_id = ?", strings.TrimSpace(rec.RecommendationID)).
			Updates(recommendationUpdatesFromEntity(rec))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrRecommendationNotFound
		}

		if note != nil {
			if err := tx.Create(noteModelFromInput(rec.RecommendationID, *note, rec.UpdatedAt)).Error; err != nil {
				return err
			}
		}
		if log != nil {
			if err := tx.Create(stateLogModelFromEntity(*log)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// BulkUpdateState applies one transition to every matching id and attaches
// the same note to each affected row, all in one transaction. Ids that are
// unknown, soft-deleted, or outside the update's branch scope are skipped so
// they never receive an orphan note. Matching the original set-oriented
// write, no state log rows are produced here.
func (r *Repository) BulkUpdateState(ctx context.Context, update ports.BulkStateUpdate, note *ports.NoteInput) (int64, error) {
	values := map[string]any{
		"status":      string(update.Status),
		"state":       string(update.State),
		"state_date":  update.StateDate.UTC(),
		"modified_by": strings.TrimSpace(update.ModifiedBy),
		"updated_at":  update.StateDate.UTC(),
	}
	if update.EventID != nil {
		values["event_id"] = strings.TrimSpace(*update.EventID)
	}
	if update.Given != nil {
		values["given"] = update.Given.UTC()
	}
	if update.CloseReason != nil {
		values["close_reason"] = strings.TrimSpace(*update.CloseReason)
	}

	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		matched, err := lockBulkTargets(tx, update)
		if err != nil {
			return err
		}
		if len(matched) == 0 {
			return domainerrors.ErrRecommendationNotFound
		}

		result := tx.Model(&recommendationModel{}).
			Where("recommendation_id IN ?", matched).
			Updates(values)
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected

		if note != nil {
			for _, id := range matched {
				if err := tx.Create(noteModelFromInput(id, *note, update.StateDate)).Error; err != nil {
					return fmt.Errorf("%w: %v", domainerrors.ErrUpdateAborted, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// lockBulkTargets resolves the batch to the ids that actually exist, are not
// soft-deleted, and fall inside the actor's branch scope, locking them for
// the duration of the transaction.
func lockBulkTargets(tx *gorm.DB, update ports.BulkStateUpdate) ([]string, error) {
	query := tx.Model(&recommendationModel{}).
		Joins("LEFT JOIN awards_awards ON awards_awards.award_id = awards_recommendations.award_id").
		Where("awards_recommendations.recommendation_id IN ?", update.IDs)
	if update.Scope.Restricted {
		branchIDs := update.Scope.BranchIDs
		if len(branchIDs) == 0 {
			branchIDs = []string{""}
		}
		query = query.Where(
			"COALESCE(NULLIF(awards_awards.branch_id, ''), awards_recommendations.branch_id) IN ?",
			branchIDs,
		)
	}

	var matched []string
	err := query.
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "awards_recommendations"}}).
		Pluck("awards_recommendations.recommendation_id", &matched).
		Error
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// Reposition moves a card in the global stack rank order and optionally into
// a new state column. Rank shifts and the state change commit together.
func (r *Repository) Reposition(ctx context.Context, input ports.RepositionInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recommendationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("recommendation_id = ?", strings.TrimSpace(input.RecommendationID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrRecommendationNotFound
			}
			return err
		}

		if input.NewState != nil && string(*input.NewState) != row.State {
			log := entities.StateLog{
				LogID:            uuid.NewString(),
				RecommendationID: row.RecommendationID,
				FromStatus:       entities.Status(row.Status),
				ToStatus:         *input.NewStatus,
				FromState:        entities.State(row.State),
				ToState:          *input.NewState,
				CreatedBy:        strings.TrimSpace(input.ModifiedBy),
				CreatedAt:        input.StateDate.UTC(),
			}
			result := tx.Model(&recommendationModel{}).
				Where("recommendation_id = ?", row.RecommendationID).
				Updates(map[string]any{
					"status":      string(*input.NewStatus),
					"state":       string(*input.NewState),
					"state_date":  input.StateDate.UTC(),
					"modified_by": strings.TrimSpace(input.ModifiedBy),
					"updated_at":  input.StateDate.UTC(),
				})
			if result.Error != nil {
				return result.Error
			}
			if err := tx.Create(stateLogModelFromEntity(log)).Error; err != nil {
				return err
			}
		}

		targetID := ""
		if input.BeforeID != nil {
			targetID = strings.TrimSpace(*input.BeforeID)
		} else if input.AfterID != nil {
			targetID = strings.TrimSpace(*input.AfterID)
		}
		if targetID == "" {
			return nil
		}

		var target recommendationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("recommendation_id", "stack_rank").
			Where("recommendation_id = ?", targetID).
			First(&target).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrRecommendationNotFound
			}
			return err
		}

		newRank := destinationRank(row.StackRank, target.StackRank, input.BeforeID != nil)
		if newRank == row.StackRank {
			return nil
		}
		if err := shiftRanks(tx, row.StackRank, newRank); err != nil {
			return err
		}
		return tx.Model(&recommendationModel{}).
			Where("recommendation_id = ?", row.RecommendationID).
			Updates(map[string]any{
				"stack_rank":  newRank,
				"modified_by": strings.TrimSpace(input.ModifiedBy),
				"updated_at":  input.StateDate.UTC(),
			}).
			Error
	})
}

// destinationRank computes where the moved row must land so that it sits
// immediately ahead of (before) or behind (after) the target once the gap
// it vacates has been closed. A result equal to the current rank is a no-op,
// which makes repeated identical moves idempotent.
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

// shiftRanks closes the gap left by the moved row. Moving down pulls the
// rows in between up by one; moving up pushes them down by one.
func shiftRanks(tx *gorm.DB, current, newRank int) error {
	if current < newRank {
		return tx.Model(&recommendationModel{}).
			Where("stack_rank BETWEEN ? AND ?", current+1, newRank).
			Update("stack_rank", gorm.Expr("stack_rank - 1")).
			Error
	}
	return tx.Model(&recommendationModel{}).
		Where("stack_rank BETWEEN ? AND ?", newRank, current-1).
		Update("stack_rank", gorm.Expr("stack_rank + 1")).
		Error
}

func (r *Repository) DeleteRecommendation(ctx context.Context, recommendationID string, deletedBy string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&recommendationModel{}).
		Where("recommendation_id = ?", strings.TrimSpace(recommendationID)).
		Updates(map[string]any{
			"modified_by": strings.TrimSpace(deletedBy),
			"updated_at":  at.UTC(),
			"deleted":     at.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRecommendationNotFound
	}
	return nil
}

func withAssociations(tx *gorm.DB) *gorm.DB {
	return tx.Model(&recommendationModel{}).
		Preload("Member").
		Preload("Requester").
		Preload("Branch").
		Preload("Award").
		Preload("Award.Domain").
		Preload("Award.Level").
		Preload("AssignedEvent").
		Preload("Events").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Where("entity_type = ?", noteEntityType).Order("created_at ASC")
		})
}

func stateStrings(states []entities.State) []string {
	values := make([]string, 0, len(states))
	for _, state := range states {
		values = append(values, string(state))
	}
	return values
}

type recommendationModel struct {
	RecommendationID  string         `gorm:"column:recommendation_id;primaryKey"`
	RequesterID       string         `gorm:"column:requester_id"`
	MemberID          string         `gorm:"column:member_id"`
	BranchID          string         `gorm:"column:branch_id"`
	AwardID           string         `gorm:"column:award_id"`
	EventID           string         `gorm:"column:event_id"`
	Specialty         string         `gorm:"column:specialty"`
	RequesterName     string         `gorm:"column:requester_name"`
	MemberName        string         `gorm:"column:member_name"`
	ContactEmail      string         `gorm:"column:contact_email"`
	ContactNumber     string         `gorm:"column:contact_number"`
	Reason            string         `gorm:"column:reason"`
	CallIntoCourt     string         `gorm:"column:call_into_court"`
	CourtAvailability string         `gorm:"column:court_availability"`
	PersonToNotify    string         `gorm:"column:person_to_notify"`
	NotFound          bool           `gorm:"column:not_found"`
	Status            string         `gorm:"column:status"`
	State             string         `gorm:"column:state"`
	StateDate         time.Time      `gorm:"column:state_date"`
	StackRank         int            `gorm:"column:stack_rank"`
	Given             *time.Time     `gorm:"column:given"`
	CloseReason       string         `gorm:"column:close_reason"`
	CreatedBy         string         `gorm:"column:created_by"`
	ModifiedBy        string         `gorm:"column:modified_by"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
	Deleted           gorm.DeletedAt `gorm:"column:deleted"`

	Member        *memberModel `gorm:"foreignKey:MemberID;references:MemberID"`
	Requester     *memberModel `gorm:"foreignKey:RequesterID;references:MemberID"`
	Branch        *branchModel `gorm:"foreignKey:BranchID;references:BranchID"`
	Award         *awardModel  `gorm:"foreignKey:AwardID;references:AwardID"`
	AssignedEvent *eventModel  `gorm:"foreignKey:EventID;references:EventID"`
	Events        []eventModel `gorm:"many2many:awards_recommendations_events;foreignKey:RecommendationID;joinForeignKey:recommendation_id;references:EventID;joinReferences:event_id"`
	Notes         []noteModel  `gorm:"foreignKey:EntityID;references:RecommendationID"`
}

func (recommendationModel) TableName() string {
	return "awards_recommendations"
}

func recommendationModelFromEntity(item entities.Recommendation) recommendationModel {
	row := recommendationModel{
		RecommendationID:  strings.TrimSpace(item.RecommendationID),
		RequesterID:       strings.TrimSpace(item.RequesterID),
		MemberID:          strings.TrimSpace(item.MemberID),
		BranchID:          strings.TrimSpace(item.BranchID),
		AwardID:           strings.TrimSpace(item.AwardID),
		EventID:           strings.TrimSpace(item.EventID),
		Specialty:         strings.TrimSpace(item.Specialty),
		RequesterName:     strings.TrimSpace(item.RequesterName),
		MemberName:        strings.TrimSpace(item.MemberName),
		ContactEmail:      strings.TrimSpace(item.ContactEmail),
		ContactNumber:     strings.TrimSpace(item.ContactNumber),
		Reason:            item.Reason,
		CallIntoCourt:     strings.TrimSpace(item.CallIntoCourt),
		CourtAvailability: strings.TrimSpace(item.CourtAvailability),
		PersonToNotify:    strings.TrimSpace(item.PersonToNotify),
		NotFound:          item.MemberNotFound,
		Status:            string(item.Status),
		State:             string(item.State),
		StateDate:         item.StateDate.UTC(),
		StackRank:         item.StackRank,
		Given:             normalizeOptionalTime(item.Given),
		CloseReason:       strings.TrimSpace(item.CloseReason),
		CreatedBy:         strings.TrimSpace(item.CreatedBy),
		ModifiedBy:        strings.TrimSpace(item.ModifiedBy),
		CreatedAt:         item.CreatedAt.UTC(),
		UpdatedAt:         item.UpdatedAt.UTC(),
	}
	return row
}

func recommendationUpdatesFromEntity(item entities.Recommendation) map[string]any {
	row := recommendationModelFromEntity(item)
	return map[string]any{
		"requester_id":       row.RequesterID,
		"member_id":          row.MemberID,
		"branch_id":          row.BranchID,
		"award_id":           row.AwardID,
		"event_id":           row.EventID,
		"specialty":          row.Specialty,
		"requester_name":     row.RequesterName,
		"member_name":        row.MemberName,
		"contact_email":      row.ContactEmail,
		"contact_number":     row.ContactNumber,
		"reason":             row.Reason,
		"call_into_court":    row.CallIntoCourt,
		"court_availability": row.CourtAvailability,
		"person_to_notify":   row.PersonToNotify,
		"not_found":          row.NotFound,
		"status":             row.Status,
		"state":              row.State,
		"state_date":         row.StateDate,
		"given":              row.Given,
		"close_reason":       row.CloseReason,
		"modified_by":        row.ModifiedBy,
		"updated_at":         row.UpdatedAt,
	}
}

func (m recommendationModel) toEntity() entities.Recommendation {
	item := entities.Recommendation{
		RecommendationID:  m.RecommendationID,
		RequesterID:       m.RequesterID,
		MemberID:          m.MemberID,
		BranchID:          m.BranchID,
		AwardID:           m.AwardID,
		EventID:           m.EventID,
		Specialty:         m.Specialty,
		RequesterName:     m.RequesterName,
		MemberName:        m.MemberName,
		ContactEmail:      m.ContactEmail,
		ContactNumber:     m.ContactNumber,
		Reason:            m.Reason,
		CallIntoCourt:     m.CallIntoCourt,
		CourtAvailability: m.CourtAvailability,
		PersonToNotify:    m.PersonToNotify,
		MemberNotFound:    m.NotFound,
		Status:            entities.Status(m.Status),
		State:             entities.State(m.State),
		StateDate:         m.StateDate.UTC(),
		StackRank:         m.StackRank,
		Given:             normalizeOptionalTime(m.Given),
		CloseReason:       m.CloseReason,
		CreatedBy:         m.CreatedBy,
		ModifiedBy:        m.ModifiedBy,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
	if m.Deleted.Valid {
		deletedAt := m.Deleted.Time.UTC()
		item.DeletedAt = &deletedAt
	}
	if m.Member != nil {
		ref := m.Member.toRef()
		item.Member = &ref
	}
	if m.Requester != nil {
		ref := m.Requester.toRef()
		item.Requester = &ref
	}
	if m.Branch != nil {
		item.Branch = &entities.BranchRef{BranchID: m.Branch.BranchID, Name: m.Branch.Name}
	}
	if m.Award != nil {
		item.Award = &entities.AwardRef{
			AwardID:      m.Award.AwardID,
			Abbreviation: m.Award.Abbreviation,
			BranchID:     m.Award.BranchID,
		}
		if m.Award.Domain != nil {
			item.Award.Domain = entities.DomainRef{DomainID: m.Award.Domain.DomainID, Name: m.Award.Domain.Name}
		}
		if m.Award.Level != nil {
			item.Award.Level = entities.LevelRef{LevelID: m.Award.Level.LevelID, Name: m.Award.Level.Name}
		}
	}
	if m.AssignedEvent != nil {
		ref := m.AssignedEvent.toRef()
		item.AssignedEvent = &ref
	}
	for _, event := range m.Events {
		item.Events = append(item.Events, event.toRef())
	}
	for _, note := range m.Notes {
		item.Notes = append(item.Notes, entities.Note{
			NoteID:    note.NoteID,
			Subject:   note.Subject,
			Body:      note.Body,
			AuthorID:  note.AuthorID,
			CreatedAt: note.CreatedAt.UTC(),
		})
	}
	return item
}

type memberModel struct {
	MemberID      string `gorm:"column:member_id;primaryKey"`
	Name          string `gorm:"column:name"`
	Title         string `gorm:"column:title"`
	Pronouns      string `gorm:"column:pronouns"`
	Pronunciation string `gorm:"column:pronunciation"`
}

func (memberModel) TableName() string {
	return "members"
}

func (m memberModel) toRef() entities.MemberRef {
	return entities.MemberRef{
		MemberID:      m.MemberID,
		Name:          m.Name,
		Title:         m.Title,
		Pronouns:      m.Pronouns,
		Pronunciation: m.Pronunciation,
	}
}

type branchModel struct {
	BranchID string `gorm:"column:branch_id;primaryKey"`
	Name     string `gorm:"column:name"`
}

func (branchModel) TableName() string {
	return "branches"
}

type domainModel struct {
	DomainID string `gorm:"column:domain_id;primaryKey"`
	Name     string `gorm:"column:name"`
}

func (domainModel) TableName() string {
	return "awards_domains"
}

type levelModel struct {
	LevelID string `gorm:"column:level_id;primaryKey"`
	Name    string `gorm:"column:name"`
}

func (levelModel) TableName() string {
	return "awards_levels"
}

type awardModel struct {
	AwardID      string `gorm:"column:award_id;primaryKey"`
	Abbreviation string `gorm:"column:abbreviation"`
	BranchID     string `gorm:"column:branch_id"`
	DomainID     string `gorm:"column:domain_id"`
	LevelID      string `gorm:"column:level_id"`

	Domain *domainModel `gorm:"foreignKey:DomainID;references:DomainID"`
	Level  *levelModel  `gorm:"foreignKey:LevelID;references:LevelID"`
}

func (awardModel) TableName() string {
	return "awards_awards"
}

type eventModel struct {
	EventID   string     `gorm:"column:event_id;primaryKey"`
	Name      string     `gorm:"column:name"`
	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
}

func (eventModel) TableName() string {
	return "awards_events"
}

func (m eventModel) toRef() entities.EventRef {
	return entities.EventRef{
		EventID:   m.EventID,
		Name:      m.Name,
		StartDate: normalizeOptionalTime(m.StartDate),
		EndDate:   normalizeOptionalTime(m.EndDate),
	}
}

type noteModel struct {
	NoteID     string    `gorm:"column:note_id;primaryKey"`
	EntityType string    `gorm:"column:entity_type"`
	EntityID   string    `gorm:"column:entity_id"`
	Subject    string    `gorm:"column:subject"`
	Body       string    `gorm:"column:body"`
	AuthorID   string    `gorm:"column:author_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (noteModel) TableName() string {
	return "notes"
}

func noteModelFromInput(recommendationID string, note ports.NoteInput, at time.Time) *noteModel {
	return &noteModel{
		NoteID:     uuid.NewString(),
		EntityType: noteEntityType,
		EntityID:   strings.TrimSpace(recommendationID),
		Subject:    strings.TrimSpace(note.Subject),
		Body:       note.Body,
		AuthorID:   strings.TrimSpace(note.AuthorID),
		CreatedAt:  at.UTC(),
	}
}

type stateLogModel struct {
	LogID            string    `gorm:"column:log_id;primaryKey"`
	RecommendationID string    `gorm:"column:recommendation_id"`
	FromStatus       string    `gorm:"column:from_status"`
	ToStatus         string    `gorm:"column:to_status"`
	FromState        string    `gorm:"column:from_state"`
	ToState          string    `gorm:"column:to_state"`
	CreatedBy        string    `gorm:"column:created_by"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (stateLogModel) TableName() string {
	return "awards_recommendations_states_logs"
}

func stateLogModelFromEntity(item entities.StateLog) *stateLogModel {
	return &stateLogModel{
		LogID:            strings.TrimSpace(item.LogID),
		RecommendationID: strings.TrimSpace(item.RecommendationID),
		FromStatus:       string(item.FromStatus),
		ToStatus:         string(item.ToStatus),
		FromState:        string(item.FromState),
		ToState:          string(item.ToState),
		CreatedBy:        strings.TrimSpace(item.CreatedBy),
		CreatedAt:        item.CreatedAt.UTC(),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
