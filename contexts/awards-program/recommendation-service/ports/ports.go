package ports

import (
	"context"
	"time"

	"chancery/contexts/awards-program/recommendation-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ParamSource is an abstract key/value lookup (typically request query
// parameters) consumed by the filter composer. Get returns a single scalar;
// repeated keys resolve to the first value.
type ParamSource interface {
	Get(name string) (string, bool)
}

// BranchScope restricts reads and writes to a set of branch ids. An
// unrestricted scope leaves queries untouched.
type BranchScope struct {
	Restricted bool
	BranchIDs  []string
}

// Covers reports whether the scope admits the recommendation. The award's
// owning branch takes precedence over the branch recorded on the row.
func (s BranchScope) Covers(rec entities.Recommendation) bool {
	if !s.Restricted {
		return true
	}
	branchID := rec.BranchID
	if rec.Award != nil && rec.Award.BranchID != "" {
		branchID = rec.Award.BranchID
	}
	for _, allowed := range s.BranchIDs {
		if allowed == branchID {
			return true
		}
	}
	return false
}

// AuthorizationGateway is the external permission engine. The engine calls
// it before every read scoping and before every mutation; a Forbidden result
// aborts the operation without opening a transaction.
type AuthorizationGateway interface {
	Authorize(ctx context.Context, actorID string, action string) error
	Scope(ctx context.Context, actorID string) (BranchScope, error)
	CanViewHidden(ctx context.Context, actorID string) (bool, error)
}

// Actions passed to the authorization gateway.
const (
	ActionView   = "view"
	ActionSubmit = "submit"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionExport = "export"
)

// Condition is one resolved filter predicate. Path is a dotted association
// path ("award.domain_id", "state"); the repository maps it to storage.
type Condition struct {
	Path  string
	Value any
}

// SortKey names a sortable logical column; repositories translate it.
type SortKey struct {
	Column     string
	Descending bool
}

// RecommendationFilter is the single query shape shared by the table, board,
// and export read paths.
type RecommendationFilter struct {
	Conditions []Condition

	// Ad-hoc additive conditions, each optional.
	AwardID           string
	BranchID          string
	DomainID          string
	State             entities.State
	ForContains       string
	RequesterName     string
	CallIntoCourt     string
	CourtAvailability string

	// States limits results to the listed states (board columns). When
	// RecentStates is non-empty, rows in those states are additionally
	// included only when state_date is after RecentCutoff.
	States       []entities.State
	RecentStates []entities.State
	RecentCutoff time.Time

	// ExcludeStates removes hidden states for actors without the
	// view-hidden capability. Applied on every read path.
	ExcludeStates []entities.State

	Scope BranchScope

	Sort      []SortKey
	RankOrder bool
	Limit     int
	Offset    int
}

// NoteInput is an audit note created in the same transaction as the write it
// accompanies.
type NoteInput struct {
	Subject  string
	Body     string
	AuthorID string
}

// BulkStateUpdate is one set-oriented transition applied to every matching
// id. Scope restricts the batch to the actor's branches; ids outside it (or
// deleted, or unknown) are not updated and receive no note.
type BulkStateUpdate struct {
	IDs         []string
	Status      entities.Status
	State       entities.State
	StateDate   time.Time
	EventID     *string
	Given       *time.Time
	CloseReason *string
	ModifiedBy  string
	Scope       BranchScope
}

// RepositionInput moves a card relative to a target and optionally into a
// new column. Nil target pointers mean "no positioning requested"; they can
// never collide with a real id.
type RepositionInput struct {
	RecommendationID string
	BeforeID         *string
	AfterID          *string
	NewStatus        *entities.Status
	NewState         *entities.State
	StateDate        time.Time
	ModifiedBy       string
}

// Repository persists recommendations. Every mutating method runs inside a
// single transaction: either all of its writes land or none do.
// CreateRecommendation returns the stored row, which includes the stack rank
// assigned at the end of the board order.
type Repository interface {
	CreateRecommendation(ctx context.Context, rec entities.Recommendation, log entities.StateLog) (entities.Recommendation, error)
	GetRecommendation(ctx context.Context, recommendationID string) (entities.Recommendation, error)
	ListRecommendations(ctx context.Context, filter RecommendationFilter) ([]entities.Recommendation, error)
	UpdateRecommendation(ctx context.Context, rec entities.Recommendation, note *NoteInput, log *entities.StateLog) error
	BulkUpdateState(ctx context.Context, update BulkStateUpdate, note *NoteInput) (int64, error)
	Reposition(ctx context.Context, input RepositionInput) error
	DeleteRecommendation(ctx context.Context, recommendationID string, deletedBy string, at time.Time) error
}
