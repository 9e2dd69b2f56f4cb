package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitRecommendationRequest struct {
	RequesterID       string `json:"requester_id"`
	RequesterName     string `json:"requester_name"`
	ContactEmail      string `json:"contact_email"`
	ContactNumber     string `json:"contact_number"`
	MemberID          string `json:"member_id"`
	MemberName        string `json:"member_name"`
	MemberNotFound    bool   `json:"member_not_found"`
	BranchID          string `json:"branch_id"`
	AwardID           string `json:"award_id"`
	Specialty         string `json:"specialty"`
	Reason            string `json:"reason"`
	CallIntoCourt     string `json:"call_into_court"`
	CourtAvailability string `json:"court_availability"`
	PersonToNotify    string `json:"person_to_notify"`
}

type SubmitRecommendationResponse struct {
	Recommendation RecommendationDTO `json:"recommendation"`
}

// UpdateRecommendationRequest mirrors the edit form. Nil fields are left
// unchanged; an explicit empty string clears the field.
type UpdateRecommendationRequest struct {
	MemberID          *string `json:"member_id"`
	MemberName        *string `json:"member_name"`
	BranchID          *string `json:"branch_id"`
	AwardID           *string `json:"award_id"`
	Specialty         *string `json:"specialty"`
	Reason            *string `json:"reason"`
	CallIntoCourt     *string `json:"call_into_court"`
	CourtAvailability *string `json:"court_availability"`
	PersonToNotify    *string `json:"person_to_notify"`

	State       *string `json:"state"`
	EventID     *string `json:"event_id"`
	Given       *string `json:"given"`
	CloseReason *string `json:"close_reason"`

	Note string `json:"note"`
}

type UpdateRecommendationResponse struct {
	Recommendation RecommendationDTO `json:"recommendation"`
}

type BulkUpdateStatesRequest struct {
	IDs         []string `json:"ids"`
	NewState    string   `json:"new_state"`
	EventID     *string  `json:"event_id"`
	Given       *string  `json:"given"`
	CloseReason *string  `json:"close_reason"`
	Note        string   `json:"note"`
}

type BulkUpdateStatesResponse struct {
	Updated int64 `json:"updated"`
}

// KanbanRequest repositions a card and optionally drops it into another
// column. At most one of place_before/place_after is honored; both absent
// means only the column changes.
type KanbanRequest struct {
	NewState    *string `json:"new_state"`
	PlaceBefore *string `json:"place_before"`
	PlaceAfter  *string `json:"place_after"`
}

type ListRecommendationsResponse struct {
	Items []RecommendationDTO `json:"items"`
}

type GetRecommendationResponse struct {
	Recommendation RecommendationDTO `json:"recommendation"`
}

type BoardResponse struct {
	Columns []BoardColumnDTO `json:"columns"`
}

type BoardColumnDTO struct {
	State string              `json:"state"`
	Cards []RecommendationDTO `json:"cards"`
}

type ExportResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type RecommendationDTO struct {
	RecommendationID  string `json:"recommendation_id"`
	RequesterID       string `json:"requester_id,omitempty"`
	RequesterName     string `json:"requester_name"`
	ContactEmail      string `json:"contact_email"`
	ContactNumber     string `json:"contact_number,omitempty"`
	MemberID          string `json:"member_id,omitempty"`
	MemberName        string `json:"member_name"`
	MemberNotFound    bool   `json:"member_not_found,omitempty"`
	BranchID          string `json:"branch_id,omitempty"`
	AwardID           string `json:"award_id"`
	Specialty         string `json:"specialty,omitempty"`
	Reason            string `json:"reason"`
	CallIntoCourt     string `json:"call_into_court,omitempty"`
	CourtAvailability string `json:"court_availability,omitempty"`
	PersonToNotify    string `json:"person_to_notify,omitempty"`
	Status            string `json:"status"`
	State             string `json:"state"`
	StateDate         string `json:"state_date"`
	StackRank         int    `json:"stack_rank"`
	EventID           string `json:"event_id,omitempty"`
	Given             string `json:"given,omitempty"`
	CloseReason       string `json:"close_reason,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`

	Member        *MemberDTO `json:"member,omitempty"`
	Branch        *BranchDTO `json:"branch,omitempty"`
	Award         *AwardDTO  `json:"award,omitempty"`
	AssignedEvent *EventDTO  `json:"assigned_event,omitempty"`
	Events        []EventDTO `json:"events,omitempty"`
	Notes         []NoteDTO  `json:"notes,omitempty"`
}

type MemberDTO struct {
	MemberID      string `json:"member_id"`
	Name          string `json:"name"`
	Title         string `json:"title,omitempty"`
	Pronouns      string `json:"pronouns,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

type BranchDTO struct {
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
}

type AwardDTO struct {
	AwardID      string `json:"award_id"`
	Abbreviation string `json:"abbreviation"`
	BranchID     string `json:"branch_id,omitempty"`
	DomainName   string `json:"domain_name,omitempty"`
	LevelName    string `json:"level_name,omitempty"`
}

type EventDTO struct {
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type NoteDTO struct {
	NoteID    string `json:"note_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
}
