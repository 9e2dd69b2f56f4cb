package entities

import (
	"strings"
	"time"
)

// Status is the coarse workflow category ("In Progress", "Closed", ...).
// State is the fine-grained position inside a status; the board renders one
// column per state. Both are data, not code: the valid values come from the
// Taxonomy loaded at startup.
type Status string

type State string

type Recommendation struct {
	RecommendationID  string
	RequesterID       string
	MemberID          string
	BranchID          string
	AwardID           string
	EventID           string
	Specialty         string
	RequesterName     string
	MemberName        string
	ContactEmail      string
	ContactNumber     string
	Reason            string
	CallIntoCourt     string
	CourtAvailability string
	PersonToNotify    string
	MemberNotFound    bool
	Status            Status
	State             State
	StateDate         time.Time
	StackRank         int
	Given             *time.Time
	CloseReason       string
	CreatedBy         string
	ModifiedBy        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time

	Member        *MemberRef
	Requester     *MemberRef
	Branch        *BranchRef
	Award         *AwardRef
	AssignedEvent *EventRef
	Events        []EventRef
	Notes         []Note
}

// ValidateSubmit mirrors the required fields of the submission form: the
// recommended member name, requester name, contact email, justification, and
// award are mandatory even for guest submissions.
func (r Recommendation) ValidateSubmit() bool {
	return strings.TrimSpace(r.MemberName) != "" &&
		strings.TrimSpace(r.RequesterName) != "" &&
		strings.TrimSpace(r.ContactEmail) != "" &&
		strings.TrimSpace(r.Reason) != "" &&
		strings.TrimSpace(r.AwardID) != ""
}

type MemberRef struct {
	MemberID      string
	Name          string
	Title         string
	Pronouns      string
	Pronunciation string
}

type BranchRef struct {
	BranchID string
	Name     string
}

type DomainRef struct {
	DomainID string
	Name     string
}

type LevelRef struct {
	LevelID string
	Name    string
}

type AwardRef struct {
	AwardID      string
	Abbreviation string
	BranchID     string
	Domain       DomainRef
	Level        LevelRef
}

type EventRef struct {
	EventID   string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

// Note is the read model of an attached audit note. Notes are append-only and
// owned by the external note store; the engine only creates and lists them.
type Note struct {
	NoteID    string
	Subject   string
	Body      string
	AuthorID  string
	CreatedAt time.Time
}

// StateLog records one workflow transition. A row is written in the same
// transaction as the transition itself.
type StateLog struct {
	LogID            string
	RecommendationID string
	FromStatus       Status
	ToStatus         Status
	FromState        State
	ToState          State
	CreatedBy        string
	CreatedAt        time.Time
}

// StateLogInitial is the from-value recorded for a brand new recommendation.
const StateLogInitial = "New"
