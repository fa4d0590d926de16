package model

import "time"

// Lead is a prospect captured by the public contact or get-started funnel.
type Lead struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address,omitempty"`
	Services           []string  `json:"services,omitempty"`
	ProjectDescription string    `json:"project_description,omitempty"`
	Timeline           string    `json:"timeline,omitempty"`
	Budget             string    `json:"budget,omitempty"`
	Message            string    `json:"message,omitempty"`
	Source             string    `json:"source"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Review is a customer review; only approved reviews are shown publicly.
type Review struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Location    string    `json:"location"`
	Service     string    `json:"service"`
	Rating      int       `json:"rating"`
	Text        string    `json:"text"`
	Recommend   bool      `json:"recommend"`
	ProjectYear string    `json:"project_year,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FieldNote is an on-site visit record kept by the operator.
type FieldNote struct {
	ID              string    `json:"id"`
	ProjectName     string    `json:"project_name"`
	ClientName      string    `json:"client_name"`
	Address         string    `json:"address"`
	ServiceType     string    `json:"service_type"`
	Notes           string    `json:"notes"`
	Measurements    string    `json:"measurements,omitempty"`
	MaterialsNeeded string    `json:"materials_needed,omitempty"`
	EstimatedCost   string    `json:"estimated_cost,omitempty"`
	NextSteps       string    `json:"next_steps,omitempty"`
	Photos          []string  `json:"photos"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Field note statuses.
const (
	FieldNoteDraft    = "draft"
	FieldNoteComplete = "complete"
)

// Lead statuses. New leads start as "new"; the operator moves them along
// by hand.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQuoted    = "quoted"
	LeadStatusClosed    = "closed"
)
