package content

import (
	"encoding/json"
	"strings"

	"github.com/portfolio/backend/internal/domain/shared"
)

// Tenure is either Ongoing or Completed
type Tenure interface {
	isTenure()
}

// Ongoing is a position the owner still holds
type Ongoing struct{}

// Completed is a position that ended on EndDate
type Completed struct {
	EndDate string
}

func (Ongoing) isTenure()   {}
func (Completed) isTenure() {}

// Experience is a work history entry
type Experience struct {
	ID               string
	Company          string
	Position         string
	Location         string
	StartDate        string
	Tenure           Tenure
	Description      string
	Responsibilities []string
	Technologies     []string
	Logo             string
	URL              string
	Category         string
	Order            int
}

// experienceJSON is the stored shape; tenure travels as current + endDate
type experienceJSON struct {
	ID               string   `json:"id"`
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Current          bool     `json:"current"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
	Logo             string   `json:"logo"`
	URL              string   `json:"url"`
	Category         string   `json:"category"`
	Order            int      `json:"order"`
}

// NewExperience returns an empty, completed experience with no id
func NewExperience(order int) *Experience {
	return &Experience{
		Tenure:           Completed{},
		Responsibilities: []string{},
		Technologies:     []string{},
		Order:            order,
	}
}

// IsCurrent reports whether the tenure is ongoing
func (e *Experience) IsCurrent() bool {
	_, ok := e.Tenure.(Ongoing)
	return ok
}

// EndDate returns the completion date, or "" for ongoing positions
func (e *Experience) EndDate() string {
	if c, ok := e.Tenure.(Completed); ok {
		return c.EndDate
	}
	return ""
}

// MarshalJSON encodes the tenure as current/endDate
func (e Experience) MarshalJSON() ([]byte, error) {
	return json.Marshal(experienceJSON{
		ID:               e.ID,
		Company:          e.Company,
		Position:         e.Position,
		Location:         e.Location,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate(),
		Current:          e.IsCurrent(),
		Description:      e.Description,
		Responsibilities: nonNil(e.Responsibilities),
		Technologies:     nonNil(e.Technologies),
		Logo:             e.Logo,
		URL:              e.URL,
		Category:         e.Category,
		Order:            e.Order,
	})
}

// UnmarshalJSON decodes current/endDate into a tenure. A stale end date
// stored next to current=true is dropped.
func (e *Experience) UnmarshalJSON(data []byte) error {
	var raw experienceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Experience{
		ID:               raw.ID,
		Company:          raw.Company,
		Position:         raw.Position,
		Location:         raw.Location,
		StartDate:        raw.StartDate,
		Description:      raw.Description,
		Responsibilities: nonNil(raw.Responsibilities),
		Technologies:     nonNil(raw.Technologies),
		Logo:             raw.Logo,
		URL:              raw.URL,
		Category:         raw.Category,
		Order:            raw.Order,
	}
	if raw.Current {
		e.Tenure = Ongoing{}
	} else {
		e.Tenure = Completed{EndDate: raw.EndDate}
	}
	return nil
}

func (e *Experience) RecordID() string         { return e.ID }
func (e *Experience) SetRecordID(id string)    { e.ID = id }
func (e *Experience) RecordOrder() int         { return e.Order }
func (e *Experience) SetRecordOrder(order int) { e.Order = order }
func (e *Experience) RecordCategory() string   { return e.Category }

// AssetURL returns the uploaded logo
func (e *Experience) AssetURL() string { return e.Logo }

// SearchText matches company, position, description and technologies
func (e *Experience) SearchText() []string {
	fields := []string{e.Company, e.Position, e.Description}
	return append(fields, e.Technologies...)
}

// Validate checks the fields required before an experience can be saved
func (e *Experience) Validate() error {
	if strings.TrimSpace(e.Company) == "" {
		return shared.NewValidationError("company", "Company is required")
	}
	if strings.TrimSpace(e.Position) == "" {
		return shared.NewValidationError("position", "Position is required")
	}
	if strings.TrimSpace(e.StartDate) == "" {
		return shared.NewValidationError("startDate", "Start date is required")
	}
	start, err := ParseDate(e.StartDate)
	if err != nil {
		return shared.NewValidationError("startDate", "Start date must be YYYY-MM or YYYY-MM-DD")
	}

	switch t := e.Tenure.(type) {
	case Ongoing:
		return nil
	case Completed:
		if strings.TrimSpace(t.EndDate) == "" {
			return shared.NewValidationError("endDate", "End date is required unless this is your current position")
		}
		end, err := ParseDate(t.EndDate)
		if err != nil {
			return shared.NewValidationError("endDate", "End date must be YYYY-MM or YYYY-MM-DD")
		}
		if end.Before(start) {
			return shared.NewValidationError("endDate", "End date cannot be before start date")
		}
		return nil
	default:
		return shared.NewValidationError("endDate", "End date is required unless this is your current position")
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
