package content

import (
	"strings"
	"time"

	"github.com/portfolio/backend/internal/domain/shared"
)

// ContactMessage is a message submitted from the public contact form
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Validate only checks that every field is present
func (m *ContactMessage) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", m.Name},
		{"email", m.Email},
		{"subject", m.Subject},
		{"message", m.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			return shared.NewValidationError(f.name, "This field is required")
		}
	}
	return nil
}
