package content

import (
	"sort"
	"strings"

	"github.com/portfolio/backend/internal/domain/shared"
)

// DefaultLatestCertificates is the number of certificates shown in the
// "latest" strip when the caller gives no limit
const DefaultLatestCertificates = 3

// Certificate is an earned certification or course
type Certificate struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issueDate"`
	ExpiryDate    string `json:"expiryDate"`
	CredentialURL string `json:"credentialUrl"`
	CredentialID  string `json:"credentialId"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl"`
	Category      string `json:"category"`
	Order         int    `json:"order"`
}

// NewCertificate returns an empty certificate with no id, placed at order
func NewCertificate(order int) *Certificate {
	return &Certificate{Order: order}
}

func (c *Certificate) RecordID() string         { return c.ID }
func (c *Certificate) SetRecordID(id string)    { c.ID = id }
func (c *Certificate) RecordOrder() int         { return c.Order }
func (c *Certificate) SetRecordOrder(order int) { c.Order = order }
func (c *Certificate) RecordCategory() string   { return c.Category }

// AssetURL returns the uploaded image
func (c *Certificate) AssetURL() string { return c.ImageURL }

// SearchText matches title, issuer and description
func (c *Certificate) SearchText() []string {
	return []string{c.Title, c.Issuer, c.Description}
}

// Validate checks the fields required before a certificate can be saved
func (c *Certificate) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return shared.NewValidationError("title", "Title is required")
	}
	if strings.TrimSpace(c.Issuer) == "" {
		return shared.NewValidationError("issuer", "Issuer is required")
	}
	if strings.TrimSpace(c.IssueDate) == "" {
		return shared.NewValidationError("issueDate", "Issue date is required")
	}
	if _, err := ParseDate(c.IssueDate); err != nil {
		return shared.NewValidationError("issueDate", "Issue date must be YYYY-MM or YYYY-MM-DD")
	}
	if c.ExpiryDate != "" {
		if _, err := ParseDate(c.ExpiryDate); err != nil {
			return shared.NewValidationError("expiryDate", "Expiry date must be YYYY-MM or YYYY-MM-DD")
		}
	}
	return nil
}

// LatestCertificates returns up to limit certificates, newest issue date
// first. A non-positive limit uses DefaultLatestCertificates.
func LatestCertificates(certs []*Certificate, limit int) []*Certificate {
	if limit <= 0 {
		limit = DefaultLatestCertificates
	}
	sorted := make([]*Certificate, len(certs))
	copy(sorted, certs)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, _ := ParseDate(sorted[i].IssueDate)
		dj, _ := ParseDate(sorted[j].IssueDate)
		return di.After(dj)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
