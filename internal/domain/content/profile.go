package content

import (
	"net/mail"
	"strings"

	"github.com/portfolio/backend/internal/domain/shared"
)

// SocialLinks are the owner's public profiles
type SocialLinks struct {
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Email     string `json:"email"`
}

// Hero is the landing section singleton
type Hero struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// About is the about-me singleton
type About struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Location       string `json:"location"`
	Availability   string `json:"availability"`
	Bio            string `json:"bio"`
	AdditionalInfo string `json:"additionalInfo"`
	PhotoURL       string `json:"photoUrl"`
	ResumeURL      string `json:"resumeUrl"`
}

// DefaultHero is rendered when the hero document cannot be read
func DefaultHero() Hero {
	return Hero{
		Name:        "Your Name",
		Title:       "Full Stack Developer",
		Description: "I build accessible, performant web applications and enjoy turning ideas into products.",
		SocialLinks: SocialLinks{
			Github:   "https://github.com",
			Linkedin: "https://linkedin.com",
		},
	}
}

// DefaultAbout is rendered when the about document cannot be read
func DefaultAbout() About {
	return About{}
}

// HeroPatch is a partial hero update; nil fields are left untouched
type HeroPatch struct {
	Name        *string           `json:"name,omitempty"`
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	SocialLinks *SocialLinksPatch `json:"socialLinks,omitempty"`
}

// SocialLinksPatch is a partial social links update
type SocialLinksPatch struct {
	Github    *string `json:"github,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// Validate rejects a blank name when one is supplied
func (p HeroPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return shared.NewValidationError("name", "Name cannot be blank")
	}
	if p.SocialLinks != nil && p.SocialLinks.Email != nil && *p.SocialLinks.Email != "" {
		if _, err := mail.ParseAddress(strings.TrimPrefix(*p.SocialLinks.Email, "mailto:")); err != nil {
			return shared.NewValidationError("socialLinks.email", "Email is not a valid address")
		}
	}
	return nil
}

// Apply merges the patch into h
func (p HeroPatch) Apply(h *Hero) {
	setIf(&h.Name, p.Name)
	setIf(&h.Title, p.Title)
	setIf(&h.Description, p.Description)
	if p.SocialLinks != nil {
		setIf(&h.SocialLinks.Github, p.SocialLinks.Github)
		setIf(&h.SocialLinks.Linkedin, p.SocialLinks.Linkedin)
		setIf(&h.SocialLinks.Twitter, p.SocialLinks.Twitter)
		setIf(&h.SocialLinks.Instagram, p.SocialLinks.Instagram)
		setIf(&h.SocialLinks.Email, p.SocialLinks.Email)
	}
}

// AboutPatch is a partial about update; nil fields are left untouched
type AboutPatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Location       *string `json:"location,omitempty"`
	Availability   *string `json:"availability,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	AdditionalInfo *string `json:"additionalInfo,omitempty"`
	PhotoURL       *string `json:"photoUrl,omitempty"`
	ResumeURL      *string `json:"resumeUrl,omitempty"`
}

// Validate checks the email when one is supplied
func (p AboutPatch) Validate() error {
	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			return shared.NewValidationError("email", "Email is not a valid address")
		}
	}
	return nil
}

// Apply merges the patch into a
func (p AboutPatch) Apply(a *About) {
	setIf(&a.Name, p.Name)
	setIf(&a.Email, p.Email)
	setIf(&a.Location, p.Location)
	setIf(&a.Availability, p.Availability)
	setIf(&a.Bio, p.Bio)
	setIf(&a.AdditionalInfo, p.AdditionalInfo)
	setIf(&a.PhotoURL, p.PhotoURL)
	setIf(&a.ResumeURL, p.ResumeURL)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
