package content

import (
	"context"

	"github.com/portfolio/backend/internal/domain/content"
)

// ProjectService manages the projects collection
type ProjectService struct {
	*CollectionService[*content.Project]
}

// NewProjectService creates a project service
func NewProjectService(store RecordStore, opts ...CollectionOption) *ProjectService {
	return &ProjectService{NewCollectionService(content.Projects, store, opts...)}
}

// Featured returns the featured projects in display order
func (s *ProjectService) Featured(ctx context.Context) ([]*content.Project, error) {
	projects, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return content.FeaturedProjects(projects), nil
}

// ByCategory returns the projects in category; CategoryAll returns every project
func (s *ProjectService) ByCategory(ctx context.Context, category string) ([]*content.Project, error) {
	projects, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return content.Filter(projects, "", category), nil
}

// Categories returns the distinct project categories, sorted
func (s *ProjectService) Categories(ctx context.Context) ([]string, error) {
	projects, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return content.Categories(projects), nil
}

// CertificateService manages the certificates collection
type CertificateService struct {
	*CollectionService[*content.Certificate]
}

// NewCertificateService creates a certificate service
func NewCertificateService(store RecordStore, opts ...CollectionOption) *CertificateService {
	return &CertificateService{NewCollectionService(content.Certificates, store, opts...)}
}

// Latest returns up to limit certificates, most recently issued first
func (s *CertificateService) Latest(ctx context.Context, limit int) ([]*content.Certificate, error) {
	certs, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return content.LatestCertificates(certs, limit), nil
}

// ExperienceService manages the work history collection
type ExperienceService = CollectionService[*content.Experience]

// NewExperienceService creates an experience service
func NewExperienceService(store RecordStore, opts ...CollectionOption) *ExperienceService {
	return NewCollectionService(content.Experiences, store, opts...)
}
