package public

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = shared.ErrBackendUnavailable.Wrap(errors.New("dial tcp: connection refused"))

type stubLister[T any] struct {
	items []T
	err   error
	calls atomic.Int32
}

func (s *stubLister[T]) FetchAll(context.Context) ([]T, error) {
	s.calls.Add(1)
	return s.items, s.err
}

type stubProfile struct {
	hero content.Hero
	err  error
}

func (s *stubProfile) Hero(context.Context) (content.Hero, error) {
	if s.err != nil {
		return content.DefaultHero(), s.err
	}
	return s.hero, nil
}

func (s *stubProfile) About(context.Context) (content.About, error) {
	if s.err != nil {
		return content.DefaultAbout(), s.err
	}
	return content.About{Name: s.hero.Name}, nil
}

// memoryCache stores JSON like the production caches do
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string][]byte{}} }

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

type fixture struct {
	profile  *stubProfile
	projects *stubLister[*content.Project]
	certs    *stubLister[*content.Certificate]
	exps     *stubLister[*content.Experience]
	skills   *stubLister[*content.SkillCategory]
}

func newFixture() *fixture {
	return &fixture{
		profile: &stubProfile{hero: content.Hero{Name: "Ada"}},
		projects: &stubLister[*content.Project]{items: []*content.Project{
			{ID: "p1", Title: "Site", Category: "web", Featured: true, ImageURL: "https://res.example.com/d/image/upload/v1/a.jpg"},
			{ID: "p2", Order: 1, Title: "App", Category: "mobile"},
		}},
		certs: &stubLister[*content.Certificate]{items: []*content.Certificate{
			{ID: "c1", Title: "Old", IssueDate: "2019-01"},
			{ID: "c2", Order: 1, Title: "New", IssueDate: "2024-01"},
		}},
		exps: &stubLister[*content.Experience]{items: []*content.Experience{
			{ID: "e1", Company: "Acme", StartDate: "2022-01", Tenure: content.Ongoing{}},
		}},
		skills: &stubLister[*content.SkillCategory]{items: []*content.SkillCategory{
			{ID: "fe", Title: "Frontend", Skills: []*content.Skill{{ID: "s1", Name: "React", Icon: "FaNotAnIcon"}}},
		}},
	}
}

func (f *fixture) sources() Sources {
	return Sources{Profile: f.profile, Projects: f.projects, Certificates: f.certs, Experiences: f.exps, Skills: f.skills}
}

func TestRenderer_Degrades(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.profile.err = errDown
	f.projects.err = errDown
	f.certs.err = errDown

	r := NewRenderer(f.sources())

	assert.Equal(t, content.DefaultHero(), r.Hero(ctx))
	assert.Equal(t, content.DefaultAbout(), r.About(ctx))

	projects := r.Projects(ctx)
	assert.True(t, projects.Empty)
	assert.NotNil(t, projects.Items)

	home := r.Home(ctx)
	assert.True(t, home.FeaturedProjects.Empty)
	assert.True(t, home.LatestCertificates.Empty)
	assert.False(t, home.Experiences.Empty, "sections degrade independently")
	assert.False(t, home.Skills.Empty)
}

func TestRenderer_Projects(t *testing.T) {
	ctx := context.Background()
	r := NewRenderer(newFixture().sources())

	view := r.Projects(ctx)

	require.Len(t, view.Items, 2)
	assert.Equal(t, []string{content.CategoryAll, "mobile", "web"}, view.Categories)
	assert.Equal(t, "https://res.example.com/d/image/upload/w_600,h_400,c_fill,q_80/v1/a.jpg", view.Items[0].ThumbnailURL)
	assert.Empty(t, view.Items[1].ThumbnailURL)

	web := ByCategory(view, "web")
	assert.Len(t, web.Items, 1)
	assert.Equal(t, view.Categories, web.Categories)
	assert.Len(t, ByCategory(view, content.CategoryAll).Items, 2)

	none := ByCategory(view, "desktop")
	assert.True(t, none.Empty)
}

func TestRenderer_Home(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	r := NewRenderer(newFixture().sources(), WithClock(func() time.Time { return now }))

	home := r.Home(ctx)

	assert.Equal(t, "Ada", home.Hero.Name)
	assert.Equal(t, "Ada", home.About.Name)
	assert.Equal(t, []string{"p1"}, content.IDs(home.FeaturedProjects.Items))
	require.Len(t, home.LatestCertificates.Items, 2)
	assert.Equal(t, "c2", home.LatestCertificates.Items[0].ID)
	require.Len(t, home.Experiences.Items, 1)
	assert.Equal(t, "January 2022 - Present", home.Experiences.Items[0].Period)
	assert.Equal(t, "2 years 6 months", home.Experiences.Items[0].Duration)
	assert.Equal(t, content.FallbackIcon.Key, home.Skills.Items[0].Skills[0].Icon)
}

func TestRenderer_SkillsDoesNotMutateSource(t *testing.T) {
	f := newFixture()
	NewRenderer(f.sources()).Skills(context.Background())
	assert.Equal(t, "FaNotAnIcon", f.skills.items[0].Skills[0].Icon)
}

func TestRenderer_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cache := newMemoryCache()
	r := NewRenderer(f.sources(), WithCache(cache))

	first := r.Experiences(ctx)
	second := r.Experiences(ctx)

	assert.Equal(t, int32(1), f.exps.calls.Load())
	require.Len(t, second.Items, 1)
	assert.True(t, second.Items[0].Experience.IsCurrent())
	assert.Equal(t, first.Items[0].Period, second.Items[0].Period)

	f.projects.err = errDown
	r.Projects(ctx)
	_, cached := cache.data[KeyProjects]
	assert.False(t, cached, "failed reads are not cached")
}
