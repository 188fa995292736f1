// Package public builds the read-only views served to site visitors. Every
// section degrades on its own: a failed read renders defaults or an empty
// list, never an error page.
package public

import (
	"context"
	"time"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cache keys for the public sections. Admin writes invalidate by collection
// path, which also drops keys under "<path>:".
const (
	KeyHero         = content.CollectionPortfolio + ":" + content.DocumentHero
	KeyAbout        = content.CollectionPortfolio + ":" + content.DocumentAbout
	KeyProjects     = content.CollectionProjects
	KeyCertificates = content.CollectionCertificates
	KeyExperiences  = content.CollectionExperiences
	KeySkills       = content.CollectionSkillCategories
)

// Lister reads a whole collection
type Lister[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
}

// ProfileSource reads the hero and about singletons
type ProfileSource interface {
	Hero(ctx context.Context) (content.Hero, error)
	About(ctx context.Context) (content.About, error)
}

// Cache is a read-through cache of rendered sections
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Sources are the services the renderer reads from
type Sources struct {
	Profile      ProfileSource
	Projects     Lister[*content.Project]
	Certificates Lister[*content.Certificate]
	Experiences  Lister[*content.Experience]
	Skills       Lister[*content.SkillCategory]
}

// Config controls presentation details
type Config struct {
	// Thumbnail is applied to project and certificate images
	Thumbnail contentapp.ImageTransform
	// LatestCertificates is the size of the home page certificate strip
	LatestCertificates int
}

// DefaultConfig returns the default presentation settings
func DefaultConfig() Config {
	return Config{
		Thumbnail:          contentapp.ImageTransform{Width: 600, Height: 400, Crop: "fill", Quality: 80},
		LatestCertificates: content.DefaultLatestCertificates,
	}
}

// Renderer assembles the public views
type Renderer struct {
	src    Sources
	cache  Cache
	config Config
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Renderer
type Option func(*Renderer)

// WithCache enables the read-through cache
func WithCache(cache Cache) Option {
	return func(r *Renderer) { r.cache = cache }
}

// WithConfig overrides the presentation settings
func WithConfig(cfg Config) Option {
	return func(r *Renderer) { r.config = cfg }
}

// WithLogger sets the renderer logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithClock overrides the time source used for durations
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// NewRenderer creates a renderer over src
func NewRenderer(src Sources, opts ...Option) *Renderer {
	r := &Renderer{
		src:    src,
		config: DefaultConfig(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hero returns the hero section, DefaultHero when it cannot be read
func (r *Renderer) Hero(ctx context.Context) content.Hero {
	hero, err := readThrough(ctx, r, KeyHero, r.src.Profile.Hero)
	if err != nil {
		r.logger.Warn("Rendering default hero", zap.Error(err))
		return content.DefaultHero()
	}
	return hero
}

// About returns the about section, DefaultAbout when it cannot be read
func (r *Renderer) About(ctx context.Context) content.About {
	about, err := readThrough(ctx, r, KeyAbout, r.src.Profile.About)
	if err != nil {
		r.logger.Warn("Rendering default about", zap.Error(err))
		return content.DefaultAbout()
	}
	return about
}

// Projects returns every project with its thumbnail and filter options
func (r *Renderer) Projects(ctx context.Context) ListView[ProjectCard] {
	projects, err := readThrough(ctx, r, KeyProjects, r.src.Projects.FetchAll)
	if err != nil {
		r.logger.Warn("Rendering empty projects", zap.Error(err))
		return emptyView[ProjectCard]()
	}
	cards := make([]ProjectCard, len(projects))
	for i, p := range projects {
		cards[i] = ProjectCard{Project: p, ThumbnailURL: r.thumbnail(p.ImageURL)}
	}
	return newListView(cards)
}

// Certificates returns every certificate with its thumbnail and filter options
func (r *Renderer) Certificates(ctx context.Context) ListView[CertificateCard] {
	certs, err := readThrough(ctx, r, KeyCertificates, r.src.Certificates.FetchAll)
	if err != nil {
		r.logger.Warn("Rendering empty certificates", zap.Error(err))
		return emptyView[CertificateCard]()
	}
	return newListView(r.certificateCards(certs))
}

// LatestCertificates returns up to limit certificates, newest first
func (r *Renderer) LatestCertificates(ctx context.Context, limit int) ListView[CertificateCard] {
	certs, err := readThrough(ctx, r, KeyCertificates, r.src.Certificates.FetchAll)
	if err != nil {
		r.logger.Warn("Rendering empty certificates", zap.Error(err))
		return emptyView[CertificateCard]()
	}
	return newListView(r.certificateCards(content.LatestCertificates(certs, limit)))
}

// Experiences returns the work history with formatted periods
func (r *Renderer) Experiences(ctx context.Context) ListView[ExperienceEntry] {
	exps, err := readThrough(ctx, r, KeyExperiences, r.src.Experiences.FetchAll)
	if err != nil {
		r.logger.Warn("Rendering empty experiences", zap.Error(err))
		return emptyView[ExperienceEntry]()
	}
	now := r.now()
	entries := make([]ExperienceEntry, len(exps))
	for i, e := range exps {
		entries[i] = newExperienceEntry(e, now)
	}
	return ListView[ExperienceEntry]{Items: entries, Empty: len(entries) == 0}
}

// Skills returns the skill tree with unknown icons replaced by the fallback
func (r *Renderer) Skills(ctx context.Context) ListView[*content.SkillCategory] {
	tree, err := readThrough(ctx, r, KeySkills, r.src.Skills.FetchAll)
	if err != nil {
		r.logger.Warn("Rendering empty skills", zap.Error(err))
		return emptyView[*content.SkillCategory]()
	}
	tree = content.CloneTree(tree)
	for _, cat := range tree {
		for _, sk := range cat.Skills {
			if _, ok := content.LookupIcon(sk.Icon); !ok {
				sk.Icon = content.FallbackIcon.Key
			}
		}
	}
	return ListView[*content.SkillCategory]{Items: tree, Empty: len(tree) == 0}
}

// Home renders every section concurrently. Sections fail independently, so
// the group never returns an error.
func (r *Renderer) Home(ctx context.Context) Home {
	var home Home
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { home.Hero = r.Hero(gctx); return nil })
	g.Go(func() error { home.About = r.About(gctx); return nil })
	g.Go(func() error {
		all := r.Projects(gctx)
		home.FeaturedProjects = all.Filter(func(c ProjectCard) bool { return c.Featured })
		return nil
	})
	g.Go(func() error {
		home.LatestCertificates = r.LatestCertificates(gctx, r.config.LatestCertificates)
		return nil
	})
	g.Go(func() error { home.Experiences = r.Experiences(gctx); return nil })
	g.Go(func() error { home.Skills = r.Skills(gctx); return nil })
	_ = g.Wait()
	return home
}

func (r *Renderer) certificateCards(certs []*content.Certificate) []CertificateCard {
	cards := make([]CertificateCard, len(certs))
	for i, c := range certs {
		cards[i] = CertificateCard{Certificate: c, ThumbnailURL: r.thumbnail(c.ImageURL)}
	}
	return cards
}

func (r *Renderer) thumbnail(url string) string {
	if url == "" {
		return ""
	}
	return contentapp.TransformURL(url, r.config.Thumbnail)
}

// readThrough serves key from the cache, falling back to fetch and storing
// its result. Cache errors are logged and never fail the read.
func readThrough[T any](ctx context.Context, r *Renderer, key string, fetch func(context.Context) (T, error)) (T, error) {
	if r.cache != nil {
		var cached T
		hit, err := r.cache.Get(ctx, key, &cached)
		if err != nil {
			r.logger.Debug("Cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, key, v); err != nil {
			r.logger.Debug("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}
