package content

// Collection paths in the document store
const (
	CollectionProjects        = "projects"
	CollectionCertificates    = "certificates"
	CollectionExperiences     = "experiences"
	CollectionSkillCategories = "skillCategories"
	CollectionPortfolio       = "portfolio"
	CollectionContactMessages = "contactMessages"

	DocumentHero  = "hero"
	DocumentAbout = "about"
)

// Collection binds a record type to its collection path
type Collection[T Record] struct {
	Path string
	// New returns an empty record placed at order
	New func(order int) T
}

// Projects is the projects collection
var Projects = Collection[*Project]{Path: CollectionProjects, New: NewProject}

// Certificates is the certificates collection
var Certificates = Collection[*Certificate]{Path: CollectionCertificates, New: NewCertificate}

// Experiences is the work history collection
var Experiences = Collection[*Experience]{Path: CollectionExperiences, New: NewExperience}

// SkillCategories is the top-level skill category collection
var SkillCategories = Collection[*SkillCategory]{Path: CollectionSkillCategories, New: NewSkillCategory}

// SkillsOf returns the nested skill collection of a category
func SkillsOf(categoryID string) Collection[*Skill] {
	return Collection[*Skill]{
		Path: SkillsPath(categoryID),
		New:  func(order int) *Skill { return NewSkill(categoryID, order) },
	}
}
