package content

import "sort"

// IconFamily is the icon set a key belongs to
type IconFamily string

const (
	IconFamilyFontAwesome IconFamily = "fa"
	IconFamilySimple      IconFamily = "si"
	IconFamilyAntDesign   IconFamily = "ai"
)

// Icon is the rendering handle for an icon key
type Icon struct {
	Key    string     `json:"key"`
	Family IconFamily `json:"family"`
	Label  string     `json:"label"`
}

// FallbackIcon is returned for unknown keys
var FallbackIcon = Icon{Key: DefaultSkillIcon, Family: IconFamilyFontAwesome, Label: "Code"}

var iconTable = map[string]Icon{
	"FaCode":         FallbackIcon,
	"FaReact":        {Key: "FaReact", Family: IconFamilyFontAwesome, Label: "React"},
	"FaNodeJs":       {Key: "FaNodeJs", Family: IconFamilyFontAwesome, Label: "Node.js"},
	"FaDocker":       {Key: "FaDocker", Family: IconFamilyFontAwesome, Label: "Docker"},
	"FaGitAlt":       {Key: "FaGitAlt", Family: IconFamilyFontAwesome, Label: "Git"},
	"FaPython":       {Key: "FaPython", Family: IconFamilyFontAwesome, Label: "Python"},
	"FaJava":         {Key: "FaJava", Family: IconFamilyFontAwesome, Label: "Java"},
	"FaHtml5":        {Key: "FaHtml5", Family: IconFamilyFontAwesome, Label: "HTML5"},
	"FaCss3Alt":      {Key: "FaCss3Alt", Family: IconFamilyFontAwesome, Label: "CSS3"},
	"FaJs":           {Key: "FaJs", Family: IconFamilyFontAwesome, Label: "JavaScript"},
	"FaAws":          {Key: "FaAws", Family: IconFamilyFontAwesome, Label: "AWS"},
	"FaFigma":        {Key: "FaFigma", Family: IconFamilyFontAwesome, Label: "Figma"},
	"FaDatabase":     {Key: "FaDatabase", Family: IconFamilyFontAwesome, Label: "Database"},
	"SiTypescript":   {Key: "SiTypescript", Family: IconFamilySimple, Label: "TypeScript"},
	"SiNextdotjs":    {Key: "SiNextdotjs", Family: IconFamilySimple, Label: "Next.js"},
	"SiTailwindcss":  {Key: "SiTailwindcss", Family: IconFamilySimple, Label: "Tailwind CSS"},
	"SiExpress":      {Key: "SiExpress", Family: IconFamilySimple, Label: "Express"},
	"SiMongodb":      {Key: "SiMongodb", Family: IconFamilySimple, Label: "MongoDB"},
	"SiPostgresql":   {Key: "SiPostgresql", Family: IconFamilySimple, Label: "PostgreSQL"},
	"SiGraphql":      {Key: "SiGraphql", Family: IconFamilySimple, Label: "GraphQL"},
	"SiAmazon":       {Key: "SiAmazon", Family: IconFamilySimple, Label: "Amazon"},
	"SiJest":         {Key: "SiJest", Family: IconFamilySimple, Label: "Jest"},
	"SiCypress":      {Key: "SiCypress", Family: IconFamilySimple, Label: "Cypress"},
	"SiRedux":        {Key: "SiRedux", Family: IconFamilySimple, Label: "Redux"},
	"SiSwagger":      {Key: "SiSwagger", Family: IconFamilySimple, Label: "Swagger"},
	"SiGo":           {Key: "SiGo", Family: IconFamilySimple, Label: "Go"},
	"SiFirebase":     {Key: "SiFirebase", Family: IconFamilySimple, Label: "Firebase"},
	"SiVite":         {Key: "SiVite", Family: IconFamilySimple, Label: "Vite"},
	"AiFillApi":      {Key: "AiFillApi", Family: IconFamilyAntDesign, Label: "API"},
	"AiOutlineCloud": {Key: "AiOutlineCloud", Family: IconFamilyAntDesign, Label: "Cloud"},
	"AiFillGithub":   {Key: "AiFillGithub", Family: IconFamilyAntDesign, Label: "GitHub"},
}

// LookupIcon resolves a key to its icon. ok is false for unknown keys, in
// which case FallbackIcon is returned.
func LookupIcon(key string) (icon Icon, ok bool) {
	icon, ok = iconTable[key]
	if !ok {
		return FallbackIcon, false
	}
	return icon, true
}

// IconKeys returns every known icon key, sorted
func IconKeys() []string {
	keys := make([]string, 0, len(iconTable))
	for k := range iconTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
