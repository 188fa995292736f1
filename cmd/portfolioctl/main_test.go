package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp points every command at one in-memory database
func newTestApp(t *testing.T) (*app, *persistence.GormRecordStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&persistence.RecordModel{}))

	store := persistence.NewGormRecordStore(db)
	a := newApp()
	a.openStore = func(context.Context) (contentapp.RecordStore, func() error, error) {
		return store, func() error { return nil }, nil
	}
	return a, store
}

func execute(t *testing.T, a *app, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestHashPassword(t *testing.T) {
	a := newApp()

	out, _, err := execute(t, a, "", "hash-password", "--password", "hunter22")
	require.NoError(t, err)
	assert.NoError(t, auth.BcryptVerifier{}.Verify(strings.TrimSpace(out), "hunter22"))

	out, _, err = execute(t, a, "from-stdin\n", "hash-password")
	require.NoError(t, err)
	assert.NoError(t, auth.BcryptVerifier{}.Verify(strings.TrimSpace(out), "from-stdin"))

	_, _, err = execute(t, a, "", "hash-password")
	assert.Error(t, err)
}

const skillsJSON = `{
  "categories": [
    {"id": "frontend", "title": "Frontend", "skills": [
      {"id": "react", "name": "React", "level": "Expert"},
      {"name": "CSS", "level": "Advanced"}
    ]}
  ]
}`

func TestSkillsImportExport(t *testing.T) {
	a, _ := newTestApp(t)
	file := writeFile(t, "skills.json", skillsJSON)

	out, _, err := execute(t, a, "", "skills", "import", "--dry-run", file)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing saved")
	assert.Contains(t, out, "Regenerated ids:")

	out, _, err = execute(t, a, "", "skills", "export", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"categories": []`)

	out, _, err = execute(t, a, "", "skills", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 categories")

	out, _, err = execute(t, a, "", "skills", "export", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Frontend"`)
	assert.Contains(t, out, `"name": "CSS"`)

	target := filepath.Join(t.TempDir(), "backup.json")
	out, _, err = execute(t, a, "", "skills", "export", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 categories")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "react"`)
}

func TestSkillsImport_ReportsEveryProblem(t *testing.T) {
	a, _ := newTestApp(t)
	file := writeFile(t, "bad.json", `{"categories": [{"title": "", "skills": [{"name": "Go", "level": "Guru"}]}]}`)

	_, stderr, err := execute(t, a, "", "skills", "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 validation problem(s)")
	assert.Contains(t, stderr, "categories[0].title")
	assert.Contains(t, stderr, "categories[0].skills[0].level")
}

const seedYAML = `
hero:
  name: Ada Lovelace
  title: Engineer
  socialLinks:
    github: https://github.com/ada
about:
  email: ada@example.com
  location: London
projects:
  - title: Analytical Engine
    description: A general purpose mechanical computer
    category: hardware
    featured: true
    technologies: [brass, steam]
  - title: Notes
    description: The first published algorithm
    category: writing
certificates:
  - title: Mathematics
    issuer: University of London
    issueDate: "1840-06"
experiences:
  - company: Babbage & Co
    position: Analyst
    startDate: "1842-01"
    endDate: "1843-09"
skills:
  - title: Mathematics
    skills:
      - name: Calculus
        level: Expert
`

func TestSeed(t *testing.T) {
	a, store := newTestApp(t)
	file := writeFile(t, "seed.yaml", seedYAML)

	out, _, err := execute(t, a, "", "seed", file)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Seeded 2 profile sections, 2 projects, 1 certificates, 1 experiences, 1 skill categories")

	ctx := context.Background()
	projects, err := contentapp.NewProjectService(store).FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Analytical Engine", projects[0].Title)
	assert.Equal(t, 0, projects[0].Order)
	assert.Equal(t, 1, projects[1].Order)
	assert.Equal(t, []string{"brass", "steam"}, projects[0].Technologies)

	profile := contentapp.NewProfileService(store)
	hero, err := profile.Hero(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", hero.Name)
	assert.Equal(t, "https://github.com/ada", hero.SocialLinks.Github)
	about, err := profile.About(ctx)
	require.NoError(t, err)
	assert.Equal(t, "London", about.Location)

	tree, err := contentapp.NewSkillsService(store).FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Skills, 1)
	assert.Equal(t, "Calculus", tree[0].Skills[0].Name)
}

func TestSeed_InvalidRecord(t *testing.T) {
	a, _ := newTestApp(t)
	file := writeFile(t, "seed.yaml", "projects:\n  - title: Short\n    description: tiny\n")

	_, stderr, err := execute(t, a, "", "seed", file)
	require.Error(t, err)
	assert.Contains(t, stderr, "description")
}

func TestSeed_MalformedYAML(t *testing.T) {
	a, _ := newTestApp(t)
	file := writeFile(t, "seed.yaml", "projects: [unterminated\n")

	_, _, err := execute(t, a, "", "seed", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
