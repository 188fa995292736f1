package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout accepted by "seed". Keys use the same names
// as the JSON API, e.g. imageUrl or socialLinks.
type seedFile struct {
	Hero         map[string]any   `yaml:"hero"`
	About        map[string]any   `yaml:"about"`
	Projects     []map[string]any `yaml:"projects"`
	Certificates []map[string]any `yaml:"certificates"`
	Experiences  []map[string]any `yaml:"experiences"`
	Skills       []map[string]any `yaml:"skills"`
}

// seedSummary counts what was written
type seedSummary struct {
	Profile      int
	Projects     int
	Certificates int
	Experiences  int
	Categories   int
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load portfolio content from a YAML file",
		Long: `Load portfolio content from a YAML file.

The hero and about sections are merged into the stored documents. Projects,
certificates and experiences without an id are appended; entries with an id
replace the stored record. Skill categories are saved as one tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var file seedFile
			if err := yaml.Unmarshal(raw, &file); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			return a.withStore(cmd.Context(), func(store contentapp.RecordStore) error {
				sum, err := seed(cmd.Context(), store, &file, contentapp.WithLogger(a.logger))
				if err != nil {
					return reportValidation(cmd.ErrOrStderr(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"Seeded %d profile sections, %d projects, %d certificates, %d experiences, %d skill categories\n",
					sum.Profile, sum.Projects, sum.Certificates, sum.Experiences, sum.Categories)
				return nil
			})
		},
	}
}

func seed(ctx context.Context, store contentapp.RecordStore, file *seedFile, opts ...contentapp.CollectionOption) (seedSummary, error) {
	var sum seedSummary

	profile := contentapp.NewProfileService(store, opts...)
	if file.Hero != nil {
		var patch content.HeroPatch
		if err := convert(file.Hero, &patch); err != nil {
			return sum, fmt.Errorf("hero: %w", err)
		}
		if _, err := profile.UpdateHero(ctx, patch); err != nil {
			return sum, err
		}
		sum.Profile++
	}
	if file.About != nil {
		var patch content.AboutPatch
		if err := convert(file.About, &patch); err != nil {
			return sum, fmt.Errorf("about: %w", err)
		}
		if _, err := profile.UpdateAbout(ctx, patch); err != nil {
			return sum, err
		}
		sum.Profile++
	}

	var err error
	if sum.Projects, err = seedCollection(ctx, contentapp.NewProjectService(store, opts...).CollectionService, file.Projects); err != nil {
		return sum, fmt.Errorf("projects: %w", err)
	}
	if sum.Certificates, err = seedCollection(ctx, contentapp.NewCertificateService(store, opts...).CollectionService, file.Certificates); err != nil {
		return sum, fmt.Errorf("certificates: %w", err)
	}
	if sum.Experiences, err = seedCollection(ctx, contentapp.NewExperienceService(store, opts...), file.Experiences); err != nil {
		return sum, fmt.Errorf("experiences: %w", err)
	}

	if len(file.Skills) > 0 {
		var tree []*content.SkillCategory
		if err := convert(file.Skills, &tree); err != nil {
			return sum, fmt.Errorf("skills: %w", err)
		}
		saved, err := contentapp.NewSkillsService(store, opts...).SaveTree(ctx, tree)
		if err != nil {
			return sum, err
		}
		sum.Categories = len(saved)
	}
	return sum, nil
}

func seedCollection[T content.Record](ctx context.Context, svc *contentapp.CollectionService[T], entries []map[string]any) (int, error) {
	for i, entry := range entries {
		rec := svc.New(i)
		if err := convert(entry, rec); err != nil {
			return i, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, err := svc.Save(ctx, rec); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}

// convert maps decoded YAML onto a type through its JSON field names
func convert(src, dst any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
