package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/spf13/cobra"
)

func newSkillsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Back up and restore the skills tree",
	}
	cmd.AddCommand(newSkillsExportCmd(a), newSkillsImportCmd(a))
	return cmd
}

func newSkillsExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the skills tree as JSON",
		Long: `Write the skills tree as JSON, in the same format the admin export
downloads. Use "-o -" for standard output; without -o the file is named
after today's date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store contentapp.RecordStore) error {
				skills := contentapp.NewSkillsService(store, contentapp.WithLogger(a.logger))
				tree, err := skills.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				data, err := contentapp.ExportSkills(tree)
				if err != nil {
					return err
				}

				if output == "-" {
					_, err := cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if output == "" {
					output = contentapp.ExportFileName(time.Now())
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d categories to %s\n", len(tree), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout`)
	return cmd
}

func newSkillsImportCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Validate a skills file and save it",
		Long: `Validate a skills file and save it over the stored tree.

Every schema problem is reported before anything is written. Missing or
duplicate ids are regenerated and listed. Categories that are not in the
file are left in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := contentapp.ImportSkills(f)
			if err != nil {
				return reportValidation(cmd.ErrOrStderr(), err)
			}
			printRegenerated(cmd.OutOrStdout(), result.RegeneratedIDs)
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d categories are valid, nothing saved\n", len(result.Categories))
				return nil
			}

			return a.withStore(cmd.Context(), func(store contentapp.RecordStore) error {
				skills := contentapp.NewSkillsService(store, contentapp.WithLogger(a.logger))
				saved, err := skills.SaveTree(cmd.Context(), result.Categories)
				if err != nil {
					return reportValidation(cmd.ErrOrStderr(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories\n", len(saved))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only")
	return cmd
}

func printRegenerated(w io.Writer, ids map[string]string) {
	if len(ids) == 0 {
		return
	}
	paths := make([]string, 0, len(ids))
	for p := range ids {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fmt.Fprintln(w, "Regenerated ids:")
	for _, p := range paths {
		fmt.Fprintf(w, "  %s -> %s\n", p, ids[p])
	}
}

// reportValidation lists field problems one per line
func reportValidation(w io.Writer, err error) error {
	var list shared.ValidationErrors
	var single *shared.ValidationError
	switch {
	case errors.As(err, &list):
	case errors.As(err, &single):
		list = shared.ValidationErrors{single}
	default:
		return err
	}
	for _, v := range list {
		fmt.Fprintf(w, "  %s: %s\n", v.Field, v.Message)
	}
	return fmt.Errorf("%d validation problem(s)", len(list))
}
