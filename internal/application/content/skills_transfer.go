package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
)

// MaxImportSize bounds the size of an uploaded skills file
const MaxImportSize = 1 << 20

// SkillsDocument is the export/import file format
type SkillsDocument struct {
	Categories []*content.SkillCategory `json:"categories"`
}

// ExportFileName returns the download name for an export taken at now
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("portfolio-skills-%s.json", now.UTC().Format("2006-01-02"))
}

// ExportSkills serialises the tree as indented JSON
func ExportSkills(tree []*content.SkillCategory) ([]byte, error) {
	doc := SkillsDocument{Categories: content.CloneTree(tree)}
	for _, cat := range doc.Categories {
		if cat.Skills == nil {
			cat.Skills = []*content.Skill{}
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

type importFile struct {
	Categories []importCategory `json:"categories" validate:"required,dive"`
}

type importCategory struct {
	ID     string        `json:"id"`
	Title  string        `json:"title" validate:"required,max=100"`
	Order  *int          `json:"order" validate:"omitempty,min=0"`
	Skills []importSkill `json:"skills" validate:"dive"`
}

type importSkill struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required,max=49"`
	Level    string `json:"level" validate:"required,oneof=Beginner Intermediate Advanced Expert"`
	Category string `json:"category"`
	Icon     string `json:"icon" validate:"omitempty,max=64"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	Order    *int   `json:"order" validate:"omitempty,min=0"`
}

var importValidator = newImportValidator()

func newImportValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ImportResult is a validated tree ready to be reviewed and saved
type ImportResult struct {
	Categories []*content.SkillCategory `json:"categories"`
	// RegeneratedIDs maps the position of every entry whose id was missing,
	// malformed or colliding to the id it received
	RegeneratedIDs map[string]string `json:"regeneratedIds"`
}

// ImportSkills parses and validates a skills file. Every schema violation is
// collected into shared.ValidationErrors before anything is built. Missing,
// malformed or duplicate ids are regenerated. Nothing is persisted.
func ImportSkills(r io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return nil, shared.ErrInvalidInput.Wrap(err)
	}
	if len(data) > MaxImportSize {
		return nil, shared.ValidationErrors{shared.NewValidationError("file", "File exceeds the 1 MiB import limit")}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var file importFile
	if err := dec.Decode(&file); err != nil {
		return nil, shared.ValidationErrors{shared.NewValidationError("file", decodeMessage(err))}
	}

	if err := importValidator.Struct(file); err != nil {
		return nil, toValidationErrors(err)
	}

	return buildImportTree(file), nil
}

func buildImportTree(file importFile) *ImportResult {
	result := &ImportResult{
		Categories:     make([]*content.SkillCategory, 0, len(file.Categories)),
		RegeneratedIDs: make(map[string]string),
	}
	seenCategories := make(map[string]struct{})
	seenSkills := make(map[string]struct{})

	for i, ic := range file.Categories {
		catID := uniqueID(ic.ID, seenCategories, fmt.Sprintf("categories[%d]", i), result.RegeneratedIDs)
		cat := &content.SkillCategory{
			ID:     catID,
			Title:  strings.TrimSpace(ic.Title),
			Order:  orderOr(ic.Order, i),
			Skills: make([]*content.Skill, 0, len(ic.Skills)),
		}
		for j, is := range ic.Skills {
			skill := &content.Skill{
				ID:       uniqueID(is.ID, seenSkills, fmt.Sprintf("categories[%d].skills[%d]", i, j), result.RegeneratedIDs),
				Name:     strings.TrimSpace(is.Name),
				Level:    content.SkillLevel(is.Level),
				Category: catID,
				Icon:     is.Icon,
				Color:    is.Color,
				Order:    orderOr(is.Order, j),
			}
			skill.ApplyDefaults()
			cat.Skills = append(cat.Skills, skill)
		}
		content.SortByOrder(cat.Skills)
		content.Renumber(cat.Skills)
		result.Categories = append(result.Categories, cat)
	}
	content.SortByOrder(result.Categories)
	content.Renumber(result.Categories)
	return result
}

func uniqueID(id string, seen map[string]struct{}, position string, regenerated map[string]string) string {
	if _, dup := seen[id]; !content.ValidRecordID(id) || dup {
		id = content.NewRecordID()
		regenerated[position] = id
	}
	seen[id] = struct{}{}
	return id
}

func orderOr(order *int, fallback int) int {
	if order == nil {
		return fallback
	}
	return *order
}

func decodeMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Field %s must be %s", typeErr.Field, typeErr.Type)
	case errors.Is(err, io.EOF):
		return "File is empty"
	default:
		return err.Error()
	}
}

func toValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return shared.ErrInvalidInput.Wrap(err)
	}
	out := make(shared.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		out = append(out, shared.NewValidationError(field, importMessage(fe)))
	}
	return out
}

func importMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "hexcolor":
		return "Must be a hex colour such as #6366f1"
	default:
		return fmt.Sprintf("Failed on %s validation", fe.Tag())
	}
}
