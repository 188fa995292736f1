package content

import (
	"encoding/json"
	"fmt"

	"github.com/portfolio/backend/internal/domain/content"
)

// toDocument flattens a record into its stored form
func toDocument(rec content.Record) (Document, error) {
	fields, err := toFields(rec)
	if err != nil {
		return Document{}, err
	}
	delete(fields, "id")
	delete(fields, "order")
	return Document{
		ID:       rec.RecordID(),
		Order:    rec.RecordOrder(),
		Category: rec.RecordCategory(),
		Fields:   fields,
	}, nil
}

// fromDocument decodes a stored document into rec
func fromDocument(doc Document, rec any) error {
	fields := make(map[string]any, len(doc.Fields)+2)
	for k, v := range doc.Fields {
		fields[k] = v
	}
	fields["id"] = doc.ID
	fields["order"] = doc.Order

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return nil
}

// toFields converts any JSON-serialisable value into a field map
func toFields(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}
