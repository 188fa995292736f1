// Package content holds the portfolio content types and the ordering rules
// shared by every collection.
package content

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryAll is the filter sentinel that matches every record
const CategoryAll = "all"

// Record is implemented by every ordered content type
type Record interface {
	RecordID() string
	SetRecordID(id string)
	RecordOrder() int
	SetRecordOrder(order int)
	RecordCategory() string
	// SearchText returns the fields matched by admin search
	SearchText() []string
	Validate() error
}

// AssetOwner is implemented by records that reference an uploaded asset
// which should be removed together with the record
type AssetOwner interface {
	AssetURL() string
}

// Timestamped is implemented by records that keep their creation time
type Timestamped interface {
	CreatedTime() time.Time
	SetCreatedTime(t time.Time)
}

// CarryCreatedTime copies the creation time of stored onto rec. Edits arrive
// without it, and it never changes after the first save.
func CarryCreatedTime(rec, stored Record) {
	dst, ok := rec.(Timestamped)
	if !ok {
		return
	}
	if src, ok := stored.(Timestamped); ok {
		dst.SetCreatedTime(src.CreatedTime())
	}
}

// AssetURLOf returns the asset referenced by rec, if any
func AssetURLOf(rec Record) string {
	if o, ok := rec.(AssetOwner); ok {
		return o.AssetURL()
	}
	return ""
}

// NewRecordID returns a fresh record identifier
func NewRecordID() string {
	return uuid.NewString()
}

// ValidRecordID reports whether id can be used as a document key
func ValidRecordID(id string) bool {
	return strings.TrimSpace(id) != "" && !strings.Contains(id, "/")
}

// SortByOrder sorts records ascending by order, breaking ties by id
func SortByOrder[T Record](records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		oi, oj := records[i].RecordOrder(), records[j].RecordOrder()
		if oi != oj {
			return oi < oj
		}
		return records[i].RecordID() < records[j].RecordID()
	})
}

// Renumber rewrites every record's order to its index
func Renumber[T Record](records []T) {
	for i, r := range records {
		r.SetRecordOrder(i)
	}
}

// IDs returns the record identifiers in slice order
func IDs[T Record](records []T) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.RecordID()
	}
	return ids
}

// IndexOf returns the index of the record with id, or -1
func IndexOf[T Record](records []T, id string) int {
	for i, r := range records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}
