// Package admin holds the editable state behind the admin collection screens.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// State is the edit state of a list controller
type State int

const (
	StateIdle State = iota
	StateCreating
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "idle"
	}
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BannerKind distinguishes success and error banners
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is a dismissible message shown above the list
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message"`
}

// RecordService is the collection service a controller drives
type RecordService[T content.Record] interface {
	New(count int) T
	FetchAll(ctx context.Context) ([]T, error)
	Save(ctx context.Context, rec T) (T, error)
	DeleteAndRenumber(ctx context.Context, records []T, id, assetURL string) ([]T, error)
	PersistOrder(ctx context.Context, records []T) error
}

// Snapshot is a read-only copy of the controller state. Listed records are
// never modified once published, so they may be read without the lock; the
// draft is a private copy.
type Snapshot[T content.Record] struct {
	State         State             `json:"state"`
	Busy          bool              `json:"busy"`
	Records       []T               `json:"records"`
	Visible       []T               `json:"visible"`
	FilterOptions []string          `json:"filterOptions"`
	Draft         T                 `json:"draft,omitempty"`
	FieldErrors   map[string]string `json:"fieldErrors,omitempty"`
	PendingDelete string            `json:"pendingDelete,omitempty"`
	Search        string            `json:"search"`
	Category      string            `json:"category"`
	Banner        *Banner           `json:"banner,omitempty"`
}

// ListController is the edit state machine for one collection: it loads the
// list, edits one draft at a time, confirms deletes and reorders with
// rollback. Any mutating call made while a store call is in flight fails
// with shared.ErrBusy.
type ListController[T content.Record] struct {
	svc    RecordService[T]
	logger *zap.Logger

	mu            sync.Mutex
	state         State
	busy          bool
	loaded        bool
	records       []T
	draft         T
	hasDraft      bool
	fieldErrors   map[string]string
	pendingDelete string
	search        string
	category      string
	banner        *Banner
}

// NewListController creates a controller over svc
func NewListController[T content.Record](svc RecordService[T], logger *zap.Logger) *ListController[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListController[T]{
		svc:      svc,
		logger:   logger,
		category: content.CategoryAll,
	}
}

// Load fetches the list from the store. On failure the current list is kept
// and an error banner is raised.
func (c *ListController[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return shared.ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	records, err := c.svc.FetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.logger.Warn("Failed to load records", zap.Error(err))
		c.setError(err)
		return err
	}
	c.records = records
	c.loaded = true
	return nil
}

// EnsureLoaded loads the list unless it has been loaded before
func (c *ListController[T]) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil
	}
	return c.Load(ctx)
}

// BeginCreate opens an empty draft placed after the current records
func (c *ListController[T]) BeginCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkEditable(); err != nil {
		return err
	}
	c.openDraft(StateCreating, c.svc.New(len(c.records)))
	return nil
}

// BeginEdit opens a draft copy of the record with id
func (c *ListController[T]) BeginEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkEditable(); err != nil {
		return err
	}
	idx := content.IndexOf(c.records, id)
	if idx < 0 {
		return shared.ErrNotFound
	}
	draft, err := c.clone(c.records[idx])
	if err != nil {
		return err
	}
	c.openDraft(StateEditing, draft)
	return nil
}

// UpdateDraft applies fn to the open draft
func (c *ListController[T]) UpdateDraft(fn func(draft T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaving {
		return shared.ErrBusy
	}
	if !c.hasDraft {
		return shared.ErrInvalidState
	}
	fn(c.draft)
	return nil
}

// ReplaceDraft swaps the open draft for rec, keeping the draft's id and order
func (c *ListController[T]) ReplaceDraft(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaving {
		return shared.ErrBusy
	}
	if !c.hasDraft {
		return shared.ErrInvalidState
	}
	rec.SetRecordID(c.draft.RecordID())
	rec.SetRecordOrder(c.draft.RecordOrder())
	c.draft = rec
	return nil
}

// Submit validates and saves the draft. A validation failure keeps the
// draft open and records the field message; success returns to idle and
// updates the list in place or appends the new record.
func (c *ListController[T]) Submit(ctx context.Context) (T, error) {
	c.mu.Lock()
	if !c.hasDraft {
		c.mu.Unlock()
		var zero T
		return zero, shared.ErrInvalidState
	}
	if c.busy {
		c.mu.Unlock()
		var zero T
		return zero, shared.ErrBusy
	}
	return c.submitLocked(ctx)
}

// SubmitRecord opens a draft for rec (a create when its id is empty, an
// edit otherwise), replaces its contents and submits it in one step
func (c *ListController[T]) SubmitRecord(ctx context.Context, rec T) (T, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		var zero T
		return zero, shared.ErrBusy
	}
	if id := rec.RecordID(); id == "" {
		rec.SetRecordOrder(len(c.records))
		c.openDraft(StateCreating, rec)
	} else {
		idx := content.IndexOf(c.records, id)
		if idx < 0 {
			c.mu.Unlock()
			var zero T
			return zero, shared.ErrNotFound
		}
		rec.SetRecordOrder(c.records[idx].RecordOrder())
		content.CarryCreatedTime(rec, c.records[idx])
		c.openDraft(StateEditing, rec)
	}
	return c.submitLocked(ctx)
}

// submitLocked is entered with mu held and releases it. Save stamps the
// record it is given, so it gets a copy of the draft. An edited record keeps
// its current position even if it was moved while the draft was open.
func (c *ListController[T]) submitLocked(ctx context.Context) (T, error) {
	draft, err := c.clone(c.draft)
	if err != nil {
		c.mu.Unlock()
		var zero T
		return zero, err
	}
	prev := c.state
	if prev == StateEditing {
		if idx := content.IndexOf(c.records, draft.RecordID()); idx >= 0 {
			draft.SetRecordOrder(c.records[idx].RecordOrder())
		}
	}
	c.state = StateSaving
	c.busy = true
	c.fieldErrors = nil
	c.mu.Unlock()

	saved, err := c.svc.Save(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.state = prev
		c.draft = draft
		var verr *shared.ValidationError
		var verrs shared.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.fieldErrors = make(map[string]string, len(verrs))
			for _, v := range verrs {
				c.fieldErrors[v.Field] = v.Message
			}
		case errors.As(err, &verr):
			c.fieldErrors = map[string]string{verr.Field: verr.Message}
		default:
			c.logger.Warn("Failed to save record", zap.String("id", draft.RecordID()), zap.Error(err))
			c.setError(err)
		}
		var zero T
		return zero, err
	}

	if idx := content.IndexOf(c.records, saved.RecordID()); idx >= 0 {
		c.records = slices.Clone(c.records)
		c.records[idx] = saved
	} else {
		c.records = append(slices.Clone(c.records), saved)
	}
	c.closeDraft()
	c.banner = &Banner{Kind: BannerSuccess, Message: "Saved successfully"}
	return saved, nil
}

// Cancel discards the open draft
func (c *ListController[T]) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaving {
		return shared.ErrBusy
	}
	c.closeDraft()
	return nil
}

// RequestDelete marks the record with id for deletion; ConfirmDelete
// performs it
func (c *ListController[T]) RequestDelete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return shared.ErrBusy
	}
	if content.IndexOf(c.records, id) < 0 {
		return shared.ErrNotFound
	}
	c.pendingDelete = id
	return nil
}

// CancelDelete clears a pending delete
func (c *ListController[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = ""
}

// ConfirmDelete deletes the pending record, its asset and renumbers the
// survivors. On failure the list is restored; if only the renumbering
// failed the deleted record stays removed.
func (c *ListController[T]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingDelete == "" {
		c.mu.Unlock()
		return shared.ErrConfirmationRequired
	}
	if c.busy {
		c.mu.Unlock()
		return shared.ErrBusy
	}
	id := c.pendingDelete
	idx := content.IndexOf(c.records, id)
	if idx < 0 {
		c.pendingDelete = ""
		c.mu.Unlock()
		return shared.ErrNotFound
	}
	asset := content.AssetURLOf(c.records[idx])
	working, err := c.cloneAll(c.records)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	prev := c.records
	c.busy = true
	c.mu.Unlock()

	survivors, err := c.svc.DeleteAndRenumber(ctx, working, id, asset)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.pendingDelete = ""
	if err != nil {
		c.records = prev
		if errors.Is(err, shared.ErrReorderFailed) {
			c.records, _ = removeRecord(prev, id)
		}
		c.logger.Warn("Failed to delete record", zap.String("id", id), zap.Error(err))
		c.setError(err)
		return err
	}
	c.records = survivors
	c.banner = &Banner{Kind: BannerSuccess, Message: "Deleted successfully"}
	return nil
}

// Move swaps the record with its neighbour. The new order is applied
// locally first; if persisting it fails the previous order is restored and
// an error banner raised. Boundary moves are no-ops.
func (c *ListController[T]) Move(ctx context.Context, id string, dir content.Direction) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return shared.ErrBusy
	}
	if content.IndexOf(c.records, id) < 0 {
		c.mu.Unlock()
		return shared.ErrNotFound
	}
	working, err := c.cloneAll(c.records)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	moved, ok := content.MoveAdjacent(working, id, dir)
	if !ok {
		c.mu.Unlock()
		return nil
	}
	prev := c.records
	c.records = moved
	c.busy = true
	c.mu.Unlock()

	err = c.svc.PersistOrder(ctx, moved)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.records = prev
		c.logger.Warn("Failed to persist order", zap.String("id", id), zap.Error(err))
		c.setError(err)
		return err
	}
	return nil
}

// SetSearch sets the case-insensitive search term
func (c *ListController[T]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
}

// SetCategory sets the category filter; "" or "all" shows everything
func (c *ListController[T]) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if category == "" {
		category = content.CategoryAll
	}
	c.category = category
}

// Visible returns the records matching the current search and category
func (c *ListController[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return content.Filter(c.records, c.search, c.category)
}

// DismissBanner clears the banner
func (c *ListController[T]) DismissBanner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner = nil
}

// Snapshot returns the current state for inspection
func (c *ListController[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot[T]{
		State:         c.state,
		Busy:          c.busy,
		Records:       slices.Clone(c.records),
		Visible:       content.Filter(c.records, c.search, c.category),
		FilterOptions: content.FilterOptions(c.records),
		PendingDelete: c.pendingDelete,
		Search:        c.search,
		Category:      c.category,
	}
	if c.hasDraft {
		if draft, err := c.clone(c.draft); err == nil {
			s.Draft = draft
		}
	}
	if len(c.fieldErrors) > 0 {
		s.FieldErrors = make(map[string]string, len(c.fieldErrors))
		for k, v := range c.fieldErrors {
			s.FieldErrors[k] = v
		}
	}
	if c.banner != nil {
		b := *c.banner
		s.Banner = &b
	}
	if s.Records == nil {
		s.Records = []T{}
	}
	return s
}

func (c *ListController[T]) checkEditable() error {
	if c.busy || c.state == StateSaving {
		return shared.ErrBusy
	}
	return nil
}

func (c *ListController[T]) openDraft(state State, draft T) {
	c.state = state
	c.draft = draft
	c.hasDraft = true
	c.fieldErrors = nil
}

func (c *ListController[T]) closeDraft() {
	var zero T
	c.state = StateIdle
	c.draft = zero
	c.hasDraft = false
	c.fieldErrors = nil
}

func (c *ListController[T]) setError(err error) {
	msg := err.Error()
	var de *shared.DomainError
	if errors.As(err, &de) {
		msg = de.Message
	}
	c.banner = &Banner{Kind: BannerError, Message: msg}
}

// clone deep-copies rec through its JSON form so draft edits never touch
// the listed record
func (c *ListController[T]) clone(rec T) (T, error) {
	out := c.svc.New(rec.RecordOrder())
	data, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return out, err
	}
	return out, nil
}

// cloneAll copies every record before a reorder. Moves and renumbering
// rewrite order values, and the published records must stay untouched so a
// failed call can fall back to them.
func (c *ListController[T]) cloneAll(records []T) ([]T, error) {
	out := make([]T, len(records))
	for i, r := range records {
		cp, err := c.clone(r)
		if err != nil {
			return nil, err
		}
		out[i] = cp
	}
	return out, nil
}

func removeRecord[T content.Record](records []T, id string) ([]T, bool) {
	idx := content.IndexOf(records, id)
	if idx < 0 {
		return records, false
	}
	return slices.Delete(slices.Clone(records), idx, idx+1), true
}
