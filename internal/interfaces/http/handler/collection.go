package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/application/admin"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
)

// MoveRequest moves a record one place up or down
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// CollectionList is the admin listing of one collection
type CollectionList[T content.Record] struct {
	Items         []T      `json:"items"`
	FilterOptions []string `json:"filterOptions"`
}

// CollectionHandler exposes one ordered collection to the admin screens.
// Every write goes through the collection's list controller, so a request
// made while another write is in flight answers 409.
type CollectionHandler[T content.Record] struct {
	BaseHandler
	ctrl      *admin.ListController[T]
	newRecord func(order int) T
}

// NewCollectionHandler creates a handler over ctrl. newRecord returns an
// empty record that request bodies are decoded into.
func NewCollectionHandler[T content.Record](ctrl *admin.ListController[T], newRecord func(order int) T) *CollectionHandler[T] {
	return &CollectionHandler[T]{ctrl: ctrl, newRecord: newRecord}
}

// RegisterRoutes mounts the collection routes on rg
func (h *CollectionHandler[T]) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/state", h.State)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/move", h.Move)
}

// List reloads the collection and filters it by ?search= and ?category=
func (h *CollectionHandler[T]) List(c *gin.Context) {
	if err := h.ctrl.Load(c.Request.Context()); err != nil && !errors.Is(err, shared.ErrBusy) {
		h.HandleError(c, err)
		return
	}
	snap := h.ctrl.Snapshot()
	items := content.Filter(snap.Records, c.Query("search"), c.Query("category"))
	if items == nil {
		items = []T{}
	}
	h.BaseHandler.List(c, CollectionList[T]{Items: items, FilterOptions: snap.FilterOptions}, len(items))
}

// State returns the controller state: edit mode, pending delete and banner
func (h *CollectionHandler[T]) State(c *gin.Context) {
	if err := h.ctrl.EnsureLoaded(c.Request.Context()); err != nil && !errors.Is(err, shared.ErrBusy) {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.ctrl.Snapshot())
}

// Create saves a new record at the end of the list
func (h *CollectionHandler[T]) Create(c *gin.Context) {
	rec := h.newRecord(0)
	if err := c.ShouldBindJSON(rec); err != nil {
		h.BindError(c, err)
		return
	}
	rec.SetRecordID("")
	h.submit(c, rec, true)
}

// Update saves the record at :id. Its position in the list is kept.
func (h *CollectionHandler[T]) Update(c *gin.Context) {
	rec := h.newRecord(0)
	if err := c.ShouldBindJSON(rec); err != nil {
		h.BindError(c, err)
		return
	}
	rec.SetRecordID(c.Param("id"))
	h.submit(c, rec, false)
}

func (h *CollectionHandler[T]) submit(c *gin.Context, rec T, created bool) {
	ctx := c.Request.Context()
	if err := h.ctrl.EnsureLoaded(ctx); err != nil {
		h.HandleError(c, err)
		return
	}
	saved, err := h.ctrl.SubmitRecord(ctx, rec)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, saved)
		return
	}
	h.Success(c, saved)
}

// Delete removes the record at :id together with its asset. Without
// ?confirm=true the delete is only staged and 428 is returned.
func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.ctrl.EnsureLoaded(ctx); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.ctrl.RequestDelete(c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); !confirmed {
		h.HandleError(c, shared.ErrConfirmationRequired)
		return
	}
	if err := h.ctrl.ConfirmDelete(ctx); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Move swaps the record at :id with its neighbour and returns the new order
func (h *CollectionHandler[T]) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	dir, err := content.ParseDirection(req.Direction)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.ctrl.EnsureLoaded(ctx); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.ctrl.Move(ctx, c.Param("id"), dir); err != nil {
		h.HandleError(c, err)
		return
	}
	records := h.ctrl.Snapshot().Records
	h.BaseHandler.List(c, records, len(records))
}
