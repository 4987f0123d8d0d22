package api

import (
	"context"
	"errors"
	"net/http"

	"cargo-backoffice/internal/domain/manifest"
	reqdto "cargo-backoffice/internal/handler/dto/request"
	resdto "cargo-backoffice/internal/handler/dto/response"
	"cargo-backoffice/internal/handler/httperr"
	"cargo-backoffice/internal/handler/middleware"
	"cargo-backoffice/internal/pkg/errs"
	"cargo-backoffice/internal/usecase/commands"
	"cargo-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManifestHandler struct {
	cmds     commands.ManifestCommands
	attacher commands.ScanAttacher
	q        queries.ManifestQueries
}

func NewManifestHandler(cmds commands.ManifestCommands, attacher commands.ScanAttacher, q queries.ManifestQueries) *ManifestHandler {
	return &ManifestHandler{cmds: cmds, attacher: attacher, q: q}
}

// @Summary Create manifest
// @Description Create a new linehaul manifest in an editable status
// @Tags manifests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateManifestRequest true "Create manifest request"
// @Success 201 {object} resdto.ManifestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /manifests [post]
func (h *ManifestHandler) Create(c *gin.Context) {
	var req reqdto.CreateManifestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	staffID := staffIDPtr(c)
	m, err := h.cmds.CreateManifest(c.Request.Context(), req.ToParams(staffID))
	if err != nil {
		httperr.AbortWithError(c, statusForError(err), err, "Create manifest failed", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromManifestView(queries.ViewFromSnapshot(m)))
}

// @Summary Get manifest
// @Description Get a manifest by ID
// @Tags manifests
// @Produce json
// @Param id path string true "Manifest ID"
// @Success 200 {object} resdto.ManifestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /manifests/{id} [get]
func (h *ManifestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromManifestView(view))
}

// @Summary List manifest items
// @Description List the shipments attached to a manifest
// @Tags manifests
// @Produce json
// @Param id path string true "Manifest ID"
// @Success 200 {array} resdto.ManifestItemResponse
// @Failure 400 {object} map[string]string
// @Router /manifests/{id}/items [get]
func (h *ManifestHandler) ListItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	items, err := h.q.ListItems(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list items", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resdto.FromManifestItems(items)})
}

// @Summary List scan log
// @Description List the audited scan attempts recorded against a manifest
// @Tags manifests
// @Produce json
// @Param id path string true "Manifest ID"
// @Success 200 {array} resdto.ScanLogResponse
// @Failure 400 {object} map[string]string
// @Router /manifests/{id}/scan-log [get]
func (h *ManifestHandler) ListScanLog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	entries, err := h.q.ListScanLog(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list scan log", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": resdto.FromScanLog(entries)})
}

// @Summary Update manifest status
// @Description Move a manifest along its lifecycle; illegal transitions are rejected
// @Tags manifests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manifest ID"
// @Param request body reqdto.UpdateManifestStatusRequest true "New status"
// @Success 200 {object} resdto.ManifestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /manifests/{id}/status [patch]
func (h *ManifestHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateManifestStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	m, err := h.cmds.UpdateStatus(c.Request.Context(), id, manifest.Status(req.Status), staffIDPtr(c))
	if err != nil {
		httperr.AbortWithError(c, statusForError(err), err, "Status update failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromManifestView(queries.ViewFromSnapshot(m)))
}

// @Summary Close manifest
// @Description Close a manifest for dispatch; a manifest with zero items cannot be closed
// @Tags manifests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manifest ID"
// @Success 200 {object} resdto.ManifestResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /manifests/{id}/close [post]
func (h *ManifestHandler) Close(c *gin.Context) {
	h.lifecycle(c, h.cmds.Close, "Close failed")
}

// @Summary Depart manifest
// @Description Mark a manifest departed and move every attached shipment in transit
// @Tags manifests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manifest ID"
// @Success 200 {object} resdto.ManifestResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /manifests/{id}/depart [post]
func (h *ManifestHandler) Depart(c *gin.Context) {
	h.lifecycle(c, h.cmds.Depart, "Depart failed")
}

// @Summary Arrive manifest
// @Description Mark a manifest arrived and receive every attached shipment at the destination hub
// @Tags manifests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manifest ID"
// @Success 200 {object} resdto.ManifestResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /manifests/{id}/arrive [post]
func (h *ManifestHandler) Arrive(c *gin.Context) {
	h.lifecycle(c, h.cmds.Arrive, "Arrive failed")
}

// @Summary Recalculate totals
// @Description Rebuild the manifest aggregates from the attached items
// @Tags manifests
// @Security BearerAuth
// @Param id path string true "Manifest ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /manifests/{id}/recalculate [post]
func (h *ManifestHandler) Recalculate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.RecalculateTotals(c.Request.Context(), id); err != nil {
		httperr.AbortWithError(c, statusForError(err), err, "Recalculate failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove manifest item
// @Description Detach a shipment from an editable manifest and revert its status
// @Tags manifests
// @Security BearerAuth
// @Param id path string true "Manifest ID"
// @Param shipmentId path string true "Shipment ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /manifests/{id}/items/{shipmentId} [delete]
func (h *ManifestHandler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	shipmentID, err := uuid.Parse(c.Param("shipmentId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid shipment id", nil)
		return
	}

	if err := h.attacher.Detach(c.Request.Context(), id, shipmentID, staffIDPtr(c)); err != nil {
		httperr.AbortWithError(c, statusForError(err), err, "Remove failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

type lifecycleOp func(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) (*manifest.Snapshot, error)

func (h *ManifestHandler) lifecycle(c *gin.Context, op lifecycleOp, failMsg string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	m, err := op(c.Request.Context(), id, staffIDPtr(c))
	if err != nil {
		httperr.AbortWithError(c, statusForError(err), err, failMsg, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromManifestView(queries.ViewFromSnapshot(m)))
}

func staffIDPtr(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.GetStaffID(c); ok {
		return &id
	}
	return nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrManifestNotFound),
		errors.Is(err, errs.ErrShipmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrManifestClosed),
		errors.Is(err, errs.ErrManifestEmpty):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
