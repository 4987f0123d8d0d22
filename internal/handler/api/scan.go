package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/scan"
	reqdto "cargo-backoffice/internal/handler/dto/request"
	resdto "cargo-backoffice/internal/handler/dto/response"
	"cargo-backoffice/internal/handler/httperr"
	"cargo-backoffice/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScanHandler struct {
	attacher      commands.ScanAttacher
	attachTimeout time.Duration
}

func NewScanHandler(attacher commands.ScanAttacher, attachTimeout time.Duration) *ScanHandler {
	return &ScanHandler{attacher: attacher, attachTimeout: attachTimeout}
}

// @Summary Scan shipment onto manifest
// @Description Resolve a scanner token to a shipment and attach it to the manifest. A re-scan of an attached shipment reports a duplicate, not an error.
// @Tags scans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manifest ID"
// @Param request body reqdto.ScanRequest true "Scan request"
// @Success 200 {object} resdto.ScanResultResponse
// @Failure 400 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /manifests/{id}/scans [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	manifestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.ScanRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	opts := commands.AttachOptions{
		StaffID: staffIDPtr(c),
		Source:  sourceFrom(req.Source),
		Rules:   rulesFrom(req),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.attachTimeout)
	defer cancel()

	result, err := h.attacher.AttachByScan(ctx, manifestID, req.Token, opts)
	if err != nil {
		status := statusForError(err)
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		httperr.AbortWithError(c, status, err, "Scan failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAttachResult(result))
}

func sourceFrom(s string) scan.Source {
	switch scan.Source(s) {
	case scan.SourceCamera, scan.SourceScanner, scan.SourceManual:
		return scan.Source(s)
	default:
		return scan.SourceScanner
	}
}

func rulesFrom(req reqdto.ScanRequest) manifest.Rules {
	rules := manifest.DefaultRules()
	if req.OnlyReady != nil {
		rules.OnlyReady = *req.OnlyReady
	}
	if req.MatchDestination != nil {
		rules.MatchDestination = *req.MatchDestination
	}
	if req.ExcludeCOD != nil {
		rules.ExcludeCOD = *req.ExcludeCOD
	}
	return rules
}
