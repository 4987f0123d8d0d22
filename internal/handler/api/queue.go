package api

import (
	"errors"
	"net/http"

	"cargo-backoffice/internal/domain/scan"
	reqdto "cargo-backoffice/internal/handler/dto/request"
	resdto "cargo-backoffice/internal/handler/dto/response"
	"cargo-backoffice/internal/handler/httperr"
	"cargo-backoffice/internal/pkg/errs"
	"cargo-backoffice/internal/usecase/scanqueue"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	queue *scanqueue.Queue
}

func NewQueueHandler(queue *scanqueue.Queue) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// @Summary Queue a scan
// @Description Record a scan for later sync; accepted even while offline
// @Tags scan-queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QueueScanRequest true "Queue scan request"
// @Success 202 {object} resdto.QueuedScanResponse
// @Failure 400 {object} map[string]string
// @Router /scan-queue [post]
func (h *QueueHandler) Add(c *gin.Context) {
	var req reqdto.QueueScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ev := h.queue.AddScan(scanqueue.Intent{
		Type:    scan.Type(req.Type),
		Code:    req.Code,
		Source:  sourceFrom(req.Source),
		HubID:   req.HubID,
		StaffID: staffIDPtr(c),
	})
	c.JSON(http.StatusAccepted, resdto.FromQueuedScan(ev))
}

// @Summary Retry queued scans
// @Description Run one sync pass over every unsynced scan
// @Tags scan-queue
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SyncReportResponse
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /scan-queue/retry [post]
func (h *QueueHandler) Retry(c *gin.Context) {
	report, err := h.queue.RetrySync(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSyncInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "Sync already in progress", nil)
		case errors.Is(err, errs.ErrOffline):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Client is offline", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Retry failed", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromSyncReport(report))
}

// @Summary Inspect queue
// @Description List pending, failed and synced scans
// @Tags scan-queue
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.QueueStateResponse
// @Router /scan-queue [get]
func (h *QueueHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.QueueStateResponse{
		Online:  h.queue.Online(),
		Pending: resdto.FromQueuedScans(h.queue.GetPendingScans()),
		Failed:  resdto.FromQueuedScans(h.queue.GetFailedScans()),
		Synced:  resdto.FromQueuedScans(h.queue.GetSyncedScans()),
	})
}

// @Summary Clear synced scans
// @Description Purge scans that already synced; unsynced scans are kept
// @Tags scan-queue
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /scan-queue/synced [delete]
func (h *QueueHandler) ClearSynced(c *gin.Context) {
	h.queue.ClearSynced()
	c.Status(http.StatusNoContent)
}

// @Summary Set connectivity
// @Description Record the client's connectivity; going online triggers a sync
// @Tags scan-queue
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.SetOnlineRequest true "Connectivity"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /scan-queue/online [put]
func (h *QueueHandler) SetOnline(c *gin.Context) {
	var req reqdto.SetOnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.queue.SetOnline(*req.Online)
	c.Status(http.StatusNoContent)
}
