package zenputsync

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eplcas/cas_backend/config"
	"github.com/eplcas/cas_backend/models"
	"github.com/eplcas/cas_backend/utils"
	"github.com/gin-gonic/gin"
)

type CheckpointResponse struct {
	Formulario  string  `json:"formulario"`
	UltimaFecha *string `json:"ultimaFecha"`
}

type SyncLogResponse struct {
	ID              int     `json:"id"`
	Workflow        string  `json:"workflow"`
	Inicio          string  `json:"inicio"`
	Fin             *string `json:"fin"`
	Estado          string  `json:"estado"`
	RegistrosNuevos int     `json:"registrosNuevos"`
}

type StatusResponse struct {
	Checkpoints []CheckpointResponse `json:"checkpoints"`
	LastRuns    []SyncLogResponse    `json:"lastRuns"`
}

// StatusHandler surfaces the checkpoints and the most recent run-log rows so
// operational monitoring (and the dashboard's admin view) can see failed runs.
func StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		checkpoints, err := models.GetCheckpoints(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		logs, err := models.GetRecentSyncLogs(ctx, 10)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := StatusResponse{}
		for _, cp := range checkpoints {
			resp.Checkpoints = append(resp.Checkpoints, CheckpointResponse{
				Formulario:  cp.Formulario,
				UltimaFecha: formatTime(cp.UltimaFecha),
			})
		}
		for _, row := range logs {
			resp.LastRuns = append(resp.LastRuns, toSyncLogResponse(row))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func SyncHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}

		logs, err := models.GetRecentSyncLogs(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		items := make([]SyncLogResponse, 0, len(logs))
		for _, row := range logs {
			items = append(items, toSyncLogResponse(row))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// TriggerSyncHandler queues a run via Pub/Sub rather than running inline: the
// push worker owns execution, and the scheduler guarantees runs don't overlap.
func TriggerSyncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cid, _ := utils.GetCorrelationIdFromContext(ctx)

		payload := SyncPubSubPayload{
			RequestedBy:   "manual",
			CorrelationId: cid,
		}
		if err := PublishSyncRequest(ctx, payload); err != nil {
			config.LogError(config.GetLogger(), "zenputsync", "TriggerSyncHandler", "publish sync request", payload, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue sync"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"queued": true})
	}
}

func toSyncLogResponse(row *models.SyncLog) SyncLogResponse {
	return SyncLogResponse{
		ID:              row.ID,
		Workflow:        row.Workflow,
		Inicio:          row.Inicio.UTC().Format(time.RFC3339),
		Fin:             formatTime(row.Fin),
		Estado:          row.Estado,
		RegistrosNuevos: row.RegistrosNuevos,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
