package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/backup"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httpresp"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/middleware"
)

type BackupHandler struct {
	backups *backup.Service
	audit   *audit.Dispatcher
}

func NewBackupHandler(backups *backup.Service, audit *audit.Dispatcher) *BackupHandler {
	return &BackupHandler{backups: backups, audit: audit}
}

// Create uploads a snapshot when a bucket is configured and streams it back
// as a download otherwise.
func (h *BackupHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.backups.Enabled() {
		body, err := h.backups.Export(ctx)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		name := fmt.Sprintf("db-%s.json", time.Now().UTC().Format("20060102T150405Z"))
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "application/json", body)
		return
	}

	res, err := h.backups.Run(ctx)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("backup_created", "backup", 0, map[string]any{
		"key":  res.Key,
		"size": res.Size,
	}))
	httpresp.Created(c, res)
}
