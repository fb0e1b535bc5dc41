package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs store.Repo[models.AuditLog, models.AuditLogID]
}

func NewAuditLogsHandler(s store.Store) *AuditLogsHandler {
	return &AuditLogsHandler{
		logs: store.NewRepo[models.AuditLog, models.AuditLogID](s, store.AuditLogs),
	}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Equality filters go to the store
	// --------------------------------------------------

	f := store.Filter{}
	if action := c.Query("action"); action != "" {
		f["action"] = action
	}
	if entity := c.Query("entity"); entity != "" {
		f["entity"] = entity
	}

	logs, err := h.logs.Find(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	// --------------------------------------------------
	// Date range, inclusive of the whole "to" day
	// --------------------------------------------------

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, _ = time.Parse("2006-01-02", v)
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t.Add(24 * time.Hour)
		}
	}

	filtered := logs[:0]
	for _, l := range logs {
		if !from.IsZero() && l.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !l.CreatedAt.Before(to) {
			continue
		}
		filtered = append(filtered, l)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID > filtered[j].ID
	})

	// --------------------------------------------------
	// Page
	// --------------------------------------------------

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"page":   page,
		"limit":  limit,
		"total":  total,
		"data":   filtered[start:end],
	})
}
