package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httpresp"
	usecase "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking helpers: opening hours
// and free slots. Nothing here exposes who booked what.
type PublicHandler struct {
	availability *usecase.GetAvailability
}

func NewPublicHandler(availability *usecase.GetAvailability) *PublicHandler {
	return &PublicHandler{availability: availability}
}

type BusinessHoursResponse struct {
	Open            string `json:"open"`
	Close           string `json:"close"`
	SlotGranularity int    `json:"slotGranularity"`
}

////////////////////////////////////////////////////////
// HOURS
////////////////////////////////////////////////////////

func (h *PublicHandler) BusinessHours(c *gin.Context) {
	httpresp.OK(c, BusinessHoursResponse{
		Open:            domain.FormatClock(domain.BusinessHours.Start),
		Close:           domain.FormatClock(domain.BusinessHours.End),
		SlotGranularity: domain.SlotGranularity,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	length, ok := queryDuration(c)
	if !ok {
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	slots, err := h.availability.Execute(c.Request.Context(), date, length)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  date,
		"slots": slots,
	})
}
