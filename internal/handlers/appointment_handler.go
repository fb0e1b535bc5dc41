package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httpresp"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/middleware"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	usecase "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/usecase/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	scheduler    *usecase.Scheduler
	cancel       *usecase.CancelAppointment
	remove       *usecase.DeleteAppointment
	list         *usecase.ListAppointments
	byMonth      *usecase.ListAppointmentsByMonth
	availability *usecase.GetAvailability
}

func NewAppointmentHandler(
	scheduler *usecase.Scheduler,
	cancel *usecase.CancelAppointment,
	remove *usecase.DeleteAppointment,
	list *usecase.ListAppointments,
	byMonth *usecase.ListAppointmentsByMonth,
	availability *usecase.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		scheduler:    scheduler,
		cancel:       cancel,
		remove:       remove,
		list:         list,
		byMonth:      byMonth,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ClientID      *models.ClientID `json:"clientId,omitempty"`
	CarID         *models.CarID    `json:"carId,omitempty"`
	Date          *string          `json:"date,omitempty"`
	StartTime     *string          `json:"startTime,omitempty"`
	EndTime       *string          `json:"endTime,omitempty"`
	Description   *string          `json:"description,omitempty"`
	ContactMethod *string          `json:"contactMethod,omitempty"`
	Status        *string          `json:"status,omitempty"`
}

func (r AppointmentRequest) input(c *gin.Context) usecase.ProposeInput {
	return usecase.ProposeInput{
		ClientID:      r.ClientID,
		CarID:         r.CarID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Description:   r.Description,
		ContactMethod: r.ContactMethod,
		Status:        r.Status,
		Actor:         middleware.Actor(c),
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	clientID, ok := queryID(c, "clientId")
	if !ok {
		return
	}
	carID, ok := queryID(c, "carId")
	if !ok {
		return
	}
	if middleware.IsClient(c) {
		clientID = middleware.UserID(c)
	}

	apps, err := h.list.Execute(c.Request.Context(), domain.Filter{
		ClientID: models.ClientID(clientID),
		CarID:    models.CarID(carID),
		Date:     strings.TrimSpace(c.Query("date")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.FromError(c, httperr.Validation([]string{"year and month are required numbers"}))
		return
	}

	var clientID models.ClientID
	if middleware.IsClient(c) {
		clientID = models.ClientID(middleware.UserID(c))
	}

	apps, err := h.byMonth.Execute(c.Request.Context(), year, month, clientID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	length, ok := queryDuration(c)
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), strings.TrimSpace(c.Query("date")), length)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.list.Get(c.Request.Context(), models.AppointmentID(id))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !owns(c, ap.ClientID) {
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if !bind(c, validators.CreateAppointment, &req) {
		return
	}
	if req.ClientID != nil && !owns(c, *req.ClientID) {
		return
	}

	in := req.input(c)
	in.Status = nil

	ap, err := h.scheduler.Propose(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AppointmentRequest
	if !bind(c, validators.UpdateAppointment, &req) {
		return
	}
	ctx := c.Request.Context()

	if middleware.IsClient(c) {
		current, err := h.list.Get(ctx, models.AppointmentID(id))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		if !owns(c, current.ClientID) {
			return
		}
		if req.Status != nil {
			httperr.Forbidden(c, "Clients cannot change the appointment status")
			return
		}
	}

	existing := models.AppointmentID(id)
	in := req.input(c)
	in.ExistingID = &existing

	ap, err := h.scheduler.Propose(ctx, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL / DELETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if middleware.IsClient(c) {
		current, err := h.list.Get(ctx, models.AppointmentID(id))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		if !owns(c, current.ClientID) {
			return
		}
	}

	ap, err := h.cancel.Execute(ctx, models.AppointmentID(id), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), models.AppointmentID(id), middleware.Actor(c)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// owns answers 403 when a client touches another client's data.
func owns(c *gin.Context, clientID models.ClientID) bool {
	if middleware.IsClient(c) && int64(clientID) != middleware.UserID(c) {
		httperr.Forbidden(c, "You can only access your own appointments")
		return false
	}
	return true
}
