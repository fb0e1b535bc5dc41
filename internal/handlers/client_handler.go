package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httpresp"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/middleware"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/validators"
)

type ClientHandler struct {
	clients      store.Repo[models.Client, models.ClientID]
	cars         store.Repo[models.Car, models.CarID]
	appointments store.Repo[models.Appointment, models.AppointmentID]
	audit        *audit.Dispatcher
}

func NewClientHandler(s store.Store, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{
		clients:      store.NewRepo[models.Client, models.ClientID](s, store.Clients),
		cars:         store.NewRepo[models.Car, models.CarID](s, store.Cars),
		appointments: store.NewRepo[models.Appointment, models.AppointmentID](s, store.Appointments),
		audit:        audit,
	}
}

type UpdateClientRequest struct {
	FirstName    *string  `json:"firstName,omitempty"`
	LastName     *string  `json:"lastName,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
	Email        *string  `json:"email,omitempty"`
}

// ======================================================
// LIST CLIENTS (STAFF)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	f := store.Filter{}
	if active := queryBool(c, "active"); active != nil {
		f["active"] = *active
	}

	clients, err := h.clients.Find(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	out := make([]models.Client, 0, len(clients))
	for _, cl := range clients {
		if search != "" &&
			!containsFold(cl.FirstName, search) &&
			!containsFold(cl.LastName, search) &&
			!containsFold(cl.Email, search) {
			continue
		}
		out = append(out, cl.Public())
	}

	httpresp.List(c, out)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.ownedID(c)
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, notFound(err, "Client not found"))
		return
	}
	httpresp.OK(c, client.Public())
}

func (h *ClientHandler) Cars(c *gin.Context) {
	id, ok := h.ownedID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.clients.Get(ctx, id); err != nil {
		httperr.FromError(c, notFound(err, "Client not found"))
		return
	}

	cars, err := h.cars.Find(ctx, store.Filter{"clientId": id})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, cars)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.ownedID(c)
	if !ok {
		return
	}
	var req UpdateClientRequest
	if !bind(c, validators.UpdateClient, &req) {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.clients.Get(ctx, id); err != nil {
		httperr.FromError(c, notFound(err, "Client not found"))
		return
	}

	patch := store.Patch{}
	if req.FirstName != nil {
		patch["firstName"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		patch["lastName"] = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumbers != nil {
		patch["phoneNumbers"] = req.PhoneNumbers
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		others, err := h.clients.Find(ctx, store.Filter{"email": email})
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		for _, o := range others {
			if o.ID != id {
				httperr.Write(c, http.StatusConflict, httperr.KindConflict, "Email already registered")
				return
			}
		}
		patch["email"] = email
	}

	client, err := h.clients.Update(ctx, id, patch)
	if err != nil {
		httperr.FromError(c, notFound(err, "Client not found"))
		return
	}
	httpresp.OK(c, client.Public())
}

func (h *ClientHandler) SetActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req setActiveRequest
	if !bind(c, validators.SetActive, &req) {
		return
	}

	client, err := h.clients.Update(c.Request.Context(), models.ClientID(id), store.Patch{"active": req.Active})
	if err != nil {
		httperr.FromError(c, notFound(err, "Client not found"))
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("client_active_changed", "client", id, map[string]any{
		"active": req.Active,
	}))
	httpresp.OK(c, client.Public())
}

func (h *ClientHandler) Delete(c *gin.Context) {
	raw, ok := paramID(c, "id")
	if !ok {
		return
	}
	id := models.ClientID(raw)
	ctx := c.Request.Context()

	if _, err := h.clients.Get(ctx, id); err != nil {
		httperr.FromError(c, notFound(err, "Client not found"))
		return
	}

	hasCars, err := h.cars.Exists(ctx, store.Filter{"clientId": id})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	hasAppointments, err := h.appointments.Exists(ctx, store.Filter{"clientId": id})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if hasCars || hasAppointments {
		httperr.BadRequest(c, httperr.KindInUse, "Client has cars or appointments and cannot be deleted")
		return
	}

	if _, err := h.clients.Delete(ctx, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("client_deleted", "client", raw, nil))
	httpresp.NoContent(c)
}

// ownedID parses :id and keeps clients on their own record.
func (h *ClientHandler) ownedID(c *gin.Context) (models.ClientID, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return 0, false
	}
	if middleware.IsClient(c) && id != middleware.UserID(c) {
		httperr.Forbidden(c, "You can only access your own account")
		return 0, false
	}
	return models.ClientID(id), true
}
