package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httpresp"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/middleware"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/validators"
)

type CarHandler struct {
	cars         store.Repo[models.Car, models.CarID]
	clients      store.Repo[models.Client, models.ClientID]
	appointments store.Repo[models.Appointment, models.AppointmentID]
	audit        *audit.Dispatcher
	now          func() time.Time
}

func NewCarHandler(s store.Store, audit *audit.Dispatcher) *CarHandler {
	return &CarHandler{
		cars:         store.NewRepo[models.Car, models.CarID](s, store.Cars),
		clients:      store.NewRepo[models.Client, models.ClientID](s, store.Clients),
		appointments: store.NewRepo[models.Appointment, models.AppointmentID](s, store.Appointments),
		audit:        audit,
		now:          time.Now,
	}
}

// --------- Requests ---------

type CreateCarRequest struct {
	ClientID       models.ClientID `json:"clientId"`
	LicensePlate   string          `json:"licensePlate"`
	ChassisNumber  string          `json:"chassisNumber"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	Year           int             `json:"year"`
	EngineType     string          `json:"engineType"`
	EngineCapacity float64         `json:"engineCapacity"`
	HorsePower     float64         `json:"horsePower"`
}

type UpdateCarRequest struct {
	ClientID       *models.ClientID `json:"clientId,omitempty"`
	LicensePlate   *string          `json:"licensePlate,omitempty"`
	ChassisNumber  *string          `json:"chassisNumber,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Model          *string          `json:"model,omitempty"`
	Year           *int             `json:"year,omitempty"`
	EngineType     *string          `json:"engineType,omitempty"`
	EngineCapacity *float64         `json:"engineCapacity,omitempty"`
	HorsePower     *float64         `json:"horsePower,omitempty"`
}

func normalizePlate(p string) string {
	return strings.ToUpper(strings.TrimSpace(p))
}

// --------- Handlers ---------

func (h *CarHandler) List(c *gin.Context) {
	f := store.Filter{}
	if active := queryBool(c, "active"); active != nil {
		f["active"] = *active
	}
	clientID, ok := queryID(c, "clientId")
	if !ok {
		return
	}
	if middleware.IsClient(c) {
		clientID = middleware.UserID(c)
	}
	if clientID != 0 {
		f["clientId"] = clientID
	}
	if engine := strings.TrimSpace(c.Query("engineType")); engine != "" {
		f["engineType"] = engine
	}

	cars, err := h.cars.Find(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	brand := strings.ToLower(strings.TrimSpace(c.Query("brand")))
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	out := make([]models.Car, 0, len(cars))
	for _, car := range cars {
		if brand != "" && strings.ToLower(car.Brand) != brand {
			continue
		}
		if search != "" &&
			!containsFold(car.Brand, search) &&
			!containsFold(car.Model, search) &&
			!containsFold(car.LicensePlate, search) {
			continue
		}
		out = append(out, car)
	}

	httpresp.List(c, out)
}

func (h *CarHandler) Get(c *gin.Context) {
	car, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, car)
}

func (h *CarHandler) Create(c *gin.Context) {
	var req CreateCarRequest
	if !bind(c, validators.Car(h.now().Year(), true), &req) {
		return
	}
	ctx := c.Request.Context()

	if middleware.IsClient(c) && int64(req.ClientID) != middleware.UserID(c) {
		httperr.Forbidden(c, "You can only register cars for your own account")
		return
	}

	if _, err := h.clients.Get(ctx, req.ClientID); err != nil {
		httperr.FromError(c, notFound(err, "Client not found"))
		return
	}

	plate := normalizePlate(req.LicensePlate)
	if !h.plateFree(c, plate, 0) {
		return
	}

	car, err := h.cars.Create(ctx, &models.Car{
		ClientID:       req.ClientID,
		LicensePlate:   plate,
		ChassisNumber:  strings.TrimSpace(req.ChassisNumber),
		Brand:          strings.TrimSpace(req.Brand),
		Model:          strings.TrimSpace(req.Model),
		Year:           req.Year,
		EngineType:     req.EngineType,
		EngineCapacity: req.EngineCapacity,
		HorsePower:     req.HorsePower,
		PowerKW:        models.PowerKW(req.HorsePower),
		Active:         true,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("car_created", "car", int64(car.ID), map[string]any{
		"clientId":     car.ClientID,
		"licensePlate": car.LicensePlate,
	}))
	httpresp.Created(c, car)
}

func (h *CarHandler) Update(c *gin.Context) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	var req UpdateCarRequest
	if !bind(c, validators.Car(h.now().Year(), false), &req) {
		return
	}
	ctx := c.Request.Context()

	patch := store.Patch{}
	if req.ClientID != nil && *req.ClientID != current.ClientID {
		if middleware.IsClient(c) {
			httperr.Forbidden(c, "You cannot transfer a car to another client")
			return
		}
		if _, err := h.clients.Get(ctx, *req.ClientID); err != nil {
			httperr.FromError(c, notFound(err, "Client not found"))
			return
		}
		patch["clientId"] = *req.ClientID
	}
	if req.LicensePlate != nil {
		plate := normalizePlate(*req.LicensePlate)
		if !h.plateFree(c, plate, current.ID) {
			return
		}
		patch["licensePlate"] = plate
	}
	if req.ChassisNumber != nil {
		patch["chassisNumber"] = strings.TrimSpace(*req.ChassisNumber)
	}
	if req.Brand != nil {
		patch["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		patch["model"] = strings.TrimSpace(*req.Model)
	}
	patch.Set("year", req.Year)
	patch.Set("engineType", req.EngineType)
	patch.Set("engineCapacity", req.EngineCapacity)
	if req.HorsePower != nil {
		patch["horsePower"] = *req.HorsePower
		patch["powerKW"] = models.PowerKW(*req.HorsePower)
	}

	car, err := h.cars.Update(ctx, current.ID, patch)
	if err != nil {
		httperr.FromError(c, notFound(err, "Car not found"))
		return
	}
	httpresp.OK(c, car)
}

func (h *CarHandler) SetActive(c *gin.Context) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if !bind(c, validators.SetActive, &req) {
		return
	}

	car, err := h.cars.Update(c.Request.Context(), current.ID, store.Patch{"active": req.Active})
	if err != nil {
		httperr.FromError(c, notFound(err, "Car not found"))
		return
	}
	httpresp.OK(c, car)
}

func (h *CarHandler) Delete(c *gin.Context) {
	car, ok := h.load(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	used, err := h.appointments.Exists(ctx, store.Filter{"carId": car.ID})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if used {
		httperr.BadRequest(c, httperr.KindInUse, "Car has appointments and cannot be deleted")
		return
	}

	if _, err := h.cars.Delete(ctx, car.ID); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("car_deleted", "car", int64(car.ID), nil))
	httpresp.NoContent(c)
}

// load fetches :id, keeping clients on their own cars.
func (h *CarHandler) load(c *gin.Context) (*models.Car, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	car, err := h.cars.Get(c.Request.Context(), models.CarID(id))
	if err != nil {
		httperr.FromError(c, notFound(err, "Car not found"))
		return nil, false
	}
	if middleware.IsClient(c) && int64(car.ClientID) != middleware.UserID(c) {
		httperr.Forbidden(c, "You can only access your own cars")
		return nil, false
	}
	return car, true
}

// plateFree answers 409 when another car already uses plate.
func (h *CarHandler) plateFree(c *gin.Context, plate string, self models.CarID) bool {
	cars, err := h.cars.Find(c.Request.Context(), store.Filter{"licensePlate": plate})
	if err != nil {
		httperr.FromError(c, err)
		return false
	}
	for _, other := range cars {
		if other.ID != self {
			httperr.Write(c, http.StatusConflict, httperr.KindConflict, "License plate already registered")
			return false
		}
	}
	return true
}
