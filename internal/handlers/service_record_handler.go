package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/servicerecord"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httpresp"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/middleware"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	usecase "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/usecase/servicerecord"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/validators"
)

type ServiceRecordHandler struct {
	lifecycle *usecase.Lifecycle
}

func NewServiceRecordHandler(lifecycle *usecase.Lifecycle) *ServiceRecordHandler {
	return &ServiceRecordHandler{lifecycle: lifecycle}
}

// --------- Requests ---------

type ReceptionRequest struct {
	VisualIssues         *string `json:"visualIssues,omitempty"`
	ClientReportedIssues *string `json:"clientReportedIssues,omitempty"`
	ReceivedBy           *string `json:"receivedBy,omitempty"`
}

type ProcessingRequest struct {
	Operations         []string              `json:"operations,omitempty"`
	ReplacedParts      []models.ReplacedPart `json:"replacedParts,omitempty"`
	AdditionalIssues   *string               `json:"additionalIssues,omitempty"`
	Repaired           *string               `json:"repaired,omitempty"`
	ProcessingDuration *int                  `json:"processingDuration,omitempty"`
	ProcessedBy        *string               `json:"processedBy,omitempty"`
}

type CreateServiceRecordRequest struct {
	AppointmentID models.AppointmentID `json:"appointmentId"`
	Reception     ReceptionRequest     `json:"reception"`
}

type UpdateServiceRecordRequest struct {
	Reception  *ReceptionRequest  `json:"reception,omitempty"`
	Processing *ProcessingRequest `json:"processing,omitempty"`
	Completed  *bool              `json:"completed,omitempty"`
}

func (r ReceptionRequest) changes() *domain.ReceptionChanges {
	return &domain.ReceptionChanges{
		VisualIssues:         r.VisualIssues,
		ClientReportedIssues: r.ClientReportedIssues,
		ReceivedBy:           r.ReceivedBy,
	}
}

func (r ProcessingRequest) changes() *domain.ProcessingChanges {
	return &domain.ProcessingChanges{
		Operations:         r.Operations,
		ReplacedParts:      r.ReplacedParts,
		AdditionalIssues:   r.AdditionalIssues,
		Repaired:           r.Repaired,
		ProcessingDuration: r.ProcessingDuration,
		ProcessedBy:        r.ProcessedBy,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// --------- Handlers ---------

func (h *ServiceRecordHandler) List(c *gin.Context) {
	appointmentID, ok := queryID(c, "appointmentId")
	if !ok {
		return
	}

	records, err := h.lifecycle.List(c.Request.Context(), domain.Filter{
		AppointmentID: models.AppointmentID(appointmentID),
		Completed:     queryBool(c, "completed"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, records)
}

func (h *ServiceRecordHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sr, err := h.lifecycle.Get(c.Request.Context(), models.ServiceRecordID(id))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, sr)
}

func (h *ServiceRecordHandler) Create(c *gin.Context) {
	var req CreateServiceRecordRequest
	if !bind(c, validators.CreateServiceRecord, &req) {
		return
	}

	sr, err := h.lifecycle.Open(c.Request.Context(), usecase.OpenInput{
		AppointmentID:        req.AppointmentID,
		VisualIssues:         deref(req.Reception.VisualIssues),
		ClientReportedIssues: deref(req.Reception.ClientReportedIssues),
		ReceivedBy:           deref(req.Reception.ReceivedBy),
		Actor:                middleware.Actor(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, sr)
}

func (h *ServiceRecordHandler) AddProcessing(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ProcessingRequest
	if !bind(c, validators.AddProcessing, &req) {
		return
	}

	sr, err := h.lifecycle.AddProcessing(c.Request.Context(), models.ServiceRecordID(id), usecase.ProcessingInput{
		Operations:         req.Operations,
		ReplacedParts:      req.ReplacedParts,
		AdditionalIssues:   deref(req.AdditionalIssues),
		Repaired:           deref(req.Repaired),
		ProcessingDuration: deref(req.ProcessingDuration),
		ProcessedBy:        deref(req.ProcessedBy),
		Actor:              middleware.Actor(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, sr)
}

func (h *ServiceRecordHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateServiceRecordRequest
	if !bind(c, validators.UpdateServiceRecord, &req) {
		return
	}

	in := usecase.UpdateInput{
		Completed: req.Completed,
		Actor:     middleware.Actor(c),
	}
	if req.Reception != nil {
		in.Reception = req.Reception.changes()
	}
	if req.Processing != nil {
		in.Processing = req.Processing.changes()
	}

	sr, err := h.lifecycle.Update(c.Request.Context(), models.ServiceRecordID(id), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, sr)
}

func (h *ServiceRecordHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.lifecycle.Delete(c.Request.Context(), models.ServiceRecordID(id), middleware.Actor(c)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
