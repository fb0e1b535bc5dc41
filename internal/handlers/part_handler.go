package handlers

import (
	"sort"
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

const (
	StockAdd      = "add"
	StockSubtract = "subtract"
	StockSet      = "set"
)

type PartHandler struct {
	parts   store.Repo[models.Part, models.PartID]
	records store.Repo[models.ServiceRecord, models.ServiceRecordID]
	audit   *audit.Dispatcher
}

func NewPartHandler(s store.Store, audit *audit.Dispatcher) *PartHandler {
	return &PartHandler{
		parts:   store.NewRepo[models.Part, models.PartID](s, store.Parts),
		records: store.NewRepo[models.ServiceRecord, models.ServiceRecordID](s, store.ServiceRecords),
		audit:   audit,
	}
}

// --------- Requests ---------

type CreatePartRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Stock     float64 `json:"stock"`
	UnitPrice float64 `json:"unitPrice"`
	UnitType  string  `json:"unitType"`
}

type UpdatePartRequest struct {
	Name      *string  `json:"name,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Stock     *float64 `json:"stock,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	UnitType  *string  `json:"unitType,omitempty"`
}

type UpdateStockRequest struct {
	Stock     float64 `json:"stock"`
	Operation string  `json:"operation"`
}

// ApplyStock returns the stock level after op. Subtracting more than is
// available fails with insufficient_stock.
func ApplyStock(current, amount float64, op string) (float64, error) {
	switch op {
	case StockAdd:
		return current + amount, nil
	case StockSubtract:
		if amount > current {
			return current, httperr.New(httperr.KindInsufficientStock, "Insufficient stock")
		}
		return current - amount, nil
	case StockSet, "":
		return amount, nil
	}
	return current, httperr.Validation([]string{"operation must be one of: " + strings.Join(validators.StockOperations, ", ")})
}

// --------- Handlers ---------

func (h *PartHandler) List(c *gin.Context) {
	f := store.Filter{}
	if active := queryBool(c, "active"); active != nil {
		f["active"] = *active
	}

	parts, err := h.parts.Find(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	out := make([]models.Part, 0, len(parts))
	for _, p := range parts {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if search != "" && !containsFold(p.Name, search) && !containsFold(p.Category, search) {
			continue
		}
		out = append(out, p)
	}

	httpresp.List(c, out)
}

func (h *PartHandler) Categories(c *gin.Context) {
	parts, err := h.parts.All(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range parts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)

	httpresp.List(c, categories)
}

func (h *PartHandler) Get(c *gin.Context) {
	part, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, part)
}

func (h *PartHandler) Create(c *gin.Context) {
	var req CreatePartRequest
	if !bind(c, validators.Part(true), &req) {
		return
	}

	part, err := h.parts.Create(c.Request.Context(), &models.Part{
		Name:      strings.TrimSpace(req.Name),
		Category:  strings.TrimSpace(req.Category),
		Stock:     req.Stock,
		UnitPrice: req.UnitPrice,
		UnitType:  strings.TrimSpace(req.UnitType),
		Active:    true,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("part_created", "part", int64(part.ID), map[string]any{
		"name": part.Name,
	}))
	httpresp.Created(c, part)
}

func (h *PartHandler) Update(c *gin.Context) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	var req UpdatePartRequest
	if !bind(c, validators.Part(false), &req) {
		return
	}

	patch := store.Patch{}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		patch["category"] = strings.TrimSpace(*req.Category)
	}
	if req.UnitType != nil {
		patch["unitType"] = strings.TrimSpace(*req.UnitType)
	}
	patch.Set("stock", req.Stock)
	patch.Set("unitPrice", req.UnitPrice)

	part, err := h.parts.Update(c.Request.Context(), current.ID, patch)
	if err != nil {
		httperr.FromError(c, notFound(err, "Part not found"))
		return
	}
	httpresp.OK(c, part)
}

func (h *PartHandler) SetActive(c *gin.Context) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if !bind(c, validators.SetActive, &req) {
		return
	}

	part, err := h.parts.Update(c.Request.Context(), current.ID, store.Patch{"active": req.Active})
	if err != nil {
		httperr.FromError(c, notFound(err, "Part not found"))
		return
	}
	httpresp.OK(c, part)
}

func (h *PartHandler) UpdateStock(c *gin.Context) {
	current, ok := h.load(c)
	if !ok {
		return
	}
	var req UpdateStockRequest
	if !bind(c, validators.UpdateStock, &req) {
		return
	}

	stock, err := ApplyStock(current.Stock, req.Stock, req.Operation)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	part, err := h.parts.Update(c.Request.Context(), current.ID, store.Patch{"stock": stock})
	if err != nil {
		httperr.FromError(c, notFound(err, "Part not found"))
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("part_stock_updated", "part", int64(part.ID), map[string]any{
		"operation": req.Operation,
		"amount":    req.Stock,
		"stock":     part.Stock,
	}))
	httpresp.OK(c, part)
}

func (h *PartHandler) Delete(c *gin.Context) {
	part, ok := h.load(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	records, err := h.records.All(ctx)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	for _, sr := range records {
		if sr.Processing == nil {
			continue
		}
		for _, rp := range sr.Processing.ReplacedParts {
			if rp.Name == part.Name {
				httperr.BadRequest(c, httperr.KindInUse, "Part is referenced by a service record and cannot be deleted")
				return
			}
		}
	}

	if _, err := h.parts.Delete(ctx, part.ID); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("part_deleted", "part", int64(part.ID), nil))
	httpresp.NoContent(c)
}

func (h *PartHandler) load(c *gin.Context) (*models.Part, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	part, err := h.parts.Get(c.Request.Context(), models.PartID(id))
	if err != nil {
		httperr.FromError(c, notFound(err, "Part not found"))
		return nil, false
	}
	return part, true
}
