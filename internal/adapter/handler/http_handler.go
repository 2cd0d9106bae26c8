package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rl1809/stock-gen/internal/core/domain"
	"github.com/rl1809/stock-gen/internal/core/service"
)

// DefaultIcon is used when a created section does not specify one.
const DefaultIcon = "📦"

type HTTPHandler struct {
	stockService *service.StockService
}

func NewHTTPHandler(stockService *service.StockService) *HTTPHandler {
	return &HTTPHandler{stockService: stockService}
}

// Routes registers all endpoints on mux.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/generate", h.Allocate)
	mux.HandleFunc("/api/sections", h.ListSections)
	mux.HandleFunc("/api/admin/sections", h.CreateSection)
	mux.HandleFunc("/api/admin/sections/items", h.AddItems)
	mux.HandleFunc("/api/admin/sections/clear", h.ClearSection)
	mux.HandleFunc("/api/admin/sections/remove", h.RemoveSection)
	mux.HandleFunc("/api/admin/sections/access", h.SetAccess)
}

type AllocateHTTPRequest struct {
	Section     string   `json:"section"`
	PrincipalID string   `json:"principal_id"`
	Roles       []string `json:"roles"`
}

type AllocateHTTPResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Item              string `json:"item,omitempty"`
	RetryAfterSeconds int64  `json:"retry_after_seconds,omitempty"`
}

func (h *HTTPHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AllocateHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AllocateHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}
	if req.Section == "" || req.PrincipalID == "" {
		writeJSON(w, http.StatusBadRequest, AllocateHTTPResponse{
			Success: false,
			Message: "missing required fields",
		})
		return
	}

	principal := domain.Principal{
		ID:    req.PrincipalID,
		Roles: domain.NewRoleSet(req.Roles...),
	}
	item, err := h.stockService.Allocate(r.Context(), req.Section, principal, time.Now())
	if err != nil {
		status := http.StatusInternalServerError
		resp := AllocateHTTPResponse{Success: false, Message: userMessage(err)}

		var cooldown *service.CooldownError
		switch {
		case errors.Is(err, service.ErrUnknownSection):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrAccessDenied):
			status = http.StatusForbidden
		case errors.As(err, &cooldown):
			status = http.StatusTooManyRequests
			resp.RetryAfterSeconds = int64(cooldown.Remaining.Seconds() + 0.5)
			w.Header().Set("Retry-After", strconv.FormatInt(resp.RetryAfterSeconds, 10))
		case errors.Is(err, service.ErrOutOfStock):
			status = http.StatusGone
		}

		writeJSON(w, status, resp)
		return
	}

	writeJSON(w, http.StatusOK, AllocateHTTPResponse{
		Success: true,
		Message: "item allocated",
		Item:    item,
	})
}

type CreateSectionHTTPRequest struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Access string `json:"access"`
}

type AdminHTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Added   int    `json:"added,omitempty"`
}

func (h *HTTPHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateSectionHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, AdminHTTPResponse{Success: false, Message: "invalid request body"})
		return
	}
	tier, err := domain.ParseTier(req.Access)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, AdminHTTPResponse{Success: false, Message: err.Error()})
		return
	}
	icon := req.Icon
	if icon == "" {
		icon = DefaultIcon
	}

	if err := h.stockService.CreateSection(r.Context(), req.Name, icon, tier); err != nil {
		h.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminHTTPResponse{Success: true, Message: "section created"})
}

type AddItemsHTTPRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func (h *HTTPHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AddItemsHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, AdminHTTPResponse{Success: false, Message: "invalid request body"})
		return
	}

	added, err := h.stockService.AddItems(r.Context(), req.Name, req.Text)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminHTTPResponse{Success: true, Message: "items added", Added: added})
}

type SectionHTTPRequest struct {
	Name string `json:"name"`
}

func (h *HTTPHandler) ClearSection(w http.ResponseWriter, r *http.Request) {
	h.sectionAction(w, r, h.stockService.ClearSection, "section cleared")
}

func (h *HTTPHandler) RemoveSection(w http.ResponseWriter, r *http.Request) {
	h.sectionAction(w, r, h.stockService.RemoveSection, "section removed")
}

func (h *HTTPHandler) sectionAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, name string) error, okMessage string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SectionHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, AdminHTTPResponse{Success: false, Message: "invalid request body"})
		return
	}

	if err := action(r.Context(), req.Name); err != nil {
		h.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminHTTPResponse{Success: true, Message: okMessage})
}

type SetAccessHTTPRequest struct {
	Name   string `json:"name"`
	Access string `json:"access"`
}

func (h *HTTPHandler) SetAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SetAccessHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, AdminHTTPResponse{Success: false, Message: "invalid request body"})
		return
	}
	tier, err := domain.ParseTier(req.Access)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, AdminHTTPResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.stockService.SetAccess(r.Context(), req.Name, tier); err != nil {
		h.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminHTTPResponse{Success: true, Message: "access updated"})
}

func (h *HTTPHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaries, err := h.stockService.ListSections(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AdminHTTPResponse{Success: false, Message: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeAdminError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnknownSection):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSectionExists):
		status = http.StatusConflict
	}
	writeJSON(w, status, AdminHTTPResponse{Success: false, Message: userMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
