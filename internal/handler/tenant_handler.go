package handler

import (
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"net/http"
)

type TenantHandler struct {
	ports.TenantService
}

func NewTenantHandler(tenantService ports.TenantService) *TenantHandler {
	return &TenantHandler{tenantService}
}

// CreateTenant godoc
// @Summary Создание тенанта
// @Tags Tenants
// @Accept json
// @Produce json
// @Param body body requestresponse.TenantRequest true "Тело запроса"
// @Success 201 {object} requestresponse.IDResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /tenants [post]
func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.TenantRequest
	if err := decodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	tenant, err := h.TenantService.Create(r.Context(), req.Name, req.Address)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.IDResponse{ID: tenant.ID})
}

// ListTenants godoc
// @Summary Список тенантов
// @Tags Tenants
// @Produce json
// @Success 200 {array} model.Tenant
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.TenantService.List(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if tenants == nil {
		tenants = []*model.Tenant{}
	}

	util.WriteJSON(w, http.StatusOK, tenants)
}

// GetTenant godoc
// @Summary Тенант по id
// @Tags Tenants
// @Produce json
// @Param id path int true "ID тенанта"
// @Success 200 {object} model.Tenant
// @Failure 404 {object} util.ErrorResponse
// @Router /tenants/{id} [get]
func (h *TenantHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	tenant, err := h.TenantService.GetByID(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, tenant)
}

// UpdateTenant godoc
// @Summary Обновление тенанта
// @Tags Tenants
// @Accept json
// @Produce json
// @Param id path int true "ID тенанта"
// @Param body body requestresponse.TenantRequest true "Тело запроса"
// @Success 200 {object} model.Tenant
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /tenants/{id} [patch]
func (h *TenantHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	var req requestresponse.TenantRequest
	if err := decodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	tenant, err := h.TenantService.Update(r.Context(), id, req.Name, req.Address)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, tenant)
}

// DeleteTenant godoc
// @Summary Удаление тенанта
// @Tags Tenants
// @Produce json
// @Param id path int true "ID тенанта"
// @Success 200 {object} requestresponse.IDResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	if err := h.TenantService.Delete(r.Context(), id); err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.IDResponse{ID: id})
}
