package handler

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"net/http"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// CreateUser godoc
// @Summary Создание менеджера
// @Description Доступно только администратору. Пользователь создается с ролью manager
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateUserRequest true "Тело запроса"
// @Success 201 {object} requestresponse.IDResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	user, err := h.UserService.Create(r.Context(), model.UserData{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
		TenantID:  req.TenantID,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.IDResponse{ID: user.ID})
}

// ListUsers godoc
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Success 200 {array} model.User
// @Failure 401 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}

	util.WriteJSON(w, http.StatusOK, users)
}

// GetUser godoc
// @Summary Пользователь по id
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} model.User
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	user, err := h.UserService.GetByID(r.Context(), id)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Обновление пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Success 200 {object} model.User
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		util.WriteError(w, r, apperr.New(apperr.ErrValidation, "Role is invalid"))
		return
	}

	user, err := h.UserService.Update(r.Context(), id, model.UserUpdate{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      role,
		TenantID:  req.TenantID,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Description Refresh записи пользователя удаляются каскадно
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} requestresponse.IDResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	if err := h.UserService.Delete(r.Context(), id); err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.IDResponse{ID: id})
}
