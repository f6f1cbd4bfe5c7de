package handler

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/security"
	"auth-service/internal/util"
	"net/http"
	"strings"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	cookies *CookieWriter
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService, cookies *CookieWriter) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		cookies,
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя с ролью customer и выдает пару токенов в cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.IDResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	session, err := h.AuthenticationService.Register(r.Context(), model.UserData{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.cookies.SetTokens(w, session.Tokens)
	util.WriteJSON(w, http.StatusCreated, requestresponse.IDResponse{ID: session.User.ID})
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Проверяет email и пароль, выдает пару токенов в cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.IDResponse
// @Failure 400 {object} util.ErrorResponse "Email or password does not match."
// @Failure 500 {object} util.ErrorResponse
// @Router /auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		util.WriteError(w, r, err)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		util.WriteError(w, r, apperr.New(apperr.ErrValidation, "Email and password are required"))
		return
	}

	session, err := h.AuthenticationService.Login(r.Context(), email, req.Password)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.cookies.SetTokens(w, session.Tokens)
	util.WriteJSON(w, http.StatusOK, requestresponse.IDResponse{ID: session.User.ID})
}

// Self godoc
// @Summary Текущий пользователь
// @Tags Authentication
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} util.ErrorResponse
// @Router /auth/self [get]
func (h *AuthenticationHandler) Self(w http.ResponseWriter, r *http.Request) {
	claims, ok := security.AccessClaimsFromContext(r.Context())
	if !ok {
		util.WriteError(w, r, apperr.ErrInvalidCredential)
		return
	}

	user, err := h.AuthenticationService.Self(r.Context(), claims)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, user)
}

// Refresh godoc
// @Summary Обновление токенов
// @Description Старая refresh запись удаляется, выдается новая пара токенов
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.IDResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := security.RefreshClaimsFromContext(r.Context())
	if !ok {
		util.WriteError(w, r, apperr.ErrInvalidCredential)
		return
	}

	session, err := h.AuthenticationService.Refresh(r.Context(), claims)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.cookies.SetTokens(w, session.Tokens)
	util.WriteJSON(w, http.StatusOK, requestresponse.IDResponse{ID: session.User.ID})
}

// Logout godoc
// @Summary Завершение сессии
// @Description Удаляет refresh запись и очищает обе cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} object
// @Failure 401 {object} util.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := security.RefreshClaimsFromContext(r.Context())
	if !ok {
		util.WriteError(w, r, apperr.ErrInvalidCredential)
		return
	}

	if err := h.AuthenticationService.Logout(r.Context(), claims); err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.cookies.Clear(w)
	util.WriteJSON(w, http.StatusOK, struct{}{})
}
