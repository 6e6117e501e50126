package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"kennel-backend/internal/domains/admin"
	"kennel-backend/internal/shared/response"
	"kennel-backend/pkg/logger"
)

// AdminHandler serves the auth gateway: sign-in/out, the current
// session lookup, and administrator invites.
type AdminHandler struct {
	service admin.Service
}

func NewAdminHandler(service admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// ========================================
// SESSION ENDPOINTS
// ========================================

// Login handles POST /auth/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Requisição inválida")
		return
	}

	resp, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidCredentials):
			// Same answer for unknown email and wrong password.
			response.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS",
				"Falha no Login. Verifique seu e-mail e senha e tente novamente.")
		default:
			var vErrs validation.Errors
			if errors.As(err, &vErrs) {
				response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
					"Campos obrigatórios: preencha todos os campos marcados com *", vErrs)
				return
			}
			logger.Error("login failed", err)
			response.InternalServerError(c, "Erro ao fazer login")
		}
		return
	}

	response.Success(c, http.StatusOK, "Login bem-sucedido!", resp)
}

// Logout handles POST /auth/logout. Revokes the presented token; the
// denylist entry lives exactly as long as the token would have.
func (h *AdminHandler) Logout(c *gin.Context) {
	tokenID := c.GetString("tokenID")
	expiresAt, _ := c.Get("tokenExpiresAt")
	expiry, ok := expiresAt.(time.Time)
	if tokenID == "" || !ok {
		response.Unauthorized(c, "Sessão inválida")
		return
	}

	if err := h.service.SignOut(c.Request.Context(), tokenID, expiry); err != nil {
		logger.Error("logout failed", err)
		response.InternalServerError(c, "Erro ao encerrar sessão")
		return
	}

	response.Success(c, http.StatusOK, "Sessão encerrada.", nil)
}

// Me handles GET /auth/me, resolving the signed-in identity.
func (h *AdminHandler) Me(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	dto, err := h.service.Me(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			// Token outlived the account.
			response.Unauthorized(c, "Sessão inválida")
			return
		}
		logger.Error("me lookup failed", err)
		response.InternalServerError(c, "Erro ao carregar sessão")
		return
	}

	response.Success(c, http.StatusOK, "", dto)
}

// ========================================
// INVITE ENDPOINTS
// ========================================

// Invite handles POST /admin/invites.
func (h *AdminHandler) Invite(c *gin.Context) {
	var req admin.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"E-mail necessário. Por favor, insira um endereço de e-mail.")
		return
	}

	if err := h.service.InviteUser(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, admin.ErrEmailAlreadyExists):
			response.Conflict(c, "Este e-mail já possui uma conta.")
		default:
			var vErrs validation.Errors
			if errors.As(err, &vErrs) {
				response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
					"E-mail necessário. Por favor, insira um endereço de e-mail.", vErrs)
				return
			}
			logger.Error("invite failed", err)
			response.InternalServerError(c, "Erro ao enviar convite")
		}
		return
	}

	response.Success(c, http.StatusOK, "Convite enviado com sucesso!", nil)
}

// AcceptInvite handles POST /auth/accept-invite. Public: the caller
// authenticates with the invite token itself.
func (h *AdminHandler) AcceptInvite(c *gin.Context) {
	var req admin.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Requisição inválida")
		return
	}

	dto, err := h.service.AcceptInvite(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidInvite):
			response.ErrorResponse(c, http.StatusUnauthorized, "INVALID_INVITE",
				"Convite inválido ou expirado. Solicite um novo convite.")
		case errors.Is(err, admin.ErrEmailAlreadyExists):
			response.Conflict(c, "Este e-mail já possui uma conta.")
		default:
			var vErrs validation.Errors
			if errors.As(err, &vErrs) {
				response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
					"Senha inválida: verifique os requisitos.", vErrs)
				return
			}
			logger.Error("accept invite failed", err)
			response.InternalServerError(c, "Erro ao criar conta")
		}
		return
	}

	response.Success(c, http.StatusCreated, "Conta criada com sucesso!", dto)
}

// currentAdminID pulls the authenticated admin id set by the auth
// middleware. Writes the error response itself on failure.
func currentAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("adminID")
	if !exists {
		response.Unauthorized(c, "Sessão inválida")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "Sessão inválida")
		return uuid.Nil, false
	}
	return id, true
}
