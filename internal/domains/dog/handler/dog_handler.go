package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"kennel-backend/internal/domains/dog"
	"kennel-backend/internal/shared/response"
	"kennel-backend/pkg/logger"
)

// DogHandler serves both the public catalog and the admin record
// manager. Stateless; holds only the service dependency.
type DogHandler struct {
	service dog.Service
}

func NewDogHandler(service dog.Service) *DogHandler {
	return &DogHandler{service: service}
}

// ========================================
// PUBLIC CATALOG ENDPOINTS
// ========================================

// ListDogs handles GET /dogs, the gallery listing.
// Optional query params: status (exact match) and q (substring search).
func (h *DogHandler) ListDogs(c *gin.Context) {
	statusFilter := c.Query("status")
	searchTerm := c.Query("q")

	// "Todos" is the UI's no-filter chip, not a status value
	if statusFilter == "Todos" {
		statusFilter = ""
	}

	dogs, err := h.service.Search(c.Request.Context(), statusFilter, searchTerm)
	if err != nil {
		logger.Error("list dogs failed", err)
		response.InternalServerError(c, "Erro ao carregar cães")
		return
	}

	response.Success(c, http.StatusOK, "", dogs)
}

// ListBreeders handles GET /dogs/breeders, the featured-sire page.
func (h *DogHandler) ListBreeders(c *gin.Context) {
	dogs, err := h.service.Breeders(c.Request.Context())
	if err != nil {
		logger.Error("list breeders failed", err)
		response.InternalServerError(c, "Erro ao carregar padreadores")
		return
	}

	response.Success(c, http.StatusOK, "", dogs)
}

// ListFeatured handles GET /dogs/featured, the home-page selection.
func (h *DogHandler) ListFeatured(c *gin.Context) {
	dogs, err := h.service.Featured(c.Request.Context())
	if err != nil {
		logger.Error("list featured failed", err)
		response.InternalServerError(c, "Erro ao carregar destaques")
		return
	}

	response.Success(c, http.StatusOK, "", dogs)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// ListAll handles GET /admin/dogs, the dashboard listing.
func (h *DogHandler) ListAll(c *gin.Context) {
	dogs, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("admin list dogs failed", err)
		response.InternalServerError(c, "Erro ao buscar cães")
		return
	}

	response.Success(c, http.StatusOK, "", dogs)
}

// Create handles POST /admin/dogs (multipart form).
func (h *DogHandler) Create(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	req, images, err := h.parseDogForm(c)
	if err != nil {
		response.BadRequest(c, "Requisição inválida: "+err.Error())
		return
	}

	d, err := h.service.Create(c.Request.Context(), adminID, req, images)
	if err != nil {
		h.handleError(c, "Erro ao adicionar cão", err)
		return
	}

	response.Success(c, http.StatusCreated, "Cão adicionado com sucesso!", d)
}

// Update handles PUT /admin/dogs/:id (multipart form).
// The form carries the full ordered image list: retained URLs in
// existing_image_urls, new files in images.
func (h *DogHandler) Update(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	req, images, err := h.parseDogForm(c)
	if err != nil {
		response.BadRequest(c, "Requisição inválida: "+err.Error())
		return
	}

	d, err := h.service.Update(c.Request.Context(), adminID, id, req, images)
	if err != nil {
		h.handleError(c, "Erro ao atualizar cão", err)
		return
	}

	response.Success(c, http.StatusOK, "Cão atualizado com sucesso!", d)
}

// Delete handles DELETE /admin/dogs/:id. The confirmation step lives in
// the client; this is the post-confirmation call. No undo.
func (h *DogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, "Erro ao excluir cão", err)
		return
	}

	response.Success(c, http.StatusOK, "Cão excluído com sucesso!", nil)
}

// ToggleBreeder handles PATCH /admin/dogs/:id/breeder.
// Responds with the updated record and the re-fetched full list.
func (h *DogHandler) ToggleBreeder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	d, dogs, err := h.service.ToggleBreeder(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "Erro ao atualizar status", err)
		return
	}

	msg := fmt.Sprintf("%s agora está Disponível.", d.Name)
	if d.Status == dog.StatusBreeder {
		msg = fmt.Sprintf("%s agora é um Padreador.", d.Name)
	}

	response.Success(c, http.StatusOK, "Status atualizado com sucesso! "+msg, gin.H{
		"dog":  d,
		"dogs": dogs,
	})
}

// ========================================
// HELPERS
// ========================================

// parseDogForm reads the multipart form into the request DTO and the
// ordered image list. Retained URLs always precede new files, so
// pending uploads are the suffix of the final list.
func (h *DogHandler) parseDogForm(c *gin.Context) (dog.DogRequest, []dog.ImageRef, error) {
	var req dog.DogRequest
	if err := c.ShouldBind(&req); err != nil {
		return req, nil, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, err
	}

	images := []dog.ImageRef{}
	for _, url := range form.Value["existing_image_urls"] {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		images = append(images, dog.ExistingImage(url))
	}

	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return req, nil, fmt.Errorf("abrir arquivo %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return req, nil, fmt.Errorf("ler arquivo %s: %w", fh.Filename, err)
		}

		images = append(images, dog.PendingImage(&dog.ImageUpload{
			Filename:    filepath.Base(fh.Filename),
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}))
	}

	return req, images, nil
}

func currentAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("adminID")
	if !exists {
		response.Unauthorized(c, "Sessão não encontrada")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "Sessão inválida")
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors to the response envelope. action names
// the operation that failed, shown as the toast title.
func (h *DogHandler) handleError(c *gin.Context, action string, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Campos obrigatórios: preencha todos os campos marcados com *", vErrs)
	case errors.Is(err, dog.ErrInvalidSex), errors.Is(err, dog.ErrInvalidStatus):
		response.BadRequest(c, action+": "+err.Error())
	case errors.Is(err, dog.ErrDogNotFound):
		response.NotFound(c, "Cão não encontrado")
	case errors.Is(err, dog.ErrImageUpload):
		logger.Error("image upload failed", err)
		response.ErrorResponse(c, http.StatusBadGateway, "UPLOAD_FAILED", action+": "+err.Error())
	default:
		logger.Error(action, err)
		response.InternalServerError(c, action)
	}
}
