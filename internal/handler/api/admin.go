package api

import (
	"net/http"

	resdto "court-reservation/internal/handler/dto/response"
	"court-reservation/internal/handler/httperr"
	"court-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	locks     commands.LockManager
	resources commands.ResourceCommands
}

func NewAdminHandler(locks commands.LockManager, resources commands.ResourceCommands) *AdminHandler {
	return &AdminHandler{locks: locks, resources: resources}
}

// @Summary Release lapsed holds
// @Description Cancel every hold whose deadline or payment cooldown has passed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReleaseExpiredResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/reservations/release-expired [post]
func (h *AdminHandler) ReleaseExpired(c *gin.Context) {
	released, err := h.locks.ReleaseExpired(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ReleaseExpiredResponse{Released: released})
}

// @Summary Disable resource
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/resources/{id}/disable [patch]
func (h *AdminHandler) DisableResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	res, err := h.resources.DisableResource(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResource(res))
}

// @Summary Enable resource
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/resources/{id}/enable [patch]
func (h *AdminHandler) EnableResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	res, err := h.resources.EnableResource(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResource(res))
}

// @Summary Delete resource
// @Description Refused while confirmed reservations start in the future
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/resources/{id} [delete]
func (h *AdminHandler) DeleteResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.resources.DeleteResource(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
