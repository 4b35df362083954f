package api

import (
	"net/http"

	reqdto "court-reservation/internal/handler/dto/request"
	resdto "court-reservation/internal/handler/dto/response"
	"court-reservation/internal/handler/httperr"
	"court-reservation/internal/handler/validation"
	"court-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Day availability
// @Description Classify every hourly unit of a resource's day as available, held or confirmed
// @Tags availability
// @Produce json
// @Param id path string true "Resource ID"
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource id", nil)
		return
	}
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	view, err := h.q.ComputeAvailability(c.Request.Context(), resourceID, query.Date)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Bookable durations
// @Description List the durations (hours) that can be booked from a start time
// @Tags availability
// @Produce json
// @Param id path string true "Resource ID"
// @Param start query string true "Hour-aligned start (RFC3339)"
// @Success 200 {object} resdto.DurationsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/durations [get]
func (h *AvailabilityHandler) GetDurations(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource id", nil)
		return
	}
	var query reqdto.DurationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	view, err := h.q.MaxAvailableDurations(c.Request.Context(), resourceID, query.Start)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromDurationsView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
