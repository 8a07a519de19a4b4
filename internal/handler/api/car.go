package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "wheelshare/internal/handler/dto/request"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/opaqueid"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carCommands commands.CarCommands
	carQueries  queries.CarQueries
	codec       *opaqueid.Codec
}

func NewCarHandler(carCommands commands.CarCommands, carQueries queries.CarQueries, codec *opaqueid.Codec) *CarHandler {
	return &CarHandler{
		carCommands: carCommands,
		carQueries:  carQueries,
		codec:       codec,
	}
}

// @Summary List a car
// @Description List a new vehicle owned by the caller
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCarRequest true "Car listing"
// @Success 201 {object} resdto.CarResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cars [post]
func (h *CarHandler) CreateCar(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	var req reqdto.CreateCarRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.carCommands.CreateCar(c.Request.Context(), actor, commands.CreateCarInput{
		Brand:          req.Brand,
		Model:          req.Model,
		DailyRateCents: req.DailyRateCents,
	})
	if err != nil {
		h.respondCarError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCarView(h.codec, view))
}

// @Summary Delist a car
// @Description Withdraw a vehicle from new bookings
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cars/{id} [delete]
func (h *CarHandler) DelistCar(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	id, err := h.codec.Decode(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
		return
	}

	if err := h.carCommands.DelistCar(c.Request.Context(), actor, id); err != nil {
		h.respondCarError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CarHandler) respondCarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCarNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
	case errors.Is(err, commands.ErrForbiddenActor):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to perform this operation", nil)
	case errors.Is(err, commands.ErrTransitionRejected):
		httperr.AbortWithError(c, http.StatusConflict, err, "Car is already delisted", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// @Summary List cars
// @Description List currently listed cars; with start/end, only cars free for
// @Description the half-open period
// @Tags cars
// @Produce json
// @Param start query string false "Period start (RFC 3339)"
// @Param end query string false "Period end (RFC 3339)"
// @Success 200 {array} resdto.CarResponse
// @Failure 400 {object} map[string]string
// @Router /cars [get]
func (h *CarHandler) ListCars(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")

	var (
		views []*queries.CarView
		err   error
	)
	if startStr != "" || endStr != "" {
		start, perr := time.Parse(time.RFC3339, startStr)
		if perr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, perr, "Invalid start time", nil)
			return
		}
		end, perr := time.Parse(time.RFC3339, endStr)
		if perr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, perr, "Invalid end time", nil)
			return
		}
		views, err = h.carQueries.SearchAvailable(c.Request.Context(), start, end, 0)
	} else {
		views, err = h.carQueries.ListListed(c.Request.Context(), 0)
	}
	if err != nil {
		if errors.Is(err, queries.ErrInvalidSearchPeriod) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid search period", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.CarResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromCarView(h.codec, v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get car
// @Description Get a listed car by ID
// @Tags cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} resdto.CarResponse
// @Failure 404 {object} map[string]string
// @Router /cars/{id} [get]
func (h *CarHandler) GetCar(c *gin.Context) {
	id, err := h.codec.Decode(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
		return
	}

	view, err := h.carQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCarView(h.codec, view))
}
