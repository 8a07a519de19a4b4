package api

import (
	"errors"
	"net/http"

	"wheelshare/internal/domain/booking"
	reqdto "wheelshare/internal/handler/dto/request"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/pkg/opaqueid"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoPrincipal = errs.New("principal not found in context")

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	codec           *opaqueid.Codec
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	codec *opaqueid.Codec,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		codec:           codec,
	}
}

// @Summary Create booking
// @Description Place a tentative hold on a vehicle for a half-open period
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	carID, err := h.codec.Decode(req.CarID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), actor, commands.CreateBookingInput{
		CarID:   carID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Note:    req.GetNote(),
	})
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(h.codec, view))
}

// @Summary Get booking
// @Description Get a booking visible to the renter, the owner or an admin
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to view this booking", nil)
		default:
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(h.codec, view))
}

// @Summary List my bookings
// @Description List bookings where the caller is the renter
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	items, err := h.bookingQueries.ListByRenter(c.Request.Context(), actor.ID, 0)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, h.toListResponse(items))
}

// @Summary List bookings on my cars
// @Description List bookings where the caller owns the vehicle
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/owned [get]
func (h *BookingHandler) ListOwnedBookings(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	items, err := h.bookingQueries.ListByOwner(c.Request.Context(), actor.ID, 0)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, h.toListResponse(items))
}

// @Summary Confirm booking
// @Description Owner accepts a paid booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	view, err := h.bookingCommands.ConfirmBooking(c.Request.Context(), actor, id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(h.codec, view))
}

// @Summary Cancel booking
// @Description Cancel as renter or owner; a captured payment is refunded
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	result, err := h.bookingCommands.CancelBooking(c.Request.Context(), actor, id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CancelBookingResponse{
		Booking:      resdto.FromBookingView(h.codec, result.Booking),
		RefundIssued: result.RefundIssued,
		RefundRef:    result.RefundRef,
	})
}

// @Summary Override payment status
// @Description Admin reconciliation escape hatch
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.OverridePaymentStatusRequest true "Target payment status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/payment-status [patch]
func (h *BookingHandler) OverridePaymentStatus(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req reqdto.OverridePaymentStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.OverridePaymentStatus(
		c.Request.Context(), actor, id, booking.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(h.codec, view))
}

func (h *BookingHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := h.codec.Decode(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) toListResponse(items []*queries.BookingListItem) []*resdto.BookingListResponse {
	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(h.codec, item)
	}
	return response
}

func (h *BookingHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCarNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Car not found", nil)
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrVehicleUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle unavailable for the requested period", nil)
	case errors.Is(err, commands.ErrForbiddenActor):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to perform this operation", nil)
	case errors.Is(err, booking.ErrCancellationWindow):
		httperr.AbortWithError(c, http.StatusConflict, err, "Cannot cancel within 24 hours of rental start", nil)
	case errors.Is(err, commands.ErrTransitionRejected):
		httperr.AbortWithError(c, http.StatusConflict, err, "Transition not allowed from current state", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
