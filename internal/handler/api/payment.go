package api

import (
	"errors"
	"net/http"

	reqdto "wheelshare/internal/handler/dto/request"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/opaqueid"
	"wheelshare/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	codec           *opaqueid.Codec
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, codec *opaqueid.Codec) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		codec:           codec,
	}
}

// @Summary Create payment order
// @Description Register a gateway order for a booking awaiting payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Order request"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/orders [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
		return
	}

	var req reqdto.CreateOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	bookingID, err := h.codec.Decode(req.BookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		return
	}

	result, err := h.paymentCommands.CreatePaymentOrder(c.Request.Context(), actor, commands.CreateOrderInput{
		BookingID:   bookingID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
	})
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromOrderResult(result))
}

// @Summary Verify payment
// @Description Reconcile the gateway callback for a booking's order
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyPaymentRequest true "Verification payload"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /payments/verify [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req reqdto.VerifyPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	bookingID, err := h.codec.Decode(req.BookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		return
	}

	view, err := h.paymentCommands.VerifyPayment(c.Request.Context(), commands.VerifyPaymentInput{
		BookingID:  bookingID,
		OrderRef:   req.OrderRef,
		PaymentRef: req.PaymentRef,
		Signature:  req.Signature,
	})
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(h.codec, view))
}

func (h *PaymentHandler) respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrForbiddenActor):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to perform this operation", nil)
	case errors.Is(err, commands.ErrOrderNotPayable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is not awaiting payment", nil)
	case errors.Is(err, commands.ErrOrderAmountMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Order amount does not match booking total", nil)
	case errors.Is(err, commands.ErrOrderMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Order reference does not match booking", nil)
	case errors.Is(err, commands.ErrSignatureMismatch):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Payment signature verification failed", nil)
	case errors.Is(err, commands.ErrTransitionRejected):
		httperr.AbortWithError(c, http.StatusConflict, err, "Transition not allowed from current state", nil)
	case errors.Is(err, commands.ErrGatewayFailure):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
