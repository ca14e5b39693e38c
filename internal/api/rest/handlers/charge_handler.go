package handlers

import (
	"net/http"

	"github.com/logary/checkout-service/internal/api/rest/middleware"
	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/service"
	"github.com/logary/checkout-service/pkg/logger"
	"github.com/logary/checkout-service/pkg/req"
	"github.com/logary/checkout-service/pkg/res"

	"github.com/gin-gonic/gin"
)

// ChargeHandler handles checkout submissions.
type ChargeHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

// NewChargeHandler creates a new charge handler
func NewChargeHandler(svc service.CheckoutService, log *logger.Logger) *ChargeHandler {
	return &ChargeHandler{
		service: svc,
		log:     log,
	}
}

// Charge runs a checkout. Rejections are answered with 400 and a plain text
// reason, every other failure with an empty 500.
func (h *ChargeHandler) Charge(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	body, err := req.HandleBody[ChargeRequest](c.Request)
	if err != nil {
		h.log.Warnw("Invalid charge request", "error", err, "requestID", requestID)
		res.TextResponse(c.Writer, domain.ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	outcome, err := h.service.Checkout(c.Request.Context(), body.ToOrder())
	if err != nil {
		if msg, ok := domain.RejectionMessage(err); ok {
			res.TextResponse(c.Writer, msg, http.StatusBadRequest)
			return
		}
		h.log.Errorw("Charge failed", "error", err, "kind", domain.KindOf(err).String(), "requestID", requestID)
		res.EmptyResponse(c.Writer, http.StatusInternalServerError)
		return
	}

	res.JsonResponse(c.Writer, newChargeResponse(outcome), http.StatusOK)
}
