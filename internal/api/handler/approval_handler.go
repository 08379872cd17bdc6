package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artkulinaria/staffing-backoffice/internal/api/metrics"
	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// ApprovalHandler handles the administrator decision endpoints.
type ApprovalHandler struct {
	service ports.ApprovalService
}

func NewApprovalHandler(service ports.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

// approveResponse reports the hire outcome. The plaintext secret appears
// only when it was not delivered to a linked channel; this response is
// the single place it is ever visible.
type approveResponse struct {
	Case             caseResponse `json:"case"`
	Login            string       `json:"login"`
	PlainSecret      string       `json:"plain_secret,omitempty"`
	Delivered        bool         `json:"delivered"`
	DeliveryDeferred bool         `json:"delivery_deferred"`
}

// ListPending handles GET /v1/approvals.
//
// @Summary      List cases awaiting an administrator decision
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listCasesResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/approvals [get]
func (h *ApprovalHandler) ListPending(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListPending(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	data := make([]caseResponse, 0, len(items))
	for _, hc := range items {
		data = append(data, toCaseResponse(hc))
	}
	return c.JSON(http.StatusOK, listCasesResponse{Data: data, Total: len(data)})
}

// Approve handles POST /v1/cases/:id/approve.
//
// @Summary      Approve a pending case, provisioning the employee account
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case id"
// @Success      200  {object}  approveResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/cases/{id}/approve [post]
func (h *ApprovalHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	res, err := h.service.Approve(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CaseTransitionsTotal.WithLabelValues(string(domain.StatusHired)).Inc()
	metrics.CredentialsIssuedTotal.WithLabelValues("issue").Inc()
	switch {
	case res.Delivered:
		metrics.DeliveriesTotal.WithLabelValues("sent").Inc()
	case res.DeliveryDeferred:
		metrics.DeliveriesTotal.WithLabelValues("deferred").Inc()
	default:
		metrics.DeliveriesTotal.WithLabelValues("failed").Inc()
	}

	return c.JSON(http.StatusOK, approveResponse{
		Case:             toCaseResponse(res.Case),
		Login:            res.Login,
		PlainSecret:      res.PlainSecret,
		Delivered:        res.Delivered,
		DeliveryDeferred: res.DeliveryDeferred,
	})
}

// Reject handles POST /v1/cases/:id/reject.
//
// @Summary      Reject a pending case
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case id"
// @Success      200  {object}  caseResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/cases/{id}/reject [post]
func (h *ApprovalHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	hc, err := h.service.Reject(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CaseTransitionsTotal.WithLabelValues(string(domain.StatusRejected)).Inc()
	return c.JSON(http.StatusOK, toCaseResponse(hc))
}
