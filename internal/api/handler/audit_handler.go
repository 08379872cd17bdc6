package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

const defaultAuditLimit = 100

// AuditHandler exposes the audit trail read path for administrators.
type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

type listAuditResponse struct {
	Data  []*domain.AuditEntry `json:"data"`
	Total int                  `json:"total"`
}

// List handles GET /v1/audit.
//
// @Summary      List the most recent audit entries
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries to return"  default(100)
// @Success      200    {object}  listAuditResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	items, err := h.audit.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.AuditEntry{}
	}
	return c.JSON(http.StatusOK, listAuditResponse{Data: items, Total: len(items)})
}
