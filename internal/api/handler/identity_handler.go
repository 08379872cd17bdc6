package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// IdentityHandler exposes the administrator account controls and zone
// access grants that sit on top of provisioned identities.
type IdentityHandler struct {
	identities ports.IdentityService
	access     ports.AccessService
}

func NewIdentityHandler(identities ports.IdentityService, access ports.AccessService) *IdentityHandler {
	return &IdentityHandler{identities: identities, access: access}
}

type grantAccessRequest struct {
	Zone  string `json:"zone"  validate:"required"`
	Level string `json:"level" validate:"required,oneof=basic middle high"`
}

type zoneAccessResponse struct {
	EmployeeID string `json:"employee_id"`
	Zone       string `json:"zone"`
	Level      string `json:"level"`
	Active     bool   `json:"active"`
}

type listAccessResponse struct {
	Data []zoneAccessResponse `json:"data"`
}

type canAssignResponse struct {
	Allowed bool `json:"allowed"`
}

func toZoneAccessResponse(za *domain.EmployeeZoneAccess) zoneAccessResponse {
	return zoneAccessResponse{
		EmployeeID: za.EmployeeID,
		Zone:       za.Zone,
		Level:      za.Level,
		Active:     za.Active,
	}
}

// Lock handles POST /v1/identities/:id/lock.
//
// @Summary      Lock an employee account
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Identity id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/identities/{id}/lock [post]
func (h *IdentityHandler) Lock(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.identities.Lock(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unlock handles POST /v1/identities/:id/unlock.
//
// @Summary      Unlock an employee account
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Identity id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/identities/{id}/unlock [post]
func (h *IdentityHandler) Unlock(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.identities.Unlock(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GrantAccess handles POST /v1/identities/:id/access.
//
// @Summary      Grant zone access to an employee
// @Tags         identities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Identity id"
// @Param        body  body      grantAccessRequest  true  "Zone and qualification level"
// @Success      201   {object}  zoneAccessResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/identities/{id}/access [post]
func (h *IdentityHandler) GrantAccess(c echo.Context) error {
	var req grantAccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	za, err := h.access.Grant(c.Request().Context(), actor, c.Param("id"), req.Zone, req.Level)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toZoneAccessResponse(za))
}

// RevokeAccess handles DELETE /v1/identities/:id/access/:zone.
//
// @Summary      Revoke an employee's zone access
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "Identity id"
// @Param        zone  path  string  true  "Zone name"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/identities/{id}/access/{zone} [delete]
func (h *IdentityHandler) RevokeAccess(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.access.Revoke(c.Request().Context(), actor, c.Param("id"), c.Param("zone")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAccess handles GET /v1/identities/:id/access.
//
// @Summary      List an employee's active zone grants
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Identity id"
// @Success      200  {object}  listAccessResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/identities/{id}/access [get]
func (h *IdentityHandler) ListAccess(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	items, err := h.access.ListFor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	data := make([]zoneAccessResponse, 0, len(items))
	for _, za := range items {
		data = append(data, toZoneAccessResponse(za))
	}
	return c.JSON(http.StatusOK, listAccessResponse{Data: data})
}

// CanAssign handles GET /v1/identities/:id/access/:zone.
//
// Shift planning calls this before putting an employee on a zone shift.
//
// @Summary      Check whether an employee may be assigned to a zone
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Identity id"
// @Param        zone  path      string  true  "Zone name"
// @Success      200   {object}  canAssignResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/identities/{id}/access/{zone} [get]
func (h *IdentityHandler) CanAssign(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	allowed, err := h.access.CanAssign(c.Request().Context(), c.Param("id"), c.Param("zone"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, canAssignResponse{Allowed: allowed})
}
