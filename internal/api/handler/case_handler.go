package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artkulinaria/staffing-backoffice/internal/api/metrics"
	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// CaseHandler handles HTTP requests for the HR-facing case operations.
type CaseHandler struct {
	cases ports.CaseService
	links ports.LinkService
}

func NewCaseHandler(cases ports.CaseService, links ports.LinkService) *CaseHandler {
	return &CaseHandler{cases: cases, links: links}
}

// Create handles POST /v1/cases.
//
// @Summary      Open a new hiring case
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCaseRequest  true  "Candidate details"
// @Success      201   {object}  caseResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cases [post]
func (h *CaseHandler) Create(c echo.Context) error {
	var req createCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	hc, err := h.cases.Create(c.Request().Context(), actor, ports.CreateCaseInput{
		CandidateName: req.CandidateName,
		Phone:         req.Phone,
		Workshop:      req.Workshop,
		InterviewAt:   req.InterviewAt,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.CasesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCaseResponse(hc))
}

// Get handles GET /v1/cases/:id.
//
// @Summary      Get a hiring case by id
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case id"
// @Success      200  {object}  caseResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/cases/{id} [get]
func (h *CaseHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	hc, err := h.cases.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCaseResponse(hc))
}

// List handles GET /v1/cases.
//
// @Summary      List hiring cases
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        search  query     string  false  "Partial match on candidate name or phone"
// @Success      200     {object}  listCasesResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/cases [get]
func (h *CaseHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.cases.List(c.Request().Context(), actor, ports.ListCasesFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	data := make([]caseResponse, 0, len(items))
	for _, hc := range items {
		data = append(data, toCaseResponse(hc))
	}
	return c.JSON(http.StatusOK, listCasesResponse{Data: data, Total: len(data)})
}

// Edit handles PUT /v1/cases/:id.
//
// @Summary      Edit a hiring case
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Case id"
// @Param        body  body      editCaseRequest  true  "Updated candidate details"
// @Success      200   {object}  caseResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cases/{id} [put]
func (h *CaseHandler) Edit(c echo.Context) error {
	var req editCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	hc, err := h.cases.Edit(c.Request().Context(), actor, c.Param("id"), ports.EditCaseInput{
		CandidateName: req.CandidateName,
		Phone:         req.Phone,
		Workshop:      req.Workshop,
		InterviewAt:   req.InterviewAt,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCaseResponse(hc))
}

// Complete handles POST /v1/cases/:id/complete.
//
// @Summary      Mark the interview as held
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case id"
// @Success      200  {object}  caseResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/cases/{id}/complete [post]
func (h *CaseHandler) Complete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	hc, err := h.cases.Complete(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CaseTransitionsTotal.WithLabelValues(string(domain.StatusCompleted)).Inc()
	return c.JSON(http.StatusOK, toCaseResponse(hc))
}

// Submit handles POST /v1/cases/:id/submit.
//
// @Summary      Submit a case for administrator approval
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case id"
// @Success      200  {object}  caseResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/cases/{id}/submit [post]
func (h *CaseHandler) Submit(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	hc, err := h.cases.SubmitForApproval(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CaseTransitionsTotal.WithLabelValues(string(domain.StatusPendingApproval)).Inc()
	return c.JSON(http.StatusOK, toCaseResponse(hc))
}

// Invite handles POST /v1/cases/:id/invite.
//
// Reissuing replaces the stored token, so any previously shared deep
// link stops resolving.
//
// @Summary      Issue (or reissue) the channel invite link for a case
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case id"
// @Success      201  {object}  inviteResponse
// @Failure      404  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/cases/{id}/invite [post]
func (h *CaseHandler) Invite(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	res, err := h.links.IssueInvite(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inviteResponse{Token: res.Token, Link: res.Link})
}
