package handler

import (
	stdErrors "errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callsight-ai/callsight/errors"
	"github.com/callsight-ai/callsight/internal/adapter/dto/common"
	companydto "github.com/callsight-ai/callsight/internal/adapter/dto/company"
	companyuc "github.com/callsight-ai/callsight/internal/usecase/company"
)

// Company exposes company and script management endpoints
type Company struct {
	svc    *companyuc.Service
	logger *zap.Logger
}

// NewCompany creates the company handler
func NewCompany(svc *companyuc.Service, logger *zap.Logger) *Company {
	return &Company{svc: svc, logger: logger}
}

// Create registers a new company
func (h *Company) Create(c echo.Context) error {
	var req companydto.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	created, err := h.svc.Register(c.Request().Context(), req.Name, req.Industry, req.Plan)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, created)
}

// List returns a page of companies
func (h *Company) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = 20
	}

	companies, err := h.svc.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, common.ListResponse{
		Data: companies,
		Pagination: &common.PaginationResponse{
			Page:     page,
			PageSize: pageSize,
		},
	})
}

// Get returns a company by ID
func (h *Company) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid company id"))
	}

	found, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, companyuc.ErrNotFound) {
			return HandleError(h.logger, c, errors.ErrCompanyNotFound(id.String()))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, found)
}

// UploadScript stores script content for a company
func (h *Company) UploadScript(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid company id"))
	}

	var req companydto.UploadScriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	script, err := h.svc.AddScript(c.Request().Context(), id, req.Name, req.ScriptType, req.Content, req.Description)
	if err != nil {
		if stdErrors.Is(err, companyuc.ErrNotFound) {
			return HandleError(h.logger, c, errors.ErrCompanyNotFound(id.String()))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, script)
}

// ListScripts returns all scripts for a company
func (h *Company) ListScripts(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid company id"))
	}

	scripts, err := h.svc.ListScripts(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, companyuc.ErrNotFound) {
			return HandleError(h.logger, c, errors.ErrCompanyNotFound(id.String()))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, scripts)
}
