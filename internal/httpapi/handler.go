package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-company-repository/company"
	"github.com/goliatone/go-company-repository/internal/logger"
	"github.com/goliatone/go-company-repository/repository"
)

// CompanyHandler serves /api/company on top of any CompanyRepository.
type CompanyHandler struct {
	repo repository.CompanyRepository
	log  *logger.Logger
}

func NewCompanyHandler(repo repository.CompanyRepository, log *logger.Logger) *CompanyHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &CompanyHandler{repo: repo, log: log.With("component", "httpapi")}
}

// GetCompanies handles GET /api/company.
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	companies, err := h.repo.GetCompanies(c.Request.Context())
	if err != nil {
		RespondFailure(c, err)
		return
	}
	RespondOK(c, companies)
}

// GetCompany handles GET /api/company/:id.
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.repo.GetCompany(c.Request.Context(), id)
	if err != nil {
		RespondFailure(c, err)
		return
	}
	if found == nil {
		RespondNotFound(c)
		return
	}
	RespondOK(c, found)
}

// CreateCompany handles POST /api/company and answers 201 with a Location
// pointing at the new company.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	dto, ok := bindDto(c)
	if !ok {
		return
	}
	created, err := h.repo.CreateCompany(c.Request.Context(), dto)
	if err != nil {
		RespondFailure(c, err)
		return
	}
	c.Header("Location", basePath+"/"+strconv.Itoa(created.ID))
	c.JSON(http.StatusCreated, created)
}

// UpdateCompany handles PUT /api/company/:id. The company must exist.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dto, ok := bindDto(c)
	if !ok {
		return
	}
	if !h.exists(c, id) {
		return
	}
	if err := h.repo.UpdateCompany(c.Request.Context(), id, dto); err != nil {
		RespondFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCompany handles DELETE /api/company/:id. The company must exist.
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.exists(c, id) {
		return
	}
	if err := h.repo.DeleteCompany(c.Request.Context(), id); err != nil {
		RespondFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCompanyByEmployeeID handles GET /api/company/ByEmployeeId/:id.
func (h *CompanyHandler) GetCompanyByEmployeeID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.repo.GetCompanyByEmployeeID(c.Request.Context(), id)
	if err != nil {
		RespondFailure(c, err)
		return
	}
	if found == nil {
		RespondNotFound(c)
		return
	}
	RespondOK(c, found)
}

// GetMultipleResults handles GET /api/company/:id/MultipleResult.
func (h *CompanyHandler) GetMultipleResults(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	found, err := h.repo.GetMultipleResults(c.Request.Context(), id)
	if err != nil {
		RespondFailure(c, err)
		return
	}
	if found == nil {
		RespondNotFound(c)
		return
	}
	RespondOK(c, found)
}

// MultipleMapping handles GET /api/company/MultipleMapping.
func (h *CompanyHandler) MultipleMapping(c *gin.Context) {
	companies, err := h.repo.MultipleMapping(c.Request.Context())
	if err != nil {
		RespondFailure(c, err)
		return
	}
	RespondOK(c, companies)
}

// CreateMultipleCompanies handles POST /api/company/Multiple and echoes the
// posted DTOs once the batch commits.
func (h *CompanyHandler) CreateMultipleCompanies(c *gin.Context) {
	var dtos []company.CompanyDto
	if err := c.ShouldBindJSON(&dtos); err != nil {
		RespondError(c, http.StatusBadRequest, company.TextCodeValidation, err)
		return
	}
	if err := company.ValidateAll(dtos); err != nil {
		RespondFailure(c, err)
		return
	}
	if err := h.repo.CreateMultipleCompanies(c.Request.Context(), dtos); err != nil {
		RespondFailure(c, err)
		return
	}
	RespondOK(c, dtos)
}

func (h *CompanyHandler) exists(c *gin.Context, id int) bool {
	found, err := h.repo.GetCompany(c.Request.Context(), id)
	if err != nil {
		RespondFailure(c, err)
		return false
	}
	if found == nil {
		RespondNotFound(c)
		return false
	}
	return true
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, company.TextCodeValidation,
			goerrors.New("id must be an integer", goerrors.CategoryValidation))
		return 0, false
	}
	return id, true
}

func bindDto(c *gin.Context) (company.CompanyDto, bool) {
	var dto company.CompanyDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		RespondError(c, http.StatusBadRequest, company.TextCodeValidation, err)
		return dto, false
	}
	if err := dto.Validate(); err != nil {
		RespondFailure(c, err)
		return dto, false
	}
	return dto, true
}
