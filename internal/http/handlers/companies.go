package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"inventory/internal/domain/models"
	"inventory/internal/repositories"

	"github.com/gin-gonic/gin"
)

type companyView struct {
	ID                      int64  `json:"id"`
	Name                    string `json:"name"`
	DisableAutoHaltGlobally bool   `json:"disableAutoHaltGlobally"`
}

// GET /api/companies
func GetCompanies(c *gin.Context) {
	repo := repositories.CompanyRepository{}
	list, err := repo.ListCompanies()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]companyView, 0, len(list))
	for _, co := range list {
		out = append(out, companyView{ID: co.ID, Name: co.Name, DisableAutoHaltGlobally: co.DisableAutoHalt})
	}
	c.JSON(http.StatusOK, out)
}

type companyPayload struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/companies
func CreateCompany(c *gin.Context) {
	var payload companyPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		RespondError(c, http.StatusBadRequest, "name wajib diisi", nil)
		return
	}

	repo := repositories.CompanyRepository{}
	id, err := repo.InsertCompany(models.Company{Name: name})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "perusahaan berhasil ditambahkan", "id": id})
}

type autoHaltPayload struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// PUT /api/companies/:id/auto-halt
// Company-wide bypass: disabled=true suppresses the auto-halt threshold
// for every trip the company owns (forced halts still apply).
func SetCompanyAutoHalt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	var payload autoHaltPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	repo := repositories.CompanyRepository{}
	if err := repo.SetAutoHaltDisabled(id, *payload.Disabled); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kebijakan auto-halt diperbarui"})
}
