package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type CatalogController struct {
	catalog services.CatalogServiceInterface
}

func NewCatalogController(catalog services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListCatalog godoc
// @Summary List experiences
// @Description Without a category every experience is returned. Unknown categories yield an empty list.
// @Tags Catalog
// @Produce json
// @Param category query string false "activity, script, service, dining or attraction"
// @Success 200 {object} response_models.CatalogResponse
// @Router /catalog [get]
func (cc *CatalogController) ListCatalog(c *gin.Context) {
	raw := strings.ToLower(strings.TrimSpace(c.Query("category")))
	if raw == "" {
		utils.RespondSuccess(c, response_models.CatalogResponse{Items: cc.catalog.All()}, "Catalog fetched successfully")
		return
	}
	category := dm.Category(raw)
	utils.RespondSuccess(c, response_models.CatalogResponse{
		Category: category,
		Items:    cc.catalog.ListByCategory(category),
	}, "Catalog fetched successfully")
}

func (cc *CatalogController) GetExperience(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Experience ID is required")
		return
	}

	item, err := cc.catalog.Get(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Experience fetched successfully")
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	utils.RespondSuccess(c, cc.catalog.Categories(), "Categories fetched successfully")
}
