package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// GetAllCategories -> curated categories, falling back to labels derived
// from the menu itself when nobody has curated any yet.
func (cc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Order("name").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(categories) == 0 {
		var menus []models.Menu
		if err := cc.DB.Find(&menus).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		categories = services.DeriveCategories(menus)
	}

	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory
func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{Name: req.Name}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// DeleteCategory
func (cc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	var category models.MenuCategory
	if err := cc.DB.First(&category, c.Param("category_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": category.ID})
}
