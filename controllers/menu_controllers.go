package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> full list for staff, including inactive items
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrMenuNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Category    string  `json:"category" binding:"required"`
		ImageUrl    *string `json:"image_url"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.Menu{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageUrl:    req.ImageUrl,
		IsActive:    true,
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s)", menu.Name, menu.Category)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrMenuNotFound)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		ImageUrl    *string  `json:"image_url"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.Category != nil {
		menu.Category = *req.Category
	}
	if req.ImageUrl != nil {
		menu.ImageUrl = req.ImageUrl
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrMenuNotFound)
		return
	}

	if err := mc.DB.Delete(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"id": menu.ID})
}
