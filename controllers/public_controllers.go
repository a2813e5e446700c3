package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// PublicController serves the guest-facing surface reached by scanning a
// code: the menu, table lookup, order placement and order polling. No auth.
type PublicController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewPublicController(db *gorm.DB) *PublicController {
	return &PublicController{DB: db, Orders: services.NewOrderService(db)}
}

// GetTableByID -> table info for the scanned code's query parameter
func (pc *PublicController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := pc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrTableNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// GetTableMenu -> active menu items for a valid table
func (pc *PublicController) GetTableMenu(c *gin.Context) {
	var table models.Table
	if err := pc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrTableNotFound)
		return
	}

	var menus []models.Menu
	if err := pc.DB.Where("is_active = ?", true).Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu for table "+table.TableNumber, menus)
}

// GetActiveMenus -> the global menu
func (pc *PublicController) GetActiveMenus(c *gin.Context) {
	var menus []models.Menu
	if err := pc.DB.Where("is_active = ?", true).Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active menu items", menus)
}

// GetMenuCategories -> curated categories, derived from items as fallback
func (pc *PublicController) GetMenuCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := pc.DB.Order("name").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(categories) == 0 {
		var menus []models.Menu
		if err := pc.DB.Where("is_active = ?", true).Find(&menus).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		categories = services.DeriveCategories(menus)
	}
	utils.RespondJSON(c, http.StatusOK, "Menu categories", categories)
}

// GetActiveOffers -> offers whose window covers now
func (pc *PublicController) GetActiveOffers(c *gin.Context) {
	now := time.Now()
	var offers []models.Offer
	err := pc.DB.Where("start_date <= ? AND end_date >= ?", now, now).
		Order("start_date").Find(&offers).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active offers", offers)
}

// CreateOrder -> anyone at a valid table can order
func (pc *PublicController) CreateOrder(c *gin.Context) {
	var body struct {
		TableID       uint                      `json:"table_id" binding:"required"`
		Items         []services.OrderItemInput `json:"items" binding:"required"`
		CustomerName  string                    `json:"customer_name"`
		CustomerEmail string                    `json:"customer_email"`
		Notes         string                    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := pc.Orders.CreateOrder(services.CreateOrderInput{
		TableID:       body.TableID,
		Items:         body.Items,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		Notes:         body.Notes,
	})
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", withLock(*order, time.Now()))
}

// GetOrder -> guests poll their order; the lock projection rides along
func (pc *PublicController) GetOrder(c *gin.Context) {
	id := c.Param("order_id")

	var order models.Order
	if err := pc.DB.Preload("Items").Preload("Table").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", withLock(order, time.Now()))
}
