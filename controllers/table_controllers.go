package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type TableController struct {
	DB      *gorm.DB
	QRCodes *services.QRCodeService
}

func NewTableController(db *gorm.DB, qrcodes *services.QRCodeService) *TableController {
	return &TableController{DB: db, QRCodes: qrcodes}
}

// CreateTable -> add a new table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity"`
		Section     string `json:"section"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Section:     req.Section,
		IsActive:    true,
	}
	if table.Capacity <= 0 {
		table.Capacity = 2
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list all tables with their bound QR codes
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Preload("QRCode").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.Preload("QRCode").First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrTableNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> edit capacity/section or toggle active
func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrTableNotFound)
		return
	}

	var body struct {
		TableNumber *string `json:"table_number"`
		Capacity    *int    `json:"capacity"`
		Section     *string `json:"section"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.TableNumber != nil {
		table.TableNumber = *body.TableNumber
	}
	if body.Capacity != nil {
		if *body.Capacity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be positive"))
			return
		}
		table.Capacity = *body.Capacity
	}
	if body.Section != nil {
		table.Section = *body.Section
	}
	if body.IsActive != nil {
		table.IsActive = *body.IsActive
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d updated (active=%v)", table.ID, table.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> remove a table; a bound QR code goes with it
func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrTableNotFound)
		return
	}

	if table.QRCodeID != nil {
		if err := tc.QRCodes.DeleteCode(*table.QRCodeID); err != nil && !errors.Is(err, models.ErrQRCodeNotFound) {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// GenerateTableQR -> bind (or rebind) the table's scannable code
func (tc *TableController) GenerateTableQR(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, models.ErrTableNotFound)
		return
	}

	var body struct {
		BaseURL string `json:"base_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	qr, err := tc.QRCodes.BindTable(table.ID, body.BaseURL)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrTableNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(c, status, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "QR code generated", qr)
}
