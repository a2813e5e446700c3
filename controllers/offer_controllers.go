package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type OfferController struct {
	DB *gorm.DB
}

func NewOfferController(db *gorm.DB) *OfferController {
	return &OfferController{DB: db}
}

// GetAllOffers -> all offers ordered by start date
func (oc *OfferController) GetAllOffers(c *gin.Context) {
	var offers []models.Offer
	if err := oc.DB.Order("start_date").Find(&offers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of offers", offers)
}

// GetActiveOffers -> offers whose window covers now
func (oc *OfferController) GetActiveOffers(c *gin.Context) {
	now := time.Now()
	var offers []models.Offer
	err := oc.DB.Where("start_date <= ? AND end_date >= ?", now, now).
		Order("start_date").Find(&offers).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active offers", offers)
}

// GetOfferByID
func (oc *OfferController) GetOfferByID(c *gin.Context) {
	var offer models.Offer
	if err := oc.DB.First(&offer, c.Param("offer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("offer not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offer detail", offer)
}

// CreateOffer
func (oc *OfferController) CreateOffer(c *gin.Context) {
	var req struct {
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		Discount    float64   `json:"discount" binding:"required,gt=0,lte=100"`
		StartDate   time.Time `json:"start_date" binding:"required"`
		EndDate     time.Time `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.EndDate.Before(req.StartDate) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end date must not precede start date"))
		return
	}

	offer := models.Offer{
		Name:        req.Name,
		Description: req.Description,
		Discount:    req.Discount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := oc.DB.Create(&offer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Offer created", offer)
}

// UpdateOffer
func (oc *OfferController) UpdateOffer(c *gin.Context) {
	var offer models.Offer
	if err := oc.DB.First(&offer, c.Param("offer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("offer not found"))
		return
	}

	var req struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		Discount    *float64   `json:"discount"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		offer.Name = *req.Name
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.Discount != nil {
		offer.Discount = *req.Discount
	}
	if req.StartDate != nil {
		offer.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		offer.EndDate = *req.EndDate
	}
	if offer.EndDate.Before(offer.StartDate) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end date must not precede start date"))
		return
	}

	if err := oc.DB.Save(&offer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offer updated", offer)
}

// DeleteOffer
func (oc *OfferController) DeleteOffer(c *gin.Context) {
	var offer models.Offer
	if err := oc.DB.First(&offer, c.Param("offer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("offer not found"))
		return
	}

	if err := oc.DB.Delete(&offer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offer deleted", gin.H{"id": offer.ID})
}
