package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type QRCodeController struct {
	QRCodes *services.QRCodeService
}

func NewQRCodeController(qrcodes *services.QRCodeService) *QRCodeController {
	return &QRCodeController{QRCodes: qrcodes}
}

// GetAllQRCodes -> list all codes, newest first
func (qc *QRCodeController) GetAllQRCodes(c *gin.Context) {
	codes, err := qc.QRCodes.ListCodes()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of QR codes", codes)
}

// GetQRCodeByID -> detail of one code
func (qc *QRCodeController) GetQRCodeByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("qrcode_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid qr code id"))
		return
	}

	qr, err := qc.QRCodes.GetCode(uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrQRCodeNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(c, status, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "QR code detail", qr)
}

// CreateQRCode -> ad-hoc code for an arbitrary destination (social links etc.)
func (qc *QRCodeController) CreateQRCode(c *gin.Context) {
	var body struct {
		Section string `json:"section" binding:"required"`
		URL     string `json:"url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	qr, err := qc.QRCodes.CreateAdHocCode(body.Section, body.URL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "QR code created", qr)
}

// GenerateGlobalQR -> bind (or rebind) the restaurant-wide menu code
func (qc *QRCodeController) GenerateGlobalQR(c *gin.Context) {
	var body struct {
		BaseURL string `json:"base_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	qr, err := qc.QRCodes.BindGlobalMenu(body.BaseURL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Global menu QR code generated", qr)
}

// DeleteQRCode -> remove a code, its artifact and any table reference
func (qc *QRCodeController) DeleteQRCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("qrcode_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid qr code id"))
		return
	}

	if err := qc.QRCodes.DeleteCode(uint(id)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrQRCodeNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(c, status, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "QR code removed", gin.H{"id": id})
}
