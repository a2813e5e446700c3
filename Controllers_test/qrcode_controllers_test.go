package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

func setupTestDBForQRCodes(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.QRCode{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupQRCodeRouter(db *gorm.DB, store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	qrCtrl := controllers.NewQRCodeController(services.NewQRCodeService(db, store))
	router.GET("/qrcodes", qrCtrl.GetAllQRCodes)
	router.GET("/qrcodes/:qrcode_id", qrCtrl.GetQRCodeByID)
	router.POST("/qrcodes", qrCtrl.CreateQRCode)
	router.POST("/qrcodes/global", qrCtrl.GenerateGlobalQR)
	router.DELETE("/qrcodes/:qrcode_id", qrCtrl.DeleteQRCode)
	return router
}

func TestGenerateGlobalQREndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForQRCodes(t, "ctrl_qr_global")
	store := newStubStore()
	router := setupQRCodeRouter(db, store)

	body, _ := json.Marshal(map[string]string{"base_url": "https://menu.example.com/"})
	req := httptest.NewRequest("POST", "/qrcodes/global", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "global", data["kind"])
	assert.Equal(t, models.GlobalMenuSection, data["section"])
	assert.Equal(t, "https://menu.example.com/menu", data["url"])

	// regenerating reuses the single global record
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/qrcodes/global", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.QRCode{}).Count(&count)
	assert.Equal(t, int64(1), count)
	// the superseded artifact is released
	assert.Len(t, store.files, 1)
}

func TestCreateAdHocQRCodeEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForQRCodes(t, "ctrl_qr_adhoc")
	router := setupQRCodeRouter(db, newStubStore())

	body, _ := json.Marshal(map[string]string{"section": "Instagram", "url": "https://instagram.com/qrmenu"})
	req := httptest.NewRequest("POST", "/qrcodes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Instagram", data["section"])
	assert.Contains(t, data["code"], "/uploads/qr-")

	// destination must be a URL
	body, _ = json.Marshal(map[string]string{"section": "Broken", "url": "not-a-url"})
	req = httptest.NewRequest("POST", "/qrcodes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteQRCodeEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForQRCodes(t, "ctrl_qr_delete")
	store := newStubStore()
	router := setupQRCodeRouter(db, store)

	body, _ := json.Marshal(map[string]string{"section": "Facebook", "url": "https://facebook.com/qrmenu"})
	req := httptest.NewRequest("POST", "/qrcodes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	id := int(resp["data"].(map[string]interface{})["id"].(float64))

	req = httptest.NewRequest("DELETE", "/qrcodes/"+strconv.Itoa(id), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.files, 0)

	// a second delete reports not found
	req = httptest.NewRequest("DELETE", "/qrcodes/"+strconv.Itoa(id), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
