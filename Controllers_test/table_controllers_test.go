package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
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

// stubStore keeps artifacts in memory so tests never touch the disk.
type stubStore struct {
	files map[string][]byte
}

func newStubStore() *stubStore {
	return &stubStore{files: make(map[string][]byte)}
}

func (s *stubStore) Save(name string, data []byte) (string, error) {
	ref := "/uploads/" + name
	s.files[ref] = data
	return ref, nil
}

func (s *stubStore) Delete(ref string) error {
	delete(s.files, ref)
	return nil
}

var _ utils.FileStore = (*stubStore)(nil)

func setupTestDBForTables(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.QRCode{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupTableRouter(db *gorm.DB, store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db, services.NewQRCodeService(db, store))
	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.PUT("/tables/:table_id", tableCtrl.UpdateTable)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	router.POST("/tables/:table_id/qrcode", tableCtrl.GenerateTableQR)
	return router
}

func TestCreateTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "ctrl_tables_create")
	router := setupTableRouter(db, newStubStore())

	body, _ := json.Marshal(map[string]interface{}{"table_number": "B2", "capacity": 6, "section": "Patio"})
	req := httptest.NewRequest("POST", "/tables", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "B2", data["table_number"])
	assert.Equal(t, float64(6), data["capacity"])
	assert.Equal(t, true, data["is_active"])

	// capacity falls back to the default when omitted
	body, _ = json.Marshal(map[string]interface{}{"table_number": "B3"})
	req = httptest.NewRequest("POST", "/tables", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["data"].(map[string]interface{})["capacity"])
}

func TestGenerateTableQREndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "ctrl_tables_qr")
	store := newStubStore()
	router := setupTableRouter(db, store)

	table := models.Table{TableNumber: "C1", Capacity: 4, IsActive: true}
	db.Create(&table)

	body, _ := json.Marshal(map[string]string{"base_url": "https://menu.example.com"})
	req := httptest.NewRequest("POST", "/tables/"+strconv.Itoa(int(table.ID))+"/qrcode", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "table", data["kind"])
	assert.Equal(t, fmt.Sprintf("https://menu.example.com/menu?table=%d", table.ID), data["url"])
	assert.Len(t, store.files, 1)

	// the table now carries the reference
	var reloaded models.Table
	assert.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.NotNil(t, reloaded.QRCodeID)

	// unknown table
	req = httptest.NewRequest("POST", "/tables/9999/qrcode", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTableCascadesQRCode(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "ctrl_tables_delete")
	store := newStubStore()
	router := setupTableRouter(db, store)

	table := models.Table{TableNumber: "D1", Capacity: 4, IsActive: true}
	db.Create(&table)

	body, _ := json.Marshal(map[string]string{"base_url": "https://menu.example.com"})
	req := httptest.NewRequest("POST", "/tables/"+strconv.Itoa(int(table.ID))+"/qrcode", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("DELETE", "/tables/"+strconv.Itoa(int(table.ID)), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// no orphan record, no orphan artifact
	var count int64
	db.Model(&models.QRCode{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Len(t, store.files, 0)
}

func TestUpdateTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t, "ctrl_tables_update")
	router := setupTableRouter(db, newStubStore())

	table := models.Table{TableNumber: "E1", Capacity: 4, IsActive: true}
	db.Create(&table)

	body, _ := json.Marshal(map[string]interface{}{"is_active": false, "section": "Indoor"})
	req := httptest.NewRequest("PUT", "/tables/"+strconv.Itoa(int(table.ID)), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_active"])
	assert.Equal(t, "Indoor", data["section"])

	// zero capacity is rejected
	body, _ = json.Marshal(map[string]interface{}{"capacity": 0})
	req = httptest.NewRequest("PUT", "/tables/"+strconv.Itoa(int(table.ID)), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
