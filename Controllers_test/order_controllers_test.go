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
	"github.com/yeremiapane/qrmenu-app/utils"
)

func setupTestDBForOrders(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Table{}, &models.Menu{}, &models.Order{}, &models.OrderItem{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	if err := db.Create(&models.Table{TableNumber: "A1", Capacity: 4, IsActive: true}).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	if err := db.Create(&models.Menu{Name: "Test Food", Price: 100.0, Category: "Mains", IsActive: true}).Error; err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	return db
}

// fakeAuth plays the part of AuthMiddleware for handler tests.
func fakeAuth(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.GET("/orders/board", orderCtrl.GetOrderBoard)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.PUT("/orders/:order_id/status", fakeAuth(1, "staff"), orderCtrl.UpdateOrderStatus)
	router.PUT("/orders/:order_id/payment", fakeAuth(1, "staff"), orderCtrl.UpdatePaymentStatus)
	return router
}

func TestCreateAndGetOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t, "ctrl_orders_create")
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"table_id": 1,
		"items": []map[string]interface{}{
			{"menu_id": 1, "quantity": 2},
		},
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/orders", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Equal(t, "Order created", createResp["message"])

	data := createResp["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "unpaid", data["payment_status"])
	assert.Equal(t, float64(200), data["total_amount"])

	lock := data["lock"].(map[string]interface{})
	assert.Equal(t, false, lock["locked"])
	assert.Equal(t, false, lock["applicable"])

	orderID := int(data["id"].(float64))

	req, err = http.NewRequest("GET", "/orders/"+strconv.Itoa(orderID), nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var getResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &getResp))
	assert.Equal(t, "Order detail", getResp["message"])
	getData := getResp["data"].(map[string]interface{})
	assert.Equal(t, float64(orderID), getData["id"].(float64))
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t, "ctrl_orders_status")
	router := setupOrderRouter(db)

	order := models.Order{TableID: 1, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid, CustomerName: "Guest"}
	db.Create(&order)

	// illegal jump pending -> served
	body, _ := json.Marshal(map[string]string{"status": "served"})
	req := httptest.NewRequest("PUT", "/orders/"+strconv.Itoa(int(order.ID))+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// legal step pending -> preparing
	body, _ = json.Marshal(map[string]string{"status": "preparing"})
	req = httptest.NewRequest("PUT", "/orders/"+strconv.Itoa(int(order.ID))+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "preparing", data["status"])
}

func TestUpdatePaymentStatusEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t, "ctrl_orders_payment")
	router := setupOrderRouter(db)

	order := models.Order{TableID: 1, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid, CustomerName: "Guest"}
	db.Create(&order)

	body, _ := json.Marshal(map[string]string{"payment_status": "paid"})
	req := httptest.NewRequest("PUT", "/orders/"+strconv.Itoa(int(order.ID))+"/payment", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "paid", data["payment_status"])

	// unknown value is rejected up front
	body, _ = json.Marshal(map[string]string{"payment_status": "partial"})
	req = httptest.NewRequest("PUT", "/orders/"+strconv.Itoa(int(order.ID))+"/payment", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderBoardEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t, "ctrl_orders_board")
	router := setupOrderRouter(db)

	db.Create(&models.Order{TableID: 1, Status: models.OrderPending, PaymentStatus: models.PaymentUnpaid, CustomerName: "Guest"})
	db.Create(&models.Order{TableID: 1, Status: models.OrderCancelled, PaymentStatus: models.PaymentUnpaid, CustomerName: "Guest"})

	req := httptest.NewRequest("GET", "/orders/board", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["pending"], 1)
	// cancelled orders stay off the board
	assert.Empty(t, data["preparing"])
	assert.Empty(t, data["completed"])
}
