package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Orders: services.NewOrderService(db)}
}

// orderView decorates an order with the lock projection polling clients
// render as a countdown.
type orderView struct {
	models.Order
	Lock models.LockInfo `json:"lock"`
}

func withLock(order models.Order, now time.Time) orderView {
	return orderView{Order: order, Lock: order.LockInfo(now)}
}

func withLockAll(orders []models.Order, now time.Time) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, withLock(order, now))
	}
	return views
}

// orderErrorStatus maps engine errors onto HTTP codes.
func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrMenuNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTable),
		errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidPaymentStatus),
		errors.Is(err, models.ErrStaffRequired):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrOrderLocked),
		errors.Is(err, models.ErrUpdateConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// GetAllOrders -> list orders with items, optionally filtered by status
// and/or table, newest first.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := services.OrderFilter{Status: c.Query("status")}
	if tableStr := c.Query("table"); tableStr != "" {
		tableID, err := strconv.Atoi(tableStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table filter"))
			return
		}
		filter.TableID = uint(tableID)
	}

	orders, err := oc.Orders.ListOrders(filter)
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", withLockAll(orders, time.Now()))
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.GetOrder(uint(id))
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", withLock(*order, time.Now()))
}

// CreateOrder -> place a guest order against a table
func (oc *OrderController) CreateOrder(c *gin.Context) {
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

	order, err := oc.Orders.CreateOrder(services.CreateOrderInput{
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

// UpdateOrderStatus -> staff move an order along the lifecycle. The acting
// staff id comes from the authenticated session, never from the body.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staffID *uint
	if userID, exists := c.Get("userID"); exists {
		if id, ok := userID.(uint); ok {
			staffID = &id
		}
	}

	order, err := oc.Orders.SetStatus(uint(id), body.Status, staffID)
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", withLock(*order, time.Now()))
}

// UpdatePaymentStatus -> staff annotate whether the order has been paid
func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var body struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.SetPaymentStatus(uint(id), body.PaymentStatus)
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", withLock(*order, time.Now()))
}

// GetOrderBoard -> dashboard view grouped by status, cancelled excluded
func (oc *OrderController) GetOrderBoard(c *gin.Context) {
	board, err := oc.Orders.Board()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	utils.RespondJSON(c, http.StatusOK, "Order board", gin.H{
		"pending":   withLockAll(board.Pending, now),
		"preparing": withLockAll(board.Preparing, now),
		"served":    withLockAll(board.Served, now),
		"completed": withLockAll(board.Completed, now),
	})
}
