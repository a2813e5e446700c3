package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// OrderService owns the order lifecycle: creation, the status and payment
// state machines, and the post-completion lock. Every mutation re-reads the
// stored order and applies a conditional update keyed on updated_at, so two
// concurrent requests can never both win the same transition.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderItemInput struct {
	MenuID   uint `json:"menu_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

type CreateOrderInput struct {
	TableID       uint
	Items         []OrderItemInput
	CustomerName  string
	CustomerEmail string
	Notes         string
}

// CreateOrder places a guest order against a table. Prices are snapshotted
// from the menu at this moment; the total is the sum of price*quantity.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, models.ErrEmptyOrder
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, models.ErrEmptyOrder
		}
	}

	var table models.Table
	if err := s.DB.First(&table, in.TableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidTable
		}
		return nil, err
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = "Guest"
	}

	order := models.Order{
		TableID:       table.ID,
		CustomerName:  name,
		CustomerEmail: in.CustomerEmail,
		Notes:         in.Notes,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range in.Items {
			var menu models.Menu
			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrMenuNotFound
				}
				return err
			}

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				MenuID:    menu.ID,
				Quantity:  item.Quantity,
				Price:     menu.Price,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total += orderItem.Subtotal()
		}

		order.TotalAmount = total
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_amount", total).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d created for table %s (total=%.2f)",
		order.ID, table.TableNumber, order.TotalAmount)

	return s.GetOrder(order.ID)
}

// GetOrder loads one order with its items.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Items").Preload("Table").Preload("ServedBy").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// SetStatus moves an order along the status graph. Transitions into served
// or completed record the acting staff member and require one. The stored
// state is re-validated on every attempt; a concurrent writer losing the
// updated_at compare gets one silent re-read before the conflict surfaces.
func (s *OrderService) SetStatus(orderID uint, status string, staffID *uint) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, models.ErrInvalidStatus
	}

	for attempt := 0; attempt < 2; attempt++ {
		var order models.Order
		if err := s.DB.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrOrderNotFound
			}
			return nil, err
		}

		now := time.Now()
		if order.Locked(now) {
			return nil, models.ErrOrderLocked
		}
		if !order.CanTransitionTo(status) {
			return nil, &models.TransitionError{From: order.Status, To: status}
		}

		updates := map[string]interface{}{
			"status":     status,
			"updated_at": now,
		}
		if status == models.OrderServed || status == models.OrderCompleted {
			if staffID == nil {
				return nil, models.ErrStaffRequired
			}
			updates["served_by_id"] = *staffID
		}

		res := s.DB.Model(&models.Order{}).
			Where("id = ? AND updated_at = ?", order.ID, order.UpdatedAt).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			utils.InfoLogger.Printf("Order #%d status %s -> %s", order.ID, order.Status, status)
			return s.GetOrder(order.ID)
		}
		// lost the race against another writer; re-read and re-validate
	}
	return nil, models.ErrUpdateConflict
}

// SetPaymentStatus toggles the payment annotation. No ordering constraint
// between paid and unpaid, only the lock applies.
func (s *OrderService) SetPaymentStatus(orderID uint, paymentStatus string) (*models.Order, error) {
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, models.ErrInvalidPaymentStatus
	}

	for attempt := 0; attempt < 2; attempt++ {
		var order models.Order
		if err := s.DB.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrOrderNotFound
			}
			return nil, err
		}

		now := time.Now()
		if order.Locked(now) {
			return nil, models.ErrOrderLocked
		}

		res := s.DB.Model(&models.Order{}).
			Where("id = ? AND updated_at = ?", order.ID, order.UpdatedAt).
			Updates(map[string]interface{}{
				"payment_status": paymentStatus,
				"updated_at":     now,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			utils.InfoLogger.Printf("Order #%d payment -> %s", order.ID, paymentStatus)
			return s.GetOrder(order.ID)
		}
	}
	return nil, models.ErrUpdateConflict
}

// OrderFilter narrows ListOrders. Zero values mean "any".
type OrderFilter struct {
	Status  string
	TableID uint
}

// ListOrders returns matching orders, newest first.
func (s *OrderService) ListOrders(filter OrderFilter) ([]models.Order, error) {
	query := s.DB.Preload("Items").Preload("Table").Preload("ServedBy")
	if filter.Status != "" {
		if !models.ValidOrderStatus(filter.Status) {
			return nil, models.ErrInvalidStatus
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TableID != 0 {
		query = query.Where("table_id = ?", filter.TableID)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderBoard is the dashboard view: active orders partitioned by status.
// Cancelled orders are retained in the store but kept off the board.
type OrderBoard struct {
	Pending   []models.Order `json:"pending"`
	Preparing []models.Order `json:"preparing"`
	Served    []models.Order `json:"served"`
	Completed []models.Order `json:"completed"`
}

func (s *OrderService) Board() (*OrderBoard, error) {
	var orders []models.Order
	err := s.DB.Preload("Items").Preload("Table").Preload("ServedBy").
		Where("status <> ?", models.OrderCancelled).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	board := &OrderBoard{}
	for _, order := range orders {
		switch order.Status {
		case models.OrderPending:
			board.Pending = append(board.Pending, order)
		case models.OrderPreparing:
			board.Preparing = append(board.Preparing, order)
		case models.OrderServed:
			board.Served = append(board.Served, order)
		case models.OrderCompleted:
			board.Completed = append(board.Completed, order)
		}
	}
	return board, nil
}
