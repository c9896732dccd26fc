package orders

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/apperrors"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/controllers/cart"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/models"
)

// OrderStore persists immutable order snapshots.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindByOrderID(ctx context.Context, userID primitive.ObjectID, orderID string) (*models.Order, error)
}

type Controller struct {
	orders   OrderStore
	carts    cart.CartStore
	products cart.ProductStore
}

func NewController(orders OrderStore, carts cart.CartStore, products cart.ProductStore) *Controller {
	return &Controller{orders: orders, carts: carts, products: products}
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateOrderID builds the human-readable display id:
// ORD-<millisecond timestamp>-<6 random base36 chars>, uppercased.
func generateOrderID() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return strings.ToUpper(fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix))
}

// PlaceOrder converts the caller's cart into an order at current prices,
// then empties the cart. The two writes are not atomic: a failure after the
// order insert leaves the cart unemptied.
func (ctrl *Controller) PlaceOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := cart.UserID(c)
	if err != nil {
		return err
	}
	userName, _ := c.Locals("userName").(string)

	userCart, err := ctrl.carts.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if userCart == nil || len(userCart.Items) == 0 {
		return apperrors.NewValidation("Cart is empty")
	}

	ids := make([]primitive.ObjectID, len(userCart.Items))
	for i, item := range userCart.Items {
		ids[i] = item.ProductID
	}
	products, err := ctrl.products.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Snapshot name and price per item; products deleted since being
	// carted are dropped.
	var totalAmount float64
	orderItems := []models.OrderItem{}
	for _, item := range userCart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		totalAmount += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
		})
	}
	if len(orderItems) == 0 {
		return apperrors.NewValidation("Cart is empty")
	}

	order := models.Order{
		OrderID:     generateOrderID(),
		UserID:      userID,
		UserName:    userName,
		Items:       orderItems,
		TotalAmount: totalAmount,
	}

	created, err := ctrl.orders.Insert(ctx, order)
	if err != nil {
		return err
	}

	userCart.Items = []models.CartItem{}
	if _, err := ctrl.carts.Upsert(ctx, *userCart); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   created,
	})
}

// GetOrders lists the caller's orders, newest first.
func (ctrl *Controller) GetOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := cart.UserID(c)
	if err != nil {
		return err
	}

	orders, err := ctrl.orders.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// GetOrder returns one order by display id, scoped to the caller.
func (ctrl *Controller) GetOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := cart.UserID(c)
	if err != nil {
		return err
	}

	order, err := ctrl.orders.FindByOrderID(ctx, userID, c.Params("orderId"))
	if err != nil {
		return err
	}
	if order == nil {
		return apperrors.NewNotFound("Order not found")
	}
	return c.JSON(order)
}
