package cart

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/apperrors"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/models"
)

// ProductStore is the product lookup slice the cart handlers consume.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

// CartStore reads and replaces whole cart records. Mutations are
// read-modify-write without versioning; concurrent writes to the same cart
// are last-write-wins.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Upsert(ctx context.Context, cart models.Cart) (models.Cart, error)
}

type Controller struct {
	carts    CartStore
	products ProductStore
}

func NewController(carts CartStore, products ProductStore) *Controller {
	return &Controller{carts: carts, products: products}
}

// UserID resolves the caller's id placed in Locals by the auth middleware.
func UserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	raw, ok := c.Locals("userId").(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "User ID not found in token")
	}
	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID format")
	}
	return userID, nil
}

type expandedProduct struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Image       *string            `json:"image"`
}

// expandedItem carries the current product under the productId key, the
// same shape a populated reference has.
type expandedItem struct {
	Product  expandedProduct `json:"productId"`
	Quantity int             `json:"quantity"`
}

type expandedCart struct {
	ID        primitive.ObjectID `json:"_id"`
	UserID    primitive.ObjectID `json:"userId"`
	Items     []expandedItem     `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// expand joins cart items with current product data. Items whose product no
// longer exists are omitted from the view; the stored cart is untouched.
func (ctrl *Controller) expand(ctx context.Context, cart models.Cart) (expandedCart, error) {
	ids := make([]primitive.ObjectID, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}

	products, err := ctrl.products.FindByIDs(ctx, ids)
	if err != nil {
		return expandedCart{}, err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := []expandedItem{}
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		items = append(items, expandedItem{
			Product: expandedProduct{
				ID:          product.ID,
				Name:        product.Name,
				Price:       product.Price,
				Category:    product.Category,
				Description: product.Description,
				Image:       product.Image,
			},
			Quantity: item.Quantity,
		})
	}

	return expandedCart{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     items,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

// GetCart returns the caller's expanded cart; a user with no cart yet gets
// an empty items shape, not a 404.
func (ctrl *Controller) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := UserID(c)
	if err != nil {
		return err
	}

	cart, err := ctrl.carts.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return c.JSON(fiber.Map{"items": []expandedItem{}})
	}

	expanded, err := ctrl.expand(ctx, *cart)
	if err != nil {
		return err
	}
	return c.JSON(expanded)
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// AddToCart puts a product in the caller's cart, creating the cart lazily.
// Adding a product already present increments its quantity.
func (ctrl *Controller) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := UserID(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Invalid request body")
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		return apperrors.NewValidation("Quantity must be at least 1")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return apperrors.NewNotFound("Product not found")
	}

	product, err := ctrl.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperrors.NewNotFound("Product not found")
	}

	cart, err := ctrl.carts.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		cart = &models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: productID, Quantity: quantity}},
		}
	} else if i := cart.FindItem(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	saved, err := ctrl.carts.Upsert(ctx, *cart)
	if err != nil {
		return err
	}

	expanded, err := ctrl.expand(ctx, saved)
	if err != nil {
		return err
	}
	return c.JSON(expanded)
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets the quantity of a cart item to an absolute value.
func (ctrl *Controller) UpdateCartItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := UserID(c)
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Invalid request body")
	}
	if req.Quantity < 1 {
		return apperrors.NewValidation("Quantity must be at least 1")
	}

	cart, err := ctrl.carts.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperrors.NewNotFound("Cart not found")
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return apperrors.NewNotFound("Product not found in cart")
	}

	i := cart.FindItem(productID)
	if i < 0 {
		return apperrors.NewNotFound("Product not found in cart")
	}
	cart.Items[i].Quantity = req.Quantity

	saved, err := ctrl.carts.Upsert(ctx, *cart)
	if err != nil {
		return err
	}

	expanded, err := ctrl.expand(ctx, saved)
	if err != nil {
		return err
	}
	return c.JSON(expanded)
}

// RemoveFromCart drops a product from the cart. A product that is not in
// the cart is not an error; only a missing cart is.
func (ctrl *Controller) RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := UserID(c)
	if err != nil {
		return err
	}

	cart, err := ctrl.carts.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperrors.NewNotFound("Cart not found")
	}

	if productID, err := primitive.ObjectIDFromHex(c.Params("productId")); err == nil {
		if i := cart.FindItem(productID); i >= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
	}

	saved, err := ctrl.carts.Upsert(ctx, *cart)
	if err != nil {
		return err
	}

	expanded, err := ctrl.expand(ctx, saved)
	if err != nil {
		return err
	}
	return c.JSON(expanded)
}
