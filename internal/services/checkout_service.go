package services

import (
	"errors"
	"fmt"

	"isaarte/internal/cart"
	"isaarte/internal/repos"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart empty")

type Contact struct {
	Name  string
	Email string
}

type CheckoutService struct {
	Cart   *cart.Store
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Pay    Gateway
}

func NewCheckoutService(c *cart.Store, prods *repos.ProductRepo, orders *repos.OrderRepo, pay Gateway) *CheckoutService {
	return &CheckoutService{Cart: c, Prods: prods, Orders: orders, Pay: pay}
}

// Place prices the session's cart, runs the (simulated) payment, decrements
// stock, records the order and clears the cart. Any rejection before the
// stock decrement leaves everything untouched.
func (s *CheckoutService) Place(sid, method string, contact Contact) (string, error) {
	cv, err := s.Cart.Load(sid)
	if err != nil {
		return "", err
	}
	if len(cv.Items) == 0 {
		return "", ErrEmptyCart
	}

	// pre-check live stock against the catalog
	for _, it := range cv.Items {
		p, err := s.Prods.Get(it.ID)
		if err != nil {
			return "", fmt.Errorf("product %s unavailable", it.ID)
		}
		if p.StockQuantity < it.Quantity {
			return "", fmt.Errorf("insufficient stock for %s (need %d, have %d)", it.Name, it.Quantity, p.StockQuantity)
		}
	}

	total := cv.Total()
	if err := s.Pay.Process(method, total); err != nil {
		return "", err
	}

	for _, it := range cv.Items {
		if err := s.Prods.DecrementStock(it.ID, it.Quantity); err != nil {
			return "", err
		}
	}

	orderID := uuid.NewString()
	h := repos.Header{
		ID:             orderID,
		SessionID:      sid,
		CustomerName:   contact.Name,
		CustomerEmail:  contact.Email,
		ShippingOption: string(cv.Shipping),
		ShippingCost:   cv.ShippingCost(),
		DiscountCode:   cv.DiscountCode,
		DiscountAmount: cv.DiscountAmount,
		PaymentMethod:  method,
		Subtotal:       cv.Subtotal(),
		Total:          total,
	}
	if err := s.Orders.Create(h); err != nil {
		return "", err
	}
	for _, it := range cv.Items {
		if err := s.Orders.InsertItem(orderID, it.ID, it.Name, it.Quantity, it.Price); err != nil {
			return "", err
		}
	}

	_, _ = s.Cart.Clear(sid)
	return orderID, nil
}
