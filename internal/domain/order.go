package domain

import "time"

// Order lifecycle statuses. Done orders are excluded from ranking.
const (
	OrderStatusNew        = "new"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusCooking    = "cooking"
	OrderStatusDelivering = "delivering"
	OrderStatusDone       = "done"
)

const (
	PaymentCash       = "cash"
	PaymentElectronic = "electronic"
)

// OrderItem is one line of an order. Price is snapshotted from the product
// at registration time so later price changes do not rewrite history.
type OrderItem struct {
	ProductID int
	Quantity  int
	Price     float64
}

// Order holds the fields the matching core needs: a delivery address and the
// requested products. CookingRestaurantID is set once a manager assigns a
// kitchen, which suppresses candidate ranking for the order.
type Order struct {
	OrderID             int
	Firstname           string
	Lastname            string
	Phonenumber         string
	Address             string
	Status              string
	PaymentMethod       string
	Comment             string
	CookingRestaurantID *int
	CreatedAt           time.Time
	Items               []OrderItem
}

// ProductSet returns the distinct product IDs the order requests.
// Quantities do not matter for eligibility.
func (o *Order) ProductSet() map[int]struct{} {
	set := make(map[int]struct{}, len(o.Items))
	for _, item := range o.Items {
		set[item.ProductID] = struct{}{}
	}
	return set
}

// TotalPrice returns the order total as Σ quantity × item price.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}
