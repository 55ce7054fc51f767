package dto

type OrderItemRequest struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

type RegisterOrderRequest struct {
	Firstname     string             `json:"firstname"`
	Lastname      string             `json:"lastname"`
	Phonenumber   string             `json:"phonenumber"`
	Address       string             `json:"address"`
	Comment       string             `json:"comment"`
	PaymentMethod string             `json:"payment_method"`
	Products      []OrderItemRequest `json:"products"`
}

type RegisterOrderResponse struct {
	OrderID int `json:"order_id"`
}
