package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrderStatus is the staff-managed call status of a customer order.
type OrderStatus string

const (
	OrderNotCalled OrderStatus = "NOT_CALLED"
	OrderCalled    OrderStatus = "CALLED"
	OrderAccepted  OrderStatus = "ACCEPTED"
)

// Order is a customer callback request. Orders are created by the public
// storefront and only ever have their status changed from here.
type Order struct {
	ID          string      `json:"id"`
	FirstName   string      `json:"firstName"`
	PhoneNumber string      `json:"phoneNumber"`
	ModelName   string      `json:"modelName"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"createdAt"`
}

// OrderDraft stages a status transition only.
type OrderDraft struct {
	Status OrderStatus
}

func (d *OrderDraft) Seed(o Order) {
	d.Status = o.Status
}

func (d *OrderDraft) Reset() {
	d.Status = ""
}

func (d *OrderDraft) Validate(creating bool) error {
	return validation.Validate(string(d.Status), validation.Required,
		validation.In(string(OrderNotCalled), string(OrderCalled), string(OrderAccepted)))
}

func (d *OrderDraft) Payload(creating bool) (string, []byte, error) {
	return jsonPayload(map[string]any{"status": d.Status})
}
