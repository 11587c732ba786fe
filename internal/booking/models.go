package booking

import (
	"time"

	"github.com/freshflower/storefront/internal/catalog"
)

type Guest struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	DeliveryType    string    `json:"deliveryType"`
	ReceiverName    string    `json:"receiverName"`
	ReceiverPhone   string    `json:"receiverPhone"`
	ReceiverAddress string    `json:"receiverAddress"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Booking adalah satu line-item pesanan. ProductID nullable: produk bisa
// hilang belakangan sementara booking tetap jadi catatan historis.
type Booking struct {
	ID         string    `json:"id"`
	ProductID  *string   `json:"productId"`
	GuestID    string    `json:"guestId"`
	Quantity   int       `json:"quantity"`
	PickupDate time.Time `json:"pickupDate"`
	TotalCost  float64   `json:"totalCost"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Product *catalog.Product `json:"product"`
	Guest   *Guest           `json:"guest"`
}

type GuestWithBookings struct {
	Guest
	Bookings []Booking `json:"bookings"`
}

type GuestInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	DeliveryType    string `json:"deliveryType" validate:"required,oneof=pickup delivery"`
	ReceiverName    string `json:"receiverName" validate:"required_if=DeliveryType delivery"`
	ReceiverPhone   string `json:"receiverPhone" validate:"required_if=DeliveryType delivery"`
	ReceiverAddress string `json:"receiverAddress" validate:"required_if=DeliveryType delivery"`
}

type CreateBookingInput struct {
	ProductID  string     `json:"productId" validate:"required"`
	Guest      GuestInput `json:"guestData" validate:"required"`
	Quantity   int        `json:"quantity" validate:"required,gt=0"`
	PickupDate time.Time  `json:"pickupDate" validate:"required"`
}
