package booking

type Status string

const (
	StatusBooking   Status = "Booking"
	StatusConfirmed Status = "Confirmed"
	StatusDone      Status = "Done Order"
	StatusCanceled  Status = "Canceled"
)

var ValidStatuses = []Status{StatusBooking, StatusConfirmed, StatusDone, StatusCanceled}

func (s Status) Valid() bool {
	switch s {
	case StatusBooking, StatusConfirmed, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// RestoresStock: stok dikembalikan hanya saat masuk Canceled dari status lain.
// Canceled -> Canceled adalah no-op (idempotent).
func RestoresStock(from, to Status) bool {
	return to == StatusCanceled && from != StatusCanceled
}

// TotalCost dikunci saat booking dibuat dan tidak pernah dihitung ulang.
func TotalCost(price float64, qty int) float64 {
	return price * float64(qty)
}
