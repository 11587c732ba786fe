package booking

const (
	TopicBookingCreated       = "booking.created"
	TopicBookingStatusChanged = "booking.status.changed"
)

// Partition key = booking_id supaya event satu booking tetap berurutan.
func PartitionKey(bookingID string) []byte { return []byte(bookingID) }
