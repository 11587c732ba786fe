package redisx

import "time"

const (
	// Cache produk per id: product:{id} -> json Product, atau sentinel "notfound"
	KeyProduct = "product:%s"

	// Sesi admin: admin_session:{token} -> "1"
	KeyAdminSession = "admin_session:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProductCache    = 5 * time.Minute
	TTLProductNotFound = 1 * time.Minute
	TTLAdminSession    = 24 * time.Hour
	TTLDedup           = 48 * time.Hour
)
