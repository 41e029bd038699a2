package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Returns "DESC" when the input is empty or unrecognized.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is empty or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_number":   true,
	"customer_id":    true,
	"status":         true,
	"payment_status": true,
	"total_amount":   true,
	"shipped_at":     true,
	"delivered_at":   true,
}

// ReturnSortFields contains allowed sort fields for returns
var ReturnSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"return_number": true,
	"order_id":      true,
	"customer_id":   true,
	"status":        true,
	"reason":        true,
	"refund_amount": true,
	"requested_at":  true,
	"processed_at":  true,
}

// InventoryRecordSortFields contains allowed sort fields for stock records
var InventoryRecordSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"product_id":        true,
	"warehouse_id":      true,
	"quantity":          true,
	"reserved_quantity": true,
}

// InventoryTransactionSortFields contains allowed sort fields for stock transactions
var InventoryTransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"transaction_type": true,
	"product_id":       true,
	"warehouse_id":     true,
	"quantity":         true,
	"reference_id":     true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"category":   true,
	"price":      true,
	"weight":     true,
	"active":     true,
}

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"capacity":   true,
	"active":     true,
}

// CarrierSortFields contains allowed sort fields for carriers
var CarrierSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"carrier_code":  true,
	"name":          true,
	"contact_email": true,
	"active":        true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":                      true,
	"created_at":              true,
	"updated_at":              true,
	"tracking_number":         true,
	"order_id":                true,
	"carrier_id":              true,
	"status":                  true,
	"estimated_delivery_date": true,
	"actual_delivery_date":    true,
}

// UserSortFields contains allowed sort fields for user accounts
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"active":        true,
	"last_login_at": true,
}
