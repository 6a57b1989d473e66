package models

// OrderItem is a cart line snapshotted into an order at submission time
type OrderItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int64  `json:"price"` // snapshot price at time of order
}

// OrderRecord is the persisted unit, one per phone number.
// Keys are camelCase because this is the stored layout shared with the storefront.
type OrderRecord struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	Meal           MealSlot    `json:"meal"`
	Items          []OrderItem `json:"items"`
	Subtotal       int64       `json:"subtotal"`
	DeliveryCharge int64       `json:"deliveryCharge"`
	Tax            int64       `json:"tax"`
	Total          int64       `json:"total"`
	Note           string      `json:"note,omitempty"`
	PlacedAt       string      `json:"placedAt"`
}

// ItemCount returns the number of units across all lines
func (o *OrderRecord) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}
