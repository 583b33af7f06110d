package domain

// InventoryItem is a piece of lab equipment tracked by the system.
//
// AvailableQuantity counts units currently loanable and is mutated only by
// the borrow lifecycle (decremented on approval, incremented on return).
// PhysicalQuantity counts units actually present in the lab and is used
// exclusively for reconciliation; the two may drift.
type InventoryItem struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Category          string            `json:"category"`
	Description       string            `json:"description"`
	TotalQuantity     int               `json:"totalQuantity"`
	AvailableQuantity int               `json:"availableQuantity"`
	PhysicalQuantity  int               `json:"physicalQuantity"`
	Location          string            `json:"location,omitempty"`
	Image             string            `json:"image,omitempty"`
	LastRestocked     string            `json:"lastRestocked,omitempty"`
	Specifications    map[string]string `json:"specifications,omitempty"`
}
