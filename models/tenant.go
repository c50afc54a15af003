package models

import "fmt"

// SizeMultiplier scales a base price for the three vehicle size categories.
type SizeMultiplier struct {
	Small  float64 `json:"small"`
	Medium float64 `json:"medium"`
	Large  float64 `json:"large"`
}

// PriceEntry is one configured service in a tenant's price list.
type PriceEntry struct {
	ServiceName    string         `json:"service_name"`
	BasePrice      float64        `json:"base_price"`
	SizeMultiplier SizeMultiplier `json:"size_multiplier"`
}

// PriceList is a tenant's ordered service pricing configuration.
type PriceList []PriceEntry

// Find returns the entry for a service name, if configured.
func (pl PriceList) Find(serviceName string) (*PriceEntry, bool) {
	for i := range pl {
		if pl[i].ServiceName == serviceName {
			return &pl[i], true
		}
	}
	return nil, false
}

// Validate enforces the price-list invariants: unique service names,
// non-negative base prices and strictly positive size multipliers.
func (pl PriceList) Validate() error {
	seen := make(map[string]bool, len(pl))
	for _, entry := range pl {
		if entry.ServiceName == "" {
			return fmt.Errorf("price list entry is missing a service name")
		}
		if seen[entry.ServiceName] {
			return fmt.Errorf("duplicate service name in price list: %s", entry.ServiceName)
		}
		seen[entry.ServiceName] = true

		if entry.BasePrice < 0 {
			return fmt.Errorf("negative base price for service: %s", entry.ServiceName)
		}
		m := entry.SizeMultiplier
		if m.Small <= 0 || m.Medium <= 0 || m.Large <= 0 {
			return fmt.Errorf("size multipliers must be positive for service: %s", entry.ServiceName)
		}
	}
	return nil
}

// CostItem is one line of a tenant's cost-of-goods configuration.
type CostItem struct {
	ItemName string  `json:"item_name"`
	Cost     float64 `json:"cost"`
}

// Tenant is an isolated business account and the root of data partitioning.
// Its primary key is the identity provider's organization id, so every
// tenant-scoped query can filter directly on the caller's claim.
type Tenant struct {
	Base
	Name        string     `gorm:"not null" json:"name"`
	OwnerID     string     `gorm:"uniqueIndex;not null" json:"owner_id"` // owning user's subject id
	PriceList   PriceList  `gorm:"serializer:json" json:"price_list"`
	CostOfGoods []CostItem `gorm:"serializer:json" json:"cost_of_goods"`
	LaborCost   float64    `json:"labor_cost"`
	QRCode      string     `gorm:"type:text" json:"qr_code"` // booking-page QR as a PNG data URL
}

// TableName specifies the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}
