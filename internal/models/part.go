package models

import "time"

type Part struct {
	ID        PartID  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Stock     float64 `json:"stock"`
	UnitPrice float64 `json:"unitPrice"`
	UnitType  string  `json:"unitType"`
	Active    bool    `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
