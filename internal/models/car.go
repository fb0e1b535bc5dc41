package models

import (
	"math"
	"time"
)

type Car struct {
	ID             CarID    `json:"id"`
	ClientID       ClientID `json:"clientId"`
	LicensePlate   string   `json:"licensePlate"`
	ChassisNumber  string   `json:"chassisNumber"`
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Year           int      `json:"year"`
	EngineType     string   `json:"engineType"`
	EngineCapacity float64  `json:"engineCapacity"`
	HorsePower     float64  `json:"horsePower"`
	PowerKW        int      `json:"powerKW"`
	Active         bool     `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// kwPerHP converts mechanical horsepower to kilowatts.
const kwPerHP = 0.7355

// PowerKW is the rounded kilowatt rating for hp.
func PowerKW(hp float64) int {
	return int(math.Round(hp * kwPerHP))
}
