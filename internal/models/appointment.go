package models

import "time"

type Appointment struct {
	ID       AppointmentID `json:"id"`
	ClientID ClientID      `json:"clientId"`
	CarID    CarID         `json:"carId"`

	// Date is a calendar date (YYYY-MM-DD); times are HH:MM within the day.
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`

	Description   string `json:"description"`
	ContactMethod string `json:"contactMethod"`
	Status        string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
