package dto

import "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"

type AppointmentClientDTO struct {
	ID           models.ClientID `json:"id"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Email        string          `json:"email"`
	PhoneNumbers []string        `json:"phoneNumbers"`
}

type AppointmentCarDTO struct {
	ID           models.CarID `json:"id"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	LicensePlate string       `json:"licensePlate"`
	Year         int          `json:"year"`
}

// AppointmentDTO is an appointment with its client and car summaries.
// Missing references are left nil.
type AppointmentDTO struct {
	models.Appointment
	Client *AppointmentClientDTO `json:"client"`
	Car    *AppointmentCarDTO    `json:"car"`
}

func NewAppointmentDTO(ap models.Appointment, c *models.Client, car *models.Car) AppointmentDTO {
	out := AppointmentDTO{Appointment: ap}
	if c != nil {
		out.Client = &AppointmentClientDTO{
			ID:           c.ID,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Email:        c.Email,
			PhoneNumbers: c.PhoneNumbers,
		}
	}
	if car != nil {
		out.Car = &AppointmentCarDTO{
			ID:           car.ID,
			Brand:        car.Brand,
			Model:        car.Model,
			LicensePlate: car.LicensePlate,
			Year:         car.Year,
		}
	}
	return out
}
