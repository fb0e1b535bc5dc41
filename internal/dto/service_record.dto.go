package dto

import "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"

type AppointmentInfoDTO struct {
	ID          models.AppointmentID `json:"id"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
}

type ClientInfoDTO struct {
	ID        models.ClientID `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
}

type CarInfoDTO struct {
	ID           models.CarID `json:"id"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	LicensePlate string       `json:"licensePlate"`
}

type ServiceRecordDTO struct {
	models.ServiceRecord
	AppointmentInfo *AppointmentInfoDTO `json:"appointmentInfo"`
	ClientInfo      *ClientInfoDTO      `json:"clientInfo"`
	CarInfo         *CarInfoDTO         `json:"carInfo"`
}

func NewServiceRecordDTO(
	sr models.ServiceRecord,
	ap *models.Appointment,
	c *models.Client,
	car *models.Car,
) ServiceRecordDTO {
	out := ServiceRecordDTO{ServiceRecord: sr}
	if ap != nil {
		out.AppointmentInfo = &AppointmentInfoDTO{ID: ap.ID, Date: ap.Date, Description: ap.Description}
	}
	if c != nil {
		out.ClientInfo = &ClientInfoDTO{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
	}
	if car != nil {
		out.CarInfo = &CarInfoDTO{ID: car.ID, Brand: car.Brand, Model: car.Model, LicensePlate: car.LicensePlate}
	}
	return out
}
