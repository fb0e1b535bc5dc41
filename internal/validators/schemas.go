package validators

import (
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/appointment"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/domain/servicerecord"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
)

// --------------------------------------------------
// Auth
// --------------------------------------------------

var Register = Schema{
	{Name: "username", Required: true, Type: String, MinLen: 4, MaxLen: 20},
	{Name: "password", Required: true, Type: String, MinLen: 6},
	{Name: "firstName", Required: true, Type: String, MinLen: 2, MaxLen: 50},
	{Name: "lastName", Required: true, Type: String, MinLen: 2, MaxLen: 50},
	{Name: "phoneNumbers", Required: true, Type: Array, MinLen: 1, Items: &Field{Type: Phone}},
	{Name: "email", Required: true, Type: Email},
}

var Login = Schema{
	{Name: "username", Required: true, Type: String},
	{Name: "password", Required: true, Type: String},
}

var ChangePassword = Schema{
	{Name: "currentPassword", Required: true, Type: String},
	{Name: "newPassword", Required: true, Type: String, MinLen: 6},
}

var CreateAdmin = Schema{
	{Name: "username", Required: true, Type: String, MinLen: 4, MaxLen: 20},
	{Name: "password", Required: true, Type: String, MinLen: 6},
	{Name: "firstName", Required: true, Type: String, MinLen: 2, MaxLen: 50},
	{Name: "lastName", Required: true, Type: String, MinLen: 2, MaxLen: 50},
	{Name: "email", Required: true, Type: Email},
	{Name: "role", Type: String, OneOf: []string{models.RoleAdmin, models.RoleTechnician}},
}

var SetActive = Schema{
	{Name: "active", Required: true, Type: Boolean},
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

var UpdateClient = Schema{
	{Name: "firstName", Type: String, MinLen: 2, MaxLen: 50},
	{Name: "lastName", Type: String, MinLen: 2, MaxLen: 50},
	{Name: "phoneNumbers", Type: Array, MinLen: 1, Items: &Field{Type: Phone}},
	{Name: "email", Type: Email},
}

// --------------------------------------------------
// Cars
// --------------------------------------------------

var EngineTypes = []string{"diesel", "petrol", "hybrid", "electric"}

// Car returns the car schema; the year ceiling moves with currentYear.
func Car(currentYear int, create bool) Schema {
	return Schema{
		{Name: "clientId", Required: create, Type: Integer, Min: Ptr(1)},
		{Name: "licensePlate", Required: create, Type: String, MinLen: 2, MaxLen: 20},
		{Name: "chassisNumber", Required: create, Type: String, MinLen: 5, MaxLen: 30},
		{Name: "brand", Required: create, Type: String, MinLen: 1, MaxLen: 50},
		{Name: "model", Required: create, Type: String, MinLen: 1, MaxLen: 50},
		{Name: "year", Required: create, Type: Integer, Min: Ptr(1900), Max: Ptr(float64(currentYear + 1))},
		{Name: "engineType", Required: create, Type: String, OneOf: EngineTypes},
		{Name: "engineCapacity", Required: create, Type: Number, Min: Ptr(0)},
		{Name: "horsePower", Required: create, Type: Number, Min: Ptr(0)},
	}
}

// --------------------------------------------------
// Parts
// --------------------------------------------------

func Part(create bool) Schema {
	return Schema{
		{Name: "name", Required: create, Type: String, MinLen: 3, MaxLen: 100},
		{Name: "category", Required: create, Type: String, MinLen: 1, MaxLen: 50},
		{Name: "stock", Required: create, Type: Number, Min: Ptr(0)},
		{Name: "unitPrice", Required: create, Type: Number, Min: Ptr(0)},
		{Name: "unitType", Required: create, Type: String, MinLen: 1, MaxLen: 20},
	}
}

var StockOperations = []string{"add", "subtract", "set"}

var UpdateStock = Schema{
	{Name: "stock", Required: true, Type: Number, Min: Ptr(0)},
	{Name: "operation", Type: String, OneOf: StockOperations},
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

var CreateAppointment = Schema{
	{Name: "clientId", Required: true, Type: Integer, Min: Ptr(1)},
	{Name: "carId", Required: true, Type: Integer, Min: Ptr(1)},
	{Name: "date", Required: true, Type: Date},
	{Name: "startTime", Required: true, Type: Clock},
	{Name: "endTime", Required: true, Type: Clock},
	{Name: "description", Required: true, Type: String, MinLen: 1},
	{Name: "contactMethod", Required: true, Type: String, OneOf: appointment.ContactMethods},
}

var UpdateAppointment = Schema{
	{Name: "date", Type: Date},
	{Name: "startTime", Type: Clock},
	{Name: "endTime", Type: Clock},
	{Name: "description", Type: String, MinLen: 1},
	{Name: "contactMethod", Type: String, OneOf: appointment.ContactMethods},
	{Name: "status", Type: String, OneOf: appointment.Statuses},
}

// --------------------------------------------------
// Service records
// --------------------------------------------------

var receptionFields = Schema{
	{Name: "visualIssues", Type: String},
	{Name: "clientReportedIssues", Required: true, Type: String, MinLen: 1},
	{Name: "receivedBy", Required: true, Type: String, MinLen: 1},
}

var replacedPart = Field{Type: Object, Fields: Schema{
	{Name: "name", Required: true, Type: String, MinLen: 1},
	{Name: "quantity", Required: true, Type: Number, Min: Ptr(0)},
	{Name: "unitPrice", Required: true, Type: Number, Min: Ptr(0)},
}}

var processingFields = Schema{
	{Name: "operations", Required: true, Type: Array, MinLen: 1, Items: &Field{Type: String, Required: true}},
	{Name: "replacedParts", Type: Array, Items: &replacedPart},
	{Name: "additionalIssues", Type: String},
	{Name: "repaired", Required: true, Type: String, OneOf: servicerecord.RepairedValues},
	{Name: "processingDuration", Required: true, Type: Integer, Min: Ptr(0)},
	{Name: "processedBy", Required: true, Type: String, MinLen: 1},
}

var CreateServiceRecord = Schema{
	{Name: "appointmentId", Required: true, Type: Integer, Min: Ptr(1)},
	{Name: "reception", Required: true, Type: Object, Fields: receptionFields},
}

// AddProcessing leaves the multiple-of-10 rule to the lifecycle so it
// surfaces as invalid_granularity.
var AddProcessing = processingFields

var UpdateServiceRecord = Schema{
	{Name: "reception", Type: Object, Fields: optional(receptionFields)},
	{Name: "processing", Type: Object, Fields: optional(processingFields)},
	{Name: "completed", Type: Boolean},
}

// optional copies s with every field made optional, for merge-style updates.
func optional(s Schema) Schema {
	out := make(Schema, len(s))
	for i, f := range s {
		f.Required = false
		out[i] = f
	}
	return out
}
