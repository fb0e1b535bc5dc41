package models

// Typed record ids. Each collection gets its own type so a CarID can never
// be passed where a ClientID is expected.
type (
	ClientID        int64
	CarID           int64
	AppointmentID   int64
	ServiceRecordID int64
	PartID          int64
	AdminID         int64
	AuditLogID      int64
)
