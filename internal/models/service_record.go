package models

import "time"

type Reception struct {
	VisualIssues         string    `json:"visualIssues,omitempty"`
	ClientReportedIssues string    `json:"clientReportedIssues"`
	ReceivedBy           string    `json:"receivedBy"`
	ReceivedAt           time.Time `json:"receivedAt"`
}

type ReplacedPart struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Processing struct {
	Operations         []string       `json:"operations"`
	ReplacedParts      []ReplacedPart `json:"replacedParts"`
	AdditionalIssues   string         `json:"additionalIssues"`
	Repaired           string         `json:"repaired"`
	ProcessingDuration int            `json:"processingDuration"`
	ProcessedBy        string         `json:"processedBy"`
	ProcessedAt        time.Time      `json:"processedAt"`
}

// ServiceRecord documents the intake and the work done for one appointment.
type ServiceRecord struct {
	ID            ServiceRecordID `json:"id"`
	AppointmentID AppointmentID   `json:"appointmentId"`
	Reception     Reception       `json:"reception"`
	Processing    *Processing     `json:"processing,omitempty"`
	Completed     bool            `json:"completed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	RepairedFull    = "full"
	RepairedPartial = "partial"
	RepairedNotDone = "not_done"
)
