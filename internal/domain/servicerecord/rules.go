package servicerecord

import (
	"fmt"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
)

// DurationGranularity is the unit processingDuration is recorded in.
const DurationGranularity = 10

var RepairedValues = []string{
	models.RepairedFull,
	models.RepairedPartial,
	models.RepairedNotDone,
}

func CheckProcessingDuration(minutes int) error {
	if minutes%DurationGranularity != 0 {
		return httperr.New(httperr.KindInvalidGranularity,
			fmt.Sprintf("Processing duration must be a multiple of %d minutes", DurationGranularity))
	}
	return nil
}

// CanAddProcessing: processing is written once; later edits go through Update.
func CanAddProcessing(sr *models.ServiceRecord) error {
	if sr.Processing != nil || sr.Completed {
		return httperr.New(httperr.KindAlreadyProcessed, "Processing has already been added to this service record")
	}
	return nil
}

// ReceptionChanges carries the reception fields a caller wants to change.
type ReceptionChanges struct {
	VisualIssues         *string
	ClientReportedIssues *string
	ReceivedBy           *string
}

// MergeReception overlays the present fields of c onto r.
func MergeReception(r models.Reception, c ReceptionChanges) models.Reception {
	if c.VisualIssues != nil {
		r.VisualIssues = *c.VisualIssues
	}
	if c.ClientReportedIssues != nil {
		r.ClientReportedIssues = *c.ClientReportedIssues
	}
	if c.ReceivedBy != nil {
		r.ReceivedBy = *c.ReceivedBy
	}
	return r
}

type ProcessingChanges struct {
	Operations         []string
	ReplacedParts      []models.ReplacedPart
	AdditionalIssues   *string
	Repaired           *string
	ProcessingDuration *int
	ProcessedBy        *string
}

// MergeProcessing overlays c onto p. Slices replace wholesale when non-nil.
// A nil p starts from an empty processing block.
func MergeProcessing(p *models.Processing, c ProcessingChanges) models.Processing {
	var out models.Processing
	if p != nil {
		out = *p
	}
	if c.Operations != nil {
		out.Operations = c.Operations
	}
	if c.ReplacedParts != nil {
		out.ReplacedParts = c.ReplacedParts
	}
	if c.AdditionalIssues != nil {
		out.AdditionalIssues = *c.AdditionalIssues
	}
	if c.Repaired != nil {
		out.Repaired = *c.Repaired
	}
	if c.ProcessingDuration != nil {
		out.ProcessingDuration = *c.ProcessingDuration
	}
	if c.ProcessedBy != nil {
		out.ProcessedBy = *c.ProcessedBy
	}
	return out
}

func (c ProcessingChanges) Empty() bool {
	return c.Operations == nil && c.ReplacedParts == nil && c.AdditionalIssues == nil &&
		c.Repaired == nil && c.ProcessingDuration == nil && c.ProcessedBy == nil
}

func (c ReceptionChanges) Empty() bool {
	return c.VisualIssues == nil && c.ClientReportedIssues == nil && c.ReceivedBy == nil
}
