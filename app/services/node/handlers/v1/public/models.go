package public

import "github.com/ardanlabs/powledger/business/sys/validate"

// submitPayload is what clients send to have content mined into the chain.
type submitPayload struct {
	Data string `json:"data" validate:"required"`
}

// Validate checks the payload is valid.
func (sp submitPayload) Validate() error {
	return validate.Check(sp)
}

// submitResult returns the pooled payload id back to the client.
type submitResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// validateResult is the outcome of the chain integrity check. A failed check
// is a diagnostic result, not an error: the offending index and category
// come back with a 200.
type validateResult struct {
	Valid  bool   `json:"valid"`
	Height uint64 `json:"height"`
	Index  uint64 `json:"index"`
	Reason string `json:"reason,omitempty"`
}
