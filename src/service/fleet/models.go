package fleet

import "sustainabot/src/model"

// AddFindingRequest is the body of a finding append
type AddFindingRequest struct {
	RunID   string        `json:"run_id,omitempty"`
	Finding model.Finding `json:"finding"`
}

// AddFindingResponse acknowledges an append
type AddFindingResponse struct {
	Accepted bool `json:"accepted"`
}
