// audit/model.go
package audit

import "time"

// NavigationLog records one guard decision.
type NavigationLog struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"session_id"`
	Subject      string    `json:"subject,omitempty"`
	Path         string    `json:"path"`
	Action       string    `json:"action"`
	Reason       string    `json:"reason,omitempty"`
	Facility     string    `json:"facility,omitempty"`
	Location     string    `json:"location,omitempty"`
	Trace        []string  `json:"trace"`
	WaitedMs     int64     `json:"waited_ms"`
	UsedFallback bool      `json:"used_fallback"`
}
