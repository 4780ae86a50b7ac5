package models

// FridgeStats is the derived fridge count block. Overdue counts active
// checkouts whose expected return date has passed; it never changes any
// stored status.
type FridgeStats struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	CheckedOut  int64 `json:"checkedOut"`
	Maintenance int64 `json:"maintenance"`
	Overdue     int64 `json:"overdue"`
}

// VerificationStats is the derived verification count block, recomputed
// on every call.
type VerificationStats struct {
	PendingCheckouts  int64 `json:"pendingCheckouts"`
	ApprovedCheckouts int64 `json:"approvedCheckouts"`
	FlaggedCheckouts  int64 `json:"flaggedCheckouts"`
	PendingItems      int64 `json:"pendingItems"`
	ApprovedItems     int64 `json:"approvedItems"`
	FlaggedItems      int64 `json:"flaggedItems"`
	// ApprovedLastMonth counts approved batches whose drop-off date (not
	// verification date) falls within the last 30 days.
	ApprovedLastMonth int64 `json:"approvedLastMonth"`
}
