package models

import "time"

// FridgeStatus is the lifecycle state of a fridge.
type FridgeStatus string

const (
	FridgeStatusAvailable   FridgeStatus = "available"
	FridgeStatusCheckedOut  FridgeStatus = "checked_out"
	FridgeStatusMaintenance FridgeStatus = "maintenance"
)

// ValidFridgeStatus reports whether s is one of the stored fridge states.
func ValidFridgeStatus(s string) bool {
	switch FridgeStatus(s) {
	case FridgeStatusAvailable, FridgeStatusCheckedOut, FridgeStatusMaintenance:
		return true
	}
	return false
}

// Fridge condition labels. Damaged and Lost only appear as
// condition-at-return values on a checkout, never as a stored condition.
const (
	ConditionGood        = "Good"
	ConditionFair        = "Fair"
	ConditionNeedsRepair = "Needs Repair"
	ConditionDamaged     = "Damaged"
	ConditionLost        = "Lost"
)

// Fridge is a durable lendable asset tracked independently from
// consumable donations.
type Fridge struct {
	ID           int64        `json:"id"`
	FridgeNumber string       `json:"fridgeNumber"`
	Brand        string       `json:"brand,omitempty"`
	Model        string       `json:"model,omitempty"`
	Size         string       `json:"size,omitempty"`
	Condition    string       `json:"condition"`
	Status       FridgeStatus `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// FridgePatch enumerates the optional fields of the administrative field
// patch. Only non-nil fields are written; each is applied through a
// parameterized update.
type FridgePatch struct {
	FridgeNumber *string
	Brand        *string
	Model        *string
	Size         *string
	Condition    *string
	Status       *string
	Notes        *string
}

// IsEmpty reports whether the patch carries no fields.
func (p *FridgePatch) IsEmpty() bool {
	return p.FridgeNumber == nil && p.Brand == nil && p.Model == nil &&
		p.Size == nil && p.Condition == nil && p.Status == nil && p.Notes == nil
}

// InitialFridgeStatus decides the state a new fridge starts in. A fridge
// registered as needing repair goes straight to maintenance.
func InitialFridgeStatus(condition string) FridgeStatus {
	if condition == ConditionNeedsRepair {
		return FridgeStatusMaintenance
	}
	return FridgeStatusAvailable
}

// ReturnTargetStatus maps the condition reported at return to the fridge
// state the return routes to. Only Needs Repair and Damaged route to
// maintenance; everything else, including Lost, lands back in available.
func ReturnTargetStatus(conditionAtReturn string) FridgeStatus {
	switch conditionAtReturn {
	case ConditionNeedsRepair, ConditionDamaged:
		return FridgeStatusMaintenance
	default:
		return FridgeStatusAvailable
	}
}

// StoredConditionAfterReturn maps the condition reported at return to the
// condition recorded on the fridge row. A lost fridge's true condition is
// unknowable, so it is recorded as Needs Repair.
func StoredConditionAfterReturn(conditionAtReturn string) string {
	if conditionAtReturn == ConditionLost {
		return ConditionNeedsRepair
	}
	return conditionAtReturn
}
