package models

import (
	"testing"
	"time"
)

func TestInitialFridgeStatus(t *testing.T) {
	if got := InitialFridgeStatus(ConditionNeedsRepair); got != FridgeStatusMaintenance {
		t.Errorf("InitialFridgeStatus(Needs Repair) = %q, want maintenance", got)
	}
	if got := InitialFridgeStatus(ConditionGood); got != FridgeStatusAvailable {
		t.Errorf("InitialFridgeStatus(Good) = %q, want available", got)
	}
	if got := InitialFridgeStatus(""); got != FridgeStatusAvailable {
		t.Errorf("InitialFridgeStatus(empty) = %q, want available", got)
	}
}

func TestReturnTargetStatus(t *testing.T) {
	tests := []struct {
		condition string
		want      FridgeStatus
	}{
		{ConditionGood, FridgeStatusAvailable},
		{ConditionFair, FridgeStatusAvailable},
		{ConditionNeedsRepair, FridgeStatusMaintenance},
		{ConditionDamaged, FridgeStatusMaintenance},
		// Lost falls through to available; the routing rule only inspects
		// Needs Repair and Damaged.
		{ConditionLost, FridgeStatusAvailable},
	}
	for _, tt := range tests {
		if got := ReturnTargetStatus(tt.condition); got != tt.want {
			t.Errorf("ReturnTargetStatus(%q) = %q, want %q", tt.condition, got, tt.want)
		}
	}
}

func TestStoredConditionAfterReturn(t *testing.T) {
	if got := StoredConditionAfterReturn(ConditionLost); got != ConditionNeedsRepair {
		t.Errorf("StoredConditionAfterReturn(Lost) = %q, want Needs Repair", got)
	}
	if got := StoredConditionAfterReturn(ConditionFair); got != ConditionFair {
		t.Errorf("StoredConditionAfterReturn(Fair) = %q, want Fair", got)
	}
}

func TestFridgeCheckoutIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	midnightToday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkout FridgeCheckout
		want     bool
	}{
		{"active past due", FridgeCheckout{Status: FridgeCheckoutActive, ExpectedReturnDate: &yesterday}, true},
		{"active due tomorrow", FridgeCheckout{Status: FridgeCheckoutActive, ExpectedReturnDate: &tomorrow}, false},
		{"due today is not overdue", FridgeCheckout{Status: FridgeCheckoutActive, ExpectedReturnDate: &midnightToday}, false},
		{"returned past due", FridgeCheckout{Status: FridgeCheckoutReturned, ExpectedReturnDate: &yesterday}, false},
		{"no expected date", FridgeCheckout{Status: FridgeCheckoutActive}, false},
	}
	for _, tt := range tests {
		if got := tt.checkout.IsOverdue(now); got != tt.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tt.name, got, tt.want)
		}
	}
}
