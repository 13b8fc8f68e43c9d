// Package town provides the workplace model and the town aggregate.
package town

import (
	"github.com/talgya/tiny-town/internal/catalog"
	"github.com/talgya/tiny-town/internal/resident"
)

// HistoryCap bounds the per-day revenue and staff-income histories.
const HistoryCap = 30

// Workplace is one building instantiated from a blueprint.
type Workplace struct {
	ID          uint64 `json:"id"`
	BlueprintID string `json:"blueprint_id"`

	// Resolved static definition. Never serialized; re-linked by id on load.
	Blueprint *catalog.Blueprint `json:"-"`

	// Build state
	Progress int  `json:"progress"` // Accumulated construction progress
	Built    bool `json:"built"`

	// Operating state
	Staff           []resident.ID `json:"staff"` // Index 0 is the owner/manager
	RevenueHistory  []int         `json:"revenue_history"`      // Last 30 days
	StaffPayHistory []int         `json:"staff_pay_history"`    // Last 30 days
	CompanyTreasury int           `json:"company_treasury"`
	Level           int           `json:"level"`

	// Per-day accumulators, snapshotted into the histories at day rollover.
	DayRevenue  int `json:"day_revenue"`
	DayStaffPay int `json:"day_staff_pay"`
}

// BaseWage is the wage signal derived from the upgrade level, consulted by
// the job-satisfaction update.
func (w *Workplace) BaseWage() int {
	return 10 + 5*w.Level
}

// Owner returns the owner/manager ID, or 0 when unstaffed.
func (w *Workplace) Owner() resident.ID {
	if len(w.Staff) == 0 {
		return 0
	}
	return w.Staff[0]
}

// HasStaff reports whether anyone works here.
func (w *Workplace) HasStaff() bool { return len(w.Staff) > 0 }

// Understaffed reports whether open roles remain.
func (w *Workplace) Understaffed() bool {
	return w.Blueprint != nil && len(w.Staff) < len(w.Blueprint.Roles)
}

// NextRole returns the role name for the next open slot.
func (w *Workplace) NextRole() string {
	if w.Blueprint == nil || len(w.Staff) >= len(w.Blueprint.Roles) {
		return ""
	}
	return w.Blueprint.Roles[len(w.Staff)]
}

// AlwaysOpen reports a 24-hour operating window.
func (w *Workplace) AlwaysOpen() bool {
	return w.Blueprint != nil && w.Blueprint.OpenHour == w.Blueprint.CloseHour
}

// IsOpenAt reports whether the workplace is operating at the given hour and
// weekday. A workplace with roles defined is never open without staff.
func (w *Workplace) IsOpenAt(hour, weekday int) bool {
	if !w.Built || w.Blueprint == nil {
		return false
	}
	if len(w.Blueprint.Roles) > 0 && len(w.Staff) == 0 {
		return false
	}
	for _, d := range w.Blueprint.ClosedDays {
		if d == weekday {
			return false
		}
	}
	if w.AlwaysOpen() {
		return true
	}
	open, close := w.Blueprint.OpenHour, w.Blueprint.CloseHour
	if open < close {
		return hour >= open && hour < close
	}
	// Window wraps midnight.
	return hour >= open || hour < close
}

// Employs reports whether the resident is on staff.
func (w *Workplace) Employs(id resident.ID) bool {
	for _, s := range w.Staff {
		if s == id {
			return true
		}
	}
	return false
}

// RemoveStaff strips a resident from the roster, preserving order.
func (w *Workplace) RemoveStaff(id resident.ID) {
	for i, s := range w.Staff {
		if s == id {
			w.Staff = append(w.Staff[:i], w.Staff[i+1:]...)
			return
		}
	}
}

// Contribute adds construction progress and reports whether this
// contribution completed the build.
func (w *Workplace) Contribute(amount int) bool {
	if w.Built {
		return false
	}
	w.Progress += amount
	if w.Progress >= w.Blueprint.TotalCost {
		w.Built = true
		return true
	}
	return false
}

// RollDay snapshots the day's accumulators into the bounded histories.
func (w *Workplace) RollDay() {
	w.RevenueHistory = appendCapped(w.RevenueHistory, w.DayRevenue)
	w.StaffPayHistory = appendCapped(w.StaffPayHistory, w.DayStaffPay)
	w.DayRevenue = 0
	w.DayStaffPay = 0
}

// UpgradeCost is the company-treasury price of the next level.
func (w *Workplace) UpgradeCost() int {
	return 200 * (w.Level + 1)
}

// Upgrade spends company treasury on a level-up. Returns false when the
// treasury cannot cover it; that is a no-op, not an error.
func (w *Workplace) Upgrade() bool {
	cost := w.UpgradeCost()
	if w.CompanyTreasury < cost {
		return false
	}
	w.CompanyTreasury -= cost
	w.Level++
	return true
}

func appendCapped(hist []int, v int) []int {
	hist = append(hist, v)
	if len(hist) > HistoryCap {
		hist = hist[len(hist)-HistoryCap:]
	}
	return hist
}
