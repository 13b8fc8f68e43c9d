// Revenue distribution: company treasury, owner, and staff shares.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/tiny-town/internal/town"
)

// Revenue split percentages. Shares are floored independently, so a few
// units per transaction can be lost to rounding; that shortfall is accepted
// breakage, not redistributed.
const (
	companySharePct = 10
	ownerSharePct   = 50
	staffSharePct   = 40
)

// Distribute converts one revenue event into shares. With no staff the full
// amount goes to the town treasury.
func (s *Simulation) Distribute(w *town.Workplace, revenue float64) {
	amount := int(math.Floor(revenue))
	if amount <= 0 {
		return
	}

	if !w.HasStaff() {
		s.Town.Treasury += amount
		return
	}

	companyShare := amount * companySharePct / 100
	ownerShare := amount * ownerSharePct / 100
	staffPool := amount * staffSharePct / 100

	w.CompanyTreasury += companyShare
	w.DayRevenue += amount

	owner := s.Index[w.Owner()]
	if len(w.Staff) == 1 {
		// A sole owner takes both the owner and staff shares.
		if owner != nil {
			owner.Earn(ownerShare+staffPool, "work", w.ID)
			w.DayStaffPay += ownerShare + staffPool
		}
		return
	}

	if owner != nil {
		owner.Earn(ownerShare, "work", w.ID)
		w.DayStaffPay += ownerShare
	}
	perStaff := staffPool / (len(w.Staff) - 1)
	for _, id := range w.Staff[1:] {
		if worker := s.Index[id]; worker != nil {
			worker.Earn(perStaff, "work", w.ID)
			w.DayStaffPay += perStaff
		}
	}
}

// tryUpgrade spends company treasury on the next level when it can.
// Insufficient funds is an informational no-op retried next pass.
func (s *Simulation) tryUpgrade(w *town.Workplace) {
	if !w.Built || w.CompanyTreasury < w.UpgradeCost() {
		return
	}
	if w.Upgrade() {
		s.emit(fmt.Sprintf("The %s has been upgraded to level %d", w.Blueprint.Name, w.Level), "economy")
	}
}
