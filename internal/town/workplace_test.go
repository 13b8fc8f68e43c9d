package town

import (
	"testing"

	"github.com/talgya/tiny-town/internal/catalog"
	"github.com/talgya/tiny-town/internal/resident"
)

func testWorkplace(id string) *Workplace {
	bp := catalog.Default().Blueprint(id)
	return &Workplace{ID: 1, BlueprintID: id, Blueprint: bp}
}

func TestIsOpenAtDaytimeWindow(t *testing.T) {
	w := testWorkplace("bakery") // 6-18, closed Sunday (weekday 6)
	w.Built = true
	w.Staff = []resident.ID{1}

	cases := []struct {
		hour, weekday int
		want          bool
	}{
		{6, 0, true},
		{17, 0, true},
		{18, 0, false},
		{5, 0, false},
		{10, 6, false}, // Closed day
	}
	for _, c := range cases {
		if got := w.IsOpenAt(c.hour, c.weekday); got != c.want {
			t.Fatalf("IsOpenAt(%d, %d) = %v, want %v", c.hour, c.weekday, got, c.want)
		}
	}
}

func TestIsOpenAtWrapsMidnight(t *testing.T) {
	w := testWorkplace("tavern") // 16-2
	w.Built = true
	w.Staff = []resident.ID{1}

	for hour, want := range map[int]bool{16: true, 23: true, 0: true, 1: true, 2: false, 12: false} {
		if got := w.IsOpenAt(hour, 2); got != want {
			t.Fatalf("IsOpenAt(%d) = %v, want %v", hour, got, want)
		}
	}
}

func TestIsOpenAtRequiresBuildAndStaff(t *testing.T) {
	w := testWorkplace("bakery")
	if w.IsOpenAt(10, 0) {
		t.Fatal("unbuilt workplace should be closed")
	}
	w.Built = true
	if w.IsOpenAt(10, 0) {
		t.Fatal("a workplace with roles but no staff should be closed")
	}
}

func TestAlwaysOpen(t *testing.T) {
	w := testWorkplace("clinic") // 0-0
	w.Built = true
	w.Staff = []resident.ID{1}
	if !w.AlwaysOpen() {
		t.Fatal("clinic should be always-open")
	}
	if !w.IsOpenAt(3, 4) {
		t.Fatal("always-open venue should operate at 03:00")
	}
}

func TestContributeCompletes(t *testing.T) {
	w := testWorkplace("bakery") // Total cost 500
	for i := 1; i <= 33; i++ {
		if w.Contribute(15) {
			t.Fatalf("completed after %d contributions, want 34", i)
		}
	}
	if !w.Contribute(15) {
		t.Fatal("34th contribution should complete the build")
	}
	if !w.Built {
		t.Fatal("Built flag should be set")
	}
	// Further contributions are no-ops.
	if w.Contribute(15) {
		t.Fatal("contributing to a built workplace should do nothing")
	}
	if w.Progress != 34*15 {
		t.Fatalf("Progress = %d, want %d", w.Progress, 34*15)
	}
}

func TestRollDayBoundsHistories(t *testing.T) {
	w := testWorkplace("bakery")
	for day := 0; day < HistoryCap+5; day++ {
		w.DayRevenue = day
		w.DayStaffPay = day * 2
		w.RollDay()
	}
	if len(w.RevenueHistory) != HistoryCap {
		t.Fatalf("revenue history len = %d, want %d", len(w.RevenueHistory), HistoryCap)
	}
	if last := w.RevenueHistory[HistoryCap-1]; last != HistoryCap+4 {
		t.Fatalf("newest entry = %d, want %d", last, HistoryCap+4)
	}
	if w.DayRevenue != 0 || w.DayStaffPay != 0 {
		t.Fatal("accumulators should reset at rollover")
	}
}

func TestUpgrade(t *testing.T) {
	w := testWorkplace("bakery")
	if got := w.UpgradeCost(); got != 200 {
		t.Fatalf("level-0 upgrade cost = %d, want 200", got)
	}
	w.CompanyTreasury = 199
	if w.Upgrade() {
		t.Fatal("upgrade should fail short of the cost")
	}
	w.CompanyTreasury = 250
	if !w.Upgrade() {
		t.Fatal("upgrade should succeed")
	}
	if w.Level != 1 || w.CompanyTreasury != 50 {
		t.Fatalf("level %d treasury %d, want 1 and 50", w.Level, w.CompanyTreasury)
	}
	if got := w.BaseWage(); got != 15 {
		t.Fatalf("BaseWage = %d, want 15", got)
	}
}

func TestRemoveStaffPreservesOrder(t *testing.T) {
	w := testWorkplace("tavern")
	w.Staff = []resident.ID{1, 2, 3}
	w.RemoveStaff(2)
	if len(w.Staff) != 2 || w.Staff[0] != 1 || w.Staff[1] != 3 {
		t.Fatalf("Staff = %v, want [1 3]", w.Staff)
	}
	if w.Owner() != 1 {
		t.Fatalf("Owner = %d, want 1", w.Owner())
	}
	if w.NextRole() != "musician" {
		t.Fatalf("NextRole = %q, want musician", w.NextRole())
	}
}
