package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/talgya/tiny-town/internal/engine"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "town.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadSlotMissing(t *testing.T) {
	st := testStore(t)
	if st.HasSlot("autosave") {
		t.Fatal("fresh store should have no slots")
	}
	if _, err := st.LoadSlot("autosave"); !errors.Is(err, ErrNoSlot) {
		t.Fatalf("err = %v, want ErrNoSlot", err)
	}
}

func TestSaveAndLoadSlot(t *testing.T) {
	st := testStore(t)
	snap := Capture(testSim())

	if err := st.SaveSlot("autosave", snap); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}
	if !st.HasSlot("autosave") {
		t.Fatal("slot should exist after save")
	}

	loaded, err := st.LoadSlot("autosave")
	if err != nil {
		t.Fatalf("LoadSlot: %v", err)
	}
	if loaded.TownName != "Saveford" || loaded.TownTreasury != 300 {
		t.Fatalf("loaded = %q/%d", loaded.TownName, loaded.TownTreasury)
	}
	if len(loaded.Residents) != 1 || loaded.Residents[0].Name != "Ada Bramble" {
		t.Fatalf("residents = %+v", loaded.Residents)
	}
}

func TestSaveSlotReplaces(t *testing.T) {
	st := testStore(t)
	sim := testSim()

	if err := st.SaveSlot("autosave", Capture(sim)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	sim.Town.Treasury = 999
	if err := st.SaveSlot("autosave", Capture(sim)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := st.LoadSlot("autosave")
	if err != nil {
		t.Fatalf("LoadSlot: %v", err)
	}
	if loaded.TownTreasury != 999 {
		t.Fatalf("treasury = %d, want the newer save", loaded.TownTreasury)
	}
}

func TestEventHistoryFlushedWithSave(t *testing.T) {
	st := testStore(t)

	st.Emit(engine.Event{ID: "a", SimTime: "t1", Message: "first", Category: "social"})
	st.Emit(engine.Event{ID: "b", SimTime: "t2", Message: "second", Category: "work"})

	// Nothing persisted until a save flushes the buffer.
	if events, err := st.EventHistory(10); err != nil || len(events) != 0 {
		t.Fatalf("pre-flush history = %d events, err %v", len(events), err)
	}

	if err := st.SaveSlot("autosave", Capture(testSim())); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}

	events, err := st.EventHistory(10)
	if err != nil {
		t.Fatalf("EventHistory: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("history = %d events, want 2", len(events))
	}
	if events[0].Message != "first" || events[1].Message != "second" {
		t.Fatalf("history order wrong: %+v", events)
	}

	// The buffer does not replay on the next save.
	if err := st.SaveSlot("autosave", Capture(testSim())); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if events, _ := st.EventHistory(10); len(events) != 2 {
		t.Fatalf("events replayed: %d", len(events))
	}
}

func TestMetaRoundTrip(t *testing.T) {
	st := testStore(t)

	if v, err := st.GetMeta("schema"); err != nil || v != "" {
		t.Fatalf("missing key = %q, err %v", v, err)
	}

	if err := st.SaveMeta("schema", "1"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := st.SaveMeta("schema", "2"); err != nil {
		t.Fatalf("SaveMeta replace: %v", err)
	}
	v, err := st.GetMeta("schema")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if v != "2" {
		t.Fatalf("value = %q, want 2", v)
	}
}

func TestSaveSlotRecordsMeta(t *testing.T) {
	st := testStore(t)
	if err := st.SaveSlot("evening", Capture(testSim())); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}

	slot, err := st.GetMeta("last_saved_slot")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if slot != "evening" {
		t.Fatalf("last_saved_slot = %q", slot)
	}
	if at, _ := st.GetMeta("last_saved_at"); at == "" {
		t.Fatal("last_saved_at should be recorded")
	}
}

func TestEventHistoryLimit(t *testing.T) {
	st := testStore(t)
	for i := 0; i < 5; i++ {
		st.Emit(engine.Event{ID: "x", SimTime: "t", Message: "m", Category: "system"})
	}
	if err := st.SaveSlot("autosave", Capture(testSim())); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}
	events, err := st.EventHistory(3)
	if err != nil {
		t.Fatalf("EventHistory: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("limit ignored: %d events", len(events))
	}
}
