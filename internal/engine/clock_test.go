package engine

import "testing"

func TestNewClockStart(t *testing.T) {
	c := NewClock()
	if c.Hour() != 8 || c.Weekday != 0 || c.ElapsedDays != 0 || c.Speed != 1 {
		t.Fatalf("unexpected start state: %+v", c)
	}
}

func TestAdvanceStepScalesWithSpeed(t *testing.T) {
	c := NewClock()
	c.Speed = 2
	before := c.Minutes
	c.Advance()
	if got := c.Minutes - before; got != 20 {
		t.Fatalf("step = %v minutes, want 20", got)
	}
}

func TestAdvanceCrossesHourAndDay(t *testing.T) {
	c := NewClock()
	c.Minutes = 1435 // Monday 23:55
	c.Speed = 1

	hours, days := c.Advance()
	if hours != 1 || days != 1 {
		t.Fatalf("hours=%d days=%d, want 1 and 1", hours, days)
	}
	if c.Minutes != 5 || c.Weekday != 1 || c.ElapsedDays != 1 {
		t.Fatalf("after rollover: %+v", c)
	}
}

func TestAdvanceMultipleDaysAtHighSpeed(t *testing.T) {
	c := NewClock()
	c.Minutes = 0
	c.Speed = 300 // 3000 minutes per tick

	_, days := c.Advance()
	if days != 2 {
		t.Fatalf("days = %d, want 2", days)
	}
	if c.Minutes != 120 || c.Weekday != 2 {
		t.Fatalf("after two-day jump: %+v", c)
	}
}

func TestSetSpeedRejectsOutOfRange(t *testing.T) {
	c := NewClock()
	if err := c.SetSpeed(1500); err == nil {
		t.Fatal("speed 1500 should be rejected")
	}
	if err := c.SetSpeed(0.05); err == nil {
		t.Fatal("speed 0.05 should be rejected")
	}
	if c.Speed != 1 {
		t.Fatalf("rejected requests must not change speed, got %v", c.Speed)
	}
	if err := c.SetSpeed(10); err != nil {
		t.Fatalf("SetSpeed(10): %v", err)
	}
	if c.Speed != 10 {
		t.Fatalf("Speed = %v, want 10", c.Speed)
	}
}

func TestAbs(t *testing.T) {
	c := &Clock{Minutes: 90, ElapsedDays: 2}
	if got := c.Abs(); got != 2*MinutesPerDay+90 {
		t.Fatalf("Abs = %d", got)
	}
}
