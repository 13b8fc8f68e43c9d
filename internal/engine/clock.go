// Package engine provides the tick-based simulation core: the clock and
// scheduler, the per-resident decision state machine, the economy, elections,
// romance, and population dynamics.
package engine

import (
	"fmt"
)

// BaseStepMinutes is the simulated time added per tick at speed 1.
const BaseStepMinutes = 10

// MinutesPerDay is one simulated day.
const MinutesPerDay = 1440

// Speed multiplier bounds. Requests outside are rejected with no state change.
const (
	MinSpeed = 0.1
	MaxSpeed = 1000.0
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Clock tracks simulated time: minute-of-day, weekday, and elapsed days.
type Clock struct {
	Minutes     float64 `json:"minutes"` // Minute of day, [0, 1440)
	Weekday     int     `json:"weekday"` // 0=Monday
	ElapsedDays uint64  `json:"elapsed_days"`
	Speed       float64 `json:"speed"`
}

// NewClock starts a clock at Monday 08:00, speed 1.
func NewClock() *Clock {
	return &Clock{Minutes: 8 * 60, Speed: 1}
}

// SetSpeed updates the multiplier, rejecting out-of-range values.
func (c *Clock) SetSpeed(speed float64) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("speed %.1f out of range [%.1f, %.1f]", speed, MinSpeed, MaxSpeed)
	}
	c.Speed = speed
	return nil
}

// Advance moves the clock forward one tick and reports how many hour
// boundaries and day boundaries were crossed.
func (c *Clock) Advance() (hoursCrossed, daysCrossed int) {
	step := BaseStepMinutes * c.Speed
	before := c.Minutes
	c.Minutes += step

	hoursCrossed = int(c.Minutes/60) - int(before/60)

	for c.Minutes >= MinutesPerDay {
		c.Minutes -= MinutesPerDay
		c.Weekday = (c.Weekday + 1) % 7
		c.ElapsedDays++
		daysCrossed++
	}
	return hoursCrossed, daysCrossed
}

// Hour returns the current hour of day.
func (c *Clock) Hour() int { return int(c.Minutes) / 60 }

// Abs returns the absolute simulated minute since the town began.
// Cooldowns and due times compare against this.
func (c *Clock) Abs() uint64 {
	return c.ElapsedDays*MinutesPerDay + uint64(c.Minutes)
}

// String renders the simulated time for log lines.
func (c *Clock) String() string {
	m := int(c.Minutes)
	return fmt.Sprintf("%s %02d:%02d (day %d)", weekdayNames[c.Weekday], m/60, m%60, c.ElapsedDays+1)
}
