// Package quota holds the daily usage rules: reset on a new calendar day,
// free plans capped per day, pro plans unbounded
package quota

import (
	"time"
)

// DefaultFreeDailyLimit is the free plan's detections per day
const DefaultFreeDailyLimit = 5

// Plan is an account tier
type Plan string

// Plans
const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Valid reports whether p is a known plan
func (p Plan) Valid() bool { return p == PlanFree || p == PlanPro }

// Date is a calendar date rendered YYYY-MM-DD
type Date string

// DateOf is the calendar date of t in loc
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date(t.In(loc).Format(time.DateOnly))
}

// Time parses d as midnight UTC, the form a SQL date column takes
func (d Date) Time() (time.Time, error) { return time.Parse(time.DateOnly, string(d)) }

// Usage is the quota relevant part of an account
// Count only means something relative to ResetDate
type Usage struct {
	Plan      Plan `json:"plan"`
	Count     int  `json:"usageCount"`
	ResetDate Date `json:"lastResetDate"`
}

// Policy carries the limits; the free limit is read from here and nowhere else
type Policy struct {
	FreeDailyLimit int
}

// DefaultPolicy is the production policy
func DefaultPolicy() Policy { return Policy{FreeDailyLimit: DefaultFreeDailyLimit} }

// CheckAndReset zeroes a count left over from an earlier day
// The bool reports whether the reset must be persisted
func CheckAndReset(u Usage, today Date) (Usage, bool) {
	if u.ResetDate == today {
		return u, false
	}
	u.Count = 0
	u.ResetDate = today
	return u, true
}

// IsAllowed reports whether one more detection fits today
// u must already have gone through CheckAndReset
func (p Policy) IsAllowed(u Usage) bool {
	if u.Plan == PlanPro {
		return true
	}
	return u.Count < p.FreeDailyLimit
}

// Remaining is what is left today, -1 for unlimited
func (p Policy) Remaining(u Usage) int {
	if u.Plan == PlanPro {
		return -1
	}
	return max(0, p.FreeDailyLimit-u.Count)
}

// Limit is the daily cap for plan, -1 for unlimited
func (p Policy) Limit(plan Plan) int {
	if plan == PlanPro {
		return -1
	}
	return p.FreeDailyLimit
}

// Calendar says what day it is in the quota's time zone
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar uses loc (UTC when nil) and now (time.Now when nil)
func NewCalendar(loc *time.Location, now func() time.Time) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return Calendar{loc: loc, now: now}
}

// Today is the current date
func (c Calendar) Today() Date { return DateOf(c.now(), c.loc) }

// Now is the current instant
func (c Calendar) Now() time.Time { return c.now() }

// NextReset is the start of the next day in the calendar's zone
func (c Calendar) NextReset() time.Time {
	t := c.now().In(c.loc)
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, c.loc)
}
