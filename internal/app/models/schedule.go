package models

import (
	"math"
	"slices"
	"time"
)

// RelativeStart places an event relative to the current day
type RelativeStart struct {
	DaysFromNow    int
	HoursFromStart float64
}

// At resolves the start to local midnight of now+DaysFromNow plus HoursFromStart
func (rs RelativeStart) At(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+rs.DaysFromNow, 0, 0, 0, 0, now.Location())
	return midnight.Add(hoursToDuration(rs.HoursFromStart))
}

// RelativeStartFrom converts an absolute time back to offsets from now
func RelativeStartFrom(now, t time.Time) RelativeStart {
	days := int(math.Floor(t.Sub(now).Hours() / 24))
	return RelativeStart{
		DaysFromNow:    days,
		HoursFromStart: float64(t.Hour()) + float64(t.Minute())/60,
	}
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func containsID(ids []string, id string) bool {
	return slices.Contains(ids, id)
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	return slices.Clone(ids)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
