package delivery

import (
	"fmt"
	"time"

	"github.com/arkodas/banglamart-backend/pkg/db/models"
)

// longDateLayout renders dates the way the storefront shows them, e.g. "July 2, 2025".
const longDateLayout = "January 2, 2006"

// Window is the shopper-facing delivery estimate for a resolved day range.
type Window struct {
	TextMinDays  int
	TextMaxDays  int
	DayRangeText string
	MinDate      time.Time
	MaxDate      time.Time
}

// ComputeWindow turns a tier's day range plus today into the adjusted estimate.
//
// Weekend starts widen both bounds by the configured extra days. The holiday
// adjustment is flat: when enabled it applies on every date, without checking
// the holiday registry. Date addition is plain calendar days; weekends inside
// the window are not skipped. Pure and deterministic for a fixed today.
func ComputeWindow(minDays, maxDays int, today time.Time, settings models.DeliverySetting) Window {
	textMin := minDays
	textMax := maxDays

	if settings.EnableWeekendAdjustment {
		switch today.Weekday() {
		case time.Saturday, time.Sunday:
			textMin += settings.WeekendExtraDays
			textMax += settings.WeekendExtraDays
		}
	}

	if settings.EnableHolidayAdjustment {
		textMin += settings.HolidayExtraDays
		textMax += settings.HolidayExtraDays
	}

	return Window{
		TextMinDays:  textMin,
		TextMaxDays:  textMax,
		DayRangeText: fmt.Sprintf("%d-%d days", textMin, textMax),
		MinDate:      today.AddDate(0, 0, textMin),
		MaxDate:      today.AddDate(0, 0, textMax),
	}
}

// FormatLongDate renders a delivery date in the storefront's long form.
func FormatLongDate(t time.Time) string {
	return t.Format(longDateLayout)
}

// TierLabel is the short per-tier message cached with a shopper's location,
// e.g. "2-3 Day".
func TierLabel(tier models.DeliveryTier) string {
	return fmt.Sprintf("%d-%d Day", tier.MinDays, tier.MaxDays)
}
