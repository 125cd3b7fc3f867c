package order

import "time"

// ScheduleStatus classifies an order against the configured delivery-time
// commitment. Like Status it is derived on every read, never stored.
type ScheduleStatus int

const (
	// ScheduleUnknown represents an undefined schedule status.
	ScheduleUnknown ScheduleStatus = iota

	// OnTime means the order comfortably meets the commitment.
	OnTime

	// InRisk means the order is inside the configured risk window.
	InRisk

	// Late means the commitment is missed.
	Late
)

func getScheduleStatusStrings() map[ScheduleStatus]string {
	return map[ScheduleStatus]string{
		ScheduleUnknown: "Unknown",
		OnTime:          "OnTime",
		InRisk:          "InRisk",
		Late:            "Late",
	}
}

// String returns the human-readable name of the schedule status.
func (s ScheduleStatus) String() string {
	if str, ok := getScheduleStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// DeriveScheduleStatus computes OnTime/InRisk/Late in one of two modes.
//
// Retrospective (deliveredAt set): elapsed = deliveredAt - createdAt;
// OnTime when elapsed <= maxDeliveryTime - riskRange, InRisk when
// elapsed <= maxDeliveryTime, Late otherwise.
//
// Prospective (order still open): remaining = createdAt + maxDeliveryTime - now;
// Late when remaining <= 0, InRisk when remaining <= riskRange, OnTime otherwise.
//
// All boundary thresholds are inclusive in both modes.
func DeriveScheduleStatus(
	createdAt time.Time,
	deliveredAt *time.Time,
	now time.Time,
	maxDeliveryTime time.Duration,
	riskRange time.Duration,
) ScheduleStatus {
	if deliveredAt != nil {
		elapsed := deliveredAt.Sub(createdAt)
		switch {
		case elapsed <= maxDeliveryTime-riskRange:
			return OnTime
		case elapsed <= maxDeliveryTime:
			return InRisk
		default:
			return Late
		}
	}

	remaining := createdAt.Add(maxDeliveryTime).Sub(now)
	switch {
	case remaining <= 0:
		return Late
	case remaining <= riskRange:
		return InRisk
	default:
		return OnTime
	}
}

// ScheduleStatusAt derives the order's schedule status at the given virtual
// time against the configured commitment.
func (o *Order) ScheduleStatusAt(now time.Time, maxDeliveryTime, riskRange time.Duration) ScheduleStatus {
	return DeriveScheduleStatus(o.createdAt, o.deliveredAt, now, maxDeliveryTime, riskRange)
}
