// Package expiry implements the status-and-notification engine behind
// SmartExpiry: a recurring pipeline that recomputes each item's expiry
// state, emits exactly one warning notification per item per
// approach-to-expiry window, and retires old acknowledged notifications.
//
// The pipeline is designed to be safely repeatable. Concurrent runs from
// the hourly schedule, the daily schedule, and manual triggers may overlap;
// the per-item NotificationSent latch and transition-only status writes
// keep repeated work harmless.
package expiry
