package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lossdesk/models"
	"lossdesk/notifier"
	"lossdesk/pkg/derive"
	"lossdesk/store"
)

// renderNotification builds the chat message for a freshly stored report. It
// reuses the derivation rules, so the duration and restaurant split in the
// message always agree with what storage and export show.
func renderNotification(r models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New loss report #%d\n", r.ID)
	code, name := derive.SplitRestaurant(r.Restaurant)
	if code != "" {
		fmt.Fprintf(&b, "Restaurant: %s (%s)\n", name, code)
	} else {
		fmt.Fprintf(&b, "Restaurant: %s\n", name)
	}
	fmt.Fprintf(&b, "Manager: %s\n", r.Manager)
	fmt.Fprintf(&b, "Reason: %s\n", r.Reason)
	fmt.Fprintf(&b, "Amount: %d\n", r.Amount)
	if h, ok := derive.DurationHours(r.StartsAt, r.EndsAt); ok {
		fmt.Fprintf(&b, "Window: %s - %s (%.2f h)\n", r.StartsAt, r.EndsAt, h)
	}
	if r.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", r.Comment)
	}
	return strings.TrimRight(b.String(), "\n")
}

// insertHook dispatches the notification off the write path. The store calls
// it only for genuine new insertions, so a retried submission notifies at
// most once. Failures are logged and swallowed; Create never waits on or
// fails because of delivery.
func insertHook(n notifier.Notifier, log *logrus.Logger) store.InsertHook {
	if n == nil {
		return nil
	}
	return func(r models.Report) {
		text := renderNotification(r)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := n.Notify(ctx, text); err != nil {
				log.WithError(err).WithField("report_id", r.ID).Warn("notification delivery failed")
			}
		}()
	}
}
