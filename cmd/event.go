package cmd

import (
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/spf13/cobra"
)

// domainEventTypes are the events the services publish.
var domainEventTypes = []string{
	events.EventTypeUserRegistered,
	events.EventTypeAttendanceMarked,
}

// newEventBus builds the in-process bus with the log subscriber attached to
// every domain event. Publish is synchronous.
func newEventBus(lg *slog.Logger) *events.EventBus {
	bus := events.NewEventBus(lg)
	for _, t := range domainEventTypes {
		bus.Subscribe(t, events.LogHandler(lg))
	}
	return bus
}

var eventCmd = &cobra.Command{
	Use:   "events",
	Short: "List domain events and their subscribers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		bus := newEventBus(slog.Default())
		for _, t := range domainEventTypes {
			cmd.Printf("%-20s handlers=%d\n", t, bus.HandlerCount(t))
		}
		return nil
	},
}
