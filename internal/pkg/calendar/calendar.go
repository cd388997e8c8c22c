// Package calendar is the boundary with the calendar widget that displays
// reservations. The widget receives view models as its event set and calls
// back into Hooks on pointer hover and double click.
package calendar

import (
	"fmt"
	"time"

	"github.com/adiazny/fablab-reserves/internal/pkg/reserva"
)

const (
	tooltipOffset = 10

	clockLayout    = "15:04"
	dateTimeLayout = "02/01/2006 15:04:05"
)

var eventLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Calendar displays a set of reservation events.
type Calendar interface {
	Render(events []reserva.ViewModel, hooks Hooks) error
}

type Point struct {
	X int
	Y int
}

// Tooltip is a floating box shown while the pointer is over an event.
type Tooltip struct {
	Text string
	X    int
	Y    int
}

// Hooks are the callbacks the widget invokes. Nil hooks are not wired.
type Hooks struct {
	OnHover       func(event reserva.ViewModel, pointer Point) Tooltip
	OnDoubleClick func(event reserva.ViewModel) string
}

// NewHooks returns tooltip and detail hooks, or no hooks at all when details are disabled.
func NewHooks(showDetails bool) Hooks {
	if !showDetails {
		return Hooks{}
	}

	return Hooks{
		OnHover: func(event reserva.ViewModel, pointer Point) Tooltip {
			return Tooltip{
				Text: TooltipText(event),
				X:    pointer.X + tooltipOffset,
				Y:    pointer.Y + tooltipOffset,
			}
		},
		OnDoubleClick: DetailsText,
	}
}

func TooltipText(event reserva.ViewModel) string {
	return fmt.Sprintf("%s\n🕒 %s – %s", event.Title, format(event.Start, clockLayout), format(event.End, clockLayout))
}

func DetailsText(event reserva.ViewModel) string {
	return fmt.Sprintf("Servei i usuari: %s\nInici: %s\nFi: %s",
		event.Title,
		format(event.Start, dateTimeLayout),
		format(event.End, dateTimeLayout),
	)
}

// ParseEventTime parses a view model start or end.
func ParseEventTime(value string) (time.Time, error) {
	var err error

	for _, layout := range eventLayouts {
		var t time.Time

		t, err = time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("error parsing event time %q: %w", value, err)
}

// format falls back to the raw value when the server sent a time the widget cannot parse.
func format(value, layout string) string {
	t, err := ParseEventTime(value)
	if err != nil {
		return value
	}

	return t.Format(layout)
}
