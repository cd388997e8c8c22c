package calendar

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/adiazny/fablab-reserves/internal/pkg/reserva"
)

// TextCalendar prints events grouped by day, for terminals. A terminal has no
// pointer, so OnHover is never called. With Details set, the OnDoubleClick text
// of every event is printed under it, as if each one had been opened.
type TextCalendar struct {
	Out     io.Writer
	Details bool
}

func (c *TextCalendar) Render(events []reserva.ViewModel, hooks Hooks) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(c.Out, "No reservations")
		return err
	}

	sorted := make([]reserva.ViewModel, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	b := &strings.Builder{}
	day := ""

	for _, event := range sorted {
		eventDay, _, _ := strings.Cut(event.Start, "T")
		if eventDay != day {
			day = eventDay
			fmt.Fprintf(b, "%s\n", day)
		}

		fmt.Fprintf(b, "  %s – %s  %s\n", format(event.Start, clockLayout), format(event.End, clockLayout), event.Title)

		if c.Details && hooks.OnDoubleClick != nil {
			for _, line := range strings.Split(hooks.OnDoubleClick(event), "\n") {
				fmt.Fprintf(b, "      %s\n", line)
			}
		}
	}

	_, err := io.WriteString(c.Out, b.String())
	if err != nil {
		return fmt.Errorf("error writing calendar %w", err)
	}

	return nil
}
