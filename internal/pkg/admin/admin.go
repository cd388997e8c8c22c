// Package admin drives the reservation pages: it loads reservations into the
// calendar or list, and submits or cancels reservations from the form, telling
// the user how each attempt went.
package admin

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/adiazny/fablab-reserves/internal/pkg/api"
	"github.com/adiazny/fablab-reserves/internal/pkg/calendar"
	"github.com/adiazny/fablab-reserves/internal/pkg/notify"
	"github.com/adiazny/fablab-reserves/internal/pkg/reserva"
)

const (
	LoadErrorMessage = "Error loading reservations"
	CreatedMessage   = "Reservation created successfully"
	CancelledMessage = "Reservation cancelled successfully"
)

// ReservationAPI is implemented by *api.Client.
type ReservationAPI interface {
	ListReservations(ctx context.Context, filter api.Filter) ([]reserva.Reservation, error)
	CreateReservation(ctx context.Context, request reserva.Request) (reserva.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// ListSink shows the reservation list of the booking form.
type ListSink interface {
	RenderList(lines []string) error
}

type Controller struct {
	Log      *logrus.Entry
	API      ReservationAPI
	Notifier notify.Notifier
	List     ListSink
	Filter   api.Filter

	// ShowDetails wires the tooltip and double-click detail hooks into the calendar.
	ShowDetails bool

	mu       sync.Mutex
	issued   uint64
	rendered uint64
}

// FetchReservations never fails: on any error it notifies the user once and
// returns an empty list.
func (c *Controller) FetchReservations(ctx context.Context) []reserva.ViewModel {
	reservations, ok := c.load(ctx)
	if !ok {
		return make([]reserva.ViewModel, 0)
	}

	return reserva.ToViewModels(reservations)
}

// LoadCalendar fetches reservations and hands them to the calendar as its event set.
func (c *Controller) LoadCalendar(ctx context.Context, cal calendar.Calendar) error {
	events := c.FetchReservations(ctx)

	return cal.Render(events, calendar.NewHooks(c.ShowDetails))
}

// Refresh reloads the list. A refresh that resolves after a newer one has
// already been rendered is discarded.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	reservations, ok := c.load(ctx)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.rendered {
		c.logger().WithField("refresh", seq).Debug("discarding stale reservation list")
		return
	}
	c.rendered = seq

	if c.List == nil {
		return
	}

	lines := make([]string, 0, len(reservations))
	for _, r := range reservations {
		lines = append(lines, reserva.ListLine(r))
	}

	if err := c.List.RenderList(lines); err != nil {
		c.logger().WithError(err).Error("error rendering reservation list")
	}
}

// CreateReservation submits the form fields. The error is returned after the
// user has already been told about it.
func (c *Controller) CreateReservation(ctx context.Context, request reserva.Request) error {
	created, err := c.API.CreateReservation(ctx, request)
	if err != nil {
		c.logger().WithError(err).WithField("servei", request.Servei).Warn("reservation rejected")
		c.notify(ctx, notify.Error(reserva.ErrorMessage(err)))
		return err
	}

	c.logger().WithFields(logrus.Fields{
		"id":     created.ID,
		"servei": created.Servei,
		"data":   created.Data,
	}).Info("reservation created")

	c.notify(ctx, notify.Success(CreatedMessage))
	c.Refresh(ctx)

	return nil
}

// CancelReservation deletes a reservation and reloads the list.
func (c *Controller) CancelReservation(ctx context.Context, id string) error {
	err := c.API.DeleteReservation(ctx, id)
	if err != nil {
		c.logger().WithError(err).WithField("id", id).Warn("reservation not cancelled")
		c.notify(ctx, notify.Error(reserva.ErrorMessage(err)))
		return err
	}

	c.logger().WithField("id", id).Info("reservation cancelled")

	c.notify(ctx, notify.Success(CancelledMessage))
	c.Refresh(ctx)

	return nil
}

func (c *Controller) load(ctx context.Context) ([]reserva.Reservation, bool) {
	reservations, err := c.API.ListReservations(ctx, c.Filter)
	if err != nil {
		c.logger().WithError(err).Error("error loading reservations")
		c.notify(ctx, notify.Error(LoadErrorMessage))
		return nil, false
	}

	return reservations, true
}

func (c *Controller) notify(ctx context.Context, n notify.Notification) {
	if err := c.Notifier.Notify(ctx, n); err != nil {
		c.logger().WithError(err).Error("error delivering notification")
	}
}

func (c *Controller) logger() *logrus.Entry {
	if c.Log != nil {
		return c.Log
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logrus.NewEntry(logger)
}
