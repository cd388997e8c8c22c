package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	cfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"

	"github.com/adiazny/fablab-reserves/internal/pkg/admin"
	"github.com/adiazny/fablab-reserves/internal/pkg/api"
	"github.com/adiazny/fablab-reserves/internal/pkg/calendar"
	"github.com/adiazny/fablab-reserves/internal/pkg/config"
	"github.com/adiazny/fablab-reserves/internal/pkg/notify"
	"github.com/adiazny/fablab-reserves/internal/pkg/reserva"
)

const (
	actionList   = "list"
	actionCreate = "create"
	actionCancel = "cancel"
)

// Request is the Lambda event sent by the admin pages.
type Request struct {
	Action      string          `json:"action"`
	Reservation reserva.Request `json:"reservation"`
	ID          string          `json:"id"`
	Servei      string          `json:"servei"`
	Data        string          `json:"data"`
}

type Response struct {
	Events  []reserva.ViewModel `json:"events,omitempty"`
	Lines   []string            `json:"lines,omitempty"`
	// Level and Message are the outcome of the requested action. A failed
	// refresh after a create or cancel is only reported in Notifications.
	Level         notify.Level          `json:"level,omitempty"`
	Message       string                `json:"message,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`

	// ShowDetails tells the page whether to wire the tooltip and detail popup.
	ShowDetails bool `json:"show_details"`
}

// responseSink collects what the controller shows so it can be returned to the page.
type responseSink struct {
	resp *Response
}

func (s *responseSink) Notify(_ context.Context, n notify.Notification) error {
	s.resp.Notifications = append(s.resp.Notifications, n)

	if len(s.resp.Notifications) == 1 {
		s.resp.Level = n.Level
		s.resp.Message = n.Message
	}

	return nil
}

func (s *responseSink) RenderList(lines []string) error {
	s.resp.Lines = lines
	return nil
}

func (s *responseSink) Render(events []reserva.ViewModel, hooks calendar.Hooks) error {
	s.resp.Events = events
	s.resp.ShowDetails = hooks.OnHover != nil
	return nil
}

type handler struct {
	log      *logrus.Entry
	config   *config.Config
	api      admin.ReservationAPI
	notifier notify.Notifier
}

func (h *handler) handle(ctx context.Context, req Request) (Response, error) {
	log := h.log.WithField("action", req.Action)

	resp := Response{}
	sink := &responseSink{resp: &resp}

	controller := &admin.Controller{
		Log:         log,
		API:         h.api,
		Notifier:    notify.Multi{sink, h.notifier},
		List:        sink,
		Filter:      api.Filter{Servei: req.Servei, Data: req.Data},
		ShowDetails: h.config.ShowEventDetails,
	}

	switch req.Action {
	case "", actionList:
		err := controller.LoadCalendar(ctx, sink)
		return resp, err
	case actionCreate:
		_ = controller.CreateReservation(ctx, req.Reservation)
		return resp, nil
	case actionCancel:
		_ = controller.CancelReservation(ctx, req.ID)
		return resp, nil
	default:
		return resp, fmt.Errorf("error unknown action %q", req.Action)
	}
}

func HandleRequest(ctx context.Context, req Request) (Response, error) {
	envVars, err := config.Setup()
	if err != nil {
		return Response{}, err
	}

	log := config.NewLogger(envVars.LogLevel, os.Stdout)
	log.Info("starting up")

	defer log.Info("shutting down")

	var notifier notify.Notifier = &notify.Log{Log: log}

	if envVars.TopicARN != "" {
		awsConfig, err := cfg.LoadDefaultConfig(ctx)
		if err != nil {
			log.WithError(err).Error()
			return Response{}, fmt.Errorf("error loading aws config %w", err)
		}

		notifier = notify.Multi{
			notifier,
			&notify.SNS{
				Log:      log,
				Client:   sns.NewFromConfig(awsConfig),
				TopicARN: envVars.TopicARN,
			},
		}
	}

	h := &handler{
		log:      log,
		config:   envVars,
		api:      envVars.NewAPIClient(log),
		notifier: notifier,
	}

	return h.handle(ctx, req)
}

func main() {
	lambda.Start(HandleRequest)
}
