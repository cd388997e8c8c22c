package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adiazny/fablab-reserves/internal/pkg/reserva"
)

const (
	reservesEndpoint = "reserves"
	statusEndpoint   = ""

	cacheControlHeaderKey = "Cache-Control"
	noCacheValue          = "no-cache"

	contentTypeHeaderKey = "Content-Type"
	acceptHeaderKey      = "Accept"
	jsonContentType      = "application/json"

	requestIDHeaderKey = "X-Request-ID"
)

// HTTPClient is the subset of *http.Client the reservation client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseAPIHost string
}

// Client talks to the FabLab reservation API.
type Client struct {
	Log    *logrus.Entry
	Config Config
	HTTP   HTTPClient
}

// Filter narrows the reservation listing. Zero values are not sent.
type Filter struct {
	Servei string
	Data   string
}

// ServiceStatus is the body of the API root endpoint.
type ServiceStatus struct {
	Status      string `json:"status"`
	FabLab      string `json:"fablab"`
	HorariLimit string `json:"horari_limit"`
}

type response struct {
	statusCode int
	body       []byte
}

func (r response) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// ListReservations fetches GET /reserves.
func (client *Client) ListReservations(ctx context.Context, filter Filter) ([]reserva.Reservation, error) {
	query := url.Values{}
	if filter.Servei != "" {
		query.Set("servei", filter.Servei)
	}
	if filter.Data != "" {
		query.Set("data", filter.Data)
	}

	resp, err := client.do(ctx, http.MethodGet, reservesEndpoint, query, nil)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		return nil, statusError(resp)
	}

	reservations := make([]reserva.Reservation, 0)

	err = json.Unmarshal(resp.body, &reservations)
	if err != nil {
		return nil, &reserva.Error{
			Kind:       reserva.KindDecode,
			StatusCode: resp.statusCode,
			Err:        fmt.Errorf("error unmarshalling reservations %w", err),
		}
	}

	if reservations == nil {
		reservations = make([]reserva.Reservation, 0)
	}

	return reservations, nil
}

// CreateReservation posts a new reservation and returns the record the server stored.
func (client *Client) CreateReservation(ctx context.Context, request reserva.Request) (reserva.Reservation, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return reserva.Reservation{}, fmt.Errorf("error marshalling reservation request %w", err)
	}

	resp, err := client.do(ctx, http.MethodPost, reservesEndpoint, nil, body)
	if err != nil {
		return reserva.Reservation{}, err
	}

	if !resp.ok() {
		return reserva.Reservation{}, statusError(resp)
	}

	created := reserva.Reservation{}

	err = json.Unmarshal(resp.body, &created)
	if err != nil {
		return reserva.Reservation{}, &reserva.Error{
			Kind:       reserva.KindDecode,
			StatusCode: resp.statusCode,
			Err:        fmt.Errorf("error unmarshalling created reservation %w", err),
		}
	}

	return created, nil
}

// DeleteReservation removes the reservation with the given id.
func (client *Client) DeleteReservation(ctx context.Context, id string) error {
	resp, err := client.do(ctx, http.MethodDelete, reservesEndpoint+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	if !resp.ok() {
		return statusError(resp)
	}

	return nil
}

// Status fetches the API root, which reports whether the service is online.
func (client *Client) Status(ctx context.Context) (ServiceStatus, error) {
	resp, err := client.do(ctx, http.MethodGet, statusEndpoint, nil, nil)
	if err != nil {
		return ServiceStatus{}, err
	}

	if !resp.ok() {
		return ServiceStatus{}, statusError(resp)
	}

	status := ServiceStatus{}

	err = json.Unmarshal(resp.body, &status)
	if err != nil {
		return ServiceStatus{}, &reserva.Error{
			Kind:       reserva.KindDecode,
			StatusCode: resp.statusCode,
			Err:        fmt.Errorf("error unmarshalling service status %w", err),
		}
	}

	return status, nil
}

func (client *Client) do(ctx context.Context, method, endpoint string, query url.Values, body []byte) (response, error) {
	apiEndpoint := fmt.Sprintf("%s/%s", strings.TrimRight(client.Config.BaseAPIHost, "/"), endpoint)
	if len(query) > 0 {
		apiEndpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiEndpoint, reader)
	if err != nil {
		return response{}, fmt.Errorf("error creating http request %w", err)
	}

	requestID := uuid.NewString()

	req.Header.Add(cacheControlHeaderKey, noCacheValue)
	req.Header.Add(acceptHeaderKey, jsonContentType)
	req.Header.Add(requestIDHeaderKey, requestID)
	if body != nil {
		req.Header.Add(contentTypeHeaderKey, jsonContentType)
	}

	log := client.logger().WithFields(logrus.Fields{
		"method":     method,
		"url":        apiEndpoint,
		"request_id": requestID,
	})

	resp, err := client.HTTP.Do(req)
	if err != nil {
		log.WithError(err).Warn("reservation api request failed")

		return response{}, &reserva.Error{
			Kind: reserva.KindTransport,
			Err:  fmt.Errorf("error performing http request %w", err),
		}
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, &reserva.Error{
			Kind:       reserva.KindDecode,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("error reading response body %w", err),
		}
	}

	log.WithField("status", resp.StatusCode).Debug("reservation api request done")

	return response{statusCode: resp.StatusCode, body: data}, nil
}

// statusError builds the error for a non-2xx response. A body carrying a
// detail is a validation error, anything else only reports the status.
func statusError(resp response) error {
	payload := reserva.Payload{}

	err := json.Unmarshal(resp.body, &payload)
	if err != nil {
		return &reserva.Error{
			Kind:       reserva.KindStatus,
			StatusCode: resp.statusCode,
			Err:        fmt.Errorf("error status code is not 2xx, got %d: %w", resp.statusCode, err),
		}
	}

	if payload.Detail == nil {
		return &reserva.Error{
			Kind:       reserva.KindStatus,
			StatusCode: resp.statusCode,
			Err:        fmt.Errorf("error status code is not 2xx, got %d", resp.statusCode),
		}
	}

	return &reserva.Error{
		Kind:       reserva.KindValidation,
		StatusCode: resp.statusCode,
		Detail:     payload.Detail,
	}
}

func (client *Client) logger() *logrus.Entry {
	if client.Log != nil {
		return client.Log
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logrus.NewEntry(logger)
}
