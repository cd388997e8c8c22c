package reserva_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/adiazny/fablab-reserves/internal/pkg/reserva"
)

func TestToViewModel(t *testing.T) {
	tests := []struct {
		name string
		in   reserva.Reservation
		want reserva.ViewModel
	}{
		{
			name: "seconds precision",
			in: reserva.Reservation{
				ID:        "0b7c",
				UsuariID:  "anna@upc.edu",
				Servei:    "Talladora Làser",
				Data:      "2026-11-03",
				HoraInici: "09:00:00",
				HoraFi:    "10:30:00",
			},
			want: reserva.ViewModel{
				Title: "Talladora Làser – anna@upc.edu",
				Start: "2026-11-03T09:00:00",
				End:   "2026-11-03T10:30:00",
			},
		},
		{
			name: "inverted times are kept",
			in: reserva.Reservation{
				UsuariID:  "u1",
				Servei:    "Impressora 3D",
				Data:      "2026-11-04",
				HoraInici: "12:00",
				HoraFi:    "11:00",
			},
			want: reserva.ViewModel{
				Title: "Impressora 3D – u1",
				Start: "2026-11-04T12:00",
				End:   "2026-11-04T11:00",
			},
		},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := reserva.ToViewModel(tt.in)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToViewModel() = %v, want %v", got, tt.want)
			}

			if got.Start != tt.in.Data+"T"+tt.in.HoraInici || got.End != tt.in.Data+"T"+tt.in.HoraFi {
				t.Errorf("ToViewModel() start/end not derived from date and times: %v", got)
			}
		})
	}
}

func TestToViewModels_Empty(t *testing.T) {
	got := reserva.ToViewModels(nil)

	if got == nil || len(got) != 0 {
		t.Errorf("ToViewModels(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestListLine(t *testing.T) {
	r := reserva.Reservation{Servei: "CNC", Data: "2026-11-05", HoraInici: "09:00", HoraFi: "09:30"}

	if got, want := reserva.ListLine(r), "CNC | 2026-11-05 | 09:00 - 09:30"; got != want {
		t.Errorf("ListLine() = %q, want %q", got, want)
	}
}

func TestPayloadMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string detail", body: `{"detail":"invalid date"}`, want: "invalid date"},
		{name: "list detail", body: `{"detail":[{"msg":"a"},{"msg":"b"}]}`, want: "a | b"},
		{name: "list detail with extra fields", body: `{"detail":[{"loc":["body","data"],"msg":"a","type":"value_error"}]}`, want: "a"},
		{name: "list detail with numeric msg", body: `{"detail":[{"msg":5},{"msg":true},{"msg":"c"}]}`, want: "5 | true | c"},
		{name: "list detail with missing msg", body: `{"detail":[{"loc":["body"]},{"msg":null},{"msg":"c"}]}`, want: " |  | c"},
		{name: "missing detail", body: `{"error":"boom"}`, want: reserva.UnknownErrorMessage},
		{name: "null detail", body: `{"detail":null}`, want: reserva.UnknownErrorMessage},
		{name: "empty string detail", body: `{"detail":""}`, want: reserva.UnknownErrorMessage},
		{name: "numeric detail", body: `{"detail":42}`, want: reserva.UnknownErrorMessage},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			payload := reserva.Payload{}

			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}

			if got := payload.Detail.Message(); got != tt.want {
				t.Errorf("Detail.Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation error",
			err:  &reserva.Error{Kind: reserva.KindValidation, StatusCode: 409, Detail: reserva.NewDetail("invalid date")},
			want: "invalid date",
		},
		{
			name: "wrapped validation error",
			err:  fmt.Errorf("error creating reservation %w", &reserva.Error{Kind: reserva.KindValidation, Detail: reserva.NewDetailList("a", "b")}),
			want: "a | b",
		},
		{
			name: "transport error",
			err:  &reserva.Error{Kind: reserva.KindTransport, Err: errors.New("connection refused")},
			want: reserva.UnknownErrorMessage,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: reserva.UnknownErrorMessage,
		},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			if got := reserva.ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("error listing reservations %w", &reserva.Error{Kind: reserva.KindTransport, Err: cause})

	if !reserva.IsKind(err, reserva.KindTransport) {
		t.Errorf("IsKind(transport) = false, want true")
	}

	if reserva.IsKind(err, reserva.KindDecode) {
		t.Errorf("IsKind(decode) = true, want false")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(cause) = false, want true")
	}
}
