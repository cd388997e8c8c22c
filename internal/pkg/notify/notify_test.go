package notify_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"

	"github.com/adiazny/fablab-reserves/internal/pkg/notify"
)

func TestWriter_Notify(t *testing.T) {
	tests := []struct {
		name string
		n    notify.Notification
		want string
	}{
		{name: "success", n: notify.Success("Reservation created successfully"), want: "✅ Reservation created successfully\n"},
		{name: "error", n: notify.Error("invalid date"), want: "❌ invalid date\n"},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			w := &notify.Writer{Out: out}

			if err := w.Notify(context.Background(), tt.n); err != nil {
				t.Fatalf("Writer.Notify() error = %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("Writer.Notify() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLog_Notify(t *testing.T) {
	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	l := &notify.Log{Log: logrus.NewEntry(logger)}

	if err := l.Notify(context.Background(), notify.Error("Error loading reservations")); err != nil {
		t.Fatalf("Log.Notify() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, `"level":"error"`) || !strings.Contains(got, "Error loading reservations") {
		t.Errorf("Log.Notify() wrote %q", got)
	}
}

func TestSNS_Notify(t *testing.T) {
	publisher := &mockPublisher{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := &notify.SNS{
		Log:      logrus.NewEntry(logger),
		Client:   publisher,
		TopicARN: "arn:aws:sns:eu-west-1:123456789012:fablab-reserves",
		Now: func() time.Time {
			return time.Date(2026, time.November, 3, 8, 15, 0, 0, time.UTC)
		},
	}

	if err := s.Notify(context.Background(), notify.Success("Reservation created successfully")); err != nil {
		t.Fatalf("SNS.Notify() error = %v", err)
	}

	if len(publisher.inputs) != 1 {
		t.Fatalf("published %d messages, want 1", len(publisher.inputs))
	}

	input := publisher.inputs[0]
	if *input.TopicArn != s.TopicARN {
		t.Errorf("TopicArn = %s, want %s", *input.TopicArn, s.TopicARN)
	}

	want := "Date: Tuesday, Nov 03 2026 09:15\nReserves: success\nDetails: Reservation created successfully"
	if *input.Message != want {
		t.Errorf("Message = %q, want %q", *input.Message, want)
	}
}

func TestSNS_NotifyError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := &notify.SNS{
		Log:      logrus.NewEntry(logger),
		Client:   &mockPublisher{err: errors.New("throttled")},
		TopicARN: "arn:aws:sns:eu-west-1:123456789012:fablab-reserves",
	}

	if err := s.Notify(context.Background(), notify.Error("boom")); err == nil {
		t.Errorf("SNS.Notify() error = nil, want error")
	}
}

func TestMulti_Notify(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}

	m := notify.Multi{&notify.Writer{Out: first}, &notify.Writer{Out: second}}

	if err := m.Notify(context.Background(), notify.Success("ok")); err != nil {
		t.Fatalf("Multi.Notify() error = %v", err)
	}

	if first.String() != "✅ ok\n" || second.String() != "✅ ok\n" {
		t.Errorf("Multi.Notify() wrote %q and %q", first.String(), second.String())
	}
}

type mockPublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, params)
	return &sns.PublishOutput{}, nil
}
