package notify

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
)

const fabLabTimeZone = "Europe/Madrid"

// SNSPublisher is implemented by *sns.Client.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes notifications to an AWS SNS topic.
type SNS struct {
	Log      *logrus.Entry
	Client   SNSPublisher
	TopicARN string
	Now      func() time.Time
}

func (s *SNS) Notify(ctx context.Context, n Notification) error {
	topicMsg := s.message(n)

	input := &sns.PublishInput{
		Message:  &topicMsg,
		TopicArn: &s.TopicARN,
	}

	_, err := s.Client.Publish(ctx, input)
	if err != nil {
		s.Log.WithError(err).Error()
		return fmt.Errorf("error pusblishing to AWS SNS topic %s: %w", s.TopicARN, err)
	}

	return nil
}

func (s *SNS) message(n Notification) string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	location, err := time.LoadLocation(fabLabTimeZone)
	if err != nil {
		location = time.UTC
	}

	formattedTime := now().In(location).Format("Monday, Jan 02 2006 15:04")

	return fmt.Sprintf("Date: %v\nReserves: %s\nDetails: %s", formattedTime, n.Level, n.Message)
}
