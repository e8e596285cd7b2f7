package aws

import (
	"context"
	"encoding/json"
	"log"
	"ticketpro/src/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

func GetSNSClient(ctx context.Context) (*sns.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("Error loading default config: %s\n", err.Error())
		return nil, err
	}
	return sns.NewFromConfig(cfg), nil
}

// SNSPublisher fans ticket events out through an SNS topic.
type SNSPublisher struct {
	inner    *sns.Client
	topicArn string
}

func NewSNSPublisher(client *sns.Client, topicArn string) *SNSPublisher {
	return &SNSPublisher{inner: client, topicArn: topicArn}
}

func (s *SNSPublisher) Publish(ctx context.Context, event types.TicketEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	output, err := s.inner.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicArn),
		Message:  aws.String(string(value)),
		MessageAttributes: map[string]snsTypes.MessageAttributeValue{
			"type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Type)),
			},
		},
	})
	if err != nil {
		log.Printf("[sns] Error publishing %s: %s\n", event.Type, err.Error())
		return err
	}
	log.Printf("[sns] Published %s as %s\n", event.Type, aws.ToString(output.MessageId))
	return nil
}
