package aws

import (
	"context"
	"encoding/json"
	"log"
	"ticketpro/src/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

func GetSQSClient(ctx context.Context) (*sqs.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil, err
	}
	return sqs.NewFromConfig(cfg), nil
}

// SQSPublisher queues ticket events for a single consumer.
type SQSPublisher struct {
	client   *sqs.Client
	queueUrl string
}

// NewSQSPublisher resolves the queue url for name.
func NewSQSPublisher(ctx context.Context, client *sqs.Client, name string) (*SQSPublisher, error) {
	qurl, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		log.Printf("Failed to retrieve queue URL for %s: %s\n", name, err.Error())
		return nil, err
	}
	return &SQSPublisher{client: client, queueUrl: aws.ToString(qurl.QueueUrl)}, nil
}

func (s *SQSPublisher) Publish(ctx context.Context, event types.TicketEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	out, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueUrl),
		MessageBody: aws.String(string(value)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Type)),
			},
		},
	})
	if err != nil {
		log.Printf("[SQS] Error sending %s: %s\n", event.Type, err.Error())
		return err
	}
	log.Printf("[SQS] Sent %s as %s\n", event.Type, aws.ToString(out.MessageId))
	return nil
}
