package lib

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"ticketpro/src/types"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

const KAFKA_CLIENT_ID = "ticketpro-api"

// KAFKA_DELIVERY_TIMEOUT bounds how long Publish waits for a delivery report.
const KAFKA_DELIVERY_TIMEOUT = 5 * time.Second

func GetKafkaProducerConfig(broker string) kafka.ConfigMap {
	return kafka.ConfigMap{
		"bootstrap.servers":  broker,
		"client.id":          KAFKA_CLIENT_ID,
		"acks":               "all",
		"message.timeout.ms": int(KAFKA_DELIVERY_TIMEOUT / time.Millisecond),
	}
}

// KafkaPublisher produces ticket events to a single topic, keyed by ticket id.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	timeout  time.Duration
}

func NewKafkaPublisher(broker, topic string) (*KafkaPublisher, error) {
	cfg := GetKafkaProducerConfig(broker)
	p, err := kafka.NewProducer(&cfg)
	if err != nil {
		log.Printf("Error on producer: %s\n", err.Error())
		return nil, err
	}
	return &KafkaPublisher{producer: p, topic: topic, timeout: KAFKA_DELIVERY_TIMEOUT}, nil
}

func (k *KafkaPublisher) Publish(ctx context.Context, event types.TicketEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()
	delivery := make(chan kafka.Event, 1)
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.TicketID),
		Value:          value,
		Headers:        []kafka.Header{{Key: "type", Value: []byte(event.Type)}},
	}, delivery)
	if err != nil {
		log.Printf("[kafka] Error producing %s: %s\n", event.Type, err.Error())
		return err
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for delivery of %s: %w", event.Type, ctx.Err())
	case e := <-delivery:
		m, ok := e.(*kafka.Message)
		if ok && m.TopicPartition.Error != nil {
			return fmt.Errorf("delivering %s: %w", event.Type, m.TopicPartition.Error)
		}
		return nil
	}
}

func (k *KafkaPublisher) Close() {
	k.producer.Flush(5000)
	k.producer.Close()
}

func KafkaCreateTopics(broker string, topics ...string) ([]kafka.TopicResult, error) {
	a, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": broker,
	})
	if err != nil {
		log.Printf("Error on AdminClient: %s\n", err.Error())
		return nil, err
	}
	defer a.Close()
	topicsDef := []kafka.TopicSpecification{}
	for _, topic := range topics {
		topicsDef = append(topicsDef, kafka.TopicSpecification{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		})
	}
	result, err := a.CreateTopics(context.Background(), topicsDef)
	if err != nil {
		log.Printf("Error creating topics: %s\n", err.Error())
		return nil, err
	}
	return result, nil
}
