package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
)

const (
	LoanTopic         = "loan-events"
	LoanConsumerGroup = "library-stats"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

// EventLoan is the message published on every loan state change and consumed
// into the events table.
type EventLoan struct {
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	LoanUid   string    `json:"loanUid"`
	BookUid   string    `json:"bookUid"`
	EventType string    `json:"eventType"`
}

const (
	EventLoanBorrowed = "LOAN_BORROWED"
	EventLoanReturned = "LOAN_RETURNED"
)

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer-group session loop until ctx is cancelled.
func Consume(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topic string) error {
	for {
		if err := consumer.Consume(ctx, []string{topic}, handler); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
