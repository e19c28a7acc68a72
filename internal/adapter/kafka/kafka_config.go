package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// GroupConfig is the consumer group part of the service configuration.
type GroupConfig struct {
	Brokers       []string
	GroupID       string
	ClientID      string
	Version       string // e.g. "2.6.0"; empty means 2.6.0
	InitialOffset string // "oldest" or "newest" (default)
}

func (gc GroupConfig) sarama() (*sarama.Config, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_6_0_0
	if gc.Version != "" {
		v, err := sarama.ParseKafkaVersion(gc.Version)
		if err != nil {
			return nil, fmt.Errorf("kafka version: %w", err)
		}
		cfg.Version = v
	}
	cfg.ClientID = "shop-api"
	if gc.ClientID != "" {
		cfg.ClientID = gc.ClientID
	}
	switch strings.ToLower(gc.InitialOffset) {
	case "", "newest":
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	case "oldest":
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	default:
		return nil, fmt.Errorf("kafka initial offset %q: want oldest or newest", gc.InitialOffset)
	}
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	cfg.Net.DialTimeout = 5 * time.Second
	return cfg, cfg.Validate()
}

func NewGroup(gc GroupConfig) (sarama.ConsumerGroup, error) {
	if len(gc.Brokers) == 0 || gc.GroupID == "" {
		return nil, fmt.Errorf("kafka: brokers and group id are required")
	}
	cfg, err := gc.sarama()
	if err != nil {
		return nil, err
	}
	return sarama.NewConsumerGroup(gc.Brokers, gc.GroupID, cfg)
}
