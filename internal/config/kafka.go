package config

type KafkaConfig struct {
	BrokersList []string `yaml:"brokers"`
	Topic       string   `yaml:"reports-topic"`
	Group       string   `yaml:"consumer-group"`
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokersList
}

func (s *KafkaConfig) ReportsTopic() string {
	return s.Topic
}

func (s *KafkaConfig) ConsumerGroup() string {
	return s.Group
}
