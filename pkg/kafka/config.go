package kafka

// Config holds Kafka connection parameters for the event producer.
type Config struct {
	// SASLMechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string

	// ClientID identifies the producer in broker logs.
	ClientID string

	Brokers []string

	TLS         bool
	SASLEnabled bool
}
