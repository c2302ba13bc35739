package events

import "time"

// Test-only access to unexported identifiers for the external test package.

type KafkaPublisher = kafkaPublisher

var NewKafkaWithWriter = newKafkaWithWriter

func (p *kafkaPublisher) SetNow(now func() time.Time) { p.now = now }
