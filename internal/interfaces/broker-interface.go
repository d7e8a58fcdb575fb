package interfaces

// ProducerHandler publishes a keyed message to the broker.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}
