package eventbus

import "errors"

var (
	// ErrConnect не удалось подключиться к NATS
	ErrConnect = errors.New("eventbus: failed to connect")

	// ErrPublish не удалось опубликовать событие
	ErrPublish = errors.New("eventbus: failed to publish event")

	// ErrEncode не удалось сериализовать событие
	ErrEncode = errors.New("eventbus: failed to encode event")
)
