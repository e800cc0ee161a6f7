package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Conn часть *nats.Conn, нужная для публикации
type Conn interface {
	Publish(subject string, data []byte) error
}

// Metrics счётчик опубликованных событий
type Metrics interface {
	IncEventPublished(subject, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события о записях для сервисов уведомлений
type Publisher struct {
	conn    Conn
	prefix  string
	metrics Metrics
	logger  Logger
	now     func() time.Time
}

// NewPublisher создает publisher поверх соединения
func NewPublisher(conn Conn, subjectPrefix string, metrics Metrics, logger Logger) *Publisher {
	return &Publisher{
		conn:    conn,
		prefix:  subjectPrefix,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Connect подключается к NATS с переподключением
func Connect(url, name string, logger Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, url, err)
	}
	return conn, nil
}

// AppointmentCreated публикует событие о новой записи
func (p *Publisher) AppointmentCreated(ctx context.Context, a *domain.Appointment) error {
	event := AppointmentCreated{
		AppointmentID:   a.ID.String(),
		SalonID:         a.SalonID.String(),
		ClientName:      a.ClientName,
		ClientEmail:     a.ClientEmail,
		ClientPhone:     a.ClientPhone,
		ServiceName:     a.ServiceName,
		Date:            a.Date.Format(domain.DateFormat),
		Time:            a.Time.String(),
		Status:          string(a.Status),
		OriginalPrice:   a.OriginalPrice,
		FinalPrice:      a.FinalPrice,
		PromotionName:   a.AppliedPromotionName,
		DiscountPercent: a.DiscountPercent,
		OccurredAt:      p.now().UTC(),
	}
	return p.publish(ctx, subjectAppointmentCreated, event)
}

// AppointmentStatusChanged публикует событие о смене статуса
func (p *Publisher) AppointmentStatusChanged(ctx context.Context, a *domain.Appointment, from domain.AppointmentStatus) error {
	event := AppointmentStatusChanged{
		AppointmentID: a.ID.String(),
		SalonID:       a.SalonID.String(),
		ClientEmail:   a.ClientEmail,
		Date:          a.Date.Format(domain.DateFormat),
		Time:          a.Time.String(),
		From:          string(from),
		To:            string(a.Status),
		OccurredAt:    p.now().UTC(),
	}
	return p.publish(ctx, subjectAppointmentStatusChanged, event)
}

func (p *Publisher) publish(ctx context.Context, name string, event interface{}) error {
	subject := p.subject(name)

	if err := ctx.Err(); err != nil {
		p.inc(subject, "error")
		return fmt.Errorf("%w: %s: %v", ErrPublish, subject, err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.inc(subject, "error")
		return fmt.Errorf("%w: %s: %v", ErrEncode, subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.inc(subject, "error")
		return fmt.Errorf("%w: %s: %v", ErrPublish, subject, err)
	}

	p.inc(subject, "ok")
	return nil
}

func (p *Publisher) subject(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

func (p *Publisher) inc(subject, result string) {
	if p.metrics != nil {
		p.metrics.IncEventPublished(subject, result)
	}
}

// Noop publisher для запуска без NATS
type Noop struct{}

func (Noop) AppointmentCreated(ctx context.Context, a *domain.Appointment) error {
	return nil
}

func (Noop) AppointmentStatusChanged(ctx context.Context, a *domain.Appointment, from domain.AppointmentStatus) error {
	return nil
}
