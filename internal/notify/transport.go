package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	applog "foodonline/internal/log"
)

// LogTransport writes notifications to the application log instead of delivering them.
type LogTransport struct{}

func (LogTransport) Deliver(_ context.Context, m Message) error {
	applog.Info(nil, "notify.deliver", map[string]any{
		"to":       m.To,
		"subject":  m.Subject,
		"template": m.Template,
	})
	return nil
}

// AMQPTransport publishes notifications as JSON onto a fanout exchange; a mail
// worker consumes them.
type AMQPTransport struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func DialAMQP(url, exchange string) (*AMQPTransport, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp exchange %s: %w", exchange, err)
	}
	applog.Info(nil, "notify.amqp.connected", map[string]any{"exchange": exchange})
	return &AMQPTransport{conn: conn, ch: ch, exchange: exchange}, nil
}

func (t *AMQPTransport) Deliver(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return t.ch.PublishWithContext(ctx,
		t.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    m.SentAt,
			Body:         body,
		})
}

func (t *AMQPTransport) Close() {
	if t.ch != nil {
		t.ch.Close()
	}
	if t.conn != nil {
		t.conn.Close()
	}
}
