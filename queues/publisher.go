// Package queues publishes reconciliation alerts: cases where the
// contract accepted a write but the local mirror could not be updated.
// Those elections exist on-chain with no (or stale) local record and
// need manual reconciliation; the alert queue is how operators find
// out.
package queues

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReconciliationAlert describes one detected ledger/local divergence.
type ReconciliationAlert struct {
	Kind              string    `json:"kind"` // "election_create" | "election_end" | "vote_receipt"
	ElectionOnChainID uint64    `json:"election_id_on_chain"`
	Detail            string    `json:"detail"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// AlertPublisher pushes alerts to a durable exchange. A nil publisher
// is valid and drops alerts silently, so deployments without a broker
// still run (the alert is always logged as well).
type AlertPublisher struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
}

func NewAlertPublisher(amqpURL, exchange, queue, routingKey string) (*AlertPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.QueueBind(queue, routingKey, exchange, false, nil); err != nil {
		conn.Close()
		return nil, err
	}

	return &AlertPublisher{
		conn:       conn,
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

// Publish sends one alert. Safe on a nil receiver.
func (p *AlertPublisher) Publish(alert ReconciliationAlert) error {
	if p == nil {
		return nil
	}
	if alert.OccurredAt.IsZero() {
		alert.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return p.channel.Publish(p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    alert.OccurredAt,
		DeliveryMode: amqp.Persistent,
	})
}

// Close releases the connection. Safe on a nil receiver.
func (p *AlertPublisher) Close() {
	if p == nil {
		return
	}
	p.channel.Close()
	p.conn.Close()
}
