package dal

import (
	"log"

	"sms-settle-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("settle_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("settle_completed", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare settle_completed failed: %v", err)
	}
	if err := ch.QueueBind("settle_completed", "settle.#", "settle_events", false, nil); err != nil {
		log.Fatalf("queue bind settle_completed failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
