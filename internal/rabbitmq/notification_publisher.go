package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/openhearts/openhearts/internal/models"
)

// NotificationPublisher публикует события пожертвований в exchange "notifications".
type NotificationPublisher struct {
	ch *amqp.Channel
}

// NewNotificationPublisher создает новый экземпляр NotificationPublisher.
func NewNotificationPublisher(ch *amqp.Channel) *NotificationPublisher {
	return &NotificationPublisher{ch: ch}
}

// PublishReceipt отправляет квитанцию о завершённом пожертвовании
// в очередь писем-благодарностей.
func (p *NotificationPublisher) PublishReceipt(receipt models.DonationReceipt) error {
	return PublishMessage(p.ch, "notifications", "donation.completed", receipt)
}
