package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/logger"
)

const (
	QueueReservationCreated  = "reservation.created"
	QueueReservationCanceled = "reservation.canceled"
	QueuePaymentCompleted    = "payment.completed"
)

// Publisher はRabbitMQへドメインイベントを発行する
type Publisher struct {
	url string
}

// NewPublisher は新しいパブリッシャーを作成する
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishReservationCreated は予約作成イベントを発行する
func (p *Publisher) PublishReservationCreated(ctx context.Context, ev ReservationCreatedEvent) error {
	return p.publish(ctx, QueueReservationCreated, ev)
}

// PublishReservationCanceled は予約キャンセルイベントを発行する
func (p *Publisher) PublishReservationCanceled(ctx context.Context, ev ReservationCanceledEvent) error {
	return p.publish(ctx, QueueReservationCanceled, ev)
}

// PublishPaymentCompleted は支払い完了イベントを発行する
func (p *Publisher) PublishPaymentCompleted(ctx context.Context, ev PaymentCompletedEvent) error {
	return p.publish(ctx, QueuePaymentCompleted, ev)
}

// publish はキューを宣言（冪等）し、永続化メッセージとして発行する
func (p *Publisher) publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.Error("rabbitmq: 接続に失敗", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq: チャネル作成に失敗", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable: ブローカー再起動後もメッセージを保持する
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		logger.Error("rabbitmq: キュー宣言に失敗", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("rabbitmq: イベントのエンコードに失敗", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		logger.Error("rabbitmq: 発行に失敗", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	return nil
}
