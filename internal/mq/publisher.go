package mq

import (
	"encoding/json"
	"log"

	"sms-settle-api/internal/dal"

	"github.com/streadway/amqp"
)

// 结算完成事件，供下游（对账、通知、报表缓存失效）订阅。
// 发送失败只记日志，不影响结算事务本身。

type DailySettledEvent struct {
	Date        string `json:"date"`
	GroupCount  int    `json:"group_count"`
	RecordCount int    `json:"record_count"`
	SettledAt   int64  `json:"settled_at"`
}

type AgentSettledEvent struct {
	SettleID         uint64 `json:"settle_id"`
	AgentID          uint64 `json:"agent_id"`
	Month            string `json:"month"`
	TotalProfit      string `json:"total_profit"`
	CommissionAmount string `json:"commission_amount"`
	SettledAt        int64  `json:"settled_at"`
}

type ChannelSettledEvent struct {
	ChannelID  uint64   `json:"channel_id"`
	Month      string   `json:"month"`
	Countries  []string `json:"countries"`
	TotalCost  string   `json:"total_cost"`
	SettledAt  int64    `json:"settled_at"`
}

func publish(routingKey string, evt any) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(evt)
	err := dal.RabbitCh.Publish(
		"settle_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}

func PublishDailySettled(evt DailySettledEvent) error {
	return publish("settle.daily.completed", evt)
}

func PublishAgentSettled(evt AgentSettledEvent) error {
	return publish("settle.agent.completed", evt)
}

func PublishChannelSettled(evt ChannelSettledEvent) error {
	return publish("settle.channel.completed", evt)
}
