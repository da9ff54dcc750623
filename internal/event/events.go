package event

import "time"

// TopicGratuitySent 打赏成功事件
const TopicGratuitySent = "gratuity_events_sent"

// GratuitySentEvent 打赏成功事件
// Topic: gratuity_events_sent, Key: Sender
type GratuitySentEvent struct {
	Digest          string    `json:"digest"`
	Sender          string    `json:"sender"`
	VaultID         string    `json:"vault_id"`
	CoinObjectID    string    `json:"coin_object_id"`
	AmountBaseUnits uint64    `json:"amount_base_units"`
	Amount          string    `json:"amount"` // SUI decimal string
	SentAt          time.Time `json:"sent_at"`
}
