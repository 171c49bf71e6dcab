// internal/workers/communication/send-negotiation/models.go
package sendnegotiation

import "time"

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	RecipientEmail string `json:"recipientEmail"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	BrandName      string `json:"brandName,omitempty"`
	CreatorName    string `json:"creatorName,omitempty"`
	ReplyTo        string `json:"replyTo,omitempty"`
	Urgent         bool   `json:"urgent,omitempty"`
	CreatorPhone   string `json:"creatorPhone,omitempty"`
}

type Output struct {
	MessageID      string    `json:"messageId"`
	EmailMessageID string    `json:"emailMessageId,omitempty"`
	SMSMessageID   string    `json:"smsMessageId,omitempty"`
	Channels       []string  `json:"channels"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sentAt"`
}
