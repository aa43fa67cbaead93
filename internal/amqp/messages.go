package amqp

import (
	"encoding/json"
	"time"
)

// AccountSyncMessage asks the worker to refresh one user's transaction
// cache from the configured data source. It carries only the user id;
// the worker looks up the access token itself.
type AccountSyncMessage struct {
	UserID      int64     `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewAccountSyncMessage creates a sync request for the given user.
func NewAccountSyncMessage(userID int64) *AccountSyncMessage {
	return &AccountSyncMessage{
		UserID:      userID,
		RequestedAt: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *AccountSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AccountSyncMessageFromJSON creates a message from JSON bytes.
func AccountSyncMessageFromJSON(data []byte) (*AccountSyncMessage, error) {
	var msg AccountSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
