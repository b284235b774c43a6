package session

import (
	"time"

	"gorm.io/datatypes"
)

type (
	// Session is one conversation against an agent set. ActiveAgent changes when
	// the active agent hands the conversation off.
	Session struct {
		ID          string    `json:"id" gorm:"primaryKey"`
		AgentSetKey string    `json:"agentSetKey" gorm:"index"`
		ActiveAgent string    `json:"activeAgent"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}

	CallRecord struct {
		ID            uint           `json:"-" gorm:"primaryKey"`
		SessionID     string         `json:"sessionId" gorm:"index"`
		CallID        string         `json:"callId"`
		AgentName     string         `json:"agent"`
		ToolName      string         `json:"tool"`
		Arguments     datatypes.JSON `json:"arguments,omitempty"`
		Output        datatypes.JSON `json:"output,omitempty"`
		Error         string         `json:"error,omitempty"`
		TransferredTo string         `json:"transferredTo,omitempty"`
		CreatedAt     time.Time      `json:"createdAt"`
	}
)

func Models() []any {
	return []any{&Session{}, &CallRecord{}}
}
