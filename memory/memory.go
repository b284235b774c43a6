package memory

import (
	"time"

	"gorm.io/datatypes"
)

type (
	Memory struct {
		Scope     string                      `json:"scope" gorm:"primaryKey"`
		Key       string                      `json:"key" gorm:"primaryKey" jsonschema:"description=The key of the memory."`
		Value     string                      `json:"value" jsonschema:"description=The content of the memory."`
		Source    MemorySource                `json:"source" jsonschema:"description=Who stored the memory."`
		Tags      datatypes.JSONSlice[string] `json:"tags,omitempty"`
		CreatedAt time.Time                   `json:"createdAt"`
		UpdatedAt time.Time                   `json:"updatedAt"`
	}

	MemorySource = string
)

const (
	MemorySourceUser  MemorySource = "user"
	MemorySourceAgent MemorySource = "agent"

	// GlobalScope holds memories written outside of a session.
	GlobalScope = "global"
)

func Models() []any {
	return []any{&Memory{}}
}
