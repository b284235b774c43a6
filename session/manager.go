package session

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/habiliai/shopagents/agent"
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/db"
	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/habiliai/shopagents/tool"
	"github.com/mitchellh/mapstructure"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Manager struct {
	logger     *mylog.Logger
	db         *gorm.DB
	agents     *agent.Registry
	dispatcher *tool.Dispatcher
}

func NewManager(logger *mylog.Logger, gormDB *gorm.DB, agents *agent.Registry, dispatcher *tool.Dispatcher) *Manager {
	if logger == nil {
		logger = mylog.Discard()
	}
	return &Manager{
		logger:     logger,
		db:         gormDB,
		agents:     agents,
		dispatcher: dispatcher,
	}
}

// Start opens a session on the given agent set. The first agent of the set
// receives the conversation.
func (m *Manager) Start(ctx context.Context, setKey string) (*Session, error) {
	agents, ok := m.agents.Get(setKey)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "agent set %q", setKey)
	}
	if len(agents) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "agent set %q has no agents", setKey)
	}

	_, tx := db.OpenSession(ctx, m.db)
	session := Session{
		ID:          uuid.NewString(),
		AgentSetKey: setKey,
		ActiveAgent: agents[0].Name,
	}
	if err := tx.Create(&session).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to create session")
	}

	m.logger.Debug("session started", "session_id", session.ID, "agent_set", setKey, "agent", session.ActiveAgent)

	return &session, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	_, tx := db.OpenSession(ctx, m.db)

	var session Session
	if r := tx.Where("id = ?", id).Limit(1).Find(&session); r.Error != nil {
		return nil, errors.Wrapf(r.Error, "failed to find session")
	} else if r.RowsAffected == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "session %s", id)
	}

	return &session, nil
}

func (m *Manager) ActiveAgent(ctx context.Context, id string) (entity.Agent, error) {
	session, err := m.Get(ctx, id)
	if err != nil {
		return entity.Agent{}, err
	}

	return m.agentOf(session)
}

func (m *Manager) agentOf(session *Session) (entity.Agent, error) {
	a, ok := m.agents.Agent(session.AgentSetKey, session.ActiveAgent)
	if !ok {
		return entity.Agent{}, errors.Wrapf(errors.ErrNotFound, "agent %s in set %s", session.ActiveAgent, session.AgentSetKey)
	}
	return a, nil
}

// HandleToolCall dispatches a call issued by the session's active agent and
// records it. A successful transferAgents call makes its destination the
// active agent.
func (m *Manager) HandleToolCall(ctx context.Context, id string, call tool.Call) (*tool.CallResult, error) {
	session, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	active, err := m.agentOf(session)
	if err != nil {
		return nil, err
	}

	result, callErr := m.dispatcher.Dispatch(tool.WithSessionID(ctx, id), active, call)

	record := CallRecord{
		SessionID: id,
		CallID:    result.ID,
		AgentName: active.Name,
		ToolName:  call.Name,
		Arguments: datatypes.JSON(call.Arguments),
		Error:     result.Error,
	}
	if result.Output != nil {
		output, err := json.Marshal(result.Output)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode output of %s", call.Name)
		}
		record.Output = output
	}
	if callErr == nil && call.Name == entity.ToolNameTransferAgents {
		record.TransferredTo = m.transferDestination(session, result.Output)
	}

	_, tx := db.OpenSession(ctx, m.db)
	if err := tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return errors.Wrapf(err, "failed to save call record")
		}
		if record.TransferredTo == "" {
			return nil
		}

		session.ActiveAgent = record.TransferredTo
		if err := tx.Model(session).Update("active_agent", session.ActiveAgent).Error; err != nil {
			return errors.Wrapf(err, "failed to update active agent")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if record.TransferredTo != "" {
		m.logger.Info("agent transfer", "session_id", id, "from", active.Name, "to", record.TransferredTo)
	}

	return result, callErr
}

// transferDestination returns the agent to switch to, or "" when the transfer
// did not happen.
func (m *Manager) transferDestination(session *Session, output any) string {
	var transfer tool.TransferResult
	if err := mapstructure.Decode(output, &transfer); err != nil {
		m.logger.Warn("unexpected transfer result", "session_id", session.ID, mylog.Err(err))
		return ""
	}
	if !transfer.DidTransfer || transfer.DestinationAgent == "" {
		return ""
	}
	if _, ok := m.agents.Agent(session.AgentSetKey, transfer.DestinationAgent); !ok {
		m.logger.Warn("transfer destination is not part of the agent set", "session_id", session.ID, "agent_set", session.AgentSetKey, "destination", transfer.DestinationAgent)
		return ""
	}

	return transfer.DestinationAgent
}

func (m *Manager) History(ctx context.Context, id string) ([]CallRecord, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return nil, err
	}

	_, tx := db.OpenSession(ctx, m.db)

	var records []CallRecord
	if err := tx.Where("session_id = ?", id).Order("id ASC").Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to find call records")
	}

	return records, nil
}
