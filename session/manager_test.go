package session_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/habiliai/shopagents/agent"
	"github.com/habiliai/shopagents/entity"
	myerrors "github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/db"
	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/habiliai/shopagents/internal/mytesting"
	"github.com/habiliai/shopagents/session"
	"github.com/habiliai/shopagents/tool"
	"github.com/jcooky/go-din"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type SessionManagerTestSuite struct {
	mytesting.Suite

	manager *session.Manager
	DB      *gorm.DB
}

func (s *SessionManagerTestSuite) SetupTest() {
	s.Suite.SetupTest()

	s.DB = din.MustGetT[*gorm.DB](s.Container)
	s.Require().NoError(db.AutoMigrate(s.Context, s.DB, session.Models()...))

	automotive := &entity.AgentDefinition{
		Name:              "automotive",
		PublicDescription: "Diagnoses vehicle problems.",
		Tools: []entity.Tool{
			entity.NewTool("lookup_trouble_code", "Explain an OBD-II code.", nil),
		},
		ToolLogic: map[string]entity.ToolHandler{
			"lookup_trouble_code": func(context.Context, json.RawMessage) (any, error) {
				return map[string]any{"meaning": "Cylinder 1 misfire"}, nil
			},
		},
	}
	service := &entity.AgentDefinition{
		Name:              "service",
		PublicDescription: "Books service appointments.",
		Downstream:        []*entity.AgentDefinition{automotive},
	}
	automotive.Downstream = []*entity.AgentDefinition{service}

	logger := mylog.Discard()
	agents := agent.NewRegistry(logger)
	s.Require().NoError(agents.Register("frontDesk", []*entity.AgentDefinition{service, automotive}, true))

	tools := tool.NewRegistry()
	s.Require().NoError(tool.RegisterTransferTool(tools))

	s.manager = session.NewManager(logger, s.DB, agents, tool.NewDispatcher(tools, logger))
}

func (s *SessionManagerTestSuite) TestStart() {
	sess, err := s.manager.Start(s.Context, "frontDesk")
	s.Require().NoError(err)
	s.Require().NotEmpty(sess.ID)
	s.Require().Equal("service", sess.ActiveAgent)

	active, err := s.manager.ActiveAgent(s.Context, sess.ID)
	s.Require().NoError(err)
	s.Require().Equal("service", active.Name)
	s.Require().True(active.HasTool(entity.ToolNameTransferAgents))

	_, err = s.manager.Start(s.Context, "frontdesk")
	s.Require().ErrorIs(err, myerrors.ErrNotFound)

	_, err = s.manager.Get(s.Context, "no-such-session")
	s.Require().ErrorIs(err, myerrors.ErrNotFound)
}

func (s *SessionManagerTestSuite) TestTransferSwitchesActiveAgent() {
	sess, err := s.manager.Start(s.Context, "frontDesk")
	s.Require().NoError(err)

	// automotive's own tool is not reachable before the hand-off
	_, err = s.manager.HandleToolCall(s.Context, sess.ID, tool.Call{Name: "lookup_trouble_code"})
	s.Require().ErrorIs(err, myerrors.ErrToolNotFound)

	res, err := s.manager.HandleToolCall(s.Context, sess.ID, tool.Call{
		Name:      entity.ToolNameTransferAgents,
		Arguments: json.RawMessage(`{"rationale_for_transfer":"Engine light is on.","conversation_context":"Customer reports P0301.","destination_agent":"automotive"}`),
	})
	s.Require().NoError(err)
	s.Require().Empty(res.Error)

	active, err := s.manager.ActiveAgent(s.Context, sess.ID)
	s.Require().NoError(err)
	s.Require().Equal("automotive", active.Name)

	res, err = s.manager.HandleToolCall(s.Context, sess.ID, tool.Call{ID: "call-3", Name: "lookup_trouble_code", Arguments: json.RawMessage(`{"code":"P0301"}`)})
	s.Require().NoError(err)
	s.Require().Equal("call-3", res.ID)

	history, err := s.manager.History(s.Context, sess.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Require().Equal("service", history[0].AgentName)
	s.Require().NotEmpty(history[0].Error)
	s.Require().Equal("automotive", history[1].TransferredTo)
	s.Require().Equal("automotive", history[2].AgentName)
	s.Require().JSONEq(`{"meaning":"Cylinder 1 misfire"}`, string(history[2].Output))
}

func (s *SessionManagerTestSuite) TestFailedTransferKeepsAgent() {
	sess, err := s.manager.Start(s.Context, "frontDesk")
	s.Require().NoError(err)

	res, err := s.manager.HandleToolCall(s.Context, sess.ID, tool.Call{
		Name:      entity.ToolNameTransferAgents,
		Arguments: json.RawMessage(`{"rationale_for_transfer":"-","conversation_context":"-","destination_agent":"Automotive"}`),
	})
	s.Require().NoError(err)
	s.Require().Contains(string(mustJSON(s, res.Output)), `"did_transfer":false`)

	active, err := s.manager.ActiveAgent(s.Context, sess.ID)
	s.Require().NoError(err)
	s.Require().Equal("service", active.Name)

	history, err := s.manager.History(s.Context, sess.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Require().Empty(history[0].TransferredTo)
}

func mustJSON(s *SessionManagerTestSuite, v any) []byte {
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	return data
}

func TestSessionManager(t *testing.T) {
	suite.Run(t, new(SessionManagerTestSuite))
}
