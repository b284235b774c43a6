package shopagents_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/habiliai/shopagents"
	"github.com/habiliai/shopagents/agentconfigs"
	"github.com/habiliai/shopagents/config"
	myerrors "github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/db"
	"github.com/habiliai/shopagents/internal/mylog"
	shopapitest "github.com/habiliai/shopagents/shopapi/test"
	"github.com/habiliai/shopagents/tool"
	"github.com/stretchr/testify/require"
)

func newRuntime(t *testing.T, opts ...shopagents.Option) (*shopagents.Runtime, error) {
	t.Helper()

	gormDB, err := db.OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseDB(gormDB) })

	conf := config.NewRuntimeConfig()
	base := []shopagents.Option{
		shopagents.WithConfig(conf),
		shopagents.WithLogger(mylog.Discard()),
		shopagents.WithDB(gormDB),
		shopagents.WithShopClient(&shopapitest.ClientMock{}),
	}
	return shopagents.NewRuntime(context.Background(), append(base, opts...)...)
}

func TestRuntimeBuiltinSets(t *testing.T) {
	r, err := newRuntime(t)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, agentconfigs.FrontDeskAuthenticationKey, r.Agents().DefaultKey())
	require.NoError(t, r.Validate())

	sess, err := r.Sessions().Start(context.Background(), r.Agents().DefaultKey())
	require.NoError(t, err)
	require.Equal(t, "authentication", sess.ActiveAgent)
}

func TestRuntimeFileAgentSet(t *testing.T) {
	set, err := config.LoadAgentSetFromFile("config/testdata/technician.agentset.yaml")
	require.NoError(t, err)

	_, err = newRuntime(t, shopagents.WithAgentSet(set))
	require.ErrorIs(t, err, myerrors.ErrMissingHandler)
	require.Contains(t, err.Error(), "diagnostics.lookup_trouble_code")

	r, err := newRuntime(t,
		shopagents.WithAgentSet(set),
		shopagents.WithoutBuiltinAgentSets(),
		shopagents.WithToolHandler("lookup_trouble_code", tool.Func("lookup_trouble_code", func(_ *tool.Context, req struct {
			Code string `json:"code"`
		}) (string, error) {
			return req.Code + ": cylinder 1 misfire detected", nil
		})),
	)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, []string{"technicianAssistant"}, r.Agents().Keys())

	res, err := r.Call(context.Background(), "technicianAssistant", "diagnostics", tool.Call{
		Name:      "lookup_trouble_code",
		Arguments: json.RawMessage(`{"code":"P0301"}`),
	})
	require.NoError(t, err)
	require.Equal(t, "P0301: cylinder 1 misfire detected", res.Output)

	_, err = r.Call(context.Background(), "technicianAssistant", "Diagnostics", tool.Call{Name: "lookup_trouble_code"})
	require.ErrorIs(t, err, myerrors.ErrNotFound)
}

func TestRuntimeDefaultAgentSetFromConfig(t *testing.T) {
	conf := config.NewRuntimeConfig()
	conf.AgentSet = agentconfigs.TechnicianDashboardKey

	r, err := newRuntime(t, shopagents.WithConfig(conf))
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, agentconfigs.TechnicianDashboardKey, r.Agents().DefaultKey())

	conf = config.NewRuntimeConfig()
	conf.AgentSet = "unknown"
	_, err = newRuntime(t, shopagents.WithConfig(conf))
	require.ErrorIs(t, err, myerrors.ErrInvalidConfig)
}
