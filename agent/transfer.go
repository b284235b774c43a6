package agent

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/habiliai/shopagents/entity"
	"github.com/samber/lo"
)

const (
	TransferParamRationale   = "rationale_for_transfer"
	TransferParamContext     = "conversation_context"
	TransferParamDestination = "destination_agent"
)

var (
	//go:embed data/transfer.md.tmpl
	transferInst     string
	transferInstTmpl = template.Must(template.New("transfer").Funcs(sprig.TxtFuncMap()).Parse(transferInst))
)

// TransferTool synthesizes the hand-off tool for the given downstream agents.
// Duplicate names are kept in the enum as-is.
func TransferTool(downstream []entity.DownstreamSummary) entity.Tool {
	var sb strings.Builder
	if err := transferInstTmpl.Execute(&sb, map[string]any{
		"Agents": downstream,
	}); err != nil {
		// static template over string fields
		panic(err)
	}

	return entity.NewTool(
		entity.ToolNameTransferAgents,
		strings.TrimSpace(sb.String()),
		entity.ObjectSchema(
			[]string{TransferParamRationale, TransferParamContext, TransferParamDestination},
			entity.StringProperty(TransferParamRationale, "The reasoning why this transfer is needed."),
			entity.StringProperty(TransferParamContext, "Relevant context from the conversation that will help the recipient perform the correct action."),
			entity.StringProperty(
				TransferParamDestination,
				"The more specialized destination_agent that should handle the user's intended request.",
				lo.Map(downstream, func(d entity.DownstreamSummary, _ int) string { return d.Name })...,
			),
		),
	)
}
