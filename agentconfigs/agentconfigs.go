// Package agentconfigs holds the agent sets shipped with the service.
package agentconfigs

import (
	"github.com/habiliai/shopagents/agent"
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/shopapi"
)

const (
	FrontDeskAuthenticationKey = "frontDeskAuthentication"
	TechnicianDashboardKey     = "technicianDashboard"
)

// Register adds the built-in sets. frontDeskAuthentication is the default.
func Register(reg *agent.Registry, shop shopapi.Client) error {
	if err := reg.Register(FrontDeskAuthenticationKey, FrontDeskAuthentication(shop), true); err != nil {
		return err
	}
	if err := reg.Register(TechnicianDashboardKey, TechnicianDashboard(shop), false); err != nil {
		return err
	}

	return nil
}

// FrontDeskAuthentication builds the customer-facing set. The caller is
// identified first, then handed to service, which can bring in automotive for
// diagnostic questions and take the conversation back afterwards.
func FrontDeskAuthentication(shop shopapi.Client) []*entity.AgentDefinition {
	authentication := authenticationAgent(shop)
	service := serviceAgent(shop)
	automotive := automotiveAgent(shop)

	authentication.Downstream = []*entity.AgentDefinition{service}
	service.Downstream = []*entity.AgentDefinition{automotive}
	automotive.Downstream = []*entity.AgentDefinition{service}

	return []*entity.AgentDefinition{authentication, service, automotive}
}

// TechnicianDashboard builds the set used from the shop floor.
func TechnicianDashboard(shop shopapi.Client) []*entity.AgentDefinition {
	technician := technicianAgent()
	automotive := automotiveAgent(shop)

	technician.Downstream = []*entity.AgentDefinition{automotive}
	automotive.Downstream = []*entity.AgentDefinition{technician}

	return []*entity.AgentDefinition{technician, automotive}
}
