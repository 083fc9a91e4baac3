package orchestratornode

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	metricsx "github.com/tanpawarit/Chative-Store-Assistant/pkg/metrics"
)

// AgentTable maps every routable intent to the agent that handles it.
// Intents missing from the table take the clarification branch.
type AgentTable map[contractx.Intent]contractx.Agent

func NewAgentTable(registry contractx.Registry) AgentTable {
	return AgentTable{
		contractx.IntentProductSearch:   registry.Products(),
		contractx.IntentOrderStatus:     registry.Orders(),
		contractx.IntentCustomerSupport: registry.Support(),
	}
}

// Lookup returns the agent for intent, or false when the intent is not routable.
func (t AgentTable) Lookup(intent contractx.Intent) (contractx.Agent, bool) {
	agent, ok := t[intent]
	if !ok || agent == nil {
		return nil, false
	}
	return agent, true
}

func DispatchAgent(
	ctx context.Context,
	in *GraphState,
	agents AgentTable,
	metrics *metricsx.Recorder,
) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	agent, ok := agents.Lookup(in.Intent)
	if !ok {
		return GraphOutput{}, fmt.Errorf("%w: no agent for intent=%q", contractx.ErrValidation, in.Intent)
	}

	started := time.Now()
	resp := agent.Process(ctx, in.UserID, in.Message)
	metrics.ObserveAgent(string(resp.AgentType), time.Since(started))

	in.Response = resp
	return FinalizeReply(in)
}
