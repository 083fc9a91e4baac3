package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

// FinalizeReply guarantees the envelope carries a message and an agent type.
func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	resp := in.Response
	resp.Message = strings.TrimSpace(resp.Message)
	if resp.Message == "" {
		resp.Message = contractx.ApologyMessage
	}
	if resp.AgentType == "" {
		return GraphOutput{}, fmt.Errorf("%w: agent returned no agent type", contractx.ErrValidation)
	}
	return GraphOutput{Response: resp, Intent: in.Intent, StartedAt: in.StartedAt}, nil
}
