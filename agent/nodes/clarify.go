package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

const ClarificationMessage = "I'm not sure what you're looking for. Would you like to browse products, check an order, or get customer support?"

var clarificationActions = []string{
	"Show me popular products",
	"Where is my order?",
	"I need help with a return",
}

// ClarificationResponse is the static reply for messages no agent handles.
func ClarificationResponse() contractx.AgentResponse {
	return contractx.AgentResponse{
		Message:          ClarificationMessage,
		AgentType:        contractx.AgentTypeGeneral,
		SuggestedActions: append([]string(nil), clarificationActions...),
	}
}

func Clarify(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Response = ClarificationResponse()
	return FinalizeReply(in)
}
