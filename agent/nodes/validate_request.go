package orchestratornode

import (
	"strings"
	"time"

	"github.com/google/uuid"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

type GraphInput struct {
	RequestID string
	UserID    int64
	Message   string
}

type GraphOutput struct {
	Response  contractx.AgentResponse
	Intent    contractx.Intent
	StartedAt time.Time
}

type GraphState struct {
	RequestID string
	UserID    int64
	Message   string
	StartedAt time.Time

	Intent   contractx.Intent
	Response contractx.AgentResponse
}

// ValidateRequest normalises the inbound request. It never rejects: a blank message
// is carried through and later resolves to the clarification branch.
func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	requestID := strings.TrimSpace(in.RequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	userID := in.UserID
	if userID <= 0 {
		userID = contractx.DefaultUserID
	}

	return &GraphState{
		RequestID: requestID,
		UserID:    userID,
		Message:   strings.TrimSpace(in.Message),
		StartedAt: nowFn().UTC(),
	}, nil
}
