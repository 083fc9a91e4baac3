// Package specialist holds the order, product and support agents.
package specialist

import (
	"time"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	logx "github.com/tanpawarit/Chative-Store-Assistant/pkg/logger"
)

// Clock returns the current time. Agents take one so date-derived fields are testable.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func agentLogger(agentType contractx.AgentType, userID int64) zerolog.Logger {
	return logx.Component("specialist").With().
		Str("agent", string(agentType)).
		Int64("user_id", userID).
		Logger()
}
