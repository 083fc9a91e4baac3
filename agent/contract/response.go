package contract

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	// ApologyMessage replaces the reply whenever text generation is exhausted.
	ApologyMessage = "I'm having trouble processing your request right now. Please try again later."

	// DefaultUserID is used for anonymous or malformed user identifiers.
	DefaultUserID int64 = 1
)

// AgentResponse is the envelope every route returns to the boundary.
type AgentResponse struct {
	Message          string         `json:"message"`
	AgentType        AgentType      `json:"agent_type"`
	Orders           []Order        `json:"orders,omitempty"`
	Products         []Product      `json:"products,omitempty"`
	FilterCommand    *FilterCommand `json:"filter_command,omitempty"`
	ShouldNavigate   bool           `json:"should_navigate,omitempty"`
	SuggestedActions []string       `json:"suggested_actions,omitempty"`
}

type agentResponseJSON AgentResponse

// MarshalJSON keeps the agent-specific keys present even when empty, so the storefront
// can rely on `orders` for order tracking and `products`/`filter_command`/`should_navigate`
// for recommendations.
func (r AgentResponse) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(agentResponseJSON(r))
	if err != nil {
		return nil, err
	}

	extra := map[string]any{}
	switch r.AgentType {
	case AgentTypeOrderTracking:
		if len(r.Orders) == 0 {
			extra["orders"] = []Order{}
		}
	case AgentTypeProductRecommendation:
		if len(r.Products) == 0 {
			extra["products"] = []Product{}
		}
		if r.FilterCommand == nil {
			extra["filter_command"] = nil
		}
		if !r.ShouldNavigate {
			extra["should_navigate"] = false
		}
	}
	if len(extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// ParseUserID normalises a boundary user identifier. Absent, anonymous,
// non-numeric and zero values fall back to DefaultUserID.
func ParseUserID(raw string) int64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "anonymous" {
		return DefaultUserID
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return DefaultUserID
		}
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return DefaultUserID
	}
	return id
}
