package specialist

import (
	"context"
	"time"

	"github.com/google/uuid"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/knowledge"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
)

var supportSuggestedActions = []string{"Contact support team", "Check order status", "Start return process"}

type SupportAgent struct {
	gen     contractx.Generator
	faq     *knowledge.FAQ
	tickets contractx.TicketPublisher
	system  string
	userTpl string
	clock   Clock
}

var _ contractx.Agent = (*SupportAgent)(nil)

// NewSupportAgent builds the support agent. tickets may be nil.
func NewSupportAgent(gen contractx.Generator, faq *knowledge.FAQ, tickets contractx.TicketPublisher, prompts promptx.PromptSet, clock Clock) *SupportAgent {
	return &SupportAgent{
		gen:     gen,
		faq:     faq,
		tickets: tickets,
		system:  prompts.Support,
		userTpl: prompts.SupportUser,
		clock:   clock,
	}
}

func (a *SupportAgent) SearchFAQ(query string) (string, bool) {
	return a.faq.Search(query)
}

func (a *SupportAgent) Process(ctx context.Context, userID int64, message string) contractx.AgentResponse {
	logger := agentLogger(contractx.AgentTypeCustomerSupport, userID)

	answer, matched := a.SearchFAQ(message)
	faqContext := ""
	if matched {
		faqContext = "Relevant FAQ: " + answer + "\n\n"
	}

	prompt, err := promptx.Render(ctx, a.userTpl, map[string]any{
		"message":     message,
		"faq_context": faqContext,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("support prompt render failed")
		prompt = "User support request: " + message + "\n\n" + faqContext + "Provide a helpful customer support response."
	}

	reply := a.gen.Complete(ctx, prompt, a.system)
	a.publishTicket(ctx, userID, message, matched)
	logger.Debug().Bool("faq_matched", matched).Msg("support agent replied")

	return contractx.AgentResponse{
		Message:          reply,
		AgentType:        contractx.AgentTypeCustomerSupport,
		SuggestedActions: append([]string(nil), supportSuggestedActions...),
	}
}

func (a *SupportAgent) publishTicket(ctx context.Context, userID int64, message string, faqMatched bool) {
	if a.tickets == nil {
		return
	}
	ticket := contractx.SupportTicket{
		TicketID:   uuid.NewString(),
		UserID:     userID,
		Message:    message,
		FAQMatched: faqMatched,
		CreatedAt:  a.clock.now().UTC().Format(time.RFC3339),
	}
	if err := a.tickets.PublishTicket(ctx, ticket); err != nil {
		logger := agentLogger(contractx.AgentTypeCustomerSupport, userID)
		logger.Warn().
			Err(err).
			Str("ticket_id", ticket.TicketID).
			Msg("support ticket publish failed")
	}
}
