package specialist

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	qstashx "github.com/tanpawarit/Chative-Store-Assistant/pkg/qstash"
)

// QStashTickets publishes support tickets to a QStash destination.
type QStashTickets struct {
	client      *qstashx.Client
	destination string
}

var _ contractx.TicketPublisher = (*QStashTickets)(nil)

func NewQStashTickets(client *qstashx.Client, destination string) *QStashTickets {
	return &QStashTickets{client: client, destination: destination}
}

func (q *QStashTickets) PublishTicket(ctx context.Context, ticket contractx.SupportTicket) error {
	if _, err := q.client.Publish(ctx, q.destination, ticket); err != nil {
		return fmt.Errorf("%w: ticket %s: %w", contractx.ErrPublish, ticket.TicketID, err)
	}
	return nil
}
