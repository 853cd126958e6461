package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/preview"
)

func ticketIDs(tickets []domain.SupportTicket) []int64 {
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestFilterTickets(t *testing.T) {
	fixtures := preview.Default().Tickets

	tests := []struct {
		name   string
		filter domain.TicketFilter
		want   []int64
	}{
		{"no criteria", domain.TicketFilter{}, []int64{1, 2, 3, 4, 5, 6}},
		{"open and high", domain.TicketFilter{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh}, []int64{1, 4}},
		{"january inclusive", domain.TicketFilter{DateFrom: "2024-01-01", DateTo: "2024-01-31"}, []int64{1, 2, 3, 6}},
		{"single day", domain.TicketFilter{DateFrom: "2024-01-31", DateTo: "2024-01-31"}, []int64{3, 6}},
		{"from only", domain.TicketFilter{DateFrom: "2024-02-01"}, []int64{4}},
		{"unparsable bound ignored", domain.TicketFilter{DateFrom: "ayer"}, []int64{1, 2, 3, 4, 5, 6}},
		{"search is case insensitive", domain.TicketFilter{Search: "VOUCHER"}, []int64{3}},
		{"search requester email", domain.TicketFilter{Search: "beta.mx"}, []int64{2, 5}},
		{"search folio", domain.TicketFilter{Search: "eva-0006"}, []int64{6}},
		{"search company", domain.TicketFilter{Search: "gamma"}, []int64{3, 6}},
		{"company", domain.TicketFilter{CompanyID: ptr(int64(3))}, []int64{3, 6}},
		{"channel", domain.TicketFilter{Channel: domain.TicketChannelEmail}, []int64{2, 5}},
		{"nothing matches", domain.TicketFilter{Status: domain.TicketStatusSolved, Priority: domain.TicketPriorityHigh}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ticketIDs(FilterTickets(fixtures, tt.filter, time.UTC)))
		})
	}
}

func TestFilterTicketsComparesCalendarDatesInLocation(t *testing.T) {
	created := time.Date(2024, 2, 1, 3, 0, 0, 0, time.UTC)
	tickets := []domain.SupportTicket{
		{ID: 1, CreatedAt: &created},
		{ID: 2},
	}
	january := domain.TicketFilter{DateFrom: "2024-01-01", DateTo: "2024-01-31"}

	central := time.FixedZone("CST", -6*60*60)
	assert.Equal(t, []int64{1}, ticketIDs(FilterTickets(tickets, january, central)))
	assert.Empty(t, FilterTickets(tickets, january, time.UTC))
	assert.Len(t, FilterTickets(tickets, domain.TicketFilter{}, nil), 2)
}
