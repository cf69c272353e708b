package forecast

import (
	"sort"
	"time"

	"github.com/vfg2006/traffic-balance-api/internal/domain"
)

type eventOptions struct {
	coverDays int
}

// EventOption configura a projeção de eventos
type EventOption func(*eventOptions)

// WithCoverDays define quantos dias de gasto a recarga sugerida deve cobrir
func WithCoverDays(days int) EventOption {
	return func(o *eventOptions) {
		if days > 0 {
			o.coverDays = days
		}
	}
}

// ProjectEvents gera um evento por cliente e plataforma com próxima recarga agendada.
// Recarga contínua, gasto diário zerado e Meta desativado ficam de fora.
// A ordem de entrada é preservada.
func ProjectEvents(records []*domain.TrackingRecord, now time.Time, opts ...EventOption) []domain.RechargeEvent {
	options := eventOptions{coverDays: ReferenceWindowDays}
	for _, opt := range opts {
		opt(&options)
	}

	events := make([]domain.RechargeEvent, 0)
	for _, record := range records {
		if record == nil {
			continue
		}

		snapshot := Normalize(record)
		for _, in := range snapshot.Inputs() {
			if in.NextRecharge == nil || !in.Eligible() || in.DailySpend <= 0 {
				continue
			}

			result := Compute(in.Balance, in.DailySpend, now)

			events = append(events, domain.RechargeEvent{
				ClientID:        record.ClientID,
				ClientName:      record.ClientName,
				ClientLogo:      record.ClientLogo,
				ManagerID:       record.ManagerID,
				Platform:        in.Platform,
				ScheduledDate:   *in.NextRecharge,
				Saldo:           in.Balance,
				ValorDiario:     in.DailySpend,
				DaysRemaining:   result.DaysRemaining,
				Tier:            result.Tier,
				SuggestedAmount: SuggestRecharge(in.Balance, in.DailySpend, options.coverDays),
			})
		}
	}

	return events
}

// FilterEventsByPeriod mantém os eventos agendados entre start e end (datas inclusivas)
func FilterEventsByPeriod(events []domain.RechargeEvent, start, end *time.Time) []domain.RechargeEvent {
	if start == nil && end == nil {
		return events
	}

	filtered := make([]domain.RechargeEvent, 0, len(events))
	for _, event := range events {
		day := event.ScheduledDate.Format(time.DateOnly)
		if start != nil && day < start.Format(time.DateOnly) {
			continue
		}
		if end != nil && day > end.Format(time.DateOnly) {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}

// GroupByDay agrupa os eventos por data agendada, em ordem crescente de data.
// Dentro do dia, o mais urgente vem primeiro.
func GroupByDay(events []domain.RechargeEvent) []domain.CalendarDay {
	byDay := make(map[string][]domain.RechargeEvent)
	for _, event := range events {
		day := event.ScheduledDate.Format(time.DateOnly)
		byDay[day] = append(byDay[day], event)
	}

	days := make([]domain.CalendarDay, 0, len(byDay))
	for day, dayEvents := range byDay {
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return lessDays(dayEvents[i].DaysRemaining, dayEvents[j].DaysRemaining, dayEvents[i].ClientName, dayEvents[j].ClientName)
		})
		days = append(days, domain.CalendarDay{Date: day, Events: dayEvents})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days
}
