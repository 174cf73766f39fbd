package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

// buildEventWhere translates the filter clauses into a WHERE clause with
// positional arguments. An empty filter yields no WHERE clause.
func buildEventWhere(f *domain.EventFilter) (string, []any, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, c := range f.Clauses {
		switch c := c.(type) {
		case domain.InitiatorIn:
			conds = append(conds, "e.initiator_id = ANY("+arg(pq.Array(c.IDs))+")")
		case domain.StateIn:
			states := make([]string, 0, len(c.States))
			for _, s := range c.States {
				states = append(states, string(s))
			}
			conds = append(conds, "e.state = ANY("+arg(pq.Array(states))+")")
		case domain.CategoryIn:
			conds = append(conds, "e.category_id = ANY("+arg(pq.Array(c.IDs))+")")
		case domain.TextMatch:
			p := arg("%" + escapeLike(c.Text) + "%")
			conds = append(conds, "(e.annotation ILIKE "+p+" OR e.description ILIKE "+p+")")
		case domain.PaidIs:
			conds = append(conds, "e.paid = "+arg(c.Paid))
		case domain.DateAfter:
			conds = append(conds, "e.event_date > "+arg(c.T))
		case domain.DateBefore:
			conds = append(conds, "e.event_date < "+arg(c.T))
		case domain.DateBetween:
			conds = append(conds, "e.event_date BETWEEN "+arg(c.Start)+" AND "+arg(c.End))
		case domain.Available:
			conds = append(conds, "(e.participant_limit = 0 OR e.confirmed_requests < e.participant_limit)")
		default:
			return "", nil, fmt.Errorf("unsupported event filter clause %q", c.Name())
		}
	}
	if len(conds) == 0 {
		return "", args, nil
	}
	return "\n\t\tWHERE " + strings.Join(conds, " AND "), args, nil
}

func eventOrderBy(s domain.EventSort) string {
	if s == domain.SortByEventDate {
		return "\n\t\tORDER BY e.event_date ASC, e.id ASC"
	}
	return "\n\t\tORDER BY e.id DESC"
}

func appendPaging(query string, args []any, p domain.PaginationParams) (string, []any) {
	if !p.Unpaged() {
		args = append(args, p.Limit())
		query += fmt.Sprintf("\n\t\tLIMIT $%d", len(args))
	}
	if p.Offset() > 0 {
		args = append(args, p.Offset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
