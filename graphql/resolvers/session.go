package resolvers

import (
	"context"

	"chatshop.GO/graphql"
	gqlmodels "chatshop.GO/graphql/models"
	"chatshop.GO/service/search"
)

type SessionArgs struct {
	ID *string
}

// Session shows the stored state of a chat session, nil when no id is given.
func (r *QueryResolver) Session(ctx context.Context, args SessionArgs) (*gqlmodels.Session, error) {
	id := graphql.SessionIDFromContext(ctx)
	if args.ID != nil && *args.ID != "" {
		id = *args.ID
	}
	if id == "" {
		return nil, nil
	}
	st, err := r.engine.State(ctx, id)
	if err != nil {
		return nil, err
	}

	pager := search.NewPaginator(st.Results, st.Offset, r.engine.PageSize())
	out := &gqlmodels.Session{
		ID:          id,
		Filters:     toFilters(st.Filters),
		Offset:      int32(pager.Offset()),
		ResultCount: int32(pager.Len()),
		CurrentPage: toProducts(pager.CurrentPage()),
	}
	if st.Suggestion != nil {
		out.Suggestion = &gqlmodels.Suggestion{
			Dimension: string(st.Suggestion.Dimension),
			Value:     st.Suggestion.Value,
		}
	}
	return out, nil
}
