package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"chatshop.GO/config"
	"chatshop.GO/core/keylock"
	entity "chatshop.GO/model/entity/catalog"
	"chatshop.GO/model/repository/catalog"
	"chatshop.GO/service/session"
)

// ErrCatalogUnavailable wraps every catalog failure surfaced by the engine.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Reply is what one chat action produced: messages for the shopper and the
// slot writes that were persisted.
type Reply struct {
	Messages []Message         `json:"messages"`
	Events   []session.SlotSet `json:"events"`
	Changed  bool              `json:"changed"`
}

func (r *Reply) say(m ...Message) {
	r.Messages = append(r.Messages, m...)
}

func (r *Reply) set(events ...session.SlotSet) {
	r.Events = append(r.Events, events...)
	r.Changed = true
}

type Options struct {
	PageSize       int
	CatalogTimeout time.Duration
	Logger         *slog.Logger
}

// Engine runs the search, pagination and refinement flow. Actions for one
// session id run one at a time; different sessions never wait on each other.
type Engine struct {
	catalog    catalog.Finder
	store      session.Store
	locks      *keylock.Locks
	normalizer *Normalizer
	suggester  *Suggester
	pageSize   int
	timeout    time.Duration
	log        *slog.Logger
}

func NewEngine(finder catalog.Finder, store session.Store, cfg config.SearchConfig, opts Options) *Engine {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		catalog:    finder,
		store:      store,
		locks:      keylock.New(),
		normalizer: NewNormalizer(cfg.PriceAliases),
		suggester:  NewSuggester(cfg.SizeSuggestion, cfg.ColorSuggestion),
		pageSize:   opts.PageSize,
		timeout:    opts.CatalogTimeout,
		log:        opts.Logger.With("component", "search"),
	}
}

// Normalizer exposes the engine's filter normalizer.
func (e *Engine) Normalizer() *Normalizer {
	return e.normalizer
}

func (e *Engine) PageSize() int {
	return e.pageSize
}

// Action names one chat step runnable through Dispatch.
type Action string

const (
	ActionSearch           Action = "search"
	ActionShowMore         Action = "show_more"
	ActionAcceptSuggestion Action = "accept_suggestion"
	ActionRejectSuggestion Action = "reject_suggestion"
	ActionReset            Action = "reset"
)

// ErrUnknownAction is returned by Dispatch for an action it cannot run.
var ErrUnknownAction = errors.New("unknown action")

type step func(ctx context.Context, sessionID string, st State) (*Reply, error)

// Search reconciles entities with the session's filters and runs a fresh search.
func (e *Engine) Search(ctx context.Context, sessionID string, entities []Entity) (*Reply, error) {
	return e.Dispatch(ctx, sessionID, ActionSearch, nil, entities)
}

// ShowMore moves to the next page of the cached results.
func (e *Engine) ShowMore(ctx context.Context, sessionID string) (*Reply, error) {
	return e.Dispatch(ctx, sessionID, ActionShowMore, nil, nil)
}

// AcceptSuggestion merges the pending refinement and searches again. The merged
// filters are kept even when nothing matches, and no new suggestion is made.
func (e *Engine) AcceptSuggestion(ctx context.Context, sessionID string) (*Reply, error) {
	return e.Dispatch(ctx, sessionID, ActionAcceptSuggestion, nil, nil)
}

// RejectSuggestion drops the pending refinement without searching.
func (e *Engine) RejectSuggestion(ctx context.Context, sessionID string) (*Reply, error) {
	return e.Dispatch(ctx, sessionID, ActionRejectSuggestion, nil, nil)
}

// Reset clears the refinement filters, cached results and pending suggestion.
// Name and category survive.
func (e *Engine) Reset(ctx context.Context, sessionID string) (*Reply, error) {
	return e.Dispatch(ctx, sessionID, ActionReset, nil, nil)
}

// Dispatch runs action for the session. Slots in restore are owned by an
// external tracker: they overwrite the stored values before the action reads
// them and are persisted with the action's own writes, all under one session lock.
// Reply.Events holds only the action's writes.
func (e *Engine) Dispatch(ctx context.Context, sessionID string, action Action, restore []session.SlotSet, entities []Entity) (*Reply, error) {
	var run step
	switch action {
	case ActionSearch:
		run = func(ctx context.Context, sessionID string, st State) (*Reply, error) {
			return e.search(ctx, sessionID, st, entities)
		}
	case ActionShowMore:
		run = e.showMore
	case ActionAcceptSuggestion:
		run = e.acceptSuggestion
	case ActionRejectSuggestion:
		run = e.rejectSuggestion
	case ActionReset:
		run = e.reset
	default:
		return nil, errors.Wrapf(ErrUnknownAction, "%q", action)
	}
	return e.withSession(ctx, sessionID, restore, func(st State) (*Reply, error) {
		return run(ctx, sessionID, st)
	})
}

func (e *Engine) search(ctx context.Context, sessionID string, st State, entities []Entity) (*Reply, error) {
	filters := e.normalizer.Normalize(entities, st.Filters)
	products, err := e.find(ctx, sessionID, filters)
	if err != nil {
		return nil, err
	}

	reply := &Reply{}
	if len(products) == 0 {
		reply.say(textMessage(msgNotFound))
		reply.set(clearResultEvents()...)
		return reply, nil
	}

	pager := NewPaginator(products, 0, e.pageSize)
	reply.say(
		textMessage(msgFound, len(products), filters.DisplayName()),
		listMessage(SummaryViews(pager.CurrentPage())),
	)
	suggestion := e.suggester.Decide(filters)
	if suggestion != nil {
		reply.say(suggestionMessage(filters, suggestion))
	}
	reply.set(resultEvents(products)...)
	reply.set(suggestionEvents(suggestion)...)
	reply.set(filterEvents(filters)...)
	return reply, nil
}

func (e *Engine) showMore(_ context.Context, _ string, st State) (*Reply, error) {
	reply := &Reply{}
	pager := NewPaginator(st.Results, st.Offset, e.pageSize)
	pager.Advance()
	if pager.Exhausted() {
		reply.say(textMessage(msgNoMore))
		if st.Offset != pager.Offset() {
			reply.set(session.Set(session.SlotProductOffset, pager.Offset()))
		}
		return reply, nil
	}

	reply.say(listMessage(SummaryViews(pager.CurrentPage())))
	if pager.HasMore() {
		reply.say(textMessage(msgWantMore))
	} else {
		reply.say(textMessage(msgThatsAll))
	}
	reply.set(session.Set(session.SlotProductOffset, pager.Offset()))
	return reply, nil
}

func (e *Engine) acceptSuggestion(ctx context.Context, sessionID string, st State) (*Reply, error) {
	if st.Suggestion == nil {
		return &Reply{}, nil
	}
	s := *st.Suggestion
	filters := s.Apply(st.Filters)
	products, err := e.find(ctx, sessionID, filters)
	if err != nil {
		return nil, err
	}

	reply := &Reply{}
	if len(products) == 0 {
		reply.say(textMessage(msgAcceptedNone))
		reply.set(clearResultEvents()...)
	} else {
		pager := NewPaginator(products, 0, e.pageSize)
		reply.say(
			textMessage(msgAcceptedFound, len(products), filters.DisplayName(), s.Dimension.Label(), s.Value),
			listMessage(SummaryViews(pager.CurrentPage())),
		)
		reply.set(resultEvents(products)...)
	}
	reply.set(suggestionEvents(nil)...)
	reply.set(filterEvents(filters)...)
	return reply, nil
}

func (e *Engine) rejectSuggestion(_ context.Context, sessionID string, st State) (*Reply, error) {
	reply := &Reply{}
	if st.Suggestion == nil {
		return reply, nil
	}
	e.log.Debug("suggestion rejected", "session", sessionID,
		"dimension", st.Suggestion.Dimension, "value", st.Suggestion.Value)
	reply.say(textMessage(msgRejected))
	reply.set(suggestionEvents(nil)...)
	return reply, nil
}

func (e *Engine) reset(context.Context, string, State) (*Reply, error) {
	reply := &Reply{}
	reply.set(
		session.Set(session.SlotColor, nil),
		session.Set(session.SlotSize, nil),
		session.Set(session.SlotPriceRange, nil),
	)
	reply.set(clearResultEvents()...)
	reply.set(suggestionEvents(nil)...)
	return reply, nil
}

// State returns the decoded session state.
func (e *Engine) State(ctx context.Context, sessionID string) (State, error) {
	var out State
	_, err := e.withSession(ctx, sessionID, nil, func(st State) (*Reply, error) {
		out = st
		return &Reply{}, nil
	})
	return out, err
}

// Preview runs the stateless part of the pipeline: normalize against empty
// prior filters, query, and apply the price band.
func (e *Engine) Preview(ctx context.Context, entities []Entity) (FilterSet, []entity.Product, error) {
	filters := e.normalizer.Normalize(entities, FilterSet{})
	products, err := e.find(ctx, "", filters)
	return filters, products, err
}

// withSession holds the session lock across load, fn and persisting the
// restored slots followed by fn's events.
func (e *Engine) withSession(ctx context.Context, sessionID string, restore []session.SlotSet, fn func(State) (*Reply, error)) (*Reply, error) {
	unlock := e.locks.Lock(sessionID)
	defer unlock()

	slots, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "load session %s", sessionID)
	}
	if len(restore) > 0 {
		if slots == nil {
			slots = session.Slots{}
		}
		for _, ev := range restore {
			if ev.Value == nil {
				delete(slots, ev.Name)
			} else {
				slots[ev.Name] = ev.Value
			}
		}
	}
	st, err := StateFromSlots(slots)
	if err != nil {
		return nil, errors.Wrapf(session.ErrSessionStore, "session %s: %v", sessionID, err)
	}

	reply, err := fn(st)
	if err != nil {
		return nil, err
	}
	writes := make([]session.SlotSet, 0, len(restore)+len(reply.Events))
	writes = append(writes, restore...)
	writes = append(writes, reply.Events...)
	if len(writes) > 0 {
		if err := e.store.Apply(ctx, sessionID, writes); err != nil {
			return nil, errors.Wrapf(err, "save session %s", sessionID)
		}
	}
	return reply, nil
}

// find queries the catalog and keeps products with a variant in the price band.
func (e *Engine) find(ctx context.Context, sessionID string, filters FilterSet) ([]entity.Product, error) {
	q := BuildQuery(filters)
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	found, err := e.catalog.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	products := make([]entity.Product, 0, len(found))
	for i := range found {
		if MatchesBand(EffectivePrices(found[i].Variants), filters.PriceRange) {
			products = append(products, found[i])
		}
	}
	e.log.Debug("catalog search", "session", sessionID, "query", q,
		"price_range", filters.PriceRange, "found", len(found), "matched", len(products))
	return products, nil
}

func resultEvents(products []entity.Product) []session.SlotSet {
	return []session.SlotSet{
		session.Set(session.SlotMatchedProducts, products),
		session.Set(session.SlotProductOffset, 0),
	}
}

func clearResultEvents() []session.SlotSet {
	return []session.SlotSet{
		session.Set(session.SlotMatchedProducts, nil),
		session.Set(session.SlotProductOffset, nil),
	}
}
