// Package rasa serves the engine over the Rasa action-server webhook protocol.
package rasa

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"chatshop.GO/api"
	"chatshop.GO/bootstrap"
	"chatshop.GO/service/search"
	"chatshop.GO/service/session"
)

func init() {
	api.RegisterRoute("rasa-webhook", RegisterWebhookRoutes)
}

// Action names as declared in the assistant's domain.
const (
	ActionSearchProducts   = "action_search_products"
	ActionShowMore         = "action_show_more_products"
	ActionRejectSuggestion = "action_suggest_more_products"
	ActionAcceptSuggestion = "action_accept_suggestion"
	ActionResetSearch      = "action_reset_search_slots"
)

// filterSlots are owned by the tracker and copied into the store before each action.
var filterSlots = []string{
	session.SlotName,
	session.SlotColor,
	session.SlotSize,
	session.SlotPriceRange,
	session.SlotCategoryID,
}

type ActionRequest struct {
	NextAction string  `json:"next_action"`
	SenderID   string  `json:"sender_id"`
	Tracker    Tracker `json:"tracker"`
}

type Tracker struct {
	SenderID      string                 `json:"sender_id"`
	Slots         map[string]interface{} `json:"slots"`
	LatestMessage struct {
		Entities []TrackerEntity `json:"entities"`
	} `json:"latest_message"`
}

type TrackerEntity struct {
	Entity string      `json:"entity"`
	Value  interface{} `json:"value"`
}

type Event struct {
	Event string      `json:"event"`
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type ActionResponse struct {
	Events    []Event          `json:"events"`
	Responses []search.Message `json:"responses"`
}

// actions maps domain action names onto engine actions.
var actions = map[string]search.Action{
	ActionSearchProducts:   search.ActionSearch,
	ActionShowMore:         search.ActionShowMore,
	ActionRejectSuggestion: search.ActionRejectSuggestion,
	ActionAcceptSuggestion: search.ActionAcceptSuggestion,
	ActionResetSearch:      search.ActionReset,
}

func RegisterWebhookRoutes(e *echo.Echo, svc *bootstrap.ServiceContext) {
	engine := svc.Engine

	// POST /webhook – Rasa calls this with the tracker for every custom action
	e.POST("/webhook", func(c echo.Context) error {
		var req ActionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		action, ok := actions[req.NextAction]
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error":       fmt.Sprintf("No registered action found for name '%s'.", req.NextAction),
				"action_name": req.NextAction,
			})
		}
		sender := req.SenderID
		if sender == "" {
			sender = req.Tracker.SenderID
		}
		if sender == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sender_id is required"})
		}

		// tracker slots are overlaid inside the same session lock as the action
		reply, err := engine.Dispatch(c.Request().Context(), sender, action,
			trackerSlots(req.Tracker.Slots), entities(req.Tracker.LatestMessage.Entities))
		if err != nil {
			svc.Logger.Error("rasa action failed", "action", req.NextAction, "sender", sender, "err", err)
			return c.JSON(http.StatusOK, ActionResponse{
				Events:    []Event{},
				Responses: []search.Message{search.FailureMessage()},
			})
		}
		return c.JSON(http.StatusOK, toResponse(reply))
	})
}

func trackerSlots(slots map[string]interface{}) []session.SlotSet {
	events := make([]session.SlotSet, 0, len(filterSlots))
	for _, name := range filterSlots {
		var value interface{}
		if s := scalar(slots[name]); s != "" {
			value = s
		}
		events = append(events, session.Set(name, value))
	}
	return events
}

func entities(in []TrackerEntity) []search.Entity {
	out := make([]search.Entity, 0, len(in))
	for _, ent := range in {
		v := scalar(ent.Value)
		if ent.Entity == "" || v == "" {
			continue
		}
		out = append(out, search.Entity{Entity: ent.Entity, Value: v})
	}
	return out
}

// scalar renders string and numeric values; anything else is treated as unset.
func scalar(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

// toResponse converts the reply; the matched product cache stays server side.
func toResponse(reply *search.Reply) ActionResponse {
	resp := ActionResponse{Events: []Event{}, Responses: reply.Messages}
	if resp.Responses == nil {
		resp.Responses = []search.Message{}
	}
	for _, ev := range reply.Events {
		if ev.Name == session.SlotMatchedProducts {
			continue
		}
		resp.Events = append(resp.Events, Event{Event: "slot", Name: ev.Name, Value: ev.Value})
	}
	return resp
}
