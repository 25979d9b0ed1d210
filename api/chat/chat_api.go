package chat

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"chatshop.GO/api"
	"chatshop.GO/bootstrap"
	"chatshop.GO/service/search"
)

func init() {
	api.RegisterModule("chat", RegisterChatRoutes)
}

// Request is the body shared by every chat action.
type Request struct {
	SessionID string          `json:"session_id"`
	Entities  []search.Entity `json:"entities"`
}

type action func(ctx context.Context, sessionID string, req *Request) (*search.Reply, error)

func RegisterChatRoutes(apiGroup *echo.Group, svc *bootstrap.ServiceContext) {
	g := apiGroup.Group("/chat")
	engine := svc.Engine
	logger := svc.Logger

	// POST /api/chat/search – normalize entities against the session and search
	g.POST("/search", handle(logger, "search", func(ctx context.Context, id string, req *Request) (*search.Reply, error) {
		return engine.Search(ctx, id, req.Entities)
	}))
	g.POST("/more", handle(logger, "more", func(ctx context.Context, id string, _ *Request) (*search.Reply, error) {
		return engine.ShowMore(ctx, id)
	}))
	g.POST("/suggestion/accept", handle(logger, "accept", func(ctx context.Context, id string, _ *Request) (*search.Reply, error) {
		return engine.AcceptSuggestion(ctx, id)
	}))
	g.POST("/suggestion/reject", handle(logger, "reject", func(ctx context.Context, id string, _ *Request) (*search.Reply, error) {
		return engine.RejectSuggestion(ctx, id)
	}))
	g.POST("/reset", handle(logger, "reset", func(ctx context.Context, id string, _ *Request) (*search.Reply, error) {
		return engine.Reset(ctx, id)
	}))

	// GET /api/chat/session/:id – filters, offset and pending suggestion
	g.GET("/session/:id", func(c echo.Context) error {
		id := c.Param("id")
		st, err := engine.State(c.Request().Context(), id)
		if err != nil {
			logger.Error("load session failed", "session", id, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"messages": []search.Message{search.FailureMessage()}})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"session_id":   id,
			"filters":      st.Filters,
			"offset":       st.Offset,
			"result_count": len(st.Results),
			"suggestion":   st.Suggestion,
		})
	})
}

func handle(logger *slog.Logger, name string, run action) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		var req Request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if req.SessionID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
		}

		reply, err := run(c.Request().Context(), req.SessionID, &req)
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set(api.HeaderRequestDuration, strconv.FormatInt(duration, 10))
		if err != nil {
			logger.Error("chat action failed", "action", name, "session", req.SessionID, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"messages": []search.Message{search.FailureMessage()},
			})
		}
		return c.JSON(http.StatusOK, reply)
	}
}
