package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/webserver/core/logger"
	"github.com/dmitrymomot/webserver/core/wsrouter"
)

// echo writes every message back to the sender.
func echo(ctx *wsrouter.Context) error {
	conn := ctx.Conn()
	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(typ, msg); err != nil {
			return err
		}
	}
}

// chatRoom echoes text messages prefixed with the room name.
func chatRoom(ctx *wsrouter.Context) error {
	conn := ctx.Conn()
	room := ctx.Param("room")
	nick := ctx.Query("nick")
	if nick == "" {
		nick = "anonymous"
	}

	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if typ != websocket.TextMessage {
			continue
		}
		line := "[" + room + "] " + nick + ": " + string(msg)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return err
		}
	}
}

func listRoutes(routes wsrouter.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(routes.Routes())
	}
}

// connectionLog logs each accepted WebSocket connection when it ends.
func connectionLog(log *slog.Logger) wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc) wsrouter.HandlerFunc {
		return func(ctx *wsrouter.Context) error {
			start := time.Now()
			err := next(ctx)

			attrs := []any{
				logger.Component("ws"),
				logger.Path(ctx.Path()),
				logger.Pattern(ctx.Pattern()),
				logger.RemoteAddr(ctx.Request().RemoteAddr),
				logger.Elapsed(start),
			}

			var ce *websocket.CloseError
			if err != nil && !errors.As(err, &ce) {
				log.WarnContext(ctx, "websocket connection failed", append(attrs, logger.Error(err))...)
				return err
			}
			log.InfoContext(ctx, "websocket connection closed", attrs...)
			return err
		}
	}
}
