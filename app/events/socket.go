package events

import (
	"context"
	"time"

	"bitwise74/social-api/internal"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// Socket upgrades the request and serves the events protocol until the
// client goes away
func Socket(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: d.Config.CORSOrigins,
	})
	if err != nil {
		zap.L().Warn("Websocket accept failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "handler finished")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	hub := d.Events.Hub
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	zap.L().Debug("Events client connected", zap.String("requestID", requestID), zap.Int("clients", hub.Len()))

	go func() {
		defer cancel()

		for msg := range sub.Out {
			writeCtx, writeCancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			writeCancel()

			if err != nil {
				zap.L().Debug("Events write failed", zap.Error(err), zap.String("requestID", requestID))
				return
			}
		}
	}()

	for {
		typ, msg, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				zap.L().Debug("Events read failed", zap.Error(err), zap.String("requestID", requestID))
			}

			conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		if typ != websocket.MessageText {
			continue
		}

		d.Events.Handle(ctx, sub, msg)
	}
}
