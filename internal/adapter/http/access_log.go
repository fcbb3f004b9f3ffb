package httpadapter

import (
	"context"
	"time"

	"dungeoncore/internal/logs"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func accessLogMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		rid := string(ctx.GetHeader(requestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Response.Header.Set(requestIDHeader, rid)

		ctx.Next(c)

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", string(ctx.Method())),
			zap.String("route", ctx.FullPath()),
			zap.String("path", string(ctx.Path())),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if sid := sessionID(ctx); sid != "" {
			fields = append(fields, zap.String("session_id", sid))
		}
		if ctx.Response.StatusCode() >= 500 {
			logs.Warn("http request", fields...)
			return
		}
		logs.Info("http request", fields...)
	}
}
