package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionKey      = "dungeon.session_id"
	sessionHeader   = "X-Session-ID"
	sessionCookie   = "session_id"
	authHeader      = "Authorization"
	tokenQueryParam = "token"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSubject    = errors.New("token carries no user id")
	ErrNoSession    = errors.New("no session")
)

// Authenticator resolves the caller's session id. A valid JWT always wins;
// the header and cookie fallbacks only apply when Required is false.
type Authenticator struct {
	Secret   []byte
	Required bool
	Leeway   time.Duration
	LoginURL string
}

func (a Authenticator) Resolve(ctx *app.RequestContext) (string, error) {
	token := bearerToken(ctx)
	if token != "" && len(a.Secret) > 0 {
		sid, err := a.Verify(token)
		if err == nil || a.Required {
			return sid, err
		}
	}
	if a.Required {
		return "", ErrMissingToken
	}
	if sid := strings.TrimSpace(string(ctx.GetHeader(sessionHeader))); sid != "" {
		return sid, nil
	}
	if sid := strings.TrimSpace(string(ctx.Cookie(sessionCookie))); sid != "" {
		return sid, nil
	}
	return "", ErrNoSession
}

// Verify checks an HS256 token and returns its sub or user_id claim.
func (a Authenticator) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(a.Leeway))
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	for _, key := range []string{"sub", "user_id"} {
		if sid := claimString(claims[key]); sid != "" {
			return sid, nil
		}
	}
	return "", ErrNoSubject
}

func claimString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

// SignToken mints an HS256 token for subject.
func SignToken(secret []byte, subject string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func bearerToken(ctx *app.RequestContext) string {
	h := strings.TrimSpace(string(ctx.GetHeader(authHeader)))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(ctx.Query(tokenQueryParam))
}

func (a Authenticator) middleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		sid, err := a.Resolve(ctx)
		if err != nil {
			body := map[string]any{
				"success": false,
				"error":   "Authentication required",
				"message": err.Error(),
			}
			if a.LoginURL != "" {
				body["loginUrl"] = a.LoginURL
			}
			ctx.AbortWithStatusJSON(consts.StatusUnauthorized, body)
			return
		}
		ctx.Set(sessionKey, sid)
		ctx.Next(c)
	}
}

func sessionID(ctx *app.RequestContext) string {
	return ctx.GetString(sessionKey)
}
