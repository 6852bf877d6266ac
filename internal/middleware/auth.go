package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/pkg/authenticator"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/router"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

type AuthVerifier struct {
	tokenEngine    authenticator.TokenEngine[model.AccessToken]
	realtimePrefix string
}

// NewAuthVerifier verifies bearer tokens. Requests under realtimePrefix may
// carry the token in the access_token query parameter instead, because
// browsers cannot set headers on websocket handshakes.
func NewAuthVerifier(
	tokenEngine authenticator.TokenEngine[model.AccessToken],
	realtimePrefix string,
) *AuthVerifier {
	return &AuthVerifier{
		tokenEngine:    tokenEngine,
		realtimePrefix: realtimePrefix,
	}
}

// Verify returns the username of the verified token of r.
func (a *AuthVerifier) Verify(r *http.Request) (string, error) {
	token := a.token(r)
	if token == "" {
		return "", errorx.New(errorx.Unauthenticated, "Not authorized")
	}

	claims, err := a.tokenEngine.Claims(token)
	if err != nil || claims.Subject == "" {
		return "", errorx.New(errorx.Unauthenticated, "Not authorized")
	}

	return claims.Subject, nil
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return nil, errorx.New(errorx.Unauthenticated, "Not authorized")
		}

		username, err := a.Verify(req)
		if err != nil {
			return nil, err
		}

		return xcontext.WithRequestUsername(ctx, username), nil
	}
}

func (a *AuthVerifier) token(r *http.Request) string {
	auth, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if found && auth == "Bearer" && token != "" {
		return token
	}

	if a.realtimePrefix != "" && strings.HasPrefix(r.URL.Path, a.realtimePrefix) {
		return r.URL.Query().Get("access_token")
	}

	return ""
}
