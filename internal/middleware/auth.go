package middleware

import (
	"context"
	"strings"

	"github.com/giveawayhub/backend/pkg/errorx"
	"github.com/giveawayhub/backend/pkg/router"
	"github.com/giveawayhub/backend/pkg/xcontext"
)

// Authenticate verifies the collaborator service token and picks up the user
// the request acts on behalf of. The collaborator is trusted to assert user
// identity; it is the only caller holding the token.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return ctx, errorx.New(errorx.Unauthenticated, "Require authentication")
		}

		serviceToken := xcontext.Configs(ctx).ApiServer.ServiceToken
		if serviceToken != "" {
			token := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
			if token != serviceToken {
				return ctx, errorx.New(errorx.Unauthenticated, "Invalid service token")
			}
		}

		if userID := req.Header.Get("X-User-Id"); userID != "" {
			ctx = xcontext.WithRequestUserID(ctx, userID)
		}

		return ctx, nil
	}
}
