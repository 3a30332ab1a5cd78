package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/eventhive-api/internal/api/handler/v1/response"
	"github.com/eventhive/eventhive-api/internal/domain"
	"github.com/eventhive/eventhive-api/internal/pkg/jwthelper"
)

const (
	// CtxKeyUserID and CtxKeyUserRole are where VerifyJWT stores the
	// resolved identity for downstream handlers.
	CtxKeyUserID   = "userID"
	CtxKeyUserRole = "userRole"

	jwtCookieName = "jwt"
)

var errNoToken = errors.New("not authorized, no token provided")

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT resolves the acting identity from a bearer header or the
// http-only jwt cookie before any protected handler runs.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoToken))
			return
		}

		claims, err := jwthelper.VerifyAccessToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Set(CtxKeyUserRole, claims.Role)
		ctx.Next()
	}
}

// RequireRoles gates a route group to the given roles. It must run
// after VerifyJWT.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := ctx.Get(CtxKeyUserRole)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoToken))
			return
		}

		current, ok := role.(domain.Role)
		if ok {
			for _, allowed := range roles {
				if current == allowed {
					ctx.Next()
					return
				}
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("access denied, insufficient role")))
	}
}

func extractToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := ctx.Cookie(jwtCookieName); err == nil {
		return cookie
	}

	return ""
}
