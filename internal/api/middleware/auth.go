package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clubdesk/portal-api/internal/pkg/jwthelper"
)

// ContextKeyUserID is where the authenticator stores the verified caller ID.
const ContextKeyUserID = "userID"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT validates the bearer token and stores the caller's user ID in
// the request context. The admin flag is deliberately not taken from the
// token; privileged handlers look it up from the database.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(ctx, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(ctx, "malformed authorization header")
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, parts[1])
		if err != nil {
			if errors.Is(err, jwthelper.ErrInvalidToken) {
				abortUnauthorized(ctx, "invalid token")
				return
			}
			abortUnauthorized(ctx, "could not parse token")
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			abortUnauthorized(ctx, "invalid token")
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status": http.StatusUnauthorized,
		"error":  message,
	})
}
