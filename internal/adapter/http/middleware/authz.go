package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/security"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

type TokenParser interface {
	Parse(raw string) (string, error)
}

type PrincipalResolver interface {
	Resolve(ctx context.Context, accountID string) (domain.Principal, error)
}

type Authz struct {
	tokens   TokenParser
	accounts PrincipalResolver
}

func NewAuthz(tokens TokenParser, accounts PrincipalResolver) *Authz {
	return &Authz{tokens: tokens, accounts: accounts}
}

// Require verifies the bearer token and attaches the caller's principal.
// The role comes from the stored account, not from the token.
func (a *Authz) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")) == "" {
			unauth(c, "invalid_request", "No authentication token, access denied")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		sub, err := a.tokens.Parse(raw)
		switch {
		case errors.Is(err, security.ErrTokenExpired):
			unauth(c, "invalid_token", "Token has expired")
			return
		case err != nil:
			unauth(c, "invalid_token", "Invalid token")
			return
		}

		p, err := a.accounts.Resolve(c.Request.Context(), sub)
		if errors.Is(err, usecase.ErrUnauthenticated) {
			unauth(c, "invalid_token", "User not found")
			return
		}
		if err != nil {
			logging.From(c).Error("resolve principal", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.Set(principalKey, p)
		logging.With(c, logging.From(c).With("user_id", p.AccountID))
		c.Next()
	}
}

// RequireAdmin must run after Require.
func (a *Authz) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := PrincipalFrom(c); !ok || !p.IsAdmin() {
			forbidden(c, "insufficient_scope", "Not authorized as an admin")
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal attached by Require.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func unauth(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": desc})
}

func forbidden(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": desc})
}
