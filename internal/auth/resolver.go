// Package auth turns an inbound request into a user id. All downstream rules
// work on the resolved id and never look at credentials again.
package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	apperrors "task-market.com/task-market/internal/errors"
)

type Resolver interface {
	ResolveIdentity(ctx context.Context, r *http.Request) (string, error)
}

// Chain tries each resolver in order and returns the first identity found.
type Chain struct {
	resolvers []Resolver
}

func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

func (c *Chain) ResolveIdentity(ctx context.Context, r *http.Request) (string, error) {
	for _, resolver := range c.resolvers {
		userID, err := resolver.ResolveIdentity(ctx, r)
		if err == nil && userID != "" {
			return userID, nil
		}
		if err != nil && !apperrors.IsKind(err, apperrors.KindAuthentication) {
			log.Printf("auth: resolver %T failed: %v", resolver, err)
		}
	}
	return "", apperrors.ErrUnauthenticated
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}
