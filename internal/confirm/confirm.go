// Package confirm issues and checks short-lived tokens that stand in for an
// interactive "are you sure?" prompt before a destructive operation.
package confirm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Policy decides whether deletes must be confirmed.
type Policy string

const (
	// Always requires a confirmation token for every delete.
	Always Policy = "always"
	// Never treats every delete as confirmed.
	Never Policy = "never"
)

var (
	// ErrMissing means no token accompanied the request.
	ErrMissing = errors.New("confirmation required")
	// ErrInvalid means the token is malformed, expired or bound to another record.
	ErrInvalid = errors.New("invalid confirmation")
)

// ParsePolicy accepts "always" or "never" in any case.
func ParsePolicy(raw string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(raw))); p {
	case Always, Never:
		return p, nil
	default:
		return "", fmt.Errorf("unknown confirmation policy %q", raw)
	}
}

type claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Issuer signs confirmation tokens for a (kind, id) pair.
type Issuer struct {
	policy Policy
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer. The secret is only consulted under the Always policy.
func NewIssuer(policy Policy, secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		policy: policy,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Policy reports the configured policy.
func (i *Issuer) Policy() Policy {
	return i.policy
}

// Issue returns a token confirming the deletion of id within kind.
func (i *Issuer) Issue(kind, id string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign confirmation: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks that token confirms the deletion of id within kind.
// Under the Never policy every call succeeds.
func (i *Issuer) Verify(token, kind, id string) error {
	if i.policy == Never {
		return nil
	}
	if token == "" {
		return ErrMissing
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(id),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Kind != kind {
		return ErrInvalid
	}
	return nil
}

// Prompt adapts Verify to the confirmation callback shape used by the editors.
func (i *Issuer) Prompt(token, kind string) func(id string) bool {
	return func(id string) bool {
		return i.Verify(token, kind, id) == nil
	}
}
