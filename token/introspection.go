package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-hr-console/internal/utils"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Introspection is what the client can learn from an access token without the signing key.
// Nothing here is verified: the server stays the authority and answers 401 for a bad token.
type Introspection struct {
	Active    bool      // false once exp has passed
	Subject   string    // user id
	Email     string    // email claim when present
	Tenant    string    // tenant or tenant_code claim
	Roles     []string  // roles claim (or single role)
	IssuedAt  time.Time // zero when absent
	ExpiresAt time.Time // zero when the token carries no exp
}

// Inspect decodes a JWT access token without verifying its signature.
// Opaque (non-JWT) tokens return an error.
func Inspect(rawToken string) (*Introspection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("[token.Inspect] empty token")
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "[token.Inspect] ParseUnverified")
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("[token.Inspect] error extracting claims")
	}

	in := &Introspection{Active: true}
	in.Subject, _ = claims.GetSubject()
	in.Email, _ = claims["email"].(string)
	in.Tenant, _ = claims["tenant"].(string)
	if in.Tenant == "" {
		in.Tenant, _ = claims["tenant_code"].(string)
	}

	if roles, ok := claims["roles"]; ok {
		in.Roles = utils.ToStringSlice(roles)
	} else if role, ok := claims["role"]; ok {
		in.Roles = utils.ToStringSlice(role)
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		in.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		in.ExpiresAt = exp.Time
		if NowTimeFunc().After(exp.Time) {
			in.Active = false
		}
	}

	return in, nil
}
