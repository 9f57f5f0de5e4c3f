package api

import (
	"context"
	"encoding/json"
	"net/http"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/session"
	"github.com/jrsteele09/go-hr-console/tenants"
	"github.com/pkg/errors"
)

const fallbackLoginFailed = "Login failed"

var _ session.Authenticator = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse accepts either token field name
type loginResponse struct {
	Token       string               `json:"token"`
	AccessToken string               `json:"access_token"`
	User        *session.UserSummary `json:"user"`
}

// Authenticate posts credentials to the login endpoint. It needs no session and a rejection
// here never expires one. A missing token is left for the session store to reject.
func (c *Client) Authenticate(ctx context.Context, email, password string, tenantCode tenants.Code) (*session.Grant, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(nil, "auth", "login"), loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	req.Header.Set(tenants.HeaderTenantCode, tenantCode.String())

	status, payload, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &hrerrors.APIError{StatusCode: status, Message: errorMessage(payload, fallbackLoginFailed)}
	}

	var resp loginResponse
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &resp); err != nil {
			return nil, errors.Wrap(err, "[Client.Authenticate] decode")
		}
	}
	grant := &session.Grant{Token: resp.Token, User: resp.User}
	if grant.Token == "" {
		grant.Token = resp.AccessToken
	}
	return grant, nil
}
