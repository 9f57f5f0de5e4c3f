package token

import "golang.org/x/oauth2"

// Bearer wraps a raw access token for use as an Authorization header. The expiry is filled in
// when the token is a JWT with an exp claim.
func Bearer(rawToken string) *oauth2.Token {
	t := &oauth2.Token{AccessToken: rawToken, TokenType: "Bearer"}
	if in, err := Inspect(rawToken); err == nil {
		t.Expiry = in.ExpiresAt
	}
	return t
}
