package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

var (
	// ErrTokenNotFound signals a successful token exchange whose response
	// carried no access token field.
	ErrTokenNotFound = errors.New("token exchange failed, access token not found")
)

// ExchangeError carries the authorization server's own verdict on a
// rejected code exchange.
type ExchangeError struct {
	StatusCode int
	Body       string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: %s", e.Body)
}

type Config struct {
	Domain         string
	ClientID       string
	ClientSecret   string
	Audience       string
	CallbackURL    string
	LogoutReturnTo string

	// BaseURL overrides the https://{domain} prefix; used by tests to
	// point at a local authorization server.
	BaseURL string
}

// Authenticator models the identity provider as an external
// collaborator: build authorization URLs, exchange a code for a token,
// validate a bearer token. It holds no state of its own.
type Authenticator struct {
	oauth       oauth2.Config
	domain      string
	audience    string
	baseURL     string
	logoutQuery string
	client      *http.Client
}

func New(cfg Config) *Authenticator {
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + cfg.Domain
	}

	logout := url.Values{}
	logout.Set("client_id", cfg.ClientID)
	logout.Set("returnTo", cfg.LogoutReturnTo)

	return &Authenticator{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/authorize",
				TokenURL:  base + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		domain:      cfg.Domain,
		audience:    cfg.Audience,
		baseURL:     base,
		logoutQuery: logout.Encode(),
		client:      &http.Client{},
	}
}

func (a *Authenticator) Domain() string   { return a.domain }
func (a *Authenticator) ClientID() string { return a.oauth.ClientID }
func (a *Authenticator) Audience() string { return a.audience }

// LoginURL is the authorization server's login page.
func (a *Authenticator) LoginURL() string {
	return a.oauth.AuthCodeURL("")
}

// RegisterURL is the login page with the provider's signup hint.
func (a *Authenticator) RegisterURL() string {
	return a.oauth.AuthCodeURL("", oauth2.SetAuthURLParam("screen_hint", "signup"))
}

// LogoutURL clears the provider session and returns the browser to the
// static login page.
func (a *Authenticator) LogoutURL() string {
	return a.baseURL + "/v2/logout?" + a.logoutQuery
}

// Exchange trades a one-time authorization code for an access token.
// Three failure shapes: the server rejected the code (*ExchangeError
// with the server's status), the transport failed (plain error), or the
// response was well-formed but had no access token (ErrTokenNotFound).
func (a *Authenticator) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)

	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", &ExchangeError{
				StatusCode: retrieveErr.Response.StatusCode,
				Body:       strings.TrimSpace(string(retrieveErr.Body)),
			}
		}
		if strings.Contains(err.Error(), "missing access_token") {
			return "", ErrTokenNotFound
		}
		return "", err
	}

	if token.AccessToken == "" {
		return "", ErrTokenNotFound
	}
	return token.AccessToken, nil
}

// VerifyToken checks a bearer token against the provider's userinfo
// endpoint. Any non-200 means the token is not valid.
func (a *Authenticator) VerifyToken(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/userinfo", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token rejected by identity provider: %d", resp.StatusCode)
	}
	return nil
}
