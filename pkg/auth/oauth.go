package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	// ClientSecretsFile is the Google API credentials.json downloaded from the
	// Cloud Console, kept in the taskbot config directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile caches the OAuth token (access + refresh) in the config directory.
	TokenFile = "token.json"

	// LocalhostAuthPort is where the local server captures the OAuth redirect.
	LocalhostAuthPort = "6789"

	authTimeout = 5 * time.Minute
)

// Scopes needed to publish tasks as events.
var Scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// Authenticator runs the OAuth flow against files in Dir.
type Authenticator struct {
	Dir    string
	Logger *log.Logger
}

func (a *Authenticator) TokenPath() string {
	return filepath.Join(a.Dir, TokenFile)
}

// GetConfig creates an oauth2.Config from the client secrets file.
func (a *Authenticator) GetConfig(scopes []string) (*oauth2.Config, error) {
	clientSecretsFile := filepath.Join(a.Dir, ClientSecretsFile)
	b, err := os.ReadFile(clientSecretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", clientSecretsFile, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	config.RedirectURL = a.redirectURL(config.RedirectURL)
	return config, nil
}

// redirectURL forces localhost and out-of-band redirects onto the port the
// local callback server listens on.
func (a *Authenticator) redirectURL(configured string) string {
	if configured == "urn:ietf:wg:oauth:2.0:oob" {
		forced := fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
		a.Logger.Info("overriding out-of-band redirect", "url", forced)
		return forced
	}

	parsedURL, err := url.Parse(configured)
	if err != nil {
		a.Logger.Warn("could not parse redirect URL, using it as is", "url", configured, "err", err)
		return configured
	}
	if parsedURL.Hostname() != "localhost" && parsedURL.Hostname() != "127.0.0.1" {
		a.Logger.Warn("redirect URL is not a localhost callback", "url", configured)
		return configured
	}
	if parsedURL.Port() != LocalhostAuthPort {
		if parsedURL.Port() != "" {
			a.Logger.Warn("redirect port mismatch, forcing local port", "configured", parsedURL.Port(), "port", LocalhostAuthPort)
		}
		parsedURL.Host = net.JoinHostPort(parsedURL.Hostname(), LocalhostAuthPort)
	}
	return parsedURL.String()
}

// GetClient returns an authenticated *http.Client, running the browser flow
// when no cached token exists. Refreshed tokens are written back.
func (a *Authenticator) GetClient(ctx context.Context, scopes []string) (*http.Client, error) {
	config, err := a.GetConfig(scopes)
	if err != nil {
		return nil, err
	}

	tokenFile := a.TokenPath()
	tok, err := TokenFromFile(tokenFile)
	if err != nil {
		a.Logger.Info("no cached token, starting web authorization", "path", tokenFile)
		tok, err = a.getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		if err := SaveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}

	src := config.TokenSource(ctx, tok)
	current, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if current.AccessToken != tok.AccessToken || current.RefreshToken != tok.RefreshToken {
		a.Logger.Debug("token refreshed, saving", "path", tokenFile)
		if err := SaveToken(tokenFile, current); err != nil {
			a.Logger.Warn("could not save refreshed token", "err", err)
		}
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(current, src)), nil
}

// Reset deletes the cached token so the next GetClient re-authenticates.
func (a *Authenticator) Reset() error {
	tokenFile := a.TokenPath()
	if err := os.Remove(tokenFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete token file '%s': %w", tokenFile, err)
	}
	return nil
}

// getTokenFromWeb runs the authorization code flow through a local web
// server that captures the redirect.
func (a *Authenticator) getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	listener, err := net.Listen("tcp", net.JoinHostPort("localhost", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				select {
				case errCh <- fmt.Errorf("authorization code not found in redirect URL"):
				default:
				}
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			select {
			case codeCh <- code:
			default:
			}
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	defer server.Shutdown(context.Background())

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- fmt.Errorf("HTTP server error: %w", err):
			default:
			}
		}
	}()

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Open the following URL in your browser to authorize taskbot:\n%s\n", authURL)
	a.Logger.Info("waiting for authorization code", "redirect", config.RedirectURL)

	select {
	case authCode := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := config.Exchange(exchangeCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authorization timed out, please try again")
	}
}

// TokenFromFile reads an oauth2.Token from a JSON file.
func TokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

// SaveToken writes an oauth2.Token to path, readable by the owner only.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// GetCalendarService creates an authenticated Google Calendar service.
func (a *Authenticator) GetCalendarService(ctx context.Context) (*calendar.Service, error) {
	client, err := a.GetClient(ctx, Scopes)
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated client for Calendar API: %w", err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google Calendar service: %w", err)
	}
	return srv, nil
}
