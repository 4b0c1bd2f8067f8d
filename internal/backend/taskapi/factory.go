package taskapi

import (
	"net/http"

	"taskman/internal/config"
	"taskman/internal/service"
	"taskman/internal/session"
)

// Factory builds clients from a Config. Its zero value uses
// http.DefaultClient.
type Factory struct {
	HTTPClient *http.Client
}

func (f Factory) options(cfg *config.Config) []Option {
	return []Option{WithHTTPClient(f.HTTPClient), WithLogger(cfg.Log)}
}

// Authenticator returns an AuthClient for cfg.APIURL.
func (f Factory) Authenticator(cfg *config.Config) (session.Authenticator, error) {
	c, err := NewAuthClient(cfg.APIURL, f.options(cfg)...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Tasks returns a TaskClient for cfg.APIURL that authorizes requests from creds.
func (f Factory) Tasks(cfg *config.Config, creds session.Credentials) (service.Service, error) {
	c, err := NewTaskClient(cfg.APIURL, creds, f.options(cfg)...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
