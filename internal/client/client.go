// Package client es el cliente tipado de la API de la clínica.
// La sesión es explícita: login devuelve un *Session y cada llamada
// autenticada lo recibe.
package client

import (
	"context"
	"net/http"
	"time"

	authsvc "pet-clinic/internal/domain/auth"
	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/domain/dashboard"
	"pet-clinic/internal/platform/httpclient"

	"github.com/pkg/errors"
)

type (
	User     = authsvc.User
	Summary  = dashboard.Summary
	Overview = dashboard.Overview
)

// Session es el resultado de un login. Logout la invalida.
type Session struct {
	Token string
	User  User
}

func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

var ErrNoSession = errors.New("client: no active session")

// Resources son los paths de los CRUD que acepta List.
var Resources = []string{
	"pet-owners", "staff", "pets", "services",
	"appointments", "medical-records", "invoices",
}

type Client struct {
	http *httpclient.Client
}

type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithTransport(tr http.RoundTripper) Option {
	return func(o *options) { o.transport = tr }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	hc, err := httpclient.NewWithTransport(baseURL, o.timeout, o.transport)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// as devuelve un transporte con el token de la sesión (nil = anónimo).
func (c *Client) as(s *Session) *httpclient.Client {
	hc := *c.http
	hc.Token = ""
	if s != nil {
		hc.Token = s.Token
	}
	return &hc
}

func (c *Client) call(ctx context.Context, s *Session, method, path string, in, out any) error {
	if err := c.as(s).Do(ctx, method, path, in, out); err != nil {
		return asAPIError(err)
	}
	return nil
}

func (c *Client) authed(ctx context.Context, s *Session, method, path string, in, out any) error {
	if !s.Valid() {
		return ErrNoSession
	}
	return c.call(ctx, s, method, path, in, out)
}

func (c *Client) LoginStaff(ctx context.Context, email, password string) (*Session, error) {
	return c.login(ctx, "/auth/login/staff", email, password)
}

func (c *Client) LoginOwner(ctx context.Context, email, password string) (*Session, error) {
	return c.login(ctx, "/auth/login/owner", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) (*Session, error) {
	var res authsvc.LoginResult
	in := authsvc.LoginInput{Email: email, Password: password}
	if err := c.call(ctx, nil, http.MethodPost, path, in, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, errors.New("client: login response without access_token")
	}
	return &Session{Token: res.AccessToken, User: res.User}, nil
}

// Logout revoca el token en el servidor y limpia la sesión.
func (c *Client) Logout(ctx context.Context, s *Session) error {
	if err := c.authed(ctx, s, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	s.Token = ""
	return nil
}

func (c *Client) Me(ctx context.Context, s *Session) (User, error) {
	var u User
	err := c.authed(ctx, s, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

func (c *Client) Summary(ctx context.Context, s *Session) (Summary, error) {
	var out Summary
	err := c.authed(ctx, s, http.MethodGet, "/dashboard/summary", nil, &out)
	return out, err
}

func (c *Client) Overview(ctx context.Context, s *Session) (Overview, error) {
	var out Overview
	err := c.authed(ctx, s, http.MethodGet, "/me/overview", nil, &out)
	return out, err
}

// Los CRUD aceptan sesión nil cuando el servidor corre sin AUTH_REQUIRED.

func list[T any](ctx context.Context, c *Client, s *Session, path string) ([]T, error) {
	var out []T
	if err := c.call(ctx, s, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListOwners(ctx context.Context, s *Session) ([]clinic.PetOwner, error) {
	return list[clinic.PetOwner](ctx, c, s, "/pet-owners")
}

func (c *Client) ListStaff(ctx context.Context, s *Session) ([]clinic.Staff, error) {
	return list[clinic.Staff](ctx, c, s, "/staff")
}

func (c *Client) ListPets(ctx context.Context, s *Session) ([]clinic.Pet, error) {
	return list[clinic.Pet](ctx, c, s, "/pets")
}

func (c *Client) ListServices(ctx context.Context, s *Session) ([]clinic.Service, error) {
	return list[clinic.Service](ctx, c, s, "/services")
}

func (c *Client) ListAppointments(ctx context.Context, s *Session) ([]clinic.Appointment, error) {
	return list[clinic.Appointment](ctx, c, s, "/appointments")
}

func (c *Client) ListMedicalRecords(ctx context.Context, s *Session) ([]clinic.MedicalRecord, error) {
	return list[clinic.MedicalRecord](ctx, c, s, "/medical-records")
}

func (c *Client) ListInvoices(ctx context.Context, s *Session) ([]clinic.Invoice, error) {
	return list[clinic.Invoice](ctx, c, s, "/invoices")
}

// List trae cualquier recurso de Resources sin tipar (para el CLI).
func (c *Client) List(ctx context.Context, s *Session, resource string) ([]map[string]any, error) {
	for _, r := range Resources {
		if r == resource {
			return list[map[string]any](ctx, c, s, "/"+resource)
		}
	}
	return nil, errors.Errorf("client: unknown resource %q", resource)
}
