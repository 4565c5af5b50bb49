// Package client es el cliente tipado de la API de mascotas. Lo usa petctl
// y los tests end-to-end.
package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-registry/internal/domain/pets"
	"pet-registry/internal/platform/httpclient"
)

type Client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if hc.BaseURL == "" {
		return nil, errors.New("client: base url is required")
	}
	hc.UserAgent = "petctl"
	return &Client{http: hc}, nil
}

type petWire struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

func (p petWire) toPet() pets.Pet {
	return pets.Pet{ID: p.ID, Name: p.Name, Type: p.Type, Age: p.Age, CreatedAt: p.CreatedAt}
}

type apiError struct {
	Error   string `json:"error"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (c *Client) Create(ctx context.Context, in pets.CreateInput) (pets.Pet, error) {
	body := map[string]any{"name": in.Name, "type": in.Type, "age": in.Age}

	var out petWire
	if err := c.http.DoJSON(ctx, http.MethodPost, "/pets", nil, body, &out); err != nil {
		return pets.Pet{}, translate(err)
	}
	return out.toPet(), nil
}

func (c *Client) List(ctx context.Context) ([]pets.Pet, error) {
	var out []petWire
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets", nil, nil, &out); err != nil {
		return nil, translate(err)
	}

	items := make([]pets.Pet, 0, len(out))
	for _, p := range out {
		items = append(items, p.toPet())
	}
	return items, nil
}

// Get devuelve found=false (sin error) cuando la API responde 404.
func (c *Client) Get(ctx context.Context, id int64) (pets.Pet, bool, error) {
	var out petWire
	err := c.http.DoJSON(ctx, http.MethodGet, petPath(id), nil, nil, &out)
	if isNotFound(err) {
		return pets.Pet{}, false, nil
	}
	if err != nil {
		return pets.Pet{}, false, translate(err)
	}
	return out.toPet(), true, nil
}

// Update manda solo los campos presentes en in.
func (c *Client) Update(ctx context.Context, in pets.UpdateInput) (pets.Pet, bool, error) {
	body := map[string]any{}
	if v, ok := in.Name.Get(); ok {
		body["name"] = v
	}
	if v, ok := in.Type.Get(); ok {
		body["type"] = v
	}
	if v, ok := in.Age.Get(); ok {
		body["age"] = v
	}

	var out petWire
	err := c.http.DoJSON(ctx, http.MethodPatch, petPath(in.ID), nil, body, &out)
	if isNotFound(err) {
		return pets.Pet{}, false, nil
	}
	if err != nil {
		return pets.Pet{}, false, translate(err)
	}
	return out.toPet(), true, nil
}

func (c *Client) Delete(ctx context.Context, id int64) (bool, error) {
	var out struct {
		Deleted bool `json:"deleted"`
	}
	if err := c.http.DoJSON(ctx, http.MethodDelete, petPath(id), nil, nil, &out); err != nil {
		return false, translate(err)
	}
	return out.Deleted, nil
}

func (c *Client) Types(ctx context.Context) ([]pets.PetType, error) {
	var wire []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pet-types", nil, nil, &wire); err != nil {
		return nil, translate(err)
	}
	out := make([]pets.PetType, 0, len(wire))
	for _, t := range wire {
		out = append(out, pets.PetType{Value: t.Value, Label: t.Label})
	}
	return out, nil
}

func petPath(id int64) string {
	return "/pets/" + strconv.FormatInt(id, 10)
}

func isNotFound(err error) bool {
	status, ok := httpclient.StatusCode(err)
	return ok && status == http.StatusNotFound
}

// translate convierte un 400 con detalle de campo en *pets.ValidationError,
// así el llamador puede usar errors.Is(err, pets.ErrInvalidInput).
func translate(err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadRequest {
		return err
	}

	var body apiError
	if he.DecodeBody(&body) != nil || body.Field == "" {
		return err
	}
	return &pets.ValidationError{Field: body.Field, Rule: body.Rule, Message: body.Message}
}
