package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-registry/internal/client"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL, 0)
	require.NoError(t, err)
	return c
}

func TestClient_Lifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	buddy, err := c.Create(ctx, pets.CreateInput{Name: "Buddy", Type: "Dog", Age: 3})
	require.NoError(t, err)
	assert.Positive(t, buddy.ID)
	assert.False(t, buddy.CreatedAt.IsZero())

	got, found, err := c.Get(ctx, buddy.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Buddy", got.Name)
	assert.True(t, buddy.CreatedAt.Equal(got.CreatedAt))

	updated, found, err := c.Update(ctx, pets.UpdateInput{ID: buddy.ID, Age: pets.Some(0)})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0, updated.Age)
	assert.Equal(t, "Dog", updated.Type)

	items, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, buddy.ID, items[0].ID)

	deleted, err := c.Delete(ctx, buddy.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = c.Delete(ctx, buddy.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, found, err = c.Get(ctx, buddy.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = c.Update(ctx, pets.UpdateInput{ID: buddy.ID, Name: pets.Some("Ghost")})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_ValidationErrorsAreTyped(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Create(context.Background(), pets.CreateInput{Name: "Buddy", Type: "Dog", Age: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pets.ErrInvalidInput))

	var ve *pets.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "age", ve.Field)
	assert.Equal(t, pets.RuleNonNegative, ve.Rule)
	assert.Equal(t, "Age must be a non-negative integer", ve.Message)
}

func TestClient_Types(t *testing.T) {
	c := newTestClient(t)

	types, err := c.Types(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pets.SuggestedTypes, types)
}

func TestClient_ServerErrorIsNotValidation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}))
	defer ts.Close()

	c, err := client.New(ts.URL, 0)
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, pets.ErrInvalidInput))
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := client.New("", 0)
	assert.Error(t, err)
}
