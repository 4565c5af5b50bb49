package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"pet-registry/internal/client"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/router"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	color.NoColor = true

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL, 0)
	require.NoError(t, err)
	return c
}

func runCmd(t *testing.T, c *client.Client, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), c, args, &out)
	return out.String(), err
}

func TestPetctl_Lifecycle(t *testing.T) {
	c := newTestClient(t)

	out, err := runCmd(t, c, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No pets registered yet.")

	out, err = runCmd(t, c, "create", "--name", "Buddy", "-t", "Dog", "--age", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Created pet: 1")
	assert.Contains(t, out, "Buddy")

	out, err = runCmd(t, c, "update", "1", "--age", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated pet: 1")

	p, found, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0, p.Age)
	assert.Equal(t, "Buddy", p.Name)

	out, err = runCmd(t, c, "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Dog")

	out, err = runCmd(t, c, "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted pet: 1")

	out, err = runCmd(t, c, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "did not exist")

	_, err = runCmd(t, c, "get", "1")
	assert.ErrorContains(t, err, "not found")
}

func TestPetctl_Types(t *testing.T) {
	c := newTestClient(t)

	out, err := runCmd(t, c, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "hamster")
	assert.Contains(t, out, "Rabbit")
}

func TestPetctl_UsageErrors(t *testing.T) {
	c := newTestClient(t)

	_, err := runCmd(t, c, "create", "--name", "Buddy")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, c, "create", "--name", "Buddy", "--type", "Dog", "--age", "old")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, c, "get")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, c, "frobnicate")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, c, "get", "abc")
	assert.ErrorIs(t, err, pets.ErrInvalidInput)

	// la API rechaza y el error llega tipado
	_, err = runCmd(t, c, "create", "--name", "", "--type", "Dog", "--age", "1")
	assert.ErrorIs(t, err, pets.ErrInvalidInput)
}
