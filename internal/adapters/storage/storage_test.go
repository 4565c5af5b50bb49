package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pet-registry/internal/config"
	"pet-registry/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveStore(op, result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op+":"+result)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, Options{})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, config.DriverMemory, s.Driver())
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen_SQLiteWithAutoMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "pets.db")
	s, err := Open(context.Background(), config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DSN:         path,
		AutoMigrate: true,
	}, Options{})
	require.NoError(t, err)
	defer s.Close()

	p, err := s.Pets.Insert(context.Background(), pets.NewPet{Name: "Buddy", Type: "Dog", Age: 3})
	require.NoError(t, err)
	assert.Positive(t, p.ID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql"}, Options{})
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestInstrument_ReportsResults(t *testing.T) {
	obs := &recordingObserver{}
	s, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, Options{Observer: obs})
	require.NoError(t, err)
	ctx := context.Background()

	p, err := s.Pets.Insert(ctx, pets.NewPet{Name: "Buddy", Type: "Dog", Age: 3})
	require.NoError(t, err)
	_, _, _ = s.Pets.GetByID(ctx, p.ID)
	_, _, _ = s.Pets.GetByID(ctx, 404)
	_, _ = s.Pets.DeleteByID(ctx, p.ID)
	_, _ = s.Pets.DeleteByID(ctx, p.ID)

	assert.Equal(t, []string{"insert:ok", "get:ok", "get:absent", "delete:ok", "delete:absent"}, obs.calls)
}
