package services

import (
	"context"
	"testing"

	"vehicle-forecast-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSourceService_EnsureActivatesDefault(t *testing.T) {
	store := NewMemoryStore()
	svc := NewDataSourceService(store)
	ctx := context.Background()

	require.NoError(t, svc.Ensure(ctx, models.DatabaseSource))
	require.NoError(t, svc.Ensure(ctx, models.DatabaseSource))

	sources, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, models.DatabaseSource, sources[0].Name)
	assert.True(t, sources[0].IsActive)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DatabaseSource, active)
	assert.NoError(t, svc.RequireDatabase(ctx))
}

func TestDataSourceService_EnsureKeepsExistingSelection(t *testing.T) {
	store := NewMemoryStore()
	svc := NewDataSourceService(store)
	ctx := context.Background()

	require.NoError(t, svc.Ensure(ctx, "static"))
	require.NoError(t, svc.Ensure(ctx, models.DatabaseSource))

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, "static", active)
	assert.ErrorIs(t, svc.RequireDatabase(ctx), ErrWrongDataSource)
}

func TestDataSourceService_Switch(t *testing.T) {
	store := NewMemoryStore()
	svc := NewDataSourceService(store)
	ctx := context.Background()
	require.NoError(t, svc.Ensure(ctx, models.DatabaseSource))
	require.NoError(t, svc.Ensure(ctx, "static"))

	t.Run("known source", func(t *testing.T) {
		name, err := svc.Switch(ctx, " static ")
		require.NoError(t, err)
		assert.Equal(t, "static", name)

		sources, err := svc.List(ctx)
		require.NoError(t, err)
		activeCount := 0
		for _, s := range sources {
			if s.IsActive {
				activeCount++
				assert.Equal(t, "static", s.Name)
			}
		}
		assert.Equal(t, 1, activeCount)
	})

	t.Run("unknown source leaves selection untouched", func(t *testing.T) {
		_, err := svc.Switch(ctx, "spreadsheet")
		assert.ErrorIs(t, err, ErrDataSourceNotFound)

		active, err := svc.Active(ctx)
		require.NoError(t, err)
		assert.Equal(t, "static", active)
	})

	t.Run("blank name is invalid", func(t *testing.T) {
		for _, name := range []string{"", "  ", "\t\n"} {
			_, err := svc.Switch(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidSourceName, "name %q", name)
		}

		active, err := svc.Active(ctx)
		require.NoError(t, err)
		assert.Equal(t, "static", active)
	})

	t.Run("back to database", func(t *testing.T) {
		_, err := svc.Switch(ctx, models.DatabaseSource)
		require.NoError(t, err)
		assert.NoError(t, svc.RequireDatabase(ctx))
	})
}

func TestDataSourceService_NoActiveSourceIsWrongSource(t *testing.T) {
	svc := NewDataSourceService(NewMemoryStore())

	_, err := svc.Active(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveSource)
	assert.ErrorIs(t, svc.RequireDatabase(context.Background()), ErrWrongDataSource)
}
