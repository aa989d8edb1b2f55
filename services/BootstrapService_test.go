package services

import (
	"os"
	"path/filepath"
	"testing"

	"gameZoid/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "games": [
    {"id": 101, "name": "Apex Legends", "category": "Battle Royale", "price": 72.0},
    {"id": 102, "name": "Elden Ring", "category": "Action RPG", "price": 59.99},
    {"id": 103, "name": "", "price": 10.0}
  ],
  "products": [
    {"id": 201, "name": "Controller", "category": "Controllers", "price": 49.99}
  ]
}`

func setupBootstrap(t *testing.T, dedupe bool) (BootstrapService, CatalogService) {
	rs, err := repository.NewRecordStore(repository.NewMemoryBackend())
	require.NoError(t, err)
	cats := NewCatalogService(rs)

	path := filepath.Join(t.TempDir(), "default-data.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o644))

	candidates := []string{filepath.Join(t.TempDir(), "missing.json"), path}
	return NewBootstrapService(cats, candidates, dedupe), cats
}

func TestBootstrap_PopulateReportsPartialSuccess(t *testing.T) {
	bs, cats := setupBootstrap(t, true)

	result, err := bs.PopulateDefaultData()
	require.NoError(t, err)
	assert.Equal(t, 2, result.GamesAdded)
	assert.Equal(t, 1, result.ProductsAdded)
	assert.Equal(t, 1, result.Skipped, "nameless record is skipped, not fatal")

	games, err := cats.GetGames()
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestBootstrap_FixtureIdsAreDiscarded(t *testing.T) {
	bs, cats := setupBootstrap(t, true)

	_, err := bs.PopulateDefaultData()
	require.NoError(t, err)

	games, err := cats.GetGames()
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 1, int(games[0].Id), "ids are reassigned by the store")
	assert.Equal(t, 2, int(games[1].Id))
}

func TestBootstrap_DedupeMakesRepeatIdempotent(t *testing.T) {
	bs, cats := setupBootstrap(t, true)

	_, err := bs.PopulateDefaultData()
	require.NoError(t, err)
	result, err := bs.PopulateDefaultData()
	require.NoError(t, err)

	assert.Equal(t, 0, result.GamesAdded)
	assert.Equal(t, 0, result.ProductsAdded)
	assert.Equal(t, 4, result.Skipped)

	games, err := cats.GetGames()
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestBootstrap_AdditiveModeAppendsDuplicates(t *testing.T) {
	bs, cats := setupBootstrap(t, false)

	_, err := bs.PopulateDefaultData()
	require.NoError(t, err)
	_, err = bs.PopulateDefaultData()
	require.NoError(t, err)

	games, err := cats.GetGames()
	require.NoError(t, err)
	assert.Len(t, games, 4)
}

func TestBootstrap_NoFixtureFound(t *testing.T) {
	rs, err := repository.NewRecordStore(repository.NewMemoryBackend())
	require.NoError(t, err)
	bs := NewBootstrapService(NewCatalogService(rs), []string{filepath.Join(t.TempDir(), "nope.json")}, true)

	_, err = bs.PopulateDefaultData()
	assert.Error(t, err)
}
