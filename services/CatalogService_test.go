package services

import (
	"testing"
	"time"

	"gameZoid/models"
	"gameZoid/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogService(t *testing.T) CatalogService {
	rs, err := repository.NewRecordStore(repository.NewMemoryBackend())
	require.NoError(t, err)
	return NewCatalogService(rs)
}

func TestCatalogService_GameLifecycle(t *testing.T) {
	cats := setupCatalogService(t)

	id, err := cats.CreateGame(models.CatalogItem{Name: "Apex Legends", Price: 72.00, Category: "Battle Royale"})
	require.NoError(t, err)

	got, err := cats.GetGameById(id)
	require.NoError(t, err)
	assert.Equal(t, "Apex Legends", got.Name)

	got.Description = "updated"
	require.NoError(t, cats.UpdateGame(got))

	updated, err := cats.GetGameById(id)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)

	require.NoError(t, cats.DeleteGame(id))
	_, err = cats.GetGameById(id)
	assert.ErrorIs(t, err, models.ErrNotFoundError)
}

func TestCatalogService_CollectionsAreIndependent(t *testing.T) {
	cats := setupCatalogService(t)

	gameId, err := cats.CreateGame(models.CatalogItem{Name: "Game", Price: 10})
	require.NoError(t, err)
	prodId, err := cats.CreateProduct(models.CatalogItem{Name: "Product", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, gameId, prodId, "each collection numbers its own ids")

	_, err = cats.GetProductById(gameId)
	require.NoError(t, err)
	require.NoError(t, cats.DeleteGame(gameId))

	prod, err := cats.GetProductById(prodId)
	require.NoError(t, err)
	assert.Equal(t, "Product", prod.Name)
}

func TestCatalogService_Validation(t *testing.T) {
	cats := setupCatalogService(t)

	_, err := cats.CreateGame(models.CatalogItem{Name: "", Price: 10})
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	_, err = cats.CreateGame(models.CatalogItem{Name: "Negative", Price: -1})
	assert.ErrorIs(t, err, models.ErrNotAllowed)

	_, err = cats.CreateGame(models.CatalogItem{Name: "Free", Price: 0})
	assert.NoError(t, err, "zero price is allowed")
}

func TestCatalogService_Stats(t *testing.T) {
	cats := setupCatalogService(t)

	_, err := cats.CreateGame(models.CatalogItem{Name: "Game", Price: 10})
	require.NoError(t, err)
	_, err = cats.CreateProduct(models.CatalogItem{Name: "Product", Price: 20})
	require.NoError(t, err)

	stats, err := cats.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GameCount)
	assert.Equal(t, 1, stats.ProductCount)
	assert.Equal(t, 1, stats.SizeKB, "rounded up to a kilobyte")
}

func TestCatalogService_Export(t *testing.T) {
	cats := setupCatalogService(t)

	_, err := cats.CreateGame(models.CatalogItem{Name: "Game", Price: 10})
	require.NoError(t, err)

	doc, err := cats.ExportData()
	require.NoError(t, err)
	assert.Equal(t, "1.0", doc.Version)
	assert.Len(t, doc.Games, 1)
	assert.Empty(t, doc.Products)

	_, err = time.Parse(time.RFC3339, doc.ExportDate)
	assert.NoError(t, err, "exportDate is ISO-8601")
}

func TestCatalogService_ClearDatabase(t *testing.T) {
	cats := setupCatalogService(t)

	_, err := cats.CreateGame(models.CatalogItem{Name: "Game", Price: 10})
	require.NoError(t, err)

	require.NoError(t, cats.ClearDatabase())

	stats, err := cats.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.GameCount)
	assert.Equal(t, 0, stats.ProductCount)
}
