package services

import (
	"log"
	"time"

	"gameZoid/entities"
	"gameZoid/models"
	"gameZoid/repository"
)

// CatalogService is the typed access layer over the games and products
// collections. It adds validation and naming, no new storage invariants.
type CatalogService struct {
	rs repository.RecordStore
}

func NewCatalogService(store repository.RecordStore) CatalogService {
	return CatalogService{
		rs: store,
	}
}

func (cs *CatalogService) GetGames() ([]models.CatalogItem, error) {
	return cs.rs.GetAllItems(repository.CollectionGames)
}

func (cs *CatalogService) GetProducts() ([]models.CatalogItem, error) {
	return cs.rs.GetAllItems(repository.CollectionProducts)
}

func (cs *CatalogService) GetGameById(id models.RecordID) (item models.CatalogItem, err error) {
	return cs.getItem(repository.CollectionGames, id)
}

func (cs *CatalogService) GetProductById(id models.RecordID) (item models.CatalogItem, err error) {
	return cs.getItem(repository.CollectionProducts, id)
}

func (cs *CatalogService) getItem(collection string, id models.RecordID) (item models.CatalogItem, err error) {
	item, exists, err := cs.rs.GetItemById(collection, id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
	}
	return
}

func (cs *CatalogService) CreateGame(item models.CatalogItem) (models.RecordID, error) {
	if err := validateItem(item); err != nil {
		return 0, err
	}
	return cs.rs.AddItem(repository.CollectionGames, item)
}

func (cs *CatalogService) CreateProduct(item models.CatalogItem) (models.RecordID, error) {
	if err := validateItem(item); err != nil {
		return 0, err
	}
	return cs.rs.AddItem(repository.CollectionProducts, item)
}

func validateItem(item models.CatalogItem) error {
	if item.Name == "" {
		log.Printf("validateItem: name field is invalid")
		return models.ErrNotAllowed
	}
	if item.Price < 0 {
		log.Printf("validateItem: price field is invalid")
		return models.ErrNotAllowed
	}
	return nil
}

// UpdateGame is a full replace keyed on id; fields absent from the request
// are dropped, not merged.
func (cs *CatalogService) UpdateGame(item models.CatalogItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return cs.rs.PutItem(repository.CollectionGames, item)
}

func (cs *CatalogService) UpdateProduct(item models.CatalogItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return cs.rs.PutItem(repository.CollectionProducts, item)
}

func (cs *CatalogService) DeleteGame(id models.RecordID) error {
	return cs.rs.DeleteItem(repository.CollectionGames, id)
}

func (cs *CatalogService) DeleteProduct(id models.RecordID) error {
	return cs.rs.DeleteItem(repository.CollectionProducts, id)
}

func (cs *CatalogService) GetStats() (stats entities.StoreStats, err error) {
	games, err := cs.GetGames()
	if err != nil {
		return
	}
	products, err := cs.GetProducts()
	if err != nil {
		return
	}
	size, err := cs.rs.EstimateCatalogSize()
	if err != nil {
		return
	}
	stats = entities.StoreStats{
		GameCount:    len(games),
		ProductCount: len(products),
		SizeKB:       (size + 1023) / 1024,
	}
	return
}

func (cs *CatalogService) ExportData() (doc entities.ExportDocument, err error) {
	games, err := cs.GetGames()
	if err != nil {
		return
	}
	products, err := cs.GetProducts()
	if err != nil {
		return
	}
	doc = entities.ExportDocument{
		Games:      games,
		Products:   products,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Version:    "1.0",
	}
	return
}

func (cs *CatalogService) ClearDatabase() error {
	return cs.rs.ClearCatalog()
}
