package repository

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"gameZoid/models"
)

// StoreKey is the blob key holding all four named collections.
const StoreKey = "gamezoidDB"

const (
	CollectionGames    = "games"
	CollectionProducts = "products"
)

// databaseFile is the whole-store blob. Every mutation reads it, changes it
// in memory and writes it back in one piece.
type databaseFile struct {
	Games    []models.CatalogItem   `json:"games"`
	Products []models.CatalogItem   `json:"products"`
	Users    []models.User          `json:"users"`
	Wishlist []models.WishlistEntry `json:"wishlist"`
}

type RecordStore interface {
	Init() error
	GetAllItems(collection string) ([]models.CatalogItem, error)
	GetItemById(collection string, id models.RecordID) (item models.CatalogItem, exists bool, err error)
	AddItem(collection string, item models.CatalogItem) (models.RecordID, error)
	PutItem(collection string, item models.CatalogItem) error
	DeleteItem(collection string, id models.RecordID) error
	GetUserByEmail(email string) (user models.User, exists bool, err error)
	AddUser(user models.User) error
	GetWishlist() ([]models.WishlistEntry, error)
	AddWishlistEntry(entry models.WishlistEntry) (models.RecordID, error)
	DeleteWishlistEntry(id models.RecordID) error
	EstimateCatalogSize() (bytes int, err error)
	ClearCatalog() error
}

type RecordStoreRepo struct {
	be Backend
}

func NewRecordStore(backend Backend) (RecordStore, error) {
	if backend == nil {
		return nil, errors.New("backend must be non-nil")
	}
	rs := &RecordStoreRepo{
		be: backend,
	}
	err := rs.Init()
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// Init establishes the four collections. A malformed persisted blob is
// replaced wholesale with empty defaults instead of failing the process.
func (r *RecordStoreRepo) Init() error {
	raw, found, err := r.be.Load(StoreKey)
	if err != nil {
		log.Printf("Init: %v", err)
		return models.ErrServerError
	}
	if found {
		var db databaseFile
		if json.Unmarshal(raw, &db) == nil {
			return nil
		}
		log.Printf("Init: persisted store is unreadable, resetting to defaults")
	}
	return r.writeDB(databaseFile{})
}

// readDB never fails the caller: unreadable state is logged and healed to
// empty collections, trading durability for availability.
func (r *RecordStoreRepo) readDB() databaseFile {
	var db databaseFile
	raw, found, err := r.be.Load(StoreKey)
	if err != nil {
		log.Printf("readDB: %v", err)
		return db
	}
	if !found {
		return db
	}
	if err = json.Unmarshal(raw, &db); err != nil {
		log.Printf("readDB: unreadable store, healing: %v", err)
		db = databaseFile{}
		if e := r.writeDB(db); e != nil {
			log.Printf("readDB: heal failed: %v", e)
		}
	}
	return db
}

func (r *RecordStoreRepo) writeDB(db databaseFile) error {
	raw, err := json.Marshal(db)
	if err != nil {
		log.Printf("writeDB: %v", err)
		return models.ErrServerError
	}
	if err = r.be.Save(StoreKey, raw); err != nil {
		log.Printf("writeDB: %v", err)
		return models.ErrServerError
	}
	return nil
}

func collectionOf(db *databaseFile, collection string) (*[]models.CatalogItem, error) {
	switch strings.ToLower(collection) {
	case CollectionGames:
		return &db.Games, nil
	case CollectionProducts:
		return &db.Products, nil
	}
	log.Printf("collectionOf: unknown collection %q", collection)
	return nil, models.ErrBadRequest
}

func nextID(items []models.CatalogItem) models.RecordID {
	var max models.RecordID
	for _, it := range items {
		if it.Id > max {
			max = it.Id
		}
	}
	return max + 1
}

func (r *RecordStoreRepo) GetAllItems(collection string) ([]models.CatalogItem, error) {
	db := r.readDB()
	items, err := collectionOf(&db, collection)
	if err != nil {
		return nil, err
	}
	out := make([]models.CatalogItem, 0, len(*items))
	for _, it := range *items {
		out = append(out, it.Clone())
	}
	return out, nil
}

func (r *RecordStoreRepo) GetItemById(collection string, id models.RecordID) (item models.CatalogItem, exists bool, err error) {
	db := r.readDB()
	items, e := collectionOf(&db, collection)
	if e != nil {
		err = e
		return
	}
	for _, it := range *items {
		if it.Id == id {
			item = it.Clone()
			exists = true
			return
		}
	}
	return
}

func (r *RecordStoreRepo) AddItem(collection string, item models.CatalogItem) (models.RecordID, error) {
	db := r.readDB()
	items, err := collectionOf(&db, collection)
	if err != nil {
		return 0, err
	}
	rec := item.Clone()
	if rec.Id == 0 {
		rec.Id = nextID(*items)
	}
	*items = append(*items, rec)
	if err = r.writeDB(db); err != nil {
		return 0, err
	}
	return rec.Id, nil
}

func (r *RecordStoreRepo) PutItem(collection string, item models.CatalogItem) error {
	db := r.readDB()
	items, err := collectionOf(&db, collection)
	if err != nil {
		return err
	}
	rec := item.Clone()
	replaced := false
	for i := range *items {
		if (*items)[i].Id == rec.Id {
			(*items)[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		*items = append(*items, rec)
	}
	return r.writeDB(db)
}

// DeleteItem filters the record out and reports no existence signal, matching
// the contract every page script was written against.
func (r *RecordStoreRepo) DeleteItem(collection string, id models.RecordID) error {
	db := r.readDB()
	items, err := collectionOf(&db, collection)
	if err != nil {
		return err
	}
	kept := (*items)[:0]
	for _, it := range *items {
		if it.Id != id {
			kept = append(kept, it)
		}
	}
	*items = kept
	return r.writeDB(db)
}

func (r *RecordStoreRepo) GetUserByEmail(email string) (user models.User, exists bool, err error) {
	if email == "" {
		return
	}
	db := r.readDB()
	needle := strings.ToLower(email)
	for _, u := range db.Users {
		if strings.ToLower(u.Email) == needle {
			user = u
			exists = true
			return
		}
	}
	return
}

func (r *RecordStoreRepo) AddUser(user models.User) error {
	if user.Email == "" {
		log.Printf("AddUser: empty email")
		return models.ErrBadRequest
	}
	_, exists, err := r.GetUserByEmail(user.Email)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrDuplicateKey
	}
	db := r.readDB()
	user.Email = strings.ToLower(user.Email)
	db.Users = append(db.Users, user)
	return r.writeDB(db)
}

func (r *RecordStoreRepo) GetWishlist() ([]models.WishlistEntry, error) {
	db := r.readDB()
	out := make([]models.WishlistEntry, len(db.Wishlist))
	copy(out, db.Wishlist)
	return out, nil
}

func (r *RecordStoreRepo) AddWishlistEntry(entry models.WishlistEntry) (models.RecordID, error) {
	db := r.readDB()
	if entry.Id == 0 {
		var max models.RecordID
		for _, e := range db.Wishlist {
			if e.Id > max {
				max = e.Id
			}
		}
		entry.Id = max + 1
	}
	db.Wishlist = append(db.Wishlist, entry)
	if err := r.writeDB(db); err != nil {
		return 0, err
	}
	return entry.Id, nil
}

func (r *RecordStoreRepo) DeleteWishlistEntry(id models.RecordID) error {
	db := r.readDB()
	kept := db.Wishlist[:0]
	for _, e := range db.Wishlist {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	db.Wishlist = kept
	return r.writeDB(db)
}

// EstimateCatalogSize reports the serialized size of both catalog
// collections, for the admin diagnostics panel.
func (r *RecordStoreRepo) EstimateCatalogSize() (bytes int, err error) {
	db := r.readDB()
	all := append(append([]models.CatalogItem{}, db.Games...), db.Products...)
	raw, e := json.Marshal(all)
	if e != nil {
		log.Printf("EstimateCatalogSize: %v", e)
		err = models.ErrServerError
		return
	}
	bytes = len(raw)
	return
}

// ClearCatalog empties games, products and wishlist. User accounts survive.
func (r *RecordStoreRepo) ClearCatalog() error {
	db := r.readDB()
	db.Games = nil
	db.Products = nil
	db.Wishlist = nil
	return r.writeDB(db)
}
