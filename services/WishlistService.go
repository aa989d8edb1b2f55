package services

import (
	"log"
	"strings"
	"time"

	"gameZoid/models"
	"gameZoid/repository"
)

type WishlistService struct {
	rs repository.RecordStore
	cr repository.CartRepository
}

func NewWishlistService(store repository.RecordStore, cartRepo repository.CartRepository) WishlistService {
	return WishlistService{
		rs: store,
		cr: cartRepo,
	}
}

// AddEntry saves a pointer to the catalog item along with a name/price
// snapshot taken at add time. Duplicate prevention is the caller's job,
// via Exists.
func (ws *WishlistService) AddEntry(userEmail string, itemId models.RecordID, itemType string) (entryId models.RecordID, err error) {
	if userEmail == "" {
		log.Printf("AddEntry: missing user email")
		err = models.ErrUnautorized
		return
	}
	collection, err := collectionForType(itemType)
	if err != nil {
		return
	}
	item, ex, e := ws.rs.GetItemById(collection, itemId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("AddEntry: item does not exist")
		err = models.ErrBadRequest
		return
	}
	entry := models.WishlistEntry{
		UserEmail: strings.ToLower(userEmail),
		GameName:  item.Name,
		GamePrice: item.Price,
		AddedAt:   time.Now().UTC(),
	}
	if itemType == models.ItemTypeProduct {
		entry.ProductId = itemId
	} else {
		entry.GameId = itemId
	}
	entryId, err = ws.rs.AddWishlistEntry(entry)
	return
}

func (ws *WishlistService) Exists(userEmail string, itemId models.RecordID) (bool, error) {
	entries, err := ws.rs.GetWishlist()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.UserEmail, userEmail) && e.ItemId() == itemId {
			return true, nil
		}
	}
	return false, nil
}

func (ws *WishlistService) ListForUser(userEmail string) (entries []models.WishlistEntry, err error) {
	all, err := ws.rs.GetWishlist()
	if err != nil {
		return
	}
	entries = []models.WishlistEntry{}
	for _, e := range all {
		if strings.EqualFold(e.UserEmail, userEmail) {
			entries = append(entries, e)
		}
	}
	return
}

func (ws *WishlistService) RemoveById(entryId models.RecordID) error {
	return ws.rs.DeleteWishlistEntry(entryId)
}

// MoveToCart removes the wishlist entry and adds a cart reference carrying
// the entry's snapshot. Two separate store round-trips; a failure between
// them leaves the entry gone without a cart line.
func (ws *WishlistService) MoveToCart(userEmail string, itemId models.RecordID) (err error) {
	entries, e := ws.rs.GetWishlist()
	if e != nil {
		err = e
		return
	}
	for _, entry := range entries {
		if !strings.EqualFold(entry.UserEmail, userEmail) || entry.ItemId() != itemId {
			continue
		}
		if err = ws.rs.DeleteWishlistEntry(entry.Id); err != nil {
			return
		}
		itemType := models.ItemTypeGame
		if entry.ProductId != 0 {
			itemType = models.ItemTypeProduct
		}
		ref := models.CartReference{
			Id:      itemId,
			Type:    itemType,
			AddedAt: time.Now().UTC(),
			AddedBy: strings.ToLower(userEmail),
			Name:    entry.GameName,
			Price:   entry.GamePrice,
		}
		err = ws.cr.AddCartItem(ref)
		return
	}
	return models.ErrNotFoundError
}

func (ws *WishlistService) RemoveByUserAndItem(userEmail string, itemId models.RecordID) (removed bool, err error) {
	entries, e := ws.rs.GetWishlist()
	if e != nil {
		err = e
		return
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.UserEmail, userEmail) && entry.ItemId() == itemId {
			err = ws.rs.DeleteWishlistEntry(entry.Id)
			removed = err == nil
			return
		}
	}
	return
}
