package services

import (
	"log"
	"time"

	"gameZoid/entities"
	"gameZoid/models"
	"gameZoid/repository"
)

type CartService struct {
	rs repository.RecordStore
	cr repository.CartRepository
}

func NewCartService(store repository.RecordStore, cartRepo repository.CartRepository) CartService {
	return CartService{
		rs: store,
		cr: cartRepo,
	}
}

func collectionForType(itemType string) (string, error) {
	switch itemType {
	case models.ItemTypeGame:
		return repository.CollectionGames, nil
	case models.ItemTypeProduct:
		return repository.CollectionProducts, nil
	}
	log.Printf("collectionForType: unknown item type %q", itemType)
	return "", models.ErrBadRequest
}

// AddCartItem records a reference to a catalog item. The name and price are
// snapshotted onto the reference so the cart can still render the line if the
// item is later deleted from the catalog.
func (cs *CartService) AddCartItem(userEmail string, itemId models.RecordID, itemType string) (err error) {
	collection, err := collectionForType(itemType)
	if err != nil {
		return
	}
	item, ex, e := cs.rs.GetItemById(collection, itemId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("AddCartItem: item does not exist")
		err = models.ErrBadRequest
		return
	}
	ref := models.CartReference{
		Id:      itemId,
		Type:    itemType,
		AddedAt: time.Now().UTC(),
		AddedBy: userEmail,
		Name:    item.Name,
		Price:   item.Price,
	}
	err = cs.cr.AddCartItem(ref)
	return
}

func (cs *CartService) RemoveCartItem(itemId models.RecordID, itemType string) (removed bool, err error) {
	if _, err = collectionForType(itemType); err != nil {
		return
	}
	removed, err = cs.cr.RemoveCartItem(itemId, itemType)
	return
}

func (cs *CartService) UpdateQuantity(itemId models.RecordID, itemType string, quantity int) (err error) {
	if _, err = collectionForType(itemType); err != nil {
		return
	}
	err = cs.cr.UpdateQuantity(itemId, itemType, quantity)
	return
}

// GetCartItems joins the reference list against the live catalog. A reference
// whose item is gone falls back to its own snapshotted fields; a reference
// with nothing at all still yields a generic line. References are never
// silently dropped.
func (cs *CartService) GetCartItems() (resp entities.CartResponse, err error) {
	refs, e := cs.cr.GetCart()
	if e != nil {
		err = e
		return
	}
	items := []entities.CartLineItem{}
	var subtotal float64
	for _, ref := range refs {
		line := cs.resolveLine(ref)
		subtotal = subtotal + line.SumPrice
		items = append(items, line)
	}
	resp = entities.CartResponse{
		Items:    items,
		Subtotal: subtotal,
		Total:    subtotal,
	}
	return
}

func (cs *CartService) resolveLine(ref models.CartReference) entities.CartLineItem {
	quantity := ref.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	line := entities.CartLineItem{
		Id:       ref.Id,
		Type:     ref.Type,
		Name:     ref.Name,
		Price:    ref.Price,
		Quantity: quantity,
		AddedAt:  ref.AddedAt,
	}
	if collection, e := collectionForType(ref.Type); e == nil {
		if item, ex, e2 := cs.rs.GetItemById(collection, ref.Id); e2 == nil && ex {
			line.Name = item.Name
			line.Price = item.Price
			line.Category = item.Category
			line.Image = item.Image
		}
	}
	if line.Name == "" {
		line.Name = "Item"
	}
	line.SumPrice = float64(quantity) * line.Price
	return line
}

func (cs *CartService) ClearCart() (alreadyEmpty bool, err error) {
	return cs.cr.ClearCart()
}
