package repository

import (
	"encoding/json"
	"errors"
	"log"

	"gameZoid/models"
)

// CartKey holds the cart reference list, deliberately outside the store blob:
// the cart is a transient pointer list, not an owned collection.
const CartKey = "cart"

type CartRepository interface {
	GetCart() (refs []models.CartReference, err error)
	SetCart(refs []models.CartReference) (err error)
	AddCartItem(ref models.CartReference) (err error)
	RemoveCartItem(id models.RecordID, itemType string) (removed bool, err error)
	UpdateQuantity(id models.RecordID, itemType string, quantity int) (err error)
	ClearCart() (alreadyEmpty bool, err error)
}

type CartRepo struct {
	be Backend
}

func NewCartRepository(backend Backend) (CartRepository, error) {
	if backend == nil {
		return nil, errors.New("backend must be non-nil")
	}
	return &CartRepo{
		be: backend,
	}, nil
}

func (c *CartRepo) GetCart() (refs []models.CartReference, err error) {
	raw, found, e := c.be.Load(CartKey)
	if e != nil {
		log.Printf("GetCart: %v", e)
		err = models.ErrServerError
		return
	}
	if !found {
		return
	}
	if e = json.Unmarshal(raw, &refs); e != nil {
		log.Printf("GetCart: unreadable cart, discarding: %v", e)
		refs = nil
	}
	return
}

func (c *CartRepo) SetCart(refs []models.CartReference) (err error) {
	raw, e := json.Marshal(refs)
	if e != nil {
		log.Printf("SetCart: %v", e)
		err = models.ErrServerError
		return
	}
	err = c.be.Save(CartKey, raw)
	if err != nil {
		log.Printf("SetCart: %v", err)
		err = models.ErrServerError
	}
	return
}

// AddCartItem appends the reference, or bumps the quantity when the same
// (id, type) pair is already in the cart.
func (c *CartRepo) AddCartItem(ref models.CartReference) (err error) {
	refs, e := c.GetCart()
	if e != nil {
		err = e
		return
	}
	if ref.Quantity <= 0 {
		ref.Quantity = 1
	}
	for i := range refs {
		if refs[i].Id == ref.Id && refs[i].Type == ref.Type {
			refs[i].Quantity = refs[i].Quantity + ref.Quantity
			err = c.SetCart(refs)
			return
		}
	}
	refs = append(refs, ref)
	err = c.SetCart(refs)
	return
}

// RemoveCartItem matches on both id and type: games and products can share
// numeric ids.
func (c *CartRepo) RemoveCartItem(id models.RecordID, itemType string) (removed bool, err error) {
	refs, e := c.GetCart()
	if e != nil {
		err = e
		return
	}
	kept := make([]models.CartReference, 0, len(refs))
	for _, r := range refs {
		if r.Id == id && r.Type == itemType {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return
	}
	err = c.SetCart(kept)
	return
}

func (c *CartRepo) UpdateQuantity(id models.RecordID, itemType string, quantity int) (err error) {
	if quantity <= 0 {
		_, err = c.RemoveCartItem(id, itemType)
		return
	}
	refs, e := c.GetCart()
	if e != nil {
		err = e
		return
	}
	for i := range refs {
		if refs[i].Id == id && refs[i].Type == itemType {
			refs[i].Quantity = quantity
			err = c.SetCart(refs)
			return
		}
	}
	return models.ErrNotFoundError
}

// ClearCart empties the cart; clearing an already-empty cart is a no-op
// reported separately so the caller can phrase its message.
func (c *CartRepo) ClearCart() (alreadyEmpty bool, err error) {
	refs, e := c.GetCart()
	if e != nil {
		err = e
		return
	}
	if len(refs) == 0 {
		alreadyEmpty = true
		return
	}
	err = c.be.Delete(CartKey)
	if err != nil {
		log.Printf("ClearCart: %v", err)
		err = models.ErrServerError
	}
	return
}
