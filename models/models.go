package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")
var ErrDuplicateKey = errors.New("already exists")

const (
	ItemTypeGame    = "game"
	ItemTypeProduct = "product"
)

// RecordID tolerates the id drift between store revisions: some producers
// wrote numeric ids, others wrote the same ids as strings.
type RecordID int

func (r *RecordID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*r = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		var f float64
		if e := json.Unmarshal([]byte(s), &f); e != nil {
			return err
		}
		n = int(f)
	}
	*r = RecordID(n)
	return nil
}

type GameDetails struct {
	Developer    string            `json:"developer,omitempty"`
	Publisher    string            `json:"publisher,omitempty"`
	ReleaseDate  string            `json:"releaseDate,omitempty"`
	Platforms    []string          `json:"platforms,omitempty"`
	Rating       string            `json:"rating,omitempty"`
	Features     []string          `json:"features,omitempty"`
	Requirements map[string]string `json:"requirements,omitempty"`
	Screenshots  []string          `json:"screenshots,omitempty"`
}

type ProductDetails struct {
	Brand          string            `json:"brand,omitempty"`
	Model          string            `json:"model,omitempty"`
	Warranty       string            `json:"warranty,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

type CatalogItem struct {
	Id          RecordID        `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Game        *GameDetails    `json:"game,omitempty"`
	Product     *ProductDetails `json:"product,omitempty"`
}

// Clone returns a deep copy so store reads never hand out internal references.
func (c CatalogItem) Clone() CatalogItem {
	out := c
	if c.Game != nil {
		g := *c.Game
		g.Platforms = append([]string(nil), c.Game.Platforms...)
		g.Features = append([]string(nil), c.Game.Features...)
		g.Screenshots = append([]string(nil), c.Game.Screenshots...)
		g.Requirements = cloneStringMap(c.Game.Requirements)
		out.Game = &g
	}
	if c.Product != nil {
		p := *c.Product
		p.Specifications = cloneStringMap(c.Product.Specifications)
		out.Product = &p
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type Credentials struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type WishlistEntry struct {
	Id        RecordID  `json:"id"`
	UserEmail string    `json:"userEmail"`
	GameId    RecordID  `json:"gameId,omitempty"`
	ProductId RecordID  `json:"productId,omitempty"`
	GameName  string    `json:"gameName,omitempty"`
	GamePrice float64   `json:"gamePrice,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// ItemId returns whichever catalog reference the entry carries; old store
// revisions kept games and products under different keys.
func (w WishlistEntry) ItemId() RecordID {
	if w.ProductId != 0 {
		return w.ProductId
	}
	return w.GameId
}

type CartReference struct {
	Id       RecordID  `json:"id"`
	Type     string    `json:"type"`
	Quantity int       `json:"quantity,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
	AddedBy  string    `json:"addedBy,omitempty"`
	Name     string    `json:"name,omitempty"`
	Price    float64   `json:"price,omitempty"`
}

type BillingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}
