package services

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"gameZoid/entities"
	"gameZoid/models"
)

// DefaultFixtureCandidates are tried in order; the first readable document
// wins. Entries starting with http are fetched, the rest are file paths.
var DefaultFixtureCandidates = []string{
	"assets/data/default-data.json",
	"./assets/data/default-data.json",
	"../assets/data/default-data.json",
	"data/default-data.json",
}

type fixtureDocument struct {
	Games    []models.CatalogItem `json:"games"`
	Products []models.CatalogItem `json:"products"`
}

// BootstrapService seeds the catalog from the bundled fixture. Inserts are
// best effort: a record that fails to validate is skipped, not fatal.
type BootstrapService struct {
	cats       CatalogService
	candidates []string
	client     *http.Client

	// DedupeByName makes repeated populate calls idempotent by skipping
	// records whose name is already in the target collection. Disable it to
	// get the additive behavior of older revisions.
	DedupeByName bool
}

func NewBootstrapService(catalogService CatalogService, candidates []string, dedupeByName bool) BootstrapService {
	if len(candidates) == 0 {
		candidates = DefaultFixtureCandidates
	}
	return BootstrapService{
		cats:       catalogService,
		candidates: candidates,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		DedupeByName: dedupeByName,
	}
}

func (bs *BootstrapService) loadFixture() (doc fixtureDocument, err error) {
	for _, candidate := range bs.candidates {
		var raw []byte
		var e error
		if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
			raw, e = bs.fetch(candidate)
		} else {
			raw, e = os.ReadFile(candidate)
		}
		if e != nil {
			continue
		}
		if e = json.Unmarshal(raw, &doc); e != nil {
			log.Printf("loadFixture: %s: %v", candidate, e)
			continue
		}
		return
	}
	log.Printf("loadFixture: default data not found")
	err = models.ErrNotFoundError
	return
}

func (bs *BootstrapService) fetch(url string) ([]byte, error) {
	resp, err := bs.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, models.ErrNotFoundError
	}
	return io.ReadAll(resp.Body)
}

// PopulateDefaultData inserts every fixture record through the catalog
// layer. Fixture ids are discarded so seeded records never collide with
// user-created ones.
func (bs *BootstrapService) PopulateDefaultData() (result entities.BootstrapResult, err error) {
	doc, err := bs.loadFixture()
	if err != nil {
		return
	}

	gameNames, productNames := map[string]bool{}, map[string]bool{}
	if bs.DedupeByName {
		gameNames, err = bs.existingNames(bs.cats.GetGames)
		if err != nil {
			return
		}
		productNames, err = bs.existingNames(bs.cats.GetProducts)
		if err != nil {
			return
		}
	}

	for _, g := range doc.Games {
		if bs.DedupeByName && gameNames[strings.ToLower(g.Name)] {
			result.Skipped++
			continue
		}
		g.Id = 0
		if _, e := bs.cats.CreateGame(g); e != nil {
			log.Printf("PopulateDefaultData: skipping game %q: %v", g.Name, e)
			result.Skipped++
			continue
		}
		result.GamesAdded++
	}
	for _, p := range doc.Products {
		if bs.DedupeByName && productNames[strings.ToLower(p.Name)] {
			result.Skipped++
			continue
		}
		p.Id = 0
		if _, e := bs.cats.CreateProduct(p); e != nil {
			log.Printf("PopulateDefaultData: skipping product %q: %v", p.Name, e)
			result.Skipped++
			continue
		}
		result.ProductsAdded++
	}
	return
}

func (bs *BootstrapService) existingNames(list func() ([]models.CatalogItem, error)) (map[string]bool, error) {
	items, err := list()
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(items))
	for _, it := range items {
		names[strings.ToLower(it.Name)] = true
	}
	return names, nil
}
