package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"gameZoid/entities"
	"gameZoid/models"
	"gameZoid/services"

	"github.com/gorilla/mux"
)

type Handler struct {
	us  services.UserService
	cas services.CatalogService
	wls services.WishlistService
	crs services.CartService
	cos services.CheckoutService
	bts services.BootstrapService
}

type HandlerParams struct {
	UsrService  services.UserService
	CatService  services.CatalogService
	WshService  services.WishlistService
	CrtService  services.CartService
	ChkService  services.CheckoutService
	BootService services.BootstrapService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		us:  params.UsrService,
		cas: params.CatService,
		wls: params.WshService,
		crs: params.CrtService,
		cos: params.ChkService,
		bts: params.BootService,
	}
}

type itemRequest struct {
	Id       models.RecordID `json:"id"`
	Type     string          `json:"type"`
	Quantity int             `json:"quantity,omitempty"`
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	var name string

	c, err := r.Cookie("sessionId")
	if err != nil {
		name = "guest"
	} else {
		uModel, exists := h.us.CurrentUser(c.Value)
		if !exists {
			name = "guest"
		} else {
			name = uModel.Name
		}
	}
	w.Write([]byte("Welcome to GameZoid, " + name + "!"))
}

//user

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	_, err = h.us.SignupRequest(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	var sessionId string

	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, sessionId, err = h.us.SigninRequest(creds.Email, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	err := h.us.DeleteSessionRequest(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	uModel, exists := h.us.CurrentUser(c.Value)
	if !exists {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	uModel.Password = ""
	writeJSON(w, uModel)
}

// catalog

func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.cas.GetGames()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, games)
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.cas.GetProducts()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, products)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	game, err := h.cas.GetGameById(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, game)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, err := h.cas.GetProductById(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prod)
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id, err := h.cas.CreateGame(item)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]models.RecordID{"id": id})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id, err := h.cas.CreateProduct(item)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]models.RecordID{"id": id})
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, h.cas.UpdateGame)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	h.updateItem(w, r, h.cas.UpdateProduct)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request, update func(models.CatalogItem) error) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var item models.CatalogItem
	if err = json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	item.Id = id
	if err = update(item); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err = h.cas.DeleteGame(id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err = h.cas.DeleteProduct(id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// admin

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.cas.GetStats()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, stats)
}

func (h *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	doc, err := h.cas.ExportData()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=gamezoid-export.json")
	writeJSON(w, doc)
}

func (h *Handler) ClearDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.cas.ClearDatabase(); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.Write([]byte("Database cleared"))
}

func (h *Handler) PopulateDefaultData(w http.ResponseWriter, r *http.Request) {
	result, err := h.bts.PopulateDefaultData()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, result)
}

// wishlist

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	entries, err := h.wls.ListForUser(user.Email)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, entries)
}

func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	exists, err := h.wls.Exists(user.Email, req.Id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if exists {
		WriteErrorResponse(w, models.ErrDuplicateKey)
		return
	}
	entryId, err := h.wls.AddEntry(user.Email, req.Id, req.Type)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]models.RecordID{"id": entryId})
}

func (h *Handler) RemoveWishlistEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err = h.wls.RemoveById(id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	removed, err := h.wls.RemoveByUserAndItem(user.Email, req.Id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]bool{"removed": removed})
}

func (h *Handler) MoveWishlistItemToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.wls.MoveToCart(user.Email, req.Id); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	resp, err := h.crs.GetCartItems()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.crs.AddCartItem(user.Email, req.Id, req.Type); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	removed, err := h.crs.RemoveCartItem(req.Id, req.Type)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, map[string]bool{"removed": removed})
}

func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.crs.UpdateQuantity(req.Id, req.Type, req.Quantity); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	alreadyEmpty, err := h.crs.ClearCart()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if alreadyEmpty {
		w.Write([]byte("Cart is already empty"))
		return
	}
	w.Write([]byte("Cart cleared"))
}

// checkout

func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	var billing models.BillingInfo
	if err := json.NewDecoder(r.Body).Decode(&billing); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	snapshot, err := h.cos.SubmitCheckout(billing)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, snapshot)
}

func (h *Handler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	var snapshot entities.CheckoutSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	result, err := h.cos.CompletePayment(snapshot)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, result)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, e := h.us.CheckAuth(sessionId.Value)
		if !ok {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.us.CheckAdmin(sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("CheckAdmin: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// helpers

func (h *Handler) sessionUser(r *http.Request) (models.User, bool) {
	c, err := r.Cookie("sessionId")
	if err != nil {
		return models.User{}, false
	}
	return h.us.CurrentUser(c.Value)
}

func pathId(r *http.Request) (models.RecordID, error) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		log.Printf("pathId: %v", err)
		return 0, err
	}
	return models.RecordID(id), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnautorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	case errors.Is(err, models.ErrDuplicateKey):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
