package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/catalog/extract"
	apperrors "github.com/anshulpatil/catalog-search/pkg/errors"
	"github.com/anshulpatil/catalog-search/pkg/logger"
)

// ProductRequest is the create/update payload for a catalog product.
type ProductRequest struct {
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Brand              string            `json:"brand"`
	Category           string            `json:"category"`
	Price              float64           `json:"price"`
	MRP                float64           `json:"mrp"`
	SellingPrice       float64           `json:"selling_price"`
	Currency           string            `json:"currency"`
	Rating             float64           `json:"rating"`
	Stock              int               `json:"stock"`
	Metadata           map[string]string `json:"metadata"`
	UnitsSold          int               `json:"units_sold"`
	ReturnRate         float64           `json:"return_rate"`
	ReviewCount        int               `json:"review_count"`
	ComplaintCount     int               `json:"complaint_count"`
	DiscountPercentage float64           `json:"discount_percentage"`
	IsLatest           bool              `json:"is_latest"`
}

// CreateProduct handles POST /api/v1/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateProductRequest(&req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	p := req.toProduct()
	h.store.Create(p)
	h.persist(r, p)
	h.invalidateSearchCache(r)
	h.recordMutation("create")

	log.Info("product created", "product_id", p.ID, "title", p.Title)
	h.writeJSON(w, http.StatusCreated, p)
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	p, found := h.store.Get(id)
	if !found {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// ListProducts handles GET /api/v1/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var products []*catalog.Product
	h.store.View(func(tx *catalog.Txn) {
		products = tx.All()
	})
	h.writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(products),
		"products": products,
	})
}

// UpdateProduct handles PUT /api/v1/products/{id}. The stored product is
// fully replaced; the store removes stale index entries before reinserting
// the fresh ones.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateProductRequest(&req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	p := req.toProduct()
	p.ID = id
	if err := h.store.Update(p); err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Error("product update failed", "product_id", id, "error", err)
		h.writeError(w, apperrors.HTTPStatusCode(err), "product update failed")
		return
	}
	h.persist(r, p)
	h.invalidateSearchCache(r)
	h.recordMutation("update")

	log.Info("product updated", "product_id", id)
	h.writeJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if h.repo != nil {
		if err := h.repo.Delete(ctx, id); err != nil {
			log.Error("product not deleted from durable store", "product_id", id, "error", err)
		}
	}
	h.invalidateSearchCache(r)
	h.recordMutation("delete")

	log.Info("product deleted", "product_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (req *ProductRequest) toProduct() *catalog.Product {
	metadata := extract.Attributes(req.Title, req.Description, req.Metadata)
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	return &catalog.Product{
		Title:              req.Title,
		Description:        req.Description,
		Brand:              req.Brand,
		Category:           req.Category,
		Price:              req.Price,
		MRP:                req.MRP,
		SellingPrice:       req.SellingPrice,
		Currency:           currency,
		Rating:             req.Rating,
		Stock:              req.Stock,
		Metadata:           metadata,
		UnitsSold:          req.UnitsSold,
		ReturnRate:         req.ReturnRate,
		ReviewCount:        req.ReviewCount,
		ComplaintCount:     req.ComplaintCount,
		DiscountPercentage: req.DiscountPercentage,
		IsLatest:           req.IsLatest,
	}
}

// persist writes through to the durable store. Persistence failure keeps
// the in-memory mutation and is logged, matching the degraded-but-serving
// posture of the rest of the service.
func (h *Handler) persist(r *http.Request, p *catalog.Product) {
	if h.repo == nil {
		return
	}
	if err := h.repo.Save(r.Context(), p); err != nil {
		logger.FromContext(r.Context()).Error("product not persisted",
			"product_id", p.ID,
			"error", err,
		)
	}
}

func (h *Handler) invalidateSearchCache(r *http.Request) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("search cache invalidation failed", "error", err)
	}
}

func (h *Handler) recordMutation(kind string) {
	if h.metrics == nil {
		return
	}
	h.metrics.ProductMutationsTotal.WithLabelValues(kind).Inc()
	h.metrics.CatalogProducts.Set(float64(h.store.Len()))
	h.metrics.CatalogKeywords.Set(float64(h.store.KeywordCount()))
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		h.writeError(w, http.StatusBadRequest, "product id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}
	h.writeError(w, http.StatusBadRequest, err.Error())
}
