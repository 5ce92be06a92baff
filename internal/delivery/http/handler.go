package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pantryscan/backend/internal/domain"
	"github.com/pantryscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	inventory *usecase.InventoryService
	scans     *usecase.ScanManager
}

// NewHandler creates a new HTTP handler
func NewHandler(inventory *usecase.InventoryService, scans *usecase.ScanManager) *Handler {
	return &Handler{
		inventory: inventory,
		scans:     scans,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pantryscan-backend",
		"version": "1.0.0",
	})
}

// itemView is an inventory item enriched with render-time derived fields
type itemView struct {
	Index          int                         `json:"index"`
	Name           string                      `json:"name"`
	PurchaseDate   string                      `json:"purchase"`
	ExpiryDate     string                      `json:"expiry"`
	Storage        domain.StorageLocation      `json:"storage"`
	StorageClass   string                      `json:"storageClass"`
	Classification domain.ExpiryClassification `json:"classification"`
	RecipeURL      string                      `json:"recipeUrl"`
}

// ListItems returns the inventory in display order with per-item expiry
// classification and a single-item recipe link
func (h *Handler) ListItems(c *gin.Context) {
	now := time.Now()
	items := h.inventory.Items()

	views := make([]itemView, 0, len(items))
	for i, item := range items {
		views = append(views, itemView{
			Index:          i,
			Name:           item.Name,
			PurchaseDate:   item.PurchaseDate,
			ExpiryDate:     item.ExpiryDate,
			Storage:        item.Storage,
			StorageClass:   item.Storage.DisplayClass(),
			Classification: usecase.Classify(item, now),
			RecipeURL:      usecase.BuildRecipeURL(item.Name),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": views})
}

type addItemRequest struct {
	Name         string `json:"name"`
	PurchaseDate string `json:"purchase"`
	ExpiryDate   string `json:"expiry"`
	Storage      string `json:"storage"`
}

// AddItem validates and appends a new inventory item
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	storage, err := domain.ParseStorageLocation(req.Storage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown storage location: " + req.Storage})
		return
	}

	for _, date := range []string{req.PurchaseDate, req.ExpiryDate} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must use YYYY-MM-DD format"})
			return
		}
	}

	item := domain.InventoryItem{
		Name:         req.Name,
		PurchaseDate: req.PurchaseDate,
		ExpiryDate:   req.ExpiryDate,
		Storage:      storage,
	}

	if err := h.inventory.Add(c.Request.Context(), item); err != nil {
		if errors.Is(err, domain.ErrEmptyItemName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item name must not be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}

// DeleteItem removes a single item by its current positional index
func (h *Handler) DeleteItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	if err := h.inventory.DeleteAt(c.Request.Context(), index); err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no item at index " + c.Param("index")})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type bulkDeleteRequest struct {
	Indexes []int `json:"indexes"`
}

// BulkDeleteItems removes all selected items in one call
func (h *Handler) BulkDeleteItems(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.inventory.DeleteMany(c.Request.Context(), req.Indexes); err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "count": len(req.Indexes)})
}

type recipeSearchRequest struct {
	Names []string `json:"names"`
}

// SearchRecipes builds one combined recipe-search URL for the selected items
func (h *Handler) SearchRecipes(c *gin.Context) {
	var req recipeSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	names := make([]string, 0, len(req.Names))
	for _, name := range req.Names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item name is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": usecase.BuildRecipeURLForItems(names)})
}

// StartScan begins a scanning session (no-op returning the existing session
// while one is already scanning)
func (h *Handler) StartScan(c *gin.Context) {
	status := h.scans.Start(c.Request.Context())
	c.JSON(http.StatusCreated, status)
}

type scanFrameRequest struct {
	Code string `json:"code"`
}

// SubmitScanFrame feeds one raw decode event into a session
func (h *Handler) SubmitScanFrame(c *gin.Context) {
	var req scanFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status, err := h.scans.SubmitFrame(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process frame"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// ScanStatus returns the current snapshot of a session
func (h *Handler) ScanStatus(c *gin.Context) {
	status, err := h.scans.Status(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read session"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// StopScan tears a session down without resolving
func (h *Handler) StopScan(c *gin.Context) {
	status, err := h.scans.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop session"})
		return
	}

	c.JSON(http.StatusOK, status)
}
