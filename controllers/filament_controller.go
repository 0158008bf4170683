package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"printlog/repository"
	"printlog/utils"
)

// FilamentController exposes CRUD over the filament catalog.
type FilamentController struct {
	filaments *repository.FilamentRepository
}

// NewFilamentController creates a new FilamentController instance.
func NewFilamentController(filaments *repository.FilamentRepository) *FilamentController {
	return &FilamentController{filaments: filaments}
}

// List returns the full catalog ordered by name.
func (f *FilamentController) List(ctx *gin.Context) {
	filaments, err := f.filaments.GetAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to load filaments")
		return
	}
	ctx.JSON(http.StatusOK, filaments)
}

// Create adds a catalog entry from form fields name and price_per_kg.
func (f *FilamentController) Create(ctx *gin.Context) {
	name, pricePerKG, ok := f.bindForm(ctx)
	if !ok {
		return
	}

	id, err := f.filaments.Create(name, pricePerKG)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			utils.Error(ctx, http.StatusConflict, 40901, "filament name already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create filament")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id, "message": "Filament created"})
}

// Update overwrites name and price of an existing entry.
func (f *FilamentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	name, pricePerKG, formOK := f.bindForm(ctx)
	if !formOK {
		return
	}

	if err := f.filaments.Update(id, name, pricePerKG); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			utils.Error(ctx, http.StatusConflict, 40901, "filament name already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to update filament")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Filament updated"})
}

// Delete removes an entry unless prints still reference it.
func (f *FilamentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := f.filaments.Delete(id); err != nil {
		if errors.Is(err, repository.ErrFilamentInUse) {
			utils.Error(ctx, http.StatusConflict, 40902, "filament is referenced by existing prints")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to delete filament")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Filament deleted"})
}

func (f *FilamentController) bindForm(ctx *gin.Context) (string, float64, bool) {
	name := utils.SanitizeText(ctx.PostForm("name"))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40002, "name is required")
		return "", 0, false
	}

	pricePerKG, err := strconv.ParseFloat(ctx.PostForm("price_per_kg"), 64)
	if err != nil || pricePerKG <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40003, "price_per_kg must be a positive number")
		return "", 0, false
	}

	return name, pricePerKG, true
}

// parseID reads the :id path parameter shared by filament and print routes.
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid id")
		return 0, false
	}
	return uint(id), true
}
