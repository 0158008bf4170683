package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"printlog/models"
	"printlog/repository"
	"printlog/utils"
)

// maxImageSize caps uploaded print photos.
const maxImageSize = 10 * 1024 * 1024

// PrintController exposes print records, uploads and the summary view.
type PrintController struct {
	prints    *repository.PrintRepository
	uploadDir string
	logger    *zap.Logger
}

// NewPrintController creates a new PrintController instance.
func NewPrintController(prints *repository.PrintRepository, uploadDir string, logger *zap.Logger) *PrintController {
	return &PrintController{prints: prints, uploadDir: uploadDir, logger: logger}
}

// List returns prints joined with filament data, optionally filtered by
// uploader and payment status.
func (p *PrintController) List(ctx *gin.Context) {
	prints, err := p.prints.GetAll(ctx.Query("uploader"), ctx.Query("status"))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load prints")
		return
	}
	ctx.JSON(http.StatusOK, prints)
}

// Get returns a single joined print row.
func (p *PrintController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	print, err := p.prints.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "print not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load print")
		return
	}
	ctx.JSON(http.StatusOK, print)
}

// Create records a new print from a multipart form with an optional image.
// The price is snapshotted from the filament's current catalog price.
func (p *PrintController) Create(ctx *gin.Context) {
	name := utils.SanitizeText(ctx.PostForm("name"))
	uploader := utils.SanitizeText(ctx.PostForm("uploader"))
	if name == "" || uploader == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "name and uploader are required")
		return
	}

	grams, err := strconv.ParseFloat(ctx.PostForm("filament_grams"), 64)
	if err != nil || grams <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40006, "filament_grams must be a positive number")
		return
	}

	filamentTypeID, err := strconv.ParseUint(ctx.PostForm("filament_type_id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40007, "invalid filament_type_id")
		return
	}

	imagePath := ""
	if file, header, ferr := ctx.Request.FormFile("image"); ferr == nil {
		defer file.Close()
		imagePath, err = p.saveImage(file, header)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to store image")
			return
		}
	}

	id, err := p.prints.Create(repository.CreatePrintParams{
		Name:           name,
		Uploader:       uploader,
		ImagePath:      imagePath,
		Link:           strings.TrimSpace(ctx.PostForm("link")),
		FilamentGrams:  grams,
		FilamentTypeID: uint(filamentTypeID),
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create print")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id, "message": "Print created"})
}

// Update overwrites all mutable fields of a print and recomputes its price
// snapshot.
func (p *PrintController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	name := utils.SanitizeText(ctx.PostForm("name"))
	uploader := utils.SanitizeText(ctx.PostForm("uploader"))
	if name == "" || uploader == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "name and uploader are required")
		return
	}

	grams, err := strconv.ParseFloat(ctx.PostForm("filament_grams"), 64)
	if err != nil || grams <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40006, "filament_grams must be a positive number")
		return
	}

	filamentTypeID, err := strconv.ParseUint(ctx.PostForm("filament_type_id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40007, "invalid filament_type_id")
		return
	}

	status := models.PaymentStatus(ctx.PostForm("payment_status"))
	if !status.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40008, "payment_status must be open or paid")
		return
	}

	err = p.prints.Update(id, repository.UpdatePrintParams{
		Name:           name,
		Uploader:       uploader,
		Link:           strings.TrimSpace(ctx.PostForm("link")),
		FilamentGrams:  grams,
		FilamentTypeID: uint(filamentTypeID),
		PaymentStatus:  status,
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to update print")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Print updated"})
}

// UpdateStatus flips only the payment status of a print.
func (p *PrintController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	status := models.PaymentStatus(ctx.PostForm("payment_status"))
	if !status.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40008, "payment_status must be open or paid")
		return
	}

	if err := p.prints.UpdatePaymentStatus(id, status); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to update payment status")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
}

// Delete removes the record after a best-effort removal of its stored
// image. Image cleanup failures are logged and never block the deletion.
func (p *PrintController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if print, err := p.prints.GetByID(id); err == nil && print.ImagePath != "" {
		file := filepath.Join(p.uploadDir, filepath.Base(print.ImagePath))
		if rmErr := os.Remove(file); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			p.logger.Warn("image cleanup failed", zap.String("file", file), zap.Error(rmErr))
		}
	}

	if err := p.prints.Delete(id); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to delete print")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Print deleted"})
}

// Summary returns per-uploader totals split by payment status.
func (p *PrintController) Summary(ctx *gin.Context) {
	summary, err := p.prints.SummaryByUploader()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load summary")
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// Uploaders returns the distinct sorted set of uploader names.
func (p *PrintController) Uploaders(ctx *gin.Context) {
	uploaders, err := p.prints.Uploaders()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load uploaders")
		return
	}
	ctx.JSON(http.StatusOK, uploaders)
}

// saveImage persists an uploaded image under the upload directory with a
// timestamp-prefixed filename and returns its public path.
func (p *PrintController) saveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return "", err
	}

	base := filepath.Base(header.Filename)
	if base == "." || base == "" {
		base = fmt.Sprintf("image_%d", time.Now().UnixNano())
	}
	filename := time.Now().Format("20060102_150405") + "_" + base
	dstPath := filepath.Join(p.uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	written, err := io.Copy(dst, &io.LimitedReader{R: file, N: maxImageSize + 1})
	if err != nil {
		_ = os.Remove(dstPath)
		return "", err
	}
	if written > maxImageSize {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	return "/uploads/" + filename, nil
}
