package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashish4bollam/Anveshak/middleware"
	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/services"
)

// MaxImportSize caps bulk upload files at 10MB.
const MaxImportSize = 10 * 1024 * 1024

var allowedImportExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// BulkImporter is the slice of the import service the controller needs.
type BulkImporter interface {
	ImportFile(ctx context.Context, data []byte, fileName string, submitter *models.User) (*services.ImportResult, error)
}

// BulkImportController handles spreadsheet uploads of camera records.
type BulkImportController struct {
	importService BulkImporter
}

func NewBulkImportController(importService BulkImporter) *BulkImportController {
	return &BulkImportController{importService: importService}
}

// ImportCameras handles POST /cameras/import. A clean file answers with the
// number of rows persisted; a file with validation problems answers 422 with
// the full report, and nothing is written.
func (bc *BulkImportController) ImportCameras(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > MaxImportSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file too large (max %dMB)", MaxImportSize/(1024*1024))})
		return
	}
	if !allowedImportExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type. Only CSV, XLS and XLSX files are allowed"})
		return
	}

	fileHandle, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fileHandle.Close()

	data, err := io.ReadAll(fileHandle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	result, err := bc.importService.ImportFile(c.Request.Context(), data, file.Filename, middleware.CurrentUser(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFileType), errors.Is(err, services.ErrNoData):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Bulk import failed", zap.String("file", file.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"report": result.Report})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": result.Imported})
}

// ImportTemplate handles GET /cameras/import/template and serves the CSV
// header users fill in before a bulk upload.
func (bc *BulkImportController) ImportTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="camera_import_template.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(services.ImportTemplateHeader+"\n"))
}
