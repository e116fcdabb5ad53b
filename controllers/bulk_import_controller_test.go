package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ashish4bollam/Anveshak/controllers"
	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/services"
)

// ---- mock implementing controllers.BulkImporter ----

type mockImporter struct {
	result    *services.ImportResult
	err       error
	calls     int
	lastFile  string
	submitter *models.User
}

func (m *mockImporter) ImportFile(_ context.Context, _ []byte, fileName string, submitter *models.User) (*services.ImportResult, error) {
	m.calls++
	m.lastFile = fileName
	m.submitter = submitter
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// ---- helpers ----

func setupRouter(importer controllers.BulkImporter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bc := controllers.NewBulkImportController(importer)
	r.POST("/cameras/import", bc.ImportCameras)
	r.GET("/cameras/import/template", bc.ImportTemplate)
	return r
}

func uploadRequest(t *testing.T, fileName, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/cameras/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// ---- tests ----

func TestImportCameras_Success(t *testing.T) {
	importer := &mockImporter{result: &services.ImportResult{Valid: true, Imported: 2}}
	r := setupRouter(importer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cameras.csv", "ownerName\nx\ny\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp["imported"])
	assert.Equal(t, "cameras.csv", importer.lastFile)
}

func TestImportCameras_ValidationReport(t *testing.T) {
	importer := &mockImporter{result: &services.ImportResult{
		Valid: false,
		Report: []string{
			`Row 2 is missing value for "organization".`,
			`Row 3 has an invalid phone number: "12345".`,
		},
	}}
	r := setupRouter(importer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cameras.csv", "data"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Report []string `json:"report"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Report, 2)
}

func TestImportCameras_UnsupportedExtensionRejectedBeforeService(t *testing.T) {
	importer := &mockImporter{}
	r := setupRouter(importer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "report.pdf", "data"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, importer.calls, "service is never invoked for an unsupported extension")
}

func TestImportCameras_MissingFile(t *testing.T) {
	importer := &mockImporter{}
	r := setupRouter(importer)

	req := httptest.NewRequest(http.MethodPost, "/cameras/import", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, importer.calls)
}

func TestImportCameras_InfrastructureError(t *testing.T) {
	importer := &mockImporter{err: services.ErrNoData}
	r := setupRouter(importer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cameras.csv", "ownerName\n"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, services.ErrNoData.Error(), resp["error"])
}

func TestImportCameras_StoreFailure(t *testing.T) {
	importer := &mockImporter{err: errors.New("failed to save row 2 (rows 1-1 may already be saved): connection reset")}
	r := setupRouter(importer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cameras.csv", "data"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestImportTemplate(t *testing.T) {
	r := setupRouter(&mockImporter{})

	req := httptest.NewRequest(http.MethodGet, "/cameras/import/template", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ownerName,phoneNumber,deviceName")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "camera_import_template.csv")
}
