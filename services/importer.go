package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/repository"
)

// UnknownPoliceID is the sentinel written when a row has no policeId and the
// submitter's is not known either.
const UnknownPoliceID = "UNKNOWN_ID"

var (
	// ErrUnsupportedFileType is returned for any extension other than
	// .csv/.xls/.xlsx, before the parser is touched.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrNoData is returned when the file parses to zero data rows.
	ErrNoData = errors.New("no data found")
)

// BulkImportService runs the bulk-import pipeline: parse the uploaded file,
// validate every row, then either hand back the validation report or
// normalize and persist the whole batch.
type BulkImportService struct {
	cameras   repository.CameraRepo
	validator *RecordValidator
	logger    *zap.Logger
	now       func() time.Time
}

func NewBulkImportService(cameras repository.CameraRepo, validator *RecordValidator, logger *zap.Logger) *BulkImportService {
	return &BulkImportService{
		cameras:   cameras,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// ImportFile ingests one uploaded spreadsheet. Validation problems come back
// as data inside ImportResult (Valid=false plus the report); the error return
// is reserved for infrastructure failures: unsupported extension, empty file,
// failed duplicate lookup, failed insert.
//
// No write happens until the whole file has validated clean. Inserts are then
// issued one row at a time in row order; a failure partway through leaves the
// earlier rows persisted, and the returned error names the failing row.
func (s *BulkImportService) ImportFile(ctx context.Context, data []byte, fileName string, submitter *models.User) (*ImportResult, error) {
	rows, err := ParseRows(data, fileName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	result, err := s.validator.Validate(ctx, rows)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		s.logger.Info("Bulk import rejected by validation",
			zap.String("file", fileName),
			zap.Int("rows", len(rows)),
			zap.Int("errors", len(result.Errors)))
		return &ImportResult{Valid: false, Report: result.Messages()}, nil
	}

	for i, row := range rows {
		camera := s.normalizeRow(row, submitter)
		if err := s.cameras.Create(ctx, camera); err != nil {
			// Earlier rows stay persisted; there is no rollback.
			if i == 0 {
				return nil, fmt.Errorf("failed to save row 1: %w", err)
			}
			return nil, fmt.Errorf("failed to save row %d (rows 1-%d may already be saved): %w", i+1, i, err)
		}
	}

	s.logger.Info("Bulk import completed",
		zap.String("file", fileName),
		zap.Int("imported", len(rows)))
	return &ImportResult{Valid: true, Imported: len(rows)}, nil
}

// normalizeRow builds the canonical record from a validated row: every field
// trimmed, policeId and dateChecked defaulted when blank. The defaults are
// defensive; validation already required both fields.
func (s *BulkImportService) normalizeRow(row RawRow, submitter *models.User) *models.Camera {
	policeID := row.Value("policeId")
	if policeID == "" {
		if submitter != nil && submitter.PoliceID != "" {
			policeID = submitter.PoliceID
		} else {
			policeID = UnknownPoliceID
		}
	}

	dateChecked := row.Value("dateChecked")
	if dateChecked == "" {
		dateChecked = s.now().UTC().Format("2006-01-02")
	}

	// username keeps the row's declared origin; it is never overwritten
	// from the submitter.
	return &models.Camera{
		OwnerName:        row.Value("ownerName"),
		PhoneNumber:      row.Value("phoneNumber"),
		DeviceName:       row.Value("deviceName"),
		DeviceType:       row.Value("deviceType"),
		Latitude:         row.Value("latitude"),
		Longitude:        row.Value("longitude"),
		Address:          row.Value("address"),
		City:             row.Value("city"),
		Organization:     row.Value("organization"),
		WorkingCondition: row.Value("workingCondition"),
		Username:         row.Value("username"),
		PoliceID:         policeID,
		DateChecked:      dateChecked,
	}
}

// ImportTemplateHeader is the header row of the template file offered to
// users before a bulk upload.
const ImportTemplateHeader = "ownerName,phoneNumber,deviceName,deviceType,latitude,longitude,address,city,organization,workingCondition,policeId,dateChecked,username"
