package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/services"
)

func newCameraService(repo *mockCameraRepo) *services.CameraService {
	logger, _ := zap.NewDevelopment()
	return services.NewCameraService(repo, nil, logger)
}

func storedCamera(device, lat, lon, username string) models.Camera {
	return models.Camera{
		ID:               uuid.New(),
		OwnerName:        "Ramesh Kumar",
		PhoneNumber:      "9876543210",
		DeviceName:       device,
		DeviceType:       "Dome",
		Latitude:         lat,
		Longitude:        lon,
		Address:          "Main Gate",
		City:             "Bhilai",
		Organization:     "Steel Plant",
		WorkingCondition: "Working",
		Username:         username,
		PoliceID:         "CG07X1234",
		DateChecked:      "2024-05-10",
	}
}

func TestRegisterCamera_Success(t *testing.T) {
	repo := &mockCameraRepo{}
	svc := newCameraService(repo)

	camera, svcErr := svc.RegisterCamera(context.Background(), &models.CreateCameraRequest{
		OwnerName:        "Ramesh Kumar",
		PhoneNumber:      "9876543210",
		DeviceName:       "Gate Cam 1",
		DeviceType:       "Dome",
		Latitude:         "21.19",
		Longitude:        "81.28",
		Address:          "Main Gate",
		City:             "Bhilai",
		Organization:     "Steel Plant",
		WorkingCondition: "Working",
	}, submitter())

	assert.Nil(t, svcErr)
	assert.Equal(t, "raipursp", camera.Username, "submitter identity is stamped on")
	assert.Equal(t, "CG07X9999", camera.PoliceID)
	assert.NotEmpty(t, camera.DateChecked, "dateChecked defaults to today")
	assert.Len(t, repo.cameras, 1)
}

func TestRegisterCamera_RejectsBadPhone(t *testing.T) {
	repo := &mockCameraRepo{}
	svc := newCameraService(repo)

	_, svcErr := svc.RegisterCamera(context.Background(), &models.CreateCameraRequest{
		PhoneNumber: "12345",
	}, submitter())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Zero(t, repo.createCalls)
}

func TestListCameras_AppliesEqualityFilters(t *testing.T) {
	repo := &mockCameraRepo{cameras: []models.Camera{
		storedCamera("Cam1", "21.19", "81.28", "raipursp"),
		storedCamera("Cam2", "21.20", "81.29", "durgsp"),
	}}
	svc := newCameraService(repo)

	cameras, svcErr := svc.ListCameras(context.Background(), models.CameraFilters{Username: "raipursp"})

	assert.Nil(t, svcErr)
	assert.Len(t, cameras, 1)
	assert.Equal(t, "Cam1", cameras[0].DeviceName)
}

func TestUpdateCamera_OwnershipEnforced(t *testing.T) {
	cam := storedCamera("Cam1", "21.19", "81.28", "durgsp")
	repo := &mockCameraRepo{cameras: []models.Camera{cam}}
	svc := newCameraService(repo)

	svcErr := svc.UpdateCamera(context.Background(), cam.ID, &models.UpdateCameraRequest{
		WorkingCondition: "Not Working",
	}, submitter())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)
}

func TestUpdateCamera_RevalidatesPhone(t *testing.T) {
	cam := storedCamera("Cam1", "21.19", "81.28", "raipursp")
	repo := &mockCameraRepo{cameras: []models.Camera{cam}}
	svc := newCameraService(repo)

	svcErr := svc.UpdateCamera(context.Background(), cam.ID, &models.UpdateCameraRequest{
		PhoneNumber: "123",
	}, submitter())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestDeleteCamera_NotFound(t *testing.T) {
	repo := &mockCameraRepo{}
	svc := newCameraService(repo)

	svcErr := svc.DeleteCamera(context.Background(), uuid.New(), submitter())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestNearbyCameras_FiltersByRadius(t *testing.T) {
	repo := &mockCameraRepo{cameras: []models.Camera{
		storedCamera("Near", "21.1904", "81.2849", "raipursp"),
		storedCamera("Far", "28.6139", "77.2090", "raipursp"),  // Delhi, ~1000km away
		storedCamera("Broken", "not-a-number", "81.28", "raipursp"), // unparsable, skipped
	}}
	svc := newCameraService(repo)

	cameras, svcErr := svc.NearbyCameras(context.Background(), 21.19, 81.28, 5)

	assert.Nil(t, svcErr)
	assert.Len(t, cameras, 1)
	assert.Equal(t, "Near", cameras[0].DeviceName)
}

func TestDashboardStats_Counts(t *testing.T) {
	working := storedCamera("Cam1", "21.19", "81.28", "raipursp")
	broken := storedCamera("Cam2", "21.20", "81.29", "raipursp")
	broken.WorkingCondition = "Not Working"
	repo := &mockCameraRepo{cameras: []models.Camera{working, broken}}
	svc := newCameraService(repo)

	stats, svcErr := svc.DashboardStats(context.Background())

	assert.Nil(t, svcErr)
	assert.Equal(t, int64(2), stats.TotalCameras)
	assert.Equal(t, int64(1), stats.WorkingCameras)
}
