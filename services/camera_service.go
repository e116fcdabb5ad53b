package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// CameraService implements single-camera registration and the lookup screens:
// my-cameras filtering, proximity search and dashboard counts.
type CameraService struct {
	repo   repository.CameraRepo
	redis  *redis.Client
	logger *zap.Logger
}

// NewCameraService creates a CameraService. The Redis client is optional;
// without it dashboard stats are computed on every call.
func NewCameraService(repo repository.CameraRepo, redisClient *redis.Client, logger *zap.Logger) *CameraService {
	return &CameraService{repo: repo, redis: redisClient, logger: logger}
}

// RegisterCamera persists one manually entered camera for the submitter.
func (s *CameraService) RegisterCamera(ctx context.Context, req *models.CreateCameraRequest, submitter *models.User) (*models.Camera, *ServiceError) {
	if !phonePattern.MatchString(req.PhoneNumber) {
		return nil, &ServiceError{StatusCode: 400, Message: "Phone number must be exactly 10 digits"}
	}

	dateChecked := req.DateChecked
	if dateChecked == "" {
		dateChecked = time.Now().UTC().Format("2006-01-02")
	}

	camera := &models.Camera{
		OwnerName:        req.OwnerName,
		PhoneNumber:      req.PhoneNumber,
		DeviceName:       req.DeviceName,
		DeviceType:       req.DeviceType,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Address:          req.Address,
		City:             req.City,
		Organization:     req.Organization,
		WorkingCondition: req.WorkingCondition,
		Username:         submitter.Username,
		PoliceID:         submitter.PoliceID,
		DateChecked:      dateChecked,
	}

	if err := s.repo.Create(ctx, camera); err != nil {
		s.logger.Error("Failed to register camera", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to register camera"}
	}

	s.invalidateStats(ctx)
	s.logger.Info("Camera registered",
		zap.String("device", camera.DeviceName),
		zap.String("username", camera.Username))
	return camera, nil
}

// ListCameras returns the cameras matching the given equality filters.
func (s *CameraService) ListCameras(ctx context.Context, filters models.CameraFilters) ([]models.Camera, *ServiceError) {
	cameras, err := s.repo.Find(ctx, filters)
	if err != nil {
		s.logger.Error("Failed to list cameras", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list cameras"}
	}
	return cameras, nil
}

// UpdateCamera applies a partial edit to a camera owned by the caller.
func (s *CameraService) UpdateCamera(ctx context.Context, id uuid.UUID, req *models.UpdateCameraRequest, caller *models.User) *ServiceError {
	camera, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &ServiceError{StatusCode: 404, Message: "Camera not found"}
		}
		s.logger.Error("Failed to load camera", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to load camera"}
	}
	if camera.Username != caller.Username {
		return &ServiceError{StatusCode: 403, Message: "You can only edit your own cameras"}
	}

	updates := map[string]interface{}{}
	setIfPresent := func(key, value string) {
		if value != "" {
			updates[key] = value
		}
	}
	if req.PhoneNumber != "" {
		if !phonePattern.MatchString(req.PhoneNumber) {
			return &ServiceError{StatusCode: 400, Message: "Phone number must be exactly 10 digits"}
		}
		updates["phoneNumber"] = req.PhoneNumber
	}
	setIfPresent("ownerName", req.OwnerName)
	setIfPresent("deviceName", req.DeviceName)
	setIfPresent("deviceType", req.DeviceType)
	setIfPresent("address", req.Address)
	setIfPresent("city", req.City)
	setIfPresent("organization", req.Organization)
	setIfPresent("workingCondition", req.WorkingCondition)
	setIfPresent("dateChecked", req.DateChecked)

	if len(updates) == 0 {
		return &ServiceError{StatusCode: 400, Message: "No fields to update"}
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		s.logger.Error("Failed to update camera", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update camera"}
	}
	s.invalidateStats(ctx)
	return nil
}

// DeleteCamera removes a camera owned by the caller.
func (s *CameraService) DeleteCamera(ctx context.Context, id uuid.UUID, caller *models.User) *ServiceError {
	camera, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &ServiceError{StatusCode: 404, Message: "Camera not found"}
		}
		s.logger.Error("Failed to load camera", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to load camera"}
	}
	if camera.Username != caller.Username {
		return &ServiceError{StatusCode: 403, Message: "You can only delete your own cameras"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete camera", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete camera"}
	}
	s.invalidateStats(ctx)
	return nil
}

// NearbyCameras returns the cameras within radiusKm of the given point.
// Coordinates are stored as strings; records that do not parse are skipped.
func (s *CameraService) NearbyCameras(ctx context.Context, lat, lon, radiusKm float64) ([]models.Camera, *ServiceError) {
	cameras, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load cameras for proximity search", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Could not load cameras"}
	}

	nearby := make([]models.Camera, 0)
	for _, camera := range cameras {
		camLat, err1 := strconv.ParseFloat(camera.Latitude, 64)
		camLon, err2 := strconv.ParseFloat(camera.Longitude, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if haversineKm(lat, lon, camLat, camLon) <= radiusKm {
			nearby = append(nearby, camera)
		}
	}
	return nearby, nil
}

// DashboardStats returns registry counts, served from a short-lived Redis
// cache when available.
func (s *CameraService) DashboardStats(ctx context.Context) (*models.DashboardStats, *ServiceError) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats models.DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count cameras", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to compute stats"}
	}
	working, err := s.repo.CountByCondition(ctx, string(models.ConditionWorking))
	if err != nil {
		s.logger.Error("Failed to count working cameras", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to compute stats"}
	}

	stats := &models.DashboardStats{TotalCameras: total, WorkingCameras: working}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *CameraService) invalidateStats(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
