package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type DeviceService struct {
	repo repository.DevicesRepositoryI
}

func NewDeviceService(devicesRepo repository.DevicesRepositoryI) *DeviceService {
	if devicesRepo == nil {
		log.Fatal("provided nil devicesRepo")
	}
	return &DeviceService{
		repo: devicesRepo,
	}
}

func (ds *DeviceService) Register(ctx context.Context, uid uuid.UUID, req *RegisterDeviceRequest) (*entity.Device, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	device, err := ds.repo.Create(ctx, &entity.Device{
		UserID:       uid,
		Name:         req.Name,
		Type:         req.Type,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeviceExists):
			return nil, err
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("devices repository error: " + err.Error())
	}
	return device, nil
}

func (ds *DeviceService) Get(ctx context.Context, deviceID, uid uuid.UUID) (*entity.Device, error) {
	device, err := ds.repo.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeviceNotFound) {
			return nil, err
		}
		return nil, errors.New("devices repository error: " + err.Error())
	}
	if device.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return device, nil
}

func (ds *DeviceService) List(ctx context.Context, uid uuid.UUID) ([]*entity.Device, error) {
	devices, err := ds.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("devices repository error: " + err.Error())
	}
	return devices, nil
}

func (ds *DeviceService) Update(ctx context.Context, deviceID, uid uuid.UUID, req *UpdateDeviceRequest) (*entity.Device, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if _, err := ds.Get(ctx, deviceID, uid); err != nil {
		return nil, err
	}
	device, err := ds.repo.Update(ctx, deviceID, &entity.DevicePatch{
		Name:                 req.Name,
		IsConnected:          req.IsConnected,
		Battery:              req.Battery,
		NotificationsEnabled: req.NotificationsEnabled,
		AutoSyncEnabled:      req.AutoSyncEnabled,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeviceNotFound) {
			return nil, err
		}
		return nil, errors.New("devices repository error: " + err.Error())
	}
	return device, nil
}

func (ds *DeviceService) Sync(ctx context.Context, deviceID, uid uuid.UUID) (*entity.Device, error) {
	if _, err := ds.Get(ctx, deviceID, uid); err != nil {
		return nil, err
	}
	device, err := ds.repo.Sync(ctx, deviceID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeviceNotFound) {
			return nil, err
		}
		return nil, errors.New("devices repository error: " + err.Error())
	}
	return device, nil
}

func (ds *DeviceService) Delete(ctx context.Context, deviceID, uid uuid.UUID) error {
	if _, err := ds.Get(ctx, deviceID, uid); err != nil {
		return err
	}
	err := ds.repo.Delete(ctx, deviceID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeviceNotFound) {
			return err
		}
		return errors.New("devices repository error: " + err.Error())
	}
	return nil
}
