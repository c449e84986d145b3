package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
	"github.com/stretchr/testify/assert"
)

var (
	deviceID   = uuid.New()
	testDevice = entity.Device{
		ID:           deviceID,
		UserID:       userID,
		Name:         "test_watch",
		Type:         "watch",
		Model:        "Series 9",
		SerialNumber: "SN-0001",
		IsConnected:  true,
		Battery:      100,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
)

type devicesRepoMock struct {
	state   mockState
	deleted bool
	synced  bool
}

func (drmock *devicesRepoMock) Create(ctx context.Context, device *entity.Device) (*entity.Device, error) {
	switch drmock.state {
	case stateConflict:
		return nil, errorvalues.ErrDeviceExists
	case stateOwnerNotFound:
		return nil, errorvalues.ErrOwnerNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		created := *device
		created.ID = deviceID
		created.IsConnected = true
		return &created, nil
	}
}

func (drmock *devicesRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	switch drmock.state {
	case stateNotFound:
		return nil, errorvalues.ErrDeviceNotFound
	case stateDBError:
		return nil, errors.New("db error")
	case stateWrongOwner:
		device := testDevice
		device.UserID = uuid.New()
		return &device, nil
	default:
		device := testDevice
		return &device, nil
	}
}

func (drmock *devicesRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Device, error) {
	switch drmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		device := testDevice
		return []*entity.Device{&device}, nil
	}
}

func (drmock *devicesRepoMock) Update(ctx context.Context, id uuid.UUID, patch *entity.DevicePatch) (*entity.Device, error) {
	switch drmock.state {
	case stateNotFound:
		return nil, errorvalues.ErrDeviceNotFound
	case stateDBError:
		return nil, errors.New("db error")
	}
	device := testDevice
	if patch.Name != nil {
		device.Name = *patch.Name
	}
	if patch.IsConnected != nil {
		device.IsConnected = *patch.IsConnected
	}
	if patch.Battery != nil {
		device.Battery = *patch.Battery
	}
	if patch.NotificationsEnabled != nil {
		device.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.AutoSyncEnabled != nil {
		device.AutoSyncEnabled = *patch.AutoSyncEnabled
	}
	return &device, nil
}

func (drmock *devicesRepoMock) Sync(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	switch drmock.state {
	case stateNotFound:
		return nil, errorvalues.ErrDeviceNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		drmock.synced = true
		now := time.Now()
		device := testDevice
		device.LastSyncAt = &now
		return &device, nil
	}
}

func (drmock *devicesRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch drmock.state {
	case stateNotFound:
		return errorvalues.ErrDeviceNotFound
	case stateDBError:
		return errors.New("db error")
	default:
		drmock.deleted = true
		return nil
	}
}

func TestRegisterDevice(t *testing.T) {
	mock := &devicesRepoMock{state: stateSuccess}
	ds := service.NewDeviceService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		device, err := ds.Register(ctx, userID, &service.RegisterDeviceRequest{
			Name:         testDevice.Name,
			Type:         testDevice.Type,
			Model:        testDevice.Model,
			SerialNumber: testDevice.SerialNumber,
		})
		assert.NoError(t, err)
		assert.Equal(t, deviceID, device.ID)
		assert.True(t, device.IsConnected)
	})
	t.Run("unknown type", func(t *testing.T) {
		_, err := ds.Register(ctx, userID, &service.RegisterDeviceRequest{
			Name:         testDevice.Name,
			Type:         "phone",
			Model:        testDevice.Model,
			SerialNumber: testDevice.SerialNumber,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("serial taken", func(t *testing.T) {
		mock.state = stateConflict
		_, err := ds.Register(ctx, userID, &service.RegisterDeviceRequest{
			Name:         testDevice.Name,
			Type:         testDevice.Type,
			Model:        testDevice.Model,
			SerialNumber: testDevice.SerialNumber,
		})
		assert.ErrorIs(t, err, errorvalues.ErrDeviceExists)
	})
	t.Run("owner not found", func(t *testing.T) {
		mock.state = stateOwnerNotFound
		_, err := ds.Register(ctx, userID, &service.RegisterDeviceRequest{
			Name:         testDevice.Name,
			Type:         testDevice.Type,
			Model:        testDevice.Model,
			SerialNumber: testDevice.SerialNumber,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestGetDeviceService(t *testing.T) {
	mock := &devicesRepoMock{state: stateSuccess}
	ds := service.NewDeviceService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		device, err := ds.Get(ctx, deviceID, userID)
		assert.NoError(t, err)
		assert.Equal(t, testDevice, *device)
	})
	t.Run("wrong owner", func(t *testing.T) {
		mock.state = stateWrongOwner
		_, err := ds.Get(ctx, deviceID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFound
		_, err := ds.Get(ctx, deviceID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrDeviceNotFound)
	})
}

func TestUpdateDeviceService(t *testing.T) {
	mock := &devicesRepoMock{state: stateSuccess}
	ds := service.NewDeviceService(mock)
	ctx := context.Background()
	t.Run("merges provided fields", func(t *testing.T) {
		battery := 40
		device, err := ds.Update(ctx, deviceID, userID, &service.UpdateDeviceRequest{
			Battery: &battery,
		})
		assert.NoError(t, err)
		assert.Equal(t, battery, device.Battery)
		assert.Equal(t, testDevice.Name, device.Name)
	})
	t.Run("battery out of range", func(t *testing.T) {
		battery := 120
		_, err := ds.Update(ctx, deviceID, userID, &service.UpdateDeviceRequest{
			Battery: &battery,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("wrong owner", func(t *testing.T) {
		mock.state = stateWrongOwner
		_, err := ds.Update(ctx, deviceID, userID, &service.UpdateDeviceRequest{})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
}

func TestSyncDeviceService(t *testing.T) {
	mock := &devicesRepoMock{state: stateSuccess}
	ds := service.NewDeviceService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		device, err := ds.Sync(ctx, deviceID, userID)
		assert.NoError(t, err)
		assert.NotNil(t, device.LastSyncAt)
		assert.True(t, mock.synced)
	})
	t.Run("wrong owner", func(t *testing.T) {
		mock.state = stateWrongOwner
		mock.synced = false
		_, err := ds.Sync(ctx, deviceID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		assert.False(t, mock.synced)
	})
}

func TestDeleteDeviceService(t *testing.T) {
	mock := &devicesRepoMock{state: stateSuccess}
	ds := service.NewDeviceService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		err := ds.Delete(ctx, deviceID, userID)
		assert.NoError(t, err)
		assert.True(t, mock.deleted)
	})
	t.Run("wrong owner", func(t *testing.T) {
		mock.state = stateWrongOwner
		mock.deleted = false
		err := ds.Delete(ctx, deviceID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		assert.False(t, mock.deleted)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFound
		err := ds.Delete(ctx, deviceID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrDeviceNotFound)
	})
}

func TestListDevicesService(t *testing.T) {
	mock := &devicesRepoMock{state: stateSuccess}
	ds := service.NewDeviceService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		devices, err := ds.List(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(devices))
		assert.Equal(t, testDevice, *devices[0])
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := ds.List(ctx, userID)
		assert.Error(t, err)
	})
}
