package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

type DevicesRepository struct {
	conn PgConnection
}

func NewDevicesRepo(cfg DBConfig) *DevicesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for devicesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for devicesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &DevicesRepository{
		conn: pool,
	}
}

func NewDevicesRepoWithConn(conn PgConnection) *DevicesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for devicesRepo: " + err.Error())
	}
	return &DevicesRepository{
		conn: conn,
	}
}

const deviceColumns = `id, user_id, name, type, model, serial_number, is_connected, battery, notifications_enabled, auto_sync_enabled, last_sync_at, created_at, updated_at`

func scanDevice(row pgx.Row) (*entity.Device, error) {
	var device entity.Device
	err := row.Scan(
		&device.ID,
		&device.UserID,
		&device.Name,
		&device.Type,
		&device.Model,
		&device.SerialNumber,
		&device.IsConnected,
		&device.Battery,
		&device.NotificationsEnabled,
		&device.AutoSyncEnabled,
		&device.LastSyncAt,
		&device.CreatedAt,
		&device.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// Create registers the device as connected and freshly synced. The serial
// number unique index is system-wide, not per user.
func (dr *DevicesRepository) Create(ctx context.Context, device *entity.Device) (*entity.Device, error) {
	if device == nil {
		return nil, errors.New("device is nil")
	}
	row := dr.conn.QueryRow(ctx, `INSERT INTO devices (user_id, name, type, model, serial_number, is_connected, last_sync_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW()) RETURNING `+deviceColumns+`;`,
		device.UserID,
		device.Name,
		device.Type,
		device.Model,
		device.SerialNumber,
	)
	created, err := scanDevice(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return nil, errorvalues.ErrDeviceExists
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating device db error: " + err.Error())
	}
	return created, nil
}

func (dr *DevicesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	row := dr.conn.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1;`, id)
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDeviceNotFound
		}
		return nil, errors.New("getting device by id error: " + err.Error())
	}
	return device, nil
}

func (dr *DevicesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Device, error) {
	rows, err := dr.conn.Query(ctx, `SELECT `+deviceColumns+` FROM devices WHERE user_id = $1 ORDER BY created_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting devices by uid error: " + err.Error())
	}
	defer rows.Close()
	devices := make([]*entity.Device, 0)
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, errors.New("device row parsing error: " + err.Error())
		}
		devices = append(devices, device)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected device rows error: " + rows.Err().Error())
	}
	return devices, nil
}

// Update merges non-nil patch fields. A truthy IsConnected in the same call
// also counts as a sync, so last_sync_at moves with it.
func (dr *DevicesRepository) Update(ctx context.Context, id uuid.UUID, patch *entity.DevicePatch) (*entity.Device, error) {
	if patch == nil {
		return nil, errors.New("patch is nil")
	}
	row := dr.conn.QueryRow(ctx, `UPDATE devices SET
		name = COALESCE($2, name),
		is_connected = COALESCE($3, is_connected),
		battery = COALESCE($4, battery),
		notifications_enabled = COALESCE($5, notifications_enabled),
		auto_sync_enabled = COALESCE($6, auto_sync_enabled),
		last_sync_at = CASE WHEN $3::boolean IS TRUE THEN NOW() ELSE last_sync_at END,
		updated_at = NOW()
		WHERE id = $1 RETURNING `+deviceColumns+`;`,
		id,
		patch.Name,
		patch.IsConnected,
		patch.Battery,
		patch.NotificationsEnabled,
		patch.AutoSyncEnabled,
	)
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDeviceNotFound
		}
		return nil, errors.New("updating device error: " + err.Error())
	}
	return device, nil
}

func (dr *DevicesRepository) Sync(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	row := dr.conn.QueryRow(ctx, `UPDATE devices SET last_sync_at = NOW(), updated_at = NOW() WHERE id = $1 RETURNING `+deviceColumns+`;`, id)
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDeviceNotFound
		}
		return nil, errors.New("syncing device error: " + err.Error())
	}
	return device, nil
}

func (dr *DevicesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := dr.conn.Exec(ctx, `DELETE FROM devices WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting device: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDeviceNotFound
	}
	return nil
}
