package database

import (
	"context"
	"strconv"
)

func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var value *string
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	if value != nil {
		return *value, true
	}
	return "", false
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	return wrapSettingErr("set", key, err)
}

// GetIntSetting reads an integer setting, reporting false when it is missing
// or not a number.
func (d *Database) GetIntSetting(ctx context.Context, key string) (int, bool) {
	raw, ok := d.GetSetting(ctx, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
