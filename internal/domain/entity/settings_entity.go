package entity

import "time"

// Settings is the single platform-wide configuration row.
type Settings struct {
	PlatformName    string    `json:"platform_name"`
	MaxUsers        int       `json:"max_users"`
	MaintenanceMode bool      `json:"maintenance_mode"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SettingsPatch struct {
	PlatformName    *string
	MaxUsers        *int
	MaintenanceMode *bool
}
