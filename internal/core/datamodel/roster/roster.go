package roster

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	Title        string    `gorm:"column:title"`
	Company      string    `gorm:"column:company"`
	Status       string    `gorm:"column:status;not null;default:active"`
	QuotaEmail   string    `gorm:"column:quota_email"`
	ComputerName string    `gorm:"column:computer_name"`
	AssetCode    string    `gorm:"column:asset_code"`
	Grants       []Grant   `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "roster_users"
}

// Grant is one permission row. Position preserves the order grants were
// listed in on the user record.
type Grant struct {
	ID       int64  `gorm:"primaryKey"`
	UserID   int64  `gorm:"column:user_id;not null;uniqueIndex:idx_grants_user_system"`
	SystemID string `gorm:"column:system_id;not null;uniqueIndex:idx_grants_user_system"`
	Details  string `gorm:"column:details"`
	Position int    `gorm:"column:position;not null"`
}

func (Grant) TableName() string {
	return "roster_grants"
}
