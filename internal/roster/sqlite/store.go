package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	sqliteDriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	rosterDatamodel "github.com/frahmantamala/access-console/internal/core/datamodel/roster"
	"github.com/frahmantamala/access-console/internal/roster"
)

// MemoryDSN keeps the database inside the process. The pool is pinned to a
// single connection so every query sees the same database.
const MemoryDSN = ":memory:"

type Store struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the roster tables.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqliteDriver.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&rosterDatamodel.User{}, &rosterDatamodel.Grant{}); err != nil {
		return nil, fmt.Errorf("migrate roster: %w", err)
	}
	return db, nil
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Add(ctx context.Context, draft roster.UserDraft) (*roster.User, error) {
	rec := toRecord(0, draft)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return fromRecord(&rec), nil
}

func (s *Store) Update(ctx context.Context, user *roster.User) (bool, error) {
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&rosterDatamodel.User{}).Where("id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true

		err := tx.Model(&rosterDatamodel.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"title":         user.Title,
			"company":       user.Company,
			"status":        string(user.Status),
			"quota_email":   user.QuotaEmail,
			"computer_name": user.ComputerName,
			"asset_code":    user.AssetCode,
			"updated_at":    time.Now(),
		}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&rosterDatamodel.Grant{}).Error; err != nil {
			return err
		}
		grants := toGrants(user.ID, user.Permissions)
		if len(grants) == 0 {
			return nil
		}
		return tx.Create(&grants).Error
	})
	if err != nil {
		return false, fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return found, nil
}

func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&rosterDatamodel.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return tx.Where("user_id = ?", id).Delete(&rosterDatamodel.Grant{}).Error
	})
	if err != nil {
		return false, fmt.Errorf("remove user %d: %w", id, err)
	}
	return found, nil
}

func (s *Store) List(ctx context.Context) ([]*roster.User, error) {
	var recs []rosterDatamodel.User
	err := s.withGrants(ctx).Order("id ASC").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*roster.User, len(recs))
	for i := range recs {
		users[i] = fromRecord(&recs[i])
	}
	return users, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*roster.User, error) {
	var rec rosterDatamodel.User
	err := s.withGrants(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, roster.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return fromRecord(&rec), nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) withGrants(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Grants", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func toRecord(id int64, d roster.UserDraft) rosterDatamodel.User {
	return rosterDatamodel.User{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		Title:        d.Title,
		Company:      d.Company,
		Status:       string(d.Status),
		QuotaEmail:   d.QuotaEmail,
		ComputerName: d.ComputerName,
		AssetCode:    d.AssetCode,
		Grants:       toGrants(id, d.Permissions),
	}
}

func toGrants(userID int64, perms []roster.Permission) []rosterDatamodel.Grant {
	grants := make([]rosterDatamodel.Grant, len(perms))
	for i, p := range perms {
		grants[i] = rosterDatamodel.Grant{
			UserID:   userID,
			SystemID: p.SystemID,
			Details:  p.Details,
			Position: i,
		}
	}
	return grants
}

func fromRecord(rec *rosterDatamodel.User) *roster.User {
	perms := make([]roster.Permission, len(rec.Grants))
	for i, g := range rec.Grants {
		perms[i] = roster.Permission{SystemID: g.SystemID, Details: g.Details}
	}
	return &roster.User{
		ID: rec.ID,
		UserDraft: roster.UserDraft{
			Name:         rec.Name,
			Email:        rec.Email,
			Title:        rec.Title,
			Company:      rec.Company,
			Status:       roster.Status(rec.Status),
			Permissions:  perms,
			QuotaEmail:   rec.QuotaEmail,
			ComputerName: rec.ComputerName,
			AssetCode:    rec.AssetCode,
		},
	}
}
