// Package db provides the portal's store handle and models.
package db

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

//nolint:gochecknoglobals
var (
	dbMaxOpenConns = 1
	dbOptions      = url.Values{
		// with this, multiple connections share a single data and schema cache.
		// see https://www.sqlite.org/sharedcache.html
		"cache": {"shared"},
		// with this, the db sleeps for a little while when locked. can prevent
		// a SQLITE_BUSY. see https://www.sqlite.org/c3ref/busy_timeout.html
		"_busy_timeout": {"30000"},
		"_journal_mode": {"WAL"},
		"_foreign_keys": {"true"},
	}
)

type DB struct {
	*gorm.DB
}

func New(path string) (*DB, error) {
	url := url.URL{Path: path}
	url.RawQuery = dbOptions.Encode()
	db, err := gorm.Open("sqlite3", url.String())
	if err != nil {
		return nil, fmt.Errorf("with gorm: %w", err)
	}
	db.SetLogger(log.New(os.Stdout, "gorm ", 0))
	db.DB().SetMaxOpenConns(dbMaxOpenConns)
	return &DB{DB: db}, nil
}

func NewMock() (*DB, error) {
	return New(":memory:")
}

type SettingKey string

const (
	SettingSessionKey SettingKey = "session_key"
)

func (db *DB) GetSetting(key SettingKey) (string, error) {
	var setting Setting
	if err := db.Where("key=?", key).First(&setting).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return setting.Value, nil
}

func (db *DB) SetSetting(key SettingKey, value string) error {
	return db.
		Where(Setting{Key: key}).
		Assign(Setting{Key: key, Value: value}).
		FirstOrCreate(&Setting{}).
		Error
}

func (db *DB) WithTx(cb func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if err := cb(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// InsertRelease writes a release and its tracks. Track creation stamps are
// spread from the given base so the created_at read ordering preserves track
// order.
func InsertRelease(tx *gorm.DB, release Release, tracks []Track, at time.Time) error {
	if err := tx.Create(&release).Error; err != nil {
		return fmt.Errorf("create release: %w", err)
	}
	for i, track := range tracks {
		track.ReleaseID = release.ID
		track.CreatedAt = at.Add(time.Duration(i) * time.Second)
		if err := tx.Create(&track).Error; err != nil {
			return fmt.Errorf("create track %q: %w", track.ID, err)
		}
	}
	return nil
}
