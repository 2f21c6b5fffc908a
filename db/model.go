//nolint:lll // struct tags get very long and can't be split
package db

import (
	"time"
)

type Artist struct {
	ID           string `gorm:"primary_key"`
	Name         string `gorm:"not null; unique_index"`
	Password     string `sql:"default: null"`
	PasswordHash string `sql:"default: null"`
	TidalID      string `sql:"default: null"`
	Releases     []*Release
}

type Release struct {
	ID          string `gorm:"primary_key"`
	ArtistID    string `gorm:"not null; index" sql:"default: null; type:varchar(255) REFERENCES artists(id) ON DELETE CASCADE"`
	Artist      *Artist
	Title       string `gorm:"not null"`
	Type        string `gorm:"not null"` // "album" or "single"
	ReleaseDate string `gorm:"not null"` // ISO "2006-01-02"
	CoverArtURL string
	Tracks      []*Track
}

// Track ids come from the source release and are only unique within it, so
// the row key is (release_id, id).
type Track struct {
	ID        string `gorm:"primary_key; auto_increment:false"`
	ReleaseID string `gorm:"primary_key; auto_increment:false; index" sql:"default: null; type:varchar(255) REFERENCES releases(id) ON DELETE CASCADE"`
	Release   *Release
	Title     string `gorm:"not null"`
	Duration  string // "m:ss", free text from the source
	Explicit  bool
	CreatedAt time.Time
}

type Setting struct {
	Key   SettingKey `gorm:"not null; primary_key; auto_increment:false" sql:"default: null"`
	Value string
}
