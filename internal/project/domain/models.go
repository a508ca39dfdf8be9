package domain

import "time"

// Project is a registered construction project. ProjectID is the caller
// supplied external identifier and the key every calculation record and
// report references.
type Project struct {
	ProjectID   string    `gorm:"primaryKey;column:project_id" json:"project_id"`
	ProjectName string    `gorm:"not null" json:"project_name"`
	Postcode    *string   `json:"postcode,omitempty"`
	State       *string   `json:"state,omitempty"`
	ClimateZone *string   `json:"climate_zone,omitempty"`
	NCCVolume   *string   `gorm:"column:ncc_volume" json:"ncc_volume,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
