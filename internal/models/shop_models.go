package models

import "time"

// Shop is a retail location owned by the distributor.
type Shop struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Address       *string   `json:"address,omitempty" db:"address"`
	HasAccessKey  bool      `json:"has_access_key" db:"-"`
	AccessKeyHash *string   `json:"-" db:"access_key_hash"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
