package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `gorm:"type:decimal(10,2)" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Link        string    `json:"link"`
	ImageURL    string    `json:"image_url,omitempty"`

	User        *User         `gorm:"foreignKey:UserID"`
	Tags        []*Tag        `gorm:"many2many:recipe_tags"`
	Ingredients []*Ingredient `gorm:"many2many:recipe_ingredients"`
	Timestamp
}

// Tag and Ingredient names are unique per owner, not globally.
type Tag struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_owner_name" json:"user_id"`
	Name   string    `gorm:"uniqueIndex:idx_tags_owner_name" json:"name"`

	User    *User     `gorm:"foreignKey:UserID"`
	Recipes []*Recipe `gorm:"many2many:recipe_tags"`
	Timestamp
}

type Ingredient struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredients_owner_name" json:"user_id"`
	Name   string    `gorm:"uniqueIndex:idx_ingredients_owner_name" json:"name"`

	User    *User     `gorm:"foreignKey:UserID"`
	Recipes []*Recipe `gorm:"many2many:recipe_ingredients"`
	Timestamp
}
