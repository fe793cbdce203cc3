package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is one of the fixed recipe categories.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategoryDessert   Category = "Dessert"
	CategorySnack     Category = "Snack"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryDessert,
	CategorySnack,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// StringArray stores an ordered list of strings as a JSON column
// (jsonb on Postgres, text on SQLite).
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the aggregate root. Reviews and their replies belong to it and
// are only created through it.
//
// Version is bumped by every mutation of the aggregate, inside the same
// transaction; appended reviews and replies take the bumped value as their
// Seq, which gives a stable insertion order.
type Recipe struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Ingredients  StringArray `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions string      `gorm:"type:text;not null" json:"instructions"`
	Category     Category    `gorm:"size:20;not null;index" json:"category"`
	CookingTime  int         `gorm:"not null;default:0;check:cooking_time >= 0" json:"cooking_time"`
	PhotoURL     string      `gorm:"size:512" json:"photo_url,omitempty"`
	PhotoKey     string      `gorm:"size:255" json:"photo_key,omitempty"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Version      int64       `gorm:"not null;default:1" json:"version"`

	Owner   User     `gorm:"foreignKey:UserID" json:"owner"`
	Reviews []Review `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}

// Review is embedded in a Recipe.
type Review struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Rating      int       `gorm:"not null;check:rating >= 1 AND rating <= 10" json:"rating"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Seq         int64     `gorm:"not null" json:"seq"`

	Author  User    `gorm:"foreignKey:UserID" json:"author"`
	Replies []Reply `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Reply is embedded in a Review and immutable once written.
type Reply struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ReviewID    uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Seq         int64     `gorm:"not null" json:"seq"`

	Author User `gorm:"foreignKey:UserID" json:"author"`
}

func (Reply) TableName() string {
	return "replies"
}

func (r *Reply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AverageRating returns the mean review rating, or 0 without reviews.
func (r *Recipe) AverageRating() float64 {
	if len(r.Reviews) == 0 {
		return 0
	}
	total := 0
	for _, review := range r.Reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(r.Reviews))
}
