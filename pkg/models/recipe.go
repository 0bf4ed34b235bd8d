package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipe is the core entity. UserID is nullable: ownerless recipes render
// with the Anonymous profile sentinel. Ingredients and steps live in their
// own tables and cascade on delete.
type Recipe struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      *uuid.UUID                  `json:"user_id" gorm:"type:uuid;index"`
	Title       string                      `json:"title" gorm:"type:varchar(200);not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Category    string                      `json:"category" gorm:"type:varchar(50);index"`
	Difficulty  string                      `json:"difficulty" gorm:"type:varchar(20);index"`
	PrepTime    int                         `json:"prep_time"`
	CookTime    int                         `json:"cook_time"`
	Servings    int                         `json:"servings"`
	ImageURL    *string                     `json:"image_url" gorm:"type:varchar(500)"`
	ImageURLs   datatypes.JSONSlice[string] `json:"image_urls"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time                   `json:"updated_at"`

	Ingredients []Ingredient `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Steps       []Step       `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ratings     []Rating     `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient belongs to a recipe. OrderIndex is a dense 1-based sequence
// assigned from insertion position and fully replaced on recipe update.
type Ingredient struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RecipeID   uuid.UUID `json:"recipe_id" gorm:"type:uuid;index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(120);not null"`
	Quantity   string    `json:"quantity" gorm:"type:varchar(50)"`
	Unit       string    `json:"unit" gorm:"type:varchar(30)"`
	OrderIndex int       `json:"order_index"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Step belongs to a recipe. StepNumber follows the same dense 1-based rule
// as Ingredient.OrderIndex.
type Step struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RecipeID    uuid.UUID `json:"recipe_id" gorm:"type:uuid;index;not null"`
	StepNumber  int       `json:"step_number"`
	Description string    `json:"description" gorm:"type:text;not null"`
}

func (s *Step) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IngredientInput and StepInput are the API inputs for recipe children.
// Order is taken from slice position, never from the client.
type IngredientInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type StepInput struct {
	Description string `json:"description"`
}

// RecipeRequest is the API input for recipe create/update.
type RecipeRequest struct {
	UserID      *uuid.UUID        `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Difficulty  string            `json:"difficulty"`
	PrepTime    int               `json:"prep_time"`
	CookTime    int               `json:"cook_time"`
	Servings    int               `json:"servings"`
	ImageURLs   []string          `json:"image_urls"`
	Ingredients []IngredientInput `json:"ingredients"`
	Steps       []StepInput       `json:"steps"`
}

// RecipeWithProfile is the list/search view: recipe fields flattened with
// the owner summary attached.
type RecipeWithProfile struct {
	Recipe
	Profile ProfileSummary `json:"profile"`
}

// RecipeDetail is the full aggregated view for a single recipe.
type RecipeDetail struct {
	Recipe      Recipe         `json:"recipe"`
	Profile     ProfileSummary `json:"profile"`
	Ingredients []Ingredient   `json:"ingredients"`
	Steps       []Step         `json:"steps"`
	Ratings     []RatingView   `json:"ratings"`
	AvgRating   float64        `json:"avg_rating"`
}
