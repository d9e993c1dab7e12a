package models

import (
	"time"

	"github.com/gocql/gocql"
)

// ProductCategories mirrors the catalog taxonomy of the mobile client.
var ProductCategories = []string{
	// Men
	"men_kurta", "men_shalwar_kameez", "men_waistcoat", "men_sherwani", "men_pajama", "men_churidar",
	// Women
	"women_kurta", "women_shalwar_kameez", "women_lehenga", "women_saree", "women_gharara", "women_frock",
	// Unisex
	"unisex_footwear", "unisex_accessories", "unisex_bags",
}

var ProductColors = []string{"white", "black", "navy_blue", "maroon", "bottle_green", "peach", "gold", "silver"}

var ProductGenders = []string{"male", "female", "unisex"}

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	Stock       int        `json:"stock" db:"stock"`
	Category    string     `json:"category" db:"category"`
	Colors      []string   `json:"colors" db:"colors"`
	Sizes       []string   `json:"sizes" db:"sizes"`
	Gender      string     `json:"gender" db:"gender"`
	Stitched    bool       `json:"stitched" db:"stitched"`
	Images      []string   `json:"images" db:"images"`
	Brand       gocql.UUID `json:"brand" db:"brand_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
