// Package models defines the core data structures for users and offers.
package models

import "encoding/json"

// Account holds the public profile attached to a user.
type Account struct {
	// Username is the display name chosen at signup.
	Username string `json:"username"`
	// Phone is an optional contact number.
	Phone string `json:"phone,omitempty"`
	// Avatar is an opaque blob reserved for a future upload flow.
	Avatar json.RawMessage `json:"avatar,omitempty"`
}

// User represents an application user with credentials.
// Salt and Hash are immutable once set; Token is the permanent
// bearer credential issued at signup.
type User struct {
	ID      string
	Email   string
	Account Account
	Salt    string
	Hash    string
	Token   string
}

// PublicUser is the projection returned by signup. Email, salt and
// hash are never exposed.
type PublicUser struct {
	ID      string  `json:"id"`
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// Identity is the projection of a user attached to an authenticated
// request by the auth middleware.
type Identity struct {
	ID      string  `json:"id"`
	Account Account `json:"account"`
}

// ProductDetails is the fixed set of offer attributes: brand, size,
// condition, color and city. Each slot can be overwritten individually
// but the set itself never grows or shrinks.
type ProductDetails struct {
	Brand     string `json:"brand"`
	Size      string `json:"size"`
	Condition string `json:"condition"`
	Color     string `json:"color"`
	City      string `json:"city"`
}

// Offer represents a marketplace listing.
type Offer struct {
	ID                 string         `json:"id"`
	ProductName        string         `json:"product_name"`
	ProductDescription string         `json:"product_description"`
	ProductPrice       float64        `json:"product_price"`
	ProductDetails     ProductDetails `json:"product_details"`
	// ProductImage is the externally hosted content URL, empty before upload.
	ProductImage string   `json:"product_image"`
	Owner        Identity `json:"owner"`
}

// OfferSummary is the projection returned by offer search.
type OfferSummary struct {
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
}

// OfferFilter describes an offer search: case-insensitive substring
// match on the product name, inclusive price bounds, and a 1-indexed
// page. Nil bounds leave that side unbounded.
type OfferFilter struct {
	Title    string
	PriceMin *float64
	PriceMax *float64
	Page     int
}
