package models

import "time"

// UserRole distinguishes customers, providers and admins.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

// PriceRange bounds what a provider charges for a service.
type PriceRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// ProviderService is one service a provider offers.
type ProviderService struct {
	CategoryID    string      `bson:"categoryId" json:"categoryId"`
	SubcategoryID string      `bson:"subcategoryId,omitempty" json:"subcategoryId,omitempty"`
	Category      string      `bson:"category,omitempty" json:"category,omitempty"`
	Subcategory   string      `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Description   string      `bson:"description,omitempty" json:"description,omitempty"`
	PriceRange    *PriceRange `bson:"priceRange,omitempty" json:"priceRange,omitempty"`
	IsActive      bool        `bson:"isActive" json:"isActive"`
}

// Rating is the derived review aggregate for a user. It is recomputed from
// Review records and never treated as a source of truth.
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// ProviderInfo carries provider-specific profile fields.
type ProviderInfo struct {
	Experience int               `bson:"experience,omitempty" json:"experience,omitempty"`
	Bio        string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Services   []ProviderService `bson:"services,omitempty" json:"services,omitempty"`
	Rating     Rating            `bson:"rating" json:"rating"`
}

// UserStats holds the denormalized per-user aggregates. All fields are
// derived; the stats reconciler can rebuild them from Job/Proposal/Review
// records at any time.
type UserStats struct {
	CompletedJobs   int     `bson:"completedJobs" json:"completedJobs"`
	TotalEarnings   float64 `bson:"totalEarnings" json:"totalEarnings"`
	TotalSpent      float64 `bson:"totalSpent" json:"totalSpent"`
	ReviewsGiven    int     `bson:"reviewsGiven" json:"reviewsGiven"`
	ReviewsReceived int     `bson:"reviewsReceived" json:"reviewsReceived"`
}

// User represents a platform account.
type User struct {
	ID           string       `bson:"id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Email        string       `bson:"email" json:"email"`
	PasswordHash string       `bson:"passwordHash" json:"-"`
	Phone        string       `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         UserRole     `bson:"role" json:"role"`
	ProfileImage string       `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	About        string       `bson:"about,omitempty" json:"about,omitempty"`
	Location     Location     `bson:"location,omitempty" json:"location,omitempty"`
	ProviderInfo ProviderInfo `bson:"providerInfo" json:"providerInfo"`
	Stats        UserStats    `bson:"stats" json:"stats"`
	KVKKConsent  KVKKConsent  `bson:"kvkkConsent" json:"kvkkConsent"`
	IsActive     bool         `bson:"isActive" json:"isActive"`
	TokenHash    string       `bson:"tokenHash,omitempty" json:"-"`
	LastLoginAt  *time.Time   `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// IsProvider reports whether the user may submit proposals.
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// IsAdmin reports whether the user has admin privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
