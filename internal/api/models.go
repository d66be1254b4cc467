package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateCollectionRequest defines the payload for creating a collection.
type CreateCollectionRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	IsPublic    bool   `json:"is_public"`
}

// UpdateCollectionRequest defines the payload for updating a collection.
// Omitted fields are left unchanged.
type UpdateCollectionRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// CreateCardRequest defines the payload for creating a card.
type CreateCardRequest struct {
	FrontText string `json:"front_text" validate:"required,max=1000"`
	BackText  string `json:"back_text"  validate:"required,max=1000"`
	FrontURL  string `json:"front_url,omitempty" validate:"omitempty,url"`
	BackURL   string `json:"back_url,omitempty"  validate:"omitempty,url"`
}

// UpdateCardRequest defines the payload for updating a card.
// Omitted fields are left unchanged; an explicit empty URL clears it.
type UpdateCardRequest struct {
	FrontText *string `json:"front_text,omitempty" validate:"omitempty,max=1000"`
	BackText  *string `json:"back_text,omitempty"  validate:"omitempty,max=1000"`
	FrontURL  *string `json:"front_url,omitempty"  validate:"omitempty"`
	BackURL   *string `json:"back_url,omitempty"   validate:"omitempty"`
}

// SubmitReviewRequest defines the payload for recording a review outcome.
// Success is a pointer so a missing field is distinguishable from false.
type SubmitReviewRequest struct {
	Success *bool `json:"success" validate:"required"`
}

// ReviewResponse defines the response for a recorded review.
type ReviewResponse struct {
	CardID         uuid.UUID `json:"card_id"`
	UserID         uuid.UUID `json:"user_id"`
	Level          int       `json:"level"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextDueAt      time.Time `json:"next_due_at"`
}

// UserStatsResponse pairs a user with the counts of their resources,
// returned by the admin user-detail endpoint.
type UserStatsResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	Collections int       `json:"collections"`
	Cards       int       `json:"cards"`
	Reviews     int       `json:"reviews"`
}
