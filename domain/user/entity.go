package user

import "time"

// User represents a registered account.
type User struct {
	ID           string    `gorm:"primarykey;size:36" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Claims are the authenticated identity attached to a request.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TokenPair holds the access/refresh tokens issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
