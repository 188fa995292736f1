package identity

import "time"

// LoginInput contains the input for admin login
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// TokenResult is the session handed back on login and refresh
type TokenResult struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
}

// LogoutInput contains the tokens to revoke. RefreshToken is optional.
type LogoutInput struct {
	AccessTokenID  string
	AccessTokenTTL time.Duration
	RefreshToken   string
}

// CurrentUser is what the admin shell shows for the signed-in user
type CurrentUser struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}
