package handler

// --- Request / Response types ---

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name,omitempty"`
}

type updateUserRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"          validate:"omitempty,email"`
	EmailConfirmed *bool   `json:"email_confirmed,omitempty"`
	Password       *string `json:"password,omitempty"`
}

// listUsersQuery carries the listing filters. updated_since is RFC 3339; all
// parsing and coercion happens here at the request boundary so the core only
// ever sees typed filter parameters.
type listUsersQuery struct {
	IDs                []int64 `query:"ids"`
	Name               string  `query:"name"`
	Email              string  `query:"email"         validate:"omitempty,email"`
	UpdatedSince       string  `query:"updated_since"`
	Offset             int64   `query:"offset"        validate:"gte=0"`
	Limit              int64   `query:"limit"         validate:"gte=0"`
	IncludeCredentials bool    `query:"include_credentials"`
}

type authenticateRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type tokenClaimsResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
