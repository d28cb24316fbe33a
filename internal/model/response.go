package model

import "time"

// BaseResponse is the uniform envelope used for simple acknowledgements and
// for every error response.
type BaseResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserListResponse struct {
	Users []User `json:"users"`
	Meta  Meta   `json:"meta"`
}

type Meta struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
