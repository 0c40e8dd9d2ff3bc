package model

import "github.com/pngfun/backend/config"

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetUserByUsernameRequest struct {
	Username string `json:"username" form:"username"`
}

type GetUserByUsernameResponse struct {
	User User `json:"user"`
}

type MiniKitUser struct {
	WalletAddress string `json:"walletAddress"`
	Username      string `json:"username"`
}

type CheckSessionRequest struct {
	MiniKitUser *MiniKitUser `json:"miniKitUser"`
}

type CheckSessionResponse struct {
	User       *User `json:"user"`
	HasSession bool  `json:"hasSession"`
}

type CheckWorldAppUserRequest struct{}

type CheckWorldAppUserResponse struct {
	HasUser bool  `json:"hasUser"`
	User    *User `json:"user,omitempty"`
}

type CompleteOnboardingRequest struct {
	NotificationsEnabled bool `json:"notificationsEnabled"`
}

type CompleteOnboardingResponse struct {
	User User `json:"user"`
}

type GetConfigRequest struct{}

type GetConfigResponse struct {
	Network   string           `json:"network"`
	AppID     string           `json:"app_id"`
	Contracts config.Contracts `json:"contracts"`
}
