package api

import (
	"context"
	"net/http"

	"plant_nursery/model"
)

func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", model.LoginRequestBody{Email: email, Password: password}, &out)
	return out, err
}

// Signup runs either phase: without OTP it may answer OTPRequired, with the
// code it creates the account.
func (c *Client) Signup(ctx context.Context, body model.SignupRequestBody) (model.SignupResponse, error) {
	var out model.SignupResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", body, &out)
	return out, err
}

func (c *Client) Settings(ctx context.Context) (model.Settings, error) {
	var out model.Settings
	err := c.do(ctx, http.MethodGet, "/settings", nil, &out)
	return out, err
}

func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, body model.ProfileRequestBody) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/auth/profile", body, &out)
	return out, err
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPut, "/auth/password", model.PasswordRequestBody{CurrentPassword: current, NewPassword: next}, nil)
}
