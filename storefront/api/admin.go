package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"plant_nursery/model"
)

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0)
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out)
	return out, err
}

func (c *Client) UpdateUserRole(ctx context.Context, id string, role model.Role) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id)+"/role", model.RoleRequestBody{Role: role}, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var out model.Stats
	err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &out)
	return out, err
}

// Attendance lists every staff member for date (YYYY-MM-DD).
func (c *Client) Attendance(ctx context.Context, date string) ([]model.Attendance, error) {
	out := make([]model.Attendance, 0)
	err := c.do(ctx, http.MethodGet, "/staff/attendance?date="+url.QueryEscape(date), nil, &out)
	return out, err
}

func (c *Client) MarkAttendance(ctx context.Context, body model.AttendanceRequest) error {
	return c.do(ctx, http.MethodPost, "/staff/attendance", body, nil)
}

func (c *Client) Salary(ctx context.Context, userId string) (model.Salary, error) {
	var out model.Salary
	err := c.do(ctx, http.MethodGet, "/staff/salary/"+url.PathEscape(userId), nil, &out)
	return out, err
}

func (c *Client) UpdateSalary(ctx context.Context, userId string, amount decimal.Decimal) (model.Salary, error) {
	var out model.Salary
	err := c.do(ctx, http.MethodPut, "/staff/salary/"+url.PathEscape(userId), model.SalaryRequest{Amount: amount}, &out)
	return out, err
}
