package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/database/handler"
	"plant_nursery/middleware"
	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/session"
	"plant_nursery/utils"
)

const (
	webhookSecret = "whsec_test"
	today         = "2026-10-15"
)

type ServerTestSuite struct {
	suite.Suite
	srv   *httptest.Server
	ctx   context.Context
	admin *api.Client
	user  *api.Client
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	db, err := database.Open(database.DriverSQLite, ":memory:")
	s.Require().NoError(err)
	s.Require().NoError(database.MigrateUp(db))
	database.Nursery = db

	middleware.Configure("test-secret", time.Hour)
	handler.Configure(handler.Options{WebhookSecret: webhookSecret, UPIPayeeID: "greenleaf@upi", Today: func() string { return today }})

	hash, err := utils.HashPassword("adminpass1")
	s.Require().NoError(err)
	adminId, err := dbHelper.CreateUser(db, "Admin", "admin@example.com", "", hash)
	s.Require().NoError(err)
	s.Require().NoError(dbHelper.CreateUserRole(db, adminId, model.RoleAdmin))

	s.srv = httptest.NewServer(SetupRoutes("/api").Handler())
	s.ctx = context.Background()

	_, err = s.anonymous().Signup(s.ctx, model.SignupRequestBody{UserRequestBody: model.UserRequestBody{
		Name: "Asha", Email: "asha@example.com", Password: "greenleaf1",
	}})
	s.Require().NoError(err)

	s.admin = s.login("admin@example.com", "adminpass1")
	s.user = s.login("asha@example.com", "greenleaf1")
}

func (s *ServerTestSuite) TearDownTest() {
	s.srv.Close()
	database.CloseDb()
}

func (s *ServerTestSuite) anonymous() *api.Client {
	return api.New(s.srv.URL, "/api", nil, api.WithHTTPClient(s.srv.Client()))
}

func (s *ServerTestSuite) login(email, password string) *api.Client {
	resp, err := s.anonymous().Login(s.ctx, email, password)
	s.Require().NoError(err)
	sess := session.New(session.NewMemoryStorage())
	s.Require().NoError(sess.Save(resp.Token, resp.Role))
	return api.New(s.srv.URL, "/api", sess, api.WithHTTPClient(s.srv.Client()))
}

func (s *ServerTestSuite) createProduct(name string, price int64, stock int) model.Products {
	category, err := s.admin.CreateCategory(s.ctx, model.CategoryRequest{Name: name + " shelf", Type: model.CategoryPlants})
	s.Require().NoError(err)
	product, err := s.admin.CreateProduct(s.ctx, model.ProductsRequest{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
		CategoryId: category.Id,
		Images:     []string{"https://img.example.com/" + name + ".jpg"},
	})
	s.Require().NoError(err)
	return product
}

func (s *ServerTestSuite) TestRoleGates() {
	_, err := s.anonymous().Cart(s.ctx)
	s.True(api.IsAuthError(err))

	_, err = s.user.Users(s.ctx)
	s.True(api.IsAuthError(err))

	_, err = s.anonymous().Login(s.ctx, "asha@example.com", "wrong-pass1")
	s.True(api.IsAuthError(err))

	users, err := s.admin.Users(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)

	settings, err := s.anonymous().Settings(s.ctx)
	s.Require().NoError(err)
	s.Equal("greenleaf@upi", settings.UPIPayeeID)
}

func (s *ServerTestSuite) TestCartOrderAndPayment() {
	tulsi := s.createProduct("Tulsi", 120, 3)

	s.Require().NoError(s.user.AddToCart(s.ctx, tulsi.ProductId, 2))
	cart, err := s.user.Cart(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, cart.Count())
	s.Equal("https://img.example.com/Tulsi.jpg", cart.Items[0].Image)

	err = s.user.AddToCart(s.ctx, tulsi.ProductId, 2)
	s.Require().Error(err)
	s.Equal("Requested quantity not available", api.Message(err))

	order, err := s.user.PlaceOrder(s.ctx, model.OrderRequest{
		FromCart: true,
		Items:    []model.ProductMinimalDetails{{ProductId: tulsi.ProductId, Quantity: 2}},
	})
	s.Require().NoError(err)
	s.True(order.Total.Equal(decimal.NewFromInt(240)))
	s.Contains(order.OrderNumber, "ORD-")

	cart, err = s.user.Cart(s.ctx)
	s.Require().NoError(err)
	s.Zero(cart.Count())
	product, err := s.user.Product(s.ctx, tulsi.ProductId)
	s.Require().NoError(err)
	s.Equal(1, product.Stock)

	_, err = s.user.PayOrder(s.ctx, order.Id, model.PaymentRequest{Method: model.PaymentMethodCheckout, Reference: "pay_1", Signature: "forged"})
	s.Require().Error(err)

	paid, err := s.user.PayOrder(s.ctx, order.Id, model.PaymentRequest{
		Method:    model.PaymentMethodCheckout,
		Reference: "pay_1",
		Signature: handler.CheckoutSignature(webhookSecret, order.Id, "pay_1"),
	})
	s.Require().NoError(err)
	s.Equal(model.PaymentStatusPaid, paid.PaymentStatus)

	_, err = s.user.CancelOrder(s.ctx, order.Id)
	s.Require().Error(err, "paid orders are not cancellable")
}

func (s *ServerTestSuite) TestCancelRestocks() {
	fern := s.createProduct("Fern", 250, 2)
	order, err := s.user.PlaceOrder(s.ctx, model.OrderRequest{Items: []model.ProductMinimalDetails{{ProductId: fern.ProductId, Quantity: 2}}})
	s.Require().NoError(err)

	_, err = s.user.PlaceOrder(s.ctx, model.OrderRequest{Items: []model.ProductMinimalDetails{{ProductId: fern.ProductId, Quantity: 1}}})
	s.Require().Error(err)

	cancelled, err := s.user.CancelOrder(s.ctx, order.Id)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusCancelled, cancelled.Status)

	product, err := s.user.Product(s.ctx, fern.ProductId)
	s.Require().NoError(err)
	s.Equal(2, product.Stock)
}

func (s *ServerTestSuite) TestDeliveredOrderUnlocksOneReview() {
	tulsi := s.createProduct("Tulsi", 120, 5)
	order, err := s.user.PlaceOrder(s.ctx, model.OrderRequest{Items: []model.ProductMinimalDetails{{ProductId: tulsi.ProductId, Quantity: 1}}})
	s.Require().NoError(err)

	can, err := s.user.CanReview(s.ctx, tulsi.ProductId)
	s.Require().NoError(err)
	s.False(can)

	_, err = s.admin.UpdateOrderStatus(s.ctx, order.Id, model.OrderStatusDelivered)
	s.Require().Error(err, "pending cannot jump to delivered")
	for _, status := range []model.OrderStatus{model.OrderStatusConfirmed, model.OrderStatusShipped, model.OrderStatusDelivered} {
		_, err = s.admin.UpdateOrderStatus(s.ctx, order.Id, status)
		s.Require().NoError(err)
	}

	can, err = s.user.CanReview(s.ctx, tulsi.ProductId)
	s.Require().NoError(err)
	s.True(can)

	review, err := s.user.CreateReview(s.ctx, model.ReviewRequest{ProductId: tulsi.ProductId, Rating: 4, Comment: "fresh"})
	s.Require().NoError(err)
	s.Equal("Asha", review.UserName)

	_, err = s.user.CreateReview(s.ctx, model.ReviewRequest{ProductId: tulsi.ProductId, Rating: 5})
	s.Require().Error(err)

	_, err = s.user.UpdateReview(s.ctx, review.Id, model.ReviewRequest{ProductId: tulsi.ProductId, Rating: 2})
	s.Require().NoError(err)
	product, err := s.user.Product(s.ctx, tulsi.ProductId)
	s.Require().NoError(err)
	s.InDelta(2.0, product.Rating, 0.001)

	list, err := s.anonymous().ProductReviews(s.ctx, tulsi.ProductId)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *ServerTestSuite) userId(email string) string {
	users, err := s.admin.Users(s.ctx)
	s.Require().NoError(err)
	for _, u := range users {
		if u.Email == email {
			return u.Id
		}
	}
	s.FailNow("no user " + email)
	return ""
}

func (s *ServerTestSuite) TestStaffAttendanceAndSalary() {
	ashaId := s.userId("asha@example.com")
	_, err := s.admin.UpdateUserRole(s.ctx, ashaId, model.RoleStaff)
	s.Require().NoError(err)

	rows, err := s.admin.Attendance(s.ctx, today)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(model.AttendanceNotMarked, rows[0].Status)

	err = s.admin.MarkAttendance(s.ctx, model.AttendanceRequest{UserId: ashaId, Date: "2026-10-14", Status: model.AttendancePresent})
	s.Require().Error(err)
	var apiErr *api.Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.Status)

	s.Require().NoError(s.admin.MarkAttendance(s.ctx, model.AttendanceRequest{UserId: ashaId, Date: today, Status: model.AttendancePresent}))
	rows, err = s.admin.Attendance(s.ctx, today)
	s.Require().NoError(err)
	s.Equal(model.AttendancePresent, rows[0].Status)

	salary, err := s.admin.UpdateSalary(s.ctx, ashaId, decimal.NewFromInt(18000))
	s.Require().NoError(err)
	s.True(salary.Amount.Equal(decimal.NewFromInt(18000)))

	_, err = s.admin.UpdateSalary(s.ctx, ashaId, decimal.Zero)
	s.Require().Error(err)
}

func (s *ServerTestSuite) TestStaffCannotWriteOwnRecords() {
	ashaId := s.userId("asha@example.com")
	adminId := s.userId("admin@example.com")
	_, err := s.admin.UpdateUserRole(s.ctx, ashaId, model.RoleStaff)
	s.Require().NoError(err)
	_, err = s.admin.UpdateSalary(s.ctx, ashaId, decimal.NewFromInt(18000))
	s.Require().NoError(err)

	staff := s.login("asha@example.com", "greenleaf1")
	var apiErr *api.Error

	_, err = staff.UpdateSalary(s.ctx, ashaId, decimal.NewFromInt(999999))
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusForbidden, apiErr.Status)

	err = staff.MarkAttendance(s.ctx, model.AttendanceRequest{UserId: ashaId, Date: today, Status: model.AttendancePresent})
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusForbidden, apiErr.Status)

	salary, err := staff.Salary(s.ctx, ashaId)
	s.Require().NoError(err)
	s.True(salary.Amount.Equal(decimal.NewFromInt(18000)))

	_, err = staff.Salary(s.ctx, adminId)
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusForbidden, apiErr.Status)

	rows, err := staff.Attendance(s.ctx, today)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(ashaId, rows[0].UserId)
	s.Equal(model.AttendanceNotMarked, rows[0].Status)
}

func (s *ServerTestSuite) TestStats() {
	tulsi := s.createProduct("Tulsi", 120, 5)
	_, err := s.user.PlaceOrder(s.ctx, model.OrderRequest{Items: []model.ProductMinimalDetails{{ProductId: tulsi.ProductId, Quantity: 1}}})
	s.Require().NoError(err)

	stats, err := s.admin.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.Products)
	s.Equal(1, stats.Orders)
	s.Equal(1, stats.Pending)
	s.Equal(2, stats.Users)
	s.True(stats.Revenue.IsZero())
}
