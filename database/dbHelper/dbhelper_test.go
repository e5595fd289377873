package dbHelper

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"plant_nursery/database"
	"plant_nursery/model"
)

type DbHelperTestSuite struct {
	suite.Suite
	db *sqlx.DB
}

func TestDbHelperTestSuite(t *testing.T) {
	suite.Run(t, new(DbHelperTestSuite))
}

func (s *DbHelperTestSuite) SetupTest() {
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.MigrateUp(db))
	s.db = db
}

func (s *DbHelperTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *DbHelperTestSuite) createUser(name, email string, role model.Role) string {
	id, err := CreateUser(s.db, name, email, "", "hash")
	s.Require().NoError(err)
	s.Require().NoError(CreateUserRole(s.db, id, role))
	return id
}

func (s *DbHelperTestSuite) createProduct(categoryId, name string, price int64, stock int) string {
	id, err := CreateProduct(s.db, model.ProductsRequest{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
		CategoryId: categoryId,
		Images:     []string{"https://img.example.com/" + name + "-1.jpg", "https://img.example.com/" + name + "-2.jpg"},
	})
	s.Require().NoError(err)
	return id
}

func (s *DbHelperTestSuite) createCategory(name string) string {
	id, err := CreateCategory(s.db, name, model.CategoryPlants, "")
	s.Require().NoError(err)
	return id
}

func (s *DbHelperTestSuite) TestCategoryUpdateIsVisibleOnRefetch() {
	id := s.createCategory("Outdoor")

	s.Require().NoError(UpdateCategory(s.db, id, "Indoor", model.CategoryPlants, "shade lovers"))

	list, err := GetAllCategory(s.db)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Indoor", list[0].Name)
	s.Equal(model.CategoryPlants, list[0].Type)

	s.ErrorIs(UpdateCategory(s.db, "missing", "x", model.CategoryPots, ""), sql.ErrNoRows)
}

func (s *DbHelperTestSuite) TestDeleteCategoryHidesIt() {
	id := s.createCategory("Seeds")
	s.Require().NoError(DeleteCategory(s.db, id))

	list, err := GetAllCategory(s.db)
	s.Require().NoError(err)
	s.Empty(list)
	s.ErrorIs(DeleteCategory(s.db, id), sql.ErrNoRows)
}

func (s *DbHelperTestSuite) TestProductFilters() {
	plants := s.createCategory("Plants")
	pots := s.createCategory("Pots")
	s.createProduct(plants, "Tulsi", 120, 10)
	s.createProduct(plants, "Areca Palm", 80, 3)
	s.createProduct(pots, "Clay Pot", 600, 0)

	list, err := GetAllProduct(s.db, model.ProductFilter{Sort: "price-low"})
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]string{"Areca Palm", "Tulsi", "Clay Pot"}, []string{list[0].Name, list[1].Name, list[2].Name})
	s.Equal([]string{"https://img.example.com/Areca Palm-1.jpg", "https://img.example.com/Areca Palm-2.jpg"}, list[0].Images)

	below := decimal.NewFromInt(500)
	list, err = GetAllProduct(s.db, model.ProductFilter{PriceBelow: &below, CategoryId: plants, Sort: "name"})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Areca Palm", list[0].Name)

	list, err = GetAllProduct(s.db, model.ProductFilter{Search: "PALM"})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.True(list[0].Price.Equal(decimal.NewFromInt(80)))
}

func (s *DbHelperTestSuite) TestAdjacentPriceBoundsLeaveNoGap() {
	plants := s.createCategory("Plants")
	id, err := CreateProduct(s.db, model.ProductsRequest{
		Name:       "Money Plant",
		Price:      decimal.RequireFromString("499.50"),
		Stock:      4,
		CategoryId: plants,
		Images:     []string{"https://img.example.com/money-plant.jpg"},
	})
	s.Require().NoError(err)

	zero, fiveHundred, thousand := decimal.Zero, decimal.NewFromInt(500), decimal.NewFromInt(1000)
	list, err := GetAllProduct(s.db, model.ProductFilter{MinPrice: &zero, PriceBelow: &fiveHundred})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(id, list[0].ProductId)

	list, err = GetAllProduct(s.db, model.ProductFilter{MinPrice: &fiveHundred, PriceBelow: &thousand})
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *DbHelperTestSuite) TestDecreaseProductStock() {
	category := s.createCategory("Plants")
	id := s.createProduct(category, "Fern", 250, 2)

	s.Require().NoError(DecreaseProductStock(s.db, id, 2))
	s.ErrorIs(DecreaseProductStock(s.db, id, 1), ErrInsufficientStock)

	product, err := GetProductById(s.db, id)
	s.Require().NoError(err)
	s.Equal(0, product.Stock)
}

func (s *DbHelperTestSuite) TestCartLinesKeepInsertionOrder() {
	userId := s.createUser("Asha", "asha@example.com", model.RoleUser)
	category := s.createCategory("Plants")
	tulsi := s.createProduct(category, "Tulsi", 120, 10)
	areca := s.createProduct(category, "Areca Palm", 80, 10)

	tx, err := s.db.Beginx()
	s.Require().NoError(err)
	cartId, err := GetOrCreateCart(tx, userId)
	s.Require().NoError(err)
	again, err := GetOrCreateCart(tx, userId)
	s.Require().NoError(err)
	s.Equal(cartId, again)
	s.Require().NoError(CreateProductInCart(tx, cartId, tulsi, 1))
	s.Require().NoError(CreateProductInCart(tx, cartId, areca, 2))
	s.Require().NoError(tx.Commit())

	s.Require().NoError(SetProductQuantityInCart(s.db, cartId, tulsi, 3))
	items, err := GetCartWithProduct(s.db, userId)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("Tulsi", items[0].Name)
	s.Equal(3, items[0].Quantity)
	s.Equal("https://img.example.com/Tulsi-1.jpg", items[0].Image)
	s.Equal(5, model.Cart{Items: items}.Count())

	s.Require().NoError(DeleteProductFromCart(s.db, userId, tulsi))
	s.ErrorIs(DeleteProductFromCart(s.db, userId, tulsi), ErrCartItemNotFound)

	s.Require().NoError(ClearCart(s.db, userId))
	items, err = GetCartWithProduct(s.db, userId)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *DbHelperTestSuite) TestOrdersAndReviewEligibility() {
	userId := s.createUser("Ravi", "ravi@example.com", model.RoleUser)
	category := s.createCategory("Plants")
	tulsi := s.createProduct(category, "Tulsi", 120, 10)

	order, err := CreateOrder(s.db, userId, []model.OrderItem{
		{ProductId: tulsi, Name: "Tulsi", Price: decimal.NewFromInt(120), Quantity: 2},
	})
	s.Require().NoError(err)
	s.True(order.Total.Equal(decimal.NewFromInt(240)))

	delivered, err := HasDeliveredProduct(s.db, userId, tulsi)
	s.Require().NoError(err)
	s.False(delivered)

	s.Require().NoError(UpdateOrderStatus(s.db, order.Id, model.OrderStatusDelivered))
	delivered, err = HasDeliveredProduct(s.db, userId, tulsi)
	s.Require().NoError(err)
	s.True(delivered)

	s.Require().NoError(MarkOrderPaid(s.db, order.Id, model.PaymentMethodCheckout, "pay_1"))
	s.ErrorIs(MarkOrderPaid(s.db, order.Id, model.PaymentMethodCheckout, "pay_2"), sql.ErrNoRows)

	orders, err := GetOrdersByUser(s.db, userId)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(model.PaymentStatusPaid, orders[0].PaymentStatus)
	s.Require().Len(orders[0].Items, 1)
	s.Equal(2, orders[0].Items[0].Quantity)

	_, err = CreateReview(s.db, userId, model.ReviewRequest{ProductId: tulsi, Rating: 4})
	s.Require().NoError(err)
	_, err = CreateReview(s.db, userId, model.ReviewRequest{ProductId: tulsi, Rating: 5})
	s.True(IsUniqueViolation(err), "duplicate review: %v", err)
	s.Require().NoError(RefreshProductRating(s.db, tulsi))

	product, err := GetProductById(s.db, tulsi)
	s.Require().NoError(err)
	s.InDelta(4.0, product.Rating, 0.001)

	stats, err := GetStats(s.db)
	s.Require().NoError(err)
	s.Equal(1, stats.Orders)
	s.True(stats.Revenue.Equal(decimal.NewFromInt(240)))
}

func (s *DbHelperTestSuite) TestDuplicateActiveEmailIsUniqueViolation() {
	s.createUser("Asha", "asha@example.com", model.RoleUser)

	_, err := CreateUser(s.db, "Asha Again", "asha@example.com", "", "hash")
	s.True(IsUniqueViolation(err), "duplicate email: %v", err)
	s.False(IsUniqueViolation(ErrInsufficientStock))
}

func (s *DbHelperTestSuite) TestAttendanceDefaultsToNotMarked() {
	staff := s.createUser("Kiran", "kiran@example.com", model.RoleStaff)
	s.createUser("Customer", "customer@example.com", model.RoleUser)

	list, err := GetAttendanceByDate(s.db, "2026-10-15")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(model.AttendanceNotMarked, list[0].Status)
	s.Equal("2026-10-15", list[0].Date)

	s.Require().NoError(MarkAttendance(s.db, staff, "2026-10-15", model.AttendancePresent))
	s.Require().NoError(MarkAttendance(s.db, staff, "2026-10-15", model.AttendanceLeave))

	list, err = GetAttendanceByDate(s.db, "2026-10-15")
	s.Require().NoError(err)
	s.Equal(model.AttendanceLeave, list[0].Status)
}
