// Package fakeapi is an in-memory backend speaking the storefront's HTTP
// contract, for client tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"plant_nursery/model"
)

const BasePath = "/api"

type failure struct {
	status  int
	message string
}

type Backend struct {
	mu         sync.Mutex
	products   map[string]*model.Products
	order      []string
	categories []model.Category
	cart       []model.CartItem
	orders     []model.Order
	reviews    []model.Review
	attendance map[string]model.AttendanceStatus
	staff      []model.User
	requests   []string
	failures   map[string]failure
	payeeID    string
	nextID     int

	// User is the id reported for the caller of every request.
	User string
	// OTP, when set, makes signup two-phase: the second call must carry it.
	OTP string
}

func New() *Backend {
	return &Backend{
		products:   make(map[string]*model.Products),
		attendance: make(map[string]model.AttendanceStatus),
		failures:   make(map[string]failure),
		User:       "u1",
	}
}

// Start serves the backend until the test ends.
func (b *Backend) Start(t interface{ Cleanup(func()) }) *httptest.Server {
	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) AddProduct(p model.Products) {
	b.mu.Lock()
	defer b.mu.Unlock()
	product := p
	b.products[p.ProductId] = &product
	b.order = append(b.order, p.ProductId)
}

func (b *Backend) AddCategory(c model.Category) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.categories = append(b.categories, c)
}

func (b *Backend) AddOrder(o model.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = append(b.orders, o)
}

func (b *Backend) AddReview(r model.Review) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reviews = append(b.reviews, r)
}

func (b *Backend) AddStaff(u model.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.staff = append(b.staff, u)
}

// SetPayeeID changes what GET /settings reports.
func (b *Backend) SetPayeeID(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payeeID = id
}

// Fail makes the next request matching "METHOD /path" (without the base
// path) answer status with message.
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, message: message}
}

// Requests lists "METHOD /path" for every request served, in order.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// CountRequests counts served requests starting with prefix.
func (b *Backend) CountRequests(prefix string) int {
	n := 0
	for _, r := range b.Requests() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

// CartCount is the server-side sum of quantities.
func (b *Backend) CartCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.Cart{Items: b.cart}.Count()
}

func (b *Backend) Stock(productId string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.products[productId].Stock
}

func (b *Backend) Orders() []model.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Order(nil), b.orders...)
}

func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)
	r.Route(BasePath, func(api chi.Router) {
		api.Post("/auth/signup", b.signup)
		api.Get("/settings", b.settings)
		api.Post("/auth/login", b.login)
		api.Get("/auth/profile", b.profile)
		api.Get("/products", b.listProducts)
		api.Get("/categories", b.listCategories)
		api.Put("/categories/{id}", b.updateCategory)
		api.Get("/cart", b.getCart)
		api.Post("/cart/add", b.addToCart)
		api.Put("/cart/update", b.updateCart)
		api.Delete("/cart/remove/{id}", b.removeFromCart)
		api.Get("/orders", b.listOrders)
		api.Post("/orders", b.placeOrder)
		api.Put("/orders/cancel/{id}", b.cancelOrder)
		api.Put("/orders/pay/{id}", b.payOrder)
		api.Get("/reviews/product/{id}", b.productReviews)
		api.Post("/reviews", b.createReview)
		api.Put("/reviews/{id}", b.updateReview)
		api.Get("/staff/attendance", b.getAttendance)
		api.Post("/staff/attendance", b.markAttendance)
	})
	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + strings.TrimPrefix(r.URL.Path, BasePath)
		b.mu.Lock()
		b.requests = append(b.requests, route)
		f, failing := b.failures[route]
		delete(b.failures, route)
		b.mu.Unlock()
		if failing {
			respond(w, f.status, map[string]string{"message": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"message": message})
}

func decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (b *Backend) id(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s%d", prefix, b.nextID)
}

func (b *Backend) settings(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	respond(w, http.StatusOK, model.Settings{UPIPayeeID: b.payeeID})
}

func (b *Backend) signup(w http.ResponseWriter, r *http.Request) {
	var body model.SignupRequestBody
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	otp := b.OTP
	b.mu.Unlock()
	switch {
	case otp != "" && body.OTP == "":
		respond(w, http.StatusOK, model.SignupResponse{OTPRequired: true})
	case otp != "" && body.OTP != otp:
		respondMessage(w, http.StatusBadRequest, "invalid or expired code")
	default:
		user := &model.UserResponseBody{Name: body.Name, Email: body.Email}
		respond(w, http.StatusCreated, model.SignupResponse{User: user})
	}
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var body model.LoginRequestBody
	if !decode(w, r, &body) {
		return
	}
	if body.Password != "secret123" {
		respondMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	role := model.RoleUser
	if strings.HasPrefix(body.Email, "admin") {
		role = model.RoleAdmin
	}
	respond(w, http.StatusOK, model.LoginResponse{Token: "token-" + body.Email, Role: role})
}

func (b *Backend) profile(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, model.User{Id: b.User, Name: "Asha", Email: "asha@example.com", Role: model.RoleUser})
}

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	category := r.URL.Query().Get("category")
	search := strings.ToLower(r.URL.Query().Get("search"))
	list := make([]model.Products, 0, len(b.order))
	for _, id := range b.order {
		p := b.products[id]
		if category != "" && p.CategoryId != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		list = append(list, *p)
	}
	respond(w, http.StatusOK, map[string]interface{}{"products": list})
}

func (b *Backend) listCategories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	respond(w, http.StatusOK, append([]model.Category{}, b.categories...))
}

func (b *Backend) updateCategory(w http.ResponseWriter, r *http.Request) {
	var body model.CategoryRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range b.categories {
		if b.categories[i].Id == id {
			b.categories[i].Name = body.Name
			b.categories[i].Type = body.Type
			b.categories[i].Description = body.Description
			respond(w, http.StatusOK, b.categories[i])
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "Category not found")
}

// cartLocked must run with mu held.
func (b *Backend) cartLocked() model.CartResponse {
	cart := model.Cart{Items: append([]model.CartItem{}, b.cart...)}
	return model.CartResponse{Cart: cart, Count: cart.Count()}
}

func (b *Backend) getCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	respond(w, http.StatusOK, b.cartLocked())
}

func (b *Backend) lineIndex(productId string) int {
	for i, item := range b.cart {
		if item.ProductId == productId {
			return i
		}
	}
	return -1
}

func (b *Backend) addToCart(w http.ResponseWriter, r *http.Request) {
	var body model.CartRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.products[body.ProductId]
	if !ok {
		respondMessage(w, http.StatusNotFound, "product not found")
		return
	}
	i := b.lineIndex(body.ProductId)
	current := 0
	if i >= 0 {
		current = b.cart[i].Quantity
	}
	if current+body.Quantity > p.Stock {
		respondMessage(w, http.StatusBadRequest, "Requested quantity not available")
		return
	}
	if i >= 0 {
		b.cart[i].Quantity += body.Quantity
	} else {
		b.cart = append(b.cart, model.CartItem{ProductId: p.ProductId, Name: p.Name, Price: p.Price, Stock: p.Stock, Quantity: body.Quantity})
	}
	respond(w, http.StatusCreated, b.cartLocked())
}

func (b *Backend) updateCart(w http.ResponseWriter, r *http.Request) {
	var body model.CartRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.lineIndex(body.ProductId)
	if i < 0 {
		respondMessage(w, http.StatusNotFound, "cart item not found")
		return
	}
	if body.Quantity < 1 || body.Quantity > b.products[body.ProductId].Stock {
		respondMessage(w, http.StatusBadRequest, "Requested quantity not available")
		return
	}
	b.cart[i].Quantity = body.Quantity
	respond(w, http.StatusOK, b.cartLocked())
}

func (b *Backend) removeFromCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.lineIndex(chi.URLParam(r, "id"))
	if i < 0 {
		respondMessage(w, http.StatusNotFound, "cart item not found")
		return
	}
	b.cart = append(b.cart[:i], b.cart[i+1:]...)
	respond(w, http.StatusOK, b.cartLocked())
}

func (b *Backend) listOrders(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	respond(w, http.StatusOK, append([]model.Order{}, b.orders...))
}

func (b *Backend) placeOrder(w http.ResponseWriter, r *http.Request) {
	var body model.OrderRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	order := model.Order{
		Id:            b.id("o"),
		UserId:        b.User,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		Total:         decimal.Zero,
	}
	order.OrderNumber = "ORD-" + order.Id
	for _, item := range body.Items {
		p, ok := b.products[item.ProductId]
		if !ok || p.Stock < item.Quantity {
			respondMessage(w, http.StatusBadRequest, "Requested quantity not available")
			return
		}
	}
	for _, item := range body.Items {
		p := b.products[item.ProductId]
		p.Stock -= item.Quantity
		order.Items = append(order.Items, model.OrderItem{ProductId: p.ProductId, Name: p.Name, Price: p.Price, Quantity: item.Quantity})
		order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if body.FromCart {
		b.cart = nil
	}
	b.orders = append([]model.Order{order}, b.orders...)
	respond(w, http.StatusCreated, order)
}

func (b *Backend) findOrder(id string) int {
	for i := range b.orders {
		if b.orders[i].Id == id {
			return i
		}
	}
	return -1
}

func (b *Backend) cancelOrder(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findOrder(chi.URLParam(r, "id"))
	if i < 0 {
		respondMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if b.orders[i].Status != model.OrderStatusPending {
		respondMessage(w, http.StatusBadRequest, "only pending unpaid orders can be cancelled")
		return
	}
	b.orders[i].Status = model.OrderStatusCancelled
	respond(w, http.StatusOK, b.orders[i])
}

func (b *Backend) payOrder(w http.ResponseWriter, r *http.Request) {
	var body model.PaymentRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findOrder(chi.URLParam(r, "id"))
	if i < 0 {
		respondMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if body.Method == model.PaymentMethodCheckout && body.Signature != "sig-"+body.Reference {
		respondMessage(w, http.StatusBadRequest, "payment signature mismatch")
		return
	}
	b.orders[i].PaymentStatus = model.PaymentStatusPaid
	b.orders[i].PaymentMethod = string(body.Method)
	b.orders[i].PaymentReference = body.Reference
	respond(w, http.StatusOK, b.orders[i])
}

func (b *Backend) productReviews(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := make([]model.Review, 0)
	for _, review := range b.reviews {
		if review.ProductId == chi.URLParam(r, "id") {
			list = append(list, review)
		}
	}
	respond(w, http.StatusOK, list)
}

func (b *Backend) createReview(w http.ResponseWriter, r *http.Request) {
	var body model.ReviewRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	review := model.Review{Id: b.id("r"), UserId: b.User, ProductId: body.ProductId, Rating: body.Rating, Comment: body.Comment}
	b.reviews = append(b.reviews, review)
	respond(w, http.StatusCreated, review)
}

func (b *Backend) updateReview(w http.ResponseWriter, r *http.Request) {
	var body model.ReviewRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.reviews {
		if b.reviews[i].Id == chi.URLParam(r, "id") {
			b.reviews[i].Rating = body.Rating
			b.reviews[i].Comment = body.Comment
			respond(w, http.StatusOK, b.reviews[i])
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "Review not found")
}

func (b *Backend) getAttendance(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	date := r.URL.Query().Get("date")
	list := make([]model.Attendance, 0, len(b.staff))
	for _, u := range b.staff {
		status, ok := b.attendance[u.Id+"|"+date]
		if !ok {
			status = model.AttendanceNotMarked
		}
		list = append(list, model.Attendance{UserId: u.Id, Name: u.Name, Date: date, Status: status})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	respond(w, http.StatusOK, list)
}

func (b *Backend) markAttendance(w http.ResponseWriter, r *http.Request) {
	var body model.AttendanceRequest
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attendance[body.UserId+"|"+body.Date] = body.Status
	respond(w, http.StatusOK, model.Attendance{UserId: body.UserId, Date: body.Date, Status: body.Status})
}
