package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string
type CategoryType string
type OrderStatus string
type PaymentStatus string
type PaymentMethod string
type AttendanceStatus string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
)

const (
	CategoryPots        CategoryType = "Pots"
	CategoryFlowers     CategoryType = "Flowers"
	CategoryPlants      CategoryType = "Plants"
	CategoryUtensils    CategoryType = "Utensils"
	CategoryTools       CategoryType = "Tools"
	CategorySeeds       CategoryType = "Seeds"
	CategoryFertilizers CategoryType = "Fertilizers"
	CategoryOthers      CategoryType = "Others"
)

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

const (
	PaymentMethodCheckout PaymentMethod = "checkout"
	PaymentMethodUPIQR    PaymentMethod = "upi_qr"
)

const (
	AttendanceNotMarked AttendanceStatus = "not-marked"
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceLeave     AttendanceStatus = "leave"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (c CategoryType) Valid() bool {
	switch c {
	case CategoryPots, CategoryFlowers, CategoryPlants, CategoryUtensils,
		CategoryTools, CategorySeeds, CategoryFertilizers, CategoryOthers:
		return true
	}
	return false
}

func (a AttendanceStatus) Valid() bool {
	switch a {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

type UserRequestBody struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
}

// SignupRequestBody carries both signup phases: the first one without OTP,
// the confirming one with the code mailed to the user.
type SignupRequestBody struct {
	UserRequestBody
	OTP string `json:"otp" validate:"omitempty,len=6,numeric"`
}

type SignupResponse struct {
	OTPRequired bool              `json:"otpRequired"`
	User        *UserResponseBody `json:"user,omitempty"`
}

type UserResponseBody struct {
	UserId string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type LoginRequestBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

type PasswordRequestBody struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type ProfileRequestBody struct {
	Name  string `json:"name" validate:"required,min=3,max=50"`
	Phone string `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
}

type UserCredential struct {
	Id    string `json:"id"`
	Roles Role   `json:"role"`
}

type User struct {
	Id        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type RoleRequestBody struct {
	Role Role `json:"role" validate:"required,oneof=admin user staff"`
}

type CategoryRequest struct {
	Name        string       `json:"name" validate:"required,max=60"`
	Type        CategoryType `json:"type" validate:"required"`
	Description string       `json:"description"`
}

type Category struct {
	Id          string       `json:"_id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Type        CategoryType `json:"type" db:"type"`
	Description string       `json:"description" db:"description"`
}

type ProductsRequest struct {
	Name          string              `json:"name" validate:"required"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Stock         int                 `json:"stock" validate:"gte=0"`
	CategoryId    string              `json:"category" validate:"required"`
	Size          string              `json:"size"`
	Images        []string            `json:"images" validate:"min=1,dive,url"`
}

type Products struct {
	ProductId     string              `json:"_id" db:"id"`
	Name          string              `json:"name" db:"name"`
	Description   string              `json:"description" db:"description"`
	Price         decimal.Decimal     `json:"price" db:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice" db:"original_price"`
	Stock         int                 `json:"stock" db:"stock"`
	CategoryId    string              `json:"category" db:"category_id"`
	Size          string              `json:"size" db:"size"`
	Rating        float64             `json:"rating" db:"rating"`
	Images        []string            `json:"images" db:"-"`
	CreatedAt     time.Time           `json:"createdAt" db:"created_at"`
}

// ProductImage is one row of the ordered image list of a product.
type ProductImage struct {
	ProductId string `db:"product_id"`
	Position  int    `db:"position"`
	URL       string `db:"url"`
}

// ProductFilter holds the server-side catalog filters.
type ProductFilter struct {
	Search     string
	CategoryId string
	MinPrice   *decimal.Decimal
	// PriceBelow is exclusive so adjacent buckets leave no gap for paise.
	PriceBelow *decimal.Decimal
	Sort       string
}

type CartRequest struct {
	ProductId string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type CartItem struct {
	ProductId string          `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	Image     string          `json:"image" db:"image"`
	Quantity  int             `json:"quantity" db:"quantity"`
	AddedAt   time.Time       `json:"addedAt" db:"added_at"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// Count is the cart badge value: the sum of line quantities.
func (c Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

type CartResponse struct {
	Cart  Cart `json:"cart"`
	Count int  `json:"count"`
}

type ProductMinimalDetails struct {
	ProductId string `json:"productId" db:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" db:"quantity" validate:"gte=1"`
}

type OrderRequest struct {
	Items    []ProductMinimalDetails `json:"items" validate:"required,min=1,dive"`
	FromCart bool                    `json:"fromCart"`
}

type OrderItem struct {
	ProductId string          `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
}

type Order struct {
	Id               string          `json:"_id" db:"id"`
	OrderNumber      string          `json:"orderNumber" db:"order_number"`
	UserId           string          `json:"userId" db:"user_id"`
	Status           OrderStatus     `json:"status" db:"status"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	PaymentMethod    string          `json:"paymentMethod" db:"payment_method"`
	PaymentReference string          `json:"paymentReference" db:"payment_reference"`
	Total            decimal.Decimal `json:"total" db:"total"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	Items            []OrderItem     `json:"items" db:"-"`
}

type OrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

type PaymentRequest struct {
	Method    PaymentMethod `json:"method" validate:"required,oneof=checkout upi_qr"`
	Reference string        `json:"reference"`
	Signature string        `json:"signature"`
}

type ReviewRequest struct {
	ProductId string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

type Review struct {
	Id        string    `json:"_id" db:"id"`
	UserId    string    `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	ProductId string    `json:"productId" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type CanReviewResponse struct {
	CanReview bool `json:"canReview"`
}

type AttendanceRequest struct {
	UserId string           `json:"userId" validate:"required"`
	Date   string           `json:"date" validate:"required,datetime=2006-01-02"`
	Status AttendanceStatus `json:"status" validate:"required,oneof=present absent leave"`
}

type Attendance struct {
	UserId string           `json:"userId" db:"user_id"`
	Name   string           `json:"name" db:"name"`
	Date   string           `json:"date" db:"attendance_date"`
	Status AttendanceStatus `json:"status" db:"status"`
}

type SalaryRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type Salary struct {
	UserId    string          `json:"userId" db:"user_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

type Stats struct {
	Products int             `json:"products" db:"products"`
	Orders   int             `json:"orders" db:"orders"`
	Users    int             `json:"users" db:"users"`
	Pending  int             `json:"pendingOrders" db:"pending_orders"`
	Revenue  decimal.Decimal `json:"revenue" db:"revenue"`
}

// Settings are the public storefront values the client reads at startup.
type Settings struct {
	UPIPayeeID string `json:"upiPayeeId"`
}

type Message struct {
	Message string `json:"message"`
}
