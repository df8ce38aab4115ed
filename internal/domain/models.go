package domain

import "time"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleChef    Role = "CHEF"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type MenuItem struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	Vegetarian      bool    `json:"vegetarian"`
	Available       bool    `json:"available"`
	PreparationTime int     `json:"preparationTime"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	ChefID          int64   `json:"chefId"`
	ChefName        string  `json:"chefName"`
	AverageRating   float64 `json:"averageRating"`
	TotalRatings    int     `json:"totalRatings"`
}

type MenuItemRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	Vegetarian      bool    `json:"vegetarian"`
	Available       bool    `json:"available"`
	PreparationTime int     `json:"preparationTime"`
	ImageURL        string  `json:"imageUrl,omitempty"`
}

type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderReady          OrderStatus = "READY"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	MenuItemID   int64   `json:"menuItemId"`
	MenuItemName string  `json:"menuItemName,omitempty"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price,omitempty"`
}

type Order struct {
	ID                  int64       `json:"id"`
	Items               []OrderItem `json:"items"`
	Status              OrderStatus `json:"status"`
	TotalAmount         float64     `json:"totalAmount"`
	DeliveryAddress     string      `json:"deliveryAddress"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	StudentID           int64       `json:"studentId,omitempty"`
	StudentName         string      `json:"studentName,omitempty"`
	ChefID              int64       `json:"chefId,omitempty"`
	ChefName            string      `json:"chefName,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type PlaceOrderRequest struct {
	Items               []OrderItem `json:"items"`
	DeliveryAddress     string      `json:"deliveryAddress"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
}

type Rating struct {
	ID           int64     `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	StudentID    int64     `json:"studentId,omitempty"`
	StudentName  string    `json:"studentName,omitempty"`
	ChefID       int64     `json:"chefId,omitempty"`
	MenuItemID   int64     `json:"menuItemId,omitempty"`
	MenuItemName string    `json:"menuItemName,omitempty"`
	OrderID      int64     `json:"orderId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ChefRatingRequest struct {
	ChefID  int64  `json:"chefId"`
	OrderID int64  `json:"orderId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type MenuItemRatingRequest struct {
	MenuItemID int64  `json:"menuItemId"`
	OrderID    int64  `json:"orderId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

type RatingStats struct {
	AverageRating float64        `json:"averageRating"`
	TotalRatings  int            `json:"totalRatings"`
	Distribution  map[string]int `json:"ratingDistribution,omitempty"`
}

type RatingStatus struct {
	OrderID        int64   `json:"orderId"`
	ChefRated      bool    `json:"chefRated"`
	RatedMenuItems []int64 `json:"ratedMenuItems,omitempty"`
}

type Testimonial struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	Rating     int        `json:"rating"`
	Approved   bool       `json:"approved"`
	UserID     int64      `json:"userId,omitempty"`
	UserName   string     `json:"userName,omitempty"`
	UserRole   Role       `json:"userRole,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

type TestimonialRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type Favourite struct {
	ID        int64     `json:"id"`
	MenuItem  MenuItem  `json:"menuItem"`
	CreatedAt time.Time `json:"createdAt"`
}

type InvoiceLine struct {
	MenuItemName string  `json:"menuItemName"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	LineTotal    float64 `json:"lineTotal"`
}

// Invoice is a server-rendered projection of an order. Totals are never
// recomputed client-side.
type Invoice struct {
	InvoiceNumber   string        `json:"invoiceNumber"`
	OrderID         int64         `json:"orderId"`
	StudentName     string        `json:"studentName"`
	ChefName        string        `json:"chefName"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Items           []InvoiceLine `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	PlatformFee     float64       `json:"platformFee"`
	Total           float64       `json:"total"`
	PaymentStatus   string        `json:"paymentStatus"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	OrderStatus     OrderStatus   `json:"orderStatus"`
	IssuedAt        time.Time     `json:"issuedAt"`
}

type ChatMessage struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"orderId"`
	SenderID   int64     `json:"senderId"`
	SenderName string    `json:"senderName"`
	SenderRole Role      `json:"senderRole"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sentAt"`
}

type ChatStatus struct {
	OrderID int64  `json:"orderId"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

type SuggestedItem struct {
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

type Preferences struct {
	Vegetarian  bool     `json:"vegetarian,omitempty"`
	MaxBudget   float64  `json:"maxBudget,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	CartItemIDs []int64  `json:"cartItemIds,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Suggestion is the uniform envelope of the AI suggestion service. It is
// returned on failure too, with Success false.
type Suggestion struct {
	Success     bool            `json:"success"`
	Items       []SuggestedItem `json:"items,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
	Error       string          `json:"error,omitempty"`
	Message     string          `json:"message,omitempty"`
}
