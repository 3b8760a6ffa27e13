package generator

import "time"

// Categories is the fixed product category set.
var Categories = []string{
	"Electronics", "Clothing", "Books", "Home & Garden",
	"Sports", "Toys", "Beauty", "Food & Beverages",
}

type User struct {
	ID         int
	Name       string
	Email      string
	SignupDate time.Time
}

type Product struct {
	ID       int
	Name     string
	Category string
	Price    float64
}

type Order struct {
	ID          int
	UserID      int
	OrderDate   time.Time
	TotalAmount float64
}

type OrderItem struct {
	ID        int
	OrderID   int
	ProductID int
	Quantity  int
	Subtotal  float64
}

type Review struct {
	ID         int
	UserID     int
	ProductID  int
	Rating     int
	ReviewText string
	ReviewDate time.Time
}

// Dataset holds one full generation run, in creation order.
type Dataset struct {
	Users      []User
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Reviews    []Review
}
