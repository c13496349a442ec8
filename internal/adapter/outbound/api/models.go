package api

// Wire DTOs for the café backend. Field sets follow the backend's
// input/output DTOs; pointers and omitempty mark fields the backend
// fills in (ids, timestamps) or treats as optional.

// Product is a menu item offered by a restaurant.
type Product struct {
	ID             int64    `json:"id,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Ingredients    []string `json:"ingredients,omitempty"`
	Amount         int      `json:"amount,omitempty"`
	Price          float64  `json:"price,omitempty"`
	RestaurantID   int64    `json:"restaurantId,omitempty"`
	MenuCategoryID int64    `json:"menuCategoryId,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

// User is a customer or staff account.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID         int64   `json:"id,omitempty"`
	UserID     int64   `json:"userId,omitempty"`
	TotalPrice float64 `json:"totalPrice,omitempty"`
	Status     string  `json:"status,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

// OrderItem is one product line inside an order.
type OrderItem struct {
	ID        int64   `json:"id,omitempty"`
	OrderID   int64   `json:"orderId,omitempty"`
	ProductID int64   `json:"productId,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
}

// Payment settles an order.
type Payment struct {
	ID            int64   `json:"id,omitempty"`
	OrderID       int64   `json:"orderId,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Status        string  `json:"status,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// MenuCategory groups products on the menu.
type MenuCategory struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Restaurant is a café location.
type Restaurant struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Manager is a staff account tied to a restaurant.
type Manager struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	Role         string `json:"role,omitempty"`
	RestaurantID int64  `json:"restaurantId,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}
