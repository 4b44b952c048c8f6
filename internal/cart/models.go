package cart

// Product is the catalogue entry a cart item refers to
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Item is one line of a cart
type Item struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Product  Product `json:"product"`
	// Currency is copied from the cart for display
	Currency string `json:"-"`
}

// Cart is the rider's cart as returned by MyCart
type Cart struct {
	ID         string  `json:"id"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
	Currency   string  `json:"currency"`
	Items      []Item  `json:"items"`
}

// LineTotal is the price of the line, quantity included
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
