package models

// MealSlot is the delivery slot the customer orders for
type MealSlot string

const (
	MealLunch  MealSlot = "Lunch"
	MealDinner MealSlot = "Dinner"
)

// MealSlots lists every slot in display order
var MealSlots = []MealSlot{MealLunch, MealDinner}

// Valid reports whether m is a known slot
func (m MealSlot) Valid() bool {
	return m == MealLunch || m == MealDinner
}

type MenuItem struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Price int64  `json:"price" yaml:"price"`
}

// CartLine is a menu item with the quantity currently selected
type CartLine struct {
	MenuItem
	Qty int `json:"qty"`
}

// DefaultMenu is the catalog served when no menu file is configured
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{ID: "pappu", Name: "Tomato Pappu/Dal (200g)", Price: 50},
		{ID: "fry", Name: "Aloo Fry (250g)", Price: 60},
	}
}

// NewCart builds a cart with qty 0 for every item of the menu
func NewCart(menu []MenuItem) []CartLine {
	lines := make([]CartLine, len(menu))
	for i, item := range menu {
		lines[i] = CartLine{MenuItem: item}
	}
	return lines
}
