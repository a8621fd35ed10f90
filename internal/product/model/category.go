package model

// Category is the fixed classification of a product.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

var categoryNames = [...]string{
	CategoryUnknown:    "UNKNOWN",
	CategoryCloths:     "CLOTHS",
	CategoryFood:       "FOOD",
	CategoryHousewares: "HOUSEWARES",
	CategoryAutomotive: "AUTOMOTIVE",
	CategoryTools:      "TOOLS",
}

// String returns the enumeration name of the category, e.g. "CLOTHS".
func (c Category) String() string {
	if !c.Valid() {
		return "Category(invalid)"
	}
	return categoryNames[c]
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	return c >= CategoryUnknown && int(c) < len(categoryNames)
}

// ParseCategory looks up a category by its exact enumeration name.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return CategoryUnknown, false
}

// Categories returns every member of the enumeration in declaration order.
func Categories() []Category {
	all := make([]Category, len(categoryNames))
	for i := range categoryNames {
		all[i] = Category(i)
	}
	return all
}
