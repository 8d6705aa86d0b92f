package cart

// Line is one distinct product held in the cart. StockQuantity is the
// ceiling fetched from the catalog when the product was added; quantities
// are clamped against it and never re-checked afterwards.
type Line struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SwatchColor    string `json:"swatchColor,omitempty"`
	StockQuantity  int    `json:"stockQuantity"`
	Quantity       int    `json:"quantity"`
}

// State is a point-in-time copy of the cart. Lines keep insertion order;
// IsOpen is the drawer visibility flag and is never persisted.
type State struct {
	Lines  []Line `json:"lines"`
	IsOpen bool   `json:"isOpen"`
}

// ItemCount is the sum of quantities across all lines.
func (s State) ItemCount() int {
	count := 0
	for _, l := range s.Lines {
		count += l.Quantity
	}
	return count
}

// SubtotalCents is the sum of unit price times quantity across all lines.
func (s State) SubtotalCents() int64 {
	var total int64
	for _, l := range s.Lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}
	return total
}
