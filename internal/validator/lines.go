package validator

import "storefront/internal/messages"

// Line is the shape shared by cart and order line items.
type Line struct {
	ProductID string
	Quantity  int
}

// Lines checks every line item: the product id must be present and well formed and the
// quantity must lie in 1..maxQty. Messages carry the 1-based position of the item.
func Lines(lines []Line, field string, maxQty int) Result {
	if len(lines) == 0 {
		return Fail(messages.ArrayNotEmpty(field))
	}

	var checks []string
	for i, l := range lines {
		pos := i + 1
		if msg := NotEmpty(l.ProductID, messages.ItemRequired("Product", pos)); msg != "" {
			checks = append(checks, msg)
		} else {
			checks = append(checks, UUID(l.ProductID, messages.ItemNotFound(pos)))
		}
		checks = append(checks, IntBetween(l.Quantity, 1, maxQty, messages.ItemQuantity(pos, maxQty)))
	}
	return All(checks...)
}

// UniqueLines fails for every line repeating the product of an earlier line.
func UniqueLines(lines []Line) Result {
	seen := make(map[string]bool, len(lines))
	var checks []string
	for i, l := range lines {
		if seen[l.ProductID] {
			checks = append(checks, messages.ItemDuplicate(i+1))
		}
		seen[l.ProductID] = true
	}
	return All(checks...)
}

// MissingLines reports the positions of lines whose product is in missing.
func MissingLines(lines []Line, missing []string) Result {
	if len(missing) == 0 {
		return Pass()
	}
	gone := make(map[string]bool, len(missing))
	for _, id := range missing {
		gone[id] = true
	}
	var checks []string
	for i, l := range lines {
		if gone[l.ProductID] {
			checks = append(checks, messages.ItemNotFound(i+1))
		}
	}
	return All(checks...)
}

// LineProductIDs lists the distinct product ids of lines, in order.
func LineProductIDs(lines []Line) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}
