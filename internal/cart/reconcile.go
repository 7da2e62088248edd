// Package cart holds the reconciliation logic that decides how a new or
// changed line item combines with an existing cart. Every function here is
// pure: inputs are never mutated, a fresh slice is returned, and insertion
// order is preserved.
package cart

import (
	"github.com/google/uuid"
	"github.com/poshakbd/storefront/internal/models"
)

// Key identifies a distinct purchasable SKU: product plus the chosen color
// name and size label.
type Key struct {
	ProductID uuid.UUID
	ColorName string
	SizeLabel string
}

func KeyOf(item models.LineItem) Key {
	return Key{
		ProductID: item.ProductID,
		ColorName: item.Color.Name,
		SizeLabel: item.Size.Size,
	}
}

// Merge folds candidate into items. On a key match the existing entry keeps
// its position and takes candidate's quantity verbatim (last write wins);
// otherwise candidate is appended.
func Merge(items []models.LineItem, candidate models.LineItem) []models.LineItem {
	key := KeyOf(candidate)
	merged := make([]models.LineItem, len(items))
	copy(merged, items)

	for i := range merged {
		if KeyOf(merged[i]) == key {
			merged[i].Quantity = candidate.Quantity
			return merged
		}
	}

	return append(merged, candidate)
}

// AddUnit adds one unit of candidate's variant: quantity becomes
// existing+1 when the variant is already in the cart, 1 otherwise.
func AddUnit(items []models.LineItem, candidate models.LineItem) []models.LineItem {
	candidate.Quantity = NextQuantity(items, KeyOf(candidate))

	return Merge(items, candidate)
}

// NextQuantity reports the quantity a single-unit add of key should carry.
func NextQuantity(items []models.LineItem, key Key) int {
	for i := range items {
		if KeyOf(items[i]) == key {
			return items[i].Quantity + 1
		}
	}

	return 1
}

// SetQuantity replaces the matching entry's quantity. Zero or negative
// removes the entry entirely. An absent key is a silent no-op: the caller
// only ever holds a key in this path, never a full line item to append.
func SetQuantity(items []models.LineItem, key Key, quantity int) []models.LineItem {
	if quantity <= 0 {
		result := make([]models.LineItem, 0, len(items))

		for i := range items {
			if KeyOf(items[i]) != key {
				result = append(result, items[i])
			}
		}

		return result
	}

	result := make([]models.LineItem, len(items))
	copy(result, items)

	for i := range result {
		if KeyOf(result[i]) == key {
			result[i].Quantity = quantity
			break
		}
	}

	return result
}

// RemoveProduct drops every entry of the product, across all of its color
// and size variants. The remove path keys on product only while add and
// update key on the full variant; that asymmetry matches the storefront's
// cart page, which exposes a single remove control per product.
func RemoveProduct(items []models.LineItem, productID uuid.UUID) []models.LineItem {
	result := make([]models.LineItem, 0, len(items))

	for i := range items {
		if items[i].ProductID != productID {
			result = append(result, items[i])
		}
	}

	return result
}

// Total sums price x quantity across the cart. Entries with a missing price
// or quantity contribute zero rather than poisoning the sum.
func Total(items []models.LineItem) float64 {
	var total float64

	for i := range items {
		price := items[i].Size.Price
		qty := items[i].Quantity

		if price <= 0 || qty <= 0 {
			continue
		}

		total += price * float64(qty)
	}

	return total
}
