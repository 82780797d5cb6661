package game

import "strings"

type ItemType string

const (
	ItemFood      ItemType = "food"
	ItemMaterial  ItemType = "material"
	ItemTool      ItemType = "tool"
	ItemClothing  ItemType = "clothing"
	ItemFurniture ItemType = "furniture"
	ItemWater     ItemType = "water"
	ItemMedicine  ItemType = "medicine"
	ItemFuel      ItemType = "fuel"
	ItemMachine   ItemType = "machine"
	ItemVehicle   ItemType = "vehicle"
)

// Consumable reports whether EAT accepts items of this type.
func (t ItemType) Consumable() bool {
	switch t {
	case ItemFood, ItemWater, ItemMedicine:
		return true
	default:
		return false
	}
}

type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

// ParseSlot accepts "weapon" or "armor" in any case.
func ParseSlot(raw string) (Slot, bool) {
	switch Slot(strings.ToLower(strings.TrimSpace(raw))) {
	case SlotWeapon:
		return SlotWeapon, true
	case SlotArmor:
		return SlotArmor, true
	default:
		return "", false
	}
}

// SlotForType maps tools to the weapon slot and clothing to the armor slot.
func SlotForType(t ItemType) (Slot, bool) {
	switch t {
	case ItemTool:
		return SlotWeapon, true
	case ItemClothing:
		return SlotArmor, true
	default:
		return "", false
	}
}

// ItemProperties is the optional property bag of an item. A zero field means absent.
type ItemProperties struct {
	HungerRestore int `json:"hunger_restore,omitempty" yaml:"hunger_restore,omitempty"`
	ComfortBonus  int `json:"comfort_bonus,omitempty" yaml:"comfort_bonus,omitempty"`
	HealthRestore int `json:"health_restore,omitempty" yaml:"health_restore,omitempty"`
	Warmth        int `json:"warmth,omitempty" yaml:"warmth,omitempty"`
	AttackPower   int `json:"attack_power,omitempty" yaml:"attack_power,omitempty"`
	DefensePower  int `json:"defense_power,omitempty" yaml:"defense_power,omitempty"`
	Durability    int `json:"durability,omitempty" yaml:"durability,omitempty"`
	Efficiency    int `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
}

type InventoryItem struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Type        ItemType        `json:"type" yaml:"type"`
	Quantity    int             `json:"quantity" yaml:"quantity,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  *ItemProperties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Props returns the property bag, zero-valued when the item has none.
func (i InventoryItem) Props() ItemProperties {
	if i.Properties == nil {
		return ItemProperties{}
	}
	return *i.Properties
}

// WithQuantity returns a copy of i holding qty units.
func (i InventoryItem) WithQuantity(qty int) InventoryItem {
	out := i.clone()
	out.Quantity = qty
	return out
}

func (i InventoryItem) clone() InventoryItem {
	out := i
	if i.Properties != nil {
		props := *i.Properties
		out.Properties = &props
	}
	return out
}

func cloneItems(items []InventoryItem) []InventoryItem {
	if items == nil {
		return nil
	}
	out := make([]InventoryItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}

func pruneItems(items []InventoryItem) []InventoryItem {
	out := items[:0]
	for _, item := range items {
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}

// AddItem merges item into the ledger by id. An existing stack keeps its
// position, sums the quantity and takes the incoming descriptive fields; an
// unknown id is appended as a copy.
func AddItem(items []InventoryItem, item InventoryItem) []InventoryItem {
	out := cloneItems(items)
	for idx := range out {
		if out[idx].ID != item.ID {
			continue
		}
		out[idx] = mergeDefinition(out[idx], item)
		out[idx].Quantity += item.Quantity
		return pruneItems(out)
	}
	return pruneItems(append(out, item.clone()))
}

// mergeDefinition overwrites the descriptive fields of existing with the ones
// incoming actually carries.
func mergeDefinition(existing, incoming InventoryItem) InventoryItem {
	out := existing.clone()
	if incoming.Name != "" {
		out.Name = incoming.Name
	}
	if incoming.Type != "" {
		out.Type = incoming.Type
	}
	if incoming.Description != "" {
		out.Description = incoming.Description
	}
	if incoming.Properties != nil {
		props := *incoming.Properties
		out.Properties = &props
	}
	return out
}

// RemoveItem decrements the stack for id by qty and drops it when it runs out.
// Unknown ids leave the ledger unchanged.
func RemoveItem(items []InventoryItem, id string, qty int) []InventoryItem {
	out := cloneItems(items)
	for idx := range out {
		if out[idx].ID == id {
			out[idx].Quantity -= qty
			break
		}
	}
	return pruneItems(out)
}

// returnUnit puts one unit of item back into the ledger, merging with an
// existing stack without touching its descriptive fields.
func returnUnit(items []InventoryItem, item InventoryItem) []InventoryItem {
	for idx := range items {
		if items[idx].ID == item.ID {
			items[idx].Quantity++
			return items
		}
	}
	return append(items, item.WithQuantity(1))
}

// Equip moves one unit of id from the ledger into the slot its type maps to.
// A previously equipped item returns to the ledger. ok is false, with the
// inputs returned as copies, when the item is missing or not equippable.
func Equip(items []InventoryItem, eq Equipment, id string) ([]InventoryItem, Equipment, bool) {
	outItems := cloneItems(items)
	outEq := eq.clone()

	idx := -1
	for i := range outItems {
		if outItems[i].ID == id && outItems[i].Quantity > 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return outItems, outEq, false
	}
	slot, ok := SlotForType(outItems[idx].Type)
	if !ok {
		return outItems, outEq, false
	}

	unit := outItems[idx].WithQuantity(1)
	outItems[idx].Quantity--
	outItems = pruneItems(outItems)

	if current := outEq.Slot(slot); current != nil {
		outItems = returnUnit(outItems, *current)
	}
	outEq.set(slot, &unit)
	return outItems, outEq, true
}

// Unequip empties slot and returns its item to the ledger. ok is false when
// the slot was already empty.
func Unequip(items []InventoryItem, eq Equipment, slot Slot) ([]InventoryItem, Equipment, bool) {
	outItems := cloneItems(items)
	outEq := eq.clone()

	current := outEq.Slot(slot)
	if current == nil {
		return outItems, outEq, false
	}
	outItems = returnUnit(outItems, *current)
	outEq.set(slot, nil)
	return outItems, outEq, true
}

// equippedClothing lists the clothing currently worn.
func equippedClothing(eq Equipment) []InventoryItem {
	if eq.Armor == nil || eq.Armor.Type != ItemClothing {
		return nil
	}
	return []InventoryItem{eq.Armor.clone()}
}
