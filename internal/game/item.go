package game

// ItemType classifies inventory items.
type ItemType string

const (
	ItemWeapon     ItemType = "Weapon"
	ItemArmor      ItemType = "Armor"
	ItemConsumable ItemType = "Consumable"
	ItemQuestItem  ItemType = "Quest Item"
)

// InventoryItem lives in the store's inventory list. Items are created from
// catalog templates (quest rewards, seeding) and removed via explicit drop.
type InventoryItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Value       int      `json:"value"`
	Description string   `json:"description,omitempty"`
	Nutrition   int      `json:"nutrition,omitempty"`
}
