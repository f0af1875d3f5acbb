package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"inv"},
	Short:   "Manage your inventory",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List carried items",
	RunE:  runInventoryList,
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add [template-id]",
	Short: "Spawn an item from the catalog into your inventory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInventoryAdd,
}

var inventoryDropCmd = &cobra.Command{
	Use:   "drop [item-id]",
	Short: "Drop an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runInventoryDrop,
}

var inventorySlotCmd = &cobra.Command{
	Use:   "unlock-slot",
	Short: "Unlock one more inventory slot",
	RunE:  runInventoryUnlockSlot,
}

func init() {
	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryAddCmd)
	inventoryCmd.AddCommand(inventoryDropCmd)
	inventoryCmd.AddCommand(inventorySlotCmd)
}

func runInventoryList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.requireCharacter()
	if err != nil {
		return err
	}

	fmt.Printf("Inventory %d/%d\n", len(snap.Inventory), snap.Character.InventorySlots)
	for _, item := range snap.Inventory {
		fmt.Printf("  %-22s %-10s %4dc  %s\n", item.Name, item.Type, item.Value, item.ID)
	}
	return nil
}

func runInventoryAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.requireCharacter(); err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println("Available items:")
		for _, tpl := range a.catalog.Items {
			fmt.Printf("  %-22s %-10s %4dc\n", tpl.ID, tpl.Type, tpl.Value)
		}
		return nil
	}

	item, ok := a.catalog.SpawnItem(args[0])
	if !ok {
		return fmt.Errorf("unknown item template %q", args[0])
	}
	if !a.store.AddItem(item) {
		return fmt.Errorf("inventory full")
	}
	fmt.Printf("Added %s (%s)\n", item.Name, item.ID)
	return nil
}

func runInventoryDrop(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !a.store.RemoveItem(args[0]) {
		return fmt.Errorf("no item with id %q", args[0])
	}
	fmt.Println("Dropped.")
	return nil
}

func runInventoryUnlockSlot(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.requireCharacter()
	if err != nil {
		return err
	}
	if !a.store.UnlockInventorySlot() {
		fmt.Printf("Capacity is already at the maximum (%d).\n", snap.Character.InventorySlots)
		return nil
	}
	fmt.Printf("Capacity is now %d slots.\n", a.store.Snapshot().Character.InventorySlots)
	return nil
}
