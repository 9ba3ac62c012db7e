package entity

import "fmt"

// Convenciones de referencia de origen para movimientos del libro de stock.
// El prefijo permite revertir o agregar por transacción de origen.
func OrderSourceRef(orderID string) string         { return fmt.Sprintf("order:%s", orderID) }
func PurchaseSourceRef(purchaseID string) string   { return fmt.Sprintf("purchase:%s", purchaseID) }
func EquipmentSourceRef(equipmentID string) string { return fmt.Sprintf("equipment:%s", equipmentID) }
