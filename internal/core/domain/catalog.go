package domain

import "github.com/shopspring/decimal"

// DefaultCatalog returns the ten products the store opens with.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		entry("P001", "Dell Laptop", "800.00", 5),
		entry("P002", "Logitech Mouse", "25.00", 15),
		entry("P003", "Mechanical Keyboard", "60.00", 10),
		entry("P004", "LG 24in Monitor", "150.00", 8),
		entry("P005", "Sony Headphones", "90.00", 12),
		entry("P006", "500GB SSD", "70.00", 7),
		entry("P007", "HP Printer", "120.00", 4),
		entry("P008", "Logitech Webcam", "45.00", 9),
		entry("P009", "TP-Link Router", "35.00", 6),
		entry("P010", "USB-C Charger", "15.00", 20),
	}
}

func entry(code, name, price string, qty int) CatalogEntry {
	return CatalogEntry{
		Code:              code,
		Name:              name,
		UnitPrice:         decimal.RequireFromString(price),
		AvailableQuantity: qty,
	}
}
