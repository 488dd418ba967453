// seed genera un script SQL con datos de demostración: una compañía con sus
// usuarios, bodegas, productos y stock inicial (con sus movimientos de ajuste
// para que el libro mayor cuadre con los niveles).
//
// Uso: go run ./cmd/seed [contraseña-demo]
// Por defecto la contraseña de los usuarios demo es "cambiame123".
// Escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const outPath = "internal/infrastructure/postgres/migrations/002_seed_demo.sql"

type demoUser struct {
	Email string
	Name  string
	Role  string
}

type demoProduct struct {
	SKU          string
	Name         string
	Price        string
	Cost         string
	ReorderPoint string
}

func main() {
	password := "cambiame123"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar hash bcrypt: %v\n", err)
		os.Exit(1)
	}

	companyID := uuid.NewString()
	adminID := uuid.NewString()

	users := []demoUser{
		{Email: "admin@demo.local", Name: "Administrador Demo", Role: "admin"},
		{Email: "bodega@demo.local", Name: "Bodeguero Demo", Role: "bodeguero"},
		{Email: "caja@demo.local", Name: "Cajero Demo", Role: "cajero"},
	}

	warehouses := []struct{ Name, Address string }{
		{Name: "Bodega Central", Address: "Calle 10 # 42-28, Medellín"},
		{Name: "Punto de Venta Norte", Address: "Carrera 50 # 80-15, Medellín"},
	}

	products := []demoProduct{
		{SKU: "CAF-250", Name: "Café molido 250g", Price: "18500", Cost: "11200", ReorderPoint: "20"},
		{SKU: "AZU-1000", Name: "Azúcar blanca 1kg", Price: "6200", Cost: "4100", ReorderPoint: "30"},
		{SKU: "ARR-5000", Name: "Arroz premium 5kg", Price: "28900", Cost: "21500", ReorderPoint: "15"},
		{SKU: "ACE-900", Name: "Aceite de girasol 900ml", Price: "15400", Cost: "10800", ReorderPoint: "25"},
	}

	var b strings.Builder
	b.WriteString("-- Datos de demostración. Generado por cmd/seed; no editar a mano.\n")
	b.WriteString("-- Contraseña de todos los usuarios demo: la pasada como argumento a cmd/seed.\n\n")
	b.WriteString("BEGIN;\n\n")

	b.WriteString("-- Usuarios\n")
	for _, u := range users {
		id := adminID
		if u.Role != "admin" {
			id = uuid.NewString()
		}
		fmt.Fprintf(&b,
			"INSERT INTO users (id, company_id, email, password_hash, name, role, status)\nVALUES ('%s', '%s', '%s', '%s', '%s', '%s', 'active');\n",
			id, companyID, u.Email, string(hash), escape(u.Name), u.Role,
		)
	}

	b.WriteString("\n-- Bodegas\n")
	warehouseIDs := make([]string, 0, len(warehouses))
	for _, w := range warehouses {
		id := uuid.NewString()
		warehouseIDs = append(warehouseIDs, id)
		fmt.Fprintf(&b,
			"INSERT INTO warehouses (id, company_id, name, address)\nVALUES ('%s', '%s', '%s', '%s');\n",
			id, companyID, escape(w.Name), escape(w.Address),
		)
	}

	b.WriteString("\n-- Productos\n")
	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		id := uuid.NewString()
		productIDs = append(productIDs, id)
		fmt.Fprintf(&b,
			"INSERT INTO products (id, company_id, sku, name, price, cost, reorder_point)\nVALUES ('%s', '%s', '%s', '%s', %s, %s, %s);\n",
			id, companyID, p.SKU, escape(p.Name), p.Price, p.Cost, p.ReorderPoint,
		)
	}

	// Stock inicial solo en la bodega central; el punto de venta arranca vacío
	// para probar transferencias.
	b.WriteString("\n-- Stock inicial y su movimiento de ajuste\n")
	central := warehouseIDs[0]
	initialQty := "100"
	for _, productID := range productIDs {
		fmt.Fprintf(&b,
			"INSERT INTO stock (product_id, warehouse_id, quantity)\nVALUES ('%s', '%s', %s);\n",
			productID, central, initialQty,
		)
		fmt.Fprintf(&b,
			"INSERT INTO stock_movements (id, product_id, warehouse_id, direction, quantity, previous_quantity, new_quantity, reference_type, reference_id, notes, created_by)\nVALUES ('%s', '%s', '%s', 'adjustment', %s, 0, %s, 'adjustment', 'seed', 'carga inicial de demostración', '%s');\n",
			uuid.NewString(), productID, central, initialQty, initialQty, adminID,
		)
	}

	b.WriteString("\nCOMMIT;\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s (%d usuarios, %d bodegas, %d productos)\n",
		outPath, len(users), len(warehouses), len(products))
}

// escape duplica comillas simples para literales SQL.
func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
