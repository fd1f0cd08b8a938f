// backend-go/cmd/seed/scenario.go
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/sopcenter/backend-go/internal/dataset"
)

// runStockoutScenario lowers on-hand inventory for the given SKUs so demo
// simulations show supply-chain pressure. The original inventory.csv is kept
// as a backup; an existing backup means the scenario was already applied and
// the command is a no-op.
func runStockoutScenario(c *cli.Context) error {
	dir := c.String("dataset-dir")
	skus := c.StringSlice("sku")
	factor := c.Float64("factor")
	if factor < 0 || factor >= 1 {
		return fmt.Errorf("factor must be in [0, 1), got %v", factor)
	}

	path := filepath.Join(dir, "inventory.csv")
	backupPath := path + ".backup"

	if _, err := os.Stat(backupPath); err == nil {
		log.Printf("backup already exists at %s, scenario already applied", backupPath)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("writing backup %s: %w", backupPath, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s is empty", path)
	}

	header := rows[0]
	skuCol, invCol := -1, -1
	for i, name := range header {
		switch name {
		case "SKU":
			skuCol = i
		case "Current Inventory":
			invCol = i
		}
	}
	if skuCol < 0 || invCol < 0 {
		return fmt.Errorf("%s is missing SKU or Current Inventory columns", path)
	}

	targets := make(map[string]bool, len(skus))
	for _, sku := range skus {
		targets[sku] = true
	}

	modified := 0
	for _, row := range rows[1:] {
		if len(row) <= skuCol || len(row) <= invCol || !targets[row[skuCol]] {
			continue
		}
		current := dataset.CleanNumeric(row[invCol])
		row[invCol] = strconv.FormatFloat(dataset.Round(current*factor, 0), 'f', -1, 64)
		modified++
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Printf("reduced inventory on %d rows for %d SKUs (factor %.2f), backup at %s",
		modified, len(skus), factor, backupPath)
	return nil
}
