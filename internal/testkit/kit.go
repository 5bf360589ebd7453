// Package testkit generates synthetic retail-order CSV datasets with known
// shape, used by tests and for demo runs of the pipeline.
package testkit

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GeneratorConfig configures the synthetic dataset generator.
type GeneratorConfig struct {
	Rows        int
	Seed        int64
	MissingRate float64
	StartDate   time.Time
}

// DefaultGeneratorConfig returns sensible defaults for dataset generation.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:        200,
		Seed:        42,
		MissingRate: 0.05,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Generator produces synthetic order data covering all four column groups:
// numeric (price, quantity), categorical (region, zero-padded product
// codes), text-like (notes), and date/time (order_date).
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var regions = []string{"north", "south", "east", "west", "central"}

var noteFragments = []string{
	"customer requested expedited delivery and confirmation by email",
	"left at the front desk per standing instructions from the account manager",
	"repeat order with the same configuration as the previous quarter",
	"fragile items so double packaging was applied before shipment",
	"invoice copy mailed separately to the billing department",
}

// CSV renders the synthetic dataset as comma-delimited text, header first.
func (g *Generator) CSV() string {
	var sb strings.Builder
	sb.WriteString("order_date,region,product_code,price,quantity,notes\n")
	for i := 0; i < g.config.Rows; i++ {
		sb.WriteString(strings.Join(g.row(), ","))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteCSV writes the dataset to a file under dir and returns its path.
func (g *Generator) WriteCSV(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(g.CSV()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write synthetic dataset: %w", err)
	}
	return path, nil
}

func (g *Generator) row() []string {
	date := g.config.StartDate.AddDate(0, 0, g.rng.Intn(90)).Format("2006-01-02")
	region := regions[g.rng.Intn(len(regions))]
	code := fmt.Sprintf("%05d", g.rng.Intn(1000))
	price := fmt.Sprintf("%.2f", 5+g.rng.Float64()*95)
	quantity := fmt.Sprintf("%.1f", 1+float64(g.rng.Intn(9)))
	note := noteFragments[g.rng.Intn(len(noteFragments))]

	cells := []string{date, region, code, price, quantity, note}
	for j := range cells {
		if g.rng.Float64() < g.config.MissingRate {
			cells[j] = ""
		}
	}
	return cells
}
