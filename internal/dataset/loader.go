// backend-go/internal/dataset/loader.go
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sopcenter/backend-go/internal/domain"
)

// Coordinates used when a store row lacks a usable lat/lng (NYC metro center).
const (
	DefaultLat = 40.7589
	DefaultLng = -73.9851
)

// row is one record keyed by header name.
type row map[string]string

// Loader reads one customer dataset directory. Every call re-reads the files;
// the loader holds no state beyond the directory path.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the dataset directory this loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// readTable loads name.csv from the dataset directory, falling back to
// name.xlsx when no CSV exists.
func (l *Loader) readTable(name string) ([]row, error) {
	csvPath := filepath.Join(l.dir, name+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		return readCSVTable(csvPath)
	}

	xlsxPath := filepath.Join(l.dir, name+".xlsx")
	if _, err := os.Stat(xlsxPath); err == nil {
		rows, err := readXLSXTable(xlsxPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
		}
		return rows, nil
	}

	return nil, fmt.Errorf("%w: %s not found in %s", domain.ErrDataUnavailable, name, l.dir)
}

func readCSVTable(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", domain.ErrDataUnavailable, path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrDataUnavailable, path, err)
		}

		r := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				r[name] = record[i]
			}
		}
		out = append(out, r)
	}

	log.Debug().Str("file", filepath.Base(path)).Int("rows", len(out)).Msg("loaded table")
	return out, nil
}

// Promotions loads the promo plan.
func (l *Loader) Promotions() ([]domain.Promotion, error) {
	rows, err := l.readTable("promo_plan")
	if err != nil {
		return nil, err
	}

	promos := make([]domain.Promotion, 0, len(rows))
	for _, r := range rows {
		promos = append(promos, domain.Promotion{
			WeekDate:       r["Week Date"],
			SKU:            r["SKU"],
			ProductFocus:   r["Product Focus"],
			Brand:          r["Brand"],
			CampaignTheme:  r["Campaign Theme"],
			TargetAudience: r["Target Audience"],
			CurrentPrice:   CleanNumeric(r["Current Price"]),
			PromoPrice:     CleanNumeric(r["Decreased Promo Price"]),
			UpliftPercent:  CleanNumeric(r["Demand Uplift (%)"]),
			CurrentMargin:  CleanNumeric(r["Current GrossMargin"]),
			NewMargin:      CleanNumeric(r["New Gross New Margin"]),
		})
	}
	return promos, nil
}

// Stores loads the store reference table. Rows without a usable lat/lng fall
// back to the default map center.
func (l *Loader) Stores() ([]domain.Store, error) {
	rows, err := l.readTable("stores")
	if err != nil {
		return nil, err
	}

	stores := make([]domain.Store, 0, len(rows))
	for _, r := range rows {
		lat := CleanNumeric(r["Latitude"])
		lng := CleanNumeric(r["Longitude"])
		if lat == 0 && lng == 0 {
			lat, lng = DefaultLat, DefaultLng
		}
		stores = append(stores, domain.Store{
			ID:   r["Synthetic ID"],
			Name: r["Store Name"],
			Lat:  lat,
			Lng:  lng,
		})
	}
	return stores, nil
}

// Demand loads the baseline weekly demand table.
func (l *Loader) Demand() ([]domain.DemandRecord, error) {
	rows, err := l.readTable("demand")
	if err != nil {
		return nil, err
	}

	records := make([]domain.DemandRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, domain.DemandRecord{
			StoreID:    r["Store ID"],
			SKU:        r["SKU"],
			WeekEnding: r["Week Ending"],
			Units:      CleanNumeric(r["Demand"]),
		})
	}
	return records, nil
}

// Inventory loads the current on-hand table.
func (l *Loader) Inventory() ([]domain.InventoryRecord, error) {
	rows, err := l.readTable("inventory")
	if err != nil {
		return nil, err
	}

	records := make([]domain.InventoryRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, domain.InventoryRecord{
			StoreID: r["Store ID"],
			SKU:     r["SKU"],
			OnHand:  CleanNumeric(r["Current Inventory"]),
		})
	}
	return records, nil
}

// Products loads the product catalog. Both the bare-array and the wrapped
// {"products": [...]} formats are accepted. A missing catalog is not an
// error: substitutes are simply unavailable.
func (l *Loader) Products() ([]domain.Product, error) {
	path := filepath.Join(l.dir, "products.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("products.json not found, substitute lookups disabled")
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err == nil {
		return products, nil
	}

	var wrapped struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: unexpected products.json format: %v", domain.ErrDataUnavailable, err)
	}
	return wrapped.Products, nil
}
