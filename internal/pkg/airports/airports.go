package airports

import (
	"embed"
	"encoding/csv"
	"fmt"
	"strings"
)

//go:embed data/airports.csv
var dataFS embed.FS

type Airport struct {
	Code    string
	Name    string
	City    string
	Country string
}

// DisplayName returns the short label used in search results, e.g.
// "Zurich (ZRH)".
func (a Airport) DisplayName() string {
	return fmt.Sprintf("%s (%s)", a.City, a.Code)
}

// Index is an in-memory airport directory loaded from the bundled CSV
// dataset. Lookups are case-insensitive substring matches over code,
// name, city and country.
type Index struct {
	airports []Airport
	byCode   map[string]Airport
}

func Load() (*Index, error) {
	file, err := dataFS.Open("data/airports.csv")
	if err != nil {
		return nil, fmt.Errorf("open airport dataset: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read airport dataset: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("airport dataset is empty")
	}

	index := &Index{
		airports: make([]Airport, 0, len(records)-1),
		byCode:   make(map[string]Airport, len(records)-1),
	}

	// skip the header row
	for _, record := range records[1:] {
		if len(record) != 4 {
			return nil, fmt.Errorf("airport dataset row has %d columns, want 4", len(record))
		}

		airport := Airport{
			Code:    record[0],
			Name:    record[1],
			City:    record[2],
			Country: record[3],
		}
		index.airports = append(index.airports, airport)
		index.byCode[airport.Code] = airport
	}

	return index, nil
}

// Search returns all airports whose code, name, city or country contains
// the term, preserving dataset order.
func (i *Index) Search(term string) []Airport {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matches []Airport

	for _, airport := range i.airports {
		if strings.Contains(strings.ToLower(airport.Code), term) ||
			strings.Contains(strings.ToLower(airport.Name), term) ||
			strings.Contains(strings.ToLower(airport.City), term) ||
			strings.Contains(strings.ToLower(airport.Country), term) {
			matches = append(matches, airport)
		}
	}

	return matches
}

// Lookup resolves an exact IATA code.
func (i *Index) Lookup(code string) (Airport, bool) {
	airport, ok := i.byCode[strings.ToUpper(strings.TrimSpace(code))]

	return airport, ok
}
