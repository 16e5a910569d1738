// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date       time.Time `json:"date"`
	Name       string    `json:"name"`       // A human readable name for this chain instance.
	Difficulty uint      `json:"difficulty"` // How difficult it needs to be to solve the work problem.
	Payload    string    `json:"payload"`    // The payload sealed into the genesis record.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load() (Genesis, error) {
	path := "zblock/genesis.json"
	return LoadFromFile(path)
}

// LoadFromFile opens and consumes the genesis file at the specified path.
func LoadFromFile(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
