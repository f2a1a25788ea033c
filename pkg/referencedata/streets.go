package referencedata

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/velotrace/velotrace/pkg/btd"
)

type dictionaryResponse struct {
	Result struct {
		Streets map[string]string `json:"ulice"`
	} `json:"result"`
}

// LoadStreetTable decodes the ZTM public transport dictionary into the street
// id to name lookup.
func LoadStreetTable(reader io.Reader) (btd.StreetTable, error) {
	var response dictionaryResponse
	if err := json.NewDecoder(reader).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode street dictionary: %w", err)
	}

	return btd.StreetTable(response.Result.Streets), nil
}
