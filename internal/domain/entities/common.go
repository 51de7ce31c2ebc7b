package entities

import (
	"encoding/json"
)

// ListResult is one page (or the whole set) of a listing
type ListResult[T any] struct {
	Items []T
	Total int64
}

// StringOrSet accepts either a single JSON string or an array of strings
type StringOrSet []string

// UnmarshalJSON implements json.Unmarshaler
func (s *StringOrSet) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*s = nil
			return nil
		}
		*s = StringOrSet{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}
