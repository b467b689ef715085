package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FacetList holds a category-specific filterable attribute. It is stored as a
// string array but serialized to a comma-joined string in API responses, the
// format the admin form fields round-trip.
type FacetList []string

// ParseFacetList splits a comma-separated form value into a trimmed list.
func ParseFacetList(value string) FacetList {
	parts := strings.Split(value, ",")
	out := make(FacetList, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Join renders the list the way responses expose it.
func (f FacetList) Join() string {
	return strings.Join([]string(f), ", ")
}

func (f FacetList) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Join())
}

func (f *FacetList) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*f = ParseFacetList(value)
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*f = values
	return nil
}

// UnmarshalBSONValue accepts both string and array BSON types, allowing legacy
// documents to be decoded without failing the entire request.
func (f *FacetList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*f = nil
		return nil
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*f = values
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*f = ParseFacetList(value)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into FacetList", t)
	}
}

// MarshalBSONValue always stores the list as an array, keeping new writes
// consistent even when legacy documents used a string value.
func (f FacetList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(f))
}
