package dto

import (
	"encoding/json"

	"github.com/finance-ledger/api/internal/domain/entity"
)

// NullableString records whether a JSON key was sent, so null can clear a field.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler. It runs only for keys present in the body.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

// ToOptional converts the value to a patch field.
func (n NullableString) ToOptional() entity.OptionalString {
	return entity.OptionalString{Set: n.Set, Value: n.Value}
}
