package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies an entity within a collection. Backends send either numbers or strings.
type ID string

// IntID builds an ID from an integer.
func IntID(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// MarshalJSON writes integer-looking ids as JSON numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON string or an integer JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("models: id is null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("models: id %s is not an integer", n)
	}
	*id = ID(strconv.FormatInt(v, 10))
	return nil
}
