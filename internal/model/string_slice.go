package model

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"
)

// StringSlice is a set of ids persisted as a single comma separated column.
// No element may include a comma.
type StringSlice []string

// GormDataType tells gorm which column type to migrate to
func (StringSlice) GormDataType() string {
	return "text"
}

// Value implements the driver.Valuer interface.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}

	for _, v := range s {
		if strings.Contains(v, ",") {
			return "", fmt.Errorf("unsafe string, %s", v)
		}
	}

	return strings.Join(s, ","), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan StringSlice, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		*s = StringSlice{}
	} else {
		*s = strings.Split(str, ",")
	}

	return nil
}

func (s StringSlice) Has(v string) bool {
	return slices.Contains(s, v)
}

// Add returns s with v appended unless it's already present
func (s StringSlice) Add(v string) StringSlice {
	if s.Has(v) {
		return s
	}

	return append(s, v)
}

// Remove returns a copy of s without any occurrence of v
func (s StringSlice) Remove(v string) StringSlice {
	out := make(StringSlice, 0, len(s))
	for _, e := range s {
		if e != v {
			out = append(out, e)
		}
	}

	return out
}
