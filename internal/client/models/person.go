package models

import (
	"errors"
	"fmt"
	"strings"
)

// PersonIDLength is the length of the random alphanumeric profile id.
const PersonIDLength = 48

// Condition is a pre-existing health condition of a profile.
type Condition string

const (
	ConditionHeart      Condition = "HEART"
	ConditionResp       Condition = "RESP"
	ConditionDiabetes   Condition = "DIABETES"
	ConditionDepression Condition = "DEPRESSION"
)

var Conditions = []Condition{ConditionHeart, ConditionResp, ConditionDiabetes, ConditionDepression}

var ErrUnknownCondition = errors.New("unknown condition")

// Person is a profile reports are recorded for. Only its hashed ID ever
// leaves the device.
type Person struct {
	ID         string
	Name       string
	BirthYear  int
	Street     string
	City       string
	State      string
	Zip        string
	Conditions []Condition
}

// ParseConditions accepts condition names case-insensitively.
func ParseConditions(s []string) ([]Condition, error) {
	out := make([]Condition, 0, len(s))
	for _, item := range s {
		c := Condition(strings.ToUpper(strings.TrimSpace(item)))
		if c == "" {
			continue
		}
		if !knownCondition(c) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, item)
		}
		out = append(out, c)
	}
	return out, nil
}

func knownCondition(c Condition) bool {
	for _, k := range Conditions {
		if k == c {
			return true
		}
	}
	return false
}
