package wallet

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Observation is a successfully parsed balance response.
type Observation struct {
	BalanceMinor int64
	MobileNumber string
}

// The wallet network answers with one of two envelope layouts. Each shape is
// an independent strategy: it either produces an observation or declines, and
// the parser tries them in order.

type nestedEnvelope struct {
	Data *struct {
		Balance  json.Number `json:"balance"`
		MobileNo string      `json:"mobile_no"`
	} `json:"data"`
}

type flatEnvelope struct {
	Balance   *json.Number `json:"balance"`
	MobileNo  string       `json:"mobile_no"`
	MobileAlt string       `json:"mobileNo"`
}

func parseNestedShape(body []byte) (*Observation, bool) {
	var env nestedEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Data == nil {
		return nil, false
	}
	minor, err := numberToMinor(env.Data.Balance)
	if err != nil {
		return nil, false
	}
	return &Observation{BalanceMinor: minor, MobileNumber: env.Data.MobileNo}, true
}

func parseFlatShape(body []byte) (*Observation, bool) {
	var env flatEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Balance == nil {
		return nil, false
	}
	minor, err := numberToMinor(*env.Balance)
	if err != nil {
		return nil, false
	}
	mobile := env.MobileNo
	if mobile == "" {
		mobile = env.MobileAlt
	}
	return &Observation{BalanceMinor: minor, MobileNumber: mobile}, true
}

func numberToMinor(n json.Number) (int64, error) {
	s := n.String()
	if s == "" {
		return 0, fmt.Errorf("empty balance")
	}
	return strconv.ParseInt(s, 10, 64)
}

// ParseBalanceResponse tries every known response shape in order and returns
// the first observation produced. Minor shape differences must not raise.
func ParseBalanceResponse(body []byte) (*Observation, error) {
	strategies := []func([]byte) (*Observation, bool){
		parseNestedShape,
		parseFlatShape,
	}
	for _, parse := range strategies {
		if obs, ok := parse(body); ok {
			return obs, nil
		}
	}
	return nil, fmt.Errorf("unrecognized balance response shape")
}
