package models

import "github.com/vkazakov/cryptoexchange/internal/common"

// Direction tells whether an adjustment increases or decreases holdings.
type Direction string

const (
	DirectionBuy  Direction = "Buy"
	DirectionSell Direction = "Sell"
)

// ParseDirection converts the wire value to a Direction. Anything other than
// "Buy" or "Sell" is an invalid operation.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionBuy:
		return DirectionBuy, nil
	case DirectionSell:
		return DirectionSell, nil
	default:
		return "", common.ErrInvalidOperation
	}
}
