package model

import "errors"

var (
	// ErrInvalidBidAmount возвращается для нулевой или отрицательной ставки.
	ErrInvalidBidAmount = errors.New("bid amount must be positive")
	// ErrBidTooLow возвращается, если ставка не превышает текущую цену лота.
	ErrBidTooLow = errors.New("bid must be greater than current price")
	// ErrLotNotActive возвращается при ставке на лот, торги по которому не идут.
	ErrLotNotActive = errors.New("lot is not open for bidding")
	// ErrLotNotFound возвращается, если лота нет в каталоге.
	ErrLotNotFound = errors.New("lot not found")
)
