package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownSection = errors.New("unknown stock section")
	ErrSectionExists  = errors.New("stock section already exists")
	ErrAccessDenied   = errors.New("access denied")
	ErrOutOfStock     = errors.New("out of stock")
)

// CooldownError rejects an allocation attempted before the principal's
// cooldown has elapsed. Remaining is always positive.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown: retry in %s", e.Remaining.Round(time.Second))
}
