package providers

import (
	"carhoot/internal/structures"
	"fmt"
	"github.com/gookit/validate"
	"time"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	v.StopOnError = false
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.String())
	}
	if _, err := time.LoadLocation(c.conf.Game.Timezone); err != nil {
		return fmt.Errorf("invalid config: game.timezone: %w", err)
	}
	if c.conf.Cache.Enabled && c.conf.Cache.Size <= 0 {
		return fmt.Errorf("invalid config: cache.size must be positive when cache is enabled")
	}
	if c.conf.RateLimit.RPS > 0 && c.conf.RateLimit.Burst <= 0 {
		return fmt.Errorf("invalid config: rateLimit.burst must be positive when rps is set")
	}
	return nil
}
