package api

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

type Config struct {
	Addr         string        `split_words:"true" default:":3000"`
	AppName      string        `split_words:"true" default:"Store Assistant"`
	ReadTimeout  time.Duration `split_words:"true" default:"30s"`
	WriteTimeout time.Duration `split_words:"true" default:"120s"`
	BodyLimit    int           `split_words:"true" default:"1048576"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: http addr is required", contractx.ErrValidation)
	}
	if c.BodyLimit < 0 {
		return fmt.Errorf("%w: http body limit must not be negative", contractx.ErrValidation)
	}
	return nil
}
