package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type inner struct {
	Rate float64 `mapstructure:"rate" validate:"gte=0,lte=1"`
}

type sample struct {
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	Mode    string `mapstructure:"mode" validate:"oneof=json console"`
	Enabled bool   `mapstructure:"enabled"`
	Target  string `mapstructure:"target" validate:"required_if=Enabled true"`
	Inner   inner  `mapstructure:"inner"`
}

func TestValidateStructPasses(t *testing.T) {
	assert.NoError(t, ValidateStruct(sample{Port: 5000, Mode: "json"}))
	assert.NoError(t, ValidateStruct(sample{Port: 1, Mode: "console", Enabled: true, Target: "x"}))
}

func TestValidateStructReportsEveryField(t *testing.T) {
	err := ValidateStruct(sample{Port: 0, Mode: "xml", Enabled: true, Inner: inner{Rate: 2}})

	assert.EqualError(t, err,
		"port must be at least 1, got 0; "+
			"mode must be one of: json console, got xml; "+
			"target is required; "+
			"inner.rate must be at most 1, got 2")
}
