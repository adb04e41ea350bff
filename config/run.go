package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
)

// RunParams are the externally supplied knobs of one migration run. The core
// engine never reads the environment itself; everything arrives through here.
type RunParams struct {
	StoreID        string  `mapstructure:"store_id"`
	DefaultUserID  string  `mapstructure:"default_user_id"`
	Now            string  `mapstructure:"now"` // YYYY-MM-DD, empty = wall clock
	Epsilon        float64 `mapstructure:"epsilon"`
	AuditPrecision int32   `mapstructure:"audit_precision"`
	BatchSize      int     `mapstructure:"batch_size"`
}

// NowTime parses the pinned "now" date, falling back to the wall clock.
func (p RunParams) NowTime() time.Time {
	if p.Now == "" {
		return time.Now()
	}
	t, err := time.Parse("2006-01-02", p.Now)
	if err != nil {
		return time.Now()
	}
	return t
}

// LoadRunParams builds RunParams from the environment with sane defaults.
func LoadRunParams() (RunParams, error) {
	raw := map[string]any{
		"store_id":        "default-store",
		"default_user_id": "",
		"now":             "",
		"epsilon":         0.1,
		"audit_precision": 2,
		"batch_size":      500,
	}
	overlay := map[string]string{
		"store_id":        "RUN_STORE_ID",
		"default_user_id": "RUN_DEFAULT_USER_ID",
		"now":             "RUN_NOW",
		"epsilon":         "RUN_EPSILON",
		"audit_precision": "RUN_AUDIT_PRECISION",
		"batch_size":      "RUN_BATCH_SIZE",
	}
	for key, env := range overlay {
		if v := os.Getenv(env); v != "" {
			raw[key] = v
		}
	}

	var params RunParams
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		WeaklyTypedInput: true, // env overrides arrive as strings
	})
	if err != nil {
		return params, err
	}
	if err := dec.Decode(raw); err != nil {
		return params, fmt.Errorf("decode run params: %w", err)
	}
	return params, nil
}
