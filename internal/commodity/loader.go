package commodity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// LoadFile reads a commodity table from a YAML (or any viper-supported)
// file with a top-level "commodities" list and returns the resulting catalog.
//
//	commodities:
//	  - name: Wheat
//	    symbol: ZW=F
//	    unit: bushel
//	    tonne_factor: 36.7437
//	    in_subunit: true
//	    countries:
//	      - {country: Egypt, shipping_cost_per_tonne: 4000, tariff_rate: 0.10, political_risk: 0.6}
func LoadFile(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read commodity table %s: %w", path, err)
	}

	var configs []Config
	if err := v.UnmarshalKey("commodities", &configs); err != nil {
		return nil, fmt.Errorf("parse commodity table %s: %w", path, err)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("commodity table %s: no commodities defined", path)
	}

	for i := range configs {
		if err := Validate(configs[i]); err != nil {
			return nil, fmt.Errorf("commodity table %s: entry %d: %w", path, i, err)
		}
	}
	return NewCatalog(configs)
}

// Validate checks a single configuration against its field constraints.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s (value: %v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid commodity %q: %s", cfg.Name, strings.Join(msgs, "; "))
}
