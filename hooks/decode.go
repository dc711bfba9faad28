package hooks

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// decodeOptions fills a hook config struct from the raw option map: defaults
// first, then the supplied keys, then range validation. Unknown keys are
// rejected so a typo fails hook construction instead of being ignored.
func decodeOptions(input map[string]any, output any) error {
	if err := defaults.Set(output); err != nil {
		return fmt.Errorf("set defaults: %w", err)
	}

	var metadata mapstructure.Metadata
	config := &mapstructure.DecoderConfig{
		Result:           output,
		Metadata:         &metadata,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		MatchName:        caseInsensitiveMatch,
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	if len(metadata.Unused) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOption, strings.Join(metadata.Unused, ", "))
	}

	if err := validate.Struct(output); err != nil {
		return fmt.Errorf("validate options: %w", err)
	}
	return nil
}

// caseInsensitiveMatch matches option keys to struct fields regardless of
// case or separator style, so `useResync` and `use_resync` both work.
func caseInsensitiveMatch(mapKey, fieldName string) bool {
	return strings.EqualFold(normalizeKey(mapKey), normalizeKey(fieldName))
}

func normalizeKey(key string) string {
	k := strings.ToLower(key)
	k = strings.ReplaceAll(k, "-", "")
	k = strings.ReplaceAll(k, "_", "")
	return k
}
