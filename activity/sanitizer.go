package activity

import (
	"strings"
	"sync"

	"github.com/goliatone/go-masker"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// Activity data keys that carry the creator's personal details.
const (
	FieldTipHandle = "tip_handle"
	FieldEmail     = "email"
)

const maskTypeEmail = "emailLocal"

var defaultMaskerOnce sync.Once

// DefaultMasker returns the shared masker with the profile field rules
// registered on top of the library defaults.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		registerProfileFields(masker.Default)
	})
	return masker.Default
}

// SanitizeRecord masks personal values in the record's data payload. The
// caller's map is never modified.
func SanitizeRecord(mask *masker.Masker, record types.ActivityRecord) types.ActivityRecord {
	if len(record.Data) == 0 {
		return record
	}
	if mask == nil {
		mask = DefaultMasker()
	}
	if mask == nil {
		record.Data = map[string]any{}
		return record
	}

	masked, err := mask.Mask(cloneMap(record.Data))
	if err != nil {
		record.Data = map[string]any{}
		return record
	}
	data, ok := masked.(map[string]any)
	if !ok {
		data = map[string]any{}
	}
	record.Data = data
	return record
}

func registerProfileFields(mask *masker.Masker) {
	char := mask.MaskChar()
	mask.RegisterMaskStringFunc(maskTypeEmail, func(_ string, value string) (string, error) {
		return maskEmail(value, char), nil
	})
	mask.RegisterMaskField(FieldTipHandle, "preserveEnds(1,1)")
	mask.RegisterMaskField(FieldEmail, maskTypeEmail)
}

// maskEmail hides the local part of an address and keeps the scheme and
// domain readable.
func maskEmail(value, char string) string {
	scheme := ""
	address := value
	if idx := strings.Index(value, ":"); idx >= 0 {
		scheme, address = value[:idx+1], value[idx+1:]
	}
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return scheme + strings.Repeat(char, 4)
	}
	return scheme + strings.Repeat(char, 4) + address[at:]
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
