package assets

import "fmt"

// MaxAssetNameLength bounds asset names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that name is a bare file stem: ASCII letters,
// digits, '-' and '_' only, at most MaxAssetNameLength bytes. Separators,
// dots and anything else that could leave the asset directory are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
