package steamstore

import (
	"fmt"
	"strconv"
	"strings"

	"coverfinder/internal/services"
)

// AssetKind names a CDN artwork variant.
type AssetKind string

const (
	AssetHeader    AssetKind = "header"
	AssetCapsule   AssetKind = "capsule"
	AssetLibrary   AssetKind = "library"
	AssetLibrary2x AssetKind = "library_2x"
)

// AssetKinds lists every supported variant.
var AssetKinds = []AssetKind{AssetHeader, AssetCapsule, AssetLibrary, AssetLibrary2x}

const maxAppID = 2147483647

func (k AssetKind) fileName() string {
	switch k {
	case AssetCapsule:
		return "capsule_231x87.jpg"
	case AssetLibrary:
		return "library_600x900.jpg"
	case AssetLibrary2x:
		return "library_600x900_2x.jpg"
	default:
		return "header.jpg"
	}
}

// ParseAssetKind maps a user supplied name onto an AssetKind.
func ParseAssetKind(value string) (AssetKind, bool) {
	kind := AssetKind(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range AssetKinds {
		if kind == known {
			return kind, true
		}
	}
	return AssetHeader, false
}

// AssetURL builds the CDN URL of an artwork variant. Unknown kinds fall back
// to the header image.
func AssetURL(cdnBase string, appID int64, kind AssetKind) string {
	return fmt.Sprintf("%s/%d/%s", strings.TrimRight(cdnBase, "/"), appID, kind.fileName())
}

// ValidAppID reports whether id is a plausible Steam app id.
func ValidAppID(id int64) bool {
	return id > 0 && id < maxAppID
}

// ParseAppID parses and validates a textual app id.
func ParseAppID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || !ValidAppID(id) {
		return 0, services.Wrap(services.ErrValidation, "steamstore", "parse app id", fmt.Sprintf("invalid app id %q", value), nil)
	}
	return id, nil
}
