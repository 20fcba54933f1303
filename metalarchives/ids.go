package metalarchives

import (
	"strconv"
	"strings"
)

// DataSource is the tag stamped on every record this plugin produces. The
// host routes distance scoring and lyrics lookups on it.
const DataSource = "Metal Archives"

// IDPrefix marks identifiers as belonging to this source. Identifiers
// without it are guaranteed to belong to some other metadata source.
const IDPrefix = "ma-"

// AddIDPrefix converts an external numeric id into its host-facing form.
func AddIDPrefix(id int64) string {
	return IDPrefix + strconv.FormatInt(id, 10)
}

// StripIDPrefix recovers the external id from a host-facing identifier.
// The second return value reports whether the id belongs to this source.
func StripIDPrefix(id string) (string, bool) {
	if !HasIDPrefix(id) {
		return "", false
	}
	return id[len(IDPrefix):], true
}

// HasIDPrefix reports whether the identifier carries this source's prefix.
func HasIDPrefix(id string) bool {
	return strings.HasPrefix(id, IDPrefix)
}
