package metadata

import _ "embed"

//go:embed data/metadata.json
var embeddedMetadata []byte

// Embedded returns the metadata document bytes shipped with the library.
func Embedded() []byte {
	return embeddedMetadata
}
