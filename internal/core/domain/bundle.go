package domain

// AssetFile is a single source file read for a bundle. It only lives
// until its content has been folded into the bundle output.
type AssetFile struct {
	Kind Kind
	Path string
	Raw  []byte
}

// Bundle is the result of assembling a named list of source files
type Bundle struct {
	Kind       Kind
	Name       string
	Members    []string // Source paths in config order
	Output     []byte
	OldSize    int
	NewSize    int
	OutputPath string

	// References left unrewritten because the target file was missing
	Skipped []MissingAssetReference
}

// PercentSaved returns 1 - new/old. The second value is false when
// the bundle had no input bytes and the ratio is undefined.
func (b *Bundle) PercentSaved() (float64, bool) {
	return SizeSavings(b.OldSize, b.NewSize)
}

// SizeSavings computes the fraction of bytes removed by minification
func SizeSavings(oldSize, newSize int) (float64, bool) {
	if oldSize <= 0 {
		return 0, false
	}
	return 1 - float64(newSize)/float64(oldSize), true
}
