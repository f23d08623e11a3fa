package config

// Specification of requested output type.
// ENUM(theme, wxr)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtTheme:
		return ".zip"
	case OutputFmtWxr:
		return ".xml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
