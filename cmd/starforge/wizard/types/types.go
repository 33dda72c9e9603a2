// Package types holds the wizard state shared by the wizard and its screens.
package types

// GlobalConfig holds batch settings. Numeric ranges, noise and seed are kept
// as the strings the user typed and parsed on conversion.
type GlobalConfig struct {
	Shape      string // "HxW"
	NumImages  int
	NumSources int
	Amplitude  string // range, e.g. "1-10"
	XStddev    string
	YStddev    string
	Noise      string // "" = no noise
	Seed       string // "" = derive from output directory
	Format     string
	OutputDir  string
	Workers    int
	Annotate   bool
	Catalog    string // optional catalog file rendered instead of random sources
}

// SourceConfig is one fixed elliptical source.
type SourceConfig struct {
	Amplitude float64
	XMean     float64
	YMean     float64
	XStddev   float64
	YStddev   float64
	Theta     float64
}
