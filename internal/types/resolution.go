package types

type InstallMark struct {
	Package       VersionRef `yaml:"package"`
	AutoInstalled bool       `yaml:"auto_installed"`
	RequiredBy    string     `yaml:"required_by,omitempty"`
	Expression    string     `yaml:"expression,omitempty"`
}

type RootResolution struct {
	Root     string
	Packages []string
}

type ResolutionResult struct {
	Roots []RootResolution
	Marks []InstallMark
}

// Flatten concatenates the per-root package lists. Duplicates are kept.
func (r ResolutionResult) Flatten() []string {
	var out []string
	for _, root := range r.Roots {
		out = append(out, root.Packages...)
	}
	return out
}

type BuildUnit struct {
	Base     string   `yaml:"base"`
	Version  string   `yaml:"version,omitempty"`
	Packages []string `yaml:"packages"`
}

type ConflictWarning struct {
	Package       string `yaml:"package"`
	Expression    string `yaml:"expression"`
	ConflictsWith string `yaml:"conflicts_with"`
	Origin        Origin `yaml:"origin"`
}
