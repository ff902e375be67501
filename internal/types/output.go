package types

// InstallPlanFile is the document written by the plan writer and read back
// by inspect.
type InstallPlanFile struct {
	Platform  DistroArch        `yaml:"platform"`
	Requested []string          `yaml:"requested"`
	System    []InstallMark     `yaml:"system"`
	Batches   [][]BuildUnit     `yaml:"batches"`
	Conflicts []ConflictWarning `yaml:"conflicts,omitempty"`
}
