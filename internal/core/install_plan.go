package core

import "mist/internal/types"

// InstallPlan collects the system package versions selected during one run.
// It stands in for the system engine's mutable marking state so that later
// steps of the same run observe earlier selections.
type InstallPlan struct {
	marks []types.InstallMark
	index map[types.VersionRef]int
}

func NewInstallPlan() *InstallPlan {
	return &InstallPlan{index: map[types.VersionRef]int{}}
}

// MarkInstall records ref. Marking an already marked version returns false;
// a later explicit mark clears the auto-installed flag.
func (p *InstallPlan) MarkInstall(ref types.VersionRef, auto bool, requiredBy string, expression string) bool {
	if idx, ok := p.index[ref]; ok {
		if !auto {
			p.marks[idx].AutoInstalled = false
		}
		return false
	}
	p.index[ref] = len(p.marks)
	p.marks = append(p.marks, types.InstallMark{
		Package:       ref,
		AutoInstalled: auto,
		RequiredBy:    requiredBy,
		Expression:    expression,
	})
	return true
}

func (p *InstallPlan) IsMarked(ref types.VersionRef) bool {
	_, ok := p.index[ref]
	return ok
}

// MarkedVersion returns the marked version of name, if any.
func (p *InstallPlan) MarkedVersion(name string) (types.VersionRef, bool) {
	for _, mark := range p.marks {
		if mark.Package.Name == name {
			return mark.Package, true
		}
	}
	return types.VersionRef{}, false
}

// Marks returns the marks in the order they were made.
func (p *InstallPlan) Marks() []types.InstallMark {
	return append([]types.InstallMark(nil), p.marks...)
}
