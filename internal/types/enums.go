package types

type Origin string

const (
	OriginSystem    Origin = "system"
	OriginAuxiliary Origin = "auxiliary"
)

type ConstraintOp string

const (
	ConstraintOpNone ConstraintOp = ""
	ConstraintOpLt   ConstraintOp = "<<"
	ConstraintOpLte  ConstraintOp = "<="
	ConstraintOpEq   ConstraintOp = "="
	ConstraintOpGte  ConstraintOp = ">="
	ConstraintOpGt   ConstraintOp = ">>"
)

// RelationKind names one of the relation tables carried by a package record.
type RelationKind string

const (
	RelationDepends      RelationKind = "depends"
	RelationMakeDepends  RelationKind = "makedepends"
	RelationCheckDepends RelationKind = "checkdepends"
	RelationConflicts    RelationKind = "conflicts"
	RelationProvides     RelationKind = "provides"
)
