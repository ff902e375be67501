package ports

import "mist/internal/types"

type SystemStatePort interface {
	IsCandidateInstalled(ref types.VersionRef) bool
}
