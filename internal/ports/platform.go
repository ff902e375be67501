package ports

import "mist/internal/types"

type PlatformPort interface {
	Current() (types.DistroArch, error)
}
