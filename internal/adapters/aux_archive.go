package adapters

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/ports"
	"mist/internal/types"
)

// AuxArchiveAdapter reads the auxiliary repository's package archive: a
// JSON array, optionally gzip compressed, with one object per package.
// Relation keys follow the makedeb naming scheme, e.g. "Depends",
// "focal_Depends", "Depends_amd64" and "focal_Depends_amd64".
type AuxArchiveAdapter struct {
	Path string
}

func NewAuxArchiveAdapter(path string) AuxArchiveAdapter {
	return AuxArchiveAdapter{Path: path}
}

// archivePackage mirrors the fixed fields of an archive entry.
type archivePackage struct {
	Name        string  `json:"Name"`
	PackageBase string  `json:"PackageBase"`
	Version     string  `json:"Version"`
	Description *string `json:"Description"`
	Maintainer  *string `json:"Maintainer"`
}

var relationKeyPattern = regexp.MustCompile(`^(?:([a-z0-9.+-]+)_)?(Depends|MakeDepends|CheckDepends|Conflicts|Provides)(?:_([a-z0-9]+))?$`)

var relationKinds = map[string]types.RelationKind{
	"Depends":      types.RelationDepends,
	"MakeDepends":  types.RelationMakeDepends,
	"CheckDepends": types.RelationCheckDepends,
	"Conflicts":    types.RelationConflicts,
	"Provides":     types.RelationProvides,
}

func (a AuxArchiveAdapter) Load() (types.CatalogSnapshot, error) {
	file, err := os.Open(a.Path)
	if err != nil {
		return types.CatalogSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("auxiliary archive not found").
			WithCause(err)
	}
	defer file.Close()
	records, err := parseAuxArchive(file)
	if err != nil {
		return types.CatalogSnapshot{}, err
	}
	return types.CatalogSnapshot{Auxiliary: records}, nil
}

func parseAuxArchive(reader io.Reader) ([]types.PackageRecord, error) {
	buffered := bufio.NewReader(reader)
	var source io.Reader = buffered
	if magic, err := buffered.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read gzipped auxiliary archive").
				WithCause(err)
		}
		defer gz.Close()
		source = gz
	}

	var entries []map[string]json.RawMessage
	if err := json.NewDecoder(source).Decode(&entries); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid auxiliary archive format").
			WithCause(err)
	}
	records := make([]types.PackageRecord, 0, len(entries))
	for idx, entry := range entries {
		record, err := archiveRecord(entry)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid auxiliary archive entry %d", idx)).
				WithCause(err)
		}
		records = append(records, record)
	}
	return records, nil
}

func archiveRecord(entry map[string]json.RawMessage) (types.PackageRecord, error) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return types.PackageRecord{}, err
	}
	var pkg archivePackage
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return types.PackageRecord{}, err
	}
	if pkg.Name == "" || pkg.Version == "" {
		return types.PackageRecord{}, fmt.Errorf("package name and version are required")
	}
	record := types.PackageRecord{
		Name:    pkg.Name,
		Base:    pkg.PackageBase,
		Version: pkg.Version,
		Origin:  types.OriginAuxiliary,
	}
	if pkg.Description != nil {
		record.Description = *pkg.Description
	}
	if pkg.Maintainer != nil {
		record.Maintainer = *pkg.Maintainer
	}

	keys := make([]string, 0, len(entry))
	for key := range entry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	tables := map[types.RelationKind]types.DependencyTable{}
	for _, key := range keys {
		match := relationKeyPattern.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		var expressions []string
		if err := json.Unmarshal(entry[key], &expressions); err != nil {
			return types.PackageRecord{}, fmt.Errorf("relation %s: %w", key, err)
		}
		kind := relationKinds[match[2]]
		tables[kind] = append(tables[kind], types.DependencyTableEntry{
			Distro:      match[1],
			Arch:        match[3],
			Expressions: expressions,
		})
	}
	record.Depends = tables[types.RelationDepends]
	record.MakeDepends = tables[types.RelationMakeDepends]
	record.CheckDepends = tables[types.RelationCheckDepends]
	record.Conflicts = tables[types.RelationConflicts]
	record.Provides = tables[types.RelationProvides]
	return record, nil
}

var _ ports.CatalogSourcePort = AuxArchiveAdapter{}
