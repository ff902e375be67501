package adapters

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/ports"
	"mist/internal/types"
)

// auxiliaryMarkerField is written into the dpkg status of packages that
// were built and installed from the auxiliary repository.
const auxiliaryMarkerField = "MPR-Package"

// DebControlAdapter builds the system catalog from a dpkg status file and
// any number of apt Packages indexes. For every name the highest known
// version is the candidate.
type DebControlAdapter struct {
	StatusPath   string
	PackagesPath []string
	Versions     ports.VersionComparatorPort
}

func NewDebControlAdapter(statusPath string, packagesPaths []string, versions ports.VersionComparatorPort) DebControlAdapter {
	return DebControlAdapter{StatusPath: statusPath, PackagesPath: packagesPaths, Versions: versions}
}

func (a DebControlAdapter) Load() (types.CatalogSnapshot, error) {
	if a.Versions == nil {
		return types.CatalogSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("control file loader requires a version comparator")
	}
	var records []types.PackageRecord
	if strings.TrimSpace(a.StatusPath) != "" {
		status, err := readControlFile(a.StatusPath, true)
		if err != nil {
			return types.CatalogSnapshot{}, err
		}
		records = append(records, status...)
	}
	for _, path := range a.PackagesPath {
		if strings.TrimSpace(path) == "" {
			continue
		}
		available, err := readControlFile(path, false)
		if err != nil {
			return types.CatalogSnapshot{}, err
		}
		records = append(records, available...)
	}
	merged, err := mergeSystemRecords(records, a.Versions)
	if err != nil {
		return types.CatalogSnapshot{}, err
	}
	return types.CatalogSnapshot{System: merged}, nil
}

func readControlFile(path string, status bool) ([]types.PackageRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("control file not found: " + path).
			WithCause(err)
	}
	defer file.Close()
	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read gzipped control file").
				WithCause(err)
		}
		defer gz.Close()
		reader = gz
	}
	return parseControlParagraphs(reader, status)
}

// parseControlParagraphs reads Debian control paragraphs. Continuation
// lines are ignored. In a status file only packages whose Status ends in
// "installed" are kept.
func parseControlParagraphs(reader io.Reader, status bool) ([]types.PackageRecord, error) {
	var records []types.PackageRecord
	fields := map[string]string{}
	flush := func() {
		defer clear(fields)
		name := fields["Package"]
		version := fields["Version"]
		if name == "" || version == "" {
			return
		}
		installed := false
		if status {
			state := strings.Fields(fields["Status"])
			if len(state) == 0 || state[len(state)-1] != "installed" {
				return
			}
			installed = true
		}
		record := types.PackageRecord{
			Name:               name,
			Version:            version,
			Origin:             types.OriginSystem,
			Description:        fields["Description"],
			Maintainer:         fields["Maintainer"],
			Installed:          installed,
			AuxiliaryInstalled: installed && fields[auxiliaryMarkerField] != "",
		}
		record.Depends = controlRelation(fields["Depends"], fields["Pre-Depends"])
		record.Conflicts = controlRelation(fields["Conflicts"])
		record.Provides = controlRelation(fields["Provides"])
		records = append(records, record)
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read control file").
			WithCause(err)
	}
	flush()
	return records, nil
}

// controlRelation turns comma separated relation fields into a single
// unqualified table entry. Pre-Depends entries carry the "p!" marker.
func controlRelation(values ...string) types.DependencyTable {
	var expressions []string
	for idx, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if idx > 0 {
				part = "p!" + part
			}
			expressions = append(expressions, part)
		}
	}
	if len(expressions) == 0 {
		return nil
	}
	return types.DependencyTable{{Expressions: expressions}}
}

// mergeSystemRecords folds installed and available records of the same
// version together and flags the highest version of each name as the
// candidate.
func mergeSystemRecords(records []types.PackageRecord, versions ports.VersionComparatorPort) ([]types.PackageRecord, error) {
	byRef := map[types.VersionRef]int{}
	var merged []types.PackageRecord
	for _, record := range records {
		if idx, ok := byRef[record.Ref()]; ok {
			merged[idx].Installed = merged[idx].Installed || record.Installed
			merged[idx].AuxiliaryInstalled = merged[idx].AuxiliaryInstalled || record.AuxiliaryInstalled
			continue
		}
		byRef[record.Ref()] = len(merged)
		merged = append(merged, record)
	}
	highest := map[string]int{}
	for idx, record := range merged {
		current, ok := highest[record.Name]
		if !ok {
			highest[record.Name] = idx
			continue
		}
		cmp, err := versions.Compare(merged[current].Version, record.Version)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("cannot order versions of " + record.Name).
				WithCause(err)
		}
		if cmp < 0 {
			highest[record.Name] = idx
		}
	}
	for _, idx := range highest {
		merged[idx].Candidate = true
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})
	return merged, nil
}

var _ ports.CatalogSourcePort = DebControlAdapter{}
