package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"mist/internal/ports"
	"mist/internal/types"
)

const planFileName = "install-plan.yaml"

// PlanFileAdapter writes install plans into Dir and reads them back.
type PlanFileAdapter struct {
	Dir string
}

func NewPlanFileAdapter(dir string) PlanFileAdapter {
	return PlanFileAdapter{Dir: dir}
}

func (a PlanFileAdapter) WritePlan(plan types.InstallPlanFile) (string, error) {
	path, err := a.ensurePath(planFileName)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(plan)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal install plan").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write install plan").
			WithCause(err)
	}
	return path, nil
}

// ReadPlan reads a plan from path, or from the plan file inside path when
// path is a directory.
func (a PlanFileAdapter) ReadPlan(path string) (types.InstallPlanFile, error) {
	if strings.TrimSpace(path) == "" {
		path = a.Dir
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, planFileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.InstallPlanFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("install plan not found").
			WithCause(err)
	}
	var plan types.InstallPlanFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return types.InstallPlanFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid install plan format").
			WithCause(err)
	}
	return plan, nil
}

func (a PlanFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var (
	_ ports.PlanWriterPort = PlanFileAdapter{}
	_ ports.PlanReaderPort = PlanFileAdapter{}
)
