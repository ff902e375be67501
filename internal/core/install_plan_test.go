package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mist/internal/types"
)

func TestInstallPlanMarks(t *testing.T) {
	plan := NewInstallPlan()
	ref := types.VersionRef{Name: "libfoo", Version: "1.0"}

	assert.True(t, plan.MarkInstall(ref, true, "app", "libfoo"))
	assert.False(t, plan.MarkInstall(ref, true, "other", "libfoo"))
	assert.True(t, plan.IsMarked(ref))
	assert.False(t, plan.IsMarked(types.VersionRef{Name: "libfoo", Version: "2.0"}))

	marks := plan.Marks()
	assert.Len(t, marks, 1)
	assert.True(t, marks[0].AutoInstalled)
	assert.Equal(t, "app", marks[0].RequiredBy)

	plan.MarkInstall(ref, false, "", "")
	assert.False(t, plan.Marks()[0].AutoInstalled)

	marked, ok := plan.MarkedVersion("libfoo")
	assert.True(t, ok)
	assert.Equal(t, ref, marked)
}
