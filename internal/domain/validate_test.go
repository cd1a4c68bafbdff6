package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "recase.dev/pkg/recase/internal/model"
)

type stubChecker struct {
	failing map[m.Path]string
	calls   []m.Path
}

func (c *stubChecker) CheckFile(_ context.Context, path m.Path) (string, error) {
	c.calls = append(c.calls, path)

	if output, ok := c.failing[path]; ok {
		return output, errors.New("exit status 1")
	}

	return "", nil
}

func TestValidationGate_AllClean(t *testing.T) {
	checker := &stubChecker{}
	gate := NewValidationGate(checker, 5)

	warnings := gate.Validate(context.Background(), []m.Path{"/a.java", "/b.java"})
	assert.Empty(t, warnings)
	assert.Len(t, checker.calls, 2)
}

func TestValidationGate_FailuresBecomeWarnings(t *testing.T) {
	checker := &stubChecker{failing: map[m.Path]string{
		"/b.java": "B.java:3: error: ';' expected\nmore detail",
	}}
	gate := NewValidationGate(checker, 5)

	warnings := gate.Validate(context.Background(), []m.Path{"/a.java", "/b.java"})
	require.Len(t, warnings, 1)
	assert.Equal(t, "validation: /b.java: exit status 1: B.java:3: error: ';' expected", warnings[0])
}

func TestValidationGate_SampleBound(t *testing.T) {
	checker := &stubChecker{}
	gate := NewValidationGate(checker, 2)

	modified := []m.Path{"/a.java", "/b.java", "/c.java", "/d.java"}
	gate.Validate(context.Background(), modified)

	assert.Equal(t, []m.Path{"/a.java", "/b.java"}, checker.calls)
}

func TestValidationGate_ZeroSampleUsesDefault(t *testing.T) {
	gate := NewValidationGate(&stubChecker{}, 0)
	assert.Equal(t, DefaultValidationSample, gate.sample)
}

func TestValidationGate_NoModifiedFiles(t *testing.T) {
	checker := &stubChecker{}
	gate := NewValidationGate(checker, 5)

	assert.Nil(t, gate.Validate(context.Background(), nil))
	assert.Empty(t, checker.calls)
}
