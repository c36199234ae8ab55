package domain_test

import (
	"testing"

	"github.com/archlint/archlint/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestModulePathFor(t *testing.T) {
	cases := []struct {
		relFile string
		want    string
	}{
		{"app/service/api.py", "app.service.api"},
		{"app/service/__init__.py", "app.service"},
		{"app.py", "app"},
		{"__init__.py", ""},
		{"app\\service\\api.py", "app.service.api"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ModulePathFor(tc.relFile), tc.relFile)
	}
}

func TestResolveRelativeImport(t *testing.T) {
	cases := []struct {
		from string
		ref  string
		want string
	}{
		{"app.service.api", ".helpers", "app.service.helpers"},
		{"app.service.api", "..models", "app.models"},
		{"app.service.api", "..", "app"},
		{"app.service.api", ".", "app.service"},
		{"app.service.api", "...models", "models"},
		{"app.service.api", "....models", ""},
		{"app", ".util", "util"},
		{"app", "..util", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ResolveRelativeImport(tc.from, tc.ref), "%s from %s", tc.ref, tc.from)
	}
}

func TestContentChecksum_Stable(t *testing.T) {
	a := domain.ContentChecksum([]byte("import os\n"))
	b := domain.ContentChecksum([]byte("import os\n"))
	c := domain.ContentChecksum([]byte("import sys\n"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestDegradedDescriptor(t *testing.T) {
	d := domain.DegradedDescriptor("app/broken.py", []byte("def ("))

	assert.Equal(t, "app.broken", d.Path)
	assert.Equal(t, "app/broken.py", d.File)
	assert.True(t, d.Degraded)
	assert.Empty(t, d.Imports)
	assert.Empty(t, d.Classes)
	assert.NotEmpty(t, d.Checksum)
}
