package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/expectfix/internal/application"
	"github.com/abdidvp/expectfix/internal/domain"
)

func ids(inspections []domain.Inspection) []string {
	var out []string
	for _, in := range inspections {
		out = append(out, in.ID())
	}
	return out
}

func TestBuildInspections_Defaults(t *testing.T) {
	got, err := application.BuildInspections(domain.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.InspectionExpectedException, domain.InspectionReferenceEquality}, ids(got))
}

func TestBuildInspections_Only(t *testing.T) {
	got, err := application.BuildInspections(domain.DefaultConfig(), []string{domain.InspectionReferenceEquality})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.InspectionReferenceEquality}, ids(got))
}

func TestBuildInspections_Disabled(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Inspections.ReferenceEquality.Enabled = false

	got, err := application.BuildInspections(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.InspectionExpectedException}, ids(got))
}

func TestBuildInspections_UnknownID(t *testing.T) {
	_, err := application.BuildInspections(domain.DefaultConfig(), []string{"no-such-check"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-check")
}
