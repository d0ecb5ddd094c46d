package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/pkg/embedded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	doc, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, SupportedVersion, doc.Version)
	assert.Len(t, doc.Instruments, 5)
	assert.Equal(t, []int{13, 21, 29, 37}, doc.Thresholds)
	assert.Len(t, doc.Questionnaire.Questions, 9)
	assert.Len(t, doc.Models, 5)
}

func TestBuild_Embedded(t *testing.T) {
	tables, err := LoadTables("", 0)
	require.NoError(t, err)

	assert.Equal(t, 5, tables.Universe.Size())
	assert.Equal(t, 42, tables.Weights.MaxScore())
	assert.Len(t, tables.Classifier.Buckets(), domain.BucketCount)
	assert.Equal(t, 0.001, tables.SumTolerance)

	aggressive, err := tables.Models.Model(domain.BucketAggressive)
	require.NoError(t, err)
	assert.Equal(t, domain.Allocation{"ACWI": 0.80, "VNQ": 0.15, "GLD": 0.05}, aggressive)
}

func TestBuild_ToleranceOverride(t *testing.T) {
	tables, err := LoadTables("", 0.005)
	require.NoError(t, err)
	assert.Equal(t, 0.005, tables.SumTolerance)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, embedded.Catalog, 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Instruments, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"empty", "", "catalog is empty"},
		{"unknown key", "version: 1\nextra: true\n", "failed to parse catalog"},
		{"wrong version", "version: 2\n", "unsupported catalog version 2"},
		{"malformed", "version: [\n", "failed to parse catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func mutate(t *testing.T, from, to string) *Document {
	t.Helper()
	src := string(embedded.Catalog)
	require.Contains(t, src, from)
	doc, err := Parse([]byte(strings.Replace(src, from, to, 1)))
	require.NoError(t, err)
	return doc
}

func TestBuild_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		message string
	}{
		{"bad category", "category: cash", "category: crypto", "invalid instrument universe"},
		{"unordered thresholds", "thresholds: [13, 21, 29, 37]", "thresholds: [13, 29, 21, 37]", "invalid risk buckets"},
		{"model off by 3%", "weights: {ACWI: 0.80, VNQ: 0.15, GLD: 0.05}", "weights: {ACWI: 0.77, VNQ: 0.15, GLD: 0.05}", "invalid model portfolios"},
		{"unknown model ticker", "weights: {ACWI: 0.80, VNQ: 0.15, GLD: 0.05}", "weights: {SPY: 0.80, VNQ: 0.15, GLD: 0.05}", "invalid model portfolios"},
		{"points beyond cap", "{value: buy_more, label: I buy more, points: 5}", "{value: buy_more, label: I buy more, points: 6}", "invalid questionnaire weights"},
		{"age range", "min: 18", "min: 21", "invalid questionnaire weights"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mutate(t, tt.from, tt.to)
			tables, err := doc.Build(0)
			require.Error(t, err)
			assert.Nil(t, tables)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBuild_ModelSumErrorIsTyped(t *testing.T) {
	doc := mutate(t, "weights: {ACWI: 0.80, VNQ: 0.15, GLD: 0.05}", "weights: {ACWI: 0.77, VNQ: 0.15, GLD: 0.05}")

	_, err := doc.Build(0)
	var sumErr domain.AllocationSumError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, 0.97, sumErr.ActualSum)
}
