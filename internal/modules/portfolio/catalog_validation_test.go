package portfolio_test

import (
	"errors"
	"testing"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/portfolio"
	testingpkg "github.com/Gonzalodlm/proyecto-L-v2/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureModels() []portfolio.Model {
	tables := testingpkg.NewTables()
	return tables.Models.Models()
}

func TestNewCatalog_ValidatesEveryModel(t *testing.T) {
	v := testingpkg.NewMockValidator()

	_, err := portfolio.NewCatalog(fixtureModels(), v)
	require.NoError(t, err)
	assert.Len(t, v.Calls(), domain.BucketCount)
}

func TestNewCatalog_WrapsValidatorError(t *testing.T) {
	v := testingpkg.NewMockValidator()
	v.SetError(domain.UnknownTickerError{Ticker: "SPY"})

	_, err := portfolio.NewCatalog(fixtureModels(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model portfolio for bucket 0")

	var unknown domain.UnknownTickerError
	assert.True(t, errors.As(err, &unknown))
}

func TestEmbeddedModels_SumToOne(t *testing.T) {
	tables := testingpkg.NewTables()

	for _, m := range tables.Models.Models() {
		assert.NoError(t, tables.Validator.Validate(m.Allocation), "bucket %d", m.Bucket)
		assert.InDelta(t, 1.0, m.Allocation.Sum().InexactFloat64(), tables.SumTolerance)
	}
}
