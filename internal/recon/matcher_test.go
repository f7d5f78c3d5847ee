package recon_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitukupraveen/multi-billing-sub000/internal/recon"
)

type rec struct {
	name        string
	orderID     string
	orderItemID string
}

func (r rec) ReconKeys() (string, string) {
	return r.orderID, r.orderItemID
}

func TestMatch_BothSidesComplete(t *testing.T) {
	source := []rec{
		{name: "a", orderID: "OD1", orderItemID: "OI1"},
		{name: "b", orderID: "OD2", orderItemID: "OI2"},
	}
	target := []rec{
		{name: "x", orderID: "OD1", orderItemID: "OI1"},
		{name: "y", orderID: "OD2", orderItemID: "OI2"},
	}

	result := recon.Match(source, target)

	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)
}

func TestMatch_EitherKeySuffices(t *testing.T) {
	// One side carries only the order-level key, the other only the
	// item-level key plus the order key; the shared order key must match.
	source := []rec{{name: "a", orderID: "OD1"}}
	target := []rec{{name: "x", orderID: "OD1", orderItemID: "OI1"}}

	result := recon.Match(source, target)
	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)

	// Item-level key alone also suffices.
	source = []rec{{name: "a", orderItemID: "OI1"}}
	target = []rec{{name: "x", orderID: "OD9", orderItemID: "OI1"}}

	result = recon.Match(source, target)
	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)
}

func TestMatch_Discrepancies(t *testing.T) {
	source := []rec{
		{name: "settled", orderID: "OD1", orderItemID: "OI1"},
		{name: "lost", orderID: "OD2", orderItemID: "OI2"},
	}
	target := []rec{
		{name: "found", orderID: "OD1", orderItemID: "OI1"},
		{name: "stray", orderID: "OD9", orderItemID: "OI9"},
	}

	result := recon.Match(source, target)

	require.Len(t, result.MissingInTarget, 1)
	assert.Equal(t, "lost", result.MissingInTarget[0].name)
	require.Len(t, result.MissingInSource, 1)
	assert.Equal(t, "stray", result.MissingInSource[0].name)
}

func TestMatch_EmptyKeysNeverMatch(t *testing.T) {
	source := []rec{{name: "blank"}}
	target := []rec{{name: "alsoblank"}}

	result := recon.Match(source, target)

	// Two records with no keys are both discrepancies; empty strings must
	// not join against each other.
	require.Len(t, result.MissingInTarget, 1)
	require.Len(t, result.MissingInSource, 1)
}

func TestMatch_PreservesInputOrder(t *testing.T) {
	var source, target []rec
	for i := 0; i < 50; i++ {
		source = append(source, rec{name: fmt.Sprintf("s%02d", i), orderID: fmt.Sprintf("SRC-%d", i)})
	}
	for i := 0; i < 30; i++ {
		target = append(target, rec{name: fmt.Sprintf("t%02d", i), orderID: fmt.Sprintf("TGT-%d", i)})
	}

	result := recon.Match(source, target)

	require.Len(t, result.MissingInTarget, 50)
	require.Len(t, result.MissingInSource, 30)
	for i, s := range result.MissingInTarget {
		assert.Equal(t, fmt.Sprintf("s%02d", i), s.name)
	}
	for i, tt := range result.MissingInSource {
		assert.Equal(t, fmt.Sprintf("t%02d", i), tt.name)
	}
}

func TestMatch_NilCollections(t *testing.T) {
	result := recon.Match[rec, rec](nil, nil)
	assert.NotNil(t, result.MissingInTarget)
	assert.NotNil(t, result.MissingInSource)
	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)

	target := []rec{{name: "only", orderID: "OD1"}}
	result = recon.Match[rec](nil, target)
	assert.Empty(t, result.MissingInTarget)
	require.Len(t, result.MissingInSource, 1)
}

func TestMatch_SymmetricUnderSwap(t *testing.T) {
	source := []rec{
		{name: "a", orderID: "OD1", orderItemID: "OI1"},
		{name: "b", orderID: "OD2"},
		{name: "c", orderItemID: "OI3"},
	}
	target := []rec{
		{name: "x", orderID: "OD1"},
		{name: "y", orderItemID: "OI9"},
	}

	forward := recon.Match(source, target)
	backward := recon.Match(target, source)

	assert.Equal(t, forward.MissingInTarget, backward.MissingInSource)
	assert.Equal(t, forward.MissingInSource, backward.MissingInTarget)
}

func TestMatch_DuplicateKeysAllMatch(t *testing.T) {
	// Several source rows can settle against one target row.
	source := []rec{
		{name: "a", orderID: "OD1"},
		{name: "b", orderID: "OD1"},
	}
	target := []rec{{name: "x", orderID: "OD1"}}

	result := recon.Match(source, target)
	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)
}
