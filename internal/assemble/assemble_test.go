package assemble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
)

func sig(owner catalog.Type, op string, static bool, params ...catalog.Type) ir.ValidatedSignature {
	return ir.ValidatedSignature{Owner: owner, Operation: op, Params: params, Returns: catalog.Scalar, Static: static}
}

func TestDatabase_Empty(t *testing.T) {
	db := New().Database("empty", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, ir.DatabaseVersion, db.Version)
	assert.Equal(t, "empty", db.Source)
	require.NotNil(t, db.Signatures)
	assert.Empty(t, db.Signatures)

	stats := Summarize(db)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ByOwner)
}

func TestDatabase_PreservesOrderWithoutDeduplication(t *testing.T) {
	a := New()
	a.Add(sig(catalog.Vector3, "length", false))
	a.Add(sig(catalog.Vector2, "length", false))
	a.Add(sig(catalog.Vector3, "dot", false, catalog.Vector3))
	a.Add(sig(catalog.Vector3, "dot", false, catalog.Vector3))
	assert.Equal(t, 4, a.Len())

	db := a.Database("test", time.Now())
	require.Len(t, db.Signatures, 4)
	assert.Equal(t, catalog.Vector2, db.Signatures[1].Owner)
	assert.Equal(t, "dot", db.Signatures[3].Operation)
}

func TestDatabase_IsASnapshot(t *testing.T) {
	a := New()
	a.Add(sig(catalog.Vector3, "length", false))
	db := a.Database("test", time.Now())

	a.Add(sig(catalog.Vector3, "lengthSq", false))
	assert.Len(t, db.Signatures, 1)
}

func TestDatabase_GeneratedAtIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	db := New().Database("test", time.Date(2024, 1, 1, 2, 0, 0, 0, loc))
	assert.Equal(t, time.UTC, db.GeneratedAt.Location())
	assert.Equal(t, 0, db.GeneratedAt.Hour())
}

func TestSummarize(t *testing.T) {
	a := New()
	a.Add(sig(catalog.Vector3, "length", false))
	a.Add(sig(catalog.Vector2, "length", false))
	a.Add(sig(catalog.Vector3, "dot", false, catalog.Vector3))
	a.Add(sig(catalog.Vector3, "midpoint", true, catalog.Vector3, catalog.Vector3))

	stats := Summarize(a.Database("test", time.Now()))
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Static)
	assert.Equal(t, map[string]int{"Vector3": 3, "Vector2": 1}, stats.ByOwner)
	assert.Equal(t, map[string]int{"length": 2, "dot": 1, "midpoint": 1}, stats.ByOperation)
}
