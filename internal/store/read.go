package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/queryir"
	"github.com/roach88/sigprobe/internal/querysql"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const runColumns = `id, seq, version, engine_version, source, generated_at, hash, signatures`

// GetRun returns the record of runID, or ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, runID string) (ir.RunRecord, error) {
	return getRun(ctx, s.db, runID)
}

func getRun(ctx context.Context, q queryer, runID string) (ir.RunRecord, error) {
	row := q.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return rec, err
}

// LatestRun returns the most recently written run, or ErrRunNotFound when
// the store is empty.
func (s *Store) LatestRun(ctx context.Context) (ir.RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT 1`)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.RunRecord{}, ErrRunNotFound
	}
	return rec, err
}

// ListRuns returns every stored run in write order.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListRuns(ctx context.Context) ([]ir.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadDatabase reassembles the snapshot of runID. The stored hash is
// checked against the reassembled content; a mismatch returns
// ErrHashMismatch.
func (s *Store) ReadDatabase(ctx context.Context, runID string) (*ir.EquationDatabase, error) {
	rec, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	sigs, err := s.QuerySignatures(ctx, runID, queryir.Select{})
	if err != nil {
		return nil, err
	}

	db := &ir.EquationDatabase{
		Version:     rec.Version,
		GeneratedAt: rec.GeneratedAt,
		Source:      rec.Source,
		Signatures:  sigs,
	}

	hash, err := ir.DatabaseHash(db)
	if err != nil {
		return nil, fmt.Errorf("read database: %w", err)
	}
	if hash != rec.Hash {
		return nil, fmt.Errorf("read database %s: %w", runID, ErrHashMismatch)
	}
	return db, nil
}

// QuerySignatures returns the signatures of runID matching q, in discovery
// order. Returns an empty slice (not nil) when nothing matches.
func (s *Store) QuerySignatures(ctx context.Context, runID string, q queryir.Query) ([]ir.ValidatedSignature, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	query, params, err := querysql.NewSQLCompiler(runID).Compile(q)
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}
	defer rows.Close()

	sigs := []ir.ValidatedSignature{}
	for rows.Next() {
		sig, err := scanSignature(rows)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signatures: %w", err)
	}
	return sigs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (ir.RunRecord, error) {
	var (
		rec         ir.RunRecord
		generatedAt string
	)
	err := row.Scan(
		&rec.ID,
		&rec.Seq,
		&rec.Version,
		&rec.EngineVersion,
		&rec.Source,
		&generatedAt,
		&rec.Hash,
		&rec.Signatures,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.RunRecord{}, err
		}
		return ir.RunRecord{}, fmt.Errorf("scan run: %w", err)
	}

	rec.GeneratedAt, err = parseTime(generatedAt)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("scan run %s: %w", rec.ID, err)
	}
	return rec, nil
}

// scanSignature reads one row in querysql.Columns order.
func scanSignature(row scanner) (ir.ValidatedSignature, error) {
	var (
		owner, operation, params, returns string
		static                            int
	)
	if err := row.Scan(&owner, &operation, &params, &returns, &static); err != nil {
		return ir.ValidatedSignature{}, fmt.Errorf("scan signature: %w", err)
	}

	sig := ir.ValidatedSignature{Operation: operation, Static: static != 0}
	var err error
	if sig.Owner, err = catalog.Parse(owner); err != nil {
		return ir.ValidatedSignature{}, fmt.Errorf("scan signature: %w", err)
	}
	if sig.Returns, err = catalog.Parse(returns); err != nil {
		return ir.ValidatedSignature{}, fmt.Errorf("scan signature: %w", err)
	}
	if sig.Params, err = unmarshalParams(params); err != nil {
		return ir.ValidatedSignature{}, fmt.Errorf("scan signature: %w", err)
	}
	return sig, nil
}
