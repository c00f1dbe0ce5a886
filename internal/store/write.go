package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/sigprobe/internal/ir"
)

// WriteDatabase stores db as the snapshot of runID in one transaction and
// returns its run record.
//
// Writing the same runID again with identical content returns the stored
// record unchanged. Different content under an existing runID fails with
// ErrRunConflict and leaves the store untouched.
func (s *Store) WriteDatabase(ctx context.Context, runID string, db *ir.EquationDatabase) (ir.RunRecord, error) {
	if runID == "" {
		return ir.RunRecord{}, fmt.Errorf("write database: empty run id")
	}
	hash, err := ir.DatabaseHash(db)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("write database: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("write database: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := getRun(ctx, tx, runID)
	switch {
	case err == nil:
		if existing.Hash != hash {
			return ir.RunRecord{}, fmt.Errorf("write database %s: %w", runID, ErrRunConflict)
		}
		return existing, nil
	case !errors.Is(err, ErrRunNotFound):
		return ir.RunRecord{}, fmt.Errorf("write database: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return ir.RunRecord{}, fmt.Errorf("write database: next seq: %w", err)
	}

	rec := ir.RunRecord{
		ID:            runID,
		Seq:           seq,
		Version:       db.Version,
		EngineVersion: ir.EngineVersion,
		Source:        db.Source,
		GeneratedAt:   db.GeneratedAt.UTC(),
		Hash:          hash,
		Signatures:    len(db.Signatures),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, version, engine_version, source, generated_at, hash, signatures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Seq,
		rec.Version,
		rec.EngineVersion,
		rec.Source,
		formatTime(rec.GeneratedAt),
		rec.Hash,
		rec.Signatures,
	)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("write database: insert run: %w", err)
	}

	for i, sig := range db.Signatures {
		if err := insertSignature(ctx, tx, runID, int64(i+1), sig); err != nil {
			return ir.RunRecord{}, fmt.Errorf("write database: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ir.RunRecord{}, fmt.Errorf("write database: commit: %w", err)
	}
	return rec, nil
}

func insertSignature(ctx context.Context, tx *sql.Tx, runID string, seq int64, sig ir.ValidatedSignature) error {
	id, err := ir.SignatureID(sig)
	if err != nil {
		return fmt.Errorf("signature %d: %w", seq, err)
	}
	params, err := marshalParams(sig.Params)
	if err != nil {
		return fmt.Errorf("signature %d: %w", seq, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO signatures
		(run_id, seq, id, owner, operation, params, arity, returns, static)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		seq,
		id,
		sig.Owner.String(),
		sig.Operation,
		params,
		len(sig.Params),
		sig.Returns.String(),
		boolToInt(sig.Static),
	)
	if err != nil {
		return fmt.Errorf("insert signature %d: %w", seq, err)
	}
	return nil
}
