package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"
)

// CampaignSQLStore persists campaign runs and trials in SQLite.
type CampaignSQLStore struct {
	db *sql.DB
}

// NewCampaignStore returns a store bound to an existing database handle.
func NewCampaignStore(db *sql.DB) (*CampaignSQLStore, error) {
	if db == nil {
		return nil, fmt.Errorf("campaign store: db is nil")
	}
	return &CampaignSQLStore{db: db}, nil
}

// SaveRun writes the run summary and all trial rows in one transaction.
func (s *CampaignSQLStore) SaveRun(
	ctx context.Context,
	run domaintypes.CampaignRun,
	trials []domaintypes.TrialResult,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO campaign_runs
			(id, signal_type, trials, tolerance, seed, workers, recovered, fraction, created_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		run.ID, run.SignalType.String(), run.Trials, run.Tolerance,
		int64(run.Seed), run.Workers, run.Recovered, run.Fraction, run.CreatedUTC,
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert run: %w", run.ID, err)
	}

	for _, tr := range trials {
		injected, err := json.Marshal(tr.Injected)
		if err != nil {
			return fmt.Errorf("save run %s: marshal injected params: %w", run.ID, err)
		}
		var recovered []byte
		if tr.Recovered != nil {
			recovered, err = json.Marshal(tr.Recovered)
			if err != nil {
				return fmt.Errorf("save run %s: marshal recovered params: %w", run.ID, err)
			}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO campaign_trials
				(run_id, trial_index, injected, recovered, objective, converged, success, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
			run.ID, tr.Index, string(injected), nullable(recovered),
			tr.Objective, tr.Converged, tr.Success, tr.Err,
		)
		if err != nil {
			return fmt.Errorf("save run %s: insert trial %d: %w", run.ID, tr.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run %s: commit: %w", run.ID, err)
	}
	return nil
}

// LoadRun reads a run summary and its trials, ordered by trial index.
func (s *CampaignSQLStore) LoadRun(
	ctx context.Context,
	id string,
) (domaintypes.CampaignRun, []domaintypes.TrialResult, error) {
	var run domaintypes.CampaignRun
	var signalType string
	var seed int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, signal_type, trials, tolerance, seed, workers, recovered, fraction, created_utc
		FROM campaign_runs WHERE id = ?;`, id,
	).Scan(&run.ID, &signalType, &run.Trials, &run.Tolerance,
		&seed, &run.Workers, &run.Recovered, &run.Fraction, &run.CreatedUTC)
	if err != nil {
		return domaintypes.CampaignRun{}, nil, fmt.Errorf("load run %s: %w", id, err)
	}
	run.SignalType = domaintypes.SignalType(signalType)
	run.Seed = uint64(seed)

	rows, err := s.db.QueryContext(ctx, `
		SELECT trial_index, injected, recovered, objective, converged, success, error
		FROM campaign_trials WHERE run_id = ? ORDER BY trial_index;`, id)
	if err != nil {
		return domaintypes.CampaignRun{}, nil, fmt.Errorf("load run %s: trials: %w", id, err)
	}
	defer rows.Close()

	var trials []domaintypes.TrialResult
	for rows.Next() {
		var tr domaintypes.TrialResult
		var injected string
		var recovered sql.NullString
		if err := rows.Scan(&tr.Index, &injected, &recovered,
			&tr.Objective, &tr.Converged, &tr.Success, &tr.Err); err != nil {
			return domaintypes.CampaignRun{}, nil, fmt.Errorf("load run %s: scan trial: %w", id, err)
		}
		if err := json.Unmarshal([]byte(injected), &tr.Injected); err != nil {
			return domaintypes.CampaignRun{}, nil, fmt.Errorf("load run %s: injected params: %w", id, err)
		}
		if recovered.Valid {
			if err := json.Unmarshal([]byte(recovered.String), &tr.Recovered); err != nil {
				return domaintypes.CampaignRun{}, nil, fmt.Errorf("load run %s: recovered params: %w", id, err)
			}
		}
		trials = append(trials, tr)
	}
	if err := rows.Err(); err != nil {
		return domaintypes.CampaignRun{}, nil, fmt.Errorf("load run %s: rows: %w", id, err)
	}
	return run, trials, nil
}

// ListRuns returns all run summaries, newest first.
func (s *CampaignSQLStore) ListRuns(ctx context.Context) ([]domaintypes.CampaignRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, signal_type, trials, tolerance, seed, workers, recovered, fraction, created_utc
		FROM campaign_runs ORDER BY created_utc DESC, id;`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []domaintypes.CampaignRun
	for rows.Next() {
		var run domaintypes.CampaignRun
		var signalType string
		var seed int64
		if err := rows.Scan(&run.ID, &signalType, &run.Trials, &run.Tolerance,
			&seed, &run.Workers, &run.Recovered, &run.Fraction, &run.CreatedUTC); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		run.SignalType = domaintypes.SignalType(signalType)
		run.Seed = uint64(seed)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: rows: %w", err)
	}
	return runs, nil
}

// nullable converts empty byte slices into SQL NULLs.
func nullable(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

var _ interfaces.CampaignStore = (*CampaignSQLStore)(nil)
