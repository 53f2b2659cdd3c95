package services

import (
	"context"
	"encoding/json"
	"fmt"

	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
	"sda-backend/internal/timeutil"
)

// SnapshotService exports and imports the full application state as one
// JSON blob. Import is all-or-nothing: the payload is parsed and validated
// completely before any collection is touched.
type SnapshotService struct {
	InteractionRepo *repositories.InteractionRepository
	CounterLogRepo  *repositories.CounterLogRepository
	ProfileRepo     *repositories.ProfileRepository
}

func NewSnapshotService(
	interactionRepo *repositories.InteractionRepository,
	counterLogRepo *repositories.CounterLogRepository,
	profileRepo *repositories.ProfileRepository,
) *SnapshotService {
	return &SnapshotService{
		InteractionRepo: interactionRepo,
		CounterLogRepo:  counterLogRepo,
		ProfileRepo:     profileRepo,
	}
}

// ExportFilename returns the dated download name for a snapshot export
func ExportFilename() string {
	return fmt.Sprintf("sda-pro-backup-%s.json", timeutil.FormatDay(timeutil.Now()))
}

// Export collects the current state into a snapshot blob
func (s *SnapshotService) Export(ctx context.Context) (*models.Snapshot, error) {
	records, err := s.InteractionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.CounterLogRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		profile = nil // exporting before registration is fine
	}

	if records == nil {
		records = []models.InteractionRecord{}
	}
	if logs == nil {
		logs = []models.CounterLog{}
	}
	return &models.Snapshot{
		Profile:     profile,
		Sales:       records,
		CounterLogs: logs,
	}, nil
}

// ExportJSON serializes the snapshot for download
func (s *SnapshotService) ExportJSON(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snapshot, "", "  ")
}

// ParseSnapshot decodes and validates a snapshot payload without writing
// anything. Unknown top-level keys are ignored; missing collections default
// to empty. Any invalid record rejects the whole payload.
func ParseSnapshot(payload []byte) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("snapshot is not valid JSON: %w", err)
	}

	if snapshot.Sales == nil {
		snapshot.Sales = []models.InteractionRecord{}
	}
	if snapshot.CounterLogs == nil {
		snapshot.CounterLogs = []models.CounterLog{}
	}

	seen := make(map[string]bool, len(snapshot.Sales))
	for i := range snapshot.Sales {
		rec := &snapshot.Sales[i]
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("duplicate record id %s", rec.ID)
		}
		seen[rec.ID] = true
		if _, err := timeutil.ParseDay(rec.Date); err != nil {
			return nil, fmt.Errorf("record %s has unparsable date %q", rec.ID, rec.Date)
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
	}

	seenLogs := make(map[string]bool, len(snapshot.CounterLogs))
	for i := range snapshot.CounterLogs {
		l := &snapshot.CounterLogs[i]
		if l.ID == "" {
			return nil, fmt.Errorf("counter log %d has no id", i)
		}
		if seenLogs[l.ID] {
			return nil, fmt.Errorf("duplicate counter log id %s", l.ID)
		}
		seenLogs[l.ID] = true
		if _, err := timeutil.ParseDay(l.Date); err != nil {
			return nil, fmt.Errorf("counter log %s has unparsable date %q", l.ID, l.Date)
		}
		if l.Category == "" {
			return nil, fmt.Errorf("counter log %s has no category", l.ID)
		}
	}

	return &snapshot, nil
}

// Import replaces the stored state with a validated snapshot. The payload
// is fully validated before the first write; a profile key is optional and
// never clears auth credentials.
func (s *SnapshotService) Import(ctx context.Context, payload []byte) (*models.Snapshot, error) {
	snapshot, err := ParseSnapshot(payload)
	if err != nil {
		return nil, err
	}

	if err := s.InteractionRepo.ReplaceAll(ctx, snapshot.Sales); err != nil {
		return nil, err
	}
	if err := s.CounterLogRepo.ReplaceAll(ctx, snapshot.CounterLogs); err != nil {
		return nil, err
	}
	if snapshot.Profile != nil {
		if existing, err := s.ProfileRepo.Get(ctx); err == nil {
			// Keep stored credentials; snapshots never carry them
			snapshot.Profile.PINHash = existing.PINHash
			snapshot.Profile.TOTPSecret = existing.TOTPSecret
			snapshot.Profile.TOTPEnabled = existing.TOTPEnabled
		}
		if err := s.ProfileRepo.Save(ctx, snapshot.Profile); err != nil {
			return nil, err
		}
	}
	return snapshot, nil
}
