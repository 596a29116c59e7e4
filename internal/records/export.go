package records

import (
	"context"

	"github.com/misy-ai/gateway/internal/model"
)

// Dump bundles the three persisted records for export/import.
type Dump struct {
	Plan   model.Plan           `json:"plan"`
	Daily  model.DailyUsage     `json:"daily"`
	Memory model.MemorySnapshot `json:"memory"`
}

// Export reads all three records into a Dump. The daily record is exported
// as stored for today.
func Export(ctx context.Context, repo Repository, today string) Dump {
	return Dump{
		Plan:   repo.Plan(ctx),
		Daily:  repo.Daily(ctx, today),
		Memory: repo.Memory(ctx),
	}
}

// Import writes a Dump back into the repository.
func Import(ctx context.Context, repo Repository, d Dump) error {
	if err := repo.SetPlan(ctx, model.ParsePlan(string(d.Plan))); err != nil {
		return err
	}
	if err := repo.SetDaily(ctx, d.Daily); err != nil {
		return err
	}
	if d.Memory.Items == nil {
		d.Memory.Items = []model.MemoryItem{}
	}
	return repo.SetMemory(ctx, d.Memory)
}
