package gateway

import (
	"context"
	"net/http"

	"github.com/dailyhustle/hustle/internal/client/models"
)

func (g *Gateway) ListTasks(ctx context.Context) ([]models.Task, error) {
	var env listEnvelope[models.Task, models.Page]
	if err := g.t.Do(ctx, http.MethodGet, "/tasks", nil, &env); err != nil {
		return nil, err
	}
	return nonNil(env.Data.Data), nil
}

func (g *Gateway) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	return get[models.Task](ctx, g.t, "/tasks/"+id(taskID))
}

// StartTask creates a proof for taskID. A response without a proof id is a
// TASK_START_FAILED domain error.
func (g *Gateway) StartTask(ctx context.Context, taskID string) (models.StartedProof, error) {
	var env envelope[*models.StartedProof]
	if err := g.t.Do(ctx, http.MethodPost, "/task-proof", map[string]string{"task_id": taskID}, &env); err != nil {
		return models.StartedProof{}, err
	}
	if env.Data == nil || env.Data.ID == "" {
		return models.StartedProof{}, models.NewDomainError(models.CodeTaskStartFailed, "Failed to create task proof: missing ID")
	}
	return *env.Data, nil
}

func (g *Gateway) ListMyTasks(ctx context.Context) ([]models.TaskProof, error) {
	var env listEnvelope[models.TaskProof, models.Page]
	if err := g.t.Do(ctx, http.MethodGet, "/task-proof/users", nil, &env); err != nil {
		return nil, err
	}
	return nonNil(env.Data.Data), nil
}

// UpdateTaskProof sends only the fields set in patch.
func (g *Gateway) UpdateTaskProof(ctx context.Context, proofID string, patch models.ProofPatch) error {
	return g.t.Do(ctx, http.MethodPatch, "/task-proof/users/"+id(proofID), patch, nil)
}

func (g *Gateway) GetTaskStats(ctx context.Context) (models.TaskStats, error) {
	return get[models.TaskStats](ctx, g.t, "/task-proof/users/stats")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
