package store

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/validate"
	"github.com/dailyhustle/hustle/internal/filex"
)

// OnApplyFunc starts task for the current user and returns the new proof.
// A failure is reported to the user exactly once.
func (s *Store) OnApplyFunc(ctx context.Context, task models.Task) (models.StartedProof, error) {
	if task.ID == "" {
		err := models.NewDomainError(models.CodeTaskStartFailed, "Invalid task")
		return models.StartedProof{}, s.fail(ctx, err, "Failed to start task")
	}
	proof, err := s.gw.StartTask(ctx, task.ID)
	if err != nil {
		return models.StartedProof{}, s.fail(ctx, err, "Failed to start task")
	}
	return proof, nil
}

func (s *Store) findProof(id string) (models.MyTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.user.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.MyTask{}, false
}

func (s *Store) checkEditable(ctx context.Context, proofID string) error {
	t, ok := s.findProof(proofID)
	if !ok || models.ProofEditable(t.SubmissionProgress) {
		return nil
	}
	msg := fmt.Sprintf("This proof is %s and can no longer be edited", strings.ToLower(string(t.SubmissionProgress)))
	return s.fail(ctx, models.NewDomainError(models.CodeProofLocked, msg), msg)
}

// SubmitTaskProof updates a proof, then reloads profile and proofs. The
// success notice is shown once both reloads have finished.
func (s *Store) SubmitTaskProof(ctx context.Context, proofID, title, src string) error {
	if proofID == "" {
		return s.invalid("proof_id", "Select a task first")
	}
	if err := s.checkEditable(ctx, proofID); err != nil {
		return err
	}
	patch := models.NewProofPatch(title, src)
	if patch.Title == nil && patch.Src == nil {
		return s.invalid("src", "Image proof required")
	}
	if err := s.gw.UpdateTaskProof(ctx, proofID, patch); err != nil {
		return s.fail(ctx, err, "Failed to submit proof")
	}

	var g errgroup.Group
	g.Go(func() error { return s.RefetchUserData(ctx) })
	g.Go(func() error {
		_, err := s.FetchMyTasks(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn(ctx, "reload after proof", "error", err)
	}
	s.notify.Success("Proof submitted successfully!")
	return nil
}

// SubmitProofWithFile uploads file as the proof image, then submits it.
func (s *Store) SubmitProofWithFile(ctx context.Context, proofID, title string, file *filex.Upload) error {
	if file == nil {
		return s.invalid("file", "Image proof required")
	}
	if err := validate.Image(file.ContentType, file.Size); err != nil {
		return s.reject(err)
	}
	if err := s.checkEditable(ctx, proofID); err != nil {
		return err
	}
	src, err := s.gw.UploadFile(ctx, file.Name, file.Reader)
	if err != nil {
		return s.fail(ctx, err, "Upload failed")
	}
	return s.SubmitTaskProof(ctx, proofID, title, src)
}
