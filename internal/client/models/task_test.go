package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProofStatus(t *testing.T) {
	assert.Equal(t, ProofPending, NormalizeProofStatus(""))
	assert.Equal(t, ProofApproved, NormalizeProofStatus("approved"))
	assert.Equal(t, ProofResubmit, NormalizeProofStatus("Resubmit"))
}

func TestProofEditable(t *testing.T) {
	assert.True(t, ProofEditable(ProofPending))
	assert.True(t, ProofEditable(ProofResubmit))
	assert.False(t, ProofEditable(ProofApproved))
	assert.False(t, ProofEditable(ProofRejected))
}

func TestTaskProof_Flatten(t *testing.T) {
	var raw TaskProof
	require.NoError(t, json.Unmarshal([]byte(`{
		"_id": "P1",
		"task": {"_id": "T1", "title": "Follow us"},
		"title": "done",
		"src": "https://cdn/x.png"
	}`), &raw))

	got := raw.Flatten()
	assert.Equal(t, "P1", got.ID)
	assert.Equal(t, "T1", got.TaskID)
	assert.Equal(t, ProofPending, got.SubmissionProgress)
	assert.Empty(t, got.ApprovalStatus)
	assert.Equal(t, "Follow us", got.Task.Title)
	assert.Equal(t, "https://cdn/x.png", got.Src)

	raw.ApprovalStatus = "rejected"
	assert.Equal(t, ProofRejected, raw.Flatten().SubmissionProgress)
}

func TestNewProofPatch_OmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(NewProofPatch("  my proof  ", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"my proof"}`, string(b))

	b, err = json.Marshal(NewProofPatch("   ", "https://cdn/a.png"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"src":"https://cdn/a.png"}`, string(b))

	b, err = json.Marshal(NewProofPatch("", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestReward_PerWorker(t *testing.T) {
	per := 50.0
	assert.Equal(t, 50.0, Reward{Amount: 1000, AmountPerWorker: &per}.PerWorker())
	assert.Equal(t, 1000.0, Reward{Amount: 1000}.PerWorker())
}

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("start: %w", NewDomainError(CodeTaskStartFailed, "missing proof id"))
	assert.True(t, errors.Is(err, ErrTaskStartFailed))
	assert.False(t, errors.Is(err, ErrUploadNoSrc))

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "TASK_START_FAILED: missing proof id", de.Error())
}
