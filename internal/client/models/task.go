package models

import "strings"

type Reward struct {
	Amount          float64  `json:"amount"`
	AmountPerWorker *float64 `json:"amount_per_worker,omitempty"`
	Currency        string   `json:"currency"`
}

// PerWorker is the amount a single completion pays.
func (r Reward) PerWorker() float64 {
	if r.AmountPerWorker != nil {
		return *r.AmountPerWorker
	}
	return r.Amount
}

type Slots struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

type Approval struct {
	Mode string `json:"mode,omitempty"`
}

// Task is a read-only catalog entry.
type Task struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Reward       Reward   `json:"reward"`
	Slots        Slots    `json:"slots"`
	Instructions string   `json:"instructions,omitempty"`
	Description  string   `json:"description,omitempty"`
	ReviewType   string   `json:"review_type,omitempty"`
	Approval     Approval `json:"approval"`
}

// ProofStatus is the review state of a TaskProof.
type ProofStatus string

const (
	ProofPending  ProofStatus = "PENDING"
	ProofApproved ProofStatus = "APPROVED"
	ProofRejected ProofStatus = "REJECTED"
	ProofResubmit ProofStatus = "RESUBMIT"
)

// NormalizeProofStatus upper-cases s; an empty status is PENDING.
func NormalizeProofStatus(s string) ProofStatus {
	if s == "" {
		return ProofPending
	}
	return ProofStatus(strings.ToUpper(s))
}

// ProofEditable reports whether a proof in status s may be (re)submitted.
// APPROVED and REJECTED are terminal.
func ProofEditable(s ProofStatus) bool {
	switch s {
	case ProofApproved, ProofRejected:
		return false
	default:
		return true
	}
}

// TaskProof is the backend shape of a user's attempt at a task.
type TaskProof struct {
	ID             string `json:"_id"`
	Task           Task   `json:"task"`
	ApprovalStatus string `json:"approval_status,omitempty"`
	Title          string `json:"title,omitempty"`
	Src            string `json:"src,omitempty"`
}

// MyTask is the flattened proof the store keeps under UserProfile.Tasks.
type MyTask struct {
	ID                 string      `json:"_id"`
	TaskID             string      `json:"task_id"`
	SubmissionProgress ProofStatus `json:"submission_progress"`
	ApprovalStatus     string      `json:"approval_status,omitempty"`
	Task               Task        `json:"task"`
	Title              string      `json:"title,omitempty"`
	Src                string      `json:"src,omitempty"`
}

// Flatten converts the backend proof into the store's shape.
func (p TaskProof) Flatten() MyTask {
	return MyTask{
		ID:                 p.ID,
		TaskID:             p.Task.ID,
		SubmissionProgress: NormalizeProofStatus(p.ApprovalStatus),
		ApprovalStatus:     p.ApprovalStatus,
		Task:               p.Task,
		Title:              p.Title,
		Src:                p.Src,
	}
}

// ProofPatch is a partial proof update. Nil fields are left out of the
// request body.
type ProofPatch struct {
	Title *string `json:"title,omitempty"`
	Src   *string `json:"src,omitempty"`
}

// NewProofPatch trims title and drops empty values.
func NewProofPatch(title, src string) ProofPatch {
	var p ProofPatch
	if t := strings.TrimSpace(title); t != "" {
		p.Title = &t
	}
	if src != "" {
		p.Src = &src
	}
	return p
}

// TaskStats summarises the user's proofs by status.
type TaskStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Resubmit int `json:"resubmit"`
	// Earned is the total paid for approved proofs.
	Earned float64 `json:"earned"`
}

// StartedProof is what POST /task-proof returns; only the id is relied on.
type StartedProof struct {
	ID     string `json:"_id"`
	TaskID string `json:"task_id,omitempty"`
}
