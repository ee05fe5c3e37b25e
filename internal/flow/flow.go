// Package flow drives task creation over a transient draft. Nothing reaches
// the store until Submit or Commit, and abandoning the flow drops the draft.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/taskboard/internal/model"
)

var (
	ErrWrongStage  = errors.New("flow: operation not allowed at this stage")
	ErrNoSubtasks  = errors.New("flow: at least one subtask is required")
	ErrOutOfRange  = errors.New("flow: subtask index out of range")
	ErrLastSubtask = errors.New("flow: cannot remove the last subtask")
)

type Stage string

const (
	StageEmpty           Stage = "empty"
	StageDrafting        Stage = "drafting"
	StageSubtaskDrafting Stage = "subtask_drafting"
	StageCommitted       Stage = "committed"
)

// Creator persists a finished draft.
type Creator interface {
	Create(ctx context.Context, d model.TaskDraft) (model.Task, error)
}

type Flow struct {
	stage   Stage
	draft   model.TaskDraft
	created model.Task
}

func New() *Flow {
	return &Flow{stage: StageEmpty}
}

func (f *Flow) Stage() Stage { return f.stage }

// Draft returns a copy of the in-progress draft.
func (f *Flow) Draft() model.TaskDraft {
	d := f.draft
	d.Subtasks = append([]model.Subtask(nil), f.draft.Subtasks...)
	return d
}

// Created is the stored task once the flow has committed.
func (f *Flow) Created() (model.Task, bool) {
	if f.stage != StageCommitted {
		return model.Task{}, false
	}
	return f.created, true
}

func (f *Flow) wrongStage(op string) error {
	return fmt.Errorf("%w: %s while %s", ErrWrongStage, op, f.stage)
}

// Edit replaces the main fields of the draft. Subtasks already drafted are
// kept so the user can go back and forth between the two forms.
func (f *Flow) Edit(d model.TaskDraft) error {
	if f.stage != StageEmpty && f.stage != StageDrafting {
		return f.wrongStage("edit")
	}
	subtasks := f.draft.Subtasks
	f.draft = d
	f.draft.Subtasks = subtasks
	f.stage = StageDrafting
	return nil
}

// Submit stores a task that was declared without subtasks.
func (f *Flow) Submit(ctx context.Context, c Creator) (model.Task, error) {
	if f.stage != StageDrafting {
		return model.Task{}, f.wrongStage("submit")
	}
	d := f.Draft()
	if d.SubtaskRadio != model.SubtaskChoiceNo {
		if errs := model.ValidateMain(d); !errs.MainEmpty() {
			return model.Task{}, &model.ValidationError{Errors: errs}
		}
		return model.Task{}, f.wrongStage("submit with subtasks")
	}
	d.Subtasks = nil
	return f.commit(ctx, c, d)
}

// ContinueToSubtasks moves a valid main draft declared with subtasks to the
// subtask form, seeding one blank subtask when none exist yet.
func (f *Flow) ContinueToSubtasks() error {
	if f.stage != StageDrafting {
		return f.wrongStage("continue")
	}
	if errs := model.ValidateMain(f.draft); !errs.MainEmpty() {
		return &model.ValidationError{Errors: errs}
	}
	if f.draft.SubtaskRadio != model.SubtaskChoiceYes {
		return f.wrongStage("continue without subtasks")
	}
	if len(f.draft.Subtasks) == 0 {
		f.draft.Subtasks = []model.Subtask{{}}
	}
	f.stage = StageSubtaskDrafting
	return nil
}

// AddSubtask appends a blank subtask and returns its index.
func (f *Flow) AddSubtask() (int, error) {
	if f.stage != StageSubtaskDrafting {
		return 0, f.wrongStage("add subtask")
	}
	f.draft.Subtasks = append(f.draft.Subtasks, model.Subtask{})
	return len(f.draft.Subtasks) - 1, nil
}

func (f *Flow) SetSubtask(i int, s model.Subtask) error {
	if f.stage != StageSubtaskDrafting {
		return f.wrongStage("set subtask")
	}
	if i < 0 || i >= len(f.draft.Subtasks) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	f.draft.Subtasks[i] = s
	return nil
}

func (f *Flow) RemoveSubtask(i int) error {
	if f.stage != StageSubtaskDrafting {
		return f.wrongStage("remove subtask")
	}
	if i < 0 || i >= len(f.draft.Subtasks) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	if len(f.draft.Subtasks) == 1 {
		return ErrLastSubtask
	}
	f.draft.Subtasks = append(f.draft.Subtasks[:i], f.draft.Subtasks[i+1:]...)
	return nil
}

// Back returns to the main form without dropping anything.
func (f *Flow) Back() error {
	if f.stage != StageSubtaskDrafting {
		return f.wrongStage("back")
	}
	f.stage = StageDrafting
	return nil
}

// Commit stores the main fields together with every subtask in a single
// create call.
func (f *Flow) Commit(ctx context.Context, c Creator) (model.Task, error) {
	if f.stage != StageSubtaskDrafting {
		return model.Task{}, f.wrongStage("commit")
	}
	d := f.Draft()
	if len(d.Subtasks) == 0 {
		return model.Task{}, ErrNoSubtasks
	}
	return f.commit(ctx, c, d)
}

func (f *Flow) commit(ctx context.Context, c Creator, d model.TaskDraft) (model.Task, error) {
	if errs := model.ValidateDraft(d); !errs.Empty() {
		return model.Task{}, &model.ValidationError{Errors: errs}
	}
	task, err := c.Create(ctx, d)
	if err != nil {
		return model.Task{}, err
	}
	f.created = task
	f.stage = StageCommitted
	return task, nil
}

// Abandon drops the draft. It is allowed from any stage.
func (f *Flow) Abandon() {
	f.stage = StageEmpty
	f.draft = model.TaskDraft{}
	f.created = model.Task{}
}
