package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
)

type recordingCreator struct {
	calls []model.TaskDraft
}

func (r *recordingCreator) Create(_ context.Context, d model.TaskDraft) (model.Task, error) {
	r.calls = append(r.calls, d)
	return d.Task("id-1"), nil
}

func mainDraft(radio model.SubtaskChoice) model.TaskDraft {
	return model.TaskDraft{
		Date:         "2024-05-01",
		Title:        "Plan trip",
		Description:  "Summer",
		Category:     model.CategoryImportant,
		SubtaskRadio: radio,
	}
}

func subtask(title string) model.Subtask {
	return model.Subtask{Title: title, Description: "d", Category: model.SubtaskCategoryBasic, Status: "open"}
}

func TestSubmitWithoutSubtasks(t *testing.T) {
	f := New()
	c := &recordingCreator{}
	require.Equal(t, StageEmpty, f.Stage())

	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceNo)))
	assert.Equal(t, StageDrafting, f.Stage())

	task, err := f.Submit(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, StageCommitted, f.Stage())
	require.Len(t, c.calls, 1)

	created, ok := f.Created()
	require.True(t, ok)
	assert.Equal(t, task, created)
}

func TestSubmitValidatesMainFields(t *testing.T) {
	f := New()
	c := &recordingCreator{}
	d := mainDraft(model.SubtaskChoiceNo)
	d.Title = ""
	require.NoError(t, f.Edit(d))

	_, err := f.Submit(context.Background(), c)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors.Title)
	assert.Empty(t, c.calls)
	assert.Equal(t, StageDrafting, f.Stage())
}

func TestSubmitRequiresChoice(t *testing.T) {
	f := New()
	d := mainDraft("")
	require.NoError(t, f.Edit(d))

	_, err := f.Submit(context.Background(), &recordingCreator{})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors.SubtaskRadio)
}

func TestSubmitRejectsSubtaskChoice(t *testing.T) {
	f := New()
	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceYes)))
	_, err := f.Submit(context.Background(), &recordingCreator{})
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestTwoPhaseCreation(t *testing.T) {
	ctx := context.Background()
	f := New()
	c := &recordingCreator{}

	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceYes)))
	require.NoError(t, f.ContinueToSubtasks())
	assert.Equal(t, StageSubtaskDrafting, f.Stage())
	require.Len(t, f.Draft().Subtasks, 1)

	require.NoError(t, f.SetSubtask(0, subtask("book flights")))
	i, err := f.AddSubtask()
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	require.NoError(t, f.SetSubtask(1, subtask("book hotel")))
	assert.Empty(t, c.calls)

	task, err := f.Commit(ctx, c)
	require.NoError(t, err)
	require.Len(t, c.calls, 1)
	assert.Equal(t, "Plan trip", c.calls[0].Title)
	require.Len(t, task.Subtasks, 2)
	assert.Equal(t, "book hotel", task.Subtasks[1].Title)
	assert.Equal(t, StageCommitted, f.Stage())
}

func TestCommitReportsSubtaskErrorsByIndex(t *testing.T) {
	f := New()
	c := &recordingCreator{}
	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceYes)))
	require.NoError(t, f.ContinueToSubtasks())
	require.NoError(t, f.SetSubtask(0, subtask("ok")))
	_, err := f.AddSubtask()
	require.NoError(t, err)
	bad := subtask("no status")
	bad.Status = ""
	require.NoError(t, f.SetSubtask(1, bad))

	_, err = f.Commit(context.Background(), c)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Errors.Subtasks, 1)
	assert.NotEmpty(t, verr.Errors.Subtasks[1].Status)
	assert.NotContains(t, verr.Errors.Subtasks, 0)
	assert.Empty(t, c.calls)
	assert.Equal(t, StageSubtaskDrafting, f.Stage())
}

func TestContinueRequiresValidMainFields(t *testing.T) {
	f := New()
	d := mainDraft(model.SubtaskChoiceYes)
	d.Description = " "
	require.NoError(t, f.Edit(d))

	err := f.ContinueToSubtasks()
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StageDrafting, f.Stage())
}

func TestBackKeepsSubtasks(t *testing.T) {
	f := New()
	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceYes)))
	require.NoError(t, f.ContinueToSubtasks())
	require.NoError(t, f.SetSubtask(0, subtask("keep me")))
	require.NoError(t, f.Back())
	assert.Equal(t, StageDrafting, f.Stage())

	d := mainDraft(model.SubtaskChoiceYes)
	d.Title = "Plan bigger trip"
	require.NoError(t, f.Edit(d))
	require.NoError(t, f.ContinueToSubtasks())

	got := f.Draft()
	assert.Equal(t, "Plan bigger trip", got.Title)
	require.Len(t, got.Subtasks, 1)
	assert.Equal(t, "keep me", got.Subtasks[0].Title)
}

func TestRemoveSubtaskKeepsOne(t *testing.T) {
	f := New()
	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceYes)))
	require.NoError(t, f.ContinueToSubtasks())
	_, err := f.AddSubtask()
	require.NoError(t, err)

	require.NoError(t, f.RemoveSubtask(0))
	assert.ErrorIs(t, f.RemoveSubtask(0), ErrLastSubtask)
	assert.ErrorIs(t, f.RemoveSubtask(3), ErrOutOfRange)
	assert.ErrorIs(t, f.SetSubtask(-1, subtask("x")), ErrOutOfRange)
}

func TestWrongStageCalls(t *testing.T) {
	ctx := context.Background()
	f := New()
	c := &recordingCreator{}

	_, err := f.Submit(ctx, c)
	assert.ErrorIs(t, err, ErrWrongStage)
	_, err = f.Commit(ctx, c)
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.ErrorIs(t, f.ContinueToSubtasks(), ErrWrongStage)
	assert.ErrorIs(t, f.Back(), ErrWrongStage)
	_, err = f.AddSubtask()
	assert.ErrorIs(t, err, ErrWrongStage)

	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceNo)))
	_, err = f.Submit(ctx, c)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Edit(mainDraft(model.SubtaskChoiceNo)), ErrWrongStage)
	assert.Len(t, c.calls, 1)
}

func TestAbandonWritesNothing(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, storage.NewMemoryBackend())
	require.NoError(t, err)
	defer s.Close()

	f := New()
	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceYes)))
	require.NoError(t, f.ContinueToSubtasks())
	require.NoError(t, f.SetSubtask(0, subtask("half done")))
	f.Abandon()

	assert.Equal(t, StageEmpty, f.Stage())
	assert.Equal(t, model.TaskDraft{}, f.Draft())
	assert.Empty(t, s.List(ctx))
	_, ok := f.Created()
	assert.False(t, ok)
}

func TestCommitThroughStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, storage.NewMemoryBackend())
	require.NoError(t, err)
	defer s.Close()

	f := New()
	require.NoError(t, f.Edit(mainDraft(model.SubtaskChoiceYes)))
	require.NoError(t, f.ContinueToSubtasks())
	require.NoError(t, f.SetSubtask(0, subtask("one")))

	task, err := f.Commit(ctx, s)
	require.NoError(t, err)

	got, ok := s.FindByID(ctx, task.ID)
	require.True(t, ok)
	assert.True(t, got.HasSubtasks())
	assert.Equal(t, "one", got.Subtasks[0].Title)
}
