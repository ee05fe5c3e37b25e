package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskboard/internal/model"
)

func sample() []model.Task {
	mk := func(id, title string, c model.Category, radio model.SubtaskChoice) model.Task {
		return model.Task{ID: id, Date: "2024-01-01", Title: title, Description: "d", Category: c, SubtaskRadio: radio}
	}
	return []model.Task{
		mk("1", "a", model.CategoryUrgent, model.SubtaskChoiceNo),
		mk("2", "b", model.CategoryUrgent, model.SubtaskChoiceYes),
		mk("3", "c", model.CategoryUrgent, model.SubtaskChoiceNo),
		mk("4", "d", model.CategoryFavourites, model.SubtaskChoiceYes),
		mk("5", "e", model.CategoryImportant, model.SubtaskChoiceNo),
	}
}

func TestRecentIsNewestFirst(t *testing.T) {
	got := Recent(sample(), 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"5", "4", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})

	assert.Len(t, Recent(sample(), 10), 5)
	assert.Empty(t, Recent(sample(), 0))
	assert.Empty(t, Recent(nil, 3))
}

func TestTallyCoversEveryCategory(t *testing.T) {
	got := Tally(sample())
	require.Len(t, got, len(model.Categories()))
	want := map[model.Category]int{
		model.CategoryUrgent:     3,
		model.CategoryFavourites: 1,
		model.CategoryImportant:  1,
	}
	for i, cc := range got {
		assert.Equal(t, model.Categories()[i], cc.Category)
		assert.Equal(t, want[cc.Category], cc.Count, cc.Category)
	}
}

func TestPreviewsLimitTitles(t *testing.T) {
	got := Previews(sample(), 2)
	byCat := map[model.Category]CategoryPreview{}
	for _, p := range got {
		byCat[p.Category] = p
	}

	urgent := byCat[model.CategoryUrgent]
	assert.Equal(t, []string{"a", "b"}, urgent.Titles)
	assert.Equal(t, 1, urgent.More)
	assert.Equal(t, 3, urgent.Count)

	fav := byCat[model.CategoryFavourites]
	assert.Equal(t, []string{"d"}, fav.Titles)
	assert.Zero(t, fav.More)

	completed := byCat[model.CategoryCompleted]
	assert.Empty(t, completed.Titles)
	assert.Zero(t, completed.Count)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample(), DefaultRecentLimit)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.WithSubtasks)
	assert.Len(t, s.Recent, 3)
	assert.Len(t, s.Categories, 7)
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	task := model.Task{Title: "Quarterly Report", Description: "Numbers", Category: model.CategoryNotCompleted, Date: "2024-06-30"}
	assert.True(t, Matches(task, "REPORT"))
	assert.True(t, Matches(task, "numb"))
	assert.True(t, Matches(task, "not comp"))
	assert.True(t, Matches(task, "06-30"))
	assert.False(t, Matches(task, "invoice"))
}
