package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeyudi/lapwing/internal/task"
)

var base = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func at(seconds int) time.Time {
	return base.Add(time.Duration(seconds) * time.Second)
}

func mustAdd(t *testing.T, b *task.Board, text string, priority int) task.Task {
	t.Helper()
	tk, err := b.Add(text, priority, nil, base)
	require.NoError(t, err)
	return tk
}

func TestAddValidation(t *testing.T) {
	b := task.NewBoard()

	tk, err := b.Add("  write report  ", 0, nil, base)
	require.NoError(t, err)
	assert.Equal(t, "write report", tk.Text)
	assert.Equal(t, task.DefaultPriority, tk.Priority)
	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, base, tk.CreatedAt)

	_, err = b.Add("   ", 3, nil, base)
	assert.Error(t, err)

	_, err = b.Add("ok", 6, nil, base)
	assert.Error(t, err)
	_, err = b.Add("ok", -1, nil, base)
	assert.Error(t, err)

	assert.Equal(t, 1, b.Len())
}

func TestCompleteComputesLaps(t *testing.T) {
	b := task.NewBoard()
	deadline := at(3600)
	b.SetDeadline(deadline, base)

	first := mustAdd(t, b, "first", 3)
	second := mustAdd(t, b, "second", 3)

	done, completed, err := b.Complete(first.ID, at(90))
	require.NoError(t, err)
	assert.True(t, completed)
	require.NotNil(t, done.LapSeconds)
	assert.Equal(t, 90, *done.LapSeconds)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, at(90), *done.CompletedAt)

	// The lap anchor moved, so the next lap counts from the previous
	// completion, not from the deadline being set.
	done, completed, err = b.Complete(second.ID, at(150))
	require.NoError(t, err)
	assert.True(t, completed)
	require.NotNil(t, done.LapSeconds)
	assert.Equal(t, 60, *done.LapSeconds)

	// Reopening clears the lap without moving any anchor.
	reopened, completed, err := b.Complete(second.ID, at(200))
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Nil(t, reopened.LapSeconds)
	assert.Nil(t, reopened.CompletedAt)

	done, completed, err = b.Complete(second.ID, at(210))
	require.NoError(t, err)
	assert.True(t, completed)
	require.NotNil(t, done.LapSeconds)
	assert.Equal(t, 60, *done.LapSeconds, "anchor stayed at the earlier completion")
}

func TestCompleteWithoutAnchors(t *testing.T) {
	b := task.NewBoard()
	tk := mustAdd(t, b, "solo", 3)

	done, completed, err := b.Complete(tk.ID, at(500))
	require.NoError(t, err)
	assert.True(t, completed)
	require.NotNil(t, done.LapSeconds)
	assert.Equal(t, 0, *done.LapSeconds, "first completion has no previous lap to measure from")

	_, _, err = b.Complete("nope", at(500))
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestUpdatePartial(t *testing.T) {
	b := task.NewBoard()
	tk := mustAdd(t, b, "tune index", 4)

	p := 1
	got, err := b.Update(tk.ID, task.TaskUpdate{Priority: &p})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Priority)
	assert.Equal(t, "tune index", got.Text, "text untouched by a priority-only update")

	bad := 9
	_, err = b.Update(tk.ID, task.TaskUpdate{Priority: &bad})
	assert.Error(t, err)
	got, ok := b.Get(tk.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Priority, "rejected update must not mutate")

	due := at(7200)
	got, err = b.Update(tk.ID, task.TaskUpdate{Deadline: &due})
	require.NoError(t, err)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, due, *got.Deadline)

	got, err = b.Update(tk.ID, task.TaskUpdate{ClearDeadline: true})
	require.NoError(t, err)
	assert.Nil(t, got.Deadline)

	text := "  tune the index  "
	got, err = b.Update(tk.ID, task.TaskUpdate{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "tune the index", got.Text)

	_, err = b.Update("missing", task.TaskUpdate{Priority: &p})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestDelete(t *testing.T) {
	b := task.NewBoard()
	first := mustAdd(t, b, "first", 3)
	second := mustAdd(t, b, "second", 3)

	require.NoError(t, b.Delete(first.ID))
	assert.Equal(t, 1, b.Len())
	_, ok := b.Get(first.ID)
	assert.False(t, ok)
	_, ok = b.Get(second.ID)
	assert.True(t, ok)

	assert.ErrorIs(t, b.Delete(first.ID), task.ErrTaskNotFound)
}

func TestImportTasks(t *testing.T) {
	b := task.NewBoard()
	existing := mustAdd(t, b, "already here", 3)

	lap := 90
	doneAt := at(300)
	due := at(7200)
	incoming := []task.Task{
		{ID: "stale-id", Text: "open item", Priority: 2, Deadline: &due},
		{Text: "finished item", Priority: 4, Completed: true, CompletedAt: &doneAt, LapSeconds: &lap},
		{Text: "no default"},
	}

	added, err := b.ImportTasks(incoming, at(600))
	require.NoError(t, err)
	require.Len(t, added, 3)
	assert.Equal(t, 4, b.Len())

	open := added[0]
	assert.NotEqual(t, "stale-id", open.ID, "imported tasks get fresh IDs")
	assert.Equal(t, "open item", open.Text)
	assert.Equal(t, 2, open.Priority)
	require.NotNil(t, open.Deadline)
	assert.True(t, open.Deadline.Equal(due))
	assert.False(t, open.Completed)

	finished := added[1]
	assert.True(t, finished.Completed)
	require.NotNil(t, finished.CompletedAt)
	assert.True(t, finished.CompletedAt.Equal(doneAt))
	require.NotNil(t, finished.LapSeconds)
	assert.Equal(t, 90, *finished.LapSeconds)

	assert.Equal(t, task.DefaultPriority, added[2].Priority)

	// A bad entry rejects the whole batch.
	_, err = b.ImportTasks([]task.Task{{Text: "  "}}, at(700))
	require.Error(t, err)
	assert.Equal(t, 4, b.Len())

	_, ok := b.Get(existing.ID)
	assert.True(t, ok)
}

func TestSortByPriority(t *testing.T) {
	b := task.NewBoard()
	c, err := b.Add("c", 3, nil, at(2))
	require.NoError(t, err)
	a, err := b.Add("a", 1, nil, at(1))
	require.NoError(t, err)
	b2, err := b.Add("b", 1, nil, at(0))
	require.NoError(t, err)

	b.SortByPriority(true)
	got := b.Tasks()
	require.Len(t, got, 3)
	// Equal priorities fall back to creation order.
	assert.Equal(t, []string{b2.ID, a.ID, c.ID}, ids(got))

	b.SortByPriority(false)
	assert.Equal(t, []string{c.ID, b2.ID, a.ID}, ids(b.Tasks()))
}

func TestSortByDeadline(t *testing.T) {
	b := task.NewBoard()
	late := at(7200)
	soon := at(600)

	undated, err := b.Add("undated", 1, nil, at(0))
	require.NoError(t, err)
	relaxed, err := b.Add("relaxed", 2, &late, at(1))
	require.NoError(t, err)
	urgent, err := b.Add("urgent", 5, &soon, at(2))
	require.NoError(t, err)

	b.SortByDeadline()
	assert.Equal(t, []string{urgent.ID, relaxed.ID, undated.ID}, ids(b.Tasks()),
		"dated tasks first, soonest deadline wins regardless of priority")
}

func TestCurrentTask(t *testing.T) {
	b := task.NewBoard()
	_, ok := b.CurrentTask()
	assert.False(t, ok)

	mustAdd(t, b, "background", 5)
	urgent := mustAdd(t, b, "urgent", 1)
	alsoUrgent := mustAdd(t, b, "also urgent", 1)

	cur, ok := b.CurrentTask()
	require.True(t, ok)
	assert.Equal(t, urgent.ID, cur.ID, "ties go to the earlier task")

	_, _, err := b.Complete(urgent.ID, at(10))
	require.NoError(t, err)
	cur, ok = b.CurrentTask()
	require.True(t, ok)
	assert.Equal(t, alsoUrgent.ID, cur.ID)
}

func TestStats(t *testing.T) {
	b := task.NewBoard()
	assert.Equal(t, task.Stats{}, b.Stats(base))
	assert.False(t, b.AllDone())

	past := at(-60)
	one := mustAdd(t, b, "one", 3)
	_, err := b.Add("two", 3, &past, base)
	require.NoError(t, err)
	three := mustAdd(t, b, "three", 3)

	_, _, err = b.Complete(one.ID, at(10))
	require.NoError(t, err)

	s := b.Stats(base)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 2, s.Incomplete)
	assert.Equal(t, 1, s.Overdue)
	assert.InDelta(t, 33.3, s.CompletionRate, 0.001)

	assert.False(t, b.AllDone())
	_, _, err = b.Complete(three.ID, at(20))
	require.NoError(t, err)
	tasks := b.Tasks()
	for _, tk := range tasks {
		if !tk.Completed {
			_, _, err = b.Complete(tk.ID, at(30))
			require.NoError(t, err)
		}
	}
	assert.True(t, b.AllDone())
}

func TestDeadlineCountdown(t *testing.T) {
	b := task.NewBoard()
	assert.Equal(t, 0, b.RemainingSeconds(base))
	assert.Equal(t, 0, b.SpentSeconds(base))
	assert.Nil(t, b.Deadline())

	b.SetDeadline(at(900), base)
	require.NotNil(t, b.Deadline())
	assert.Equal(t, at(900), *b.Deadline())
	assert.Equal(t, 840, b.RemainingSeconds(at(60)))
	assert.Equal(t, 0, b.RemainingSeconds(at(1000)), "expired countdown floors at zero")
	assert.Equal(t, 60, b.SpentSeconds(at(60)))

	// Completing a task restarts the spent meter.
	tk := mustAdd(t, b, "task", 3)
	_, _, err := b.Complete(tk.ID, at(300))
	require.NoError(t, err)
	assert.Equal(t, 40, b.SpentSeconds(at(340)))

	b.ClearDeadline()
	assert.Nil(t, b.Deadline())
	assert.Equal(t, 0, b.RemainingSeconds(at(340)))
	assert.Equal(t, 0, b.SpentSeconds(at(340)))
}

func TestOverdue(t *testing.T) {
	b := task.NewBoard()
	past := at(-300)
	future := at(300)

	late, err := b.Add("late", 2, &past, base)
	require.NoError(t, err)
	_, err = b.Add("fine", 2, &future, base)
	require.NoError(t, err)
	doneLate, err := b.Add("done late", 2, &past, base)
	require.NoError(t, err)
	_, _, err = b.Complete(doneLate.ID, base)
	require.NoError(t, err)

	got := b.Overdue(base)
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID, "completed tasks are never overdue")
}

func TestFormatLapTime(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{330, "5m 30s"},
		{3599, "59m 59s"},
		{3600, "1h 0m 0s"},
		{5445, "1h 30m 45s"},
		{-5, "0s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, task.FormatLapTime(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
