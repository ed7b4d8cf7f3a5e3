package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matt-steen/lifequest/pkg/cache"
	"github.com/matt-steen/lifequest/pkg/calendar"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/rowstore"
	"github.com/matt-steen/lifequest/pkg/session"
	"github.com/stretchr/testify/assert"
)

const testUser = "user-123"

func getCache(assert *assert.Assertions) *cache.Cache {
	tempFile, err := os.CreateTemp("", "test_session_cache*")
	assert.Nil(err)

	snapshots, err := cache.New(context.Background(), tempFile.Name())
	assert.Nil(err)

	return snapshots
}

func getSession(assert *assert.Assertions) (*session.Session, *fakeStore, *cache.Cache, *fakeBridge) {
	store := newFakeStore()
	snapshots := getCache(assert)
	bridge := &fakeBridge{}

	return session.New(testUser, store, snapshots, bridge), store, snapshots, bridge
}

func payRent() session.TaskInput {
	return session.TaskInput{
		Title:    "Pay rent",
		Priority: model.PriorityHigh,
		DueDate:  time.Now().Add(2 * 24 * time.Hour),
	}
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)

	task, err := sess.CreateTask(context.Background(), payRent())
	assert.Nil(err)

	assert.Equal(model.CategoryIn3Days, task.Category)
	assert.NotEmpty(task.ID)
	assert.False(task.IsCompleted)

	// the row landed right after the header
	assert.Equal([]int{2}, store.appends[rowstore.Tasks])
	assert.Equal([]string{task.ID}, store.taskIDs())
}

func TestCreateTaskValidation(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, _, _, _ := getSession(assert)
	ctx := context.Background()

	_, err := sess.CreateTask(ctx, session.TaskInput{Priority: model.PriorityLow, DueDate: time.Now()})
	assert.Equal(session.ErrTitleRequired, err)

	_, err = sess.CreateTask(ctx, session.TaskInput{Title: "x", Priority: "Urgent", DueDate: time.Now()})
	assert.Equal(session.ErrInvalidPriority, err)

	_, err = sess.CreateTask(ctx, session.TaskInput{Title: "x", Priority: model.PriorityLow})
	assert.Equal(session.ErrDueDateRequired, err)

	_, err = sess.CreateTask(ctx, session.TaskInput{
		Title: "x", Priority: model.PriorityLow, DueDate: time.Now(), IsRecurring: true,
	})
	assert.Equal(session.ErrRecurringTypeRequired, err)

	assert.Empty(sess.Tasks)
}

func TestSequentialCreatesUseIncreasingRows(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)
	ctx := context.Background()

	first, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	second, err := sess.CreateTask(ctx, session.TaskInput{
		Title: "Buy groceries", Priority: model.PriorityLow, DueDate: time.Now().Add(time.Hour),
	})
	assert.Nil(err)

	// each create targets (prior row count + 1) at the time of its count read
	assert.Equal([]int{2, 3}, store.appends[rowstore.Tasks])
	assert.Equal([]string{first.ID, second.ID}, store.taskIDs())
	assert.NotEqual(first.ID, second.ID)
}

func TestToggleTaskAwardsPoints(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)
	ctx := context.Background()

	task, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	outcome, err := sess.ToggleTask(ctx, task.ID)
	assert.Nil(err)
	assert.Equal(session.OutcomeUpdated, outcome)

	assert.True(task.IsCompleted)
	assert.Equal(15, sess.Stats.CurrentPoints)
	assert.Equal(1, sess.Stats.CompletedTasks)
	assert.Equal(1, sess.Stats.Level())
	assert.False(sess.Stats.LastActivityDate.IsZero())

	// the stats rows were pushed to the remote store
	stats := model.StatsFromRows(store.rows[rowstore.UserStats])
	assert.Equal(15, stats.CurrentPoints)
	assert.Equal(1, stats.CompletedTasks)

	// and the task row reflects completion
	assert.Equal("TRUE", store.rows[rowstore.Tasks][1][8])
}

func TestToggleIncompleteKeepsPoints(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, _, _, _ := getSession(assert)
	ctx := context.Background()

	task, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	_, err = sess.ToggleTask(ctx, task.ID)
	assert.Nil(err)

	// un-completing flips the flag but never claws back the award
	_, err = sess.ToggleTask(ctx, task.ID)
	assert.Nil(err)

	assert.False(task.IsCompleted)
	assert.Equal(15, sess.Stats.CurrentPoints)
	assert.Equal(1, sess.Stats.CompletedTasks)
}

func TestUpdateMissingRemoteRow(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)
	ctx := context.Background()

	task, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	// someone removed the row behind our back
	store.rows[rowstore.Tasks] = [][]string{model.TaskHeader()}

	outcome, err := sess.ToggleTask(ctx, task.ID)

	// indistinguishable from success for the caller; local state advanced
	assert.Nil(err)
	assert.Equal(session.OutcomeNotFound, outcome)
	assert.True(task.IsCompleted)
	assert.Equal(15, sess.Stats.CurrentPoints)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)
	ctx := context.Background()

	first, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	second, err := sess.CreateTask(ctx, session.TaskInput{
		Title: "Buy groceries", Priority: model.PriorityLow, DueDate: time.Now().Add(time.Hour),
	})
	assert.Nil(err)

	outcome, err := sess.DeleteTask(ctx, first.ID)
	assert.Nil(err)
	assert.Equal(session.OutcomeDeleted, outcome)

	// the second task's row shifted up into the deleted slot
	assert.Equal([]string{second.ID}, store.taskIDs())
	assert.Len(sess.Tasks, 1)
	assert.Equal(second.ID, sess.Tasks[0].ID)
}

func TestDeleteMissingRemoteRow(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)
	ctx := context.Background()

	task, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	store.rows[rowstore.Tasks] = [][]string{model.TaskHeader()}

	outcome, err := sess.DeleteTask(ctx, task.ID)
	assert.Nil(err)
	assert.Equal(session.OutcomeNotFound, outcome)
	assert.Empty(sess.Tasks)
}

func TestCreateTaskRemoteFailureKeepsLocal(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, snapshots, _ := getSession(assert)
	ctx := context.Background()

	store.failing[rowstore.Tasks] = true

	task, err := sess.CreateTask(ctx, payRent())

	// the error surfaces for a notification, but the task is not rolled back
	assert.NotNil(err)
	assert.NotNil(task)
	assert.Len(sess.Tasks, 1)

	// the unsynced record made it into the offline snapshot
	snapshot, err := snapshots.LoadSnapshot(ctx, testUser)
	assert.Nil(err)
	assert.Len(snapshot.Tasks, 1)
	assert.Equal(task.ID, snapshot.Tasks[0].ID)
}

func TestLoadFromRemote(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, snapshots, bridge := getSession(assert)
	ctx := context.Background()

	task, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	_, err = sess.ToggleTask(ctx, task.ID)
	assert.Nil(err)

	_, err = sess.CreateInfo(ctx, session.InfoInput{Title: "Insurance", Content: "12-3456"})
	assert.Nil(err)

	// a fresh session sees everything the first one wrote
	fresh := session.New(testUser, store, snapshots, bridge)
	assert.Nil(fresh.Load(ctx))

	assert.False(fresh.Offline)
	assert.Len(fresh.Tasks, 1)
	assert.True(fresh.Tasks[0].IsCompleted)
	assert.Equal(15, fresh.Stats.CurrentPoints)
	assert.Len(fresh.Info, 1)
	assert.Equal("Insurance", fresh.Info[0].Title)
}

func TestLoadFallsBackToCacheWholesale(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, snapshots, bridge := getSession(assert)
	ctx := context.Background()

	task, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	// the remote store has since picked up extra data the snapshot lacks
	_, err = store.AppendRow(ctx, rowstore.ImportantInfo,
		(&model.ImportantInfo{ID: "999", Title: "remote only"}).Row())
	assert.Nil(err)

	// one of the three fetches fails, so the whole load falls back: no partial
	// merge of the two that would have succeeded
	store.failing[rowstore.Tasks] = true

	fresh := session.New(testUser, store, snapshots, bridge)
	assert.Nil(fresh.Load(ctx))

	assert.True(fresh.Offline)
	assert.Len(fresh.Tasks, 1)
	assert.Equal(task.ID, fresh.Tasks[0].ID)
	assert.Empty(fresh.Info)
}

func TestLoadFailsWithoutSnapshot(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)

	store.failing[rowstore.UserStats] = true

	err := sess.Load(context.Background())
	assert.NotNil(err)
	assert.ErrorIs(err, cache.ErrNoSnapshot)
}

func TestCreateTaskWithCalendar(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, bridge := getSession(assert)
	ctx := context.Background()

	input := payRent()
	input.Description = "transfer before noon"
	input.IsRecurring = true
	input.RecurringType = model.RecurringMonthly
	input.AddToCalendar = true

	task, err := sess.CreateTask(ctx, input)
	assert.Nil(err)

	assert.Equal("evt-1", task.CalendarEventID)
	assert.Equal("evt-1", store.rows[rowstore.Tasks][1][11])

	assert.Len(bridge.events, 1)
	event := bridge.events[0]
	assert.Equal("Pay rent", event.Title)
	assert.Equal(task.DueDate, event.Start)
	assert.Equal(task.DueDate.Add(calendar.EventDuration), event.End)
	assert.Equal("RRULE:FREQ=MONTHLY", event.Recurrence)
}

func TestCreateTaskCalendarFailureAbsorbed(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, bridge := getSession(assert)
	ctx := context.Background()

	bridge.fail = true

	input := payRent()
	input.AddToCalendar = true

	task, err := sess.CreateTask(ctx, input)

	// the calendar degraded to no link; the task was still persisted
	assert.Nil(err)
	assert.Empty(task.CalendarEventID)
	assert.Equal([]string{task.ID}, store.taskIDs())
}

func TestSyncCalendar(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)
	ctx := context.Background()

	linked, err := sess.CreateTask(ctx, session.TaskInput{
		Title: "already linked", Priority: model.PriorityLow,
		DueDate: time.Now().Add(time.Hour), AddToCalendar: true,
	})
	assert.Nil(err)

	completed, err := sess.CreateTask(ctx, payRent())
	assert.Nil(err)

	_, err = sess.ToggleTask(ctx, completed.ID)
	assert.Nil(err)

	plain, err := sess.CreateTask(ctx, session.TaskInput{
		Title: "needs a slot", Priority: model.PriorityMedium, DueDate: time.Now().Add(48 * time.Hour),
	})
	assert.Nil(err)

	synced, err := sess.SyncCalendar(ctx)
	assert.Nil(err)

	// only the incomplete, unlinked task was synced
	assert.Equal(1, synced)
	assert.Equal("evt-1", linked.CalendarEventID)
	assert.Empty(completed.CalendarEventID)
	assert.Equal("evt-2", plain.CalendarEventID)

	// and the new link was written back to its row
	assert.Equal("evt-2", store.rows[rowstore.Tasks][3][11])
}

func TestDeleteInfo(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, store, _, _ := getSession(assert)
	ctx := context.Background()

	entry, err := sess.CreateInfo(ctx, session.InfoInput{Title: "Insurance", Content: "12-3456"})
	assert.Nil(err)

	outcome, err := sess.DeleteInfo(ctx, entry.ID)
	assert.Nil(err)
	assert.Equal(session.OutcomeDeleted, outcome)
	assert.Empty(sess.Info)
	assert.Len(store.rows[rowstore.ImportantInfo], 1)

	_, err = sess.DeleteInfo(ctx, "does-not-exist")
	assert.Equal(session.ErrInfoNotFound, err)
}

func TestTasksByCategoryOrdersByPriority(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	sess, _, _, _ := getSession(assert)
	ctx := context.Background()

	due := time.Now().Add(time.Minute)

	for _, priority := range []string{model.PriorityLow, model.PriorityHigh, model.PriorityMedium} {
		_, err := sess.CreateTask(ctx, session.TaskInput{Title: priority, Priority: priority, DueDate: due})
		assert.Nil(err)
	}

	bucket := sess.TasksByCategory(model.CategoryIn3Days)
	assert.Len(bucket, 3)
	assert.Equal(model.PriorityHigh, bucket[0].Priority)
	assert.Equal(model.PriorityMedium, bucket[1].Priority)
	assert.Equal(model.PriorityLow, bucket[2].Priority)

	assert.Empty(sess.TasksByCategory(model.CategoryLongTerm))
}
