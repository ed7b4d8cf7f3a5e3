// Package session owns the in-memory state of one signed-in user and keeps it
// in step with the remote row store, writing a full snapshot through to the
// local cache after every mutation. The in-memory model is the single writable
// copy for the life of the session; the stores are passive targets.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matt-steen/lifequest/pkg/cache"
	"github.com/matt-steen/lifequest/pkg/calendar"
	"github.com/matt-steen/lifequest/pkg/gamify"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/rowstore"
	"github.com/rs/zerolog/log"
)

// Outcome reports what a remote update or delete actually did. NotFound is not
// an error: callers treat it as success and local state advances regardless,
// but it is worth telling apart in logs.
type Outcome int

// Remote write outcomes.
const (
	OutcomeUpdated Outcome = iota
	OutcomeDeleted
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "not found"
	}
}

// Session holds one user's collections and the stores backing them.
type Session struct {
	userID string
	store  rowstore.Store
	cache  *cache.Cache
	bridge calendar.Bridge

	// lastID guards against two creates in the same millisecond
	lastID int64

	Tasks        []*model.Task
	Stats        model.UserStats
	Info         []*model.ImportantInfo
	Achievements []*model.Achievement

	// Offline is set when the last load came from the cache instead of the
	// remote store.
	Offline bool
}

// New creates a session for the given user. The bridge may be nil when
// calendar mirroring is disabled.
func New(userID string, store rowstore.Store, snapshots *cache.Cache, bridge calendar.Bridge) *Session {
	return &Session{
		userID:       userID,
		store:        store,
		cache:        snapshots,
		bridge:       bridge,
		Tasks:        []*model.Task{},
		Info:         []*model.ImportantInfo{},
		Achievements: gamify.Achievements(),
	}
}

// Load fetches tasks, stats and info concurrently. The three fetches are
// independent, but a failure of any one fails the whole load and the session
// falls back wholesale to the cached snapshot; partial merges would leave the
// model half remote, half stale.
func (s *Session) Load(ctx context.Context) error {
	var (
		tasks []*model.Task
		stats model.UserStats
		info  []*model.ImportantInfo

		taskErr, statsErr, infoErr error
	)

	var wg sync.WaitGroup

	wg.Add(3)

	go func() {
		defer wg.Done()

		tasks, taskErr = s.loadTasks(ctx)
	}()

	go func() {
		defer wg.Done()

		stats, statsErr = s.loadStats(ctx)
	}()

	go func() {
		defer wg.Done()

		info, infoErr = s.loadInfo(ctx)
	}()

	wg.Wait()

	for _, err := range []error{taskErr, statsErr, infoErr} {
		if err != nil {
			log.Warn().Err(err).Msg("remote load failed; falling back to cached snapshot")

			return s.loadFromCache(ctx)
		}
	}

	s.Tasks = tasks
	s.Stats = stats
	s.Info = info
	s.Offline = false

	return nil
}

func (s *Session) loadTasks(ctx context.Context) ([]*model.Task, error) {
	rows, err := s.store.Read(ctx, rowstore.Tasks)
	if err != nil {
		return nil, err
	}

	tasks := []*model.Task{}

	for i := 1; i < len(rows); i++ {
		task, err := model.TaskFromRow(rows[i])
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (s *Session) loadStats(ctx context.Context) (model.UserStats, error) {
	rows, err := s.store.Read(ctx, rowstore.UserStats)
	if err != nil {
		return model.UserStats{}, err
	}

	// the header row's name is unknown to the parser and drops out
	return model.StatsFromRows(rows), nil
}

func (s *Session) loadInfo(ctx context.Context) ([]*model.ImportantInfo, error) {
	rows, err := s.store.Read(ctx, rowstore.ImportantInfo)
	if err != nil {
		return nil, err
	}

	info := []*model.ImportantInfo{}

	for i := 1; i < len(rows); i++ {
		entry, err := model.InfoFromRow(rows[i])
		if err != nil {
			return nil, err
		}

		info = append(info, entry)
	}

	return info, nil
}

func (s *Session) loadFromCache(ctx context.Context) error {
	snapshot, err := s.cache.LoadSnapshot(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("error loading offline snapshot: %w", err)
	}

	s.Tasks = snapshot.Tasks
	s.Stats = snapshot.UserStats
	s.Info = snapshot.ImportantInfo
	s.Offline = true

	log.Info().Int("tasks", len(s.Tasks)).Msg("loaded state from offline snapshot")

	return nil
}

// saveSnapshot writes the full in-memory state through to the cache. This is
// the offline-recovery path, so it also runs after failed remote writes; a
// cache failure is logged but never fails the triggering action.
func (s *Session) saveSnapshot(ctx context.Context) {
	spreadsheetID := ""
	if sheets, ok := s.store.(*rowstore.SheetsStore); ok {
		spreadsheetID = sheets.SpreadsheetID()
	}

	snapshot := &cache.Snapshot{
		Tasks:         s.Tasks,
		UserStats:     s.Stats,
		ImportantInfo: s.Info,
		SpreadsheetID: spreadsheetID,
	}

	if err := s.cache.SaveSnapshot(ctx, s.userID, snapshot); err != nil {
		log.Warn().Err(err).Msg("error writing snapshot to local cache")
	}
}

// saveStats overwrites the five fixed stats rows, stamping the activity time.
func (s *Session) saveStats(ctx context.Context) error {
	s.Stats.LastActivityDate = time.Now()

	if err := s.store.WriteAt(ctx, rowstore.UserStats, 2, model.StatsRows(s.Stats)); err != nil {
		return fmt.Errorf("error saving user stats: %w", err)
	}

	return nil
}

// findRow scans the collection's id column for the first row after the header
// matching id, returning its 1-indexed row or 0 when absent.
func (s *Session) findRow(ctx context.Context, c rowstore.Collection, id string) (int, error) {
	rows, err := s.store.Read(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("error scanning %s for id %s: %w", c, id, err)
	}

	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > 0 && rows[i][0] == id {
			return i + 1, nil
		}
	}

	return 0, nil
}

// nextID returns a fresh time-based id, strictly increasing within the session.
func (s *Session) nextID() string {
	ms := time.Now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}

	s.lastID = ms

	return fmt.Sprintf("%d", ms)
}

// TasksByCategory returns the tasks in the given bucket, highest priority first.
func (s *Session) TasksByCategory(category string) []*model.Task {
	tasks := []*model.Task{}

	for _, task := range s.Tasks {
		if task.Category == category {
			tasks = append(tasks, task)
		}
	}

	order := map[string]int{model.PriorityHigh: 3, model.PriorityMedium: 2, model.PriorityLow: 1}

	sort.SliceStable(tasks, func(i, j int) bool {
		return order[tasks[i].Priority] > order[tasks[j].Priority]
	})

	return tasks
}

// DailyProgress is the completed fraction of today's tasks, 0 when there are none.
func (s *Session) DailyProgress() float64 {
	total := 0
	done := 0

	for _, task := range s.Tasks {
		if task.Category == model.CategoryToday {
			total++

			if task.IsCompleted {
				done++
			}
		}
	}

	if total == 0 {
		return 0
	}

	return float64(done) / float64(total)
}

// IsNotFound reports whether err is one of the local lookup misses.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrInfoNotFound)
}
