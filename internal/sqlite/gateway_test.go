package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/domain/session"
	"github.com/inkhq/inkwell/internal/gateway"
)

func newTestProject(id, name string, createdAt time.Time) *project.Project {
	return &project.Project{
		ID:   id,
		Name: name,
		Scenes: []scene.Scene{
			{ID: id + "-s1", Title: "Chapter 1", Content: "hello world", WordCount: 2, CreatedAt: createdAt},
		},
		Sessions:     []session.Session{},
		TotalWords:   2,
		TotalTime:    0,
		CreatedAt:    createdAt,
		LastModified: createdAt,
	}
}

func TestGateway_CreateAndGet(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()
	createdAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	want := newTestProject("p1", "My Novel", createdAt)
	require.NoError(t, gw.CreateProject(ctx, "user1", want))

	got, err := gw.GetProject(ctx, "user1", "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)
	require.Equal(t, "My Novel", got.Name)
	require.Len(t, got.Scenes, 1)
	require.Equal(t, "hello world", got.Scenes[0].Content)
	require.Equal(t, 2, got.TotalWords)
	require.True(t, got.CreatedAt.Equal(createdAt))
	require.True(t, got.LastModified.Equal(createdAt))
}

func TestGateway_GetNotFound(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	_, err := gw.GetProject(ctx, "user1", "missing")
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestGateway_GetEnforcesOwnership(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	proj := newTestProject("p1", "Private", time.Now().UTC())
	require.NoError(t, gw.CreateProject(ctx, "user1", proj))

	_, err := gw.GetProject(ctx, "user2", "p1")
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestGateway_ListOrdersByLastModified(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	older := newTestProject("p1", "Older", base)
	newer := newTestProject("p2", "Newer", base.Add(time.Hour))
	require.NoError(t, gw.CreateProject(ctx, "user1", older))
	require.NoError(t, gw.CreateProject(ctx, "user1", newer))

	projects, err := gw.ListProjects(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "p2", projects[0].ID)
	require.Equal(t, "p1", projects[1].ID)
}

func TestGateway_ReplaceProjectFieldsPartial(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()
	createdAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	proj := newTestProject("p1", "My Novel", createdAt)
	require.NoError(t, gw.CreateProject(ctx, "user1", proj))

	// Replace scenes and totals; name stays untouched.
	scenes := []scene.Scene{
		{ID: "s1", Title: "Chapter 1", Content: "one two three", WordCount: 3, CreatedAt: createdAt},
		{ID: "s2", Title: "Chapter 2", Content: "", WordCount: 0, CreatedAt: createdAt},
	}
	words := 3
	modified := createdAt.Add(time.Minute)
	err := gw.ReplaceProjectFields(ctx, "user1", "p1", project.Fields{
		Scenes:       scenes,
		TotalWords:   &words,
		LastModified: &modified,
	})
	require.NoError(t, err)

	got, err := gw.GetProject(ctx, "user1", "p1")
	require.NoError(t, err)
	require.Equal(t, "My Novel", got.Name)
	require.Len(t, got.Scenes, 2)
	require.Equal(t, "Chapter 2", got.Scenes[1].Title)
	require.Equal(t, 3, got.TotalWords)
	require.True(t, got.LastModified.Equal(modified))
}

func TestGateway_ReplaceProjectFieldsSessions(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()
	createdAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	proj := newTestProject("p1", "My Novel", createdAt)
	require.NoError(t, gw.CreateProject(ctx, "user1", proj))

	sessions := []session.Session{
		{
			ID:           "w1",
			StartTime:    createdAt,
			Duration:     90_000,
			WordsWritten: 12,
			Snapshot:     session.Snapshot{SceneID: "p1-s1", Content: "hello world again"},
		},
	}
	total := int64(90_000)
	err := gw.ReplaceProjectFields(ctx, "user1", "p1", project.Fields{
		Sessions:  sessions,
		TotalTime: &total,
	})
	require.NoError(t, err)

	got, err := gw.GetProject(ctx, "user1", "p1")
	require.NoError(t, err)
	require.Len(t, got.Sessions, 1)
	require.Equal(t, int64(90_000), got.Sessions[0].Duration)
	require.Equal(t, "hello world again", got.Sessions[0].Snapshot.Content)
	require.True(t, got.Sessions[0].StartTime.Equal(createdAt))
	require.Equal(t, int64(90_000), got.TotalTime)
}

func TestGateway_ReplaceProjectFieldsNotFound(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	name := "Renamed"
	err := gw.ReplaceProjectFields(ctx, "user1", "missing", project.Fields{Name: &name})
	require.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestGateway_ReplaceProjectFieldsEmpty(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	// An all-nil field set is a no-op, not an error.
	err := gw.ReplaceProjectFields(ctx, "user1", "missing", project.Fields{})
	require.NoError(t, err)
}

func TestGateway_Delete(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	proj := newTestProject("p1", "Doomed", time.Now().UTC())
	require.NoError(t, gw.CreateProject(ctx, "user1", proj))

	require.NoError(t, gw.DeleteProject(ctx, "user1", "p1"))
	_, err := gw.GetProject(ctx, "user1", "p1")
	require.ErrorIs(t, err, gateway.ErrNotFound)

	require.ErrorIs(t, gw.DeleteProject(ctx, "user1", "p1"), gateway.ErrNotFound)
}

func TestGateway_SubscribeDeliversInitialSnapshot(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	proj := newTestProject("p1", "Existing", time.Now().UTC())
	require.NoError(t, gw.CreateProject(ctx, "user1", proj))

	var snapshots [][]project.Project
	cancel, err := gw.SubscribeProjects(ctx, "user1", func(projects []project.Project) {
		snapshots = append(snapshots, projects)
	})
	require.NoError(t, err)
	defer cancel()

	require.Len(t, snapshots, 1)
	require.Len(t, snapshots[0], 1)
	require.Equal(t, "p1", snapshots[0][0].ID)
}

func TestGateway_SubscribeNotifiesOnWrites(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	var snapshots [][]project.Project
	cancel, err := gw.SubscribeProjects(ctx, "user1", func(projects []project.Project) {
		snapshots = append(snapshots, projects)
	})
	require.NoError(t, err)

	proj := newTestProject("p1", "Fresh", time.Now().UTC())
	require.NoError(t, gw.CreateProject(ctx, "user1", proj))
	require.NoError(t, gw.DeleteProject(ctx, "user1", "p1"))

	// initial empty snapshot + create + delete
	require.Len(t, snapshots, 3)
	require.Empty(t, snapshots[0])
	require.Len(t, snapshots[1], 1)
	require.Empty(t, snapshots[2])

	cancel()
	proj2 := newTestProject("p2", "After Cancel", time.Now().UTC())
	require.NoError(t, gw.CreateProject(ctx, "user1", proj2))
	require.Len(t, snapshots, 3, "cancelled subscriber must not be notified")
}

func TestGateway_SubscribeIsolatesUsers(t *testing.T) {
	gw := NewGateway(NewTestDB(t))
	ctx := context.Background()

	var notified int
	cancel, err := gw.SubscribeProjects(ctx, "user1", func([]project.Project) {
		notified++
	})
	require.NoError(t, err)
	defer cancel()
	require.Equal(t, 1, notified)

	other := newTestProject("p1", "Other User", time.Now().UTC())
	require.NoError(t, gw.CreateProject(ctx, "user2", other))
	require.Equal(t, 1, notified, "writes by other users must not notify")
}
