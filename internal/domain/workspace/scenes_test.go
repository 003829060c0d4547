package workspace_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkhq/inkwell/internal/domain/project"
	"github.com/inkhq/inkwell/internal/domain/scene"
	"github.com/inkhq/inkwell/internal/domain/workspace"
	"github.com/inkhq/inkwell/internal/gateway"
)

func TestCreateScene_AppendsToEnd(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", ""))
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).Return(nil)

	sc, err := w.CreateScene(context.Background(), "Chapter 2")
	require.NoError(t, err)
	require.NotEmpty(t, sc.ID)
	require.Equal(t, "Chapter 2", sc.Title)
	require.Equal(t, 0, sc.WordCount)
	require.Empty(t, sc.Content)

	require.Len(t, proj.Scenes, 2)
	require.Equal(t, "Chapter 1", proj.Scenes[0].Title)
	require.Equal(t, sc.ID, proj.Scenes[1].ID)
	require.Equal(t, 0, proj.TotalWords)
}

func TestCreateScene_PersistFailureRollsBack(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", ""))
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).
		Return(gateway.ErrUnavailable)

	_, err := w.CreateScene(context.Background(), "Chapter 2")

	var perr *workspace.PersistError
	require.ErrorAs(t, err, &perr)
	require.ErrorIs(t, err, gateway.ErrUnavailable)
	require.Len(t, proj.Scenes, 1)
}

func TestRenameScene(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", "<p>text</p>"))
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).Return(nil)

	require.NoError(t, w.RenameScene(context.Background(), "s1", "Opening"))
	require.Equal(t, "Opening", proj.Scenes[0].Title)
	require.Equal(t, "<p>text</p>", proj.Scenes[0].Content)

	require.ErrorIs(t, w.RenameScene(context.Background(), "nope", "x"), workspace.ErrSceneNotFound)
}

func TestRenameScene_EmptyTitleIsNoOp(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", ""))

	require.NoError(t, w.RenameScene(context.Background(), "s1", "   "))
	require.Equal(t, "Chapter 1", proj.Scenes[0].Title)
	gw.AssertNotCalled(t, "ReplaceProjectFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateContent_RecomputesCounts(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw,
		mkScene("s1", "Chapter 1", "<p>one two</p>"),
		mkScene("s2", "Chapter 2", ""),
	)
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).Return(nil)

	total, err := w.UpdateContent(context.Background(), "s2", "<p>three four five</p>")
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Equal(t, 3, proj.Scenes[1].WordCount)
	require.Equal(t, project.SumWords(proj.Scenes), proj.TotalWords)
}

func TestUpdateContent_Idempotent(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", ""))
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).Return(nil)

	ctx := context.Background()
	first, err := w.UpdateContent(ctx, "s1", "<p>same words</p>")
	require.NoError(t, err)

	second, err := w.UpdateContent(ctx, "s1", "<p>same words</p>")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 2, proj.TotalWords)

	// The redundant call issues no second write.
	gw.AssertNumberOfCalls(t, "ReplaceProjectFields", 1)
}

func TestUpdateContent_PersistFailureRollsBack(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", "<p>one two</p>"))
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).
		Return(gateway.ErrUnavailable)

	_, err := w.UpdateContent(context.Background(), "s1", "<p>replacement</p>")
	require.Error(t, err)
	require.ErrorIs(t, err, gateway.ErrUnavailable)

	require.Equal(t, "<p>one two</p>", proj.Scenes[0].Content)
	require.Equal(t, 2, proj.Scenes[0].WordCount)
	require.Equal(t, 2, proj.TotalWords)
}

func TestReorder_PermutationOnly(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw,
		mkScene("s1", "Chapter 1", "<p>alpha</p>"),
		mkScene("s2", "Chapter 2", "<p>beta gamma</p>"),
		mkScene("s3", "Chapter 3", ""),
	)
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).Return(nil)

	ctx := context.Background()
	require.NoError(t, w.Reorder(ctx, []string{"s3", "s1", "s2"}))

	require.Equal(t, "s3", proj.Scenes[0].ID)
	require.Equal(t, "s1", proj.Scenes[1].ID)
	require.Equal(t, "s2", proj.Scenes[2].ID)

	// Content and counts are untouched by reordering alone.
	require.Equal(t, "<p>beta gamma</p>", proj.Scenes[2].Content)
	require.Equal(t, 2, proj.Scenes[2].WordCount)
	require.Equal(t, 3, proj.TotalWords)
}

func TestReorder_RejectsNonPermutations(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	openProject(t, w, gw, mkScene("s1", "Chapter 1", ""), mkScene("s2", "Chapter 2", ""))

	ctx := context.Background()
	require.ErrorIs(t, w.Reorder(ctx, []string{"s1"}), workspace.ErrInvalidOrder)
	require.ErrorIs(t, w.Reorder(ctx, []string{"s1", "s9"}), workspace.ErrInvalidOrder)
	require.ErrorIs(t, w.Reorder(ctx, []string{"s1", "s1"}), workspace.ErrInvalidOrder)
	require.ErrorIs(t, w.Reorder(ctx, []string{"s1", "s2", "s3"}), workspace.ErrInvalidOrder)
}

func TestDeleteScene_ReassignsActive(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw,
		mkScene("s1", "Chapter 1", "<p>one</p>"),
		mkScene("s2", "Chapter 2", "<p>two three</p>"),
	)
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).Return(nil)

	require.Equal(t, "s1", w.ActiveSceneID())
	require.NoError(t, w.DeleteScene(context.Background(), "s1"))

	require.Len(t, proj.Scenes, 1)
	require.Equal(t, "s2", w.ActiveSceneID())
	require.Equal(t, 2, proj.TotalWords)
}

func TestDeleteScene_RefusesLastScene(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", "<p>keep me</p>"))

	err := w.DeleteScene(context.Background(), "s1")
	require.ErrorIs(t, err, workspace.ErrLastScene)
	require.Len(t, proj.Scenes, 1)
	gw.AssertNotCalled(t, "ReplaceProjectFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteScene_PersistFailureRollsBack(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw,
		mkScene("s1", "Chapter 1", "<p>one</p>"),
		mkScene("s2", "Chapter 2", "<p>two three</p>"),
	)
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).
		Return(gateway.ErrUnavailable)

	err := w.DeleteScene(context.Background(), "s1")
	require.True(t, errors.Is(err, gateway.ErrUnavailable))

	require.Len(t, proj.Scenes, 2)
	require.Equal(t, 3, proj.TotalWords)
	require.Equal(t, "s1", w.ActiveSceneID())
}

func TestSceneRefs_ListsManuscriptOrderWithoutContent(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	openProject(t, w, gw,
		mkScene("s1", "Chapter 1", "<p>one two</p>"),
		mkScene("s2", "Chapter 2", "<p>three</p>"),
	)

	refs, err := w.SceneRefs()
	require.NoError(t, err)
	require.Equal(t, []scene.Ref{
		{ID: "s1", Title: "Chapter 1", WordCount: 2},
		{ID: "s2", Title: "Chapter 2", WordCount: 1},
	}, refs)
}

func TestSelectScene(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	openProject(t, w, gw, mkScene("s1", "Chapter 1", ""), mkScene("s2", "Chapter 2", ""))

	require.NoError(t, w.SelectScene("s2"))
	require.Equal(t, "s2", w.ActiveSceneID())
	require.ErrorIs(t, w.SelectScene("nope"), workspace.ErrSceneNotFound)
}

func TestTotalWordsInvariantAcrossMutations(t *testing.T) {
	w, gw, _ := newTestWorkspace(t)
	proj := openProject(t, w, gw, mkScene("s1", "Chapter 1", ""))
	gw.On("ReplaceProjectFields", mock.Anything, testUser, "p1", mock.Anything).Return(nil)

	ctx := context.Background()
	check := func() {
		require.Equal(t, project.SumWords(proj.Scenes), proj.TotalWords)
	}

	sc2, err := w.CreateScene(ctx, "Chapter 2")
	require.NoError(t, err)
	check()

	_, err = w.UpdateContent(ctx, "s1", "<p>a b c</p>")
	require.NoError(t, err)
	check()

	_, err = w.UpdateContent(ctx, sc2.ID, "<p>d e</p>")
	require.NoError(t, err)
	check()

	_, err = w.UpdateContent(ctx, "s1", "<p>a</p>")
	require.NoError(t, err)
	check()

	require.NoError(t, w.DeleteScene(ctx, sc2.ID))
	check()
}
