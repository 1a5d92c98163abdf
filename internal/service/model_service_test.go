package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func addCompletedModel(state *fakeState, id, userId, prompt string, age time.Duration) {
	state.models[id] = &entity.GeneratedModel{
		Id:          id,
		UserId:      userId,
		ServiceType: entity.ServiceTextTo3DPreview,
		ModelUrl:    strPtr("https://assets.example.com/" + id + ".glb"),
		Prompt:      strPtr(prompt),
		Status:      entity.ModelCompleted,
		CreatedAt:   time.Now().Add(-age),
	}
}

func TestSaveCreatesAndUpdatesByTaskId(t *testing.T) {
	state := newFakeState()
	svc := NewModelService(newFakeFactory(state), nopLogger{})
	ctx := context.Background()

	res, err := svc.Save(ctx, "user-1", &dto.SaveModelRequest{
		TaskId:      "task-1",
		ServiceType: entity.ServiceTextTo3DPreview,
		Prompt:      strPtr("a red car"),
		CreditsCost: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", res.Id)
	assert.Equal(t, string(entity.ModelPending), res.Status)

	// Saving the same task again refreshes the record.
	res, err = svc.Save(ctx, "user-1", &dto.SaveModelRequest{
		TaskId:      "task-1",
		ServiceType: entity.ServiceTextTo3DPreview,
		ModelUrl:    strPtr("https://assets.example.com/task-1.glb"),
		Prompt:      strPtr("a red car"),
		CreditsCost: 5,
		Status:      string(entity.ModelCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ModelCompleted), res.Status)
	assert.Len(t, state.models, 1)
}

func TestSaveRejectsForeignTaskId(t *testing.T) {
	state := newFakeState()
	svc := NewModelService(newFakeFactory(state), nopLogger{})
	ctx := context.Background()

	_, err := svc.Save(ctx, "user-1", &dto.SaveModelRequest{
		TaskId:      "task-1",
		ServiceType: entity.ServiceTextTo3DPreview,
	})
	require.NoError(t, err)

	_, err = svc.Save(ctx, "user-2", &dto.SaveModelRequest{
		TaskId:      "task-1",
		ServiceType: entity.ServiceTextTo3DPreview,
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	state := newFakeState()
	addCompletedModel(state, "task-1", "user-1", "a red car", 0)
	svc := NewModelService(newFakeFactory(state), nopLogger{})
	ctx := context.Background()

	err := svc.Delete(ctx, "user-2", "task-1")
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)

	require.NoError(t, svc.Delete(ctx, "user-1", "task-1"))
	assert.Empty(t, state.models)
}

func TestRateOwnedModel(t *testing.T) {
	state := newFakeState()
	addCompletedModel(state, "task-1", "user-1", "a red car", 0)
	svc := NewModelService(newFakeFactory(state), nopLogger{})
	ctx := context.Background()

	res, err := svc.Rate(ctx, "user-1", "task-1", &dto.RatingRequest{
		Rating:  4,
		Comment: strPtr("nice topology"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, *res.Rating)

	_, err = svc.Rate(ctx, "user-2", "task-1", &dto.RatingRequest{Rating: 1})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestReuseCopiesCompletedModel(t *testing.T) {
	state := newFakeState()
	addCompletedModel(state, "task-1", "user-1", "a red car", 0)
	svc := NewModelService(newFakeFactory(state), nopLogger{})
	ctx := context.Background()

	res, err := svc.Reuse(ctx, "user-2", &dto.ReuseModelRequest{
		OriginalModelId: "task-1",
		NewPrompt:       strPtr("my red car"),
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", res.OriginalModelId)
	assert.Equal(t, "user-2", res.ReusedModel.UserId)
	assert.Equal(t, 0, res.ReusedModel.CreditsCost)
	assert.Equal(t, string(entity.ModelCompleted), res.ReusedModel.Status)
	assert.Equal(t, "my red car", *res.ReusedModel.Prompt)

	// Reusing the same url+prompt pair again is a conflict.
	_, err = svc.Reuse(ctx, "user-2", &dto.ReuseModelRequest{
		OriginalModelId: "task-1",
		NewPrompt:       strPtr("my red car"),
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)
}

func TestReuseRequiresCompletedOriginal(t *testing.T) {
	state := newFakeState()
	state.models["task-1"] = &entity.GeneratedModel{
		Id:     "task-1",
		UserId: "user-1",
		Status: entity.ModelPending,
	}
	svc := NewModelService(newFakeFactory(state), nopLogger{})

	_, err := svc.Reuse(context.Background(), "user-2", &dto.ReuseModelRequest{
		OriginalModelId: "task-1",
	})
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestSimilarRanksByCombinedScore(t *testing.T) {
	state := newFakeState()
	addCompletedModel(state, "task-1", "user-1", "a red sports car", time.Hour)
	addCompletedModel(state, "task-2", "user-1", "a red car", 2*time.Hour)
	addCompletedModel(state, "task-3", "user-1", "a blue whale", 3*time.Hour)
	addCompletedModel(state, "task-x", "user-2", "a red car", 0)
	svc := NewModelService(newFakeFactory(state), nopLogger{})

	res, err := svc.Similar(context.Background(), "user-1", &dto.SimilarSearchRequest{
		Prompt: "a red car",
	})
	require.NoError(t, err)

	// Only the caller's three models are scored; user-2's exact match is
	// invisible.
	assert.Equal(t, 3, res.TotalChecked)
	assert.True(t, res.ExactMatch)
	assert.Equal(t, 0.3, res.Threshold)

	// The whale falls below the default threshold.
	require.Len(t, res.SimilarModels, 2)
	assert.Equal(t, "task-2", res.SimilarModels[0].Id)
	assert.Equal(t, 1.0, res.SimilarModels[0].Similarity)
	assert.True(t, res.SimilarModels[0].IsOwnModel)
	assert.Equal(t, "task-1", res.SimilarModels[1].Id)
	assert.True(t, res.SimilarModels[1].IsOwnModel)
	assert.Greater(t, res.SimilarModels[0].Similarity, res.SimilarModels[1].Similarity)
}

func TestSimilarOnlySearchesOwnModels(t *testing.T) {
	state := newFakeState()
	addCompletedModel(state, "task-x", "user-2", "a red car", 0)
	svc := NewModelService(newFakeFactory(state), nopLogger{})

	res, err := svc.Similar(context.Background(), "user-1", &dto.SimilarSearchRequest{
		Prompt: "a red car",
	})
	require.NoError(t, err)

	assert.Empty(t, res.SimilarModels)
	assert.Equal(t, 0, res.TotalChecked)
	assert.False(t, res.ExactMatch)
}

func TestSimilarExactMatchReflectsReturnedRows(t *testing.T) {
	state := newFakeState()
	// Scores 0.97 against the search prompt: above the exact-match bar but
	// below a 0.99 caller threshold.
	addCompletedModel(state, "task-1", "user-1", "a shiny red sports car!", 0)
	svc := NewModelService(newFakeFactory(state), nopLogger{})
	ctx := context.Background()

	threshold := 0.99
	res, err := svc.Similar(ctx, "user-1", &dto.SimilarSearchRequest{
		Prompt:    "a shiny red sports car.",
		Threshold: &threshold,
	})
	require.NoError(t, err)
	assert.Empty(t, res.SimilarModels)
	assert.False(t, res.ExactMatch)

	// At the default threshold the same candidate comes back and counts.
	res, err = svc.Similar(ctx, "user-1", &dto.SimilarSearchRequest{
		Prompt: "a shiny red sports car.",
	})
	require.NoError(t, err)
	require.Len(t, res.SimilarModels, 1)
	assert.True(t, res.ExactMatch)
}

func TestSimilarScansAllCompletedModels(t *testing.T) {
	state := newFakeState()
	for i := 0; i < 120; i++ {
		addCompletedModel(state, "task-"+strconv.Itoa(i), "user-1", "a red car "+strconv.Itoa(i), time.Duration(i)*time.Minute)
	}
	svc := NewModelService(newFakeFactory(state), nopLogger{})

	res, err := svc.Similar(context.Background(), "user-1", &dto.SimilarSearchRequest{
		Prompt: "a red car",
	})
	require.NoError(t, err)
	assert.Equal(t, 120, res.TotalChecked)
	assert.Len(t, res.SimilarModels, defaultSimilarLimit)
}

func TestSimilarRespectsThresholdAndLimit(t *testing.T) {
	state := newFakeState()
	addCompletedModel(state, "task-1", "user-1", "a red sports car", time.Hour)
	addCompletedModel(state, "task-2", "user-1", "a red car", 2*time.Hour)
	svc := NewModelService(newFakeFactory(state), nopLogger{})

	threshold := 0.99
	res, err := svc.Similar(context.Background(), "user-1", &dto.SimilarSearchRequest{
		Prompt:    "a red car",
		Threshold: &threshold,
	})
	require.NoError(t, err)
	require.Len(t, res.SimilarModels, 1)
	assert.Equal(t, "task-2", res.SimilarModels[0].Id)

	limit := 1
	res, err = svc.Similar(context.Background(), "user-1", &dto.SimilarSearchRequest{
		Prompt: "a red car",
		Limit:  &limit,
	})
	require.NoError(t, err)
	assert.Len(t, res.SimilarModels, 1)
}

func TestListCapsLimitAndReportsTotal(t *testing.T) {
	state := newFakeState()
	for i := 0; i < 3; i++ {
		addCompletedModel(state, string(rune('a'+i)), "user-1", "prompt", time.Duration(i)*time.Hour)
	}
	addCompletedModel(state, "other", "user-2", "prompt", 0)
	svc := NewModelService(newFakeFactory(state), nopLogger{})

	res, err := svc.List(context.Background(), "user-1", 2)
	require.NoError(t, err)
	assert.Len(t, res.Models, 2)
	assert.Equal(t, int64(3), res.Total)
	// Newest first.
	assert.Equal(t, "a", res.Models[0].Id)
}
