package reconcile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_EmptyToEmpty(t *testing.T) {
	plan, err := Compute(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.CreateIdx)
	assert.Empty(t, plan.UpdateIdx)
	assert.Empty(t, plan.DeleteIDs)
}

func TestCompute_AllCreates(t *testing.T) {
	plan, err := Compute(nil, []*uuid.UUID{nil, nil, nil})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, plan.CreateIdx)
	assert.Empty(t, plan.UpdateIdx)
	assert.Empty(t, plan.DeleteIDs)
}

func TestCompute_MixedCreateUpdateDelete(t *testing.T) {
	kept := uuid.New()
	dropped := uuid.New()

	plan, err := Compute([]uuid.UUID{kept, dropped}, []*uuid.UUID{nil, &kept})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, plan.CreateIdx)
	assert.Equal(t, []int{1}, plan.UpdateIdx)
	assert.Equal(t, []uuid.UUID{dropped}, plan.DeleteIDs)
}

func TestCompute_ResubmitUnchangedIsNoOp(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	plan, err := Compute([]uuid.UUID{a, b}, []*uuid.UUID{&a, &b})
	require.NoError(t, err)
	assert.Empty(t, plan.CreateIdx)
	assert.Equal(t, []int{0, 1}, plan.UpdateIdx)
	assert.Empty(t, plan.DeleteIDs)
}

func TestCompute_EmptySubmissionDeletesEverything(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	plan, err := Compute([]uuid.UUID{a, b}, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.CreateIdx)
	assert.Empty(t, plan.UpdateIdx)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, plan.DeleteIDs)
}

func TestCompute_UnknownIDRejectsSubmission(t *testing.T) {
	stranger := uuid.New()

	plan, err := Compute([]uuid.UUID{uuid.New()}, []*uuid.UUID{&stranger})
	require.Error(t, err)
	assert.Nil(t, plan)

	var unknown *ErrUnknownID
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, stranger, unknown.ID)
}
