package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/model/customerr"
)

func validFields() expense.Fields {
	return expense.Fields{
		Amount:   "45",
		Category: "Food",
		Date:     "2024-06-01",
		Notes:    "Dinner with friends",
	}
}

func Test_OnCreate_ShouldAssignUniqueIDsAndStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	first, err := store.Create(ctx, validFields())
	require.NoError(t, err)
	second, err := store.Create(ctx, validFields())
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.Seq, first.Seq)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func Test_OnCreateWithUnknownCategory_ShouldFailAndStoreNothing(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	fields := validFields()
	fields.Category = "Groceries"
	_, err := store.Create(ctx, fields)

	var verr *customerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_OnCreateWithBadAmount_ShouldFail(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	for _, amount := range []string{"", "abc", "12.3.4"} {
		fields := validFields()
		fields.Amount = amount
		_, err := store.Create(ctx, fields)

		var verr *customerr.ValidationError
		require.ErrorAs(t, err, &verr, "amount %q", amount)
		assert.Equal(t, "amount", verr.Field)
	}
}

func Test_OnCreateWithNegativeAmount_ShouldFail(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	fields := validFields()
	fields.Amount = "-5"
	_, err := store.Create(ctx, fields)

	var verr *customerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}

func Test_OnCreateWithBadDate_ShouldFail(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	fields := validFields()
	fields.Date = "01.06.2024"
	_, err := store.Create(ctx, fields)

	var verr *customerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
}

func Test_OnUpdate_ShouldReplaceEveryFieldAndKeepID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	created, err := store.Create(ctx, validFields())
	require.NoError(t, err)

	updated, err := store.Update(ctx, created.ID, expense.Fields{
		Amount:   "85",
		Category: "Transport",
		Date:     "2024-06-02",
		Notes:    "Gas",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Seq, updated.Seq)
	assert.Equal(t, expense.Transport, updated.Category)
	assert.Equal(t, "85", updated.Amount.String())
	assert.Equal(t, "Gas", updated.Notes)
}

func Test_OnUpdateUnknownID_ShouldReturnNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	_, err := store.Update(ctx, "missing", validFields())

	var nferr *customerr.NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "missing", nferr.ID)
}

func Test_OnUpdateWithInvalidFields_ShouldKeepOldRecord(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	created, err := store.Create(ctx, validFields())
	require.NoError(t, err)

	fields := validFields()
	fields.Category = "Groceries"
	_, err = store.Update(ctx, created.ID, fields)
	require.Error(t, err)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, expense.Food, all[0].Category)
}

func Test_OnDelete_ShouldRemoveOnlyThatRecord(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	first, err := store.Create(ctx, validFields())
	require.NoError(t, err)
	second, err := store.Create(ctx, validFields())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, first.ID))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
}

func Test_OnDeleteUnknownID_ShouldReturnNotFoundAndRemoveNothing(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	created, err := store.Create(ctx, validFields())
	require.NoError(t, err)

	err = store.Delete(ctx, "missing")

	var nferr *customerr.NotFoundError
	require.ErrorAs(t, err, &nferr)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func Test_OnSeedSampleData_ShouldFillEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	require.NoError(t, SeedSampleData(ctx, store))
	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(sampleEntries))

	// Second seeding is a no-op on a non-empty store.
	require.NoError(t, SeedSampleData(ctx, store))
	all, err = store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(sampleEntries))
}
