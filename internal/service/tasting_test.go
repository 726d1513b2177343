package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
)

func TestLogPourDeductsFromBottle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "user@example.com")
	coll := env.createCollection(t, user, "Bar")
	whiskey := env.createWhiskey(t, "Glenfoo 12")
	bottle := env.createBottle(t, user, whiskey.ID, coll.ID)

	sess, err := env.tastings.CreateSession(ctx, user, &SessionInput{Title: "Friday flight"})
	require.NoError(t, err)

	note, err := env.tastings.LogPour(ctx, user, sess.ID, &PourInput{
		BottleID:     bottle.ID,
		Rating:       4,
		Notes:        "honeyed, light smoke",
		PourAmountMl: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, note.OrderIndex)
	assert.Equal(t, whiskey.ID, note.WhiskeyID)

	got, err := env.bottles.Get(ctx, user, bottle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCapacityMl-30, got.CurrentVolumeMl)
	assert.Equal(t, domain.BottleOpened, got.Status)
}

func TestLogPourClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "user@example.com")
	coll := env.createCollection(t, user, "Bar")
	whiskey := env.createWhiskey(t, "Glenfoo 12")
	bottle := env.createBottle(t, user, whiskey.ID, coll.ID)

	sess, err := env.tastings.CreateSession(ctx, user, &SessionInput{Title: "Big pours"})
	require.NoError(t, err)

	// Pour more than the bottle holds.
	_, err = env.tastings.LogPour(ctx, user, sess.ID, &PourInput{
		BottleID:     bottle.ID,
		Rating:       5,
		Notes:        "generous",
		PourAmountMl: domain.DefaultCapacityMl + 100,
	})
	require.NoError(t, err)

	got, err := env.bottles.Get(ctx, user, bottle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.CurrentVolumeMl)
	assert.Equal(t, domain.BottleEmpty, got.Status)
}

func TestLogPourOrderIndexIncrements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "user@example.com")
	whiskey := env.createWhiskey(t, "Glenfoo 12")

	sess, err := env.tastings.CreateSession(ctx, user, &SessionInput{Title: "Flight"})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		note, err := env.tastings.LogPour(ctx, user, sess.ID, &PourInput{
			WhiskeyID: whiskey.ID,
			Rating:    3,
			Notes:     "fine",
		})
		require.NoError(t, err)
		assert.Equal(t, i, note.OrderIndex)
	}
}

func TestLogPourValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "user@example.com")
	whiskey := env.createWhiskey(t, "Glenfoo 12")
	sess, err := env.tastings.CreateSession(ctx, user, &SessionInput{Title: "Flight"})
	require.NoError(t, err)

	t.Run("neither bottle nor whiskey", func(t *testing.T) {
		_, err := env.tastings.LogPour(ctx, user, sess.ID, &PourInput{
			Rating: 3,
			Notes:  "mystery dram",
		})
		require.Error(t, err)
		var derr *domainerrors.Error
		require.True(t, domainerrors.As(err, &derr))
		assert.Equal(t, domainerrors.CodeValidation, derr.Code)
		details, ok := derr.Details.(map[string]string)
		require.True(t, ok)
		assert.Contains(t, details, "bottle_id")
		assert.Contains(t, details, "whiskey_id")
	})

	t.Run("notes required", func(t *testing.T) {
		_, err := env.tastings.LogPour(ctx, user, sess.ID, &PourInput{
			WhiskeyID: whiskey.ID,
			Rating:    3,
			Notes:     "   ",
		})
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation), "got %v", err)
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := env.tastings.LogPour(ctx, user, sess.ID, &PourInput{
			WhiskeyID: whiskey.ID,
			Rating:    6,
			Notes:     "too good",
		})
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation), "got %v", err)
	})
}

func TestLogPourBottleOutsideCollections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	bobColl := env.createCollection(t, bob, "Bob Bar")
	whiskey := env.createWhiskey(t, "Glenfoo 12")
	bobBottle := env.createBottle(t, bob, whiskey.ID, bobColl.ID)

	sess, err := env.tastings.CreateSession(ctx, alice, &SessionInput{Title: "Flight"})
	require.NoError(t, err)

	// Someone else's bottle fails as a field error, not an access error.
	_, err = env.tastings.LogPour(ctx, alice, sess.ID, &PourInput{
		BottleID:     bobBottle.ID,
		Rating:       4,
		Notes:        "not mine",
		PourAmountMl: 30,
	})
	require.Error(t, err)
	var derr *domainerrors.Error
	require.True(t, domainerrors.As(err, &derr))
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)

	// Bob's bottle is untouched.
	got, err := env.bottles.Get(ctx, bob, bobBottle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCapacityMl, got.CurrentVolumeMl)
}

func TestSessionsPrivateToCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	whiskey := env.createWhiskey(t, "Glenfoo 12")

	sess, err := env.tastings.CreateSession(ctx, alice, &SessionInput{Title: "Private"})
	require.NoError(t, err)

	_, err = env.tastings.GetSession(ctx, bob, sess.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "got %v", err)

	_, err = env.tastings.LogPour(ctx, bob, sess.ID, &PourInput{
		WhiskeyID: whiskey.ID,
		Rating:    1,
		Notes:     "intrusion",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "got %v", err)

	sessions, err := env.tastings.ListSessions(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestGetSessionWithNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "user@example.com")
	whiskey := env.createWhiskey(t, "Glenfoo 12")
	sess, err := env.tastings.CreateSession(ctx, user, &SessionInput{Title: "Flight"})
	require.NoError(t, err)

	for range 2 {
		_, err := env.tastings.LogPour(ctx, user, sess.ID, &PourInput{
			WhiskeyID: whiskey.ID,
			Rating:    4,
			Notes:     "nice",
		})
		require.NoError(t, err)
	}

	detail, err := env.tastings.GetSession(ctx, user, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, detail.Session.ID)
	require.Len(t, detail.Notes, 2)
	assert.Equal(t, 1, detail.Notes[0].OrderIndex)
	assert.Equal(t, 2, detail.Notes[1].OrderIndex)
}
