package service

import (
	"context"
	"testing"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CurrentUserRegistersOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.users.CurrentUser(ctx, Identity{TelegramID: 42, Username: "angel", FullName: "Angelin A"})
	require.NoError(t, err)
	assert.False(t, first.HasRole())

	second, err := env.users.CurrentUser(ctx, Identity{TelegramID: 42, Username: "angel_new", FullName: "Someone Else"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "angel_new", second.Username)
	assert.Equal(t, "Angelin A", second.FullName, "a name set once is not overwritten by the chat profile")
	assert.Len(t, env.db.users, 1)
}

func TestUserService_ChooseRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CurrentUser(ctx, Identity{TelegramID: 7})
	require.NoError(t, err)

	_, err = env.users.ChooseRole(ctx, 7, "parent")
	assert.ErrorIs(t, err, model.ErrInvalidAccountType)

	user, err := env.users.ChooseRole(ctx, 7, model.AccountTypeStudent)
	require.NoError(t, err)
	assert.True(t, user.IsStudent())

	_, err = env.users.ChooseRole(ctx, 8, model.AccountTypeStudent)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserService_SwitchAccountClearsRoleOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, college := env.newCollege(t, "SRM", "SRM Institute", "B.Tech CSE")

	user, err := env.users.SwitchAccount(ctx, admin.TelegramID)
	require.NoError(t, err)

	assert.False(t, user.HasRole())
	require.NotNil(t, user.CollegeID)
	assert.Equal(t, college.ID, *user.CollegeID)

	stored, err := env.users.GetByTelegramID(ctx, admin.TelegramID)
	require.NoError(t, err)
	assert.Nil(t, stored.AccountType)
}

func TestUserService_UpdateCurrentUserEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CurrentUser(ctx, Identity{TelegramID: 9})
	require.NoError(t, err)

	_, err = env.users.UpdateCurrentUser(ctx, 9, model.UserUpdate{Email: ptr("not-an-email")})
	assert.True(t, validation.IsValidationError(err))

	user, err := env.users.UpdateCurrentUser(ctx, 9, model.UserUpdate{Email: ptr("  Priya@Example.COM ")})
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", user.Email)
}

func TestUserService_EmailOfAnotherAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "PSG", "PSG Tech", "B.E. CSE")

	victim := env.newStudent(t, "victim@mail.com")
	app := env.apply(t, victim, "PSG", "B.E. CSE")
	slot := env.newSlot(t, admin, examDay, 10)
	_, err := env.slots.BookForApplication(ctx, victim, app.ID, slot.ID)
	require.NoError(t, err)

	intruder := env.newUser(t, model.AccountTypeStudent, "intruder@mail.com")

	_, err = env.users.UpdateCurrentUser(ctx, intruder.TelegramID, model.UserUpdate{Email: ptr("Victim@Mail.com")})
	assert.ErrorIs(t, err, model.ErrEmailTaken)

	stored, err := env.users.GetByTelegramID(ctx, intruder.TelegramID)
	require.NoError(t, err)
	assert.Equal(t, "intruder@mail.com", stored.Email)

	// keeping your own email is not a conflict
	_, err = env.users.UpdateCurrentUser(ctx, victim.TelegramID, model.UserUpdate{Email: ptr("victim@mail.com")})
	require.NoError(t, err)
}

func TestUserService_RecordsStayWithTheAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin, _ := env.newCollege(t, "PSG", "PSG Tech", "B.E. CSE")

	victim := env.newStudent(t, "victim@mail.com")
	app := env.apply(t, victim, "PSG", "B.E. CSE")
	slot := env.newSlot(t, admin, examDay, 10)
	_, err := env.slots.BookForApplication(ctx, victim, app.ID, slot.ID)
	require.NoError(t, err)

	// the victim moves to a new address, freeing the old one
	victim, err = env.users.UpdateCurrentUser(ctx, victim.TelegramID, model.UserUpdate{Email: ptr("victim@new.com")})
	require.NoError(t, err)

	intruder := env.newUser(t, model.AccountTypeStudent, "victim@mail.com")

	apps, err := env.applications.MyApplications(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, apps)

	_, err = env.applications.Get(ctx, intruder, app.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = env.slots.CancelBooking(ctx, intruder, app.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.NotNil(t, env.storedApplication(t, app.ID).ExamSlotID, "booking is untouched")

	profile, err := env.profiles.GetProfile(ctx, intruder)
	require.NoError(t, err)
	assert.Nil(t, profile)

	apps, err = env.applications.MyApplications(ctx, victim)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
}
