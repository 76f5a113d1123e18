package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplechat/internal/model"
)

func TestCreateChatCreatesOwnerMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")

	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)
	require.NotZero(t, chatID)

	var memberships []model.Membership
	require.NoError(t, env.db.Where("chat_id = ?", chatID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, ownerID, memberships[0].UserID)

	last := env.notifier.Last()
	assert.Equal(t, EventChatCreated, last.Event)
	assert.True(t, last.Broadcast)

	dto, ok := last.Payload.(*model.ChatDTO)
	require.True(t, ok)
	assert.Equal(t, "General", dto.Name)
	assert.Equal(t, "alice", dto.CreatorName)
}

func TestCreateChatUnknownOwner(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.chats.Create(context.Background(), "General", 999)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "ownerId", validationErr.Fields[0].Field)
	assert.Equal(t, "Creator Id does not exist.", validationErr.Fields[0].Message)

	assert.Empty(t, env.notifier.Events())
}

func TestCreateChatStructuralValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.chats.Create(context.Background(), "", 0)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	// Both violated rules reported together.
	require.Len(t, validationErr.Fields, 2)
	assert.Equal(t, "Chat name is required.", validationErr.Fields[0].Message)
	assert.Equal(t, "Creator Id is required.", validationErr.Fields[1].Message)
}

func TestUpdateChat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)

	require.NoError(t, env.chats.Update(ctx, chatID, "Off-topic"))

	dto, err := env.chats.GetByID(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, "Off-topic", dto.Name)

	last := env.notifier.Last()
	assert.Equal(t, EventChatUpdated, last.Event)
	assert.True(t, last.Broadcast)
}

func TestUpdateChatMissing(t *testing.T) {
	env := newTestEnv(t)

	err := env.chats.Update(context.Background(), 42, "Renamed")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "Chat Id does not exist.", validationErr.Fields[0].Message)
}

func TestDeleteChatForbiddenForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	intruderID := env.mustCreateUser(t, "mallory")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)
	_, err = env.messages.Create(ctx, "hi", chatID, ownerID)
	require.NoError(t, err)

	err = env.chats.Delete(ctx, chatID, intruderID)
	require.ErrorIs(t, err, ErrForbidden)

	// Nothing was touched.
	_, err = env.chats.GetByID(ctx, chatID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, env.membershipCount(t, chatID, ownerID))

	var messageCount int64
	require.NoError(t, env.db.Model(&model.Message{}).Where("chat_id = ?", chatID).Count(&messageCount).Error)
	assert.EqualValues(t, 1, messageCount)
}

func TestDeleteChatCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	memberID := env.mustCreateUser(t, "bob")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)
	require.NoError(t, env.chats.AddMember(ctx, chatID, memberID))
	_, err = env.messages.Create(ctx, "hi", chatID, ownerID)
	require.NoError(t, err)

	require.NoError(t, env.chats.Delete(ctx, chatID, ownerID))

	_, err = env.chats.GetByID(ctx, chatID)
	require.ErrorIs(t, err, ErrNotFound)

	var messageCount, membershipCount int64
	require.NoError(t, env.db.Model(&model.Message{}).Where("chat_id = ?", chatID).Count(&messageCount).Error)
	require.NoError(t, env.db.Model(&model.Membership{}).Where("chat_id = ?", chatID).Count(&membershipCount).Error)
	assert.Zero(t, messageCount)
	assert.Zero(t, membershipCount)

	last := env.notifier.Last()
	assert.Equal(t, EventChatDeleted, last.Event)
	assert.True(t, last.Broadcast)
	assert.Equal(t, chatID, last.Payload)
}

func TestDeleteChatMissing(t *testing.T) {
	env := newTestEnv(t)

	err := env.chats.Delete(context.Background(), 42, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddMemberTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	memberID := env.mustCreateUser(t, "bob")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)

	require.NoError(t, env.chats.AddMember(ctx, chatID, memberID))

	err = env.chats.AddMember(ctx, chatID, memberID)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "User is already a member of this chat.", validationErr.Fields[0].Message)

	// Still exactly one row for the pair.
	assert.EqualValues(t, 1, env.membershipCount(t, chatID, memberID))
}

func TestAddMemberPublishesToChatGroupOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	memberID := env.mustCreateUser(t, "bob")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)

	require.NoError(t, env.chats.AddMember(ctx, chatID, memberID))

	last := env.notifier.Last()
	assert.Equal(t, EventUserJoined, last.Event)
	assert.False(t, last.Broadcast)
	assert.Equal(t, chatID, last.ChatID)
	assert.Equal(t, memberID, last.Payload)
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	memberID := env.mustCreateUser(t, "bob")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)
	require.NoError(t, env.chats.AddMember(ctx, chatID, memberID))

	require.NoError(t, env.chats.RemoveMember(ctx, chatID, memberID))
	assert.Zero(t, env.membershipCount(t, chatID, memberID))

	last := env.notifier.Last()
	assert.Equal(t, EventUserLeft, last.Event)
	assert.Equal(t, chatID, last.ChatID)
	assert.Equal(t, memberID, last.Payload)
}

func TestRemoveMemberNotAMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	outsiderID := env.mustCreateUser(t, "bob")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)

	before := env.notifier.Events()

	err = env.chats.RemoveMember(ctx, chatID, outsiderID)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "The user is not a member of the chat", validationErr.Fields[0].Message)

	// Store state and event stream unchanged.
	assert.EqualValues(t, 1, env.membershipCount(t, chatID, ownerID))
	assert.Equal(t, before, env.notifier.Events())
}

func TestSearchChats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	_, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)
	_, err = env.chats.Create(ctx, "Gardening", ownerID)
	require.NoError(t, err)

	matches := env.chats.Search(ctx, "gen")
	require.Len(t, matches, 1)
	assert.Equal(t, "General", matches[0].Name)

	// No match is an empty collection, not an error.
	none := env.chats.Search(ctx, "xyz-no-match")
	require.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetAllChats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	_, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)

	chats := env.chats.GetAll(ctx)
	require.Len(t, chats, 1)
	assert.Equal(t, "alice", chats[0].CreatorName)
}

func TestChatMembersAndMessages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.mustCreateUser(t, "alice")
	memberID := env.mustCreateUser(t, "bob")
	chatID, err := env.chats.Create(ctx, "General", ownerID)
	require.NoError(t, err)
	require.NoError(t, env.chats.AddMember(ctx, chatID, memberID))
	_, err = env.messages.Create(ctx, "hello", chatID, memberID)
	require.NoError(t, err)

	members, err := env.chats.Members(ctx, chatID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	messages, err := env.chats.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Text)
	assert.Equal(t, "bob", messages[0].UserName)
	assert.Equal(t, "General", messages[0].ChatName)

	_, err = env.chats.Members(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

// Full join/leave scenario: owner creates the chat, a second user joins,
// a duplicate join is rejected.
func TestMembershipScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	aliceID := env.mustCreateUser(t, "alice")
	bobID := env.mustCreateUser(t, "bob")

	chatID, err := env.chats.Create(ctx, "General", aliceID)
	require.NoError(t, err)
	require.EqualValues(t, 1, env.membershipCount(t, chatID, aliceID))

	require.NoError(t, env.chats.AddMember(ctx, chatID, bobID))
	joined := env.notifier.Last()
	assert.Equal(t, EventUserJoined, joined.Event)
	assert.Equal(t, chatID, joined.ChatID)
	assert.Equal(t, bobID, joined.Payload)

	err = env.chats.AddMember(ctx, chatID, bobID)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "User is already a member of this chat.", validationErr.Fields[0].Message)
}
