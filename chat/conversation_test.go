package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversationKeyCommutative(t *testing.T) {
	require.Equal(t, ConversationKey("u1", "u2"), ConversationKey("u2", "u1"))
	require.Equal(t, "u1-u2", ConversationKey("u2", "u1"))
}

func TestConversationKeyDeterministic(t *testing.T) {
	first := ConversationKey("alice", "bob")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ConversationKey("alice", "bob"))
	}
}

func TestConversationKeyTrimsWhitespace(t *testing.T) {
	require.Equal(t, ConversationKey("u1", "u2"), ConversationKey(" u1 ", "u2 "))
}

func TestInvolvesUser(t *testing.T) {
	key := ConversationKey("u1", "u2")

	require.True(t, InvolvesUser(key, "u1"))
	require.True(t, InvolvesUser(key, "u2"))
	require.False(t, InvolvesUser(key, "u3"))
	require.False(t, InvolvesUser(key, ""))

	// Substring containment is deliberately imprecise: "u1" also matches
	// conversations of "u12".
	require.True(t, InvolvesUser(ConversationKey("u12", "u34"), "u1"))
}
