package chat

import "strings"

// ConversationKey derives the identifier for the conversation between two
// users. The ids are sorted before joining so both participants always
// derive the same key no matter who initiates.
func ConversationKey(userA, userB string) string {
	a, b := strings.TrimSpace(userA), strings.TrimSpace(userB)
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

// InvolvesUser reports whether a conversation id appears to include the
// given user. Substring containment, same check the notification poller
// runs client side.
func InvolvesUser(conversationID, userID string) bool {
	if userID == "" {
		return false
	}
	return strings.Contains(conversationID, userID)
}
