package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jkamau589/pet_haven/chat"
	"github.com/jkamau589/pet_haven/models"
)

// DefaultPollInterval matches the UI badge refresh cadence.
const DefaultPollInterval = 10 * time.Second

// Notification is one synthesized "new message" event for toast/badge UI.
type Notification struct {
	SenderName     string
	AvatarURL      string
	Text           string
	ConversationID string
	Timestamp      time.Time
}

// Notifier periodically re-derives new-message events for a user by
// sweeping all of their conversations over REST, independent of the live
// socket. receive_message only fires for rooms currently joined; this
// sweep covers everything else. It is deliberately best effort: every
// interval it re-fetches each conversation in full and keeps only what is
// newer than the previous sweep.
type Notifier struct {
	BaseURL   string // e.g. http://localhost:8080/api/v1
	AuthToken string
	UserID    string
	Interval  time.Duration

	// OnNotify fires once per new message from another sender.
	OnNotify func(Notification)

	HTTPClient *http.Client

	mu          sync.Mutex
	lastChecked time.Time
	unread      int
	avatars     map[string]string
}

func (n *Notifier) client() *http.Client {
	if n.HTTPClient != nil {
		return n.HTTPClient
	}
	return http.DefaultClient
}

// Run sweeps on the interval until ctx is cancelled. The first sweep
// baseline is the start time, so only messages arriving after Run begins
// produce notifications.
func (n *Notifier) Run(ctx context.Context) {
	interval := n.Interval
	if interval == 0 {
		interval = DefaultPollInterval
	}

	n.mu.Lock()
	if n.lastChecked.IsZero() {
		n.lastChecked = time.Now()
	}
	n.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.Sweep()
		}
	}
}

// Sweep runs one poll pass: list all conversation ids, keep the ones that
// contain this user's id, fetch each in full, and surface messages from
// other senders newer than the last sweep. The checkpoint then advances
// to wall-clock now, not to the newest message timestamp.
func (n *Notifier) Sweep() {
	ids, err := n.fetchConversationIDs()
	if err != nil {
		log.Printf("chatclient: conversation sweep failed: %v", err)
		return
	}

	n.mu.Lock()
	since := n.lastChecked
	n.mu.Unlock()

	for _, conversationID := range ids {
		if !chat.InvolvesUser(conversationID, n.UserID) {
			continue
		}

		messages, err := n.fetchMessages(conversationID)
		if err != nil {
			log.Printf("chatclient: fetching %s failed: %v", conversationID, err)
			continue
		}

		for _, msg := range messages {
			if msg.SenderID == n.UserID || !msg.CreatedAt.After(since) {
				continue
			}

			n.mu.Lock()
			n.unread++
			n.mu.Unlock()

			if n.OnNotify != nil {
				n.OnNotify(Notification{
					SenderName:     msg.SenderName,
					AvatarURL:      n.avatarFor(msg.SenderID),
					Text:           msg.Text,
					ConversationID: msg.ConversationID,
					Timestamp:      msg.CreatedAt,
				})
			}
		}
	}

	n.mu.Lock()
	n.lastChecked = time.Now()
	n.mu.Unlock()
}

// Unread returns the badge counter accumulated since the last reset.
func (n *Notifier) Unread() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.unread
}

func (n *Notifier) ResetUnread() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.unread = 0
}

func (n *Notifier) fetchConversationIDs() ([]string, error) {
	var out struct {
		Conversations []string `json:"conversations"`
	}
	if err := n.getJSON(n.BaseURL+"/chat/conversations", &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

func (n *Notifier) fetchMessages(conversationID string) ([]models.Message, error) {
	var out struct {
		Messages []models.Message `json:"messages"`
	}
	endpoint := n.BaseURL + "/chat?conversationId=" + url.QueryEscape(conversationID)
	if err := n.getJSON(endpoint, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// avatarFor resolves a sender's avatar through the public profile
// endpoint, caching per sender. Lookup failures just mean no avatar.
func (n *Notifier) avatarFor(senderID string) string {
	n.mu.Lock()
	if n.avatars == nil {
		n.avatars = map[string]string{}
	}
	if cached, ok := n.avatars[senderID]; ok {
		n.mu.Unlock()
		return cached
	}
	n.mu.Unlock()

	var profile struct {
		AvatarURL *string `json:"avatar_url"`
	}
	avatar := ""
	if err := n.getJSON(n.BaseURL+"/profile/"+url.PathEscape(senderID), &profile); err == nil && profile.AvatarURL != nil {
		avatar = *profile.AvatarURL
	}

	n.mu.Lock()
	n.avatars[senderID] = avatar
	n.mu.Unlock()
	return avatar
}

func (n *Notifier) getJSON(endpoint string, v interface{}) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	if n.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.AuthToken)
	}

	resp, err := n.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, endpoint)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
