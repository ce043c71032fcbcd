package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitnessfinder/internal/models"
	"fitnessfinder/internal/observability"
)

// Cached cards are a best-effort read-side optimization. Every consistency
// operation that touches a card's inputs invalidates the key; a nil client
// degrades every lookup to a miss.

const (
	ProfileCardKeyPrefix = "card:profile:%s"
	SessionCardKeyPrefix = "card:session:%s"
)

const (
	ProfileCardTTL = 5 * time.Minute
	SessionCardTTL = 5 * time.Minute
)

func ProfileCardKey(email string) string {
	return fmt.Sprintf(ProfileCardKeyPrefix, email)
}

func SessionCardKey(sessionID string) string {
	return fmt.Sprintf(SessionCardKeyPrefix, sessionID)
}

// GetProfileCard returns a cached profile card and whether the lookup hit.
func GetProfileCard(ctx context.Context, email string) (*models.ProfileCard, bool) {
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, ProfileCardKey(email)).Bytes()
	if err != nil {
		observability.CardCacheLookups.WithLabelValues("profile", "miss").Inc()
		return nil, false
	}
	var card models.ProfileCard
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, false
	}
	observability.CardCacheLookups.WithLabelValues("profile", "hit").Inc()
	return &card, true
}

// SetProfileCard stores a profile card with the standard TTL.
func SetProfileCard(ctx context.Context, card *models.ProfileCard) {
	if client == nil || card == nil {
		return
	}
	raw, err := json.Marshal(card)
	if err != nil {
		return
	}
	client.Set(ctx, ProfileCardKey(card.Email), raw, ProfileCardTTL)
}

// GetSessionCard returns a cached session card and whether the lookup hit.
func GetSessionCard(ctx context.Context, sessionID string) (*models.SessionCard, bool) {
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, SessionCardKey(sessionID)).Bytes()
	if err != nil {
		observability.CardCacheLookups.WithLabelValues("session", "miss").Inc()
		return nil, false
	}
	var card models.SessionCard
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, false
	}
	observability.CardCacheLookups.WithLabelValues("session", "hit").Inc()
	return &card, true
}

// SetSessionCard stores a session card with the standard TTL.
func SetSessionCard(ctx context.Context, card *models.SessionCard) {
	if client == nil || card == nil {
		return
	}
	raw, err := json.Marshal(card)
	if err != nil {
		return
	}
	client.Set(ctx, SessionCardKey(card.ID), raw, SessionCardTTL)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfileCard(ctx context.Context, email string) {
	Invalidate(ctx, ProfileCardKey(email))
}

func InvalidateSessionCard(ctx context.Context, sessionID string) {
	Invalidate(ctx, SessionCardKey(sessionID))
}
