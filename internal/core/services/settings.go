package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"slash-command-bot/internal/core/domain"
	"slash-command-bot/internal/core/ports"
)

const (
	DefaultGreeting   = "Hello, " + domain.UserPlaceholder + "!"
	MaxGreetingLength = 1000
)

var (
	ErrEmptyGreeting   = errors.New("greeting is empty")
	ErrGreetingTooLong = fmt.Errorf("greeting exceeds %d characters", MaxGreetingLength)
)

type SettingsService struct {
	repo ports.Repository
}

func NewSettingsService(repo ports.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) SetGreeting(ctx context.Context, guildID, greeting string) (string, error) {
	greeting = strings.TrimSpace(greeting)
	if greeting == "" {
		return "", ErrEmptyGreeting
	}
	if utf8.RuneCountInString(greeting) > MaxGreetingLength {
		return "", ErrGreetingTooLong
	}

	if err := s.repo.SaveGreeting(ctx, guildID, greeting); err != nil {
		return "", fmt.Errorf("save greeting: %w", err)
	}
	return greeting, nil
}

// Greeting renders the guild's greeting for userID, falling back to DefaultGreeting.
func (s *SettingsService) Greeting(ctx context.Context, guildID, userID string) (string, error) {
	settings, err := s.repo.GetGuildSettings(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("get guild settings: %w", err)
	}

	greeting := DefaultGreeting
	if settings != nil && settings.Greeting != "" {
		greeting = settings.Greeting
	}

	mention := "there"
	if userID != "" {
		mention = "<@" + userID + ">"
	}
	return strings.ReplaceAll(greeting, domain.UserPlaceholder, mention), nil
}

func (s *SettingsService) ResetGreeting(ctx context.Context, guildID string) error {
	return s.repo.DeleteGuildSettings(ctx, guildID)
}
