package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

// SettingsStore is the durable home of the reminder preference.
type SettingsStore interface {
	GetReminder(ctx context.Context) (model.ReminderSetting, error)
	SetReminder(ctx context.Context, in model.ReminderSetting) error
}

type ReminderStore struct {
	repo Repository
	now  func() time.Time
}

func NewReminderStore(repo Repository) *ReminderStore {
	return &ReminderStore{repo: repo, now: time.Now}
}

// GetReminder returns the default setting when none has been saved yet.
func (s *ReminderStore) GetReminder(ctx context.Context) (model.ReminderSetting, error) {
	item, err := s.repo.GetSetting(ctx, KeyReminder)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.DefaultReminderSetting(), nil
		}
		return model.ReminderSetting{}, fmt.Errorf("load reminder: %w", err)
	}
	var out model.ReminderSetting
	if err := json.Unmarshal([]byte(item.Value), &out); err != nil {
		return model.ReminderSetting{}, fmt.Errorf("decode reminder: %w", err)
	}
	if err := out.Validate(); err != nil {
		return model.ReminderSetting{}, fmt.Errorf("stored reminder: %w", err)
	}
	return out, nil
}

func (s *ReminderStore) SetReminder(ctx context.Context, in model.ReminderSetting) error {
	if err := in.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	if err := s.repo.PutSetting(ctx, Setting{Key: KeyReminder, Value: string(raw), UpdatedAt: s.now()}); err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func (s *ReminderStore) Close() error {
	return s.repo.Close()
}
