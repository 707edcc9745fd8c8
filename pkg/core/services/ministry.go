package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmdrs/escala/pkg/core/model"
	"github.com/lucasmdrs/escala/pkg/db"
)

// CreateMinistry registers a new ministry and initializes its rotation
// cursor from the member pool. Roles and members may be empty at
// creation; roster generation refuses until both are filled in.
func CreateMinistry(ctx context.Context, ministries db.MinistryStore, cursors db.CursorStore, logger *zap.Logger, name string, roles []string, members []string, recurrence model.Recurrence) (*model.Ministry, error) {
	if name == "" {
		return nil, model.NewValidationError("ministry name is required")
	}
	if err := validateRecurrence(recurrence); err != nil {
		return nil, err
	}
	if err := validateNoDuplicateMembers(members); err != nil {
		return nil, err
	}

	ministry := &model.Ministry{
		ID:         uuid.New().String(),
		Name:       name,
		Roles:      roles,
		Members:    members,
		Recurrence: recurrence,
		Active:     true,
	}

	logger.Info("Creating ministry",
		zap.String("id", ministry.ID),
		zap.String("name", name),
		zap.Int("roles", len(roles)),
		zap.Int("members", len(members)))

	if err := ministries.InsertMinistry(ctx, ministry); err != nil {
		return nil, fmt.Errorf("failed to insert ministry: %w", err)
	}

	if err := cursors.InitializeCursor(ctx, ministry.ID, members); err != nil {
		return nil, fmt.Errorf("failed to initialize rotation cursor: %w", err)
	}

	return ministry, nil
}

// SetPool replaces a ministry's eligible-member pool and reinitializes
// its rotation cursor to index 0 with empty history. Every pool edit
// resets fairness; that is the intended contract, not an accident.
func SetPool(ctx context.Context, ministries db.MinistryStore, cursors db.CursorStore, logger *zap.Logger, ministryID string, members []string) (*model.Ministry, error) {
	if err := validateNoDuplicateMembers(members); err != nil {
		return nil, err
	}

	ministry, err := ministries.GetMinistry(ctx, ministryID)
	if err != nil {
		return nil, err
	}

	ministry.Members = members
	if err := ministries.UpdateMinistry(ctx, ministry); err != nil {
		return nil, fmt.Errorf("failed to update ministry: %w", err)
	}

	if err := cursors.InitializeCursor(ctx, ministryID, members); err != nil {
		return nil, fmt.Errorf("failed to reset rotation cursor: %w", err)
	}

	logger.Info("Ministry pool updated",
		zap.String("ministry_id", ministryID),
		zap.Int("pool_size", len(members)))

	return ministry, nil
}

// UpdateMinistry edits a ministry's name, duty roles, recurrence, or
// active flag. The member pool is edited through SetPool only, so
// cursor resets stay tied to pool changes.
func UpdateMinistry(ctx context.Context, ministries db.MinistryStore, logger *zap.Logger, ministryID string, name string, roles []string, recurrence model.Recurrence, active bool) (*model.Ministry, error) {
	if name == "" {
		return nil, model.NewValidationError("ministry name is required")
	}
	if err := validateRecurrence(recurrence); err != nil {
		return nil, err
	}

	ministry, err := ministries.GetMinistry(ctx, ministryID)
	if err != nil {
		return nil, err
	}

	ministry.Name = name
	ministry.Roles = roles
	ministry.Recurrence = recurrence
	ministry.Active = active

	if err := ministries.UpdateMinistry(ctx, ministry); err != nil {
		return nil, fmt.Errorf("failed to update ministry: %w", err)
	}

	logger.Info("Ministry updated",
		zap.String("ministry_id", ministryID),
		zap.String("name", name),
		zap.Bool("active", active))

	return ministry, nil
}

// DeleteMinistry removes a ministry; the store cascades the delete to
// its rotation cursor. Existing rosters are left untouched.
func DeleteMinistry(ctx context.Context, ministries db.MinistryStore, logger *zap.Logger, ministryID string) error {
	if err := ministries.DeleteMinistry(ctx, ministryID); err != nil {
		return err
	}

	logger.Info("Ministry deleted", zap.String("ministry_id", ministryID))
	return nil
}

func validateRecurrence(recurrence model.Recurrence) error {
	if !recurrence.Kind.IsValid() {
		return model.NewValidationError("unknown recurrence kind %q", recurrence.Kind)
	}
	switch recurrence.Kind {
	case model.RecurrenceWeekly, model.RecurrenceBiweekly:
		if recurrence.Weekday < time.Sunday || recurrence.Weekday > time.Saturday {
			return model.NewValidationError("recurrence weekday out of range: %d", recurrence.Weekday)
		}
	case model.RecurrenceMonthly:
		if recurrence.MonthDay < 1 || recurrence.MonthDay > 31 {
			return model.NewValidationError("recurrence day of month out of range: %d", recurrence.MonthDay)
		}
	}
	return nil
}

// validateNoDuplicateMembers rejects duplicate ids at edit time; the
// rotation engine's behavior over a pool with duplicates is undefined
func validateNoDuplicateMembers(members []string) error {
	seen := make(map[string]bool, len(members))
	for _, id := range members {
		if id == "" {
			return model.NewValidationError("member id must not be empty")
		}
		if seen[id] {
			return model.NewValidationError("duplicate member id in pool: %s", id)
		}
		seen[id] = true
	}
	return nil
}
