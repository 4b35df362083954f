package commands

import (
	"context"
	"log/slog"

	"court-reservation/internal/domain/resource"
	"court-reservation/internal/infra"
	"court-reservation/internal/pkg/clock"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/commands/resource_mock.go -package=commandsmock

type ResourceCommands interface {
	DisableResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	EnableResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// DeleteResource refuses while any confirmed reservation starts in the future.
	DeleteResource(ctx context.Context, id uuid.UUID) error
}

type resourceCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewResourceCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) ResourceCommands {
	if logger == nil {
		logger = slog.Default()
	}
	return &resourceCommandsImpl{uow: uow, clock: clk, logger: logger}
}

func (c *resourceCommandsImpl) DisableResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return c.setStatus(ctx, id, func(res *resource.Resource) { res.Disable(c.clock.Now()) })
}

func (c *resourceCommandsImpl) EnableResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return c.setStatus(ctx, id, func(res *resource.Resource) { res.Enable(c.clock.Now()) })
}

func (c *resourceCommandsImpl) setStatus(ctx context.Context, id uuid.UUID, apply func(*resource.Resource)) (*resource.Resource, error) {
	var updated *resource.Resource
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := lockResource(ctx, tx, id)
		if err != nil {
			return err
		}
		apply(res)
		if err := tx.Resources().UpdateStatus(ctx, res); err != nil {
			return dbFailure(err)
		}
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("resource status changed", "resource_id", id, "status", updated.Status())
	return updated, nil
}

func (c *resourceCommandsImpl) DeleteResource(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := lockResource(ctx, tx, id); err != nil {
			return err
		}

		upcoming, err := tx.Resources().CountFutureConfirmed(ctx, id, c.clock.Now())
		if err != nil {
			return dbFailure(err)
		}
		if upcoming > 0 {
			return errs.Wrapf(ErrResourceHasFutureReservations, "%d upcoming", upcoming)
		}

		if err := tx.Resources().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return dbFailure(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("resource deleted", "resource_id", id)
	return nil
}

func lockResource(ctx context.Context, tx shared.Tx, id uuid.UUID) (*resource.Resource, error) {
	res, err := tx.Resources().LockByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, dbFailure(err)
	}
	return res, nil
}
