package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/permission"
)

// Executor performs controller effects without a UI. Permission requests go
// through the gateway and come back as result events.
type Executor struct {
	Gateway  permission.Gateway
	Dispatch func(controller.Event) error
	Logger   *slog.Logger

	OnBack     func()
	OnLicenses func()
}

func (x *Executor) Execute(ctx context.Context, eff controller.Effect) error {
	switch eff {
	case controller.EffectRequestNotificationPermission:
		granted, err := x.Gateway.RequestNotificationPermission(ctx)
		if err != nil {
			// A failed request reads as denied so the negotiation ends.
			err = fmt.Errorf("request notification permission: %w", err)
			return errors.Join(err, x.Dispatch(controller.NotificationPermissionResult{Granted: false}))
		}
		return x.Dispatch(controller.NotificationPermissionResult{Granted: granted})
	case controller.EffectRequestExactAlarmPermission:
		granted := x.Gateway.HasExactAlarmPermission(ctx)
		return x.Dispatch(controller.ExactAlarmPermissionResult{Granted: granted})
	case controller.EffectOpenNotificationSettings:
		return x.Gateway.OpenNotificationSettings(ctx)
	case controller.EffectOpenExactAlarmSettings:
		return x.Gateway.OpenExactAlarmPermissionSettings(ctx)
	case controller.EffectNavigateBack:
		if x.OnBack != nil {
			x.OnBack()
		}
	case controller.EffectOpenOssLicenses:
		if x.OnLicenses != nil {
			x.OnLicenses()
		}
	default:
		x.logger().Warn("unknown effect", "effect", string(eff))
	}
	return nil
}

// Drain executes queued effects until none are left. Effects emitted while
// executing are picked up too.
func (x *Executor) Drain(ctx context.Context, effects <-chan controller.Effect) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case eff := <-effects:
			if err := x.Execute(ctx, eff); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// Run executes effects as they arrive until ctx is done. Failures are logged.
func (x *Executor) Run(ctx context.Context, effects <-chan controller.Effect) {
	for {
		select {
		case <-ctx.Done():
			return
		case eff := <-effects:
			if err := x.Execute(ctx, eff); err != nil {
				x.logger().Error("effect failed", "effect", string(eff), "err", err)
			}
		}
	}
}

func (x *Executor) logger() *slog.Logger {
	if x.Logger != nil {
		return x.Logger
	}
	return slog.Default()
}

// Executor returns a synchronous executor bound to the app's controller.
func (a *App) Executor(ctx context.Context) *Executor {
	return &Executor{
		Gateway: a.Gateway,
		Dispatch: func(ev controller.Event) error {
			return a.Controller.Handle(ctx, ev)
		},
		Logger: a.Logger.With("component", "executor"),
	}
}
