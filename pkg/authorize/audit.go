package authorize

import (
	"context"
	"log/slog"

	casbin "github.com/casbin/casbin/v2"
)

// AuditedAuthorization wraps an IAuthorization implementation and logs
// every denied or failed decision.
type AuditedAuthorization struct {
	inner  IAuthorization
	logger *slog.Logger
}

func NewAuditedAuthorization(inner IAuthorization, logger *slog.Logger) IAuthorization {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditedAuthorization{
		inner:  inner,
		logger: logger,
	}
}

func (a *AuditedAuthorization) Enforce(ctx context.Context, subject GroupSubject, object Resource, action Action) (bool, error) {
	allowed, err := a.inner.Enforce(ctx, subject, object, action)

	if err != nil || !allowed {
		attrs := []any{
			"subject", string(subject),
			"resource", string(object),
			"action", string(action),
			"allowed", allowed,
		}
		if err != nil {
			attrs = append(attrs, "error", err.Error())
			a.logger.Error("authz_decision", attrs...)
		} else {
			a.logger.Warn("authz_decision", attrs...)
		}
	}

	return allowed, err
}

func (a *AuditedAuthorization) MustEnforce(ctx context.Context, subject GroupSubject, object Resource, action Action) error {
	ok, err := a.Enforce(ctx, subject, object, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (a *AuditedAuthorization) Raw() *casbin.Enforcer {
	return a.inner.Raw()
}
