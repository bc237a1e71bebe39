package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"lifelink/internal/donor"
	"lifelink/internal/platform/metrics"
	"lifelink/internal/request"
	"lifelink/internal/user"
)

// fanoutLimit caps concurrent inbox appends when a request matches many
// donors.
const fanoutLimit = 8

// Emitter turns lifecycle events into inbox notifications. Emission is
// append-only and best-effort: failures are logged and swallowed so a
// notification problem can never fail or roll back the transition that
// triggered it. Transitions are the source of truth.
type Emitter struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewEmitter(store Store, logger *slog.Logger, m *metrics.Metrics) *Emitter {
	return &Emitter{store: store, logger: logger, metrics: m}
}

// RequestCreated notifies every donor who could serve the new request:
// available, same blood group, and currently eligible. Emergencies alert;
// pre-bookings inform.
func (e *Emitter) RequestCreated(ctx context.Context, req *request.Request, donors []*user.User, now time.Time) {
	category := CategoryAlert
	title := "Emergency Nearby!"
	message := "Someone needs your blood group nearby."
	if req.IsPreBooking {
		category = CategoryInfo
		title = "Pre-Booking Request"
		message = fmt.Sprintf("A donation of %s is scheduled for %s.", req.BloodGroup, req.RequiredDate.Format("2 Jan 2006"))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanoutLimit)
	for _, d := range donors {
		if !d.IsAvailable || d.BloodGroup != req.BloodGroup {
			continue
		}
		if !donor.Evaluate(d, now).Eligible {
			continue
		}
		g.Go(func() error {
			e.append(gctx, New(d.ID, title, message, category, now))
			return nil
		})
	}
	_ = g.Wait()
}

// RequestAccepted notifies the requester that a donor committed, including
// contact details so the hospital can coordinate.
func (e *Emitter) RequestAccepted(ctx context.Context, req *request.Request, d *user.User, now time.Time) {
	message := fmt.Sprintf("%s has accepted your request. Contact: %s", d.Name, d.Phone)
	e.append(ctx, New(req.RequesterID, "Donor Found!", message, CategorySuccess, now))
}

func (e *Emitter) append(ctx context.Context, n *Notification) {
	if err := e.store.Append(ctx, n); err != nil {
		e.logger.WarnContext(ctx, "notification dropped",
			"target", n.Target.String(),
			"title", n.Title,
			"error", err,
		)
		return
	}
	e.metrics.IncrementNotifications(string(n.Category))
}
