package reservations

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"

	"prorent/internal/app/commands"
	"prorent/internal/app/dto"
	"prorent/internal/app/handlers/support"
	"prorent/internal/app/middleware"
	"prorent/internal/app/policies"
	"prorent/internal/domain/access"
	domainavailability "prorent/internal/domain/availability"
	"prorent/internal/domain/reservation"
)

const submitReservationKey = "reservations.submit"

var ErrGatewayMissing = errors.New("reservations: gateway not configured")

type SubmitReservationCommand struct {
	Token           string
	Reservation     dto.ReservationForm
	IdempotencyKeyV string
}

func (c SubmitReservationCommand) Key() string { return submitReservationKey }

func (c SubmitReservationCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c SubmitReservationCommand) ResultPrototype() any { return &reservation.Receipt{} }

// IdempotencyScope is a digest of the session token, so replay records are
// per session and never hold the raw token.
func (c SubmitReservationCommand) IdempotencyScope() string {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (c SubmitReservationCommand) AllowedRoles() []access.Role {
	return []access.Role{access.RoleUser}
}

func (c SubmitReservationCommand) Form() any { return c.Reservation }

// SubmitReservationHandler checks the stay against the unavailable dates
// Catalog reports, forwards it when clear and then drops the caller's draft.
// Catalog must be uncached so bookings made since the calendar was rendered
// still block the stay.
type SubmitReservationHandler struct {
	Catalog policies.Catalog
	Gateway policies.ReservationGateway
	Drafts  reservation.DraftStore
	Logger  *slog.Logger
}

func (h *SubmitReservationHandler) Handle(ctx context.Context, cmd SubmitReservationCommand) (*reservation.Receipt, error) {
	if h.Gateway == nil {
		return nil, ErrGatewayMissing
	}
	if h.Catalog == nil {
		return nil, support.ErrCatalogMissing
	}
	form := cmd.Reservation
	if _, err := domainavailability.CheckRange(form.CheckIn, form.CheckOut); err != nil {
		return nil, support.Invalid("%v", err)
	}
	req, err := reservation.NewRequest(form.RoomTypeID, form.CheckIn, form.CheckOut, form.Guests)
	if err != nil {
		return nil, support.Invalid("%v", err)
	}

	blocked, err := h.Catalog.UnavailableDates(ctx, req.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if conflicts := domainavailability.ValidateRange(req.Stay, blocked); len(conflicts) > 0 {
		if h.Logger != nil {
			h.Logger.Info("reservation blocked", "room_type_id", req.RoomTypeID, "conflicts", conflicts)
		}
		return nil, reservation.NewConflictError(conflicts)
	}

	receipt, err := h.Gateway.CreateReservation(ctx, cmd.Token, req)
	if err != nil {
		return nil, err
	}

	if h.Drafts != nil {
		if owner, ownerErr := reservation.OwnerKey(cmd.Token); ownerErr == nil {
			if err := h.Drafts.Delete(ctx, owner); err != nil && !errors.Is(err, reservation.ErrDraftNotFound) && h.Logger != nil {
				h.Logger.Warn("draft cleanup failed", "error", err)
			}
		}
	}
	if h.Logger != nil {
		h.Logger.Info("reservation submitted", "reservation_id", receipt.ID, "room_type_id", req.RoomTypeID, "nights", req.Stay.Nights())
	}
	return &receipt, nil
}

var _ commands.Handler[SubmitReservationCommand, *reservation.Receipt] = (*SubmitReservationHandler)(nil)
var _ middleware.IdempotentCommand = SubmitReservationCommand{}
var _ middleware.RoleRestricted = SubmitReservationCommand{}
var _ middleware.ScopedCommand = SubmitReservationCommand{}
