package reservations

import (
	"context"
	"errors"
	"time"

	"prorent/internal/app/commands"
	"prorent/internal/app/dto"
	"prorent/internal/app/queries"
	"prorent/internal/domain/access"
	"prorent/internal/domain/reservation"
)

const (
	saveDraftKey    = "reservations.draft.save"
	getDraftKey     = "reservations.draft.get"
	discardDraftKey = "reservations.draft.discard"
)

var ErrDraftStoreMissing = errors.New("reservations: draft store not configured")

var guestRoles = []access.Role{access.RoleUser}

type SaveDraftCommand struct {
	Token string
	Draft dto.DraftForm
}

func (c SaveDraftCommand) Key() string                 { return saveDraftKey }
func (c SaveDraftCommand) AllowedRoles() []access.Role { return guestRoles }
func (c SaveDraftCommand) Form() any                   { return c.Draft }

type GetDraftQuery struct {
	Token string
}

func (q GetDraftQuery) Key() string                 { return getDraftKey }
func (q GetDraftQuery) AllowedRoles() []access.Role { return guestRoles }

type DiscardDraftCommand struct {
	Token string
}

func (c DiscardDraftCommand) Key() string                 { return discardDraftKey }
func (c DiscardDraftCommand) AllowedRoles() []access.Role { return guestRoles }

// DraftHandlers serves the three draft messages from one store.
type DraftHandlers struct {
	Store reservation.DraftStore
	Now   func() time.Time
}

func (h *DraftHandlers) Save(ctx context.Context, cmd SaveDraftCommand) (reservation.Draft, error) {
	owner, err := h.owner(cmd.Token)
	if err != nil {
		return reservation.Draft{}, err
	}
	draft := reservation.Draft{
		RoomTypeID: cmd.Draft.RoomTypeID,
		CheckIn:    cmd.Draft.CheckIn,
		CheckOut:   cmd.Draft.CheckOut,
		Guests:     cmd.Draft.Guests,
		UpdatedAt:  h.now().UTC(),
	}
	if err := h.Store.Put(ctx, owner, draft); err != nil {
		return reservation.Draft{}, err
	}
	return draft, nil
}

func (h *DraftHandlers) Get(ctx context.Context, q GetDraftQuery) (reservation.Draft, error) {
	owner, err := h.owner(q.Token)
	if err != nil {
		return reservation.Draft{}, err
	}
	return h.Store.Get(ctx, owner)
}

func (h *DraftHandlers) Discard(ctx context.Context, cmd DiscardDraftCommand) (struct{}, error) {
	owner, err := h.owner(cmd.Token)
	if err != nil {
		return struct{}{}, err
	}
	if err := h.Store.Delete(ctx, owner); err != nil && !errors.Is(err, reservation.ErrDraftNotFound) {
		return struct{}{}, err
	}
	return struct{}{}, nil
}

// Register wires the draft handlers onto the buses.
func (h *DraftHandlers) Register(cmdBus *commands.InMemoryBus, queryBus *queries.InMemoryBus) {
	commands.RegisterHandler[SaveDraftCommand, reservation.Draft](cmdBus, saveDraftKey, commands.HandlerFunc[SaveDraftCommand, reservation.Draft](h.Save))
	commands.RegisterHandler[DiscardDraftCommand, struct{}](cmdBus, discardDraftKey, commands.HandlerFunc[DiscardDraftCommand, struct{}](h.Discard))
	queries.RegisterHandler[GetDraftQuery, reservation.Draft](queryBus, getDraftKey, queries.HandlerFunc[GetDraftQuery, reservation.Draft](h.Get))
}

func (h *DraftHandlers) owner(token string) (string, error) {
	if h.Store == nil {
		return "", ErrDraftStoreMissing
	}
	return reservation.OwnerKey(token)
}

func (h *DraftHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
