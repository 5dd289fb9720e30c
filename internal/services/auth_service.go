package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/soaringjerry/Sondage/internal/kv"
)

// Admin is one allow-list entry. PhoneHash, when set, is a bcrypt hash of the
// phone number and takes the place of Phone.
type Admin struct {
	Name      string
	Phone     string
	PhoneHash []byte
}

// AllowList is the fixed set of administrator name/phone pairs.
type AllowList []Admin

// DefaultAdmins is used when no allow-list is configured.
var DefaultAdmins = AllowList{
	{Name: "Admin Un", Phone: "0600000001"},
	{Name: "Admin Deux", Phone: "0600000002"},
}

// Contains matches the name case-insensitively and the phone exactly.
func (l AllowList) Contains(name, phone string) bool {
	for _, a := range l {
		if !strings.EqualFold(a.Name, name) {
			continue
		}
		if len(a.PhoneHash) > 0 {
			if bcrypt.CompareHashAndPassword(a.PhoneHash, []byte(phone)) == nil {
				return true
			}
			continue
		}
		if a.Phone == phone {
			return true
		}
	}
	return false
}

// IdentityGate holds the single logged-in identity and mirrors it to the
// identity record.
type IdentityGate struct {
	store  kv.Store
	admins AllowList
	idGen  func() string

	mu      sync.RWMutex
	current *Identity
}

func NewIdentityGate(store kv.Store, admins AllowList) *IdentityGate {
	if admins == nil {
		admins = DefaultAdmins
	}
	return &IdentityGate{
		store:  store,
		admins: admins,
		idGen:  defaultIdentityID,
	}
}

// UUIDv7 ids sort by creation time.
func defaultIdentityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Init restores a persisted identity. The stored admin flag is kept as is; the
// allow-list is consulted again only on the next login.
func (g *IdentityGate) Init(ctx context.Context) error {
	var id Identity
	found, err := kv.Load(ctx, g.store, kv.KeyIdentity, &id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if found && id.ID != "" {
		g.current = &id
	} else {
		g.current = nil
	}
	return nil
}

// Login always succeeds unless persistence fails. It replaces any previous identity.
func (g *IdentityGate) Login(ctx context.Context, name, phone string) (*Identity, error) {
	id := Identity{
		ID:      g.idGen(),
		Name:    name,
		Phone:   phone,
		IsAdmin: g.admins.Contains(name, phone),
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := kv.Save(ctx, g.store, kv.KeyIdentity, id); err != nil {
		return nil, err
	}
	g.current = &id
	out := id
	return &out, nil
}

// AdminLogin logs in only allow-listed administrators and returns the new
// identity. A refused attempt returns nil and leaves the current identity
// untouched.
func (g *IdentityGate) AdminLogin(ctx context.Context, name, phone string) (*Identity, error) {
	if !g.admins.Contains(name, phone) {
		return nil, nil
	}
	return g.Login(ctx, name, phone)
}

func (g *IdentityGate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Delete(ctx, kv.KeyIdentity); err != nil {
		return err
	}
	g.current = nil
	return nil
}

// Current returns a copy of the logged-in identity, or nil.
func (g *IdentityGate) Current() *Identity {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil {
		return nil
	}
	out := *g.current
	return &out
}

func (g *IdentityGate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current != nil
}

func (g *IdentityGate) IsAdmin() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current != nil && g.current.IsAdmin
}
