package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/domain/contact"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

type ContactMessageRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]contact.Message
}

func NewContactMessageRepo() *ContactMessageRepo {
	return &ContactMessageRepo{byID: make(map[uuid.UUID]contact.Message)}
}

func (r *ContactMessageRepo) Save(_ context.Context, m *contact.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[m.ID()] = *m
	return nil
}

func (r *ContactMessageRepo) Update(_ context.Context, m *contact.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID()]; !ok {
		return domain.NewNotFoundError("ContactMessage", m.ID().String())
	}
	r.byID[m.ID()] = *m
	return nil
}

func (r *ContactMessageRepo) FindByID(_ context.Context, id uuid.UUID) (*contact.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("ContactMessage", id.String())
	}
	return &m, nil
}

func (r *ContactMessageRepo) List(_ context.Context, status contact.MessageStatus, page, limit int) ([]*contact.Message, int64, error) {
	r.mu.RLock()
	out := make([]*contact.Message, 0)
	for _, m := range r.byID {
		if status != "" && m.Status() != status {
			continue
		}
		out = append(out, &m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return paginate(out, page, limit), int64(len(out)), nil
}

type ContactInfoRepo struct {
	mu     sync.RWMutex
	nextID int64
	infos  []contact.Info
}

func NewContactInfoRepo() *ContactInfoRepo {
	return &ContactInfoRepo{}
}

func (r *ContactInfoRepo) FindActive(_ context.Context) (*contact.Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, info := range r.infos {
		if info.IsActive {
			return &info, nil
		}
	}
	return nil, domain.NewNotFoundError("ContactInfo", "active")
}

func (r *ContactInfoRepo) Save(_ context.Context, info *contact.Info) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	info.ID = r.nextID
	r.infos = append(r.infos, *info)
	return nil
}
