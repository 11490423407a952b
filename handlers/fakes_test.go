package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"portfolio-backend/models"
	"portfolio-backend/repository"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store down")

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	reads int
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) ListUsers(_ context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		cp.Password = ""
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUsers) DeleteUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	delete(m.users, id)
	return u, nil
}

type memPortfolios struct {
	mu   sync.Mutex
	list []*models.Portfolio
}

func (m *memPortfolios) slugTaken(slug, except string) bool {
	if slug == "" {
		return false
	}
	for _, p := range m.list {
		if p.Slug == slug && p.ID != except {
			return true
		}
	}
	return false
}

func (m *memPortfolios) CreatePortfolio(_ context.Context, p *models.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(p.Slug, "") {
		return repository.ErrDuplicateSlug
	}
	p.ID = uuid.NewString()
	p.Date = time.Now()
	if p.Links == nil {
		p.Links = []string{}
	}
	cp := *p
	m.list = append(m.list, &cp)
	return nil
}

func (m *memPortfolios) ListPortfolios(_ context.Context) ([]*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Portfolio, 0, len(m.list))
	for _, p := range m.list {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPortfolios) find(match func(*models.Portfolio) bool) *models.Portfolio {
	for _, p := range m.list {
		if match(p) {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (m *memPortfolios) GetPortfolioBySlug(_ context.Context, slug string) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(p *models.Portfolio) bool { return p.Slug == slug }), nil
}

func (m *memPortfolios) GetPortfolioByID(_ context.Context, id string) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(p *models.Portfolio) bool { return p.ID == id }), nil
}

func (m *memPortfolios) UpdatePortfolio(_ context.Context, id string, patch models.PortfolioPatch) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(patch.Slug, id) {
		return nil, repository.ErrDuplicateSlug
	}
	for _, p := range m.list {
		if p.ID == id {
			patch.Apply(p)
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPortfolios) DeletePortfolio(_ context.Context, id string) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.list {
		if p.ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return p, nil
		}
	}
	return nil, nil
}

type memCertificates struct {
	mu   sync.Mutex
	list []*models.Certificate
	err  error
}

func (m *memCertificates) CreateCertificate(_ context.Context, c *models.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	cp := *c
	m.list = append(m.list, &cp)
	return nil
}

func (m *memCertificates) ListCertificates(_ context.Context) ([]*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]*models.Certificate{}, m.list...), nil
}

func (m *memCertificates) ListCertificatesPage(_ context.Context, skip, limit int64) ([]*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sorted := append([]*models.Certificate{}, m.list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].ID < sorted[j].ID
	})
	if skip >= int64(len(sorted)) {
		return []*models.Certificate{}, nil
	}
	end := skip + limit
	if end > int64(len(sorted)) {
		end = int64(len(sorted))
	}
	return sorted[skip:end], nil
}

func (m *memCertificates) CountCertificates(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.list)), nil
}

func (m *memCertificates) DistinctFields(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, c := range m.list {
		if !seen[c.Field] {
			seen[c.Field] = true
			out = append(out, c.Field)
		}
	}
	return out, nil
}

func (m *memCertificates) ListCertificatesByField(_ context.Context, field string) ([]*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Certificate{}
	for _, c := range m.list {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCertificates) GetCertificateByID(_ context.Context, id string) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.list {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCertificates) UpdateCertificate(_ context.Context, id string, patch models.CertificatePatch) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.list {
		if c.ID == id {
			patch.Apply(c)
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCertificates) DeleteCertificate(_ context.Context, id string) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.list {
		if c.ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return c, nil
		}
	}
	return nil, nil
}

type memContacts struct {
	mu    sync.Mutex
	list  []*models.Contact
	reads int
}

func (m *memContacts) CreateContact(_ context.Context, c *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	c.TimeStamp = time.Now()
	cp := *c
	m.list = append(m.list, &cp)
	return nil
}

func (m *memContacts) ListContacts(_ context.Context) ([]*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return append([]*models.Contact{}, m.list...), nil
}

func (m *memContacts) DeleteContact(_ context.Context, id string) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.list {
		if c.ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return c, nil
		}
	}
	return nil, nil
}

type stubCaptcha struct {
	ok    bool
	err   error
	calls int
}

func (s *stubCaptcha) Verify(_ context.Context, _, _ string) (bool, error) {
	s.calls++
	return s.ok, s.err
}

type stubMirror struct {
	keys []string
}

func (s *stubMirror) Upload(_ context.Context, _ []byte, key, _ string) (string, error) {
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

type stubPDF struct {
	got []*models.Certificate
}

func (s *stubPDF) CertificatesPDF(_ context.Context, certs []*models.Certificate) ([]byte, error) {
	s.got = certs
	return []byte("%PDF-1.4 stub"), nil
}
