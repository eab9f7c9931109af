package service

import (
	"context"
	"sync"
	"time"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/internal/notify"
)

// In-memory store implementations. The services must behave identically over
// these and the Postgres-backed ones.

type memJobStore struct {
	mu   sync.Mutex
	jobs map[string]model.Job
}

func newMemJobStore() *memJobStore {
	return &memJobStore{jobs: make(map[string]model.Job)}
}

func (m *memJobStore) Create(_ context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.JobID] = *job
	return nil
}

func (m *memJobStore) FindByID(_ context.Context, jobID string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

func (m *memJobStore) ListForCustomer(_ context.Context, customerID string) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Job
	for _, job := range m.jobs {
		if job.CustomerID == customerID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (m *memJobStore) ListForProvider(_ context.Context, providerUserID string) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Job
	for _, job := range m.jobs {
		if job.ProviderUserID == providerUserID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (m *memJobStore) UpdateStatus(_ context.Context, jobID string, from, to domain.JobStatus) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok || job.Status != from {
		return nil, domain.ErrIllegalTransition
	}
	job.Status = to
	job.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	m.jobs[jobID] = job
	return &job, nil
}

type memPaymentStore struct {
	mu         sync.Mutex
	payments   map[string]model.Payment
	failUpdate bool
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{payments: make(map[string]model.Payment)}
}

func (m *memPaymentStore) Upsert(_ context.Context, payment *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.JobID] = *payment
	return nil
}

func (m *memPaymentStore) FindByJobID(_ context.Context, jobID string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[jobID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return &payment, nil
}

func (m *memPaymentStore) UpdateStatus(_ context.Context, jobID string, from, to domain.PaymentStatus) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate {
		return nil, domain.ErrIllegalTransition
	}
	payment, ok := m.payments[jobID]
	if !ok || payment.Status != from {
		return nil, domain.ErrIllegalTransition
	}
	payment.Status = to
	m.payments[jobID] = payment
	return &payment, nil
}

type memProviderStore struct {
	mu        sync.Mutex
	providers map[string]model.ProviderWithName // by profile id
}

func newMemProviderStore() *memProviderStore {
	return &memProviderStore{providers: make(map[string]model.ProviderWithName)}
}

func (m *memProviderStore) List(_ context.Context, skill, suburb string) ([]model.ProviderWithName, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ProviderWithName
	for _, p := range m.providers {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProviderStore) FindByID(_ context.Context, profileID string) (*model.ProviderWithName, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.providers[profileID]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	return &p, nil
}

func (m *memProviderStore) FindByUserID(_ context.Context, userID string) (*model.ProviderWithName, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.providers {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

func (m *memProviderStore) Upsert(_ context.Context, profile *model.ProviderProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.providers {
		if p.UserID == profile.UserID {
			name := p.Name
			m.providers[id] = model.ProviderWithName{ProviderProfile: *profile, Name: name}
			return nil
		}
	}
	m.providers[profile.ProfileID] = model.ProviderWithName{ProviderProfile: *profile}
	return nil
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (m *memUserStore) FindByID(_ context.Context, userID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

type memReviewStore struct {
	mu        sync.Mutex
	reviews   map[string]model.Review // by job id
	providers *memProviderStore
}

func newMemReviewStore(providers *memProviderStore) *memReviewStore {
	return &memReviewStore{
		reviews:   make(map[string]model.Review),
		providers: providers,
	}
}

func (m *memReviewStore) ExistsForJob(_ context.Context, jobID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.reviews[jobID]
	return ok, nil
}

func (m *memReviewStore) JobIDsWithReviews(_ context.Context, jobIDs []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		if _, ok := m.reviews[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (m *memReviewStore) SaveWithAggregate(_ context.Context, review *model.Review) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.providers.mu.Lock()
	defer m.providers.mu.Unlock()

	profile, ok := m.providers.providers[review.ProviderID]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}

	existing, hadExisting := m.reviews[review.JobID]

	saved := *review
	if hadExisting {
		saved.ReviewID = existing.ReviewID
		saved.CreatedAt = existing.CreatedAt
	}
	m.reviews[review.JobID] = saved

	total := profile.Rating.Float64 * float64(profile.RatingsCount)
	count := profile.RatingsCount
	if hadExisting {
		total += float64(review.Rating) - float64(existing.Rating)
	} else {
		total += float64(review.Rating)
		count++
	}

	profile.RatingsCount = count
	profile.Rating.Valid = true
	if count > 0 {
		profile.Rating.Float64 = total / float64(count)
	}
	m.providers.providers[review.ProviderID] = profile

	return &saved, nil
}

// recordingNotifier captures every emission for assertions.
type sentNotification struct {
	UserID  string
	Type    notify.Type
	Message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Send(_ context.Context, userID string, notifType notify.Type, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Type: notifType, Message: message})
}

func (n *recordingNotifier) byType(t notify.Type) []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentNotification
	for _, s := range n.sent {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}
