package leave_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
)

// memStore backs the fake repositories. Transactions are serialized and a failed
// transaction restores the snapshot taken when it began.
type memStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	users    map[string]user.User
	requests map[string]leave.LeaveRequest
	policies map[string]company.Policy
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]user.User{},
		requests: map[string]leave.LeaveRequest{},
		policies: map[string]company.Policy{},
	}
}

func (s *memStore) addUser(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Active = true
	s.users[u.ID] = u
	return u
}

func (s *memStore) user(id string) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *memStore) request(id string) leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id]
}

func (s *memStore) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type memTransactor struct {
	store *memStore
}

func (t memTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	t.store.mu.Lock()
	users := make(map[string]user.User, len(t.store.users))
	for k, v := range t.store.users {
		users[k] = v
	}
	requests := make(map[string]leave.LeaveRequest, len(t.store.requests))
	for k, v := range t.store.requests {
		requests[k] = v
	}
	t.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.store.mu.Lock()
		t.store.users = users
		t.store.requests = requests
		t.store.mu.Unlock()
		return err
	}
	return nil
}

type memUsers struct {
	store *memStore
}

func (r memUsers) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return r.store.addUser(newUser), nil
}

func (r memUsers) GetByID(ctx context.Context, companyID, id string) (user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.CompanyID != companyID {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r memUsers) GetByIDForUpdate(ctx context.Context, companyID, id string) (user.User, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []user.User
	for _, u := range r.store.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUsers) ListIDsByRoles(ctx context.Context, companyID string, roles ...user.Role) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var ids []string
	for _, u := range r.store.users {
		if u.CompanyID != companyID || !u.Active {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				ids = append(ids, u.ID)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r memUsers) AddVacationDaysUsed(ctx context.Context, companyID, id string, days int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.CompanyID != companyID {
		return user.ErrUserNotFound
	}
	if u.VacationDaysUsed+days > u.VacationDaysTotal {
		return user.ErrInsufficientVacationDays
	}
	u.VacationDaysUsed += days
	r.store.users[id] = u
	return nil
}

func (r memUsers) UpdateVacationDaysTotal(ctx context.Context, companyID, id string, total int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.CompanyID != companyID {
		return user.ErrUserNotFound
	}
	u.VacationDaysTotal = total
	r.store.users[id] = u
	return nil
}

func (r memUsers) UpdateRole(ctx context.Context, companyID, id string, role user.Role) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.CompanyID != companyID {
		return user.ErrUserNotFound
	}
	u.Role = role
	r.store.users[id] = u
	return nil
}

func (r memUsers) ToggleActive(ctx context.Context, companyID, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.CompanyID != companyID {
		return false, user.ErrUserNotFound
	}
	u.Active = !u.Active
	r.store.users[id] = u
	return u.Active, nil
}

type memRequests struct {
	store *memStore
}

func (r memRequests) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	request.ID = fmt.Sprintf("00000000-0000-7000-8000-%012d", r.store.seq)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	r.store.requests[request.ID] = request
	return request, nil
}

func (r memRequests) GetByID(ctx context.Context, companyID, id string) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok || req.CompanyID != companyID {
		return leave.LeaveRequest{}, &leave.NotFoundError{Resource: "vacation request", ID: id}
	}
	return req, nil
}

func (r memRequests) GetByIDForUpdate(ctx context.Context, companyID, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r memRequests) UpdateStatus(ctx context.Context, companyID, id string, from, to leave.LeaveRequestStatus, managerID *string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok || req.CompanyID != companyID || req.Status != from {
		return false, nil
	}
	req.Status = to
	req.ManagerID = managerID
	req.UpdatedAt = at
	r.store.requests[id] = req
	return true, nil
}

func (r memRequests) List(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []leave.LeaveRequest
	for _, req := range r.store.requests {
		if req.CompanyID != companyID {
			continue
		}
		if filter.UserID != nil && req.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r memRequests) ListOverlapping(ctx context.Context, companyID string, from, to leave.Date, statuses []leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []leave.LeaveRequest
	for _, req := range r.store.requests {
		if req.CompanyID != companyID || req.StartDate.After(to) || req.EndDate.Before(from) {
			continue
		}
		for _, s := range statuses {
			if req.Status == s {
				out = append(out, req)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memPolicies struct {
	store *memStore
}

func (p memPolicies) GetPolicy(ctx context.Context, companyID string) (company.Policy, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	policy, ok := p.store.policies[companyID]
	if !ok {
		return company.Policy{}, company.ErrCompanyNotFound
	}
	return policy, nil
}

type delivery struct {
	CompanyID  string
	Recipients []string
	Message    string
	Kind       notification.NotificationType
}

type recordingSink struct {
	mu         sync.Mutex
	deliveries []delivery
}

func (s *recordingSink) Deliver(ctx context.Context, companyID string, recipientIDs []string, message string, kind notification.NotificationType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, delivery{
		CompanyID:  companyID,
		Recipients: append([]string(nil), recipientIDs...),
		Message:    message,
		Kind:       kind,
	})
}

func (s *recordingSink) byKind(kind notification.NotificationType) []delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []delivery
	for _, d := range s.deliveries {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
