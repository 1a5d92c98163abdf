package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/repository/contract"
	"ai-modelgen-be/internal/repository/specification"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory repository fakes. They interpret the same specifications the
// GORM implementations do, enough for service-level tests.

type fakeState struct {
	mu           sync.Mutex
	users        map[string]*entity.User
	heads        map[string]*entity.UserCredits
	transactions []*entity.CreditTransaction
	serviceTypes map[string]*entity.ServiceType
	models       map[string]*entity.GeneratedModel
	packages     map[uuid.UUID]*entity.CreditPackage
	purchases    map[string]*entity.CreditPurchase

	// One-shot fault for the next purchase status write.
	failPurchaseStatusUpdate error
}

func newFakeState() *fakeState {
	return &fakeState{
		users:        make(map[string]*entity.User),
		heads:        make(map[string]*entity.UserCredits),
		serviceTypes: make(map[string]*entity.ServiceType),
		models:       make(map[string]*entity.GeneratedModel),
		packages:     make(map[uuid.UUID]*entity.CreditPackage),
		purchases:    make(map[string]*entity.CreditPurchase),
	}
}

// modelStatus is safe to call while the consumer goroutine is running.
func (s *fakeState) modelStatus(id string) entity.ModelStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.models[id]
	if !ok {
		return ""
	}
	return m.Status
}

func (s *fakeState) addServiceType(name string, cost int, active bool) {
	s.serviceTypes[name] = &entity.ServiceType{
		Id:         uuid.New(),
		Name:       name,
		CreditCost: cost,
		IsActive:   active,
	}
}

type fakeFactory struct {
	state *fakeState
}

func newFakeFactory(state *fakeState) unitofwork.RepositoryFactory {
	return &fakeFactory{state: state}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{state: f.state}
}

type fakeUow struct {
	state *fakeState
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{state: u.state}
}
func (u *fakeUow) CreditRepository() contract.CreditRepository {
	return &fakeCreditRepo{state: u.state}
}
func (u *fakeUow) ServiceTypeRepository() contract.ServiceTypeRepository {
	return &fakeServiceTypeRepo{state: u.state}
}
func (u *fakeUow) ModelRepository() contract.ModelRepository {
	return &fakeModelRepo{state: u.state}
}
func (u *fakeUow) TopupRepository() contract.TopupRepository {
	return &fakeTopupRepo{state: u.state}
}

// User repository

type fakeUserRepo struct {
	state *fakeState
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	r.state.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.state.users {
		return u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.state.users)), nil
}

// Credit repository

type fakeCreditRepo struct {
	state *fakeState
}

func (r *fakeCreditRepo) FindHead(ctx context.Context, userId string) (*entity.UserCredits, error) {
	head, ok := r.state.heads[userId]
	if !ok {
		return nil, nil
	}
	copied := *head
	return &copied, nil
}

func (r *fakeCreditRepo) FindHeadForUpdate(ctx context.Context, userId string) (*entity.UserCredits, error) {
	return r.FindHead(ctx, userId)
}

func (r *fakeCreditRepo) CreateHeadIfAbsent(ctx context.Context, head *entity.UserCredits) error {
	if _, ok := r.state.heads[head.UserId]; ok {
		return nil
	}
	copied := *head
	copied.Id = uuid.New()
	r.state.heads[head.UserId] = &copied
	return nil
}

func (r *fakeCreditRepo) UpdateHead(ctx context.Context, head *entity.UserCredits) error {
	copied := *head
	r.state.heads[head.UserId] = &copied
	return nil
}

func (r *fakeCreditRepo) AppendTransaction(ctx context.Context, txn *entity.CreditTransaction) error {
	txn.Id = uuid.New()
	txn.CreatedAt = time.Now()
	copied := *txn
	r.state.transactions = append(r.state.transactions, &copied)
	return nil
}

func (r *fakeCreditRepo) FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	return filterTransactions(r.state.transactions, specs...), nil
}

func (r *fakeCreditRepo) CountTransactions(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(filterTransactions(r.state.transactions, specs...))), nil
}

func filterTransactions(txns []*entity.CreditTransaction, specs ...specification.Specification) []*entity.CreditTransaction {
	out := make([]*entity.CreditTransaction, 0, len(txns))
	out = append(out, txns...)

	limit := -1
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.OwnedBy:
			out = keepTxns(out, func(t *entity.CreditTransaction) bool { return t.UserId == sp.UserID })
		case specification.ByTransactionType:
			out = keepTxns(out, func(t *entity.CreditTransaction) bool { return string(t.Type) == sp.Type })
		case specification.ByDescription:
			out = keepTxns(out, func(t *entity.CreditTransaction) bool { return t.Description == sp.Description })
		case specification.NewestFirst:
			sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		case specification.Limit:
			limit = sp.Limit
		}
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func keepTxns(txns []*entity.CreditTransaction, keep func(*entity.CreditTransaction) bool) []*entity.CreditTransaction {
	out := txns[:0]
	for _, t := range txns {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// ServiceType repository

type fakeServiceTypeRepo struct {
	state *fakeState
}

func (r *fakeServiceTypeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceType, error) {
	for _, st := range r.state.serviceTypes {
		return st, nil
	}
	return nil, nil
}

func (r *fakeServiceTypeRepo) FindByName(ctx context.Context, name string) (*entity.ServiceType, error) {
	st, ok := r.state.serviceTypes[name]
	if !ok {
		return nil, nil
	}
	return st, nil
}

func (r *fakeServiceTypeRepo) FindAllActive(ctx context.Context) ([]*entity.ServiceType, error) {
	out := []*entity.ServiceType{}
	for _, st := range r.state.serviceTypes {
		if st.IsActive {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *fakeServiceTypeRepo) UpsertByName(ctx context.Context, serviceType *entity.ServiceType) error {
	if serviceType.Id == uuid.Nil {
		serviceType.Id = uuid.New()
	}
	r.state.serviceTypes[serviceType.Name] = serviceType
	return nil
}

// Model repository

type fakeModelRepo struct {
	state *fakeState
}

func (r *fakeModelRepo) Create(ctx context.Context, m *entity.GeneratedModel) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	copied := *m
	r.state.models[m.Id] = &copied
	return nil
}

func (r *fakeModelRepo) Update(ctx context.Context, m *entity.GeneratedModel) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *m
	r.state.models[m.Id] = &copied
	return nil
}

func (r *fakeModelRepo) Delete(ctx context.Context, id string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.models, id)
	return nil
}

func (r *fakeModelRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedModel, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	matches := r.filter(specs...)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeModelRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedModel, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return r.filter(specs...), nil
}

func (r *fakeModelRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return int64(len(r.filter(specs...))), nil
}

func (r *fakeModelRepo) UpdateTerminalStatus(ctx context.Context, taskId string, status entity.ModelStatus, modelUrl, thumbnailUrl *string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	m, ok := r.state.models[taskId]
	if !ok {
		return nil
	}
	m.Status = status
	if modelUrl != nil {
		m.ModelUrl = modelUrl
	}
	if thumbnailUrl != nil {
		m.ThumbnailUrl = thumbnailUrl
	}
	return nil
}

func (r *fakeModelRepo) UpdateRating(ctx context.Context, id string, rating int, comment *string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	m, ok := r.state.models[id]
	if !ok {
		return nil
	}
	m.Rating = &rating
	m.Comment = comment
	return nil
}

func (r *fakeModelRepo) FindAllWithOwner(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedModel, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	models := r.filter(specs...)
	for _, m := range models {
		if owner, ok := r.state.users[m.UserId]; ok {
			m.Owner = owner
		}
	}
	return models, nil
}

func (r *fakeModelRepo) AverageRating(ctx context.Context) (float64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	sum, count := 0, 0
	for _, m := range r.state.models {
		if m.Rating != nil {
			sum += *m.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

// filter expects the state mutex to be held by the caller.
func (r *fakeModelRepo) filter(specs ...specification.Specification) []*entity.GeneratedModel {
	out := make([]*entity.GeneratedModel, 0, len(r.state.models))
	for _, m := range r.state.models {
		copied := *m
		out = append(out, &copied)
	}

	limit := -1
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByStringID:
			out = keepModels(out, func(m *entity.GeneratedModel) bool { return m.Id == sp.ID })
		case specification.OwnedBy:
			out = keepModels(out, func(m *entity.GeneratedModel) bool { return m.UserId == sp.UserID })
		case specification.ByStatus:
			out = keepModels(out, func(m *entity.GeneratedModel) bool { return string(m.Status) == sp.Status })
		case specification.Completed:
			out = keepModels(out, func(m *entity.GeneratedModel) bool {
				return m.Status == entity.ModelCompleted && m.ModelUrl != nil && m.Prompt != nil
			})
		case specification.ByModelUrlAndPrompt:
			out = keepModels(out, func(m *entity.GeneratedModel) bool {
				return m.ModelUrl != nil && *m.ModelUrl == sp.ModelUrl && m.Prompt != nil && *m.Prompt == sp.Prompt
			})
		case specification.Rated:
			out = keepModels(out, func(m *entity.GeneratedModel) bool { return m.Rating != nil })
		case specification.NewestFirst:
			sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		case specification.Limit:
			limit = sp.Limit
		}
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func keepModels(models []*entity.GeneratedModel, keep func(*entity.GeneratedModel) bool) []*entity.GeneratedModel {
	out := models[:0]
	for _, m := range models {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// Topup repository

type fakeTopupRepo struct {
	state *fakeState
}

func (r *fakeTopupRepo) FindActivePackages(ctx context.Context) ([]*entity.CreditPackage, error) {
	out := []*entity.CreditPackage{}
	for _, pkg := range r.state.packages {
		if pkg.IsActive {
			out = append(out, pkg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeTopupRepo) FindPackage(ctx context.Context, id uuid.UUID) (*entity.CreditPackage, error) {
	pkg, ok := r.state.packages[id]
	if !ok {
		return nil, nil
	}
	return pkg, nil
}

func (r *fakeTopupRepo) UpsertPackage(ctx context.Context, pkg *entity.CreditPackage) error {
	if pkg.Id == uuid.Nil {
		pkg.Id = uuid.New()
	}
	r.state.packages[pkg.Id] = pkg
	return nil
}

func (r *fakeTopupRepo) CreatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error {
	purchase.Id = uuid.New()
	r.state.purchases[purchase.OrderId] = purchase
	return nil
}

func (r *fakeTopupRepo) FindPurchaseByOrderId(ctx context.Context, orderId string) (*entity.CreditPurchase, error) {
	purchase, ok := r.state.purchases[orderId]
	if !ok {
		return nil, nil
	}
	return purchase, nil
}

func (r *fakeTopupRepo) UpdatePurchaseStatus(ctx context.Context, orderId, status string, midtransTransactionId *string) error {
	if err := r.state.failPurchaseStatusUpdate; err != nil {
		r.state.failPurchaseStatusUpdate = nil
		return err
	}
	purchase, ok := r.state.purchases[orderId]
	if !ok {
		return nil
	}
	purchase.Status = status
	if midtransTransactionId != nil {
		purchase.MidtransTransactionId = midtransTransactionId
	}
	return nil
}

// Collaborator fakes

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) SendWelcomeEmail(to string, bonusCredits int) error {
	m.sent = append(m.sent, to)
	return nil
}
