package mocks

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository. Any Func field, when
// set, overrides the default behavior.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByNameFunc         func(ctx context.Context, name string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	ListFunc              func(ctx context.Context, activeOnly bool) ([]*domain.Account, error)
	UpdateFunc            func(ctx context.Context, account *domain.Account) error
	DeactivateFunc        func(ctx context.Context, id string, updatedAt time.Time) error
	DeleteFunc            func(ctx context.Context, id string) error
	ApplyBalanceDeltaFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Name == name {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if activeOnly && !acc.IsActive {
			continue
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, id string, updatedAt time.Time) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.IsActive = false
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyBalanceDeltaFunc != nil {
		return m.ApplyBalanceDeltaFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.UpdatedAt = updatedAt
	return nil
}

// MockCategoryRepository is an in-memory CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc           func(ctx context.Context, category *domain.Category) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Category, error)
	GetByNameAndTypeFunc func(ctx context.Context, name string, typ domain.TransactionType) (*domain.Category, error)
	ListFunc             func(ctx context.Context, typeFilter *domain.TransactionType, activeOnly bool) ([]*domain.Category, error)
	UpdateFunc           func(ctx context.Context, category *domain.Category) error
	DeleteFunc           func(ctx context.Context, id string) error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) GetByNameAndType(ctx context.Context, name string, typ domain.TransactionType) (*domain.Category, error) {
	if m.GetByNameAndTypeFunc != nil {
		return m.GetByNameAndTypeFunc(ctx, name, typ)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if strings.EqualFold(c.Name, name) && c.Type == typ {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context, typeFilter *domain.TransactionType, activeOnly bool) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, typeFilter, activeOnly)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, c := range m.categories {
		if typeFilter != nil && c.Type != *typeFilter {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc                  func(ctx context.Context, txn *domain.Transaction) error
	CreateTxFunc                func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.Transaction, error)
	ListFunc                    func(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, int64, error)
	UpdateFunc                  func(ctx context.Context, txn *domain.Transaction) error
	DeleteTxFunc                func(ctx context.Context, tx usecase.Transaction, id string) error
	CountByAccountFunc          func(ctx context.Context, accountID string) (int64, error)
	ExistsAutomaticForOrderFunc func(ctx context.Context, orderID string) (bool, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, txn)
	}
	return m.Create(ctx, txn)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, txn := range m.transactions {
		txns = append(txns, txn)
	}
	return txns, int64(len(txns)), nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[txn.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	if m.CountByAccountFunc != nil {
		return m.CountByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, txn := range m.transactions {
		if txn.AccountID != nil && *txn.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (m *MockTransactionRepository) ExistsAutomaticForOrder(ctx context.Context, orderID string) (bool, error) {
	if m.ExistsAutomaticForOrderFunc != nil {
		return m.ExistsAutomaticForOrderFunc(ctx, orderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.transactions {
		if txn.IsAutomatic && txn.OrderID != nil && *txn.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

// MockCustomerRepository is an in-memory CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer // keyed by phone
	nextID    int

	GetByPhoneFunc  func(ctx context.Context, phone string) (*domain.Customer, error)
	RecordOrderFunc func(ctx context.Context, tx usecase.Transaction, phone, name string, amount decimal.Decimal, at time.Time) (*domain.Customer, error)
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	if m.GetByPhoneFunc != nil {
		return m.GetByPhoneFunc(ctx, phone)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[phone]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) RecordOrder(ctx context.Context, tx usecase.Transaction, phone, name string, amount decimal.Decimal, at time.Time) (*domain.Customer, error) {
	if m.RecordOrderFunc != nil {
		return m.RecordOrderFunc(ctx, tx, phone, name, amount, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[phone]
	if !ok {
		m.nextID++
		c = &domain.Customer{
			ID:         "cust-" + strconv.Itoa(m.nextID),
			Phone:      phone,
			Name:       name,
			TotalSpent: decimal.Zero,
			CreatedAt:  at,
		}
		m.customers[phone] = c
	}
	c.TotalOrders++
	c.TotalSpent = c.TotalSpent.Add(amount)
	orderAt := at
	c.LastOrderAt = &orderAt
	c.UpdatedAt = at
	return c, nil
}

// MockTransactionManager hands out no-op transactions and counts lifecycle
// calls so tests can assert commit/rollback behavior.
type MockTransactionManager struct {
	mu        sync.Mutex
	Begun     int
	Committed int
	Rolled    int

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	m.Begun++
	m.mu.Unlock()
	return &MockTransaction{manager: m}, nil
}

// MockTransaction is the no-op transaction the MockTransactionManager returns.
type MockTransaction struct {
	manager   *MockTransactionManager
	committed bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.committed = true
	if t.manager != nil {
		t.manager.mu.Lock()
		t.manager.Committed++
		t.manager.mu.Unlock()
	}
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	if t.manager != nil {
		t.manager.mu.Lock()
		t.manager.Rolled++
		t.manager.mu.Unlock()
	}
	return nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + strconv.Itoa(m.next)
}

// MockScheduler records Schedule/Cancel calls.
type MockScheduler struct {
	mu        sync.Mutex
	Scheduled int
	Cancelled int
}

func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

func (m *MockScheduler) Schedule() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scheduled++
}

func (m *MockScheduler) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cancelled++
}
