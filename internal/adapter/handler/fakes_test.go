package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amanik/pesabank/internal/core/domain"
)

// fakeBank is an in-memory stand-in for the storage repositories. A single
// mutex serializes every mutating call, modeling the row locks the real
// store takes: a transfer's balance check always observes the previous
// transfer's committed debit.
type fakeBank struct {
	mu           sync.Mutex
	clock        time.Time
	users        map[string]*domain.User // by email
	accounts     []*fakeAccount
	transactions []domain.Transaction
	payments     []domain.Payment
}

type fakeAccount struct {
	id            uuid.UUID
	userID        uuid.UUID
	accountNumber string
	fullName      string
	email         string
	balance       decimal.Decimal
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		users: make(map[string]*domain.User),
	}
}

// tick returns strictly increasing timestamps so newest-first ordering is
// unambiguous in tests.
func (f *fakeBank) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeBank) byUser(userID uuid.UUID) *fakeAccount {
	for _, a := range f.accounts {
		if a.userID == userID {
			return a
		}
	}
	return nil
}

func (f *fakeBank) byNumber(number string) *fakeAccount {
	for _, a := range f.accounts {
		if a.accountNumber == number {
			return a
		}
	}
	return nil
}

// seedAccount registers an account with a starting balance, bypassing the
// register flow.
func (f *fakeBank) seedAccount(userID uuid.UUID, number, name, balance string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = append(f.accounts, &fakeAccount{
		id:            uuid.New(),
		userID:        userID,
		accountNumber: number,
		fullName:      name,
		email:         name + "@example.com",
		balance:       decimal.RequireFromString(balance),
	})
}

func (f *fakeBank) balanceOf(number string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byNumber(number).balance
}

// --- UserStore ---

func (f *fakeBank) CreateUser(_ context.Context, email, passwordHash, fullName string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		CreatedAt:    f.tick(),
	}
	f.users[email] = user
	f.accounts = append(f.accounts, &fakeAccount{
		id:            uuid.New(),
		userID:        user.ID,
		accountNumber: "1000000000",
		fullName:      fullName,
		email:         email,
		balance:       decimal.Zero,
	})
	return user, nil
}

func (f *fakeBank) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// --- AccountStore ---

func (f *fakeBank) GetAccountByOwner(_ context.Context, userID uuid.UUID) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc := f.byUser(userID)
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.Account{
		ID:            acc.id,
		UserID:        acc.userID,
		AccountNumber: acc.accountNumber,
		Balance:       acc.balance,
		FullName:      acc.fullName,
		Email:         acc.email,
	}, nil
}

func (f *fakeBank) GetAccountByNumber(_ context.Context, number string) (*domain.AccountSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc := f.byNumber(number)
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.AccountSummary{AccountNumber: acc.accountNumber, FullName: acc.fullName}, nil
}

// --- LedgerStore ---

func (f *fakeBank) Transfer(_ context.Context, senderUserID uuid.UUID, recipientNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sender := f.byUser(senderUserID)
	if sender == nil {
		return nil, domain.ErrSenderAccountNotFound
	}
	recipient := f.byNumber(recipientNumber)
	if recipient == nil {
		return nil, domain.ErrRecipientAccountNotFound
	}
	if sender.balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	sender.balance = sender.balance.Sub(amount)
	recipient.balance = recipient.balance.Add(amount)

	t := domain.Transaction{
		ID:                     uuid.New(),
		SenderAccountNumber:    sender.accountNumber,
		RecipientAccountNumber: recipient.accountNumber,
		SenderName:             sender.fullName,
		RecipientName:          recipient.fullName,
		Amount:                 amount,
		Type:                   "transfer",
		CreatedAt:              f.tick(),
	}
	f.transactions = append(f.transactions, t)
	return &t, nil
}

func (f *fakeBank) History(_ context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc := f.byUser(userID)
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	out := []domain.Transaction{}
	for i := len(f.transactions) - 1; i >= 0; i-- {
		t := f.transactions[i]
		if t.SenderAccountNumber == acc.accountNumber || t.RecipientAccountNumber == acc.accountNumber {
			out = append(out, t)
		}
	}
	return out, nil
}

// --- PaymentStore ---

// fakePayments adapts fakeBank to the PaymentStore interface; the method
// set clashes with LedgerStore on History otherwise.
type fakePayments struct {
	*fakeBank
}

func (f fakePayments) History(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	return f.PaymentHistory(ctx, userID)
}

func (f *fakeBank) CreatePayment(_ context.Context, userID uuid.UUID, paymentType, referenceNumber string, amount decimal.Decimal) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc := f.byUser(userID)
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	if acc.balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}
	acc.balance = acc.balance.Sub(amount)

	p := domain.Payment{
		ID:              uuid.New(),
		UserID:          userID,
		PaymentType:     paymentType,
		ReferenceNumber: referenceNumber,
		Amount:          amount,
		Status:          domain.PaymentCompleted,
		CreatedAt:       f.tick(),
	}
	f.payments = append(f.payments, p)
	return &p, nil
}

func (f *fakeBank) PaymentHistory(_ context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Payment{}
	for i := len(f.payments) - 1; i >= 0; i-- {
		if f.payments[i].UserID == userID {
			out = append(out, f.payments[i])
		}
	}
	return out, nil
}

func (f *fakeBank) UpdateStatus(_ context.Context, paymentID, userID uuid.UUID, status string) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.payments {
		if f.payments[i].ID == paymentID && f.payments[i].UserID == userID {
			f.payments[i].Status = status
			p := f.payments[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}
