package bank_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/banking/infra/textstore"
	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/customer"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/exchange"
	"github.com/amirasaad/banking/pkg/ledger"
	"github.com/amirasaad/banking/pkg/money"
	"github.com/amirasaad/banking/pkg/service/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newService(t *testing.T, dir string) *bank.Service {
	t.Helper()
	store, err := textstore.New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	svc := bank.New(store, exchange.NewStaticConverter(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func profile(first, last string) customer.Profile {
	return customer.Profile{
		FirstName:    first,
		LastName:     last,
		Age:          34,
		Gender:       "F",
		Email:        "maria.ionescu@example.com",
		Phone:        "0722334455",
		NationalID:   "2910203456789",
		AddressLine1: "Str. Lalelelor 12",
		City:         "Bucharest",
		PostalCode:   "010101",
		Country:      "RO",
	}
}

func mustMoney(t *testing.T, amount float64, code currency.Code) money.Money {
	t.Helper()
	m, err := money.New(amount, code)
	require.NoError(t, err)
	return m
}

func TestRegisterCustomer(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	c, acc, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)

	assert.Equal(t, "C001", c.ID)
	assert.Equal(t, "A001", acc.ID())
	assert.Equal(t, account.Debit, acc.Kind())
	assert.Equal(t, "0.00 RON", acc.Balance().String())
	assert.Equal(t, "Maria Ionescu", acc.Holder())
	assert.NotEmpty(t, acc.Iban())

	u, err := svc.Authenticate("maria", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "C001", u.CustomerID)

	// The same username cannot register twice, and nothing else is touched.
	_, _, err = svc.RegisterCustomer(ctx, profile("Ioana", "Ionescu"), "maria", "hunter2", currency.RON)
	assert.ErrorIs(t, err, bank.ErrUsernameTaken)
	assert.Len(t, svc.Customers(), 1)

	// An invalid profile burns no identifiers.
	bad := profile("Kid", "Ionescu")
	bad.Age = 12
	_, _, err = svc.RegisterCustomer(ctx, bad, "kid", "hunter2", currency.RON)
	require.ErrorIs(t, err, customer.ErrInvalidCustomer)

	c2, acc2, err := svc.RegisterCustomer(ctx, profile("Ion", "Popescu"), "ion", "parola", currency.EUR)
	require.NoError(t, err)
	assert.Equal(t, "C002", c2.ID)
	assert.Equal(t, "A002", acc2.ID())
	assert.Equal(t, currency.EUR, acc2.Currency())
}

func TestStateSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, acc, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)
	require.NoError(t, svc.Deposit(ctx, acc.ID(), mustMoney(t, 250, currency.RON), "Salary"))

	reloaded := newService(t, dir)

	got, err := reloaded.AccountByID("A001")
	require.NoError(t, err)
	assert.Equal(t, "250.00 RON", got.Balance().String())
	assert.Equal(t, "Maria Ionescu", got.Holder())
	assert.Equal(t, acc.Iban(), got.Iban())

	txs, err := reloaded.Statement("A001")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, account.TxDeposit, txs[0].Kind)
	assert.Equal(t, "Salary", txs[0].Description)

	_, err = reloaded.Authenticate("maria", "hunter2")
	require.NoError(t, err)

	// Generators continue after the highest persisted ids.
	c2, acc2, err := reloaded.RegisterCustomer(ctx, profile("Ion", "Popescu"), "ion", "parola", currency.RON)
	require.NoError(t, err)
	assert.Equal(t, "C002", c2.ID)
	assert.Equal(t, "A002", acc2.ID())
}

func TestOpenAccount(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, _, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)

	savings, err := svc.OpenAccount(ctx, "C001", account.Savings, currency.RON)
	require.NoError(t, err)
	assert.Equal(t, "A002", savings.ID())
	assert.Equal(t, 2.0, savings.InterestRate())

	credit, err := svc.OpenAccount(ctx, "C001", account.Credit, currency.RON)
	require.NoError(t, err)
	assert.Equal(t, "A003", credit.ID())
	assert.Equal(t, 5.0, credit.InterestRate())
	assert.Equal(t, "-5000.00", credit.CreditLimit().Format())
	assert.Equal(t, "5000.00 RON", credit.AvailableCredit().String())

	_, err = svc.OpenAccount(ctx, "C999", account.Debit, currency.RON)
	assert.ErrorIs(t, err, domain.ErrMissingCustomer)

	_, err = svc.OpenAccount(ctx, "C001", account.Debit, currency.Code("GBP"))
	assert.ErrorIs(t, err, currency.ErrUnsupported)

	assert.Len(t, svc.AccountsOf("C001"), 3)
}

func TestDepositAndWithdraw(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, acc, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)

	require.NoError(t, svc.Deposit(ctx, acc.ID(), mustMoney(t, 500, currency.RON), ""))
	require.NoError(t, svc.Withdraw(ctx, acc.ID(), mustMoney(t, 100, currency.RON), ""))

	got, err := svc.AccountByID(acc.ID())
	require.NoError(t, err)
	assert.Equal(t, "400.00 RON", got.Balance().String())

	err = svc.Withdraw(ctx, acc.ID(), mustMoney(t, 1000, currency.RON), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	err = svc.Deposit(ctx, "A999", mustMoney(t, 10, currency.RON), "")
	assert.ErrorIs(t, err, domain.ErrMissingAccount)

	txs, err := svc.Statement(acc.ID())
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestTransferInternalThroughService(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, ron, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)
	eur, err := svc.OpenAccount(ctx, "C001", account.Debit, currency.EUR)
	require.NoError(t, err)
	require.NoError(t, svc.Deposit(ctx, ron.ID(), mustMoney(t, 200, currency.RON), ""))

	require.NoError(t, svc.TransferInternal(ctx, ron.ID(), eur.ID(), mustMoney(t, 100, currency.RON), "Holiday"))

	gotRon, err := svc.AccountByID(ron.ID())
	require.NoError(t, err)
	gotEur, err := svc.AccountByID(eur.ID())
	require.NoError(t, err)
	assert.Equal(t, "100.00 RON", gotRon.Balance().String())
	assert.Equal(t, "20.00 EUR", gotEur.Balance().String())

	// Reload to prove both legs and the histories hit the disk.
	reloaded := newService(t, dir)
	txs, err := reloaded.Statement(eur.ID())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, account.TxTransferReceived, txs[0].Kind)
	assert.Equal(t, "From: Maria Ionescu / Holiday", txs[0].Description)
}

func TestTransferExternalByIban(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, sender, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)
	_, receiver, err := svc.RegisterCustomer(ctx, profile("Ion", "Popescu"), "ion", "parola", currency.EUR)
	require.NoError(t, err)
	require.NoError(t, svc.Deposit(ctx, sender.ID(), mustMoney(t, 300, currency.RON), ""))

	err = svc.TransferExternal(ctx, sender.ID(), receiver.Iban(), mustMoney(t, 100, currency.RON), "Rent")
	require.NoError(t, err)

	gotReceiver, err := svc.AccountByID(receiver.ID())
	require.NoError(t, err)
	assert.Equal(t, "20.00 EUR", gotReceiver.Balance().String())

	txs, err := svc.Statement(receiver.ID())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "From: Maria Ionescu / Rent", txs[0].Description)

	err = svc.TransferExternal(ctx, sender.ID(), account.Iban("RO00SMTB0000XXXX00"), mustMoney(t, 10, currency.RON), "")
	assert.ErrorIs(t, err, domain.ErrMissingAccount)
}

func TestCreditLifecycle(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, debit, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)
	credit, err := svc.OpenAccount(ctx, "C001", account.Credit, currency.RON)
	require.NoError(t, err)

	require.NoError(t, svc.DrawCredit(ctx, credit.ID(), debit.ID(), mustMoney(t, 200, currency.RON)))

	gotCredit, err := svc.AccountByID(credit.ID())
	require.NoError(t, err)
	gotDebit, err := svc.AccountByID(debit.ID())
	require.NoError(t, err)
	assert.Equal(t, "-200.00 RON", gotCredit.Balance().String())
	assert.Equal(t, "200.00 RON", gotDebit.Balance().String())

	err = svc.RepayCredit(ctx, credit.ID(), debit.ID(), mustMoney(t, 250, currency.RON))
	assert.ErrorIs(t, err, ledger.ErrRepayExceedsDebt)

	require.NoError(t, svc.RepayCredit(ctx, credit.ID(), debit.ID(), mustMoney(t, 150, currency.RON)))
	gotCredit, err = svc.AccountByID(credit.ID())
	require.NoError(t, err)
	assert.Equal(t, "-50.00 RON", gotCredit.Balance().String())

	txs, err := svc.Statement(credit.ID())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, account.TxCreditTaken, txs[0].Kind)
	assert.Equal(t, account.TxDeposit, txs[1].Kind)
}

func TestSavingsLifecycleWithMonthlyRun(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, debit, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)
	savings, err := svc.OpenAccount(ctx, "C001", account.Savings, currency.RON)
	require.NoError(t, err)
	require.NoError(t, svc.Deposit(ctx, debit.ID(), mustMoney(t, 1000, currency.RON), ""))

	require.NoError(t, svc.FundSavings(ctx, debit.ID(), savings.ID(), mustMoney(t, 500, currency.RON)))

	affected, err := svc.RunMonthlyProcessing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	gotSavings, err := svc.AccountByID(savings.ID())
	require.NoError(t, err)
	assert.Equal(t, "510.00 RON", gotSavings.Balance().String())

	require.NoError(t, svc.RedeemSavings(ctx, savings.ID(), debit.ID(), mustMoney(t, 510, currency.RON)))
	gotSavings, err = svc.AccountByID(savings.ID())
	require.NoError(t, err)
	assert.Equal(t, "0.00 RON", gotSavings.Balance().String())
	gotDebit, err := svc.AccountByID(debit.ID())
	require.NoError(t, err)
	assert.Equal(t, "1010.00 RON", gotDebit.Balance().String())

	// The interest record survives a reload.
	reloaded := newService(t, dir)
	txs, err := reloaded.Statement(savings.ID())
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, account.TxInterestApplied, txs[1].Kind)
	assert.Equal(t, "Monthly savings interest applied.", txs[1].Description)
}

func TestAuthenticateRejections(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)
	ctx := context.Background()

	_, _, err := svc.RegisterCustomer(ctx, profile("Maria", "Ionescu"), "maria", "hunter2", currency.RON)
	require.NoError(t, err)

	_, err = svc.Authenticate("maria", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody", "hunter2")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
