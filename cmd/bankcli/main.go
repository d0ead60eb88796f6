package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/amirasaad/banking/infra/boot"
	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/customer"
	"github.com/amirasaad/banking/pkg/money"
	"github.com/amirasaad/banking/pkg/service/bank"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	headText = color.New(color.FgCyan, color.Bold)
	errText  = color.New(color.FgRed, color.Bold)
)

func usage() {
	fmt.Println("Usage: bankcli <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register <username> <first> <last> <age> <gender> <email> <phone> <national-id> <address> <city> <postal> <country> [currency]")
	fmt.Println("  login <username>")
	fmt.Println("  accounts <customer-id>")
	fmt.Println("  open <customer-id> <D|S|C> [currency]")
	fmt.Println("  deposit <account-id> <amount> [description]")
	fmt.Println("  withdraw <account-id> <amount> [description]")
	fmt.Println("  transfer <from-account> <to-account> <amount> [description]")
	fmt.Println("  transfer-ext <from-account> <to-iban> <amount> [description]")
	fmt.Println("  credit <credit-account> <debit-account> <amount>")
	fmt.Println("  repay <credit-account> <debit-account> <amount>")
	fmt.Println("  save <debit-account> <savings-account> <amount>")
	fmt.Println("  redeem <savings-account> <debit-account> <amount>")
	fmt.Println("  statement <account-id>")
	fmt.Println("  monthly")
	fmt.Println("  rates")
}

func fail(err error) {
	errText.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
	os.Exit(1)
}

func badUsage(hint string) {
	errText.Fprintln(os.Stderr, "Usage:", hint) //nolint:errcheck
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	deps, err := boot.Initialize()
	if err != nil {
		fail(err)
	}
	ctx := context.Background()
	svc := deps.Bank
	args := os.Args[2:]

	switch os.Args[1] {
	case "register":
		cmdRegister(ctx, svc, args)
	case "login":
		cmdLogin(svc, args)
	case "accounts":
		cmdAccounts(svc, args)
	case "open":
		cmdOpen(ctx, svc, args)
	case "deposit":
		cmdDeposit(ctx, svc, args)
	case "withdraw":
		cmdWithdraw(ctx, svc, args)
	case "transfer":
		cmdTransfer(ctx, svc, args)
	case "transfer-ext":
		cmdTransferExt(ctx, svc, args)
	case "credit":
		cmdCredit(ctx, svc, args)
	case "repay":
		cmdRepay(ctx, svc, args)
	case "save":
		cmdSave(ctx, svc, args)
	case "redeem":
		cmdRedeem(ctx, svc, args)
	case "statement":
		cmdStatement(svc, args)
	case "monthly":
		cmdMonthly(ctx, svc)
	case "rates":
		cmdRates(svc)
	default:
		errText.Fprintln(os.Stderr, "Unknown command:", os.Args[1]) //nolint:errcheck
		usage()
		os.Exit(2)
	}
}

// promptPassword reads a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// amountArg parses a user-entered amount in the given account's currency.
func amountArg(raw string, code currency.Code) (money.Money, error) {
	m, err := money.Parse(raw, code)
	if err != nil {
		return money.Money{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return m, nil
}

func cmdRegister(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) < 12 || len(args) > 13 {
		badUsage("register <username> <first> <last> <age> <gender> <email> <phone> <national-id> <address> <city> <postal> <country> [currency]")
	}
	age, err := strconv.Atoi(args[3])
	if err != nil {
		fail(fmt.Errorf("invalid age %q", args[3]))
	}
	code := currency.RON
	if len(args) == 13 {
		code = currency.Normalize(args[12])
	}

	password, err := promptPassword("Choose a password: ")
	if err != nil {
		fail(err)
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		fail(err)
	}
	if password != confirm {
		fail(fmt.Errorf("passwords do not match"))
	}

	c, acc, err := svc.RegisterCustomer(ctx, customer.Profile{
		FirstName:    args[1],
		LastName:     args[2],
		Age:          age,
		Gender:       args[4],
		Email:        args[5],
		Phone:        args[6],
		NationalID:   args[7],
		AddressLine1: args[8],
		City:         args[9],
		PostalCode:   args[10],
		Country:      args[11],
	}, args[0], password, code)
	if err != nil {
		fail(err)
	}
	color.Green("Welcome, %s!", c.FullName())
	fmt.Printf("Customer %s registered with %s account %s\n", c.ID, acc.Currency(), acc.ID())
	fmt.Printf("IBAN: %s\n", acc.Iban())
}

func cmdLogin(svc *bank.Service, args []string) {
	if len(args) != 1 {
		badUsage("login <username>")
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fail(err)
	}
	u, err := svc.Authenticate(args[0], password)
	if err != nil {
		fail(err)
	}
	color.Green("Logged in as %s (role %s, customer %s)", u.Username, u.Role, u.CustomerID)
}

func cmdAccounts(svc *bank.Service, args []string) {
	if len(args) != 1 {
		badUsage("accounts <customer-id>")
	}
	accounts := svc.AccountsOf(args[0])
	if len(accounts) == 0 {
		fmt.Println("No accounts.")
		return
	}
	headText.Printf("%-6s %-8s %14s  %-26s %s\n", "ID", "TYPE", "BALANCE", "IBAN", "TERMS") //nolint:errcheck
	for _, a := range accounts {
		terms := ""
		switch a.Kind() {
		case account.Savings:
			terms = fmt.Sprintf("%.1f%%/month", a.InterestRate())
		case account.Credit:
			terms = fmt.Sprintf("%.1f%%/month, available %s", a.InterestRate(), a.AvailableCredit())
		}
		fmt.Printf("%-6s %-8s %14s  %-26s %s\n",
			a.ID(), a.Kind(), a.Balance(), a.Iban(), terms)
	}
}

func cmdOpen(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) < 2 || len(args) > 3 {
		badUsage("open <customer-id> <D|S|C> [currency]")
	}
	if len(args[1]) != 1 {
		fail(fmt.Errorf("invalid account type %q", args[1]))
	}
	kind, err := account.ParseKind(args[1][0])
	if err != nil {
		fail(err)
	}
	code := currency.RON
	if len(args) == 3 {
		code = currency.Normalize(args[2])
	}
	acc, err := svc.OpenAccount(ctx, args[0], kind, code)
	if err != nil {
		fail(err)
	}
	color.Green("Opened %s account %s (%s)", kind, acc.ID(), acc.Currency())
	fmt.Printf("IBAN: %s\n", acc.Iban())
}

func cmdDeposit(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) < 2 {
		badUsage("deposit <account-id> <amount> [description]")
	}
	acc, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[1], acc.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.Deposit(ctx, acc.ID(), amount, optional(args, 2)); err != nil {
		fail(err)
	}
	printBalance(svc, acc.ID())
}

func cmdWithdraw(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) < 2 {
		badUsage("withdraw <account-id> <amount> [description]")
	}
	acc, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[1], acc.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.Withdraw(ctx, acc.ID(), amount, optional(args, 2)); err != nil {
		fail(err)
	}
	printBalance(svc, acc.ID())
}

func cmdTransfer(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) < 3 {
		badUsage("transfer <from-account> <to-account> <amount> [description]")
	}
	from, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[2], from.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.TransferInternal(ctx, args[0], args[1], amount, optional(args, 3)); err != nil {
		fail(err)
	}
	color.Green("Transfer complete.")
	printBalance(svc, args[0])
	printBalance(svc, args[1])
}

func cmdTransferExt(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) < 3 {
		badUsage("transfer-ext <from-account> <to-iban> <amount> [description]")
	}
	from, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[2], from.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.TransferExternal(ctx, args[0], account.Iban(args[1]), amount, optional(args, 3)); err != nil {
		fail(err)
	}
	color.Green("Transfer sent.")
	printBalance(svc, args[0])
}

func cmdCredit(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) != 3 {
		badUsage("credit <credit-account> <debit-account> <amount>")
	}
	credit, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[2], credit.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.DrawCredit(ctx, args[0], args[1], amount); err != nil {
		fail(err)
	}
	color.Green("Credit drawn.")
	printBalance(svc, args[0])
	printBalance(svc, args[1])
}

func cmdRepay(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) != 3 {
		badUsage("repay <credit-account> <debit-account> <amount>")
	}
	credit, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[2], credit.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.RepayCredit(ctx, args[0], args[1], amount); err != nil {
		fail(err)
	}
	color.Green("Credit repaid.")
	printBalance(svc, args[0])
	printBalance(svc, args[1])
}

func cmdSave(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) != 3 {
		badUsage("save <debit-account> <savings-account> <amount>")
	}
	debit, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[2], debit.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.FundSavings(ctx, args[0], args[1], amount); err != nil {
		fail(err)
	}
	color.Green("Savings funded.")
	printBalance(svc, args[1])
}

func cmdRedeem(ctx context.Context, svc *bank.Service, args []string) {
	if len(args) != 3 {
		badUsage("redeem <savings-account> <debit-account> <amount>")
	}
	savings, err := svc.AccountByID(args[0])
	if err != nil {
		fail(err)
	}
	amount, err := amountArg(args[2], savings.Currency())
	if err != nil {
		fail(err)
	}
	if err := svc.RedeemSavings(ctx, args[0], args[1], amount); err != nil {
		fail(err)
	}
	color.Green("Savings redeemed.")
	printBalance(svc, args[1])
}

func cmdStatement(svc *bank.Service, args []string) {
	if len(args) != 1 {
		badUsage("statement <account-id>")
	}
	txs, err := svc.Statement(args[0])
	if err != nil {
		fail(err)
	}
	if len(txs) == 0 {
		fmt.Println("No transactions.")
		return
	}
	headText.Printf("%-20s %-18s %14s  %s\n", "TIME", "TYPE", "AMOUNT", "DESCRIPTION") //nolint:errcheck
	for _, tx := range txs {
		line := fmt.Sprintf("%-20s %-18s %14s  %s",
			tx.Time.Format("2006-01-02 15:04:05"), tx.Kind, tx.Amount.Format(), tx.Description)
		if tx.Amount.IsNegative() {
			fmt.Println(line)
		} else {
			color.Green("%s", line)
		}
	}
	printBalance(svc, args[0])
}

func cmdMonthly(ctx context.Context, svc *bank.Service) {
	affected, err := svc.RunMonthlyProcessing(ctx)
	if err != nil {
		fail(err)
	}
	color.Green("Monthly processing applied to %d account(s).", affected)
}

func cmdRates(svc *bank.Service) {
	codes := currency.List()
	headText.Println("Exchange rates:") //nolint:errcheck
	for _, from := range codes {
		for _, to := range codes {
			if from == to || !svc.Converter().IsSupported(from, to) {
				continue
			}
			rate, err := svc.Converter().GetRate(from, to)
			if err != nil {
				continue
			}
			fmt.Printf("  1 %s = %.4f %s\n", from, rate, to)
		}
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func printBalance(svc *bank.Service, accountID string) {
	acc, err := svc.AccountByID(accountID)
	if err != nil {
		return
	}
	fmt.Printf("%s balance: %s\n", acc.ID(), acc.Balance())
}
