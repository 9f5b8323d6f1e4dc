// Package console implements the interactive menu that drives the ledger.
// It owns all raw-string parsing and display formatting; the ledger core
// never sees unvalidated input.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/minibank/internal/ledger"
)

// Options carries the defaults offered by the batch-apply prompts.
type Options struct {
	SavingsRate   float64
	CurrentCharge float64
}

// Console runs the menu loop against an injected reader and writer.
type Console struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	out    io.Writer
	opts   Options
}

// New creates a console bound to the given ledger and streams.
func New(l *ledger.Ledger, in io.Reader, out io.Writer, opts Options) *Console {
	return &Console{
		ledger: l,
		in:     bufio.NewScanner(in),
		out:    out,
		opts:   opts,
	}
}

// Run processes menu selections until the user quits or input ends.
func (c *Console) Run() error {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "********************")
		fmt.Fprintln(c.out, "1 - Create account")
		fmt.Fprintln(c.out, "2 - Check balance")
		fmt.Fprintln(c.out, "3 - Withdraw")
		fmt.Fprintln(c.out, "4 - Deposit")
		fmt.Fprintln(c.out, "5 - List accounts")
		fmt.Fprintln(c.out, "6 - Transfer between accounts")
		fmt.Fprintln(c.out, "7 - Transaction history")
		fmt.Fprintln(c.out, "8 - Apply interest and charges")
		fmt.Fprintln(c.out, "9 - Quit")
		fmt.Fprint(c.out, "Select an option: ")

		line, ok := c.readLine()
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		option, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid option.")
			continue
		}

		switch option {
		case 1:
			c.createAccount()
		case 2:
			c.checkBalance()
		case 3:
			c.withdraw()
		case 4:
			c.deposit()
		case 5:
			c.listAccounts()
		case 6:
			c.transfer()
		case 7:
			c.history()
		case 8:
			c.applyInterestAndCharges()
		case 9:
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid option.")
		}
	}
}

func (c *Console) createAccount() {
	fmt.Fprint(c.out, "Account holder name: ")
	name, ok := c.readLine()
	if !ok || name == "" {
		fmt.Fprintln(c.out, "Name cannot be empty.")
		return
	}

	fmt.Fprint(c.out, "Type (1=Current, 2=Savings): ")
	t, _ := c.readLine()
	kind := ledger.KindCurrent
	if t == "2" {
		kind = ledger.KindSavings
	}

	initial, ok := c.promptFloat("Initial balance: ")
	if !ok {
		return
	}

	a := c.ledger.CreateAccount(name, kind, initial)
	fmt.Fprintf(c.out, "Account created: %s\n", a)
}

func (c *Console) checkBalance() {
	a, ok := c.promptAccount()
	if !ok {
		return
	}
	fmt.Fprintf(c.out, "Balance: %.2f\n", a.Balance())
}

func (c *Console) withdraw() {
	a, ok := c.promptAccount()
	if !ok {
		return
	}
	amount, ok := c.promptFloat("Amount to withdraw: ")
	if !ok {
		return
	}
	if err := a.Withdraw(amount); err != nil {
		fmt.Fprintf(c.out, "Operation failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Withdrawal successful. New balance: %.2f\n", a.Balance())
}

func (c *Console) deposit() {
	a, ok := c.promptAccount()
	if !ok {
		return
	}
	amount, ok := c.promptFloat("Amount to deposit: ")
	if !ok {
		return
	}
	if err := a.Deposit(amount); err != nil {
		fmt.Fprintf(c.out, "Operation failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Deposit successful. New balance: %.2f\n", a.Balance())
}

func (c *Console) listAccounts() {
	accounts := c.ledger.Accounts()
	if len(accounts) == 0 {
		fmt.Fprintln(c.out, "No accounts.")
		return
	}
	for _, a := range accounts {
		fmt.Fprintln(c.out, a)
	}
}

func (c *Console) transfer() {
	fromID, ok := c.promptID("Source account ID: ")
	if !ok {
		return
	}
	toID, ok := c.promptID("Destination account ID: ")
	if !ok {
		return
	}
	amount, ok := c.promptFloat("Amount to transfer: ")
	if !ok {
		return
	}
	if err := c.ledger.Transfer(fromID, toID, amount); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Transfer successful.")
}

func (c *Console) history() {
	id, ok := c.promptID("Account ID for history: ")
	if !ok {
		return
	}
	records := c.ledger.History(id)
	if len(records) == 0 {
		fmt.Fprintln(c.out, "Account not found or no transactions.")
		return
	}
	fmt.Fprintln(c.out, "Transaction history:")
	for _, r := range records {
		fmt.Fprintln(c.out, r)
	}
}

func (c *Console) applyInterestAndCharges() {
	rate, ok := c.promptFloatDefault(
		fmt.Sprintf("Savings interest rate %% [%.2f]: ", c.opts.SavingsRate), c.opts.SavingsRate)
	if !ok {
		return
	}
	charge, ok := c.promptFloatDefault(
		fmt.Sprintf("Current account charge [%.2f]: ", c.opts.CurrentCharge), c.opts.CurrentCharge)
	if !ok {
		return
	}

	res := c.ledger.ApplyInterestAndCharges(rate, charge)
	fmt.Fprintf(c.out, "Applied to %d account(s).\n", res.Applied)
	for _, f := range res.Failures {
		fmt.Fprintf(c.out, "Error on account %d: %v\n", f.AccountID, f.Err)
	}
}

func (c *Console) promptAccount() (*ledger.Account, bool) {
	id, ok := c.promptID("Enter account ID: ")
	if !ok {
		return nil, false
	}
	a, found := c.ledger.Account(id)
	if !found {
		fmt.Fprintln(c.out, "Account not found.")
		return nil, false
	}
	return a, true
}

func (c *Console) promptID(label string) (int64, bool) {
	fmt.Fprint(c.out, label)
	line, ok := c.readLine()
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid ID.")
		return 0, false
	}
	return id, true
}

func (c *Console) promptFloat(label string) (float64, bool) {
	fmt.Fprint(c.out, label)
	line, ok := c.readLine()
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid amount.")
		return 0, false
	}
	return v, true
}

func (c *Console) promptFloatDefault(label string, def float64) (float64, bool) {
	fmt.Fprint(c.out, label)
	line, ok := c.readLine()
	if !ok {
		return 0, false
	}
	if line == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid amount.")
		return 0, false
	}
	return v, true
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
