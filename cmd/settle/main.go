// Command settle computes group balances and the transfers that settle them
// from a JSON document, without a server.
//
// Usage:
//
//	settle [-currency USD] [-epsilon 0.01] [-json] [file]
//
// The input names the members and their expenses:
//
//	{
//	  "members": ["alice", "bob", "charlie"],
//	  "expenses": [
//	    {"title": "Dinner", "amount": 90, "paid_by": ["alice"], "participants": ["alice", "bob", "charlie"]},
//	    {"title": "Taxi", "amount": "$12.50", "paid_by": ["bob"], "participants": ["bob", "charlie"]}
//	  ]
//	}
//
// With no file, or "-", the document is read from stdin.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/pkg/money"
)

// amount accepts a JSON number or a string such as "$12.50".
type amount float64

func (a *amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := money.Parse(s)
		if err != nil {
			return err
		}
		*a = amount(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s", money.ErrInvalidAmount, data)
	}
	*a = amount(f)
	return nil
}

type inputExpense struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Amount       amount   `json:"amount"`
	PaidBy       []string `json:"paid_by"`
	Participants []string `json:"participants"`
}

type input struct {
	Members  []string       `json:"members"`
	Expenses []inputExpense `json:"expenses"`
}

type output struct {
	Balances  calculator.Balances   `json:"balances"`
	Transfers []calculator.Transfer `json:"transfers"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("settle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	currency := fs.String("currency", string(money.USD), "currency used to format amounts")
	epsilon := fs.Float64("epsilon", calculator.Epsilon, "balances below this amount count as settled")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "settle: at most one input file")
		return 2
	}

	in, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "settle: %v\n", err)
		return 1
	}

	result, err := settle(in, calculator.Settler{Epsilon: *epsilon})
	if err != nil {
		fmt.Fprintf(stderr, "settle: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "settle: %v\n", err)
			return 1
		}
		return 0
	}
	printTable(stdout, result, money.Currency(strings.ToUpper(*currency)))
	return 0
}

func readInput(path string, stdin io.Reader) (*input, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var in input
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return &in, nil
}

func settle(in *input, settler calculator.Settler) (*output, error) {
	expenses := make([]calculator.Expense, len(in.Expenses))
	for i, e := range in.Expenses {
		id := e.ID
		if id == "" {
			id = e.Title
		}
		expenses[i] = calculator.Expense{
			ID:           id,
			Amount:       float64(e.Amount),
			PaidBy:       e.PaidBy,
			Participants: e.Participants,
		}
	}

	balances, err := calculator.ComputeBalances(in.Members, expenses)
	if err != nil {
		return nil, err
	}
	transfers, err := settler.Simplify(balances)
	if err != nil {
		if errors.Is(err, calculator.ErrInvalidBalanceMap) {
			return nil, fmt.Errorf("balances do not net to zero: %w", err)
		}
		return nil, err
	}
	for i := range transfers {
		transfers[i].Amount = money.RoundCents(transfers[i].Amount)
	}
	return &output{Balances: balances, Transfers: transfers}, nil
}

func printTable(w io.Writer, out *output, c money.Currency) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MEMBER\tPAID\tOWED\tNET")
	for _, b := range out.Balances {
		net := money.Format(b.Net, c)
		if money.RoundCents(b.Net) > 0 {
			net = "+" + net
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Member, money.Format(b.Paid, c), money.Format(b.Owed, c), net)
	}
	tw.Flush()

	fmt.Fprintln(w)
	if len(out.Transfers) == 0 {
		fmt.Fprintln(w, "All settled up.")
		return
	}
	for _, t := range out.Transfers {
		fmt.Fprintf(w, "%s → %s  %s\n", t.From, t.To, money.Format(t.Amount, c))
	}
}
