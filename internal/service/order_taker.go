package service

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/menu"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/receipt"
)

// InputFunc returns the next line of user input. It returns io.EOF once the
// input is exhausted.
type InputFunc func() (string, error)

// LineInput reads newline-terminated lines from r. Lines have no length
// limit; a final line without a newline is still returned.
func LineInput(r io.Reader) InputFunc {
	reader := bufio.NewReader(r)
	return func() (string, error) {
		line, err := reader.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		if err != nil {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

// ScriptedInput replays lines in order, then reports io.EOF.
func ScriptedInput(lines ...string) InputFunc {
	i := 0
	return func() (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	}
}

type loopState int

const (
	stateDisplayMenu loopState = iota
	stateAwaitSelection
	stateAwaitQuantity
	stateAppendItem
	stateAwaitContinue
	stateDone
)

// OrderTaker runs the interactive ordering loop against a catalog.
type OrderTaker struct {
	catalog menu.Catalog
	input   InputFunc
	out     io.Writer
	metrics *metrics.Recorder
	logger  *logging.Logger
}

// NewOrderTaker creates an order taker that reads from input and writes the
// transcript to out.
func NewOrderTaker(catalog menu.Catalog, input InputFunc, out io.Writer, recorder *metrics.Recorder) *OrderTaker {
	return &OrderTaker{
		catalog: catalog,
		input:   input,
		out:     out,
		metrics: recorder,
		logger:  logging.NewLogger("order-taker"),
	}
}

// Run loops until the customer answers "n" or input ends, then returns the
// order and its total. Only a failing input source produces an error.
func (t *OrderTaker) Run() (*models.Order, decimal.Decimal, error) {
	order := &models.Order{}

	var (
		entries  []models.MenuEntry
		selected models.MenuEntry
		quantity int
	)

	fmt.Fprintln(t.out, "Welcome to the Generic Take Out Restaurant.")

	state := stateDisplayMenu
	for state != stateDone {
		switch state {
		case stateDisplayMenu:
			entries = menu.Flatten(t.catalog)
			receipt.WriteMenu(t.out, entries)
			state = stateAwaitSelection

		case stateAwaitSelection:
			line, ok, err := t.ask("Enter the menu item number you want to order: ")
			if err != nil {
				return order, order.Total(), err
			}
			if !ok {
				state = stateDone
				continue
			}

			entry, err := ResolveSelection(line, entries)
			if err != nil {
				t.rejectSelection(err)
				state = stateDisplayMenu
				continue
			}
			selected = entry
			state = stateAwaitQuantity

		case stateAwaitQuantity:
			line, ok, err := t.ask(fmt.Sprintf("How many %s(s) would you like to order? ", selected.Name))
			if err != nil {
				return order, order.Total(), err
			}
			if !ok {
				state = stateDone
				continue
			}

			q, verr := ParseQuantity(line)
			if verr != nil {
				fmt.Fprintf(t.out, "%s. Defaulting to 1.\n", verr.Message)
				t.metrics.QuantityCoerced()
				t.logger.Debug("Quantity coerced", logging.Fields{
					"input": line,
					"kind":  verr.Kind,
				})
			}
			quantity = q
			state = stateAppendItem

		case stateAppendItem:
			order.Add(selected, quantity)
			t.metrics.ItemAdded()
			state = stateAwaitContinue

		case stateAwaitContinue:
			line, ok, err := t.ask("Would you like to order anything else? (type 'n' to quit): ")
			if err != nil {
				return order, order.Total(), err
			}
			if !ok || WantsToStop(line) {
				state = stateDone
				continue
			}
			state = stateDisplayMenu
		}
	}

	fmt.Fprintln(t.out, "Thank you for your order!")

	t.logger.Debug("Order complete", logging.Fields{
		"line_items": order.Len(),
		"total":      order.Total().StringFixed(2),
	})

	return order, order.Total(), nil
}

// ask prints a prompt and reads one line. ok is false when input has ended.
func (t *OrderTaker) ask(prompt string) (line string, ok bool, err error) {
	fmt.Fprint(t.out, prompt)

	line, err = t.input()
	if err == io.EOF {
		fmt.Fprintln(t.out)
		return "", false, nil
	}
	if err != nil {
		t.logger.Error("Failed to read input", logging.Fields{"error": err.Error()})
		return "", false, err
	}
	return line, true, nil
}

func (t *OrderTaker) rejectSelection(err error) {
	verr, ok := errors.AsValidation(err)
	if !ok {
		fmt.Fprintf(t.out, "Invalid selection: %v.\n", err)
		return
	}

	fmt.Fprintf(t.out, "Invalid selection: %s.\n", verr.Message)
	t.metrics.SelectionRejected(verr.Kind)
}
