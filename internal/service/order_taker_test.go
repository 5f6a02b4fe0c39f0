package service

import (
	"bytes"
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/menu"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

func twoItemCatalog() menu.Catalog {
	return menu.New(
		menu.Category{Name: "A", Items: []menu.Item{{Name: "x", Price: decimal.RequireFromString("1.00")}}},
		menu.Category{Name: "B", Items: []menu.Item{{Name: "y", Price: decimal.RequireFromString("2.50")}}},
	)
}

func runScript(t *testing.T, catalog menu.Catalog, lines ...string) (*models.Order, decimal.Decimal, string, *metrics.Recorder) {
	t.Helper()

	var out bytes.Buffer
	recorder := metrics.New()
	taker := NewOrderTaker(catalog, ScriptedInput(lines...), &out, recorder)

	order, total, err := taker.Run()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return order, total, out.String(), recorder
}

func TestOrderTaker_SingleSelection(t *testing.T) {
	order, total, _, _ := runScript(t, twoItemCatalog(), "2", "3", "n")

	if order.Len() != 1 {
		t.Fatalf("Expected 1 line item, got %d", order.Len())
	}

	item := order.Items[0]
	if item.Name != "B - y" {
		t.Errorf("Expected name 'B - y', got %q", item.Name)
	}
	if !item.Price.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("Expected price 2.50, got %s", item.Price)
	}
	if item.Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", item.Quantity)
	}
	if !total.Equal(decimal.RequireFromString("7.50")) {
		t.Errorf("Expected total 7.50, got %s", total)
	}
}

func TestOrderTaker_OutOfRangeSelectionAppendsNothing(t *testing.T) {
	order, total, out, recorder := runScript(t, twoItemCatalog(), "3")

	if order.Len() != 0 {
		t.Errorf("Expected empty order, got %d items", order.Len())
	}
	if !total.IsZero() {
		t.Errorf("Expected zero total, got %s", total)
	}
	if !strings.Contains(out, "Invalid selection") {
		t.Errorf("Expected invalid selection diagnostic, got:\n%s", out)
	}
	if got := testutil.ToFloat64(recorder.SelectionsRejected.WithLabelValues(KindOutOfRange)); got != 1 {
		t.Errorf("Expected 1 out_of_range rejection, got %v", got)
	}
}

func TestOrderTaker_RejectedSelectionRedrawsMenu(t *testing.T) {
	order, _, out, recorder := runScript(t, twoItemCatalog(), "abc", "0", "1", "1", "n")

	if order.Len() != 1 {
		t.Fatalf("Expected 1 line item, got %d", order.Len())
	}

	if got := strings.Count(out, "Item # | Item name"); got != 3 {
		t.Errorf("Expected menu to be drawn 3 times, got %d", got)
	}
	if got := testutil.ToFloat64(recorder.SelectionsRejected.WithLabelValues(KindNotANumber)); got != 1 {
		t.Errorf("Expected 1 not_a_number rejection, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.SelectionsRejected.WithLabelValues(KindOutOfRange)); got != 1 {
		t.Errorf("Expected 1 out_of_range rejection, got %v", got)
	}
}

func TestOrderTaker_InvalidQuantityCoercedToOne(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
	}{
		{"non-numeric", "abc"},
		{"zero", "0"},
		{"negative", "-4"},
		{"empty", ""},
		{"decimal", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, _, out, recorder := runScript(t, twoItemCatalog(), "1", tt.quantity, "n")

			if order.Len() != 1 {
				t.Fatalf("Expected 1 line item, got %d", order.Len())
			}
			if order.Items[0].Quantity != 1 {
				t.Errorf("Expected quantity 1, got %d", order.Items[0].Quantity)
			}
			if !strings.Contains(out, "Defaulting to 1") {
				t.Errorf("Expected coercion warning, got:\n%s", out)
			}
			if got := testutil.ToFloat64(recorder.QuantitiesCoerced); got != 1 {
				t.Errorf("Expected 1 coercion, got %v", got)
			}
		})
	}
}

func TestOrderTaker_SameItemTwiceIsNotMerged(t *testing.T) {
	order, total, _, _ := runScript(t, twoItemCatalog(), "1", "2", "y", "1", "2", "n")

	if order.Len() != 2 {
		t.Fatalf("Expected 2 line items, got %d", order.Len())
	}
	for i, item := range order.Items {
		if item.Name != "A - x" || item.Quantity != 2 {
			t.Errorf("Item %d: expected 'A - x' x2, got %q x%d", i, item.Name, item.Quantity)
		}
	}
	if !total.Equal(decimal.RequireFromString("4.00")) {
		t.Errorf("Expected total 4.00, got %s", total)
	}
}

func TestOrderTaker_ContinueAnswers(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		stops  bool
	}{
		{"lowercase n", "n", true},
		{"uppercase N", "N", true},
		{"padded n", "  n  ", true},
		{"empty", "", false},
		{"no", "no", false},
		{"yes", "y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A second round is scripted; it is only consumed when the answer continues.
			order, _, _, _ := runScript(t, twoItemCatalog(), "1", "1", tt.answer, "2", "1", "n")

			want := 2
			if tt.stops {
				want = 1
			}
			if order.Len() != want {
				t.Errorf("Expected %d line items, got %d", want, order.Len())
			}
		})
	}
}

func TestOrderTaker_LengthMatchesAppendsAndTotal(t *testing.T) {
	catalog := menu.Default()
	entries := menu.Flatten(catalog)

	script := []string{
		"1", "2", "y",
		"99", "15", "1", "y",
		"x", "7", "abc", "",
		"12", "3", "n",
	}
	order, total, _, recorder := runScript(t, catalog, script...)

	if order.Len() != 4 {
		t.Fatalf("Expected 4 line items, got %d", order.Len())
	}
	if got := testutil.ToFloat64(recorder.LineItems); got != 4 {
		t.Errorf("Expected 4 appends recorded, got %v", got)
	}

	want := entries[0].Price.Mul(decimal.NewFromInt(2)).
		Add(entries[14].Price).
		Add(entries[6].Price).
		Add(entries[11].Price.Mul(decimal.NewFromInt(3))).
		Round(2)
	if !total.Equal(want) {
		t.Errorf("Expected total %s, got %s", want, total)
	}

	names := []string{entries[0].Name, entries[14].Name, entries[6].Name, entries[11].Name}
	for i, name := range names {
		if order.Items[i].Name != name {
			t.Errorf("Item %d: expected %q, got %q", i, name, order.Items[i].Name)
		}
	}
}

func TestOrderTaker_EndOfInputFinishesSession(t *testing.T) {
	// Input ends while waiting for a quantity; the pending selection is dropped.
	order, _, out, _ := runScript(t, twoItemCatalog(), "1", "1", "y", "2")

	if order.Len() != 1 {
		t.Errorf("Expected 1 line item, got %d", order.Len())
	}
	if !strings.Contains(out, "Thank you for your order!") {
		t.Errorf("Expected closing message, got:\n%s", out)
	}
}

func TestOrderTaker_InputError(t *testing.T) {
	boom := stderrors.New("terminal gone")
	calls := 0
	input := func() (string, error) {
		calls++
		if calls == 1 {
			return "1", nil
		}
		return "", boom
	}

	taker := NewOrderTaker(twoItemCatalog(), input, &bytes.Buffer{}, metrics.New())
	order, _, err := taker.Run()

	if !stderrors.Is(err, boom) {
		t.Errorf("Expected input error, got %v", err)
	}
	if order.Len() != 0 {
		t.Errorf("Expected empty order, got %d items", order.Len())
	}
}

func TestLineInput(t *testing.T) {
	input := LineInput(strings.NewReader("1\r\n2\nn"))

	var got []string
	for {
		line, err := input()
		if err != nil {
			break
		}
		got = append(got, line)
	}

	if len(got) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(got), got)
	}
	if got[2] != "n" {
		t.Errorf("Expected last line 'n', got %q", got[2])
	}
}

func TestOrderTaker_OverlongLinesFromReader(t *testing.T) {
	long := strings.Repeat("9", 70000)
	script := "1\n" + long + "\ny\n" + long + "\n"

	var out bytes.Buffer
	recorder := metrics.New()
	taker := NewOrderTaker(twoItemCatalog(), LineInput(strings.NewReader(script)), &out, recorder)

	order, total, err := taker.Run()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if order.Len() != 1 {
		t.Fatalf("Expected 1 line item, got %d", order.Len())
	}
	if order.Items[0].Quantity != 1 {
		t.Errorf("Expected oversized quantity coerced to 1, got %d", order.Items[0].Quantity)
	}
	if !total.Equal(decimal.RequireFromString("1.00")) {
		t.Errorf("Expected total 1.00, got %s", total)
	}
	if got := testutil.ToFloat64(recorder.SelectionsRejected.WithLabelValues(KindNotANumber)); got != 1 {
		t.Errorf("Expected oversized selection to be rejected, got %v", got)
	}
}

func TestLineInput_LongLine(t *testing.T) {
	long := strings.Repeat("a", 200000)
	input := LineInput(strings.NewReader(long + "\nnext"))

	first, err := input()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(first) != len(long) {
		t.Errorf("Expected %d characters, got %d", len(long), len(first))
	}

	second, err := input()
	if err != nil || second != "next" {
		t.Errorf("Expected 'next', got %q (%v)", second, err)
	}

	if _, err := input(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}
