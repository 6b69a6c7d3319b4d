package report

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

func toRecipient(id int64, name string) core.Recipient {
	return core.Recipient{ID: id, Name: name, Category: core.RecipientChurch}
}

func toDonation(recipientID int64, amount string) core.Donation {
	return core.Donation{
		RecipientID: recipientID,
		Date:        core.NewDate(2026, 1, 10),
		Amount:      decimal.RequireFromString(amount),
		Type:        core.DonationTithe,
	}
}

func TestAggregateByRecipient(t *testing.T) {
	donations := []core.Donation{
		toDonation(1, "100"),
		toDonation(2, "300"),
	}
	recipients := []core.Recipient{
		toRecipient(1, "A"),
		toRecipient(2, "B"),
	}

	slices := AggregateByRecipient(donations, recipients, "USD")

	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if slices[0].Name != "B" || !slices[0].Value.Equal(decimal.RequireFromString("300")) {
		t.Errorf("first slice = %s %s, want B 300", slices[0].Name, slices[0].Value)
	}
	if math.Abs(slices[0].Percentage-75) > 1e-6 {
		t.Errorf("B percentage = %v, want 75", slices[0].Percentage)
	}
	if slices[1].Name != "A" || math.Abs(slices[1].Percentage-25) > 1e-6 {
		t.Errorf("second slice = %s %v%%, want A 25%%", slices[1].Name, slices[1].Percentage)
	}
	if slices[0].Label != "B: USD 300.00" {
		t.Errorf("label = %q, want %q", slices[0].Label, "B: USD 300.00")
	}
}

func TestAggregateByRecipient_UnknownRecipient(t *testing.T) {
	donations := []core.Donation{
		toDonation(99, "40"), // no such recipient
		toDonation(0, "10"),  // recorded without a recipient
		toDonation(1, "50"),
	}
	recipients := []core.Recipient{toRecipient(1, "A")}

	slices := AggregateByRecipient(donations, recipients, "USD")

	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	// Both orphaned donations collapse into one Unknown slice.
	var unknown *CategorySlice
	for i := range slices {
		if slices[i].Name == UnknownRecipient {
			unknown = &slices[i]
		}
	}
	if unknown == nil {
		t.Fatal("expected an Unknown slice")
	}
	if !unknown.Value.Equal(decimal.RequireFromString("50")) {
		t.Errorf("Unknown value = %s, want 50", unknown.Value)
	}
	if unknown.RecipientID != 0 {
		t.Errorf("Unknown recipient id = %d, want 0", unknown.RecipientID)
	}
}

func TestAggregateByRecipient_SameNameDistinctIDs(t *testing.T) {
	// Two recipients sharing a display name stay separate slices.
	donations := []core.Donation{
		toDonation(1, "100"),
		toDonation(2, "200"),
	}
	recipients := []core.Recipient{
		toRecipient(1, "Grace Church"),
		toRecipient(2, "Grace Church"),
	}

	slices := AggregateByRecipient(donations, recipients, "USD")

	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if slices[0].RecipientID != 2 || slices[1].RecipientID != 1 {
		t.Errorf("slice ids = %d,%d, want 2,1", slices[0].RecipientID, slices[1].RecipientID)
	}
}

func TestAggregateByRecipient_PercentagesSumTo100(t *testing.T) {
	donations := []core.Donation{
		toDonation(1, "33.33"),
		toDonation(2, "33.33"),
		toDonation(3, "33.34"),
		toDonation(4, "0.01"),
	}
	recipients := []core.Recipient{
		toRecipient(1, "A"), toRecipient(2, "B"),
		toRecipient(3, "C"), toRecipient(4, "D"),
	}

	slices := AggregateByRecipient(donations, recipients, "USD")

	sum := 0.0
	for _, s := range slices {
		sum += s.Percentage
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
	for i := 1; i < len(slices); i++ {
		if slices[i].Value.GreaterThan(slices[i-1].Value) {
			t.Errorf("slices not sorted descending at %d", i)
		}
	}
}

func TestAggregateByRecipient_ColorCycling(t *testing.T) {
	var donations []core.Donation
	var recipients []core.Recipient
	for i := int64(1); i <= 12; i++ {
		donations = append(donations, toDonation(i, decimal.NewFromInt(100-i).String()))
		recipients = append(recipients, toRecipient(i, string(rune('A'+i-1))))
	}

	slices := AggregateByRecipient(donations, recipients, "USD")

	if len(slices) != 12 {
		t.Fatalf("expected 12 slices, got %d", len(slices))
	}
	if slices[10].ColorIndex != 0 || slices[11].ColorIndex != 1 {
		t.Errorf("palette did not cycle: indexes %d,%d", slices[10].ColorIndex, slices[11].ColorIndex)
	}
	if slices[0].Color != Palette[0] {
		t.Errorf("first slice color = %q, want %q", slices[0].Color, Palette[0])
	}
}

func TestAggregateByRecipient_Empty(t *testing.T) {
	if got := AggregateByRecipient(nil, nil, "USD"); len(got) != 0 {
		t.Errorf("expected empty result for no donations, got %d slices", len(got))
	}

	// Zero grand total: empty list, never NaN percentages.
	zero := []core.Donation{toDonation(1, "0")}
	if got := AggregateByRecipient(zero, []core.Recipient{toRecipient(1, "A")}, "USD"); len(got) != 0 {
		t.Errorf("expected empty result for zero total, got %d slices", len(got))
	}
}
